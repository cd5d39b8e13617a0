package model

import (
	"github.com/felixgeelhaar/statekit"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	auditEventSubmit   = "submit"
	auditEventComplete = "complete"
)

// Untyped so they convert to statekit.StateID; values match types.AuditStatus
const (
	auditStatePending   = "pending"
	auditStateSubmitted = "submitted"
	auditStateCompleted = "completed"
)

type auditLifecycleContext struct{}

// transitionAudit runs the event against a lifecycle machine started at
// the current status. Status only moves forward.
func transitionAudit(current types.AuditStatus, event string) (types.AuditStatus, error) {
	if !current.IsValid() {
		return "", goerr.Wrap(ErrInvalidTransition, "unknown audit status",
			goerr.V(StatusKey, current), goerr.V(EventKey, event))
	}

	builder := statekit.NewMachine[auditLifecycleContext]("audit-lifecycle").
		WithInitial(statekit.StateID(current)).
		WithContext(auditLifecycleContext{})

	builder.State(auditStatePending).
		On(auditEventSubmit).Target(auditStateSubmitted).
		Done()

	builder.State(auditStateSubmitted).
		On(auditEventComplete).Target(auditStateCompleted).
		Done()

	builder.State(auditStateCompleted).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build audit lifecycle")
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	interp.Send(statekit.Event{Type: statekit.EventType(event)})

	next := types.AuditStatus(interp.State().Value)
	if next == current {
		return "", goerr.Wrap(ErrInvalidTransition, "event not allowed in current status",
			goerr.V(StatusKey, current), goerr.V(EventKey, event))
	}
	return next, nil
}
