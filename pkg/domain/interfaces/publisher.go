package interfaces

import (
	"context"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
)

// ReportPublisher stores assembled report documents for the renderer
type ReportPublisher interface {
	// Publish writes the report and returns its location
	Publish(ctx context.Context, report *model.ReportData) (string, error)
}
