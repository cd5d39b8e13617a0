package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// Collection names without prefix. Index definitions for the migrate
// command refer to these.
const (
	QuestionsCollection = "questions"
	AuditsCollection    = "audits"
	ResponsesCollection = "responses"
)

type Firestore struct {
	client   *firestore.Client
	question *questionRepository
	audit    *auditRepository
	response *responseRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.question.collectionPrefix = prefix
		f.audit.collectionPrefix = prefix
		f.response.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:   client,
		question: newQuestionRepository(client),
		audit:    newAuditRepository(client),
		response: newResponseRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Question() interfaces.QuestionRepository {
	return f.question
}

func (f *Firestore) Audit() interfaces.AuditRepository {
	return f.audit
}

func (f *Firestore) Response() interfaces.ResponseRepository {
	return f.response
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
