package firestore

import (
	"context"
	"slices"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

type responseDocument struct {
	AuditID        string    `firestore:"audit_id"`
	QuestionNumber string    `firestore:"question_number"`
	Answer         string    `firestore:"answer"`
	Comment        string    `firestore:"comment"`
	CreatedAt      time.Time `firestore:"created_at"`
}

type responseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newResponseRepository(client *firestore.Client) *responseRepository {
	return &responseRepository{
		client: client,
	}
}

func (r *responseRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, ResponsesCollection))
}

// responseDocID keys a response by (audit, question number)
func responseDocID(auditID model.AuditID, number string) string {
	return auditID.String() + "_" + number
}

func (r *responseRepository) List(ctx context.Context, auditID model.AuditID) ([]*model.Response, error) {
	iter := r.collection().Where("audit_id", "==", auditID.String()).Documents(ctx)
	defer iter.Stop()

	var responses []*model.Response
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate responses", goerr.V(model.AuditIDKey, auditID))
		}

		var rDoc responseDocument
		if err := doc.DataTo(&rDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal response", goerr.V("doc_id", doc.Ref.ID))
		}

		responses = append(responses, &model.Response{
			AuditID:        model.AuditID(rDoc.AuditID),
			QuestionNumber: rDoc.QuestionNumber,
			Answer:         rDoc.Answer,
			Comment:        rDoc.Comment,
			CreatedAt:      rDoc.CreatedAt,
		})
	}

	slices.SortFunc(responses, func(a, b *model.Response) int {
		return model.CompareQuestionNumbers(a.QuestionNumber, b.QuestionNumber)
	})

	return responses, nil
}

func (r *responseRepository) Put(ctx context.Context, auditID model.AuditID, responses []*model.Response) error {
	if len(responses) == 0 {
		return nil
	}

	now := time.Now().UTC()
	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(responses))

	for _, resp := range responses {
		createdAt := resp.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		doc := &responseDocument{
			AuditID:        auditID.String(),
			QuestionNumber: resp.QuestionNumber,
			Answer:         resp.Answer,
			Comment:        resp.Comment,
			CreatedAt:      createdAt,
		}

		job, err := bw.Set(r.collection().Doc(responseDocID(auditID, resp.QuestionNumber)), doc)
		if err != nil {
			bw.End()
			return goerr.Wrap(err, "failed to enqueue response",
				goerr.V(model.AuditIDKey, auditID), goerr.V(model.QuestionNumberKey, resp.QuestionNumber))
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return goerr.Wrap(err, "failed to write response",
				goerr.V(model.AuditIDKey, auditID), goerr.V(model.QuestionNumberKey, responses[i].QuestionNumber))
		}
	}

	return nil
}
