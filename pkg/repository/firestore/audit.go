package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type auditDocument struct {
	ID              string    `firestore:"id"`
	Status          string    `firestore:"status"`
	Tier            string    `firestore:"tier"`
	PropertyAddress string    `firestore:"property_address"`
	ClientName      string    `firestore:"client_name"`
	AuditorName     string    `firestore:"auditor_name"`
	CreatedAt       time.Time `firestore:"created_at"`
	SubmittedAt     time.Time `firestore:"submitted_at"`
	CompletedAt     time.Time `firestore:"completed_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

type auditRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAuditRepository(client *firestore.Client) *auditRepository {
	return &auditRepository{
		client: client,
	}
}

func (r *auditRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, AuditsCollection))
}

func (d *auditDocument) toModel() *model.Audit {
	return &model.Audit{
		ID:              model.AuditID(d.ID),
		Status:          types.AuditStatus(d.Status),
		Tier:            types.Tier(d.Tier),
		PropertyAddress: d.PropertyAddress,
		ClientName:      d.ClientName,
		AuditorName:     d.AuditorName,
		CreatedAt:       d.CreatedAt,
		SubmittedAt:     d.SubmittedAt,
		CompletedAt:     d.CompletedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (r *auditRepository) Get(ctx context.Context, id model.AuditID) (*model.Audit, error) {
	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "audit not found", goerr.V(model.AuditIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get audit", goerr.V(model.AuditIDKey, id))
	}

	var aDoc auditDocument
	if err := doc.DataTo(&aDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal audit", goerr.V(model.AuditIDKey, id))
	}

	return aDoc.toModel(), nil
}

func (r *auditRepository) List(ctx context.Context, opts ...interfaces.ListAuditOption) ([]*model.Audit, error) {
	cfg := interfaces.BuildListAuditConfig(opts...)

	query := r.collection().Query
	if statuses := cfg.Statuses(); len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		query = query.Where("status", "in", values)
	}
	query = query.OrderBy("created_at", firestore.Asc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var audits []*model.Audit
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate audits")
		}

		var aDoc auditDocument
		if err := doc.DataTo(&aDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal audit", goerr.V("doc_id", doc.Ref.ID))
		}
		audits = append(audits, aDoc.toModel())
	}

	return audits, nil
}

func (r *auditRepository) Put(ctx context.Context, audit *model.Audit) error {
	doc := &auditDocument{
		ID:              audit.ID.String(),
		Status:          string(audit.Status.Normalize()),
		Tier:            string(audit.Tier),
		PropertyAddress: audit.PropertyAddress,
		ClientName:      audit.ClientName,
		AuditorName:     audit.AuditorName,
		CreatedAt:       audit.CreatedAt,
		SubmittedAt:     audit.SubmittedAt,
		CompletedAt:     audit.CompletedAt,
		UpdatedAt:       audit.UpdatedAt,
	}

	if _, err := r.collection().Doc(audit.ID.String()).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put audit", goerr.V(model.AuditIDKey, audit.ID))
	}
	return nil
}
