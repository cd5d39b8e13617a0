package firestore

import (
	"context"
	"slices"
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

type optionDocument struct {
	Text    string `firestore:"text"`
	Score   int    `firestore:"score"`
	Order   int    `firestore:"order"`
	Example bool   `firestore:"example"`
}

type guidanceDocument struct {
	Reason string `firestore:"reason"`
	Action string `firestore:"action"`
}

type questionDocument struct {
	Number        string                      `firestore:"number"`
	Category      string                      `firestore:"category"`
	Subcategory   string                      `firestore:"subcategory"`
	Text          string                      `firestore:"text"`
	Type          string                      `firestore:"type"`
	Tiers         []string                    `firestore:"tiers"`
	Weight        float64                     `firestore:"weight"`
	Critical      bool                        `firestore:"critical"`
	Active        bool                        `firestore:"active"`
	LearningPoint string                      `firestore:"learning_point"`
	Options       []optionDocument            `firestore:"options"`
	Guidance      map[string]guidanceDocument `firestore:"guidance"`
	CreatedAt     time.Time                   `firestore:"created_at"`
	UpdatedAt     time.Time                   `firestore:"updated_at"`
}

type questionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newQuestionRepository(client *firestore.Client) *questionRepository {
	return &questionRepository{
		client: client,
	}
}

func (r *questionRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, QuestionsCollection))
}

func toQuestionDocument(q *model.Question) *questionDocument {
	doc := &questionDocument{
		Number:        q.Number,
		Category:      q.Category,
		Subcategory:   q.Subcategory,
		Text:          q.Text,
		Type:          string(q.Type),
		Weight:        q.Weight,
		Critical:      q.Critical,
		Active:        q.Active,
		LearningPoint: q.LearningPoint,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
	for _, t := range q.Tiers {
		doc.Tiers = append(doc.Tiers, string(t))
	}
	for _, opt := range q.Options {
		doc.Options = append(doc.Options, optionDocument(opt))
	}
	if len(q.Guidance) > 0 {
		doc.Guidance = make(map[string]guidanceDocument, len(q.Guidance))
		for level, g := range q.Guidance {
			doc.Guidance[string(level)] = guidanceDocument(g)
		}
	}
	return doc
}

func (d *questionDocument) toModel() *model.Question {
	q := &model.Question{
		Number:        d.Number,
		Category:      d.Category,
		Subcategory:   d.Subcategory,
		Text:          d.Text,
		Type:          types.QuestionType(d.Type),
		Weight:        d.Weight,
		Critical:      d.Critical,
		Active:        d.Active,
		LearningPoint: d.LearningPoint,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	for _, t := range d.Tiers {
		q.Tiers = append(q.Tiers, types.Tier(t))
	}
	for _, opt := range d.Options {
		q.Options = append(q.Options, model.AnswerOption(opt))
	}
	if len(d.Guidance) > 0 {
		q.Guidance = make(map[types.ScoreLevel]model.Guidance, len(d.Guidance))
		for level, g := range d.Guidance {
			q.Guidance[types.ScoreLevel(level)] = model.Guidance(g)
		}
	}
	return q
}

func (r *questionRepository) Get(ctx context.Context, number string) (*model.Question, error) {
	doc, err := r.collection().Doc(number).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "question not found", goerr.V(model.QuestionNumberKey, number))
		}
		return nil, goerr.Wrap(err, "failed to get question", goerr.V(model.QuestionNumberKey, number))
	}

	var qDoc questionDocument
	if err := doc.DataTo(&qDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal question", goerr.V(model.QuestionNumberKey, number))
	}

	return qDoc.toModel(), nil
}

func (r *questionRepository) List(ctx context.Context, opts ...interfaces.ListQuestionOption) ([]*model.Question, error) {
	cfg := interfaces.BuildListQuestionConfig(opts...)

	query := r.collection().Query
	if tier := cfg.Tier(); tier != nil {
		// array-contains is served by the automatic single-field index;
		// the active flag is then filtered in memory.
		query = query.Where("tiers", "array-contains", string(*tier))
	} else if cfg.ActiveOnly() {
		query = query.Where("active", "==", true).OrderBy("number", firestore.Asc)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var questions []*model.Question
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate questions")
		}

		var qDoc questionDocument
		if err := doc.DataTo(&qDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal question", goerr.V("doc_id", doc.Ref.ID))
		}
		if cfg.ActiveOnly() && !qDoc.Active {
			continue
		}
		questions = append(questions, qDoc.toModel())
	}

	slices.SortFunc(questions, func(a, b *model.Question) int {
		return model.CompareQuestionNumbers(a.Number, b.Number)
	})

	return questions, nil
}

func (r *questionRepository) Put(ctx context.Context, q *model.Question) error {
	docRef := r.collection().Doc(q.Number)
	now := time.Now().UTC()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc := toQuestionDocument(q)
		doc.UpdatedAt = now

		snap, err := tx.Get(docRef)
		switch {
		case err == nil:
			var existing questionDocument
			if err := snap.DataTo(&existing); err != nil {
				return goerr.Wrap(err, "failed to unmarshal question")
			}
			doc.CreatedAt = existing.CreatedAt
		case status.Code(err) == codes.NotFound:
			if doc.CreatedAt.IsZero() {
				doc.CreatedAt = now
			}
		default:
			return goerr.Wrap(err, "failed to get question")
		}

		return tx.Set(docRef, doc)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put question", goerr.V(model.QuestionNumberKey, q.Number))
	}

	return nil
}

func (r *questionRepository) Deactivate(ctx context.Context, number string) error {
	_, err := r.collection().Doc(number).Update(ctx, []firestore.Update{
		{Path: "active", Value: false},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "question not found", goerr.V(model.QuestionNumberKey, number))
		}
		return goerr.Wrap(err, "failed to deactivate question", goerr.V(model.QuestionNumberKey, number))
	}
	return nil
}
