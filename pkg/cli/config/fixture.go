package config

import (
	"context"
	"strings"
	"time"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// FixtureFile holds audits and their responses for seeding a repository,
// typically the memory backend in local runs
type FixtureFile struct {
	Audits []FixtureAudit `toml:"audit" yaml:"audit"`
}

// FixtureAudit is an audit record with its responses
type FixtureAudit struct {
	ID              string            `toml:"id" yaml:"id"`
	Tier            string            `toml:"tier" yaml:"tier"`
	Status          string            `toml:"status" yaml:"status"`
	PropertyAddress string            `toml:"property_address" yaml:"property_address"`
	ClientName      string            `toml:"client_name" yaml:"client_name"`
	AuditorName     string            `toml:"auditor_name" yaml:"auditor_name"`
	CreatedAt       time.Time         `toml:"created_at" yaml:"created_at"`
	SubmittedAt     time.Time         `toml:"submitted_at" yaml:"submitted_at"`
	CompletedAt     time.Time         `toml:"completed_at" yaml:"completed_at"`
	Responses       []FixtureResponse `toml:"response" yaml:"response"`
}

// FixtureResponse is a stored answer
type FixtureResponse struct {
	Question string `toml:"question" yaml:"question"`
	Answer   string `toml:"answer" yaml:"answer"`
	Comment  string `toml:"comment" yaml:"comment"`
}

// ToModel converts the fixture audit and its responses
func (f *FixtureAudit) ToModel() (*model.Audit, []*model.Response, error) {
	tier, err := types.ParseTier(f.Tier)
	if err != nil {
		return nil, nil, err
	}
	status, err := types.ParseAuditStatus(string(types.AuditStatus(f.Status).Normalize()))
	if err != nil {
		return nil, nil, goerr.Wrap(ErrInvalidConfig, err.Error())
	}

	id := model.AuditID(strings.TrimSpace(f.ID))
	if id == "" {
		id = model.NewAuditID()
	}

	audit := &model.Audit{
		ID:              id,
		Status:          status,
		Tier:            tier,
		PropertyAddress: f.PropertyAddress,
		ClientName:      f.ClientName,
		AuditorName:     f.AuditorName,
		CreatedAt:       f.CreatedAt,
		SubmittedAt:     f.SubmittedAt,
		CompletedAt:     f.CompletedAt,
		UpdatedAt:       latest(f.CreatedAt, f.SubmittedAt, f.CompletedAt),
	}
	if err := audit.Validate(); err != nil {
		return nil, nil, err
	}

	responses := make([]*model.Response, 0, len(f.Responses))
	for _, r := range f.Responses {
		responses = append(responses, &model.Response{
			AuditID:        id,
			QuestionNumber: strings.TrimSpace(r.Question),
			Answer:         r.Answer,
			Comment:        r.Comment,
			CreatedAt:      audit.UpdatedAt,
		})
	}

	return audit, responses, nil
}

func latest(times ...time.Time) time.Time {
	var out time.Time
	for _, t := range times {
		if t.After(out) {
			out = t
		}
	}
	return out
}

// LoadFixture loads audits and responses from a TOML or YAML file
func LoadFixture(path string) (*FixtureFile, error) {
	var fixture FixtureFile
	if err := decodeFile(path, &fixture); err != nil {
		return nil, err
	}

	for i := range fixture.Audits {
		if _, _, err := fixture.Audits[i].ToModel(); err != nil {
			return nil, goerr.Wrap(err, "invalid fixture audit", goerr.V(ConfigPathKey, path), goerr.V(AuditIndexKey, i))
		}
	}

	return &fixture, nil
}

// Seed stores the fixture audits and responses and returns the audit IDs
func (f *FixtureFile) Seed(ctx context.Context, repo interfaces.Repository) ([]model.AuditID, error) {
	ids := make([]model.AuditID, 0, len(f.Audits))
	for i := range f.Audits {
		audit, responses, err := f.Audits[i].ToModel()
		if err != nil {
			return nil, goerr.Wrap(err, "invalid fixture audit", goerr.V(AuditIndexKey, i))
		}

		if err := repo.Audit().Put(ctx, audit); err != nil {
			return nil, goerr.Wrap(err, "failed to seed audit", goerr.V("audit_id", audit.ID))
		}
		if err := repo.Response().Put(ctx, audit.ID, responses); err != nil {
			return nil, goerr.Wrap(err, "failed to seed responses", goerr.V("audit_id", audit.ID))
		}
		ids = append(ids, audit.ID)
	}

	logging.From(ctx).Info("fixture seeded", "audits", len(ids))
	return ids, nil
}

// Fixture holds CLI flags for the fixture file
type Fixture struct {
	path string
}

func (x *Fixture) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "fixture",
			Usage:       "Audits and responses (TOML or YAML) seeded into the repository before running",
			Category:    "Catalog",
			Sources:     cli.EnvVars("RISKAUDIT_FIXTURE"),
			Destination: &x.path,
		},
	}
}

// Configure seeds the repository when a fixture file is set
func (x *Fixture) Configure(ctx context.Context, repo interfaces.Repository) ([]model.AuditID, error) {
	if x.path == "" {
		return nil, nil
	}

	fixture, err := LoadFixture(x.path)
	if err != nil {
		return nil, err
	}
	return fixture.Seed(ctx, repo)
}
