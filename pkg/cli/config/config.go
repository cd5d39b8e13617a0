package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	domainConfig "github.com/landlordsafeguarding/riskaudit/pkg/domain/model/config"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// AppConfig is the question catalog file: scoring thresholds, category
// declarations and questions
type AppConfig struct {
	Scoring    Scoring    `toml:"scoring" yaml:"scoring"`
	Categories []Category `toml:"category" yaml:"category"`
	Questions  []Question `toml:"question" yaml:"question"`
}

// Scoring overrides the default thresholds. Zero values keep the default.
type Scoring struct {
	GreenThreshold    float64 `toml:"green_threshold" yaml:"green_threshold"`
	OrangeThreshold   float64 `toml:"orange_threshold" yaml:"orange_threshold"`
	QuestionRedMax    int     `toml:"question_red_max" yaml:"question_red_max"`
	QuestionOrangeMax int     `toml:"question_orange_max" yaml:"question_orange_max"`
	CriticalFailMax   int     `toml:"critical_fail_max" yaml:"critical_fail_max"`
	TribunalRiskBelow float64 `toml:"tribunal_risk_below" yaml:"tribunal_risk_below"`
	LowRiskLabel      string  `toml:"low_risk_label" yaml:"low_risk_label"`
	MediumRiskLabel   string  `toml:"medium_risk_label" yaml:"medium_risk_label"`
	HighRiskLabel     string  `toml:"high_risk_label" yaml:"high_risk_label"`
}

// Category represents a question category declaration
type Category struct {
	ID   string `toml:"id" yaml:"id"`
	Name string `toml:"name" yaml:"name"`
}

// Validate checks if the Category is valid
func (c *Category) Validate() error {
	id := types.CategoryID(c.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidCategoryID, err.Error(), goerr.V(CategoryIDKey, c.ID))
	}
	if strings.TrimSpace(c.Name) == "" {
		return goerr.Wrap(ErrMissingName, "category name is required", goerr.V(CategoryIDKey, c.ID))
	}
	return nil
}

// Question is a catalog question as written in the file
type Question struct {
	Number        string              `toml:"number" yaml:"number"`
	Category      string              `toml:"category" yaml:"category"`
	Subcategory   string              `toml:"subcategory" yaml:"subcategory"`
	Text          string              `toml:"text" yaml:"text"`
	Type          string              `toml:"type" yaml:"type"`
	Tiers         []string            `toml:"tiers" yaml:"tiers"`
	Weight        float64             `toml:"weight" yaml:"weight"`
	Critical      bool                `toml:"critical" yaml:"critical"`
	Active        *bool               `toml:"active" yaml:"active"`
	LearningPoint string              `toml:"learning_point" yaml:"learning_point"`
	Options       []Option            `toml:"option" yaml:"option"`
	Guidance      map[string]Guidance `toml:"guidance" yaml:"guidance"`
}

// Option is an answer option of a question
type Option struct {
	Text    string `toml:"text" yaml:"text"`
	Score   int    `toml:"score" yaml:"score"`
	Order   int    `toml:"order" yaml:"order"`
	Example bool   `toml:"example" yaml:"example"`
}

// Guidance is the reason and action of a score level
type Guidance struct {
	Reason string `toml:"reason" yaml:"reason"`
	Action string `toml:"action" yaml:"action"`
}

// ToModel converts the question. Yes/no questions without options get the
// default Yes/No pair, weight defaults to 1.0 and active to true.
func (q *Question) ToModel() (*model.Question, error) {
	out := &model.Question{
		Number:        strings.TrimSpace(q.Number),
		Category:      strings.TrimSpace(q.Category),
		Subcategory:   strings.TrimSpace(q.Subcategory),
		Text:          strings.TrimSpace(q.Text),
		Type:          types.QuestionType(q.Type),
		Weight:        q.Weight,
		Critical:      q.Critical,
		Active:        q.Active == nil || *q.Active,
		LearningPoint: q.LearningPoint,
	}
	if out.Weight == 0 {
		out.Weight = 1.0
	}

	for _, t := range q.Tiers {
		out.Tiers = append(out.Tiers, types.Tier(strings.TrimSpace(t)))
	}

	for i, opt := range q.Options {
		order := opt.Order
		if order == 0 {
			order = i + 1
		}
		out.Options = append(out.Options, model.AnswerOption{
			Text:    opt.Text,
			Score:   opt.Score,
			Order:   order,
			Example: opt.Example,
		})
	}
	if len(out.Options) == 0 && out.Type == types.QuestionTypeYesNo {
		out.Options = model.DefaultYesNoOptions()
	}

	if len(q.Guidance) > 0 {
		out.Guidance = make(map[types.ScoreLevel]model.Guidance, len(q.Guidance))
		for key, g := range q.Guidance {
			level := types.ScoreLevel(strings.ToLower(key))
			if !level.IsValid() {
				return nil, goerr.Wrap(ErrInvalidGuidanceLevel, "guidance level must be low, medium or high",
					goerr.V(QuestionNumberKey, q.Number), goerr.V("level", key))
			}
			out.Guidance[level] = model.Guidance{Reason: g.Reason, Action: g.Action}
		}
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks if the Scoring overrides are consistent
func (s *Scoring) Validate() error {
	cfg := s.apply(domainConfig.DefaultScoringConfig())

	if cfg.OrangeThreshold <= 0 || cfg.OrangeThreshold >= cfg.GreenThreshold || cfg.GreenThreshold > model.MaxOptionScore {
		return goerr.Wrap(ErrInvalidScoring, "thresholds must satisfy 0 < orange < green <= 10",
			goerr.V("orange_threshold", cfg.OrangeThreshold), goerr.V("green_threshold", cfg.GreenThreshold))
	}
	if cfg.QuestionRedMax < model.MinOptionScore || cfg.QuestionRedMax >= cfg.QuestionOrangeMax || cfg.QuestionOrangeMax >= model.MaxOptionScore {
		return goerr.Wrap(ErrInvalidScoring, "question bands must satisfy 1 <= red max < orange max < 10",
			goerr.V("question_red_max", cfg.QuestionRedMax), goerr.V("question_orange_max", cfg.QuestionOrangeMax))
	}
	if cfg.CriticalFailMax < model.MinOptionScore || cfg.CriticalFailMax > model.MaxOptionScore {
		return goerr.Wrap(ErrInvalidScoring, "critical fail max must be between 1 and 10",
			goerr.V("critical_fail_max", cfg.CriticalFailMax))
	}
	return nil
}

func (s *Scoring) apply(cfg domainConfig.ScoringConfig) domainConfig.ScoringConfig {
	if s.GreenThreshold != 0 {
		cfg.GreenThreshold = s.GreenThreshold
	}
	if s.OrangeThreshold != 0 {
		cfg.OrangeThreshold = s.OrangeThreshold
	}
	if s.QuestionRedMax != 0 {
		cfg.QuestionRedMax = s.QuestionRedMax
	}
	if s.QuestionOrangeMax != 0 {
		cfg.QuestionOrangeMax = s.QuestionOrangeMax
	}
	if s.CriticalFailMax != 0 {
		cfg.CriticalFailMax = s.CriticalFailMax
	}
	if s.TribunalRiskBelow != 0 {
		cfg.TribunalRiskBelow = s.TribunalRiskBelow
	}
	if s.LowRiskLabel != "" {
		cfg.LowRiskLabel = s.LowRiskLabel
	}
	if s.MediumRiskLabel != "" {
		cfg.MediumRiskLabel = s.MediumRiskLabel
	}
	if s.HighRiskLabel != "" {
		cfg.HighRiskLabel = s.HighRiskLabel
	}
	return cfg
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if err := a.Scoring.Validate(); err != nil {
		return err
	}

	categoryIDs := make(map[string]bool)
	for _, cat := range a.Categories {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category")
		}
		if categoryIDs[cat.ID] {
			return goerr.Wrap(ErrDuplicateCategoryID, "category declared twice", goerr.V(CategoryIDKey, cat.ID))
		}
		categoryIDs[cat.ID] = true
	}

	numbers := make(map[string]bool)
	for i, q := range a.Questions {
		if _, err := q.ToModel(); err != nil {
			return goerr.Wrap(err, "invalid question", goerr.V(QuestionIndexKey, i))
		}
		number := strings.TrimSpace(q.Number)
		if numbers[number] {
			return goerr.Wrap(ErrDuplicateQuestion, "question number used twice", goerr.V(QuestionNumberKey, number))
		}
		numbers[number] = true
	}

	return nil
}

// decodeFile reads a TOML or YAML file, chosen by extension
func decodeFile(path string, v any) error {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return goerr.Wrap(ErrConfigNotFound, "file does not exist", goerr.V(ConfigPathKey, path))
		}
		return goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, v); err != nil {
			return goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, path), goerr.V(FormatKey, "toml"))
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, path), goerr.V(FormatKey, "yaml"))
		}
	default:
		return goerr.Wrap(ErrUnsupportedFormat, "use .toml, .yaml or .yml", goerr.V(ConfigPathKey, path), goerr.V(FormatKey, ext))
	}
	return nil
}

// LoadAppConfiguration loads the catalog from a TOML or YAML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	var config AppConfig
	if err := decodeFile(path, &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// ToCatalogConfig converts AppConfig to the domain catalog configuration
func (a *AppConfig) ToCatalogConfig() *domainConfig.CatalogConfig {
	categories := make([]domainConfig.Category, len(a.Categories))
	for i, cat := range a.Categories {
		categories[i] = domainConfig.Category{
			ID:   cat.ID,
			Name: cat.Name,
		}
	}

	return &domainConfig.CatalogConfig{
		Scoring:    a.Scoring.apply(domainConfig.DefaultScoringConfig()),
		Categories: categories,
	}
}

// ToQuestions converts the catalog questions to domain questions
func (a *AppConfig) ToQuestions() ([]*model.Question, error) {
	questions := make([]*model.Question, 0, len(a.Questions))
	for i, q := range a.Questions {
		m, err := q.ToModel()
		if err != nil {
			return nil, goerr.Wrap(err, "invalid question", goerr.V(QuestionIndexKey, i))
		}
		questions = append(questions, m)
	}
	return questions, nil
}
