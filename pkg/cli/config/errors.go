package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound       = goerr.New("configuration file not found")
	ErrInvalidConfig        = goerr.New("invalid configuration")
	ErrUnsupportedFormat    = goerr.New("unsupported configuration format")
	ErrDuplicateCategoryID  = goerr.New("duplicate category ID")
	ErrDuplicateQuestion    = goerr.New("duplicate question number")
	ErrInvalidCategoryID    = goerr.New("invalid category ID format")
	ErrInvalidScoring       = goerr.New("invalid scoring thresholds")
	ErrInvalidGuidanceLevel = goerr.New("invalid guidance level")
	ErrMissingName          = goerr.New("name is required")
	ErrInvalidOutput        = goerr.New("invalid output destination")
)

// Context keys for error values
const (
	ConfigPathKey     = "config_path"
	CategoryIDKey     = "category_id"
	QuestionNumberKey = "question_number"
	QuestionIndexKey  = "question_index"
	AuditIndexKey     = "audit_index"
	FormatKey         = "format"
	OutputKey         = "output"
)
