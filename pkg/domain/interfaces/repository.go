package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by every backend when a record does not exist
var ErrNotFound = goerr.New("not found")

// Repository defines the interface for data persistence
type Repository interface {
	Question() QuestionRepository
	Audit() AuditRepository
	Response() ResponseRepository

	// Close releases backend connections
	Close() error
}
