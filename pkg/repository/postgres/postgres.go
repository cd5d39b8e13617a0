// Package postgres stores the catalog, audits and responses in the
// relational schema of the web application. Tables are managed outside
// this package.
package postgres

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type Postgres struct {
	pool     *pgxpool.Pool
	question *questionRepository
	audit    *auditRepository
	response *responseRepository
}

var _ interfaces.Repository = &Postgres{}

type Option func(*options)

type options struct {
	maxConns     int32
	connAttempts int
	retryDelay   time.Duration
}

// WithMaxConns sets the pool size
func WithMaxConns(n int32) Option {
	return func(o *options) {
		o.maxConns = n
	}
}

// WithConnectRetry sets the number of connection attempts and the initial backoff
func WithConnectRetry(attempts int, initialDelay time.Duration) Option {
	return func(o *options) {
		o.connAttempts = attempts
		o.retryDelay = initialDelay
	}
}

// New connects to PostgreSQL. The first ping is retried with exponential
// backoff so that the CLI tolerates a database that is still starting.
func New(ctx context.Context, url string, opts ...Option) (*Postgres, error) {
	o := &options{
		maxConns:     10,
		connAttempts: 5,
		retryDelay:   200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(o)
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse postgres URL")
	}
	cfg.MaxConns = o.maxConns
	cfg.HealthCheckPeriod = 30 * time.Second

	retryer := retry.New[*pgxpool.Pool](retry.Config{
		MaxAttempts:   o.connAttempts,
		InitialDelay:  o.retryDelay,
		BackoffPolicy: retry.BackoffExponential,
	})

	pool, err := retryer.Do(ctx, func(ctx context.Context) (*pgxpool.Pool, error) {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to postgres",
			goerr.V("host", cfg.ConnConfig.Host), goerr.V("database", cfg.ConnConfig.Database))
	}

	return &Postgres{
		pool:     pool,
		question: &questionRepository{pool: pool},
		audit:    &auditRepository{pool: pool},
		response: &responseRepository{pool: pool},
	}, nil
}

func (p *Postgres) Question() interfaces.QuestionRepository {
	return p.question
}

func (p *Postgres) Audit() interfaces.AuditRepository {
	return p.audit
}

func (p *Postgres) Response() interfaces.ResponseRepository {
	return p.response
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
