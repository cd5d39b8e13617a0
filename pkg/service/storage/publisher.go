package storage

import (
	"context"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/logging"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

const contentTypeJSON = "application/json"

// ObjectName is the report filename with the .pdf extension replaced by
// .json. The renderer keeps the base name for the PDF it produces.
func ObjectName(report *model.ReportData) string {
	return strings.TrimSuffix(report.Filename, ".pdf") + ".json"
}

func encode(report *model.ReportData) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode report", goerr.V("report_id", report.ReportID))
	}
	return append(data, '\n'), nil
}

// LocalPublisher writes report documents into a directory
type LocalPublisher struct {
	dir string
}

var _ interfaces.ReportPublisher = &LocalPublisher{}

// NewLocal creates the directory if needed
func NewLocal(dir string) (*LocalPublisher, error) {
	if dir == "" {
		return nil, goerr.New("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory", goerr.V("dir", dir))
	}
	return &LocalPublisher{dir: dir}, nil
}

func (p *LocalPublisher) Publish(ctx context.Context, report *model.ReportData) (string, error) {
	data, err := encode(report)
	if err != nil {
		return "", err
	}

	name := filepath.Join(p.dir, ObjectName(report))
	// #nosec G306 -- report documents are read by the renderer process
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", goerr.Wrap(err, "failed to write report", goerr.V("path", name))
	}

	logging.From(ctx).Debug("report written", "path", name, "report_id", report.ReportID)
	return name, nil
}

// GCSPublisher uploads report documents to a Cloud Storage bucket
type GCSPublisher struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.ReportPublisher = &GCSPublisher{}

type GCSOption func(*gcsConfig)

type gcsConfig struct {
	prefix  string
	options []option.ClientOption
}

// WithObjectPrefix places objects under the prefix, e.g. "reports/2025"
func WithObjectPrefix(prefix string) GCSOption {
	return func(c *gcsConfig) {
		c.prefix = strings.Trim(prefix, "/")
	}
}

// WithClientOptions passes options to the Cloud Storage client
func WithClientOptions(opts ...option.ClientOption) GCSOption {
	return func(c *gcsConfig) {
		c.options = append(c.options, opts...)
	}
}

func NewGCS(ctx context.Context, bucket string, opts ...GCSOption) (*GCSPublisher, error) {
	if bucket == "" {
		return nil, goerr.New("bucket is required")
	}

	cfg := &gcsConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := storage.NewClient(ctx, cfg.options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client", goerr.V("bucket", bucket))
	}

	return &GCSPublisher{
		client: client,
		bucket: bucket,
		prefix: cfg.prefix,
	}, nil
}

func (p *GCSPublisher) objectPath(report *model.ReportData) string {
	if p.prefix == "" {
		return ObjectName(report)
	}
	return path.Join(p.prefix, ObjectName(report))
}

func (p *GCSPublisher) Publish(ctx context.Context, report *model.ReportData) (string, error) {
	data, err := encode(report)
	if err != nil {
		return "", err
	}

	object := p.objectPath(report)
	w := p.client.Bucket(p.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentTypeJSON
	w.Metadata = map[string]string{
		"report_id": report.ReportID,
		"audit_id":  report.AuditID.String(),
	}

	if _, err := w.Write(data); err != nil {
		safe.Close(ctx, w)
		return "", goerr.Wrap(err, "failed to upload report",
			goerr.V("bucket", p.bucket), goerr.V("object", object))
	}
	// Close commits the upload
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finish report upload",
			goerr.V("bucket", p.bucket), goerr.V("object", object))
	}

	location := "gs://" + p.bucket + "/" + object
	logging.From(ctx).Debug("report uploaded", "location", location, "report_id", report.ReportID)
	return location, nil
}

func (p *GCSPublisher) Close() error {
	if err := p.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close Cloud Storage client")
	}
	return nil
}
