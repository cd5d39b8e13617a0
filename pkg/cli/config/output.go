package config

import (
	"context"
	"log/slog"
	"strings"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/service/storage"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/logging"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	gcsScheme  = "gs://"
	fileScheme = "file://"
)

// Output holds CLI flags for the report destination
type Output struct {
	target string
}

func (x *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Report destination: a directory, file://<dir> or gs://<bucket>/<prefix>. Reports are not published when empty",
			Category:    "Output",
			Sources:     cli.EnvVars("RISKAUDIT_OUTPUT"),
			Destination: &x.target,
		},
	}
}

func (x Output) LogValue() slog.Value {
	return slog.GroupValue(slog.String("target", x.target))
}

// ParseGCSTarget splits gs://bucket/prefix
func ParseGCSTarget(target string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(target, gcsScheme)
	if !ok {
		return "", "", goerr.Wrap(ErrInvalidOutput, "not a gs:// target", goerr.V(OutputKey, target))
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", goerr.Wrap(ErrInvalidOutput, "bucket is required", goerr.V(OutputKey, target))
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// Configure returns the publisher for the destination, or nil when no
// destination is set. The returned function releases the publisher.
func (x *Output) Configure(ctx context.Context) (interfaces.ReportPublisher, func(), error) {
	noop := func() {}

	switch {
	case x.target == "":
		return nil, noop, nil

	case strings.HasPrefix(x.target, gcsScheme):
		bucket, prefix, err := ParseGCSTarget(x.target)
		if err != nil {
			return nil, noop, err
		}
		publisher, err := storage.NewGCS(ctx, bucket, storage.WithObjectPrefix(prefix))
		if err != nil {
			return nil, noop, err
		}
		logging.Default().Info("Publishing reports to Cloud Storage", "bucket", bucket, "prefix", prefix)
		return publisher, func() { safe.Close(ctx, publisher) }, nil

	default:
		dir := strings.TrimPrefix(x.target, fileScheme)
		publisher, err := storage.NewLocal(dir)
		if err != nil {
			return nil, noop, err
		}
		logging.Default().Info("Publishing reports to directory", "dir", dir)
		return publisher, noop, nil
	}
}
