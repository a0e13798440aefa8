// Package provider builds metadata models from snapshots written by an
// external reflection adapter.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/broady/tsrest/tsrestgen/ir"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SnapshotError reports a snapshot that cannot be read or decoded.
type SnapshotError struct {
	// Source names the snapshot (file path or "<reader>").
	Source string
	Err    error
}

func (e *SnapshotError) Error() string {
	return "snapshot " + e.Source + ": " + e.Err.Error()
}

func (e *SnapshotError) Unwrap() error { return e.Err }

// SnapshotInputOptions configures snapshot loading. Exactly one of Path
// and Reader must be set.
type SnapshotInputOptions struct {
	Path   string
	Reader io.Reader

	// Logger receives notices about ignored tags. Default: no-op.
	Logger *zap.Logger
}

// SnapshotProvider decodes JSON metadata snapshots.
type SnapshotProvider struct{}

// BuildModel reads, validates and converts a snapshot. Classes keep their
// snapshot order, which fixes the emission order of controllers.
func (p *SnapshotProvider) BuildModel(ctx context.Context, opts SnapshotInputOptions) (*ir.Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	source, data, err := readSnapshot(opts)
	if err != nil {
		return nil, &SnapshotError{Source: source, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snap snapshot
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, &SnapshotError{Source: source, Err: errors.Wrap(err, "decode")}
	}
	if err := validate.StructCtx(ctx, &snap); err != nil {
		return nil, &SnapshotError{Source: source, Err: errors.Wrap(err, "validate")}
	}

	conv := &converter{logger: logger}
	model := ir.NewModel()
	for i := range snap.Classes {
		c, err := conv.class(&snap.Classes[i])
		if err != nil {
			return nil, &SnapshotError{Source: source, Err: err}
		}
		model.AddClass(c)
	}

	logger.Debug("loaded snapshot", zap.String("source", source), zap.Int("classes", len(snap.Classes)))
	return model, nil
}

func readSnapshot(opts SnapshotInputOptions) (string, []byte, error) {
	switch {
	case opts.Path != "" && opts.Reader != nil:
		return opts.Path, nil, errors.New("both Path and Reader set")
	case opts.Path != "":
		data, err := os.ReadFile(opts.Path)
		return opts.Path, data, errors.Wrap(err, "read")
	case opts.Reader != nil:
		data, err := io.ReadAll(opts.Reader)
		return "<reader>", data, errors.Wrap(err, "read")
	default:
		return "", nil, errors.New("no snapshot source")
	}
}
