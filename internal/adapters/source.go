// Package adapters connects the engine to the outside world: sources that
// load a snapshot and sinks that receive the emitted updates. The engine
// itself never does I/O.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/angelmondragon/ledgertag/internal/engine"
	"github.com/angelmondragon/ledgertag/pkg/errors"
	"github.com/angelmondragon/ledgertag/pkg/logger"
)

// Source loads one immutable snapshot for a pass.
type Source interface {
	Fetch(ctx context.Context) (*engine.Snapshot, error)
}

// JSONFileSource reads a snapshot from a JSON file on disk. The file holds
// one Snapshot object; exports from the retailer and ledger tooling are
// normalized into this shape upstream.
type JSONFileSource struct {
	logg *logger.Logger
	path string
}

// JSONFileSourceParams configure a JSONFileSource.
type JSONFileSourceParams struct {
	Logger *logger.Logger
	Path   string
}

// NewJSONFileSource builds a file-backed source.
func NewJSONFileSource(params JSONFileSourceParams) (*JSONFileSource, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Path == "" {
		return nil, errors.New(errors.CodeInvalidConfig, "snapshot path required")
	}
	return &JSONFileSource{logg: params.Logger, path: params.Path}, nil
}

// Fetch reads and decodes the snapshot file.
func (s *JSONFileSource) Fetch(ctx context.Context) (*engine.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeSource, err, "read snapshot file")
	}

	var snapshot engine.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrap(errors.CodeSource, err, "decode snapshot file")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"path":         s.path,
		"orders":       len(snapshot.Orders),
		"items":        len(snapshot.Items),
		"refunds":      len(snapshot.Refunds),
		"transactions": len(snapshot.Transactions),
	})
	s.logg.Info(ctx, "snapshot loaded")
	return &snapshot, nil
}
