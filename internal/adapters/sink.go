package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/angelmondragon/ledgertag/internal/records"
	"github.com/angelmondragon/ledgertag/pkg/errors"
	"github.com/angelmondragon/ledgertag/pkg/logger"
	"github.com/angelmondragon/ledgertag/pkg/money"
)

// ApplyResult reports the outcome of writing one update.
type ApplyResult struct {
	TransactionID string
	Applied       bool
	Err           error
}

// Sink receives the updates a pass emitted. Implementations decide where
// they go: a ledger API, a review file, or nowhere in dry-run.
type Sink interface {
	Apply(ctx context.Context, updates []records.Update) []ApplyResult
}

// LogSink logs each update and, unless running dry, writes the full update
// set as JSON to its output for downstream application.
type LogSink struct {
	logg   *logger.Logger
	out    io.Writer
	dryRun bool
}

// LogSinkParams configure a LogSink. Output defaults to stdout.
type LogSinkParams struct {
	Logger *logger.Logger
	Output io.Writer
	DryRun bool
}

// NewLogSink builds a logging sink.
func NewLogSink(params LogSinkParams) (*LogSink, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	out := params.Output
	if out == nil {
		out = os.Stdout
	}
	return &LogSink{logg: params.Logger, out: out, dryRun: params.DryRun}, nil
}

// Apply logs every update, then emits the batch as a JSON array. In dry-run
// the logging still happens but nothing is written.
func (s *LogSink) Apply(ctx context.Context, updates []records.Update) []ApplyResult {
	results := make([]ApplyResult, 0, len(updates))
	for _, update := range updates {
		fields := map[string]any{
			"order_id": update.OrderID,
			"kind":     update.Kind.String(),
			"dry_run":  s.dryRun,
		}
		if len(update.Splits) > 0 {
			fields["split_total"] = money.FormatCents(splitTotal(update))
			fields["split_lines"] = len(update.Splits)
		}
		entry := s.logg.WithTransactionID(ctx, update.TransactionID)
		s.logg.Info(s.logg.WithFields(entry, fields), "update")
		results = append(results, ApplyResult{TransactionID: update.TransactionID, Applied: !s.dryRun})
	}

	if s.dryRun || len(updates) == 0 {
		return results
	}

	encoder := json.NewEncoder(s.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(updates); err != nil {
		wrapped := errors.Wrap(errors.CodeSink, err, "write updates")
		for i := range results {
			results[i].Applied = false
			results[i].Err = wrapped
		}
	}
	return results
}

func splitTotal(update records.Update) int64 {
	var total int64
	for _, line := range update.Splits {
		total += line.AmountCents
	}
	return total
}
