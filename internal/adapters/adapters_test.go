package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/angelmondragon/ledgertag/internal/records"
	"github.com/angelmondragon/ledgertag/pkg/enums"
	"github.com/angelmondragon/ledgertag/pkg/errors"
	"github.com/angelmondragon/ledgertag/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestJSONFileSourceFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	payload := `{
		"orders": [{"id": "O1", "total_cents": 2000, "date": "2024-03-01T00:00:00Z"}],
		"items": [{"order_id": "O1", "name": "widget", "quantity": 1, "total_cents": 2000, "order_date": "2024-03-01T00:00:00Z"}],
		"transactions": [{"id": "T1", "amount_cents": 2000, "posted_date": "2024-03-03T00:00:00Z"}]
	}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	source, err := NewJSONFileSource(JSONFileSourceParams{Logger: testLogger(), Path: path})
	if err != nil {
		t.Fatalf("NewJSONFileSource: %v", err)
	}
	snapshot, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(snapshot.Orders) != 1 || snapshot.Orders[0].ID != "O1" {
		t.Fatalf("unexpected orders: %+v", snapshot.Orders)
	}
	if len(snapshot.Items) != 1 || snapshot.Items[0].TotalCents != 2000 {
		t.Fatalf("unexpected items: %+v", snapshot.Items)
	}
}

func TestJSONFileSourceFetchDecodesStringAmounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	payload := `{
		"orders": [{"id": "O1", "total_cents": "$20.00", "date": "2024-03-01T00:00:00Z"}],
		"items": [{"order_id": "O1", "name": "widget", "quantity": 1, "total_cents": "1,234.56", "order_date": "2024-03-01T00:00:00Z"}],
		"transactions": [{"id": "T1", "amount_cents": "$20.00", "posted_date": "2024-03-03T00:00:00Z"}]
	}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	source, err := NewJSONFileSource(JSONFileSourceParams{Logger: testLogger(), Path: path})
	if err != nil {
		t.Fatalf("NewJSONFileSource: %v", err)
	}
	snapshot, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if snapshot.Orders[0].TotalCents != 2000 {
		t.Fatalf("expected 2000 order cents, got %d", snapshot.Orders[0].TotalCents)
	}
	if snapshot.Items[0].TotalCents != 123456 {
		t.Fatalf("expected 123456 item cents, got %d", snapshot.Items[0].TotalCents)
	}
	if snapshot.Transactions[0].AmountCents != 2000 {
		t.Fatalf("expected 2000 transaction cents, got %d", snapshot.Transactions[0].AmountCents)
	}
}

func TestJSONFileSourceMissingFile(t *testing.T) {
	source, err := NewJSONFileSource(JSONFileSourceParams{
		Logger: testLogger(),
		Path:   filepath.Join(t.TempDir(), "absent.json"),
	})
	if err != nil {
		t.Fatalf("NewJSONFileSource: %v", err)
	}
	if _, err := source.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	} else if code := errors.As(err).Code(); code != errors.CodeSource {
		t.Fatalf("expected CodeSource, got %s", code)
	}
}

func TestJSONFileSourceRejectsEmptyPath(t *testing.T) {
	if _, err := NewJSONFileSource(JSONFileSourceParams{Logger: testLogger()}); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestJSONFileSourceMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	source, err := NewJSONFileSource(JSONFileSourceParams{Logger: testLogger(), Path: path})
	if err != nil {
		t.Fatalf("NewJSONFileSource: %v", err)
	}
	if _, err := source.Fetch(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func sampleUpdates() []records.Update {
	return []records.Update{
		{
			TransactionID: "T1",
			Kind:          enums.UpdateKindRetag,
			Description:   "widget",
			Category:      "Shopping",
			Fingerprint:   "abc",
			OrderID:       "O1",
			ChargeDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			TransactionID: "T2",
			Kind:          enums.UpdateKindSplit,
			Splits: []records.SplitLine{
				{AmountCents: 1200, Description: "a", Category: "Electronics & Software"},
				{AmountCents: 800, Description: "b", Category: "Books"},
			},
			Fingerprint: "def",
			OrderID:     "O2",
			ChargeDate:  time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestLogSinkWritesUpdates(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewLogSink(LogSinkParams{Logger: testLogger(), Output: &buf})
	if err != nil {
		t.Fatalf("NewLogSink: %v", err)
	}

	results := sink.Apply(context.Background(), sampleUpdates())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if !res.Applied || res.Err != nil {
			t.Fatalf("expected applied result, got %+v", res)
		}
	}

	var decoded []records.Update
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode sink output: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Splits[0].AmountCents != 1200 {
		t.Fatalf("unexpected sink output: %+v", decoded)
	}
}

func TestLogSinkDryRunWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewLogSink(LogSinkParams{Logger: testLogger(), Output: &buf, DryRun: true})
	if err != nil {
		t.Fatalf("NewLogSink: %v", err)
	}

	results := sink.Apply(context.Background(), sampleUpdates())
	if buf.Len() != 0 {
		t.Fatalf("dry run wrote output: %q", buf.String())
	}
	for _, res := range results {
		if res.Applied {
			t.Fatalf("dry run marked update applied: %+v", res)
		}
	}
}
