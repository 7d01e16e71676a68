// Package engine runs one reconciliation pass: a pure, single-threaded batch
// computation over an immutable snapshot. Given the same snapshot and
// configuration it produces byte-identical output, which is what makes
// re-running it safe.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/angelmondragon/ledgertag/internal/categories"
	"github.com/angelmondragon/ledgertag/internal/charges"
	"github.com/angelmondragon/ledgertag/internal/matcher"
	"github.com/angelmondragon/ledgertag/internal/personalize"
	"github.com/angelmondragon/ledgertag/internal/records"
	"github.com/angelmondragon/ledgertag/internal/retag"
	"github.com/angelmondragon/ledgertag/pkg/config"
	"github.com/angelmondragon/ledgertag/pkg/enums"
	"github.com/angelmondragon/ledgertag/pkg/errors"
	"github.com/angelmondragon/ledgertag/pkg/logger"
	"github.com/angelmondragon/ledgertag/pkg/metrics"
)

// Snapshot is the immutable input to one pass.
type Snapshot struct {
	Orders       []records.Order       `json:"orders"`
	Items        []records.Item        `json:"items"`
	Refunds      []records.Refund      `json:"refunds"`
	Transactions []records.Transaction `json:"transactions"`
}

// UnmatchedCharge reports a charge that found no transaction.
type UnmatchedCharge struct {
	OrderID     string
	AmountCents int64
	Date        time.Time
	Reason      enums.UnmatchedReason
}

// SkippedUpdate reports an update the retag policy withheld.
type SkippedUpdate struct {
	TransactionID string
	OrderID       string
	Decision      enums.RetagDecision
}

// PromptRequest surfaces a user-edited transaction for external confirmation.
// The engine classifies; an interactive collaborator decides.
type PromptRequest struct {
	Transaction records.Transaction
	Update      records.Update
}

// Diagnostics is the parallel reporting output of a pass.
type Diagnostics struct {
	UnmatchedCharges    []UnmatchedCharge
	AmbiguousMatches    []UnmatchedCharge
	StaleSkips          []SkippedUpdate
	ManualSkips         []SkippedUpdate
	PrecisionRiskOrders []charges.PrecisionRisk
	// MalformedRecords aggregates every excluded record, one error per
	// record. Nil when all records were clean.
	MalformedRecords error
}

// Result is everything a pass produces.
type Result struct {
	RunID       string
	Updates     []records.Update
	PromptQueue []PromptRequest
	Diagnostics Diagnostics
	Stats       map[string]int
}

// Service runs reconciliation passes.
type Service struct {
	logg     *logger.Logger
	cfg      config.EngineConfig
	resolver *categories.Resolver
	metrics  *metrics.PassMetrics
}

// ServiceParams configure the engine. Metrics may be nil.
type ServiceParams struct {
	Logger  *logger.Logger
	Config  config.EngineConfig
	Metrics *metrics.PassMetrics
}

// NewService wires an engine service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := params.Config.Validate(); err != nil {
		return nil, err
	}
	resolver, err := categories.NewResolver(categories.ResolverParams{
		Logger:          params.Logger,
		DefaultCategory: params.Config.DefaultCategory,
		ReturnCategory:  params.Config.ReturnCategory,
	})
	if err != nil {
		return nil, err
	}
	return &Service{
		logg:     params.Logger,
		cfg:      params.Config,
		resolver: resolver,
		metrics:  params.Metrics,
	}, nil
}

// Run executes one pass over the snapshot. It always completes: partial data
// problems degrade the match rate and land in diagnostics, never abort the
// run. Only an invalid configuration is fatal, and that is rejected before
// any matching begins.
func (s *Service) Run(ctx context.Context, snapshot Snapshot) (*Result, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	result := &Result{
		RunID: uuid.NewString(),
		Stats: make(map[string]int),
	}
	ctx = s.logg.WithRunID(ctx, result.RunID)

	snapshot = s.validateSnapshot(ctx, snapshot, result)

	overrides := personalize.Learn(snapshot.Transactions, s.cfg.DefaultCategory)
	result.Stats["personalized_names"] = len(overrides)

	built, risks := charges.Build(snapshot.Orders, snapshot.Items, snapshot.Refunds,
		int64(s.cfg.AmountTolerancePerItemCents))
	result.Diagnostics.PrecisionRiskOrders = risks
	result.Stats["charges"] = len(built)
	result.Stats["transactions"] = len(snapshot.Transactions)
	result.Stats["precision_risk_orders"] = len(risks)
	for range risks {
		s.metrics.IncPrecisionRisk()
	}

	reconsiderTagged := s.cfg.RetagChanged || s.cfg.PromptRetag
	matches := matcher.Match(built, snapshot.Transactions, matcher.Config{
		MaxDaysAfterCharge: s.cfg.MaxDaysBetweenChargeAndPosting,
		GraceDaysBefore:    s.cfg.GraceDaysBeforeCharge,
		IncludeTagged:      reconsiderTagged,
	})

	policy := retag.Policy{RetagChanged: s.cfg.RetagChanged, PromptRetag: s.cfg.PromptRetag}
	for _, match := range matches {
		if !match.Matched() {
			s.recordUnmatched(result, match)
			continue
		}
		s.emit(ctx, result, policy, match, overrides)
	}

	s.metrics.ObserveDuration("ok", time.Since(started))
	ctx = s.logg.WithFields(ctx, map[string]any{
		"updates":   len(result.Updates),
		"unmatched": len(result.Diagnostics.UnmatchedCharges) + len(result.Diagnostics.AmbiguousMatches),
		"dry_run":   s.cfg.DryRun,
	})
	s.logg.Info(ctx, "reconciliation pass complete")
	return result, nil
}

func (s *Service) validateSnapshot(ctx context.Context, snapshot Snapshot, result *Result) Snapshot {
	items := records.ValidateItems(snapshot.Items)
	orders := records.ValidateOrders(snapshot.Orders)
	refunds := records.ValidateRefunds(snapshot.Refunds)
	transactions := records.ValidateTransactions(snapshot.Transactions)

	excluded := items.Excluded + orders.Excluded + refunds.Excluded + transactions.Excluded
	result.Stats["malformed_records"] = excluded
	if excluded > 0 {
		result.Diagnostics.MalformedRecords = multierr.Combine(
			items.Err, orders.Err, refunds.Err, transactions.Err)
		ctx = s.logg.WithFields(ctx, map[string]any{
			"excluded": excluded,
			"errors":   errors.Dump(result.Diagnostics.MalformedRecords),
		})
		s.logg.Warn(ctx, "malformed records excluded from pass")
	}

	return Snapshot{
		Orders:       orders.Valid,
		Items:        items.Valid,
		Refunds:      refunds.Valid,
		Transactions: transactions.Valid,
	}
}

func (s *Service) recordUnmatched(result *Result, match matcher.Result) {
	entry := UnmatchedCharge{
		OrderID:     match.Charge.OrderID,
		AmountCents: match.Charge.AmountCents,
		Date:        match.Charge.Date,
		Reason:      match.Reason,
	}
	s.metrics.IncUnmatched(match.Reason.String())
	if match.Reason == enums.UnmatchedReasonAmbiguous {
		result.Diagnostics.AmbiguousMatches = append(result.Diagnostics.AmbiguousMatches, entry)
		result.Stats["unmatched_ambiguous"]++
		return
	}
	result.Diagnostics.UnmatchedCharges = append(result.Diagnostics.UnmatchedCharges, entry)
	result.Stats["unmatched_no_candidate"]++
}

func (s *Service) emit(ctx context.Context, result *Result, policy retag.Policy, match matcher.Result, overrides map[string]string) {
	txn := *match.Transaction
	update := s.resolver.Resolve(ctx, match.Charge, txn, overrides)
	update.Fingerprint = retag.FingerprintUpdate(update)

	decision := policy.Decide(txn, update)
	switch decision {
	case enums.RetagDecisionEmit:
		result.Updates = append(result.Updates, update)
		s.metrics.IncUpdateEmitted(update.Kind.String())
		if txn.TaggedByTool {
			result.Stats["retag"]++
		} else {
			result.Stats["new_tag"]++
		}

	case enums.RetagDecisionSkipIdentical:
		result.Stats["already_up_to_date"]++

	case enums.RetagDecisionStaleSkip:
		result.Diagnostics.StaleSkips = append(result.Diagnostics.StaleSkips,
			SkippedUpdate{TransactionID: txn.ID, OrderID: update.OrderID, Decision: decision})
		result.Stats["stale_skip"]++
		s.metrics.IncStaleSkip()

	case enums.RetagDecisionManualSkip:
		result.Diagnostics.ManualSkips = append(result.Diagnostics.ManualSkips,
			SkippedUpdate{TransactionID: txn.ID, OrderID: update.OrderID, Decision: decision})
		result.Stats["manual_skip"]++

	case enums.RetagDecisionPrompt:
		result.PromptQueue = append(result.PromptQueue, PromptRequest{Transaction: txn, Update: update})
		result.Stats["prompt"]++
	}
}
