package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	pkgerrors "github.com/angelmondragon/ledgertag/pkg/errors"
)

// EnvPrefix is empty because every variable carries the LEDGERTAG_ prefix in
// its envconfig tag.
const EnvPrefix = ""

// Environment variable names shared with tests and deploy tooling.
const (
	EnvLogLevel        = "LEDGERTAG_LOG_LEVEL"
	EnvMaxDays         = "LEDGERTAG_MAX_DAYS_BETWEEN_CHARGE_AND_POSTING"
	EnvGraceDays       = "LEDGERTAG_GRACE_DAYS_BEFORE_CHARGE"
	EnvRetagChanged    = "LEDGERTAG_RETAG_CHANGED"
	EnvPromptRetag     = "LEDGERTAG_PROMPT_RETAG"
	EnvDefaultCategory = "LEDGERTAG_DEFAULT_CATEGORY"
	EnvReturnCategory  = "LEDGERTAG_RETURN_CATEGORY"
	EnvToleranceCents  = "LEDGERTAG_AMOUNT_TOLERANCE_CENTS"
	EnvDryRun          = "LEDGERTAG_DRY_RUN"
	EnvSnapshotPath    = "LEDGERTAG_SNAPSHOT_PATH"
)

type Config struct {
	App    AppConfig
	Engine EngineConfig
	Source SourceConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LEDGERTAG_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"LEDGERTAG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LEDGERTAG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

// EngineConfig is the recognized option bundle for one reconciliation pass.
type EngineConfig struct {
	// MaxDaysBetweenChargeAndPosting bounds how long after a charge date a
	// transaction may post and still match.
	MaxDaysBetweenChargeAndPosting int `envconfig:"LEDGERTAG_MAX_DAYS_BETWEEN_CHARGE_AND_POSTING" default:"3"`
	// GraceDaysBeforeCharge tolerates postings slightly before the charge
	// date (clock skew between the retailer and the institution).
	GraceDaysBeforeCharge int    `envconfig:"LEDGERTAG_GRACE_DAYS_BEFORE_CHARGE" default:"0"`
	RetagChanged          bool   `envconfig:"LEDGERTAG_RETAG_CHANGED" default:"false"`
	PromptRetag           bool   `envconfig:"LEDGERTAG_PROMPT_RETAG" default:"false"`
	DefaultCategory       string `envconfig:"LEDGERTAG_DEFAULT_CATEGORY" default:"Shopping"`
	ReturnCategory        string `envconfig:"LEDGERTAG_RETURN_CATEGORY" default:"Returned Purchase"`
	// AmountTolerancePerItemCents scales the order-total validation window:
	// an order's charges may drift from its recorded total by this many
	// cents per item before being flagged precision-risk.
	AmountTolerancePerItemCents int  `envconfig:"LEDGERTAG_AMOUNT_TOLERANCE_CENTS" default:"1"`
	DryRun                      bool `envconfig:"LEDGERTAG_DRY_RUN" default:"false"`
}

// Validate rejects unusable engine options. This is the engine's only fatal
// error class and runs once before any matching begins.
func (e EngineConfig) Validate() error {
	if e.MaxDaysBetweenChargeAndPosting < 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidConfig,
			fmt.Sprintf("max days between charge and posting must be >= 0, got %d", e.MaxDaysBetweenChargeAndPosting))
	}
	if e.GraceDaysBeforeCharge < 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidConfig,
			fmt.Sprintf("grace days before charge must be >= 0, got %d", e.GraceDaysBeforeCharge))
	}
	if e.AmountTolerancePerItemCents < 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidConfig,
			fmt.Sprintf("amount tolerance must be >= 0, got %d", e.AmountTolerancePerItemCents))
	}
	if strings.TrimSpace(e.DefaultCategory) == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidConfig, "default category must not be empty")
	}
	if strings.TrimSpace(e.ReturnCategory) == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidConfig, "return category must not be empty")
	}
	return nil
}

type SourceConfig struct {
	// SnapshotPath points at a normalized JSON snapshot of records. The
	// engine itself never reads files; only the source adapter does.
	SnapshotPath string `envconfig:"LEDGERTAG_SNAPSHOT_PATH" default:""`
}
