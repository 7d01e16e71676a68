package config

import (
	"errors"
	"testing"

	pkgerrors "github.com/angelmondragon/ledgertag/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Engine.MaxDaysBetweenChargeAndPosting != 3 {
		t.Fatalf("expected default posting window of 3 days, got %d", cfg.Engine.MaxDaysBetweenChargeAndPosting)
	}
	if cfg.Engine.DefaultCategory != "Shopping" {
		t.Fatalf("unexpected default category %q", cfg.Engine.DefaultCategory)
	}
	if cfg.Engine.ReturnCategory != "Returned Purchase" {
		t.Fatalf("unexpected return category %q", cfg.Engine.ReturnCategory)
	}
	if cfg.Engine.RetagChanged || cfg.Engine.PromptRetag || cfg.Engine.DryRun {
		t.Fatal("retag/prompt/dry-run must default off")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvMaxDays, "7")
	t.Setenv(EnvRetagChanged, "true")
	t.Setenv(EnvDefaultCategory, "Misc Expense")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Engine.MaxDaysBetweenChargeAndPosting != 7 {
		t.Fatalf("expected window override of 7, got %d", cfg.Engine.MaxDaysBetweenChargeAndPosting)
	}
	if !cfg.Engine.RetagChanged {
		t.Fatal("expected retag changed override")
	}
	if cfg.Engine.DefaultCategory != "Misc Expense" {
		t.Fatalf("unexpected default category %q", cfg.Engine.DefaultCategory)
	}
}

func TestLoad_RejectsNegativeWindow(t *testing.T) {
	t.Setenv(EnvMaxDays, "-1")

	_, err := Load()
	if err == nil {
		t.Fatal("expected negative window to be rejected")
	}
	var typed *pkgerrors.Error
	if !errors.As(err, &typed) || typed.Code() != pkgerrors.CodeInvalidConfig {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestEngineConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EngineConfig)
	}{
		{"negative grace", func(c *EngineConfig) { c.GraceDaysBeforeCharge = -1 }},
		{"negative tolerance", func(c *EngineConfig) { c.AmountTolerancePerItemCents = -5 }},
		{"empty default category", func(c *EngineConfig) { c.DefaultCategory = " " }},
		{"empty return category", func(c *EngineConfig) { c.ReturnCategory = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := EngineConfig{
				MaxDaysBetweenChargeAndPosting: 3,
				DefaultCategory:                "Shopping",
				ReturnCategory:                 "Returned Purchase",
				AmountTolerancePerItemCents:    1,
			}
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}
