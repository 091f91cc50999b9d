package config

import "testing"

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() should validate, got: %v", err)
	}
	if cfg.MaxConcurrency != 4 {
		t.Errorf("MaxConcurrency = %d, want 4", cfg.MaxConcurrency)
	}
	if cfg.SchedulingStrategy == nil {
		t.Error("SchedulingStrategy should not be nil")
	}
	if !cfg.EnableDynamicScheduling {
		t.Error("EnableDynamicScheduling should default true")
	}
}

func TestPresets_AreValid(t *testing.T) {
	presets := map[string]*Config{
		"Development": Development(),
		"Production":  Production(),
		"Testing":     Testing(),
	}
	for name, cfg := range presets {
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s preset should validate, got: %v", name, err)
		}
	}
}

func TestTesting_IsSerial(t *testing.T) {
	cfg := Testing()
	if cfg.MaxConcurrency != 1 {
		t.Errorf("Testing().MaxConcurrency = %d, want 1", cfg.MaxConcurrency)
	}
}

func TestValidate_RejectsBadMaxConcurrency(t *testing.T) {
	cfg := Default()
	cfg.MaxConcurrency = 0
	if err := cfg.Validate(); err != ErrInvalidMaxConcurrency {
		t.Errorf("Validate() = %v, want ErrInvalidMaxConcurrency", err)
	}
}

func TestValidate_RejectsNegativeTimeout(t *testing.T) {
	cfg := Default()
	cfg.DefaultNodeTimeout = -1
	if err := cfg.Validate(); err != ErrInvalidNodeTimeout {
		t.Errorf("Validate() = %v, want ErrInvalidNodeTimeout", err)
	}
}

func TestValidate_RejectsMissingPolicy(t *testing.T) {
	cfg := Default()
	cfg.SchedulingStrategy = nil
	if err := cfg.Validate(); err != ErrMissingPolicy {
		t.Errorf("Validate() = %v, want ErrMissingPolicy", err)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.MaxConcurrency = 99
	if cfg.MaxConcurrency == 99 {
		t.Error("mutating clone should not affect original")
	}
}
