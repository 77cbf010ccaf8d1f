package tariplan

import "testing"

func TestDefaultBuildConfig(t *testing.T) {
	cfg := defaultBuildConfig()
	if cfg.maxSteps != DefaultMaxSteps {
		t.Errorf("Expected maxSteps %d, got %d", DefaultMaxSteps, cfg.maxSteps)
	}
	if cfg.requireFee {
		t.Error("Expected requireFee to be disabled by default")
	}
}

func TestBuildOptionFuncs(t *testing.T) {
	cfg := defaultBuildConfig()
	WithMaxSteps(12)(cfg)
	WithRequireFee()(cfg)
	if cfg.maxSteps != 12 {
		t.Errorf("Expected maxSteps 12, got %d", cfg.maxSteps)
	}
	if !cfg.requireFee {
		t.Error("Expected requireFee to be enabled")
	}
}

func TestSequenceOptions(t *testing.T) {
	seq := New(WithMinEpoch(3), WithMaxEpoch(7))
	if seq.minEpoch == nil || *seq.minEpoch != 3 {
		t.Errorf("minEpoch = %v", seq.minEpoch)
	}
	if seq.maxEpoch == nil || *seq.maxEpoch != 7 {
		t.Errorf("maxEpoch = %v", seq.maxEpoch)
	}

	u, err := seq.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	ins := u.Instructions()
	if ins.MinEpoch == nil || *ins.MinEpoch != 3 || ins.MaxEpoch == nil || *ins.MaxEpoch != 7 {
		t.Errorf("epochs not carried into instructions: %+v", ins)
	}
}
