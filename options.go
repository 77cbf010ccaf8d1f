package tariplan

// DefaultMaxSteps is the default step limit enforced by Build.
const DefaultMaxSteps = 256

// SequenceOption configures a Sequence.
type SequenceOption func(*Sequence)

// BuildOption configures the Build() operation.
type BuildOption func(*buildConfig)

// buildConfig holds configuration for the Build() method.
type buildConfig struct {
	maxSteps   int
	requireFee bool
}

// defaultBuildConfig returns the default build configuration.
func defaultBuildConfig() *buildConfig {
	return &buildConfig{
		maxSteps:   DefaultMaxSteps,
		requireFee: false,
	}
}

// WithMinEpoch sets the first epoch in which the sequence may execute.
func WithMinEpoch(epoch uint64) SequenceOption {
	return func(s *Sequence) {
		s.minEpoch = &epoch
	}
}

// WithMaxEpoch sets the last epoch in which the sequence may execute.
func WithMaxEpoch(epoch uint64) SequenceOption {
	return func(s *Sequence) {
		s.maxEpoch = &epoch
	}
}

// WithMaxSteps sets a maximum step count for the sequence.
// Default is 256 steps. Values below 1 disable the limit.
func WithMaxSteps(max int) BuildOption {
	return func(c *buildConfig) {
		c.maxSteps = max
	}
}

// WithRequireFee makes Build reject sequences whose first step is not a
// fee reservation. Off by default: reserving fees first is a usage
// precondition the executor enforces.
func WithRequireFee() BuildOption {
	return func(c *buildConfig) {
		c.requireFee = true
	}
}
