package options

// DefaultOptions is a 128-symbol vocabulary with an 80% chance that a typed
// word matches the hypothesis and equally likely error types.
var DefaultOptions = ErrorModelOptions{
	VocabularySize:     128,
	HitProbability:     0.8,
	InsertionFactor:    1,
	SubstitutionFactor: 1,
	DeletionFactor:     1,
}

// ErrorModelOptions parameterizes the error correction model.
type ErrorModelOptions struct {
	VocabularySize     int     `yaml:"vocabulary_size"`
	HitProbability     float64 `yaml:"hit_probability"`
	InsertionFactor    float64 `yaml:"insertion_factor"`
	SubstitutionFactor float64 `yaml:"substitution_factor"`
	DeletionFactor     float64 `yaml:"deletion_factor"` // relative weight of a dropped character
}

type Options interface {
	Apply(options *ErrorModelOptions)
}

type FuncConfig struct {
	ops func(options *ErrorModelOptions)
}

func (w FuncConfig) Apply(conf *ErrorModelOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *ErrorModelOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

func WithVocabularySize(size int) Options {
	return NewFuncOption(func(options *ErrorModelOptions) {
		options.VocabularySize = size
	})
}

func WithHitProbability(p float64) Options {
	return NewFuncOption(func(options *ErrorModelOptions) {
		options.HitProbability = p
	})
}

func WithInsertionFactor(f float64) Options {
	return NewFuncOption(func(options *ErrorModelOptions) {
		options.InsertionFactor = f
	})
}

func WithSubstitutionFactor(f float64) Options {
	return NewFuncOption(func(options *ErrorModelOptions) {
		options.SubstitutionFactor = f
	})
}

func WithDeletionFactor(f float64) Options {
	return NewFuncOption(func(options *ErrorModelOptions) {
		options.DeletionFactor = f
	})
}

// WithParameters replaces every parameter at once, e.g. with a stored profile.
func WithParameters(p ErrorModelOptions) Options {
	return NewFuncOption(func(options *ErrorModelOptions) {
		*options = p
	})
}
