package problemgen

// Config tunes the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question; the first
	// failure rejects it.
	Validators []Validator

	// MaxPriorQuestions bounds how many earlier questions on the same
	// topic are quoted back in the prompt.
	MaxPriorQuestions int
}

// DefaultConfig checks shape only, so a question whose answer text
// differs from every option is still served.
func DefaultConfig() Config {
	return Config{
		Validators:        []Validator{&StructuralValidator{}},
		MaxPriorQuestions: 8,
	}
}

// StrictConfig also requires the answer to be one of the options.
func StrictConfig() Config {
	cfg := DefaultConfig()
	cfg.Validators = append(cfg.Validators, &AnswerInOptionsValidator{})
	return cfg
}
