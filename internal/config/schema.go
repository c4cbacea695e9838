package config

// Config is the root of the chains configuration file.
type Config struct {
	Chains ChainsConfig `yaml:"chains"`
}

// ChainsConfig holds the shared option defaults and the chain
// definitions.
type ChainsConfig struct {
	DefaultOptions OptionsConfig `yaml:"default_options"`
	Definitions    []ChainConfig `yaml:"definitions"`
}

// ChainConfig defines one named chain: its prompt messages, output key,
// call options and model selection.
type ChainConfig struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	OutputKey   string          `yaml:"output_key"`
	Messages    []MessageConfig `yaml:"messages"`
	Options     *OptionsConfig  `yaml:"options"`
	Model       *ModelConfig    `yaml:"model"`
}

// MessageConfig is one prompt message. Content renders as-is; Template
// is a text/template body over the listed variables. Exactly one of the
// two must be set.
type MessageConfig struct {
	Role      string   `yaml:"role"`
	Content   string   `yaml:"content"`
	Template  string   `yaml:"template"`
	Variables []string `yaml:"variables"`
}

// OptionsConfig mirrors the chain call options in YAML form. Zero
// values mean "not set" and inherit from the defaults.
type OptionsConfig struct {
	MaxTokens      int      `yaml:"max_tokens"`
	Temperature    *float64 `yaml:"temperature"`
	TopK           int      `yaml:"top_k"`
	TopP           *float64 `yaml:"top_p"`
	StopWords      []string `yaml:"stop_words"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// ModelConfig selects the backend for a chain.
type ModelConfig struct {
	Provider string `yaml:"provider"`
	ModelID  string `yaml:"model_id"`
}
