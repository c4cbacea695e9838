package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultMaxTokens = 256

// LoadChainsConfig reads the chain definitions from the YAML file at
// CHAINS_CONFIG_PATH (default configs/chains.yaml), applies defaults
// and validates them.
func LoadChainsConfig() (*Config, error) {
	path := os.Getenv("CHAINS_CONFIG_PATH")
	if path == "" {
		path = "configs/chains.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	defaults := &cfg.Chains.DefaultOptions
	if defaults.MaxTokens == 0 {
		defaults.MaxTokens = defaultMaxTokens
	}

	for i := range cfg.Chains.Definitions {
		def := &cfg.Chains.Definitions[i]
		if def.OutputKey == "" {
			def.OutputKey = "output"
		}
		if def.Options == nil {
			opts := *defaults
			def.Options = &opts
			continue
		}
		mergeOptions(def.Options, defaults)
	}
}

// mergeOptions fills the unset fields of opts from the defaults.
func mergeOptions(opts *OptionsConfig, defaults *OptionsConfig) {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaults.MaxTokens
	}
	if opts.Temperature == nil {
		opts.Temperature = defaults.Temperature
	}
	if opts.TopK == 0 {
		opts.TopK = defaults.TopK
	}
	if opts.TopP == nil {
		opts.TopP = defaults.TopP
	}
	if len(opts.StopWords) == 0 {
		opts.StopWords = defaults.StopWords
	}
	if opts.TimeoutSeconds == 0 {
		opts.TimeoutSeconds = defaults.TimeoutSeconds
	}
}

func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for _, def := range c.Chains.Definitions {
		if def.Name == "" {
			return fmt.Errorf("chain definition without a name")
		}
		if seen[def.Name] {
			return fmt.Errorf("duplicate chain name %q", def.Name)
		}
		seen[def.Name] = true

		if len(def.Messages) == 0 {
			return fmt.Errorf("chain %q has no messages", def.Name)
		}
		for _, msg := range def.Messages {
			if msg.Content == "" && msg.Template == "" {
				return fmt.Errorf("chain %q has a message with neither content nor template", def.Name)
			}
			if msg.Content != "" && msg.Template != "" {
				return fmt.Errorf("chain %q has a message with both content and template", def.Name)
			}
		}
	}
	return nil
}
