package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stackmeld/llmchain/chains"
	"github.com/stackmeld/llmchain/internal/config"
	"github.com/stackmeld/llmchain/llms"
	"github.com/stackmeld/llmchain/prompt"
	"github.com/stackmeld/llmchain/schema"
)

// ModelFactory produces a model client for a chain's model selection.
// A nil ModelConfig in the definition is passed through as the zero
// value so the factory can fall back to its default provider.
type ModelFactory func(ctx context.Context, cfg config.ModelConfig) (llms.Model, error)

// FromConfig builds one chain per definition and returns a runner
// holding them.
func FromConfig(ctx context.Context, cfg *config.Config, factory ModelFactory, logger *zerolog.Logger) (*Runner, error) {
	r := New(logger)

	for _, def := range cfg.Chains.Definitions {
		chain, err := buildChain(ctx, def, factory, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to build chain %q: %w", def.Name, err)
		}
		r.Register(def.Name, chain)
	}

	return r, nil
}

func buildChain(ctx context.Context, def config.ChainConfig, factory ModelFactory, logger *zerolog.Logger) (chains.Chain, error) {
	prompter, err := buildPrompt(def)
	if err != nil {
		return nil, err
	}

	var modelCfg config.ModelConfig
	if def.Model != nil {
		modelCfg = *def.Model
	}
	model, err := factory(ctx, modelCfg)
	if err != nil {
		return nil, err
	}

	builder := chains.NewLLMChainBuilder().
		Prompt(prompter).
		LLM(model).
		OutputKey(def.OutputKey).
		Logger(logger)

	if def.Options != nil {
		builder = builder.Options(toChainOptions(*def.Options))
	}

	return builder.Build()
}

func buildPrompt(def config.ChainConfig) (prompt.FormatPrompter, error) {
	tmpl := prompt.NewChatTemplate()
	for _, msg := range def.Messages {
		role := schema.Role(msg.Role)
		if role == "" {
			role = schema.RoleUser
		}

		if msg.Content != "" {
			tmpl.Message(schema.Message{Role: role, Content: msg.Content})
			continue
		}

		part, err := prompt.NewMessageTemplate(role, msg.Template, msg.Variables...)
		if err != nil {
			return nil, err
		}
		tmpl.Template(part)
	}
	return tmpl, nil
}

func toChainOptions(opts config.OptionsConfig) chains.CallOptions {
	var out chains.CallOptions

	if opts.MaxTokens > 0 {
		out.MaxTokens = &opts.MaxTokens
	}
	out.Temperature = opts.Temperature
	if opts.TopK > 0 {
		out.TopK = &opts.TopK
	}
	out.TopP = opts.TopP
	if len(opts.StopWords) > 0 {
		words := opts.StopWords
		out.StopWords = &words
	}
	if opts.TimeoutSeconds > 0 {
		timeout := time.Duration(opts.TimeoutSeconds) * time.Second
		out.Timeout = &timeout
	}

	return out
}
