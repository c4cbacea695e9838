package chains

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stackmeld/llmchain/llms"
	"github.com/stackmeld/llmchain/outputparsers"
	"github.com/stackmeld/llmchain/prompt"
)

const defaultOutputKey = "output"

// LLMChainBuilder accumulates the parts of an LLMChain and validates
// the wiring. It is single-use: Build consumes it.
type LLMChainBuilder struct {
	prompt    prompt.FormatPrompter
	llm       llms.Model
	outputKey string
	options   *CallOptions
	parser    outputparsers.OutputParser
	logger    *zerolog.Logger

	built bool
}

func NewLLMChainBuilder() *LLMChainBuilder {
	return &LLMChainBuilder{}
}

func (b *LLMChainBuilder) Prompt(p prompt.FormatPrompter) *LLMChainBuilder {
	b.prompt = p
	return b
}

func (b *LLMChainBuilder) LLM(m llms.Model) *LLMChainBuilder {
	b.llm = m
	return b
}

func (b *LLMChainBuilder) OutputKey(key string) *LLMChainBuilder {
	b.outputKey = key
	return b
}

func (b *LLMChainBuilder) Options(opts CallOptions) *LLMChainBuilder {
	b.options = &opts
	return b
}

func (b *LLMChainBuilder) OutputParser(p outputparsers.OutputParser) *LLMChainBuilder {
	b.parser = p
	return b
}

func (b *LLMChainBuilder) Logger(logger *zerolog.Logger) *LLMChainBuilder {
	b.logger = logger
	return b
}

// Build validates the wiring and constructs the chain. Missing prompt
// or LLM fail with a MissingObject error naming the part; the output
// key defaults to "output" and the parser to the identity parser. Any
// options are folded into the model client here, before the chain is
// returned.
func (b *LLMChainBuilder) Build() (*LLMChain, error) {
	if b.built {
		return nil, ErrBuilderConsumed
	}
	b.built = true

	if b.prompt == nil {
		return nil, missingObjectError("Prompt must be set")
	}
	if b.llm == nil {
		return nil, missingObjectError("LLM must be set")
	}

	if b.options != nil {
		b.llm.AddOptions(b.options.ToLLMOptions())
	}

	outputKey := b.outputKey
	if outputKey == "" {
		outputKey = defaultOutputKey
	}

	parser := b.parser
	if parser == nil {
		parser = outputparsers.NewSimple()
	}

	logger := b.logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &LLMChain{
		prompt:    b.prompt,
		llm:       b.llm,
		outputKey: outputKey,
		parser:    parser,
		logger:    logger,
	}, nil
}

// LLMChain renders named inputs into a chat prompt, dispatches it to a
// model client and post-processes the output. Immutable after Build;
// safe for concurrent use, calls on the same instance are independent.
type LLMChain struct {
	prompt    prompt.FormatPrompter
	llm       llms.Model
	outputKey string
	parser    outputparsers.OutputParser
	logger    *zerolog.Logger
}

var _ Chain = (*LLMChain)(nil)

func (c *LLMChain) InputKeys() []string {
	return c.prompt.InputVariables()
}

func (c *LLMChain) OutputKeys() []string {
	return []string{c.outputKey}
}

func (c *LLMChain) Call(ctx context.Context, args prompt.Args) (*llms.GenerateResult, error) {
	value, err := c.prompt.FormatPrompt(args)
	if err != nil {
		return nil, formatError(err)
	}
	c.logger.Debug().Str("prompt", value.String()).Msg("formatted prompt")

	result, err := c.llm.Generate(ctx, value.Messages())
	if err != nil {
		return nil, llmError(err)
	}

	parsed, err := c.parser.Parse(ctx, result.Generation)
	if err != nil {
		return nil, parseError(err)
	}
	result.Generation = parsed

	return result, nil
}

// Invoke returns the raw generation text. The output parser is
// deliberately not applied here; only Call parses.
func (c *LLMChain) Invoke(ctx context.Context, args prompt.Args) (string, error) {
	value, err := c.prompt.FormatPrompt(args)
	if err != nil {
		return "", formatError(err)
	}
	c.logger.Debug().Str("prompt", value.String()).Msg("formatted prompt")

	result, err := c.llm.Generate(ctx, value.Messages())
	if err != nil {
		return "", llmError(err)
	}

	return result.Generation, nil
}

// Stream renders the prompt eagerly, establishes the model stream, and
// returns it with each item's error re-typed into the chain taxonomy.
// Failures before the first item abort here; failures mid-stream come
// back from Recv on the returned Stream.
func (c *LLMChain) Stream(ctx context.Context, args prompt.Args) (Stream, error) {
	value, err := c.prompt.FormatPrompt(args)
	if err != nil {
		return nil, formatError(err)
	}
	c.logger.Debug().Str("prompt", value.String()).Msg("formatted prompt")

	llmStream, err := c.llm.Stream(ctx, value.Messages())
	if err != nil {
		return nil, llmError(err)
	}

	return liftStream(llmStream), nil
}
