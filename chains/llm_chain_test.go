package chains

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stackmeld/llmchain/llms"
	"github.com/stackmeld/llmchain/prompt"
	"github.com/stackmeld/llmchain/schema"
)

// MockModel implements llms.Model for tests.
type MockModel struct {
	// What the mock should return
	ResultToReturn *llms.GenerateResult
	ErrorToReturn  error
	ChunksToReturn []schema.StreamChunk
	StreamErr      error
	StreamSetupErr error

	// EchoFirstMessage makes Generate answer with the first message's
	// content, ignoring ResultToReturn.
	EchoFirstMessage bool

	// Track calls for verification
	GenerateCalls   int
	LastMessages    []schema.Message
	AddOptionsCalls []llms.CallOptions
	SawCancellation bool
}

func (m *MockModel) Generate(ctx context.Context, messages []schema.Message) (*llms.GenerateResult, error) {
	m.GenerateCalls++
	m.LastMessages = messages

	if err := ctx.Err(); err != nil {
		m.SawCancellation = true
		return nil, &llms.Error{Provider: "mock", Kind: llms.ErrKindCanceled, Message: "request canceled", Cause: err}
	}

	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	if m.EchoFirstMessage {
		return &llms.GenerateResult{Generation: messages[0].Content}, nil
	}

	cpy := *m.ResultToReturn
	return &cpy, nil
}

func (m *MockModel) Stream(ctx context.Context, messages []schema.Message) (llms.Stream, error) {
	m.LastMessages = messages
	if m.StreamSetupErr != nil {
		return nil, m.StreamSetupErr
	}
	return &MockStream{chunks: m.ChunksToReturn, err: m.StreamErr}, nil
}

func (m *MockModel) AddOptions(opts llms.CallOptions) {
	m.AddOptionsCalls = append(m.AddOptionsCalls, opts)
}

// MockStream replays chunks, then the configured error or io.EOF.
type MockStream struct {
	chunks []schema.StreamChunk
	err    error
	pos    int
	Closed bool
}

func (s *MockStream) Recv() (schema.StreamChunk, error) {
	if s.pos < len(s.chunks) {
		chunk := s.chunks[s.pos]
		s.pos++
		return chunk, nil
	}
	if s.err != nil {
		return schema.StreamChunk{}, s.err
	}
	return schema.StreamChunk{}, io.EOF
}

func (s *MockStream) Close() error {
	s.Closed = true
	return nil
}

// upperParser uppercases whatever it gets.
type upperParser struct{}

func (upperParser) Parse(_ context.Context, text string) (string, error) {
	return strings.ToUpper(text), nil
}

// failParser always fails.
type failParser struct{}

func (failParser) Parse(_ context.Context, _ string) (string, error) {
	return "", errors.New("malformed output")
}

// fixedParser replaces the output with a fixed string.
type fixedParser struct{ out string }

func (p fixedParser) Parse(_ context.Context, _ string) (string, error) {
	return p.out, nil
}

func testTemplate(t *testing.T) *prompt.Template {
	t.Helper()
	tmpl, err := prompt.NewTemplate("Mi nombre es: {{.nombre}}", "nombre")
	if err != nil {
		t.Fatalf("NewTemplate failed: %v", err)
	}
	return tmpl
}

func TestLLMChainBuilder_MissingPrompt(t *testing.T) {
	_, err := NewLLMChainBuilder().
		LLM(&MockModel{}).
		Build()
	if err == nil {
		t.Fatal("Expected error for missing prompt")
	}

	chainErr, ok := AsError(err)
	if !ok {
		t.Fatalf("Expected chains.Error, got %T", err)
	}
	if chainErr.Kind != ErrKindMissingObject {
		t.Errorf("Expected kind %q, got %q", ErrKindMissingObject, chainErr.Kind)
	}
	if chainErr.Message != "Prompt must be set" {
		t.Errorf("Expected message 'Prompt must be set', got %q", chainErr.Message)
	}
}

func TestLLMChainBuilder_MissingLLM(t *testing.T) {
	_, err := NewLLMChainBuilder().
		Prompt(testTemplate(t)).
		Build()
	if err == nil {
		t.Fatal("Expected error for missing llm")
	}

	chainErr, ok := AsError(err)
	if !ok {
		t.Fatalf("Expected chains.Error, got %T", err)
	}
	if chainErr.Kind != ErrKindMissingObject {
		t.Errorf("Expected kind %q, got %q", ErrKindMissingObject, chainErr.Kind)
	}
	if chainErr.Message != "LLM must be set" {
		t.Errorf("Expected message 'LLM must be set', got %q", chainErr.Message)
	}
}

func TestLLMChainBuilder_Defaults(t *testing.T) {
	model := &MockModel{ResultToReturn: &llms.GenerateResult{Generation: "hola"}}

	chain, err := NewLLMChainBuilder().
		Prompt(testTemplate(t)).
		LLM(model).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	keys := chain.OutputKeys()
	if len(keys) != 1 || keys[0] != "output" {
		t.Errorf("Expected output keys [output], got %v", keys)
	}

	// Default parser is identity: the generation passes through as-is.
	result, err := chain.Call(context.Background(), prompt.Args{"nombre": "luis"})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result.Generation != "hola" {
		t.Errorf("Expected generation 'hola', got %q", result.Generation)
	}

	// No options provided: the model's option set must be untouched.
	if len(model.AddOptionsCalls) != 0 {
		t.Errorf("Expected no AddOptions calls, got %d", len(model.AddOptionsCalls))
	}
}

func TestLLMChainBuilder_Consumed(t *testing.T) {
	builder := NewLLMChainBuilder().
		Prompt(testTemplate(t)).
		LLM(&MockModel{})

	if _, err := builder.Build(); err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	if _, err := builder.Build(); !errors.Is(err, ErrBuilderConsumed) {
		t.Errorf("Expected ErrBuilderConsumed on second Build, got %v", err)
	}
}

func TestLLMChainBuilder_OptionsFolding(t *testing.T) {
	model := &MockModel{ResultToReturn: &llms.GenerateResult{Generation: "x"}}
	temperature := 0.2

	chain, err := NewLLMChainBuilder().
		Prompt(testTemplate(t)).
		LLM(model).
		Options(CallOptions{Temperature: &temperature}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Folded exactly once, before any generate was dispatched.
	if len(model.AddOptionsCalls) != 1 {
		t.Fatalf("Expected exactly 1 AddOptions call, got %d", len(model.AddOptionsCalls))
	}
	if model.GenerateCalls != 0 {
		t.Fatalf("Expected AddOptions before any Generate, but Generate ran %d times", model.GenerateCalls)
	}

	folded := model.AddOptionsCalls[0]
	if folded.Temperature == nil || *folded.Temperature != 0.2 {
		t.Errorf("Expected folded temperature=0.2, got %v", folded.Temperature)
	}

	if _, err := chain.Call(context.Background(), prompt.Args{"nombre": "luis"}); err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if len(model.AddOptionsCalls) != 1 {
		t.Errorf("Expected no further AddOptions calls, got %d", len(model.AddOptionsCalls))
	}
}

func TestLLMChain_InputKeys(t *testing.T) {
	chain, err := NewLLMChainBuilder().
		Prompt(testTemplate(t)).
		LLM(&MockModel{}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	keys := chain.InputKeys()
	if len(keys) != 1 || keys[0] != "nombre" {
		t.Errorf("Expected input keys [nombre], got %v", keys)
	}
}

func TestLLMChain_InvokeRendersPrompt(t *testing.T) {
	model := &MockModel{EchoFirstMessage: true}

	chain, err := NewLLMChainBuilder().
		Prompt(testTemplate(t)).
		LLM(model).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	output, err := chain.Invoke(context.Background(), prompt.Args{"nombre": "luis"})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if output != "Mi nombre es: luis" {
		t.Errorf("Expected 'Mi nombre es: luis', got %q", output)
	}

	if len(model.LastMessages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(model.LastMessages))
	}
	if model.LastMessages[0].Role != schema.RoleUser {
		t.Errorf("Expected user role, got %q", model.LastMessages[0].Role)
	}
}

func TestLLMChain_MissingInput(t *testing.T) {
	chain, err := NewLLMChainBuilder().
		Prompt(testTemplate(t)).
		LLM(&MockModel{EchoFirstMessage: true}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	_, err = chain.Call(context.Background(), prompt.Args{})
	if err == nil {
		t.Fatal("Expected error for missing input variable")
	}

	chainErr, ok := AsError(err)
	if !ok {
		t.Fatalf("Expected chains.Error, got %T", err)
	}
	if chainErr.Kind != ErrKindMissingInput {
		t.Errorf("Expected kind %q, got %q", ErrKindMissingInput, chainErr.Kind)
	}
	if chainErr.Message != "nombre" {
		t.Errorf("Expected missing variable 'nombre', got %q", chainErr.Message)
	}
}

func TestLLMChain_CallAppliesParser_InvokeDoesNot(t *testing.T) {
	model := &MockModel{ResultToReturn: &llms.GenerateResult{Generation: "abc"}}

	chain, err := NewLLMChainBuilder().
		Prompt(testTemplate(t)).
		LLM(model).
		OutputParser(upperParser{}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	args := prompt.Args{"nombre": "luis"}

	result, err := chain.Call(context.Background(), args)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result.Generation != "ABC" {
		t.Errorf("Expected Call generation 'ABC', got %q", result.Generation)
	}

	output, err := chain.Invoke(context.Background(), args)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if output != "abc" {
		t.Errorf("Expected Invoke output 'abc' (unparsed), got %q", output)
	}
}

func TestLLMChain_MetadataPreserved(t *testing.T) {
	model := &MockModel{ResultToReturn: &llms.GenerateResult{
		Generation: "ignored",
		StopReason: "end_turn",
		Usage:      &llms.Usage{OutputTokens: 7, TotalTokens: 7},
	}}

	chain, err := NewLLMChainBuilder().
		Prompt(testTemplate(t)).
		LLM(model).
		OutputParser(fixedParser{out: "OK"}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	result, err := chain.Call(context.Background(), prompt.Args{"nombre": "luis"})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	if result.Generation != "OK" {
		t.Errorf("Expected generation 'OK', got %q", result.Generation)
	}
	if result.StopReason != "end_turn" {
		t.Errorf("Expected stop reason preserved, got %q", result.StopReason)
	}
	if result.Usage == nil || result.Usage.OutputTokens != 7 {
		t.Errorf("Expected usage preserved, got %+v", result.Usage)
	}
}

func TestLLMChain_ModelError(t *testing.T) {
	modelErr := &llms.Error{Provider: "mock", Kind: llms.ErrKindProvider, Message: "boom"}
	chain, err := NewLLMChainBuilder().
		Prompt(testTemplate(t)).
		LLM(&MockModel{ErrorToReturn: modelErr}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	_, err = chain.Call(context.Background(), prompt.Args{"nombre": "luis"})
	chainErr, ok := AsError(err)
	if !ok || chainErr.Kind != ErrKindLLM {
		t.Fatalf("Expected chain error of kind llm, got %v", err)
	}

	// The backend error stays reachable through the chain error.
	if inner, ok := llms.AsError(err); !ok || inner.Message != "boom" {
		t.Errorf("Expected wrapped llms.Error 'boom', got %v", err)
	}
}

func TestLLMChain_ParserError(t *testing.T) {
	chain, err := NewLLMChainBuilder().
		Prompt(testTemplate(t)).
		LLM(&MockModel{ResultToReturn: &llms.GenerateResult{Generation: "x"}}).
		OutputParser(failParser{}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	_, err = chain.Call(context.Background(), prompt.Args{"nombre": "luis"})
	chainErr, ok := AsError(err)
	if !ok || chainErr.Kind != ErrKindParse {
		t.Fatalf("Expected chain error of kind parse, got %v", err)
	}

	// Invoke skips the parser, so the same wiring succeeds.
	if _, err := chain.Invoke(context.Background(), prompt.Args{"nombre": "luis"}); err != nil {
		t.Errorf("Expected Invoke to succeed without the parser, got %v", err)
	}
}

func TestLLMChain_CancellationReachesModel(t *testing.T) {
	model := &MockModel{ResultToReturn: &llms.GenerateResult{Generation: "x"}}
	chain, err := NewLLMChainBuilder().
		Prompt(testTemplate(t)).
		LLM(model).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = chain.Call(ctx, prompt.Args{"nombre": "luis"})
	if err == nil {
		t.Fatal("Expected error for canceled context")
	}
	if !model.SawCancellation {
		t.Error("Expected the model client to observe cancellation")
	}

	chainErr, ok := AsError(err)
	if !ok || chainErr.Kind != ErrKindLLM {
		t.Fatalf("Expected chain error of kind llm, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled in the chain, got %v", err)
	}
}
