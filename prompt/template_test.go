package prompt

import (
	"errors"
	"testing"

	"github.com/stackmeld/llmchain/schema"
)

func TestTemplate_FormatPrompt(t *testing.T) {
	tmpl, err := NewTemplate("Hello {{.name}}, welcome to {{.place}}!", "name", "place")
	if err != nil {
		t.Fatalf("NewTemplate failed: %v", err)
	}

	value, err := tmpl.FormatPrompt(Args{"name": "Ana", "place": "Madrid"})
	if err != nil {
		t.Fatalf("FormatPrompt failed: %v", err)
	}

	messages := value.Messages()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	if messages[0].Role != schema.RoleUser {
		t.Errorf("Expected user role, got %q", messages[0].Role)
	}
	if messages[0].Content != "Hello Ana, welcome to Madrid!" {
		t.Errorf("Unexpected content: %q", messages[0].Content)
	}
}

func TestTemplate_MissingVariable(t *testing.T) {
	tmpl, err := NewTemplate("Hello {{.name}}", "name")
	if err != nil {
		t.Fatalf("NewTemplate failed: %v", err)
	}

	_, err = tmpl.FormatPrompt(Args{})
	if err == nil {
		t.Fatal("Expected error for missing variable")
	}

	missing, ok := AsMissingVariable(err)
	if !ok {
		t.Fatalf("Expected MissingVariableError, got %T", err)
	}
	if missing.Variable != "name" {
		t.Errorf("Expected variable 'name', got %q", missing.Variable)
	}
}

func TestTemplate_ParseError(t *testing.T) {
	if _, err := NewTemplate("Hello {{.name", "name"); err == nil {
		t.Fatal("Expected parse error for unterminated action")
	}
}

func TestMessageTemplate_Role(t *testing.T) {
	tmpl, err := NewMessageTemplate(schema.RoleSystem, "You answer in {{.lang}}.", "lang")
	if err != nil {
		t.Fatalf("NewMessageTemplate failed: %v", err)
	}

	value, err := tmpl.FormatPrompt(Args{"lang": "Spanish"})
	if err != nil {
		t.Fatalf("FormatPrompt failed: %v", err)
	}
	if role := value.Messages()[0].Role; role != schema.RoleSystem {
		t.Errorf("Expected system role, got %q", role)
	}
}

func TestChatTemplate_FormatPrompt(t *testing.T) {
	question, err := NewTemplate("{{.question}}", "question")
	if err != nil {
		t.Fatalf("NewTemplate failed: %v", err)
	}

	chat := NewChatTemplate().
		Message(schema.SystemMessage("You are a helpful assistant.")).
		Template(question)

	value, err := chat.FormatPrompt(Args{"question": "What is Go?"})
	if err != nil {
		t.Fatalf("FormatPrompt failed: %v", err)
	}

	messages := value.Messages()
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != schema.RoleSystem {
		t.Errorf("Expected first message role system, got %q", messages[0].Role)
	}
	if messages[1].Content != "What is Go?" {
		t.Errorf("Unexpected question content: %q", messages[1].Content)
	}
}

func TestChatTemplate_VariableOrder(t *testing.T) {
	first, err := NewTemplate("{{.a}} {{.b}}", "a", "b")
	if err != nil {
		t.Fatalf("NewTemplate failed: %v", err)
	}
	second, err := NewTemplate("{{.b}} {{.c}}", "b", "c")
	if err != nil {
		t.Fatalf("NewTemplate failed: %v", err)
	}

	chat := NewChatTemplate().Template(first).Template(second)

	vars := chat.InputVariables()
	want := []string{"a", "b", "c"}
	if len(vars) != len(want) {
		t.Fatalf("Expected %v, got %v", want, vars)
	}
	for i := range want {
		if vars[i] != want[i] {
			t.Errorf("Variable %d: expected %q, got %q", i, want[i], vars[i])
		}
	}
}

func TestChatTemplate_MissingVariableStopsRendering(t *testing.T) {
	tmpl, err := NewTemplate("{{.x}}", "x")
	if err != nil {
		t.Fatalf("NewTemplate failed: %v", err)
	}
	chat := NewChatTemplate().
		Message(schema.SystemMessage("static")).
		Template(tmpl)

	_, err = chat.FormatPrompt(Args{})
	var missing *MissingVariableError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingVariableError, got %v", err)
	}
}

func TestChatValue_String(t *testing.T) {
	chat := NewChatTemplate().
		Message(schema.SystemMessage("be brief")).
		Message(schema.UserMessage("hi"))

	value, err := chat.FormatPrompt(Args{})
	if err != nil {
		t.Fatalf("FormatPrompt failed: %v", err)
	}

	want := "system: be brief\nuser: hi"
	if got := value.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
