package prompt

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/stackmeld/llmchain/schema"
)

// Template renders a single chat message from a text/template body.
// The declared variables are validated against the Args before the
// template executes.
type Template struct {
	role schema.Role
	vars []string
	tmpl *template.Template
}

// NewTemplate parses text as a user-role message template.
func NewTemplate(text string, vars ...string) (*Template, error) {
	return NewMessageTemplate(schema.RoleUser, text, vars...)
}

// NewMessageTemplate parses text as a message template with the given role.
func NewMessageTemplate(role schema.Role, text string, vars ...string) (*Template, error) {
	tmpl, err := template.New(string(role)).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("prompt: failed to parse template: %w", err)
	}

	return &Template{role: role, vars: slices.Clone(vars), tmpl: tmpl}, nil
}

func (t *Template) InputVariables() []string {
	return slices.Clone(t.vars)
}

func (t *Template) FormatPrompt(args Args) (Value, error) {
	msg, err := t.render(args)
	if err != nil {
		return nil, err
	}
	return chatValue{msg}, nil
}

func (t *Template) render(args Args) (schema.Message, error) {
	for _, v := range t.vars {
		if _, ok := args[v]; !ok {
			return schema.Message{}, &MissingVariableError{Variable: v}
		}
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, map[string]any(args)); err != nil {
		return schema.Message{}, fmt.Errorf("prompt: template execution failed: %w", err)
	}

	return schema.Message{Role: t.role, Content: buf.String()}, nil
}

// ChatTemplate renders an ordered sequence of chat messages, mixing
// static messages and templates.
type ChatTemplate struct {
	parts []chatPart
	vars  []string
}

type chatPart struct {
	static *schema.Message
	tmpl   *Template
}

func NewChatTemplate() *ChatTemplate {
	return &ChatTemplate{}
}

// Message appends a static message that renders as-is.
func (t *ChatTemplate) Message(msg schema.Message) *ChatTemplate {
	t.parts = append(t.parts, chatPart{static: &msg})
	return t
}

// Template appends a message template. Its variables are added to the
// chat template's declared variables, preserving first-seen order.
func (t *ChatTemplate) Template(tmpl *Template) *ChatTemplate {
	t.parts = append(t.parts, chatPart{tmpl: tmpl})
	for _, v := range tmpl.vars {
		if !slices.Contains(t.vars, v) {
			t.vars = append(t.vars, v)
		}
	}
	return t
}

func (t *ChatTemplate) InputVariables() []string {
	return slices.Clone(t.vars)
}

func (t *ChatTemplate) FormatPrompt(args Args) (Value, error) {
	msgs := make(chatValue, 0, len(t.parts))
	for _, p := range t.parts {
		if p.static != nil {
			msgs = append(msgs, *p.static)
			continue
		}
		msg, err := p.tmpl.render(args)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

type chatValue []schema.Message

func (v chatValue) Messages() []schema.Message {
	return []schema.Message(v)
}

func (v chatValue) String() string {
	var sb strings.Builder
	for i, msg := range v {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(msg.Role))
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
	}
	return sb.String()
}
