package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stackmeld/llmchain/internal/runner/mocks"
	"github.com/stackmeld/llmchain/llms"
	"github.com/stackmeld/llmchain/prompt"
	"go.uber.org/mock/gomock"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestRunner_Call(t *testing.T) {
	tests := []struct {
		name      string
		chainName string
		callName  string
		result    *llms.GenerateResult
		chainErr  error
		expectErr error
	}{
		{
			name:      "registered chain succeeds",
			chainName: "translate",
			callName:  "translate",
			result:    &llms.GenerateResult{Generation: "hola", StopReason: "end_turn"},
		},
		{
			name:      "chain failure propagates",
			chainName: "translate",
			callName:  "translate",
			chainErr:  errors.New("backend unavailable"),
		},
		{
			name:      "unknown chain",
			chainName: "translate",
			callName:  "summarize",
			expectErr: ErrUnknownChain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			args := prompt.Args{"text": "hello"}
			mockChain := mocks.NewMockChain(ctrl)
			if tt.callName == tt.chainName && tt.expectErr == nil {
				mockChain.EXPECT().Call(gomock.Any(), args).Return(tt.result, tt.chainErr)
			}

			r := New(testLogger())
			r.Register(tt.chainName, mockChain)

			result, err := r.Call(context.Background(), tt.callName, args)

			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("expected error %v, got %v", tt.expectErr, err)
				}
				return
			}
			if tt.chainErr != nil {
				if !errors.Is(err, tt.chainErr) {
					t.Fatalf("expected chain error, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Generation != tt.result.Generation {
				t.Errorf("expected generation %q, got %q", tt.result.Generation, result.Generation)
			}
		})
	}
}

func TestRunner_Invoke(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	args := prompt.Args{"text": "hello"}
	mockChain := mocks.NewMockChain(ctrl)
	mockChain.EXPECT().Invoke(gomock.Any(), args).Return("raw output", nil)

	r := New(testLogger())
	r.Register("translate", mockChain)

	output, err := r.Invoke(context.Background(), "translate", args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "raw output" {
		t.Errorf("expected 'raw output', got %q", output)
	}
}

func TestRunner_Names(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := New(testLogger())
	r.Register("b-chain", mocks.NewMockChain(ctrl))
	r.Register("a-chain", mocks.NewMockChain(ctrl))
	r.Register("b-chain", mocks.NewMockChain(ctrl)) // replace, not duplicate

	names := r.Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}
	if names[0] != "b-chain" || names[1] != "a-chain" {
		t.Errorf("expected registration order [b-chain a-chain], got %v", names)
	}
}

func TestRunner_ChainUnknown(t *testing.T) {
	r := New(testLogger())

	_, err := r.Chain("missing")
	if !errors.Is(err, ErrUnknownChain) {
		t.Fatalf("expected ErrUnknownChain, got %v", err)
	}
}
