package domain

import (
	"encoding/json"
	"fmt"
)

// CompletionRequest describes a single system+user completion call.
type CompletionRequest struct {
	SystemPrompt string  `json:"system_prompt"`
	Prompt       string  `json:"prompt"`
	Model        string  `json:"model"`
	MaxTokens    int     `json:"max_tokens"`
	Temperature  float64 `json:"temperature"`
}

// CompletionAnswer is the result of exactly one completion call.
type CompletionAnswer struct {
	Message string `json:"message"`
	Usage   Usage  `json:"usage"`
}

// Usage tracks token consumption.
// The zero value is an empty accumulator ready for use.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// NewUsage builds a Usage, clamping negative counts to zero.
func NewUsage(inputTokens, outputTokens int) Usage {
	return Usage{
		InputTokens:  max(inputTokens, 0),
		OutputTokens: max(outputTokens, 0),
	}
}

// TotalTokens returns input plus output tokens.
func (u Usage) TotalTokens() int {
	return u.InputTokens + u.OutputTokens
}

// Accumulate adds delta into u and returns u, so calls can be chained.
func (u *Usage) Accumulate(delta Usage) *Usage {
	u.InputTokens += delta.InputTokens
	u.OutputTokens += delta.OutputTokens
	return u
}

func (u Usage) String() string {
	return fmt.Sprintf("input=%d output=%d total=%d", u.InputTokens, u.OutputTokens, u.TotalTokens())
}

type usageJSON struct {
	InputTokens      *int `json:"input_tokens,omitempty"`
	OutputTokens     *int `json:"output_tokens,omitempty"`
	PromptTokens     *int `json:"prompt_tokens,omitempty"`
	CompletionTokens *int `json:"completion_tokens,omitempty"`
	TotalTokens      int  `json:"total_tokens"`
}

// MarshalJSON encodes usage with the derived total.
func (u Usage) MarshalJSON() ([]byte, error) {
	input, output := u.InputTokens, u.OutputTokens
	return json.Marshal(usageJSON{
		InputTokens:  &input,
		OutputTokens: &output,
		TotalTokens:  u.TotalTokens(),
	})
}

// UnmarshalJSON accepts both input/output and prompt/completion field names.
// A stored total_tokens is ignored; the total is always derived.
func (u *Usage) UnmarshalJSON(data []byte) error {
	var raw usageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode usage: %w", err)
	}

	input, output := 0, 0
	switch {
	case raw.InputTokens != nil:
		input = *raw.InputTokens
	case raw.PromptTokens != nil:
		input = *raw.PromptTokens
	}
	switch {
	case raw.OutputTokens != nil:
		output = *raw.OutputTokens
	case raw.CompletionTokens != nil:
		output = *raw.CompletionTokens
	}

	*u = NewUsage(input, output)
	return nil
}
