package problemgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pawsitive/mathcat/internal/llm"
	"github.com/pawsitive/mathcat/internal/standards"
)

// GenerateInput holds the context for LLM problem generation.
type GenerateInput struct {
	// Standard is the catalog standard to write a problem for.
	Standard standards.Standard

	// PriorQuestions contains questions already shown to the learner,
	// used for deduplication in the prompt.
	PriorQuestions []string
}

// LLMGenerator writes problems for standards that have no built-in
// generator, using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// NewLLMGenerator creates an LLMGenerator with the given provider and config.
func NewLLMGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// problemOutput is the raw LLM response before validation.
type problemOutput struct {
	Question          string   `json:"question"`
	CorrectAnswer     string   `json:"correct_answer"`
	AcceptableAnswers []string `json:"acceptable_answers"`
	Hint              string   `json:"hint"`
	Explanation       string   `json:"explanation"`
	Difficulty        string   `json:"difficulty"`
}

// Generate produces a single validated problem for the input standard.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Problem, error) {
	ctx = llm.WithPurpose(ctx, "problem-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      ProblemSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw problemOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	p := &Problem{
		StandardID:        input.Standard.ID,
		Question:          raw.Question,
		CorrectAnswer:     raw.CorrectAnswer,
		AcceptableAnswers: variants(append([]string{raw.CorrectAnswer}, raw.AcceptableAnswers...)...),
		Hint:              raw.Hint,
		Explanation:       raw.Explanation,
		Difficulty:        Difficulty(raw.Difficulty),
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(p, input); verr != nil {
			return nil, verr
		}
	}

	return p, nil
}
