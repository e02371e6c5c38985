// Package ai suggests sales descriptions for furniture designs through an
// OpenAI-compatible completion API. Purely optional: the rest of the app
// works without a configured key.
package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ofertare/mobila/internal/domain"
)

type Describer struct {
	client *openai.Client
	model  string
}

func New(apiKey, model string) *Describer {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Describer{client: openai.NewClient(apiKey), model: model}
}

func (d *Describer) Enabled() bool { return d != nil }

// DescribeDesign asks the model for a short Romanian sales description of
// the design.
func (d *Describer) DescribeDesign(ctx context.Context, design domain.FurnitureDesign) (string, error) {
	if !d.Enabled() {
		return "", fmt.Errorf("describer is not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tip: %s\nMaterial: %s\nCuloare: %s\nCamera: %s\n", design.Type, design.Material, design.Color, design.Room)
	fmt.Fprintf(&b, "Dimensiuni: %.0fx%.0fx%.0f cm\n", design.Width, design.Height, design.Depth)
	if design.HasDoors {
		fmt.Fprintf(&b, "Usi: da (%s)\n", design.DoorMaterial)
	}
	if design.HasDrawers {
		b.WriteString("Sertare: da\n")
	}

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Esti un consultant de mobilier. Scrie o descriere de vanzare scurta (2-3 propozitii, limba romana) pentru piesa de mobilier descrisa.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: b.String(),
			},
		},
		MaxTokens: 200,
	})
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
