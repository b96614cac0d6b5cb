package advisor

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

// Anthropic generates narratives through the Anthropic Messages API.
type Anthropic struct {
	client sdk.Client
	model  string
}

// NewAnthropic creates an Anthropic-backed advisor.
func NewAnthropic(apiKey, model string) *Anthropic {
	return &Anthropic{
		client: sdk.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (a *Anthropic) CommercialAdvice(ctx context.Context, in CommercialContext) (string, error) {
	return a.complete(ctx, BuildCommercialPrompt(in))
}

func (a *Anthropic) SoilAdvice(ctx context.Context, in SoilContext) (string, error) {
	return a.complete(ctx, BuildSoilPrompt(in))
}

func (a *Anthropic) complete(ctx context.Context, prompt string) (string, error) {
	msg, err := a.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(a.model),
		MaxTokens: 2000,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "advisor: anthropic message")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		b.WriteString(block.Text)
	}
	if b.Len() == 0 {
		return "", eris.New("advisor: anthropic returned no text content")
	}
	return b.String(), nil
}
