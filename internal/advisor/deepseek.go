package advisor

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geomarket/pkg/deepseek"
)

// DeepSeek generates narratives through the DeepSeek chat API.
type DeepSeek struct {
	client deepseek.Client
}

// NewDeepSeek wraps a DeepSeek chat client as an Advisor.
func NewDeepSeek(client deepseek.Client) *DeepSeek {
	return &DeepSeek{client: client}
}

func (d *DeepSeek) CommercialAdvice(ctx context.Context, in CommercialContext) (string, error) {
	return d.complete(ctx, BuildCommercialPrompt(in))
}

func (d *DeepSeek) SoilAdvice(ctx context.Context, in SoilContext) (string, error) {
	return d.complete(ctx, BuildSoilPrompt(in))
}

func (d *DeepSeek) complete(ctx context.Context, prompt string) (string, error) {
	temp := 0.2
	maxTokens := 2000
	resp, err := d.client.ChatCompletion(ctx, deepseek.ChatCompletionRequest{
		Messages:    []deepseek.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return "", eris.Wrap(err, "advisor: deepseek completion")
	}
	content := resp.Content()
	if content == "" {
		return "", eris.New("advisor: deepseek returned no choices")
	}
	return content, nil
}
