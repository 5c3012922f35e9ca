package repository

import (
	"context"
	"fmt"

	"github.com/ayush6624/go-chatgpt"
)

type GptRepository interface {
	Commentary(ctx context.Context, report string) (string, error)
}

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

const prompt = `
You are an equity analyst covering Borsa Istanbul. You will receive a plain-text
analysis report for a single stock: price and volume statistics, technical
indicator values (RSI, MACD, moving averages, Bollinger bands, OBV), valuation
figures, and a rule-based buy-signal score.

Write a short commentary (3-5 sentences) interpreting the report for a retail
investor. Do not invent numbers that are not in the report, do not give
personalized financial advice, and end with one sentence on the main risk.

Report:
`

func (h gptRepositoryHandler) Commentary(ctx context.Context, report string) (string, error) {
	res, err := h.GptClient.SimpleSend(ctx, prompt+report)
	if err != nil {
		return "", fmt.Errorf("failed to get gpt commentary: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("gpt returned no choices")
	}

	return res.Choices[0].Message.Content, nil
}
