package oracle

import "context"

type ReviewRequest struct {
	Prompt string
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type ReviewResponse struct {
	Content  string
	Provider string
	Model    string
	Usage    Usage
}

type Provider interface {
	Review(ctx context.Context, r ReviewRequest) (ReviewResponse, error)
}
