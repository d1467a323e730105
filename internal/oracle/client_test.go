package oracle_test

import (
	"context"
	"errors"
	"testing"

	"pr-review-bot/internal/limiter"
	"pr-review-bot/internal/oracle"

	"github.com/stretchr/testify/require"
)

type providerStub struct {
	content string
	err     error
	calls   int
}

func (p *providerStub) Review(ctx context.Context, r oracle.ReviewRequest) (oracle.ReviewResponse, error) {
	p.calls++
	if p.err != nil {
		return oracle.ReviewResponse{}, p.err
	}
	return oracle.ReviewResponse{
		Content:  p.content,
		Provider: "stub",
		Model:    "stub-model",
	}, nil
}

func newClient(p oracle.Provider) *oracle.Client {
	return oracle.NewClient(p, limiter.New(2), nil)
}

func TestSubmit_WellFormedReply(t *testing.T) {

	stub := &providerStub{content: `{"reviews":[{"lineNumber":"11","reviewComment":"fix this"}]}`}

	findings := newClient(stub).Submit(context.Background(), "prompt")
	require.Len(t, findings, 1)
	require.Equal(t, "fix this", findings[0].ReviewComment)
}

func TestSubmit_TransportFailureReturnsNil(t *testing.T) {

	stub := &providerStub{err: errors.New("connection refused")}

	findings := newClient(stub).Submit(context.Background(), "prompt")
	require.Nil(t, findings)
	require.Equal(t, 1, stub.calls)
}

func TestSubmit_MalformedReplyReturnsNil(t *testing.T) {

	stub := &providerStub{content: "not json at all"}

	findings := newClient(stub).Submit(context.Background(), "prompt")
	require.Nil(t, findings)
}

func TestSubmit_EmptyReviewsReturnsEmptySlice(t *testing.T) {

	stub := &providerStub{content: `{"reviews":[]}`}

	findings := newClient(stub).Submit(context.Background(), "prompt")
	require.NotNil(t, findings)
	require.Empty(t, findings)
}

func TestSubmit_CancelledContextReturnsNil(t *testing.T) {

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &providerStub{content: `{"reviews":[]}`}

	findings := newClient(stub).Submit(ctx, "prompt")
	require.Nil(t, findings)
	require.Zero(t, stub.calls)
}
