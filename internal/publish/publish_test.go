package publish_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pr-review-bot/internal/dedup"
	"pr-review-bot/internal/github"
	"pr-review-bot/internal/limiter"
	"pr-review-bot/internal/publish"
	"pr-review-bot/internal/validate"

	"github.com/stretchr/testify/require"
)

type commentClientStub struct {
	mu       sync.Mutex
	posted   []github.LineComment
	failPath string
	batchErr error
	batches  int
}

func (c *commentClientStub) CreateReviewComment(
	ctx context.Context, meta github.PRMetadata, sha string, l github.LineComment,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l.Path == c.failPath {
		return errors.New("host rejected comment")
	}
	c.posted = append(c.posted, l)
	return nil
}

func (c *commentClientStub) CreateReview(
	ctx context.Context, meta github.PRMetadata, sha string, cs []github.LineComment,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.batches++
	if c.batchErr != nil {
		return c.batchErr
	}
	c.posted = append(c.posted, cs...)
	return nil
}

func meta() github.PRMetadata {
	return github.PRMetadata{Owner: "octo", Repo: "widgets", PullNumber: 7}
}

func newPublisher(c *commentClientStub, mode string) *publish.Publisher {
	p := publish.New(c, limiter.New(2), dedup.NewMemory(), nil, mode)
	p.RetryWait = time.Millisecond
	return p
}

func TestPublish_PerComment(t *testing.T) {

	stub := &commentClientStub{}
	p := newPublisher(stub, publish.ModePerComment)

	n, err := p.Publish(context.Background(), meta(), "abc123", []validate.Comment{
		{Path: "a.go", Line: 1, Body: "one"},
		{Path: "b.go", Line: 2, Body: "two"},
	})

	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, stub.posted, 2)
}

func TestPublish_PerCommentIsolatesFailures(t *testing.T) {

	stub := &commentClientStub{failPath: "bad.go"}
	p := newPublisher(stub, publish.ModePerComment)

	n, err := p.Publish(context.Background(), meta(), "abc123", []validate.Comment{
		{Path: "bad.go", Line: 1, Body: "rejected"},
		{Path: "ok.go", Line: 2, Body: "survives"},
	})

	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Len(t, stub.posted, 1)
	require.Equal(t, "ok.go", stub.posted[0].Path)
}

func TestPublish_PerCommentSuppressesDuplicates(t *testing.T) {

	stub := &commentClientStub{}
	p := newPublisher(stub, publish.ModePerComment)

	cs := []validate.Comment{{Path: "a.go", Line: 1, Body: "same"}}

	n, err := p.Publish(context.Background(), meta(), "abc123", cs)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = p.Publish(context.Background(), meta(), "abc123", cs)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Len(t, stub.posted, 1)
}

func TestPublish_PerCommentSuppressesDuplicatesWithinBatch(t *testing.T) {

	// Mark lands only after a successful post; identical comments in the
	// same batch must still collapse to one.
	stub := &commentClientStub{}
	p := newPublisher(stub, publish.ModePerComment)

	n, err := p.Publish(context.Background(), meta(), "abc123", []validate.Comment{
		{Path: "a.go", Line: 1, Body: "same"},
		{Path: "a.go", Line: 1, Body: "same"},
	})

	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Len(t, stub.posted, 1)
}

func TestPublish_Batched(t *testing.T) {

	stub := &commentClientStub{}
	p := newPublisher(stub, publish.ModeBatched)

	n, err := p.Publish(context.Background(), meta(), "abc123", []validate.Comment{
		{Path: "a.go", Line: 1, Body: "one"},
		{Path: "b.go", Line: 2, Body: "two"},
	})

	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 1, stub.batches)
	require.Equal(t, "RIGHT", stub.posted[0].Side)
}

func TestPublish_BatchedFailureIsSurfaced(t *testing.T) {

	stub := &commentClientStub{batchErr: errors.New("422 unprocessable")}
	p := newPublisher(stub, publish.ModeBatched)

	n, err := p.Publish(context.Background(), meta(), "abc123", []validate.Comment{
		{Path: "a.go", Line: 1, Body: "one"},
	})

	require.Error(t, err)
	require.Zero(t, n)
	require.Empty(t, stub.posted)
}

func TestPublish_NothingToPublish(t *testing.T) {

	stub := &commentClientStub{}
	p := newPublisher(stub, publish.ModeBatched)

	n, err := p.Publish(context.Background(), meta(), "abc123", nil)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Zero(t, stub.batches)
}
