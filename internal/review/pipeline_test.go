package review_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pr-review-bot/internal/github"
	"pr-review-bot/internal/limiter"
	"pr-review-bot/internal/oracle"
	"pr-review-bot/internal/prompt"
	"pr-review-bot/internal/review"
	"pr-review-bot/internal/validate"

	"github.com/stretchr/testify/require"
)

// oracleStub maps a file path (looked up inside the prompt) to a canned
// reply list; nil means "unusable result" for that chunk.
type oracleStub struct {
	mu        sync.Mutex
	byPath    map[string][]oracle.Finding
	nilPaths  map[string]bool
	prompts   []string
	delayEach time.Duration
}

func (o *oracleStub) Submit(ctx context.Context, p string) []oracle.Finding {
	o.mu.Lock()
	o.prompts = append(o.prompts, p)
	o.mu.Unlock()

	if o.delayEach > 0 {
		time.Sleep(o.delayEach)
	}

	for path, fs := range o.byPath {
		if strings.Contains(p, "File: "+path) {
			return fs
		}
	}
	for path := range o.nilPaths {
		if strings.Contains(p, "File: "+path) {
			return nil
		}
	}
	return []oracle.Finding{}
}

type publisherStub struct {
	mu        sync.Mutex
	published []validate.Comment
	err       error
}

func (p *publisherStub) Publish(
	ctx context.Context, meta github.PRMetadata, sha string, cs []validate.Comment,
) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return 0, p.err
	}
	p.published = append(p.published, cs...)
	return len(cs), nil
}

func meta() github.PRMetadata {
	return github.PRMetadata{
		Owner:      "octo",
		Repo:       "widgets",
		PullNumber: 42,
		Title:      "test PR",
	}
}

func singleFileDiff(path string) string {
	return fmt.Sprintf(
		"diff --git a/%s b/%s\n--- a/%s\n+++ b/%s\n@@ -9,1 +10,3 @@\n+alpha\n+beta\n+gamma\n",
		path, path, path, path,
	)
}

func newPipeline(o review.Oracle, pub review.Publisher, excludes []string, maxComments int) *review.Pipeline {
	return review.NewPipeline(
		o,
		prompt.NewBuilder(""),
		validate.New(nil),
		pub,
		nil,
		excludes,
		maxComments,
	)
}

func TestRun_RoundTrip(t *testing.T) {

	// Added lines sit at new numbers 10, 11, 12.
	o := &oracleStub{byPath: map[string][]oracle.Finding{
		"a.txt": {{LineNumber: "11", ReviewComment: "fix this"}},
	}}
	pub := &publisherStub{}

	n, err := newPipeline(o, pub, nil, 10).
		Run(context.Background(), meta(), "abc123", singleFileDiff("a.txt"))

	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t,
		[]validate.Comment{{Path: "a.txt", Line: 11, Body: "fix this"}},
		pub.published,
	)
}

func TestRun_HallucinatedLineYieldsNothing(t *testing.T) {

	o := &oracleStub{byPath: map[string][]oracle.Finding{
		"a.txt": {{LineNumber: "99", ReviewComment: "x"}},
	}}
	pub := &publisherStub{}

	n, err := newPipeline(o, pub, nil, 10).
		Run(context.Background(), meta(), "abc123", singleFileDiff("a.txt"))

	require.NoError(t, err)
	require.Zero(t, n)
	require.Empty(t, pub.published)
}

func TestRun_FailingChunkDoesNotAbortOthers(t *testing.T) {

	o := &oracleStub{
		byPath: map[string][]oracle.Finding{
			"good.go": {{LineNumber: "10", ReviewComment: "from B"}},
		},
		nilPaths: map[string]bool{"bad.go": true},
	}
	pub := &publisherStub{}

	raw := singleFileDiff("bad.go") + singleFileDiff("good.go")

	n, err := newPipeline(o, pub, nil, 10).
		Run(context.Background(), meta(), "abc123", raw)

	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "from B", pub.published[0].Body)
}

func TestRun_CapTruncates(t *testing.T) {

	o := &oracleStub{byPath: map[string][]oracle.Finding{}}
	var raw strings.Builder
	for i := 0; i < 15; i++ {
		path := fmt.Sprintf("f%02d.go", i)
		o.byPath[path] = []oracle.Finding{{LineNumber: "10", ReviewComment: "x"}}
		raw.WriteString(singleFileDiff(path))
	}
	pub := &publisherStub{}

	n, err := newPipeline(o, pub, nil, 10).
		Run(context.Background(), meta(), "abc123", raw.String())

	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Len(t, pub.published, 10)
}

func TestRun_ExcludedFilesNeverReachOracle(t *testing.T) {

	o := &oracleStub{byPath: map[string][]oracle.Finding{
		"keep.go": {{LineNumber: "10", ReviewComment: "x"}},
	}}
	pub := &publisherStub{}

	raw := singleFileDiff("keep.go") + singleFileDiff("skip.lock")

	n, err := newPipeline(o, pub, []string{"*.lock"}, 10).
		Run(context.Background(), meta(), "abc123", raw)

	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Len(t, o.prompts, 1)
	require.NotContains(t, o.prompts[0], "skip.lock")
}

func TestRun_DeletedFilesAreSkipped(t *testing.T) {

	o := &oracleStub{}
	pub := &publisherStub{}

	raw := "diff --git a/gone.go b/gone.go\n" +
		"--- a/gone.go\n" +
		"+++ /dev/null\n" +
		"@@ -1,2 +0,0 @@\n" +
		"-package gone\n" +
		"-var x = 1\n"

	n, err := newPipeline(o, pub, nil, 10).
		Run(context.Background(), meta(), "abc123", raw)

	require.NoError(t, err)
	require.Zero(t, n)
	require.Empty(t, o.prompts)
}

func TestRun_ParseFailureIsFatal(t *testing.T) {

	o := &oracleStub{}
	pub := &publisherStub{}

	raw := "diff --git a/x.go b/x.go\n+++ b/x.go\n@@ nope @@\n+x\n"

	_, err := newPipeline(o, pub, nil, 10).
		Run(context.Background(), meta(), "abc123", raw)

	require.Error(t, err)
	require.Empty(t, o.prompts)
	require.Empty(t, pub.published)
}

func TestRun_BatchedPublishFailureIsSurfaced(t *testing.T) {

	o := &oracleStub{byPath: map[string][]oracle.Finding{
		"a.txt": {{LineNumber: "10", ReviewComment: "x"}},
	}}
	pub := &publisherStub{err: errors.New("batch rejected")}

	_, err := newPipeline(o, pub, nil, 10).
		Run(context.Background(), meta(), "abc123", singleFileDiff("a.txt"))

	require.Error(t, err)
}

// blockingProvider counts in-flight calls for the concurrency bound check.
type blockingProvider struct {
	inFlight int32
	maxSeen  int32
	calls    int32
}

func (b *blockingProvider) Review(ctx context.Context, r oracle.ReviewRequest) (oracle.ReviewResponse, error) {
	cur := atomic.AddInt32(&b.inFlight, 1)
	defer atomic.AddInt32(&b.inFlight, -1)

	for {
		prev := atomic.LoadInt32(&b.maxSeen)
		if cur <= prev || atomic.CompareAndSwapInt32(&b.maxSeen, prev, cur) {
			break
		}
	}

	atomic.AddInt32(&b.calls, 1)
	time.Sleep(20 * time.Millisecond)

	return oracle.ReviewResponse{
		Content:  `{"reviews":[]}`,
		Provider: "stub",
	}, nil
}

func TestRun_ConcurrencyBound(t *testing.T) {

	const bound = 3

	provider := &blockingProvider{}
	client := oracle.NewClient(provider, limiter.New(bound), nil)
	pub := &publisherStub{}

	var raw strings.Builder
	for i := 0; i < 9; i++ {
		raw.WriteString(singleFileDiff(fmt.Sprintf("c%d.go", i)))
	}

	n, err := newPipeline(client, pub, nil, 10).
		Run(context.Background(), meta(), "abc123", raw.String())

	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, int32(9), atomic.LoadInt32(&provider.calls))
	require.LessOrEqual(t, atomic.LoadInt32(&provider.maxSeen), int32(bound))
}
