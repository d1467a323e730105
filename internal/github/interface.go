package github

import "context"

type Client interface {
	// GetPRDiff returns the full unified diff of the pull request against
	// its base ("PR opened").
	GetPRDiff(ctx context.Context, meta PRMetadata) (string, error)
	// CompareDiff returns the unified diff between two commits of the
	// repository ("PR updated").
	CompareDiff(ctx context.Context, meta PRMetadata, base, head string) (string, error)
	// LatestCommitSHA resolves the commit review comments attach to.
	LatestCommitSHA(ctx context.Context, meta PRMetadata) (string, error)
}

type CommentClient interface {
	CreateReviewComment(ctx context.Context, meta PRMetadata, sha string, c LineComment) error
	CreateReview(ctx context.Context, meta PRMetadata, sha string, cs []LineComment) error
}
