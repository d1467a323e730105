package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type LineComment struct {
	Body string `json:"body"`
	Path string `json:"path"`
	Line int    `json:"line"`
	Side string `json:"side"` // RIGHT = new code
}

// CreateReviewComment posts one inline comment against the given commit.
func (c *RESTClient) CreateReviewComment(
	ctx context.Context,
	meta PRMetadata,
	sha string,
	l LineComment,
) error {

	token, err := c.getToken(ctx)
	if err != nil {
		return err
	}

	url := fmt.Sprintf(
		"%s/repos/%s/pulls/%d/comments",
		apiBase, meta.FullRepo(), meta.PullNumber,
	)

	payload := struct {
		LineComment
		CommitID string `json:"commit_id"`
	}{
		LineComment: l,
		CommitID:    sha,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal comment: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build comment request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("github comment status %d: %s", res.StatusCode, string(msg))
	}

	return nil
}

// CreateReview submits all comments as one atomic review. If the host
// rejects the batch, none of the comments appear.
func (c *RESTClient) CreateReview(
	ctx context.Context,
	meta PRMetadata,
	sha string,
	cs []LineComment,
) error {

	token, err := c.getToken(ctx)
	if err != nil {
		return err
	}

	url := fmt.Sprintf(
		"%s/repos/%s/pulls/%d/reviews",
		apiBase, meta.FullRepo(), meta.PullNumber,
	)

	payload := struct {
		CommitID string        `json:"commit_id"`
		Event    string        `json:"event"`
		Comments []LineComment `json:"comments"`
	}{
		CommitID: sha,
		Event:    "COMMENT",
		Comments: cs,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build review request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("github review status %d: %s", res.StatusCode, string(msg))
	}

	return nil
}
