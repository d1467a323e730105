package github

import "context"

// ReviewTrigger is what a webhook event hands to the job queue.
type ReviewTrigger struct {
	Meta   PRMetadata
	Action string

	// Commit range for "synchronize" events; empty on "opened".
	BeforeSHA string
	AfterSHA  string
}

// The webhook only knows this interface; the worker package adapts its
// queue to it.
type JobQueue interface {
	Enqueue(ctx context.Context, t ReviewTrigger) error
}
