package worker

import "context"

// Internal queue abstraction; the github package only sees the Adapter.
type Queue interface {
	Push(ctx context.Context, j Job) error
	Pop(ctx context.Context) (Job, error)
}

// Job is a serializable review trigger.
type Job struct {
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
	PR          int    `json:"pr"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	BeforeSHA   string `json:"before_sha,omitempty"`
	AfterSHA    string `json:"after_sha,omitempty"`
}
