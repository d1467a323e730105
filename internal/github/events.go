package github

import "strings"

type PullRequestEvent struct {
	Action      string      `json:"action"`
	Before      string      `json:"before"` // set on synchronize
	After       string      `json:"after"`
	PullRequest PullRequest `json:"pull_request"`
	Repository  Repository  `json:"repository"`
}

type PullRequest struct {
	Number int    `json:"number"`
	Draft  bool   `json:"draft"`
	Title  string `json:"title"`
	Body   string `json:"body"`

	User struct {
		Login string `json:"login"`
	} `json:"user"`

	Head struct {
		SHA string `json:"sha"`
	} `json:"head"`

	Base struct {
		Ref string `json:"ref"`
	} `json:"base"`
}

type Repository struct {
	FullName string `json:"full_name"`
}

// Metadata splits the repository full name into the coordinates the
// pipeline carries around.
func (e PullRequestEvent) Metadata() PRMetadata {

	owner, repo, _ := strings.Cut(e.Repository.FullName, "/")

	return PRMetadata{
		Owner:       owner,
		Repo:        repo,
		PullNumber:  e.PullRequest.Number,
		Title:       e.PullRequest.Title,
		Description: e.PullRequest.Body,
	}
}
