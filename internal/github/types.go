package github

// PRMetadata identifies a pull request and carries the context the prompt
// embeds. Immutable for the length of a run.
type PRMetadata struct {
	Owner       string
	Repo        string
	PullNumber  int
	Title       string
	Description string
}

func (m PRMetadata) FullRepo() string {
	return m.Owner + "/" + m.Repo
}

type PRFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Patch     string `json:"patch"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}
