package models

type Config struct {
	Repository Repository `yaml:"repository"`
	Provider   Provider   `yaml:"provider"`
	Remotes    []Remote   `yaml:"remotes,omitempty"`
}

type Repository struct {
	Path          string `yaml:"path"`
	DefaultSource string `yaml:"default_source"`
	DefaultTarget string `yaml:"default_target"`
}

// Provider describes the Git hosting provider used for pull-request links.
// PullRequestURL is a printf-style template with a single %d verb for the
// pull-request id, e.g. "https://dev.azure.com/org/project/pullrequest/%d".
type Provider struct {
	Name           string `yaml:"name"`
	PullRequestURL string `yaml:"pull_request_url"`
}

type Remote struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}
