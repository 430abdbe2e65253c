// Package build holds version information set at link time with
// -ldflags "-X github.com/ItsNotGoodName/x-wallpaper/internal/build.version=...".
package build

import "time"

const Name = "x-wallpaper"

var (
	commit  = ""
	date    = ""
	version = "dev"
	repoURL = ""
)

var Current Build

func init() {
	Current = newBuild(commit, date, version, repoURL)
}

func newBuild(commit, date, version, repoURL string) Build {
	parsed, _ := time.Parse(time.RFC3339, date)

	b := Build{
		Commit:     commit,
		Version:    version,
		Date:       parsed,
		RepoURL:    repoURL,
		CommitURL:  "#",
		ReleaseURL: "#",
	}
	if repoURL != "" {
		b.CommitURL = repoURL + "/tree/" + commit
		b.ReleaseURL = repoURL + "/releases/tag/" + version
	}

	return b
}

type Build struct {
	Commit     string    `json:"commit,omitempty"`
	Version    string    `json:"version,omitempty"`
	Date       time.Time `json:"date,omitempty"`
	RepoURL    string    `json:"repo_url,omitempty"`
	CommitURL  string    `json:"commit_url,omitempty"`
	ReleaseURL string    `json:"release_url,omitempty"`
}

// UserAgent is sent with requests to the wallpaper service.
func (b Build) UserAgent() string {
	return Name + "/" + b.Version
}
