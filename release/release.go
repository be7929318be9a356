package release

import (
	"context"
	"net/http"

	"github.com/google/go-github/v52/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// NewClient returns a GitHub client. With an empty token the client is
// unauthenticated, which is enough for public repositories but runs into
// the low anonymous rate limit.
func NewClient(ctx context.Context, token string) *github.Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	}
	return github.NewClient(hc)
}

// Fetcher lists the releases of a single repository.
type Fetcher struct {
	Client *github.Client
	Owner  string
	Repo   string
}

// ListAll walks every result page and returns the releases in the order
// the API yields them, newest first.
func (f *Fetcher) ListAll(ctx context.Context) ([]*github.RepositoryRelease, error) {
	opt := &github.ListOptions{PerPage: 100}

	var all []*github.RepositoryRelease
	for {
		releases, resp, err := f.Client.Repositories.ListReleases(ctx, f.Owner, f.Repo, opt)
		if err != nil {
			return nil, errors.Wrapf(err, "listing releases for %s/%s", f.Owner, f.Repo)
		}
		all = append(all, releases...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opt.Page = resp.NextPage
	}
}
