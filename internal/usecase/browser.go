// Package usecase contains the business logic of the application.
package usecase

import (
	"context"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/repo-browser/internal/domain"
	"github.com/naka-gawa/repo-browser/internal/gateway"
)

// Browser is the use case for browsing a fixed account's repositories.
// It holds no mutable state and is safe for concurrent use.
type Browser struct {
	fetcher gateway.Fetcher
	user    string
	logger  *logrus.Logger
}

// Page holds both display regions, fetched for a single selected repository.
type Page struct {
	Repository   string
	Repositories []domain.Repository
	Commits      []domain.Commit
}

// NewBrowser creates a new Browser bound to user.
func NewBrowser(fetcher gateway.Fetcher, user string, logger *logrus.Logger) *Browser {
	return &Browser{
		fetcher: fetcher,
		user:    user,
		logger:  logger,
	}
}

// User returns the account whose repositories are browsed.
func (b *Browser) User() string {
	return b.user
}

// Repositories fetches the repository list of the configured account.
func (b *Browser) Repositories(ctx context.Context) ([]domain.Repository, error) {
	return b.fetcher.FetchRepositories(ctx, b.user)
}

// Commits fetches the commit list of one of the configured account's repositories.
func (b *Browser) Commits(ctx context.Context, repo string) ([]domain.Commit, error) {
	if repo == "" {
		return nil, errors.New("repository name must not be empty")
	}
	return b.fetcher.FetchCommits(ctx, b.user, repo)
}

// Page fetches the repository list and the commits of repo concurrently.
// A failure of either fetch cancels the other and fails the whole page.
func (b *Browser) Page(ctx context.Context, repo string) (*Page, error) {
	b.logger.WithField("repo", repo).Debug("Usecase: Prerendering page...")

	page := &Page{Repository: repo}
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		page.Repositories, err = b.Repositories(egCtx)
		return err
	})

	eg.Go(func() error {
		var err error
		page.Commits, err = b.Commits(egCtx, repo)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, errors.WithMessage(err, "failed to prerender page")
	}
	return page, nil
}
