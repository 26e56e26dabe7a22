package git

import (
	"context"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"branchscope/internal/common"
	"branchscope/pkg/errors"
	"branchscope/pkg/models"
)

// Service provides branch comparison queries over a local repository
type Service struct {
	repoPath string
	repo     *git.Repository
	provider models.Provider
	auth     *AuthManager
	retry    *errors.RetryConfig
}

// ListOptions controls branch enumeration
type ListOptions struct {
	// IncludeRemotes adds remote-tracking branches to the listing
	IncludeRemotes bool
}

// NewService opens the repository at repoPath
func NewService(repoPath string, provider models.Provider) (*Service, error) {
	cleaned, err := common.CleanPath(repoPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRepoNotFound, "Invalid repository path").
			WithContext("path", repoPath)
	}

	repo, err := git.PlainOpenWithOptions(cleaned, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return nil, errors.RepositoryError("Path is not a Git repository", cleaned, err)
		}
		return nil, errors.Wrap(err, errors.ErrCodeRepoAccessDenied, "Failed to open repository").
			WithContext("path", cleaned).
			WithSuggestions("Verify you have read permission on the repository")
	}

	return &Service{
		repoPath: cleaned,
		repo:     repo,
		provider: provider,
		auth:     NewAuthManager(),
		retry:    errors.DefaultRetryConfig(),
	}, nil
}

// Path returns the sanitized repository path the service was opened with.
func (s *Service) Path() string {
	return s.repoPath
}

// ListBranches enumerates branches known to the repository at call time,
// sorted by name. Local branches come first, remote-tracking branches
// follow when opts.IncludeRemotes is set.
func (s *Service) ListBranches(ctx context.Context, opts ListOptions) ([]models.Branch, error) {
	head := ""
	if name, err := s.CurrentBranch(); err == nil {
		head = name
	}

	var branches []models.Branch

	iter, err := s.repo.Branches()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRepoAccessDenied, "Failed to enumerate branches").
			WithContext("path", s.repoPath)
	}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := ref.Name().Short()
		branches = append(branches, models.Branch{
			Name:   name,
			Hash:   ref.Hash().String(),
			IsHead: name == head,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRepoAccessDenied, "Failed to enumerate branches").
			WithContext("path", s.repoPath)
	}

	if opts.IncludeRemotes {
		remotes, err := s.listRemoteBranches(ctx)
		if err != nil {
			return nil, err
		}
		branches = append(branches, remotes...)
	}

	sort.SliceStable(branches, func(i, j int) bool {
		if branches[i].IsRemote != branches[j].IsRemote {
			return !branches[i].IsRemote
		}
		return branches[i].Name < branches[j].Name
	})

	return branches, nil
}

// listRemoteBranches collects remote-tracking refs, skipping the symbolic
// origin/HEAD pointer
func (s *Service) listRemoteBranches(ctx context.Context) ([]models.Branch, error) {
	refs, err := s.repo.References()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRepoAccessDenied, "Failed to enumerate remote branches").
			WithContext("path", s.repoPath)
	}

	var branches []models.Branch
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !ref.Name().IsRemote() || ref.Type() != plumbing.HashReference {
			return nil
		}
		if strings.HasSuffix(ref.Name().String(), "/HEAD") {
			return nil
		}
		branches = append(branches, models.Branch{
			Name:     ref.Name().Short(),
			Hash:     ref.Hash().String(),
			IsRemote: true,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRepoAccessDenied, "Failed to enumerate remote branches").
			WithContext("path", s.repoPath)
	}

	return branches, nil
}

// CommitsBetween returns the commits reachable from includeRef but not from
// excludeRef, newest first, as yielded by the revision walk. The result is
// empty when both refs resolve to the same commit or includeRef is an
// ancestor of excludeRef.
func (s *Service) CommitsBetween(ctx context.Context, includeRef, excludeRef string) ([]models.Commit, error) {
	includeHash, err := s.resolveRef(includeRef)
	if err != nil {
		return nil, err
	}
	excludeHash, err := s.resolveRef(excludeRef)
	if err != nil {
		return nil, err
	}

	if includeHash == excludeHash {
		return []models.Commit{}, nil
	}

	excluded, err := s.reachableFrom(ctx, excludeHash)
	if err != nil {
		return nil, err
	}

	return s.walkExcluding(ctx, includeHash, excluded)
}

// Compare runs the symmetric ahead/behind query between two branches.
func (s *Service) Compare(ctx context.Context, source, target string) (*models.Comparison, error) {
	ahead, err := s.CommitsBetween(ctx, source, target)
	if err != nil {
		return nil, err
	}
	behind, err := s.CommitsBetween(ctx, target, source)
	if err != nil {
		return nil, err
	}

	return &models.Comparison{
		Source: source,
		Target: target,
		Ahead:  ahead,
		Behind: behind,
	}, nil
}

// CurrentBranch returns the short name of the branch HEAD points at
func (s *Service) CurrentBranch() (string, error) {
	head, err := s.repo.Head()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeRefNotFound, "Failed to resolve HEAD").
			WithContext("path", s.repoPath)
	}
	if !head.Name().IsBranch() {
		return "", errors.New(errors.ErrCodeRefNotFound, "HEAD is not pointing to a branch").
			WithContext("head", head.Name().String())
	}
	return head.Name().Short(), nil
}

// RemoteNames returns the names of the remotes configured in the repository.
func (s *Service) RemoteNames() ([]string, error) {
	remotes, err := s.repo.Remotes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRepoAccessDenied, "Failed to read remote configuration").
			WithContext("path", s.repoPath)
	}

	names := make([]string, len(remotes))
	for i, remote := range remotes {
		names[i] = remote.Config().Name
	}
	sort.Strings(names)
	return names, nil
}

// EnsureRemotes registers configured remotes that are missing from the
// repository so a later fetch sees them. Existing remotes are left alone.
func (s *Service) EnsureRemotes(remotes []models.Remote) error {
	for _, r := range remotes {
		if r.Name == "" || r.URL == "" {
			continue
		}
		if err := ValidateGitURL(r.URL); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "Invalid remote URL in configuration").
				WithContext("remote", r.Name).
				WithContext("url", r.URL)
		}
		if _, err := s.repo.Remote(r.Name); err == nil {
			continue
		} else if err != git.ErrRemoteNotFound {
			return errors.Wrap(err, errors.ErrCodeRepoAccessDenied, "Failed to read remote configuration").
				WithContext("remote", r.Name)
		}
		_, err := s.repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: r.Name,
			URLs: []string{r.URL},
		})
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeRepoAccessDenied, "Failed to add remote "+r.Name).
				WithContext("remote", r.Name).
				WithContext("url", r.URL)
		}
	}
	return nil
}

// UpdateRemotes fetches from every configured remote. Network failures are
// retried with backoff; an up-to-date remote is not an error.
func (s *Service) UpdateRemotes(ctx context.Context) error {
	remotes, err := s.repo.Remotes()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeRepoAccessDenied, "Failed to read remote configuration").
			WithContext("path", s.repoPath)
	}

	for _, remote := range remotes {
		name := remote.Config().Name
		err := errors.Retry(ctx, s.retry, func(ctx context.Context) error {
			return s.fetchRemote(ctx, remote)
		})
		if err != nil {
			if appErr, ok := err.(*errors.AppError); ok {
				return appErr.WithContext("remote", name)
			}
			return errors.Wrap(err, errors.ErrCodeFetchFailed, "Failed to fetch remote "+name).
				WithContext("remote", name)
		}
	}

	return nil
}

// PullRequestURL formats the configured pull-request template for an id.
// Pure formatting, no repository access.
func (s *Service) PullRequestURL(id int) (string, error) {
	return FormatPullRequestURL(s.provider.PullRequestURL, id)
}
