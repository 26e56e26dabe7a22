package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"branchscope/pkg/errors"
	"branchscope/pkg/models"
)

// resolveRef resolves a branch name to a commit hash. Local branches win
// over remote-tracking ones; anything else falls through to revision
// syntax so tags and abbreviated hashes also work.
func (s *Service) resolveRef(name string) (plumbing.Hash, error) {
	if name == "" {
		return plumbing.ZeroHash, errors.ValidationError("ref", name, "ref name must not be empty")
	}

	candidates := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(name),
		plumbing.ReferenceName("refs/remotes/" + name),
		plumbing.ReferenceName("refs/remotes/origin/" + name),
	}
	for _, candidate := range candidates {
		if ref, err := s.repo.Reference(candidate, true); err == nil {
			return ref.Hash(), nil
		}
	}

	hash, err := s.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return plumbing.ZeroHash, errors.RefNotFoundError(name, err)
	}
	return *hash, nil
}

// reachableFrom returns the set of commit hashes reachable from start
func (s *Service) reachableFrom(ctx context.Context, start plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	iter, err := s.repo.Log(&git.LogOptions{From: start})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCommitNotFound, "Failed to walk commit graph").
			WithContext("from", start.String())
	}
	defer iter.Close()

	reachable := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		reachable[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCommitNotFound, "Failed to walk commit graph").
			WithContext("from", start.String())
	}

	return reachable, nil
}

// walkExcluding walks the log from start and collects commits whose hashes
// are not in the excluded set. Excluded commits are skipped rather than
// pruned: the committer-time order can interleave both histories.
func (s *Service) walkExcluding(ctx context.Context, start plumbing.Hash, excluded map[plumbing.Hash]struct{}) ([]models.Commit, error) {
	iter, err := s.repo.Log(&git.LogOptions{From: start, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCommitNotFound, "Failed to walk commit graph").
			WithContext("from", start.String())
	}
	defer iter.Close()

	commits := []models.Commit{}
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := excluded[c.Hash]; ok {
			return nil
		}
		commits = append(commits, newCommit(c))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCommitNotFound, "Failed to walk commit graph").
			WithContext("from", start.String())
	}

	return commits, nil
}

// newCommit converts a go-git commit into the result model
func newCommit(c *object.Commit) models.Commit {
	hash := c.Hash.String()
	return models.Commit{
		Hash:      hash,
		ShortHash: hash[:7],
		Subject:   firstLine(c.Message),
		Author:    c.Author.Name,
		Email:     c.Author.Email,
		Date:      c.Author.When,
	}
}

// firstLine extracts the subject from a possibly multi-line commit message
func firstLine(message string) string {
	message = strings.TrimSpace(message)
	if idx := strings.Index(message, "\n"); idx > 0 {
		message = message[:idx]
	}
	return strings.TrimSpace(message)
}

// fetchRemote runs a single fetch against one remote, classifying the
// failure so the retry layer only retries connectivity problems
func (s *Service) fetchRemote(ctx context.Context, remote *git.Remote) error {
	var auth transport.AuthMethod
	if urls := remote.Config().URLs; len(urls) > 0 {
		auth, _ = s.auth.GetAuth(urls[0])
	}

	err := remote.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remote.Config().Name,
		Auth:       auth,
		Tags:       git.AllTags,
	})
	if err == nil || err == git.NoErrAlreadyUpToDate {
		return nil
	}

	if err == transport.ErrAuthenticationRequired || err == transport.ErrAuthorizationFailed ||
		strings.Contains(err.Error(), "authentication") ||
		strings.Contains(err.Error(), "authorization") {
		return errors.Wrap(err, errors.ErrCodeAuthenticationFailed, "Authentication failed for remote").
			WithContext("remote", remote.Config().Name).
			WithSuggestions(
				"Store a token with 'branchscope auth set <host>'",
				"Ensure your SSH key has access to the remote",
			)
	}

	if isNetworkError(err) {
		return errors.NetworkError(
			fmt.Sprintf("Network error while fetching remote %s", remote.Config().Name), err)
	}

	return errors.Wrap(err, errors.ErrCodeFetchFailed, "Fetch failed").
		WithContext("remote", remote.Config().Name)
}

// isNetworkError recognizes connectivity failures from the transport layer
func isNetworkError(err error) bool {
	msg := err.Error()
	for _, marker := range []string{
		"connection", "timeout", "unreachable", "no such host",
		"network is down", "dial tcp", "i/o timeout",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// FormatPullRequestURL maps a pull-request id onto the provider template.
// The template must contain exactly one %d verb.
func FormatPullRequestURL(template string, id int) (string, error) {
	if id <= 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "Pull request id must be positive").
			WithContext("id", id)
	}
	if template == "" {
		return "", errors.ConfigError("No pull request URL template configured", "provider.pull_request_url")
	}
	if strings.Count(template, "%d") != 1 {
		return "", errors.ConfigError("Pull request URL template must contain exactly one %d", "provider.pull_request_url")
	}
	return fmt.Sprintf(template, id), nil
}
