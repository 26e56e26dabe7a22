package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"branchscope/internal/common"
)

// TestRepo wraps a throwaway git repository for tests
type TestRepo struct {
	t    *testing.T
	Path string
	Repo *gogit.Repository
}

// NewTestRepo initializes a repository in a temp directory
func NewTestRepo(t *testing.T) *TestRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init test repository: %v", err)
	}

	return &TestRepo{t: t, Path: dir, Repo: repo}
}

// Commit writes a file and commits it, returning the commit hash. Each
// commit gets a later author time so committer-time ordering is stable.
func (r *TestRepo) Commit(message, filename, content string) plumbing.Hash {
	r.t.Helper()

	path := filepath.Join(r.Path, filename)
	if err := os.MkdirAll(filepath.Dir(path), common.DirPermissionNormal); err != nil {
		r.t.Fatalf("failed to create directories: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.t.Fatalf("failed to write file %s: %v", path, err)
	}

	worktree, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("failed to get worktree: %v", err)
	}
	if _, err := worktree.Add(filename); err != nil {
		r.t.Fatalf("failed to add %s: %v", filename, err)
	}

	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  r.nextCommitTime(),
		},
	})
	if err != nil {
		r.t.Fatalf("failed to commit: %v", err)
	}

	return hash
}

// Branch creates a branch at the current HEAD and checks it out
func (r *TestRepo) Branch(name string) {
	r.t.Helper()

	head, err := r.Repo.Head()
	if err != nil {
		r.t.Fatalf("failed to get HEAD: %v", err)
	}

	worktree, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("failed to get worktree: %v", err)
	}

	err = worktree.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Hash:   head.Hash(),
		Create: true,
	})
	if err != nil {
		r.t.Fatalf("failed to create branch %s: %v", name, err)
	}
}

// Checkout switches to an existing branch
func (r *TestRepo) Checkout(name string) {
	r.t.Helper()

	worktree, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("failed to get worktree: %v", err)
	}

	err = worktree.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
	if err != nil {
		r.t.Fatalf("failed to checkout %s: %v", name, err)
	}
}

// CurrentBranch returns the short name HEAD points at
func (r *TestRepo) CurrentBranch() string {
	r.t.Helper()

	head, err := r.Repo.Head()
	if err != nil {
		r.t.Fatalf("failed to get HEAD: %v", err)
	}
	return head.Name().Short()
}

// CloneWithRemote clones this repository into another temp directory so the
// clone has it configured as origin. Returns the clone.
func (r *TestRepo) CloneWithRemote(t *testing.T) *TestRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainClone(dir, false, &gogit.CloneOptions{URL: r.Path})
	if err != nil {
		t.Fatalf("failed to clone test repository: %v", err)
	}

	return &TestRepo{t: t, Path: dir, Repo: repo}
}

// AddRemote registers an additional remote pointing at a local path
func (r *TestRepo) AddRemote(name, url string) {
	r.t.Helper()

	_, err := r.Repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if err != nil {
		r.t.Fatalf("failed to add remote %s: %v", name, err)
	}
}

// nextCommitTime hands out strictly increasing timestamps
func (r *TestRepo) nextCommitTime() time.Time {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	head, err := r.Repo.Head()
	if err != nil {
		return base
	}
	commit, err := r.Repo.CommitObject(head.Hash())
	if err != nil {
		return base
	}
	return commit.Author.When.Add(time.Hour)
}
