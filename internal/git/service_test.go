package git

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branchscope/internal/testutil"
	"branchscope/pkg/errors"
	"branchscope/pkg/models"
)

func newTestService(t *testing.T, repo *testutil.TestRepo) *Service {
	t.Helper()
	service, err := NewService(repo.Path, models.Provider{
		PullRequestURL: "https://git.example.com/project/pullrequest/%d",
	})
	require.NoError(t, err)
	return service
}

func TestNewServiceInvalidPath(t *testing.T) {
	_, err := NewService(t.TempDir(), models.Provider{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRepoNotFound, errors.GetErrorCode(err))
}

func TestListBranches(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")
	repo.Branch("feature/login")
	repo.Branch("feature/audit")

	service := newTestService(t, repo)

	branches, err := service.ListBranches(context.Background(), ListOptions{})
	require.NoError(t, err)

	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.Name
	}
	assert.Equal(t, []string{"feature/audit", "feature/login", "master"}, names)

	// No duplicates
	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate branch %s", n)
		seen[n] = true
	}
}

func TestListBranchesMarksHead(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")
	repo.Branch("develop")

	service := newTestService(t, repo)

	branches, err := service.ListBranches(context.Background(), ListOptions{})
	require.NoError(t, err)

	for _, b := range branches {
		assert.Equal(t, b.Name == "develop", b.IsHead, "branch %s", b.Name)
	}
}

func TestListBranchesEmptyRepository(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	service := newTestService(t, repo)

	branches, err := service.ListBranches(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, branches)
}

func TestListBranchesIncludeRemotes(t *testing.T) {
	source := testutil.NewTestRepo(t)
	source.Commit("initial", "readme.md", "readme")

	clone := source.CloneWithRemote(t)
	service := newTestService(t, clone)

	local, err := service.ListBranches(context.Background(), ListOptions{})
	require.NoError(t, err)
	for _, b := range local {
		assert.False(t, b.IsRemote)
	}

	all, err := service.ListBranches(context.Background(), ListOptions{IncludeRemotes: true})
	require.NoError(t, err)
	assert.Greater(t, len(all), len(local))

	foundRemote := false
	for _, b := range all {
		if b.IsRemote {
			foundRemote = true
			assert.Contains(t, b.Name, "origin/")
		}
	}
	assert.True(t, foundRemote)
}

func TestCommitsBetweenIdenticalRefs(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")

	service := newTestService(t, repo)

	commits, err := service.CommitsBetween(context.Background(), "master", "master")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestCommitsBetweenAncestor(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")
	repo.Branch("feature/work")
	second := repo.Commit("add model", "model.go", "package model")
	third := repo.Commit("add service", "service.go", "package service")

	service := newTestService(t, repo)

	// Descendant vs ancestor: exactly the commits added in between, newest first
	commits, err := service.CommitsBetween(context.Background(), "feature/work", "master")
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, third.String(), commits[0].Hash)
	assert.Equal(t, second.String(), commits[1].Hash)
	assert.Equal(t, "add service", commits[0].Subject)
	assert.Equal(t, third.String()[:7], commits[0].ShortHash)

	// Ancestor vs descendant: empty
	behind, err := service.CommitsBetween(context.Background(), "master", "feature/work")
	require.NoError(t, err)
	assert.Empty(t, behind)
}

func TestCommitsBetweenDivergedBranches(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")
	repo.Branch("feature/a")
	onA := repo.Commit("change on a", "a.go", "package a")

	repo.Checkout("master")
	onMaster := repo.Commit("change on master", "m.go", "package m")

	service := newTestService(t, repo)

	ahead, err := service.CommitsBetween(context.Background(), "feature/a", "master")
	require.NoError(t, err)
	require.Len(t, ahead, 1)
	assert.Equal(t, onA.String(), ahead[0].Hash)

	behind, err := service.CommitsBetween(context.Background(), "master", "feature/a")
	require.NoError(t, err)
	require.Len(t, behind, 1)
	assert.Equal(t, onMaster.String(), behind[0].Hash)
}

func TestCommitsBetweenNoRepeats(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")
	repo.Branch("feature/b")
	for i := 0; i < 5; i++ {
		repo.Commit("change", "file.go", string(rune('a'+i)))
	}

	service := newTestService(t, repo)

	commits, err := service.CommitsBetween(context.Background(), "feature/b", "master")
	require.NoError(t, err)
	require.Len(t, commits, 5)

	seen := make(map[string]bool)
	for _, c := range commits {
		assert.False(t, seen[c.Hash], "repeated commit %s", c.Hash)
		seen[c.Hash] = true
	}
}

func TestCommitsBetweenUnknownRef(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")

	service := newTestService(t, repo)

	_, err := service.CommitsBetween(context.Background(), "master", "feature/missing")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRefNotFound, errors.GetErrorCode(err))

	_, err = service.CommitsBetween(context.Background(), "feature/missing", "master")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRefNotFound, errors.GetErrorCode(err))
}

func TestCompare(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")
	repo.Branch("feature/c")
	repo.Commit("one", "one.go", "package one")
	repo.Commit("two", "two.go", "package two")

	repo.Checkout("master")
	repo.Commit("hotfix", "fix.go", "package fix")

	service := newTestService(t, repo)

	comparison, err := service.Compare(context.Background(), "feature/c", "master")
	require.NoError(t, err)

	assert.Equal(t, "feature/c", comparison.Source)
	assert.Equal(t, "master", comparison.Target)
	assert.Equal(t, 2, comparison.AheadCount())
	assert.Equal(t, 1, comparison.BehindCount())
	assert.False(t, comparison.InSync())
}

func TestCompareInSync(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")
	repo.Branch("mirror")

	service := newTestService(t, repo)

	comparison, err := service.Compare(context.Background(), "mirror", "master")
	require.NoError(t, err)
	assert.True(t, comparison.InSync())
}

func TestCurrentBranch(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")
	repo.Branch("develop")

	service := newTestService(t, repo)

	name, err := service.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "develop", name)
	assert.Equal(t, repo.CurrentBranch(), name)
}

func TestUpdateRemotesRevealsNewBranches(t *testing.T) {
	source := testutil.NewTestRepo(t)
	source.Commit("initial", "readme.md", "readme")

	clone := source.CloneWithRemote(t)

	// New branch appears upstream after the clone
	source.Branch("feature/new")
	source.Commit("upstream change", "new.go", "package new")

	service := newTestService(t, clone)
	require.NoError(t, service.UpdateRemotes(context.Background()))

	branches, err := service.ListBranches(context.Background(), ListOptions{IncludeRemotes: true})
	require.NoError(t, err)

	found := false
	for _, b := range branches {
		if b.IsRemote && b.Name == "origin/feature/new" {
			found = true
		}
	}
	assert.True(t, found, "fetched branch not visible: %+v", branches)
}

func TestUpdateRemotesMultipleRemotes(t *testing.T) {
	source := testutil.NewTestRepo(t)
	source.Commit("initial", "readme.md", "readme")

	mirror := testutil.NewTestRepo(t)
	mirror.Commit("initial", "readme.md", "readme")
	mirror.Branch("feature/mirror-only")

	clone := source.CloneWithRemote(t)
	clone.AddRemote("mirror", mirror.Path)

	service := newTestService(t, clone)

	names, err := service.RemoteNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"mirror", "origin"}, names)

	require.NoError(t, service.UpdateRemotes(context.Background()))

	branches, err := service.ListBranches(context.Background(), ListOptions{IncludeRemotes: true})
	require.NoError(t, err)

	found := false
	for _, b := range branches {
		if b.IsRemote && b.Name == "mirror/feature/mirror-only" {
			found = true
		}
	}
	assert.True(t, found, "second remote not fetched: %+v", branches)
}

func TestEnsureRemotes(t *testing.T) {
	source := testutil.NewTestRepo(t)
	source.Commit("initial", "readme.md", "readme")

	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")

	service := newTestService(t, repo)
	remotes := []models.Remote{{Name: "upstream", URL: source.Path}}

	require.NoError(t, service.EnsureRemotes(remotes))
	// Re-registering an existing remote is a no-op
	require.NoError(t, service.EnsureRemotes(remotes))

	require.NoError(t, service.UpdateRemotes(context.Background()))

	branches, err := service.ListBranches(context.Background(), ListOptions{IncludeRemotes: true})
	require.NoError(t, err)

	found := false
	for _, b := range branches {
		if b.IsRemote && b.Name == "upstream/master" {
			found = true
		}
	}
	assert.True(t, found, "configured remote not fetched: %+v", branches)
}

func TestEnsureRemotesInvalidURL(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")

	service := newTestService(t, repo)

	err := service.EnsureRemotes([]models.Remote{{Name: "bad", URL: "not-a-url"}})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetErrorCode(err))
}

func TestUpdateRemotesUnreachableRemote(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")
	repo.AddRemote("origin", "http://127.0.0.1:1/repo.git")

	service := newTestService(t, repo)
	service.retry = &errors.RetryConfig{
		MaxRetries:     1,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2.0,
		RetryableError: errors.DefaultRetryConfig().RetryableError,
	}

	err := service.UpdateRemotes(context.Background())
	require.Error(t, err)

	// Connectivity failure surfaces as a network error even after the
	// retries are exhausted, never as a generic failure
	assert.Equal(t, errors.ErrCodeNetworkUnavailable, errors.GetErrorCode(err))
	assert.True(t, errors.IsRecoverable(err))
}

func TestUpdateRemotesUpToDate(t *testing.T) {
	source := testutil.NewTestRepo(t)
	source.Commit("initial", "readme.md", "readme")

	clone := source.CloneWithRemote(t)
	service := newTestService(t, clone)

	// Nothing new upstream must not be reported as an error
	assert.NoError(t, service.UpdateRemotes(context.Background()))
}

func TestPullRequestURLIsPure(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Commit("initial", "readme.md", "readme")

	service := newTestService(t, repo)

	first, err := service.PullRequestURL(42)
	require.NoError(t, err)
	assert.Equal(t, "https://git.example.com/project/pullrequest/42", first)

	// Repeated calls are identical and do not disturb branch listing
	second, err := service.PullRequestURL(42)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	before, err := service.ListBranches(context.Background(), ListOptions{})
	require.NoError(t, err)
	_, err = service.PullRequestURL(7)
	require.NoError(t, err)
	after, err := service.ListBranches(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
