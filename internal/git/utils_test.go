package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSSHURL(t *testing.T) {
	assert.True(t, IsSSHURL("git@github.com:user/repo.git"))
	assert.True(t, IsSSHURL("ssh://git@git.example.com/repo.git"))
	assert.False(t, IsSSHURL("https://github.com/user/repo.git"))
	assert.False(t, IsSSHURL("/srv/repos/project"))
}

func TestIsHTTPSURL(t *testing.T) {
	assert.True(t, IsHTTPSURL("https://github.com/user/repo.git"))
	assert.True(t, IsHTTPSURL("http://git.internal/repo.git"))
	assert.False(t, IsHTTPSURL("git@github.com:user/repo.git"))
}

func TestExtractHost(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"git@github.com:user/repo.git", "github.com"},
		{"https://github.com/user/repo.git", "github.com"},
		{"http://git.internal/repo.git", "git.internal"},
		{"ssh://git@git.example.com/repo.git", "git.example.com"},
		{"/srv/repos/project", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractHost(tt.url))
		})
	}
}

func TestExtractRepoName(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"git@github.com:user/repo.git", "repo"},
		{"https://github.com/user/repo.git", "repo"},
		{"https://github.com/user/nested/repo", "repo"},
		{"/srv/repos/project", "project"},
		{"/srv/repos/project.git", "project"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractRepoName(tt.url))
		})
	}
}

func TestValidateGitURL(t *testing.T) {
	assert.NoError(t, ValidateGitURL("git@github.com:user/repo.git"))
	assert.NoError(t, ValidateGitURL("https://github.com/user/repo.git"))
	assert.NoError(t, ValidateGitURL("/srv/repos/project"))
	assert.Error(t, ValidateGitURL(""))
	assert.Error(t, ValidateGitURL("relative/path"))
}
