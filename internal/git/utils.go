package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IsSSHURL checks if a git URL is using SSH protocol
func IsSSHURL(gitURL string) bool {
	return strings.HasPrefix(gitURL, "git@") || strings.HasPrefix(gitURL, "ssh://")
}

// IsHTTPSURL checks if a git URL is using HTTPS protocol
func IsHTTPSURL(gitURL string) bool {
	return strings.HasPrefix(gitURL, "https://") || strings.HasPrefix(gitURL, "http://")
}

// ExtractHost extracts the host part of a git URL
func ExtractHost(gitURL string) string {
	url := gitURL

	switch {
	case strings.HasPrefix(url, "git@"):
		// git@github.com:user/repo.git
		url = strings.TrimPrefix(url, "git@")
		if idx := strings.Index(url, ":"); idx > 0 {
			return url[:idx]
		}
		return url
	case IsHTTPSURL(url) || strings.HasPrefix(url, "ssh://"):
		url = strings.TrimPrefix(url, "https://")
		url = strings.TrimPrefix(url, "http://")
		url = strings.TrimPrefix(url, "ssh://")
		url = strings.TrimPrefix(url, "git@")
		if idx := strings.IndexAny(url, "/:"); idx > 0 {
			return url[:idx]
		}
		return url
	}

	return ""
}

// ExtractRepoName extracts the repository name from a git URL
func ExtractRepoName(gitURL string) string {
	url := gitURL
	if IsSSHURL(url) {
		// Handle SSH URLs like git@github.com:user/repo.git
		parts := strings.Split(url, ":")
		if len(parts) > 1 {
			url = parts[1]
		}
	} else if IsHTTPSURL(url) {
		url = strings.TrimPrefix(url, "https://")
		url = strings.TrimPrefix(url, "http://")
		// Remove domain part
		parts := strings.Split(url, "/")
		if len(parts) > 1 {
			url = strings.Join(parts[1:], "/")
		}
	}

	url = strings.TrimSuffix(url, ".git")

	parts := strings.Split(url, "/")
	if len(parts) > 0 && parts[len(parts)-1] != "" {
		return parts[len(parts)-1]
	}

	return "unknown"
}

// ValidateGitURL performs basic validation on a git URL
func ValidateGitURL(gitURL string) error {
	if gitURL == "" {
		return fmt.Errorf("git URL cannot be empty")
	}

	if !IsSSHURL(gitURL) && !IsHTTPSURL(gitURL) {
		// Check if it's a local path
		if !filepath.IsAbs(gitURL) {
			return fmt.Errorf("invalid git URL: must be SSH, HTTPS, or absolute local path")
		}
	}

	return nil
}
