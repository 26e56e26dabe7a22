package git

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/zalando/go-keyring"

	"branchscope/pkg/errors"
)

// keyringService identifies this application's entries in the OS keyring
const keyringService = "branchscope"

// AuthManager resolves Git authentication for remote fetches
type AuthManager struct {
	mu sync.RWMutex
}

// NewAuthManager creates a new authentication manager
func NewAuthManager() *AuthManager {
	return &AuthManager{}
}

// GetAuth returns the appropriate authentication method for a Git URL.
// Local paths need no auth; a nil method with nil error means anonymous.
func (am *AuthManager) GetAuth(gitURL string) (transport.AuthMethod, error) {
	am.mu.RLock()
	defer am.mu.RUnlock()

	if IsSSHURL(gitURL) {
		return am.getSSHAuth()
	}
	if IsHTTPSURL(gitURL) {
		return am.getHTTPSAuth(gitURL), nil
	}

	return nil, nil
}

// getSSHAuth tries the SSH agent first, then default key files
func (am *AuthManager) getSSHAuth() (transport.AuthMethod, error) {
	if auth, err := ssh.NewSSHAgentAuth("git"); err == nil {
		return auth, nil
	}

	home, _ := os.UserHomeDir()
	defaultKeys := []string{
		filepath.Join(home, ".ssh", "id_ed25519"),
		filepath.Join(home, ".ssh", "id_rsa"),
		filepath.Join(home, ".ssh", "id_ecdsa"),
	}

	for _, keyPath := range defaultKeys {
		if _, err := os.Stat(keyPath); err != nil {
			continue
		}
		if auth, err := ssh.NewPublicKeysFromFile("git", keyPath, ""); err == nil {
			return auth, nil
		}
	}

	return nil, errors.New(errors.ErrCodeAuthenticationFailed,
		"No SSH authentication method available").
		WithSuggestions(
			"Add your SSH key to the SSH agent with 'ssh-add'",
			"Check that your SSH key has access to the remote",
		)
}

// getHTTPSAuth resolves HTTPS credentials: keyring-stored token, then
// explicit environment credentials, then a GitHub token. Anonymous access
// is fine for public remotes, so missing credentials are not an error.
func (am *AuthManager) getHTTPSAuth(gitURL string) transport.AuthMethod {
	host := ExtractHost(gitURL)

	if token, err := keyring.Get(keyringService, host); err == nil && token != "" {
		return &http.BasicAuth{Username: "token", Password: token}
	}

	username := os.Getenv("GIT_USERNAME")
	password := os.Getenv("GIT_PASSWORD")
	if username != "" && password != "" {
		return &http.BasicAuth{Username: username, Password: password}
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return &http.BasicAuth{Username: "token", Password: token}
	}

	return nil
}

// StoreToken saves a personal access token for a host in the OS keyring
func (am *AuthManager) StoreToken(host, token string) error {
	am.mu.Lock()
	defer am.mu.Unlock()

	if host == "" || token == "" {
		return errors.ValidationError("token", host, "host and token must not be empty")
	}
	if err := keyring.Set(keyringService, host, token); err != nil {
		return errors.Wrap(err, errors.ErrCodeAuthenticationFailed, "Failed to store token in keyring").
			WithContext("host", host)
	}
	return nil
}

// DeleteToken removes a stored token for a host
func (am *AuthManager) DeleteToken(host string) error {
	am.mu.Lock()
	defer am.mu.Unlock()

	if err := keyring.Delete(keyringService, host); err != nil {
		return errors.Wrap(err, errors.ErrCodeAuthenticationFailed, "Failed to remove token from keyring").
			WithContext("host", host)
	}
	return nil
}
