// Package github fetches prompt files from GitHub repositories.
package github

import (
	"fmt"
	"os"
	"strings"

	"github.com/HartBrook/condense/internal/errors"
	"github.com/cli/go-gh/v2/pkg/auth"
)

const (
	// EnvGitHubToken overrides every other token source when set.
	EnvGitHubToken = "CONDENSE_GITHUB_TOKEN"

	defaultHost = "github.com"
)

// Credentials is a resolved token and where it came from.
type Credentials struct {
	Token  string
	Host   string
	Source string
}

// tokenForHost asks gh for a host token. Tests replace it.
var tokenForHost = auth.TokenForHost

// ResolveCredentials finds a token for reading prompt files.
// CONDENSE_GITHUB_TOKEN wins, then whatever gh knows for the host: GH_TOKEN,
// GITHUB_TOKEN, its hosts file or `gh auth token`.
func ResolveCredentials() (Credentials, error) {
	if token := GetTokenFromEnv(); token != "" {
		return Credentials{Token: token, Host: defaultHost, Source: EnvGitHubToken}, nil
	}
	if token, source := tokenForHost(defaultHost); token != "" {
		return Credentials{Token: token, Host: defaultHost, Source: source}, nil
	}
	return Credentials{}, errors.GitHubAuthFailed(fmt.Errorf("no token found for %s", defaultHost))
}

// GetTokenFromEnv reads CONDENSE_GITHUB_TOKEN.
func GetTokenFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvGitHubToken))
}
