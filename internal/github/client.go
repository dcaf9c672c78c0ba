package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/HartBrook/condense/internal/config"
	"github.com/HartBrook/condense/internal/errors"
	"github.com/cli/go-gh/v2/pkg/api"
)

// Client wraps the GitHub API for fetching prompt files.
type Client struct {
	rest *api.RESTClient
}

// FetchResult contains a fetched prompt file.
type FetchResult struct {
	Content string
	SHA     string
	Path    string
	Size    int
}

// NewClient creates a GitHub client from resolved credentials.
func NewClient(creds Credentials) (*Client, error) {
	return NewClientWithOptions(api.ClientOptions{AuthToken: creds.Token, Host: creds.Host})
}

// NewClientWithOptions creates a GitHub client from go-gh options.
func NewClientWithOptions(opts api.ClientOptions) (*Client, error) {
	client, err := api.NewRESTClient(opts)
	if err != nil {
		return nil, err
	}
	return &Client{rest: client}, nil
}

// fileContentsResponse represents GitHub's contents API response.
type fileContentsResponse struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Size     int    `json:"size"`
	Path     string `json:"path"`
	Content  string `json:"content"`
	SHA      string `json:"sha"`
}

// contentsEndpoint builds the contents API path, escaping each segment so
// nested paths keep their slashes.
func contentsEndpoint(src config.PromptSource) string {
	segments := strings.Split(src.Path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	endpoint := fmt.Sprintf("repos/%s/%s/contents/%s", src.Owner, src.Repo, strings.Join(segments, "/"))
	if src.Ref != "" {
		endpoint += "?ref=" + url.QueryEscape(src.Ref)
	}
	return endpoint
}

// FetchFile fetches a prompt file from a repo.
func (c *Client) FetchFile(ctx context.Context, src config.PromptSource) (*FetchResult, error) {
	if src.Owner == "" || src.Repo == "" || src.Path == "" {
		return nil, errors.InvalidRepo(src.String())
	}

	var response fileContentsResponse
	err := c.rest.DoWithContext(ctx, http.MethodGet, contentsEndpoint(src), nil, &response)
	if err != nil {
		if httpErr, ok := err.(*api.HTTPError); ok && httpErr.StatusCode == http.StatusNotFound {
			return nil, errors.GitHubFetchFailed(src.String(), fmt.Errorf("file not found"))
		}
		return nil, errors.GitHubFetchFailed(src.String(), err)
	}

	if response.Type != "file" {
		return nil, errors.GitHubFetchFailed(src.String(), fmt.Errorf("%s is a %s, not a file", src.Path, response.Type))
	}
	if response.Encoding != "" && response.Encoding != "base64" {
		return nil, errors.GitHubFetchFailed(src.String(), fmt.Errorf("unsupported encoding %q", response.Encoding))
	}

	// GitHub wraps base64 content at 60 columns; the decoder skips newlines.
	content, err := base64.StdEncoding.DecodeString(response.Content)
	if err != nil {
		return nil, errors.GitHubFetchFailed(src.String(), fmt.Errorf("failed to decode content: %w", err))
	}

	return &FetchResult{
		Content: string(content),
		SHA:     response.SHA,
		Path:    response.Path,
		Size:    response.Size,
	}, nil
}
