package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/HartBrook/condense/internal/errors"
)

// repoPattern matches owner/repo format.
var repoPattern = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+)$`)

// PromptSource identifies a prompt file in a GitHub repository.
type PromptSource struct {
	Owner string
	Repo  string
	Path  string
	Ref   string // empty means the default branch
}

// FullRepo returns "owner/repo".
func (s PromptSource) FullRepo() string {
	return s.Owner + "/" + s.Repo
}

func (s PromptSource) String() string {
	out := s.FullRepo() + ":" + s.Path
	if s.Ref != "" {
		out += "@" + s.Ref
	}
	return out
}

// ParsePromptSource resolves a repository reference and a file path. The
// repository may be a blob URL such as
// https://github.com/owner/repo/blob/main/prompts/review.md, in which case the
// ref and path come from the URL. Non-empty path and ref arguments win.
func ParsePromptSource(repoStr, path, ref string) (PromptSource, error) {
	owner, repo, rest, err := splitRepo(repoStr)
	if err != nil {
		return PromptSource{}, errors.InvalidRepo(repoStr)
	}

	src := PromptSource{Owner: owner, Repo: repo}
	if len(rest) >= 2 && (rest[0] == "blob" || rest[0] == "tree") {
		src.Ref = rest[1]
		src.Path = strings.Join(rest[2:], "/")
	}
	if path != "" {
		src.Path = strings.TrimPrefix(path, "/")
	}
	if ref != "" {
		src.Ref = ref
	}

	if src.Path == "" {
		return PromptSource{}, errors.New(errors.ErrInvalidRepo,
			fmt.Sprintf("no prompt file given for %s", src.FullRepo()),
			"Pass --path or a blob URL like https://github.com/owner/repo/blob/main/prompt.md")
	}
	return src, nil
}

// ParseRepo extracts owner and repo name from a repository string.
// Accepts formats:
//   - "https://github.com/owner/repo"
//   - "https://github.com/owner/repo.git"
//   - "https://github.com/owner/repo/blob/main/prompt.md"
//   - "github.com/owner/repo"
//   - "owner/repo"
func ParseRepo(repoStr string) (owner, repo string, err error) {
	owner, repo, _, err = splitRepo(repoStr)
	return owner, repo, err
}

// splitRepo returns owner, repo and any path segments after them.
func splitRepo(repoStr string) (owner, repo string, rest []string, err error) {
	if repoStr == "" {
		return "", "", nil, fmt.Errorf("repository string is empty")
	}

	// Strip protocol and host
	repoStr = strings.TrimPrefix(repoStr, "https://")
	repoStr = strings.TrimPrefix(repoStr, "http://")
	repoStr = strings.TrimPrefix(repoStr, "github.com/")
	repoStr = strings.TrimSuffix(repoStr, "/")

	parts := strings.Split(repoStr, "/")
	if len(parts) < 2 {
		return "", "", nil, fmt.Errorf("invalid repository format: %s (expected owner/repo)", repoStr)
	}

	matches := repoPattern.FindStringSubmatch(parts[0] + "/" + strings.TrimSuffix(parts[1], ".git"))
	if matches == nil {
		return "", "", nil, fmt.Errorf("invalid repository format: %s (expected owner/repo)", repoStr)
	}

	return matches[1], matches[2], parts[2:], nil
}
