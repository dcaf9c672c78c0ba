// Package errors provides typed errors for condense.
package errors

import (
	"fmt"
	"strings"
)

// ErrorCode identifies the type of error.
type ErrorCode string

const (
	ErrEmptyInput        ErrorCode = "EMPTY_INPUT"
	ErrUnknownPromptType ErrorCode = "UNKNOWN_PROMPT_TYPE"
	ErrConfigNotFound    ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigInvalid     ErrorCode = "CONFIG_INVALID"
	ErrPolicyInvalid     ErrorCode = "POLICY_INVALID"
	ErrGitHubAuthFailed  ErrorCode = "GITHUB_AUTH_FAILED"
	ErrGitHubFetchFailed ErrorCode = "GITHUB_FETCH_FAILED"
	ErrCacheNotFound     ErrorCode = "CACHE_NOT_FOUND"
	ErrInvalidRepo       ErrorCode = "INVALID_REPO"
)

// Error represents a typed error with a user-friendly hint.
type Error struct {
	Code    ErrorCode
	Message string
	Hint    string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error.
func New(code ErrorCode, message, hint string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Hint:    hint,
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code ErrorCode, message, hint string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Hint:    hint,
		Cause:   cause,
	}
}

// EmptyInput is returned before compression when there is no prompt text.
func EmptyInput(source string) *Error {
	return &Error{
		Code:    ErrEmptyInput,
		Message: fmt.Sprintf("no prompt text in %s", source),
		Hint:    "Pass a file, pipe text on stdin, or use --repo and --path",
	}
}

// UnknownPromptType returns an error for an unrecognized --type value.
func UnknownPromptType(name string, valid []string) *Error {
	return &Error{
		Code:    ErrUnknownPromptType,
		Message: fmt.Sprintf("unknown prompt type: %s", name),
		Hint:    "Valid types: " + strings.Join(valid, ", "),
	}
}

// ConfigNotFound returns an error for missing config file.
func ConfigNotFound(path string) *Error {
	return &Error{
		Code:    ErrConfigNotFound,
		Message: fmt.Sprintf("config file not found: %s", path),
		Hint:    "Run `condense config init` to create a configuration",
	}
}

// ConfigInvalid returns an error for invalid config.
func ConfigInvalid(reason string) *Error {
	return &Error{
		Code:    ErrConfigInvalid,
		Message: fmt.Sprintf("invalid config: %s", reason),
		Hint:    "Check your config file at ~/.config/condense/config.yaml",
	}
}

// PolicyInvalid returns an error for a policy override that fails validation.
func PolicyInvalid(promptType string, cause error) *Error {
	return &Error{
		Code:    ErrPolicyInvalid,
		Message: fmt.Sprintf("invalid policy for %s", promptType),
		Hint:    "Bands need 0 <= min <= max <= 100; run `condense policies` to see the defaults",
		Cause:   cause,
	}
}

// GitHubAuthFailed returns an error for authentication failures.
func GitHubAuthFailed(cause error) *Error {
	return &Error{
		Code:    ErrGitHubAuthFailed,
		Message: "GitHub authentication failed",
		Hint:    "Set CONDENSE_GITHUB_TOKEN or run `gh auth login`, or pipe the prompt on stdin instead of --repo",
		Cause:   cause,
	}
}

// GitHubFetchFailed returns an error for fetch failures.
func GitHubFetchFailed(repo string, cause error) *Error {
	return &Error{
		Code:    ErrGitHubFetchFailed,
		Message: fmt.Sprintf("failed to fetch from %s", repo),
		Hint:    "Check that the repository and path exist and you have access",
		Cause:   cause,
	}
}

// CacheNotFound returns an error when a cached result doesn't exist.
func CacheNotFound(key string) *Error {
	return &Error{
		Code:    ErrCacheNotFound,
		Message: fmt.Sprintf("no cached result for %s", key),
		Hint:    "Run `condense cache list` to see cached results",
	}
}

// InvalidRepo returns an error for malformed repo strings.
func InvalidRepo(repo string) *Error {
	return &Error{
		Code:    ErrInvalidRepo,
		Message: fmt.Sprintf("invalid repository format: %s", repo),
		Hint:    "Use format: github.com/owner/repo or owner/repo",
	}
}
