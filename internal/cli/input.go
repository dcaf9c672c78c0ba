package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/HartBrook/condense/internal/compress"
	"github.com/HartBrook/condense/internal/config"
	"github.com/HartBrook/condense/internal/errors"
	"github.com/HartBrook/condense/internal/github"
	"github.com/spf13/cobra"
)

// inputOptions selects where prompt text comes from.
type inputOptions struct {
	repo string
	path string
	ref  string
}

func (o *inputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.repo, "repo", "", "Read the prompt from a GitHub repository (owner/repo or blob URL)")
	cmd.Flags().StringVar(&o.path, "path", "", "File path within --repo")
	cmd.Flags().StringVar(&o.ref, "ref", "", "Branch, tag or commit for --repo (default from config, then the default branch)")
}

// fetchFunc fetches a prompt file from GitHub. Tests replace it.
var fetchFunc = func(cmd *cobra.Command, src config.PromptSource) (string, error) {
	creds, err := github.ResolveCredentials()
	if err != nil {
		return "", err
	}
	client, err := github.NewClient(creds)
	if err != nil {
		return "", errors.GitHubAuthFailed(err)
	}
	result, err := client.FetchFile(cmd.Context(), src)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// readPrompt returns the prompt text and a label for where it came from.
// Sources in order: --repo, a file argument, stdin ("-" or no argument).
func readPrompt(cmd *cobra.Command, args []string, opts *inputOptions, cfg *config.Config) (string, string, error) {
	if opts.repo != "" {
		if len(args) > 0 {
			return "", "", fmt.Errorf("cannot combine a file argument with --repo")
		}
		src, err := config.ParsePromptSource(opts.repo, opts.path, opts.ref)
		if err != nil {
			return "", "", err
		}
		if src.Ref == "" {
			src.Ref = cfg.GitHub.Ref
		}
		text, err := fetchFunc(cmd, src)
		if err != nil {
			return "", "", err
		}
		return text, src.String(), nil
	}

	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read prompt: %w", err)
		}
		return string(data), args[0], nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), "stdin", nil
}

// requirePrompt reads the prompt and rejects empty input.
func requirePrompt(cmd *cobra.Command, args []string, opts *inputOptions, cfg *config.Config) (string, string, error) {
	text, source, err := readPrompt(cmd, args, opts, cfg)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", "", errors.EmptyInput(source)
	}
	return text, source, nil
}

// parseTypeFlag resolves a --type value. Empty means classify.
func parseTypeFlag(value string) (compress.PromptType, error) {
	if value == "" {
		return "", nil
	}
	t, ok := compress.ParsePromptType(value)
	if !ok {
		return "", errors.UnknownPromptType(value, typeNames())
	}
	return t, nil
}

func typeNames() []string {
	types := compress.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}
