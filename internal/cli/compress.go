package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/HartBrook/condense/internal/cache"
	"github.com/HartBrook/condense/internal/compress"
	"github.com/HartBrook/condense/internal/config"
	"github.com/spf13/cobra"
)

type compressOptions struct {
	inputOptions
	promptType string
	jsonOutput bool
	showDiff   bool
	output     string
	force      bool
	verbose    bool
	noCache    bool
}

// NewCompressCmd creates the compress command.
func NewCompressCmd() *cobra.Command {
	opts := &compressOptions{}

	cmd := &cobra.Command{
		Use:   "compress [file]",
		Short: "Compress a prompt into its type's reduction band",
		Long: `Compresses a prompt without calling a model.

The prompt is read from a file, from stdin, or from a file in a GitHub
repository. The process:
1. Classifies the prompt (or uses --type)
2. Removes filler, restructures lists and condenses verbose phrasing
3. Steers the token count into the policy band for the type
4. Scores how much structure survived and flags what was lost

The compressed prompt goes to stdout; stats go to stderr.`,
		Example: `  condense compress prompt.md                 # Compress a file
  cat prompt.md | condense compress           # Compress stdin
  condense compress prompt.md --type code     # Skip classification
  condense compress prompt.md --json          # Full result as JSON
  condense compress prompt.md --diff          # Show before/after diff
  condense compress prompt.md -o short.md     # Write to file
  condense compress --repo acme/prompts --path review.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(cmd, args, opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.promptType, "type", "t", "", "Prompt type (skip classification)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the full result as JSON")
	cmd.Flags().BoolVar(&opts.showDiff, "diff", false, "Show before/after diff")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write compressed prompt to file")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Recompress even if a cached result is valid")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log each compression phase")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Skip cache read/write")

	return cmd
}

func runCompress(cmd *cobra.Command, args []string, opts *compressOptions) error {
	cfg, paths, err := loadConfig()
	if err != nil {
		return err
	}

	override, err := parseTypeFlag(opts.promptType)
	if err != nil {
		return err
	}

	policies, err := cfg.PolicyTable()
	if err != nil {
		return err
	}

	text, source, err := requirePrompt(cmd, args, &opts.inputOptions, cfg)
	if err != nil {
		return err
	}

	logger, logs, err := newLogger(cmd, cfg, opts.verbose)
	if err != nil {
		return err
	}
	defer logs.Close()
	engine := compress.New(compress.WithPolicies(policies), compress.WithLogger(logger))

	fingerprint := policies.Fingerprint()
	key := cache.Key(text, override, fingerprint)
	resultCache := cache.New(paths)
	useCache := cfg.CacheEnabled() && !opts.noCache

	var result *compress.Result
	fromCache := false
	if useCache && !opts.force {
		cached, meta, err := resultCache.Read(key)
		if err == nil && !meta.IsStale(cfg.Cache.TTLDuration()) {
			result = cached
			fromCache = true
			logger.Debug().Str("key", meta.ShortKey()).Str("run_id", meta.RunID).Msg("using cached result")
		}
	}

	if result == nil {
		result = engine.Compress(compress.Request{Text: text, Type: override})
		if useCache {
			if err := resultCache.Write(key, result, cache.NewMetadata(key, source, fingerprint, result)); err != nil {
				logger.Warn().Err(err).Msg("failed to cache result")
			}
		}
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(result.Compressed+"\n"), config.DefaultFileMode); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if opts.output == "" {
		fmt.Fprintln(out, result.Compressed)
	}

	displayResult(errOut, result, fromCache, opts.verbose)

	if opts.showDiff {
		displayDiff(errOut, result.Original, result.Compressed)
	}

	if opts.output != "" {
		fmt.Fprintln(errOut)
		printSuccess(errOut, "Wrote compressed prompt to %s", opts.output)
	}

	return nil
}
