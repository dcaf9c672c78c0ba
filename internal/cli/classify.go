package cli

import (
	"encoding/json"
	"fmt"

	"github.com/HartBrook/condense/internal/compress"
	"github.com/spf13/cobra"
)

type classifyOptions struct {
	inputOptions
	jsonOutput bool
}

// NewClassifyCmd creates the classify command.
func NewClassifyCmd() *cobra.Command {
	opts := &classifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Print the detected prompt type and its policy band",
		Example: `  condense classify prompt.md
  echo "Write a function that parses JSON" | condense classify`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args, opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print as JSON")

	return cmd
}

type classification struct {
	Type               compress.PromptType `json:"type"`
	TargetReductionMin int                 `json:"target_reduction_min"`
	TargetReductionMax int                 `json:"target_reduction_max"`
	EstimatedTokens    int                 `json:"estimated_tokens"`
}

func runClassify(cmd *cobra.Command, args []string, opts *classifyOptions) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	policies, err := cfg.PolicyTable()
	if err != nil {
		return err
	}

	text, _, err := requirePrompt(cmd, args, &opts.inputOptions, cfg)
	if err != nil {
		return err
	}

	t := compress.Classify(text, "")
	policy := policies.Lookup(t)
	c := classification{
		Type:               t,
		TargetReductionMin: policy.TargetReductionMin,
		TargetReductionMax: policy.TargetReductionMax,
		EstimatedTokens:    compress.EstimateTokens(text),
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	fmt.Fprintln(out, c.Type)
	printInfo(cmd.ErrOrStderr(), "Target", fmt.Sprintf("%d-%d%% reduction", c.TargetReductionMin, c.TargetReductionMax))
	printInfo(cmd.ErrOrStderr(), "Tokens", fmt.Sprintf("%d", c.EstimatedTokens))
	return nil
}
