package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/HartBrook/condense/internal/compress"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewPoliciesCmd creates the policies command.
func NewPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies [type]",
		Short: "Show the effective compression policy per prompt type",
		Long: `Shows the reduction band, example cap and techniques for each prompt type,
after applying overrides from the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPolicies(cmd, args)
		},
	}
}

func runPolicies(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	table, err := cfg.PolicyTable()
	if err != nil {
		return err
	}

	types := compress.Types()
	if len(args) == 1 {
		t, err := parseTypeFlag(args[0])
		if err != nil {
			return err
		}
		types = []compress.PromptType{t}
	}

	out := cmd.OutOrStdout()
	for i, t := range types {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printPolicy(out, t, table.Lookup(t))
	}
	return nil
}

func printPolicy(w io.Writer, t compress.PromptType, policy compress.CompressionConfig) {
	title := cases.Title(language.English).String(string(t))
	fmt.Fprintf(w, "%s %s\n", info(title), dim("("+string(t)+")"))
	printInfo(w, "Band", fmt.Sprintf("%d-%d%%", policy.TargetReductionMin, policy.TargetReductionMax))
	printInfo(w, "Max examples", fmt.Sprintf("%d", policy.MaxExamples))
	printInfo(w, "Allowed", joinCodes(policy.AllowedTechniques))
	if len(policy.RiskyTechniques) > 0 {
		printInfo(w, "Risky", warning(joinCodes(policy.RiskyTechniques)))
	}
}

func joinCodes(list []compress.Technique) string {
	if len(list) == 0 {
		return "none"
	}
	codes := make([]string, len(list))
	for i, t := range list {
		codes[i] = t.Code()
	}
	return strings.Join(codes, ", ")
}
