package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrEthical07/goPermit/inspect"
)

var (
	lintJSON   bool
	lintStrict bool
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Report advisory configuration findings",
	Long: `lint flags configurations that are legal but probably unintended: assigned
roles without definitions, defined roles nothing uses, restrictions that
block nothing, duplicated list entries. Findings never make a config invalid;
the exit code is nonzero only with --strict.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		problems := inspect.Lint(cfg)
		out := cmd.OutOrStdout()

		if lintJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(problems); err != nil {
				return err
			}
		} else {
			fmt.Fprint(out, inspect.NewRenderer(true).Problems(problems))
		}

		if lintStrict && len(problems) > 0 {
			return fmt.Errorf("%d lint finding(s)", len(problems))
		}
		return nil
	},
}

func init() {
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "emit findings as JSON")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "exit nonzero when there are findings")
}
