package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	goPermit "github.com/MrEthical07/goPermit"
	"github.com/MrEthical07/goPermit/inspect"
)

var dumpJSON bool

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Render the full resolved state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		report := inspect.Describe(goPermit.New(cfg))

		out := cmd.OutOrStdout()
		if dumpJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Fprint(out, inspect.NewRenderer(true).Report(report))
		return nil
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpJSON, "json", false, "emit the report as JSON")
}
