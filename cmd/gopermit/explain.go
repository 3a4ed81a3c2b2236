package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	goPermit "github.com/MrEthical07/goPermit"
	"github.com/MrEthical07/goPermit/inspect"
)

var explainJSON bool

var explainCmd = &cobra.Command{
	Use:   "explain perm...",
	Short: "Show the full decision story for each permission",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		resolver := goPermit.New(cfg)
		perms := make([]goPermit.Permission, 0, len(args))
		for _, arg := range args {
			perms = append(perms, goPermit.Permission(arg))
		}
		decisions := inspect.ExplainAll(resolver, perms...)

		out := cmd.OutOrStdout()
		if explainJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(decisions)
		}

		renderer := inspect.NewRenderer(true)
		for _, d := range decisions {
			fmt.Fprint(out, renderer.Decision(d))
		}
		return nil
	},
}

func init() {
	explainCmd.Flags().BoolVar(&explainJSON, "json", false, "emit decisions as JSON")
}
