package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	goPermit "github.com/MrEthical07/goPermit"
)

var checkAny bool

var checkCmd = &cobra.Command{
	Use:   "check perm...",
	Short: "Evaluate permissions against the configuration",
	Long: `check prints a per-permission verdict and exits 0 when the combined query
passes: all listed permissions by default, at least one with --any.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		resolver := goPermit.New(cfg)
		out := cmd.OutOrStdout()

		perms := make([]goPermit.Permission, 0, len(args))
		for _, arg := range args {
			p := goPermit.Permission(arg)
			perms = append(perms, p)

			verdict := "deny"
			if resolver.HasPermission(p) {
				verdict = "allow"
			} else if resolver.Granted(p) {
				verdict = fmt.Sprintf("deny (restricted: %s)", resolver.RestrictionReason(p))
			}
			fmt.Fprintf(out, "%-24s %s\n", p, verdict)
		}

		mode := goPermit.ModeAll
		if checkAny {
			mode = goPermit.ModeAny
		}
		if !resolver.CanMode(mode, perms...) {
			return errors.New("permission denied")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkAny, "any", false, "pass when any permission is allowed instead of all")
}
