package main

import (
	"github.com/spf13/cobra"
)

var version = "dev" // set during build

var (
	cfgFile   string
	tokenArg  string
	tokenFile string
	sectorArg string
)

var rootCmd = &cobra.Command{
	Use:           "gopermit",
	Short:         "Inspect and evaluate goPermit permission configurations",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	Long: `gopermit evaluates client-side permission configurations: direct grants,
role-derived grants, a global deny-list, and sector-scoped deny-lists.

The configuration comes from a JSON/JSONC/YAML file (--config), from the
claims of an access token (--token / --token-file; decoded, never verified),
and the active sector can be overridden with --sector.

Decisions here are advisory. The server enforcing the real permissions is
the security boundary, not this tool.`,
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (.json, .jsonc, .yaml, .yml)")
	rootCmd.PersistentFlags().StringVar(&tokenArg, "token", "", "access token carrying permission claims")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "file containing the access token")
	rootCmd.PersistentFlags().StringVar(&sectorArg, "sector", "", "override the active sector")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(watchCmd)
}
