package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	goPermit "github.com/MrEthical07/goPermit"
	"github.com/MrEthical07/goPermit/source"
)

// loadConfig resolves the configuration from --config, --token, or
// --token-file, then applies the --sector override when set.
func loadConfig() (goPermit.Config, error) {
	var src source.Source

	switch {
	case cfgFile != "":
		src = source.NewFileSource(cfgFile)
	case tokenArg != "":
		src = source.NewTokenSource(tokenArg)
	case tokenFile != "":
		data, err := os.ReadFile(tokenFile)
		if err != nil {
			return goPermit.Config{}, fmt.Errorf("read token file: %w", err)
		}
		src = source.NewTokenSource(strings.TrimSpace(string(data)))
	default:
		return goPermit.Config{}, errors.New("one of --config, --token, or --token-file is required")
	}

	cfg, err := src.Load()
	if err != nil {
		return goPermit.Config{}, err
	}

	if rootCmd.PersistentFlags().Changed("sector") {
		cfg.Sector = goPermit.Sector(sectorArg)
	}

	return cfg, nil
}
