package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	goPermit "github.com/MrEthical07/goPermit"
	"github.com/MrEthical07/goPermit/bind"
	"github.com/MrEthical07/goPermit/inspect"
	"github.com/MrEthical07/goPermit/source"
)

var watchCmd = &cobra.Command{
	Use:   "watch [perm...]",
	Short: "Live-render the state while the config file changes",
	Long: `watch re-renders the state report (and verdicts for any listed permissions)
every time the config file is reloaded. Edits that fail to parse are
reported and the previous configuration stays in force.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile == "" {
			return errors.New("watch requires --config")
		}

		perms := make([]goPermit.Permission, 0, len(args))
		for _, arg := range args {
			perms = append(perms, goPermit.Permission(arg))
		}

		store := bind.New(goPermit.Config{})
		defer store.Close()
		sub := store.Subscribe(16)

		out := cmd.OutOrStdout()
		renderer := inspect.NewRenderer(true)

		render := func() {
			fmt.Fprintln(out, "----")
			fmt.Fprint(out, renderer.Report(inspect.Describe(store)))
			for _, p := range perms {
				fmt.Fprint(out, renderer.Decision(inspect.Explain(store, p)))
			}
		}

		watcher, err := source.Watch(cfgFile, store, source.WithErrorHandler(func(err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", err)
		}))
		if err != nil {
			return err
		}
		defer watcher.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(out, "watching %s\n", watcher.Path())
		render()

		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-sub.Events():
				if !ok {
					return nil
				}
				fmt.Fprintf(out, "changed: %s\n", ev.Fields)
				render()
			}
		}
	},
}
