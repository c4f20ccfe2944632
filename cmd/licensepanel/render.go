package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rssw.eu/licensepanel/internal/dom"
	"rssw.eu/licensepanel/internal/extension"
	"rssw.eu/licensepanel/internal/panel"
	"rssw.eu/licensepanel/internal/server"
)

var renderCmd = &cobra.Command{
	Use:   "render [plugin/page]",
	Short: "Activate one extension against the host and print its HTML.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := panel.ExtensionKey
		if len(args) == 1 {
			key = args[0]
		}

		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		requester, err := server.Requester(cfg)
		if err != nil {
			return err
		}
		registry, err := server.Extensions(cfg, logger)
		if err != nil {
			return err
		}

		factory, ok := registry.Lookup(key)
		if !ok {
			return fmt.Errorf("unknown extension %q", key)
		}

		ctx := cmd.Context()
		mount := dom.NewMount()
		inst := factory(context.WithoutCancel(ctx), extension.Host{Mount: mount, Requester: requester})

		if err := waitRendered(ctx, inst, cfg.RenderTimeout); err != nil {
			return err
		}
		if e, ok := inst.(interface{ Err() error }); ok && e.Err() != nil {
			return fmt.Errorf("render %s: %w", key, e.Err())
		}

		if err := mount.Render(cmd.OutOrStdout()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func waitRendered(ctx context.Context, inst extension.Instance, timeout time.Duration) error {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-inst.Done():
		return nil
	case <-expired:
		inst.Deactivate()
		return fmt.Errorf("extension did not finish within %s", timeout)
	case <-ctx.Done():
		inst.Deactivate()
		return ctx.Err()
	}
}
