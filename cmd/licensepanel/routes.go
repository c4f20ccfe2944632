package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"rssw.eu/licensepanel/internal/server"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the HTTP routes and exit.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		srv, err := server.Build(cfg, logger)
		if err != nil {
			return err
		}

		routes := srv.Echo.Routes()
		sort.Slice(routes, func(i, j int) bool {
			return routes[i].Path < routes[j].Path
		})

		for _, r := range routes {
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", r.Method, r.Path)
		}
		return nil
	},
}
