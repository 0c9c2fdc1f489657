package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"finance/internal/delivery/api"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

// routesCmd prints the route table without starting the server.
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Lists the HTTP routes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		routes := api.Routes()
		slices.SortFunc(routes, func(a, b *echo.Route) int {
			if c := strings.Compare(a.Path, b.Path); c != 0 {
				return c
			}

			return strings.Compare(a.Method, b.Method)
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, route := range routes {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", route.Method, route.Path); err != nil {
				return err
			}
		}

		return w.Flush()
	},
}
