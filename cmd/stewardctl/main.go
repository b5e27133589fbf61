// stewardctl is the administrative CLI for a running Steward service. It
// drives the same HTTP API the dashboard uses: tenants, process types,
// configuration and prompt versions, and operator process actions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "stewardctl",
		Short:   "Steward service administration",
		Version: version,
	}

	root.PersistentFlags().StringVar(
		&baseURL,
		"addr",
		envOr("STEWARD_ADDR", "http://localhost:8080/api"),
		"base API address",
	)

	root.AddCommand(
		tenantsCmd(),
		processTypesCmd(),
		configurationsCmd(),
		promptsCmd(),
		processesCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
