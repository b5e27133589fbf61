package main

import (
	"net/http"

	"github.com/spf13/cobra"
)

func processTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process-types",
		Short: "Manage process types",
	}

	var (
		id             string
		name           string
		defaultVersion int
	)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a process type",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/process-types", map[string]any{
				"id":              id,
				"name":            name,
				"default_version": defaultVersion,
			})
		},
	}
	create.Flags().StringVar(&id, "id", "", "process type slug (e.g. payroll_v1)")
	create.Flags().StringVar(&name, "name", "", "display name")
	create.Flags().IntVar(&defaultVersion, "default-version", 1, "default configuration version")
	create.MarkFlagRequired("id")
	create.MarkFlagRequired("name")

	cmd.AddCommand(
		create,
		&cobra.Command{
			Use:   "list",
			Short: "List process types",
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodGet, "/process-types", nil)
			},
		},
		&cobra.Command{
			Use:   "activate [id]",
			Short: "Activate a process type",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodPost, "/process-types/"+args[0]+"/activate", nil)
			},
		},
		&cobra.Command{
			Use:   "deactivate [id]",
			Short: "Deactivate a process type",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodPost, "/process-types/"+args[0]+"/deactivate", nil)
			},
		},
	)

	return cmd
}
