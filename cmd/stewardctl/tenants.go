package main

import (
	"net/http"

	"github.com/spf13/cobra"
)

func tenantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "Manage tenants",
	}

	var (
		name string
		tier string
	)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/tenants", map[string]string{
				"name": name,
				"tier": tier,
			})
		},
	}
	create.Flags().StringVar(&name, "name", "", "tenant name")
	create.Flags().StringVar(&tier, "tier", "standard", "billing tier")
	create.MarkFlagRequired("name")

	cmd.AddCommand(
		create,
		&cobra.Command{
			Use:   "list",
			Short: "List tenants",
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodGet, "/tenants", nil)
			},
		},
		&cobra.Command{
			Use:   "suspend [id]",
			Short: "Suspend a tenant",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodPost, "/tenants/"+args[0]+"/suspend", nil)
			},
		},
		&cobra.Command{
			Use:   "reactivate [id]",
			Short: "Reactivate a suspended tenant",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodPost, "/tenants/"+args[0]+"/reactivate", nil)
			},
		},
	)

	return cmd
}
