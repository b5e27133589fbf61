package main

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func configurationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configurations",
		Short: "Manage configuration versions",
	}

	var file string

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a configuration version from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := loadJSONFile(file)
			if err != nil {
				return err
			}
			return call(http.MethodPost, "/configurations", json.RawMessage(payload))
		},
	}
	create.Flags().StringVar(&file, "file", "", "path to the configuration JSON")
	create.MarkFlagRequired("file")

	var (
		tenantID      string
		processTypeID string
	)

	resolve := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the active configuration for a tenant and process type",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("tenant_id", tenantID)
			q.Set("process_type_id", processTypeID)
			return call(http.MethodGet, "/configurations/resolve?"+q.Encode(), nil)
		},
	}
	resolve.Flags().StringVar(&tenantID, "tenant", "", "tenant UUID")
	resolve.Flags().StringVar(&processTypeID, "type", "", "process type slug")
	resolve.MarkFlagRequired("tenant")
	resolve.MarkFlagRequired("type")

	cmd.AddCommand(
		create,
		resolve,
		&cobra.Command{
			Use:   "list",
			Short: "List configuration versions",
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodGet, "/configurations", nil)
			},
		},
		&cobra.Command{
			Use:   "activate [id]",
			Short: "Activate a configuration version",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodPost, "/configurations/"+args[0]+"/activate", nil)
			},
		},
		&cobra.Command{
			Use:   "deactivate [id]",
			Short: "Deactivate a configuration version",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodPost, "/configurations/"+args[0]+"/deactivate", nil)
			},
		},
	)

	return cmd
}
