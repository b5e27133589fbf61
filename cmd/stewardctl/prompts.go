package main

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"
)

func promptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Manage prompt versions",
	}

	var file string

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a prompt version from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := loadJSONFile(file)
			if err != nil {
				return err
			}
			return call(http.MethodPost, "/prompts", json.RawMessage(payload))
		},
	}
	create.Flags().StringVar(&file, "file", "", "path to the prompt JSON")
	create.MarkFlagRequired("file")

	cmd.AddCommand(
		create,
		&cobra.Command{
			Use:   "list",
			Short: "List prompt versions",
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodGet, "/prompts", nil)
			},
		},
		&cobra.Command{
			Use:   "stages",
			Short: "List canonical pipeline stages",
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodGet, "/prompts/stages", nil)
			},
		},
		&cobra.Command{
			Use:   "activate [id]",
			Short: "Activate a prompt version",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodPost, "/prompts/"+args[0]+"/activate", nil)
			},
		},
		&cobra.Command{
			Use:   "deactivate [id]",
			Short: "Deactivate a prompt version",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodPost, "/prompts/"+args[0]+"/deactivate", nil)
			},
		},
	)

	return cmd
}
