package main

import (
	"net/http"

	"github.com/spf13/cobra"
)

func processesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "processes",
		Short: "Operate on processes",
	}

	var (
		tenantID      string
		processTypeID string
		documents     []string
		configVersion int
	)

	start := &cobra.Command{
		Use:   "start",
		Short: "Create a process and begin the pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"tenant_id":       tenantID,
				"process_type_id": processTypeID,
				"document_refs":   documents,
			}
			if cmd.Flags().Changed("config-version") {
				body["config_version"] = configVersion
			}
			return call(http.MethodPost, "/processes", body)
		},
	}
	start.Flags().StringVar(&tenantID, "tenant", "", "tenant UUID")
	start.Flags().StringVar(&processTypeID, "type", "", "process type slug")
	start.Flags().StringArrayVar(&documents, "doc", nil, "document storage reference (repeatable)")
	start.Flags().IntVar(&configVersion, "config-version", 0, "pin an explicit configuration version")
	start.MarkFlagRequired("tenant")
	start.MarkFlagRequired("type")
	start.MarkFlagRequired("doc")

	var (
		reviewer  string
		corrected string
	)

	approve := &cobra.Command{
		Use:   "approve [id]",
		Short: "Approve a process waiting in human review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"reviewed_by": reviewer}
			if corrected != "" {
				payload, err := loadJSONFile(corrected)
				if err != nil {
					return err
				}
				body["corrected_payload"] = payload
			}
			return call(http.MethodPost, "/processes/"+args[0]+"/approve", body)
		},
	}
	approve.Flags().StringVar(&reviewer, "reviewer", "", "reviewer identity")
	approve.Flags().StringVar(&corrected, "corrected", "", "path to a corrected payload JSON")
	approve.MarkFlagRequired("reviewer")

	var operator string

	cancel := &cobra.Command{
		Use:   "cancel [id]",
		Short: "Cancel a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/processes/"+args[0]+"/cancel", map[string]string{
				"operator": operator,
			})
		},
	}
	cancel.Flags().StringVar(&operator, "operator", "", "operator identity")
	cancel.MarkFlagRequired("operator")

	cmd.AddCommand(
		start,
		approve,
		cancel,
		&cobra.Command{
			Use:   "list",
			Short: "List processes",
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodGet, "/processes", nil)
			},
		},
		&cobra.Command{
			Use:   "show [id]",
			Short: "Show one process",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodGet, "/processes/"+args[0], nil)
			},
		},
		&cobra.Command{
			Use:   "hitl",
			Short: "List processes waiting for human review",
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodGet, "/processes/hitl-queue", nil)
			},
		},
		&cobra.Command{
			Use:   "audit [id]",
			Short: "Show the audit trail for a process",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(http.MethodGet, "/audit/process/"+args[0], nil)
			},
		},
	)

	return cmd
}
