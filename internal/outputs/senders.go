package outputs

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"
)

// RegisterBuiltinSenders binds the senders that need no external
// integration: webhook delivery and database inserts. Email and ERP
// senders are registered by deployments that carry those integrations.
func RegisterBuiltinSenders(r *SenderRegistry, db *sql.DB, logger *slog.Logger) {
	client := &http.Client{Timeout: 30 * time.Second}
	r.Register(ActionWebhook, NewWebhookSender(client, logger))
	r.Register(ActionDBInsert, NewDBInsertSender(db))
}

type webhookTarget struct {
	URL string `json:"url"`
}

// NewWebhookSender returns a sender that POSTs the process result as JSON
// to the URL in the action target.
func NewWebhookSender(client *http.Client, logger *slog.Logger) Sender {
	log := logger.With("sender", "webhook")

	return SenderFunc(func(ctx context.Context, action OutputAction, result json.RawMessage) error {
		var target webhookTarget
		if err := json.Unmarshal(action.Target, &target); err != nil {
			return fmt.Errorf("decode webhook target: %w", err)
		}
		if target.URL == "" {
			return fmt.Errorf("webhook target has no url")
		}

		body, err := json.Marshal(map[string]any{
			"process_id": action.ProcessID,
			"result":     result,
		})
		if err != nil {
			return fmt.Errorf("encode webhook body: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build webhook request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("deliver webhook: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("webhook target returned %d", resp.StatusCode)
		}

		log.Info("webhook delivered", "process", action.ProcessID, "url", target.URL)
		return nil
	})
}

type dbInsertTarget struct {
	Table string `json:"table"`
}

var tableIdent = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// NewDBInsertSender returns a sender that inserts the process result into
// the table named by the action target. The table must already exist with
// (process_id uuid, payload jsonb) columns.
func NewDBInsertSender(db *sql.DB) Sender {
	return SenderFunc(func(ctx context.Context, action OutputAction, result json.RawMessage) error {
		var target dbInsertTarget
		if err := json.Unmarshal(action.Target, &target); err != nil {
			return fmt.Errorf("decode db_insert target: %w", err)
		}
		if !tableIdent.MatchString(target.Table) {
			return fmt.Errorf("invalid db_insert table name: %q", target.Table)
		}

		q := fmt.Sprintf(
			"INSERT INTO %s (process_id, payload) VALUES ($1, $2)",
			target.Table,
		)
		if _, err := db.ExecContext(ctx, q, action.ProcessID, []byte(result)); err != nil {
			return fmt.Errorf("db_insert delivery: %w", err)
		}

		return nil
	})
}
