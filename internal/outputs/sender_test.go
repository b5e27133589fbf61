package outputs_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/steward-io/steward/internal/outputs"
)

func TestSenderRegistry(t *testing.T) {
	registry := outputs.NewSenderRegistry()

	var delivered bool
	registry.Register(outputs.ActionEmail, outputs.SenderFunc(
		func(ctx context.Context, action outputs.OutputAction, result json.RawMessage) error {
			delivered = true
			return nil
		},
	))

	action := outputs.OutputAction{ID: uuid.New(), Type: outputs.ActionEmail}
	if err := registry.Send(context.Background(), action, nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !delivered {
		t.Error("registered sender was not invoked")
	}

	action.Type = outputs.ActionERP
	if err := registry.Send(context.Background(), action, nil); !errors.Is(err, outputs.ErrNoSender) {
		t.Errorf("Send(unregistered type) error = %v, want ErrNoSender", err)
	}
}

func TestWebhookSender(t *testing.T) {
	processID := uuid.New()

	var received map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := outputs.NewWebhookSender(srv.Client(), discardLogger())
	action := outputs.OutputAction{
		ID:        uuid.New(),
		ProcessID: processID,
		Type:      outputs.ActionWebhook,
		Target:    json.RawMessage(`{"url":"` + srv.URL + `"}`),
	}

	if err := sender.Send(context.Background(), action, json.RawMessage(`{"total":42}`)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if string(received["result"]) != `{"total":42}` {
		t.Errorf("delivered result = %s, want {\"total\":42}", received["result"])
	}
	var gotID uuid.UUID
	if err := json.Unmarshal(received["process_id"], &gotID); err != nil {
		t.Fatalf("decode process_id: %v", err)
	}
	if gotID != processID {
		t.Errorf("delivered process_id = %s, want %s", gotID, processID)
	}
}

func TestWebhookSenderFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sender := outputs.NewWebhookSender(srv.Client(), discardLogger())

	tests := []struct {
		name   string
		target string
	}{
		{"non-2xx response", `{"url":"` + srv.URL + `"}`},
		{"missing url", `{}`},
		{"malformed target", `{oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := outputs.OutputAction{
				ProcessID: uuid.New(),
				Type:      outputs.ActionWebhook,
				Target:    json.RawMessage(tt.target),
			}
			if err := sender.Send(context.Background(), action, nil); err == nil {
				t.Error("Send() error = nil, want delivery failure")
			}
		})
	}
}

func TestDBInsertSenderRejectsBadTable(t *testing.T) {
	sender := outputs.NewDBInsertSender(nil)

	tests := []struct {
		name   string
		target string
	}{
		{"quoted injection", `{"table":"results; drop table results"}`},
		{"upper case", `{"table":"Results"}`},
		{"empty", `{"table":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := outputs.OutputAction{
				ProcessID: uuid.New(),
				Type:      outputs.ActionDBInsert,
				Target:    json.RawMessage(tt.target),
			}
			if err := sender.Send(context.Background(), action, nil); err == nil {
				t.Error("Send() error = nil, want table name rejection")
			}
		})
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
