package validation_test

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/steward-io/steward/internal/validation"
)

func TestRegistryDispatch(t *testing.T) {
	registry := validation.NewRegistry()
	registry.Register("always_pass", validation.PluginFunc(
		func(ctx context.Context, data map[string]any, rules json.RawMessage) (*validation.Result, error) {
			return &validation.Result{Status: validation.StatusSuccess}, nil
		},
	))

	result, err := registry.Validate(context.Background(), "always_pass", nil, nil)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if result.Rejected() {
		t.Errorf("Rejected() = true, want false")
	}

	if _, err := registry.Validate(context.Background(), "nonexistent_validator", nil, nil); !errors.Is(err, validation.ErrPluginNotFound) {
		t.Errorf("Validate(nonexistent_validator) error = %v, want ErrPluginNotFound", err)
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	registry := validation.NewRegistry()
	stub := func(status validation.Status) validation.PluginFunc {
		return func(ctx context.Context, data map[string]any, rules json.RawMessage) (*validation.Result, error) {
			return &validation.Result{Status: status}, nil
		}
	}

	registry.Register("custom", stub(validation.StatusErrors))
	registry.Register("custom", stub(validation.StatusSuccess))

	result, err := registry.Validate(context.Background(), "custom", nil, nil)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if result.Status != validation.StatusSuccess {
		t.Errorf("Status = %v, want %v after re-registration", result.Status, validation.StatusSuccess)
	}
}

func TestRegisterBuiltins(t *testing.T) {
	registry := validation.NewRegistry()
	validation.RegisterBuiltins(registry)

	names := registry.Names()
	for _, want := range []string{validation.PluginGenericSchema, validation.PluginPayroll} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() = %v, missing %q", names, want)
		}
	}
}

func TestGenericSchema(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		rules      string
		wantFields []string
	}{
		{
			"all rules satisfied",
			map[string]any{"invoice_id": "INV-1", "total": 10.5, "contact": "a@b.com"},
			`{"required":["invoice_id"],"fields":{"total":"gte=0","contact":"email"}}`,
			nil,
		},
		{
			"missing required key",
			map[string]any{"total": 10.5},
			`{"required":["invoice_id"]}`,
			[]string{"invoice_id"},
		},
		{
			"empty string fails required",
			map[string]any{"invoice_id": ""},
			`{"required":["invoice_id"]}`,
			[]string{"invoice_id"},
		},
		{
			"field rule violation",
			map[string]any{"total": -3.0},
			`{"fields":{"total":"gte=0"}}`,
			[]string{"total"},
		},
		{
			"absent field skips field rule",
			map[string]any{},
			`{"fields":{"total":"gte=0"}}`,
			nil,
		},
		{
			"no rules always passes",
			map[string]any{"anything": 1},
			``,
			nil,
		},
	}

	plugin := validation.NewGenericSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := plugin.Validate(context.Background(), tt.data, json.RawMessage(tt.rules))
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			assertViolations(t, result, tt.wantFields)
		})
	}
}

func TestGenericSchemaInvalidRules(t *testing.T) {
	plugin := validation.NewGenericSchema()
	_, err := plugin.Validate(context.Background(), nil, json.RawMessage(`{not json`))
	if !errors.Is(err, validation.ErrInvalidRules) {
		t.Errorf("Validate() error = %v, want ErrInvalidRules", err)
	}
}

func TestPayrollPlugin(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		wantFields []string
	}{
		{
			"valid payroll record",
			map[string]any{"gross_pay": 5000.0, "net_pay": 3800.0, "pay_period": "2026-02"},
			nil,
		},
		{
			"net exceeds gross",
			map[string]any{"gross_pay": 3000.0, "net_pay": 3800.0, "pay_period": "2026-02"},
			[]string{"net_pay"},
		},
		{
			"negative gross",
			map[string]any{"gross_pay": -1.0, "net_pay": 0.0, "pay_period": "2026-02"},
			[]string{"gross_pay"},
		},
		{
			"missing pay period",
			map[string]any{"gross_pay": 5000.0, "net_pay": 3800.0},
			[]string{"pay_period"},
		},
		{
			"non-numeric amounts",
			map[string]any{"gross_pay": "5000", "net_pay": "3800", "pay_period": "2026-02"},
			[]string{"gross_pay", "net_pay"},
		},
	}

	registry := validation.NewRegistry()
	validation.RegisterBuiltins(registry)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := registry.Validate(context.Background(), validation.PluginPayroll, tt.data, nil)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			assertViolations(t, result, tt.wantFields)
		})
	}
}

func assertViolations(t *testing.T, result *validation.Result, wantFields []string) {
	t.Helper()

	if len(wantFields) == 0 {
		if result.Rejected() {
			t.Errorf("Rejected() = true, violations = %v, want none", result.Errors)
		}
		return
	}

	if !result.Rejected() {
		t.Fatalf("Rejected() = false, want violations on %v", wantFields)
	}

	var got []string
	for _, fe := range result.Errors {
		got = append(got, fe.Field)
	}
	for _, field := range wantFields {
		if !slices.Contains(got, field) {
			t.Errorf("violations %v missing field %q", got, field)
		}
	}
}
