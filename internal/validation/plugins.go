package validation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Builtin plugin names.
const (
	PluginGenericSchema = "generic_schema"
	PluginPayroll       = "payroll"
)

// RegisterBuiltins registers the validators that ship with the service.
// Tenant-specific validators register alongside these at startup.
func RegisterBuiltins(r *Registry) {
	r.Register(PluginGenericSchema, NewGenericSchema())
	r.Register(PluginPayroll, PluginFunc(validatePayroll))
}

type schemaRules struct {
	Required []string          `json:"required"`
	Fields   map[string]string `json:"fields"`
}

// GenericSchema validates an extracted payload against a declarative rule
// set: a list of required keys plus per-field validator tags (e.g. "email",
// "gte=0", "min=1") evaluated by go-playground/validator.
type GenericSchema struct {
	validate *validator.Validate
}

// NewGenericSchema creates the generic schema plugin.
func NewGenericSchema() *GenericSchema {
	return &GenericSchema{
		validate: validator.New(),
	}
}

// Validate implements the Plugin interface.
func (g *GenericSchema) Validate(
	ctx context.Context,
	data map[string]any,
	rules json.RawMessage,
) (*Result, error) {
	var parsed schemaRules
	if len(rules) > 0 {
		if err := json.Unmarshal(rules, &parsed); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
		}
	}

	var errs []FieldError

	for _, field := range parsed.Required {
		if v, ok := data[field]; !ok || v == nil || v == "" {
			errs = append(errs, FieldError{
				Field:   field,
				Rule:    "required",
				Message: fmt.Sprintf("%s is required", field),
			})
		}
	}

	for field, tag := range parsed.Fields {
		value, ok := data[field]
		if !ok {
			continue
		}

		if err := g.validate.VarCtx(ctx, value, tag); err != nil {
			errs = append(errs, FieldError{
				Field:   field,
				Rule:    tag,
				Message: fmt.Sprintf("%s failed rule %q", field, tag),
			})
		}
	}

	if len(errs) > 0 {
		return rejected(errs), nil
	}
	return success(), nil
}

// validatePayroll applies payroll-specific business rules to an extracted
// payload: amounts must be non-negative, net pay cannot exceed gross pay,
// and the pay period must be present.
func validatePayroll(
	ctx context.Context,
	data map[string]any,
	rules json.RawMessage,
) (*Result, error) {
	var errs []FieldError

	gross, grossOK := asNumber(data["gross_pay"])
	net, netOK := asNumber(data["net_pay"])

	if !grossOK {
		errs = append(errs, FieldError{
			Field:   "gross_pay",
			Rule:    "number",
			Message: "gross_pay must be a number",
		})
	} else if gross < 0 {
		errs = append(errs, FieldError{
			Field:   "gross_pay",
			Rule:    "gte=0",
			Message: "gross_pay must not be negative",
		})
	}

	if !netOK {
		errs = append(errs, FieldError{
			Field:   "net_pay",
			Rule:    "number",
			Message: "net_pay must be a number",
		})
	} else if net < 0 {
		errs = append(errs, FieldError{
			Field:   "net_pay",
			Rule:    "gte=0",
			Message: "net_pay must not be negative",
		})
	}

	if grossOK && netOK && net > gross {
		errs = append(errs, FieldError{
			Field:   "net_pay",
			Rule:    "lte=gross_pay",
			Message: "net_pay cannot exceed gross_pay",
		})
	}

	if period, ok := data["pay_period"].(string); !ok || period == "" {
		errs = append(errs, FieldError{
			Field:   "pay_period",
			Rule:    "required",
			Message: "pay_period is required",
		})
	}

	if len(errs) > 0 {
		return rejected(errs), nil
	}
	return success(), nil
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
