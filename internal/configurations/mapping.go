package configurations

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/query"
	"github.com/steward-io/steward/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "configurations", "c").
	Project("id", "ID").
	Project("tenant_id", "TenantID").
	Project("process_type_id", "ProcessTypeID").
	Project("version", "Version").
	Project("input_schema", "InputSchema").
	Project("output_schema", "OutputSchema").
	Project("validation_rules", "ValidationRules").
	Project("plugin_name", "PluginName").
	Project("enable_fraud_check", "EnableFraudCheck").
	Project("enable_hitl", "EnableHITL").
	Project("confidence_threshold", "ConfidenceThreshold").
	Project("active", "Active").
	Project("created_at", "CreatedAt")

var defaultSort = []query.SortField{
	{Field: "ProcessTypeID"},
	{Field: "Version", Descending: true},
}

// Filters contains optional filtering criteria for configuration queries.
type Filters struct {
	TenantID      *uuid.UUID `json:"tenant_id,omitempty"`
	ProcessTypeID *string    `json:"process_type_id,omitempty"`
	PluginName    *string    `json:"plugin_name,omitempty"`
	Active        *bool      `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("TenantID", f.TenantID).
		WhereEquals("ProcessTypeID", f.ProcessTypeID).
		WhereEquals("PluginName", f.PluginName).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("tenant_id"); t != "" {
		if id, err := uuid.Parse(t); err == nil {
			f.TenantID = &id
		}
	}
	if pt := values.Get("process_type_id"); pt != "" {
		f.ProcessTypeID = &pt
	}
	if p := values.Get("plugin_name"); p != "" {
		f.PluginName = &p
	}
	if a := values.Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Active = &v
		}
	}

	return f
}

func scanConfiguration(s repository.Scanner) (Configuration, error) {
	var c Configuration
	err := s.Scan(
		&c.ID,
		&c.TenantID,
		&c.ProcessTypeID,
		&c.Version,
		&c.InputSchema,
		&c.OutputSchema,
		&c.ValidationRules,
		&c.PluginName,
		&c.EnableFraudCheck,
		&c.EnableHITL,
		&c.ConfidenceThreshold,
		&c.Active,
		&c.CreatedAt,
	)
	return c, err
}
