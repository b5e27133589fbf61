package prompts

import (
	"net/url"
	"strconv"

	"github.com/steward-io/steward/pkg/query"
	"github.com/steward-io/steward/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("process_type_id", "ProcessTypeID").
	Project("version", "Version").
	Project("stage", "Stage").
	Project("template", "Template").
	Project("model", "Model").
	Project("temperature", "Temperature").
	Project("token_budget", "TokenBudget").
	Project("active", "Active").
	Project("created_at", "CreatedAt")

var defaultSort = []query.SortField{
	{Field: "ProcessTypeID"},
	{Field: "Version", Descending: true},
	{Field: "Stage"},
}

// Filters contains optional filtering criteria for prompt queries.
type Filters struct {
	ProcessTypeID *string `json:"process_type_id,omitempty"`
	Version       *int    `json:"version,omitempty"`
	Stage         *string `json:"stage,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ProcessTypeID", f.ProcessTypeID).
		WhereEquals("Version", f.Version).
		WhereEquals("Stage", f.Stage).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if pt := values.Get("process_type_id"); pt != "" {
		f.ProcessTypeID = &pt
	}
	if v := values.Get("version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Version = &n
		}
	}
	if s := values.Get("stage"); s != "" {
		if stage, err := ParseStage(s); err == nil {
			v := string(stage)
			f.Stage = &v
		}
	}
	if a := values.Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Active = &v
		}
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.ProcessTypeID,
		&p.Version,
		&p.Stage,
		&p.Template,
		&p.Model,
		&p.Temperature,
		&p.TokenBudget,
		&p.Active,
		&p.CreatedAt,
	)
	return p, err
}
