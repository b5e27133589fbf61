package tenants

import (
	"net/url"

	"github.com/steward-io/steward/pkg/query"
	"github.com/steward-io/steward/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "tenants", "t").
	Project("id", "ID").
	Project("name", "Name").
	Project("status", "Status").
	Project("tier", "Tier").
	Project("token_balance", "TokenBalance").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for tenant queries.
// Nil fields are ignored. Status and Tier use exact matching;
// Name uses case-insensitive contains matching.
type Filters struct {
	Status *string `json:"status,omitempty"`
	Tier   *string `json:"tier,omitempty"`
	Name   *string `json:"name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("Tier", f.Tier).
		WhereContains("Name", f.Name)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if tier := values.Get("tier"); tier != "" {
		f.Tier = &tier
	}
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	return f
}

func scanTenant(s repository.Scanner) (Tenant, error) {
	var t Tenant
	err := s.Scan(
		&t.ID,
		&t.Name,
		&t.Status,
		&t.Tier,
		&t.TokenBalance,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}
