package processtypes

import (
	"net/url"
	"regexp"
	"strconv"

	"github.com/steward-io/steward/pkg/query"
	"github.com/steward-io/steward/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "process_types", "pt").
	Project("id", "ID").
	Project("name", "Name").
	Project("active", "Active").
	Project("default_version", "DefaultVersion").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "ID",
}

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateID checks that a process type identifier is a well-formed slug.
func ValidateID(id string) error {
	if !slugPattern.MatchString(id) {
		return ErrInvalidID
	}
	return nil
}

// Filters contains optional filtering criteria for process type queries.
type Filters struct {
	Active *bool   `json:"active,omitempty"`
	Name   *string `json:"name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Active", f.Active).
		WhereContains("Name", f.Name)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if a := values.Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Active = &v
		}
	}
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	return f
}

func scanProcessType(s repository.Scanner) (ProcessType, error) {
	var pt ProcessType
	err := s.Scan(
		&pt.ID,
		&pt.Name,
		&pt.Active,
		&pt.DefaultVersion,
		&pt.CreatedAt,
		&pt.UpdatedAt,
	)
	return pt, err
}
