package query_test

import (
	"reflect"
	"testing"

	"github.com/steward-io/steward/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "processes", "p").
		Project("id", "ID").
		Project("tenant_id", "TenantID").
		Project("status", "Status").
		Project("created_at", "CreatedAt")
}

func ptr(s string) *string {
	return &s
}

func TestBuild(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.Build()

	want := "SELECT p.id, p.tenant_id, p.status, p.created_at FROM public.processes p"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuildWithDefaultSort(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	sql, _ := b.Build()

	want := "SELECT p.id, p.tenant_id, p.status, p.created_at FROM public.processes p ORDER BY p.created_at DESC"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
}

func TestBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereEquals("Status", "completed")
	sql, args := b.BuildCount()

	want := "SELECT COUNT(*) FROM public.processes p WHERE p.status = $1"
	if sql != want {
		t.Errorf("BuildCount() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"completed"}) {
		t.Errorf("args = %v, want [completed]", args)
	}
}

func TestBuildPage(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	sql, _ := b.BuildPage(3, 25)

	want := "SELECT p.id, p.tenant_id, p.status, p.created_at FROM public.processes p ORDER BY p.created_at DESC LIMIT 25 OFFSET 50"
	if sql != want {
		t.Errorf("BuildPage() = %q, want %q", sql, want)
	}
}

func TestBuildSingle(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.BuildSingle("ID", "abc")

	want := "SELECT p.id, p.tenant_id, p.status, p.created_at FROM public.processes p WHERE p.id = $1"
	if sql != want {
		t.Errorf("BuildSingle() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"abc"}) {
		t.Errorf("args = %v, want [abc]", args)
	}
}

// BuildSingleOrNull must keep the ordering so a descending version sort
// resolves to the highest matching row.
func TestBuildSingleOrNull(t *testing.T) {
	projection := query.NewProjectionMap("public", "configurations", "c").
		Project("id", "ID").
		Project("tenant_id", "TenantID").
		Project("version", "Version")

	b := query.NewBuilder(projection).
		WhereEquals("TenantID", "t-1").
		OrderByFields([]query.SortField{{Field: "Version", Descending: true}})
	sql, args := b.BuildSingleOrNull()

	want := "SELECT c.id, c.tenant_id, c.version FROM public.configurations c WHERE c.tenant_id = $1 ORDER BY c.version DESC LIMIT 1"
	if sql != want {
		t.Errorf("BuildSingleOrNull() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"t-1"}) {
		t.Errorf("args = %v, want [t-1]", args)
	}
}

func TestWhereEqualsSkipsNil(t *testing.T) {
	var status *string
	b := query.NewBuilder(testProjection()).
		WhereEquals("Status", status)
	sql, args := b.Build()

	if sql != "SELECT p.id, p.tenant_id, p.status, p.created_at FROM public.processes p" {
		t.Errorf("Build() = %q, want no WHERE clause", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestWhereContains(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereContains("Status", ptr("pend"))
	sql, args := b.Build()

	want := "SELECT p.id, p.tenant_id, p.status, p.created_at FROM public.processes p WHERE p.status ILIKE $1"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"%pend%"}) {
		t.Errorf("args = %v, want [%%pend%%]", args)
	}
}

func TestWhereIn(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereIn("Status", []any{"pending", "ingested", "classifying"})
	sql, args := b.Build()

	want := "SELECT p.id, p.tenant_id, p.status, p.created_at FROM public.processes p WHERE p.status IN ($1, $2, $3)"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if len(args) != 3 {
		t.Errorf("args = %v, want 3 values", args)
	}
}

func TestWhereNullable(t *testing.T) {
	t.Run("nil value", func(t *testing.T) {
		b := query.NewBuilder(testProjection()).
			WhereNullable("TenantID", nil)
		sql, args := b.Build()

		want := "SELECT p.id, p.tenant_id, p.status, p.created_at FROM public.processes p WHERE p.tenant_id IS NULL"
		if sql != want {
			t.Errorf("Build() = %q, want %q", sql, want)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("non-nil value", func(t *testing.T) {
		b := query.NewBuilder(testProjection()).
			WhereNullable("TenantID", "t-1")
		sql, args := b.Build()

		want := "SELECT p.id, p.tenant_id, p.status, p.created_at FROM public.processes p WHERE p.tenant_id = $1"
		if sql != want {
			t.Errorf("Build() = %q, want %q", sql, want)
		}
		if !reflect.DeepEqual(args, []any{"t-1"}) {
			t.Errorf("args = %v, want [t-1]", args)
		}
	})
}

func TestWhereSearch(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereSearch(ptr("acme"), "Status", "TenantID")
	sql, args := b.Build()

	want := "SELECT p.id, p.tenant_id, p.status, p.created_at FROM public.processes p WHERE (p.status ILIKE $1 OR p.tenant_id ILIKE $2)"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"%acme%", "%acme%"}) {
		t.Errorf("args = %v, want two search patterns", args)
	}
}

func TestParameterNumberingAcrossConditions(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereEquals("TenantID", "t-1").
		WhereEquals("Status", "completed")
	sql, args := b.Build()

	want := "SELECT p.id, p.tenant_id, p.status, p.created_at FROM public.processes p WHERE p.tenant_id = $1 AND p.status = $2"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"t-1", "completed"}) {
		t.Errorf("args = %v", args)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{
			"single ascending",
			"CreatedAt",
			[]query.SortField{{Field: "CreatedAt"}},
		},
		{
			"single descending",
			"-CreatedAt",
			[]query.SortField{{Field: "CreatedAt", Descending: true}},
		},
		{
			"mixed with whitespace",
			"Status, -CreatedAt",
			[]query.SortField{{Field: "Status"}, {Field: "CreatedAt", Descending: true}},
		},
		{
			"blank segments dropped",
			"Status,,",
			[]query.SortField{{Field: "Status"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
