package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/steward-io/steward/pkg/routes"
)

func handlerReturning(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/processes",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: handlerReturning(http.StatusOK)},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: handlerReturning(http.StatusOK)},
			{Method: http.MethodPost, Pattern: "", Handler: handlerReturning(http.StatusCreated)},
		},
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"list", http.MethodGet, "/processes", http.StatusOK},
		{"find", http.MethodGet, "/processes/abc", http.StatusOK},
		{"create", http.MethodPost, "/processes", http.StatusCreated},
		{"unknown path", http.MethodGet, "/missing", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/processes", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}

// Read and write surfaces for the same resource register as separate groups
// sharing a prefix; distinct method patterns must not collide.
func TestRegisterSharedPrefix(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux,
		routes.Group{
			Prefix: "/processes",
			Routes: []routes.Route{
				{Method: http.MethodGet, Pattern: "", Handler: handlerReturning(http.StatusOK)},
			},
		},
		routes.Group{
			Prefix: "/processes",
			Routes: []routes.Route{
				{Method: http.MethodPost, Pattern: "/{id}/cancel", Handler: handlerReturning(http.StatusAccepted)},
			},
		},
	)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/processes", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /processes = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/processes/abc/cancel", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("POST /processes/abc/cancel = %d, want %d", rec.Code, http.StatusAccepted)
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/audit",
		Children: []routes.Group{
			{
				Prefix: "/process",
				Routes: []routes.Route{
					{Method: http.MethodGet, Pattern: "/{id}", Handler: handlerReturning(http.StatusOK)},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/process/abc", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /audit/process/abc = %d, want %d", rec.Code, http.StatusOK)
	}
}
