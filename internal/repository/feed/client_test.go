package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mamadbah2/realty/internal/config"
)

func TestListProperties(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"properties":[{"id":"a","price":250000},{"id":"b","price":310000}]}`))
	}))
	defer srv.Close()

	client := NewClient(config.FeedConfig{URL: srv.URL, Token: "secret"}, nil)
	got, err := client.ListProperties(context.Background())
	if err != nil {
		t.Fatalf("ListProperties returned error: %v", err)
	}
	if len(got) != 2 || got[1].ID != "b" || got[1].Price != 310000 {
		t.Errorf("ListProperties = %+v", got)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestListPropertiesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := NewClient(config.FeedConfig{URL: srv.URL}, nil).ListProperties(context.Background()); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
