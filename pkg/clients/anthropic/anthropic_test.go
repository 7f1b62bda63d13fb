package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestComplete(t *testing.T) {
	var got messageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "key" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"  Buy the duplex.  "}]}`))
	}))
	defer srv.Close()

	client := newClient("key", srv.URL)
	reply, err := client.Complete(context.Background(), "be brief", []Message{{Role: "user", Content: "what should I buy?"}})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if reply != "Buy the duplex." {
		t.Errorf("reply = %q", reply)
	}
	if got.System != "be brief" || len(got.Messages) != 1 || got.Model != model {
		t.Errorf("request = %+v", got)
	}
}

func TestCompleteErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newClient("key", srv.URL)
	if _, err := client.Complete(context.Background(), "", []Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Error("expected error for 503")
	}
	if _, err := client.Complete(context.Background(), "", []Message{{Role: "assistant", Content: "hi"}}); err == nil {
		t.Error("expected error when the last turn is not the user's")
	}
}
