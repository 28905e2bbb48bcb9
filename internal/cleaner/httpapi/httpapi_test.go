package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"textify/internal/httpx"
	"textify/internal/revision"
)

func TestCleanSendsRequestShape(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(revision.Response{CleanedText: strings.ToUpper(got["text"].(string))})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, srv.Client(), nil)
	out, err := c.Clean(context.Background(), revision.Request{Text: "hi", RemoveEmojis: true})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if out != "HI" {
		t.Fatalf("got %q", out)
	}
	// unset optional flags are omitted
	want := map[string]any{"text": "hi", "removeEmojis": true}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", d)
	}
}

func TestCleanWrapsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0, nil, nil).Clean(context.Background(), revision.Request{Text: "x"})
	var se *httpx.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Fatalf("expected wrapped StatusError, got %v", err)
	}
}
