package qstash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPublish(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		fmt.Fprint(w, `{"messageId":"msg_1"}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL, Token: "tok", Destination: "https://hooks.example.com/bookings"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	id, err := client.Publish(context.Background(), map[string]any{"confirmation_id": "TRV-ABC12345"})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if id != "msg_1" {
		t.Fatalf("Publish() id = %q, want msg_1", id)
	}
	if gotPath != "/v2/publish/https://hooks.example.com/bookings" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("unexpected auth header: %s", gotAuth)
	}
	if gotBody["confirmation_id"] != "TRV-ABC12345" {
		t.Fatalf("unexpected body: %#v", gotBody)
	}
}

func TestPublishHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL, Token: "tok", Destination: "https://hooks.example.com"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Publish(context.Background(), map[string]any{}); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{URL: "https://qstash.upstash.io", Destination: "d"}); err == nil {
		t.Fatal("expected missing token error")
	}
	if _, err := NewClient(Config{URL: "https://qstash.upstash.io", Token: "t"}); err == nil {
		t.Fatal("expected missing destination error")
	}
	if (Config{Token: "t"}).Enabled() {
		t.Fatal("config without destination must not be enabled")
	}
}
