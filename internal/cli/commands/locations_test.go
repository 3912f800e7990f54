package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestLocationCommands(t *testing.T) {
	out := captureOut(t)
	var created map[string]any
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/locations":
			_, _ = w.Write([]byte(`[{"id":"l-1","location_identifier":"Shelf-1","rbac_min_level":"User","location_type":"Shelf","max_capacity":40,"location_status":"Available"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/locations/create":
			_ = json.NewDecoder(r.Body).Decode(&created)
			_, _ = w.Write([]byte(`{"id":"l-2"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/locations/l-1":
			http.Error(w, "conflict: location still holds 1 item(s)", http.StatusConflict)
		case r.Method == http.MethodDelete && r.URL.Path == "/locations/l-2":
			w.WriteHeader(http.StatusOK)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	cfg := testConfig(t, ts)
	ctx := context.Background()

	if err := (locationsCmd{}).Run(ctx, cfg, nil); err != nil {
		t.Fatalf("locations: %v", err)
	}
	if !strings.Contains(out.String(), "Shelf-1") || !strings.Contains(out.String(), "capacity=40") {
		t.Fatalf("unexpected output: %q", out.String())
	}

	if err := (locationAddCmd{}).Run(ctx, cfg, []string{"Box-7", "Box", "Admin", "12"}); err != nil {
		t.Fatalf("location-add: %v", err)
	}
	if created["location_identifier"] != "Box-7" || created["rbac_min_level"] != "Admin" || created["max_capacity"] != float64(12) {
		t.Fatalf("unexpected payload: %#v", created)
	}
	if err := (locationAddCmd{}).Run(ctx, cfg, []string{"Box-8", "Box", "User", "70000"}); err != ErrUsage {
		t.Fatalf("capacity above uint16 must be a usage error, got %v", err)
	}

	err := (locationDeleteCmd{}).Run(ctx, cfg, []string{"l-1"})
	if err == nil || !strings.Contains(err.Error(), "409") {
		t.Fatalf("expected 409 error, got %v", err)
	}
	if err := (locationDeleteCmd{}).Run(ctx, cfg, []string{"l-2"}); err != nil {
		t.Fatalf("location-delete: %v", err)
	}
}
