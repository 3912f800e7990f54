package commands

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestDispatch_HelpUnknownAndUsage(t *testing.T) {
	out := captureOut(t)
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	cfg := testConfig(t, ts)
	ctx := context.Background()

	if code := Dispatch(ctx, cfg, nil); code != 2 {
		t.Fatalf("no args: want 2, got %d", code)
	}
	if !strings.Contains(out.String(), "InvKeeper CLI") {
		t.Fatalf("global usage expected, got %q", out.String())
	}

	out.Reset()
	if code := Dispatch(ctx, cfg, []string{"help", "item-move"}); code != 0 {
		t.Fatalf("help item-move: want 0, got %d", code)
	}
	if !strings.Contains(out.String(), "item-move <item_id> <location_id>") {
		t.Fatalf("command usage expected, got %q", out.String())
	}

	out.Reset()
	if code := Dispatch(ctx, cfg, []string{"nope"}); code != 2 {
		t.Fatalf("unknown: want 2, got %d", code)
	}

	out.Reset()
	if code := Dispatch(ctx, cfg, []string{"item-move", "only-one"}); code != 2 {
		t.Fatalf("usage: want 2, got %d", code)
	}
	if !strings.Contains(out.String(), "Usage: item-move") {
		t.Fatalf("usage line expected, got %q", out.String())
	}

	out.Reset()
	if code := Dispatch(ctx, cfg, []string{"LOGOUT"}); code != 0 {
		t.Fatalf("logout: want 0, got %d (%s)", code, out.String())
	}
}
