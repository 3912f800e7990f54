package commands

import (
	"InvKeeper/internal/session"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogin_Run_SuccessAndErrors(t *testing.T) {
	out := captureOut(t)
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad json: %v", err)
		}
		switch {
		case req.UserID == "missing":
			w.WriteHeader(http.StatusNotFound)
		case req.Pass != "123456" || req.IDToken != "badge-tok":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "sess-1"})
			w.WriteHeader(http.StatusOK)
		}
	})
	cfg := testConfig(t, ts)
	cmd := loginCmd{}

	if err := cmd.Run(context.Background(), cfg, []string{"u-1", "badge-tok", "123456"}); err != nil {
		t.Fatalf("login should succeed: %v", err)
	}
	if !strings.Contains(out.String(), "Logged in") {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if tok, err := authStore(cfg).Load(); err != nil || tok != "sess-1" {
		t.Fatalf("session not saved: %q %v", tok, err)
	}
	if id, err := authStore(cfg).LoadUserID(); err != nil || id != "u-1" {
		t.Fatalf("user id not saved: %q %v", id, err)
	}

	// токен из файла
	badgeFile := filepath.Join(t.TempDir(), "badge.txt")
	if err := os.WriteFile(badgeFile, []byte("badge-tok\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(context.Background(), cfg, []string{"u-1", "@" + badgeFile, "123456"}); err != nil {
		t.Fatalf("login with @file should succeed: %v", err)
	}

	if err := cmd.Run(context.Background(), cfg, []string{"u-1", "badge-tok", "000000"}); err == nil {
		t.Fatalf("expected error for 401")
	}
	if err := cmd.Run(context.Background(), cfg, []string{"missing", "badge-tok", "123456"}); err == nil {
		t.Fatalf("expected error for 404")
	}
	if err := cmd.Run(context.Background(), cfg, []string{"only-id"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestWhoamiQRLogout(t *testing.T) {
	out := captureOut(t)
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(session.CookieName)
		authed := err == nil && c.Value == "sess-1"
		switch r.URL.Path {
		case "/me":
			if !authed {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"user_id":"u-1"}`))
		case "/user-qr/u-1":
			_, _ = w.Write([]byte("badge-tok"))
		case "/logout":
			http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "", MaxAge: -1})
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	cfg := testConfig(t, ts)

	if err := (whoamiCmd{}).Run(context.Background(), cfg, nil); err == nil {
		t.Fatalf("whoami without session must fail")
	}

	store := authStore(cfg)
	if err := store.Save("sess-1"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveUserID("u-1"); err != nil {
		t.Fatal(err)
	}
	if err := (whoamiCmd{}).Run(context.Background(), cfg, nil); err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if err := (qrCmd{}).Run(context.Background(), cfg, nil); err != nil {
		t.Fatalf("qr: %v", err)
	}
	if err := (qrCmd{}).Run(context.Background(), cfg, []string{"nobody"}); err == nil {
		t.Fatalf("qr for unknown user must fail")
	}
	got := out.String()
	if !strings.Contains(got, "user_id=u-1") || !strings.Contains(got, "badge-tok") {
		t.Fatalf("unexpected output: %q", got)
	}

	if err := (logoutCmd{}).Run(context.Background(), cfg, nil); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := store.Load(); err == nil {
		t.Fatalf("session must be removed after logout")
	}
}
