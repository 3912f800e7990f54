package commands

import (
	"InvKeeper/internal/config"
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

// testConfig направляет клиента на тестовый сервер, а файл сессии - во временный каталог.
func testConfig(t *testing.T, ts *httptest.Server) *config.Config {
	t.Helper()
	return &config.Config{ServerURL: ts.URL, TokenFile: filepath.Join(t.TempDir(), "session")}
}

// captureOut перенаправляет вывод команд в буфер на время теста.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}
