// Package api - HTTP-клиент CLI к серверу InvKeeper.
package api

import (
	"InvKeeper/internal/cli/repo"
	"InvKeeper/internal/session"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client отправляет запросы с cookie сессии и сохраняет продлённую капсулу из ответа.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  repo.TokenStore
}

// NewClient создаёт клиента. tokens может быть nil: тогда сессия не отправляется и не сохраняется.
func NewClient(baseURL string, tokens repo.TokenStore) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Tokens:  tokens,
	}
}

// Response - статус и тело ответа сервера.
type Response struct {
	StatusCode int
	Body       []byte
}

// Text возвращает тело без завершающих пробелов.
func (r *Response) Text() string { return strings.TrimSpace(string(r.Body)) }

// Decode разбирает JSON-тело в dst.
func (r *Response) Decode(dst any) error {
	if err := json.Unmarshal(r.Body, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Do выполняет запрос. payload == nil означает запрос без тела.
func (c *Client) Do(ctx context.Context, method, path string, payload any) (*Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Tokens != nil {
		if tok, err := c.Tokens.Load(); err == nil && tok != "" {
			req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tok})
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if err := c.persistSession(resp); err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// persistSession сохраняет капсулу из Set-Cookie: сервер продлевает её на каждом запросе.
// Cookie с пустым значением означает выход.
func (c *Client) persistSession(resp *http.Response) error {
	if c.Tokens == nil {
		return nil
	}
	var last *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == session.CookieName {
			last = ck
		}
	}
	if last == nil {
		return nil
	}
	if last.Value == "" || last.MaxAge < 0 {
		return c.Tokens.Clear()
	}
	if err := c.Tokens.Save(last.Value); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// StatusError превращает неуспешный ответ в ошибку с текстом сервера.
func StatusError(resp *Response) error {
	msg := resp.Text()
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("server responded %d: %s", resp.StatusCode, msg)
}
