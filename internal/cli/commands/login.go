package commands

import (
	"InvKeeper/internal/cli/api"
	"InvKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

type LoginRequest struct {
	Pass    string `json:"pass"`
	IDToken string `json:"id_token"`
	UserID  string `json:"user_id"`
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login with badge token and passcode, store session" }
func (loginCmd) Usage() string       { return "login <user_id> <badge_token|@file> <passcode>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	token, err := readBadge(args[1])
	if err != nil {
		return err
	}
	req := LoginRequest{UserID: args[0], IDToken: token, Pass: args[2]}
	resp, err := newClient(cfg).Do(ctx, http.MethodPost, "/login", req)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		if err := authStore(cfg).SaveUserID(req.UserID); err != nil {
			return fmt.Errorf("saving user id: %w", err)
		}
		fmt.Fprintln(Out, "Logged in successfully")
		return nil
	case http.StatusUnauthorized:
		return errors.New("invalid badge or passcode")
	case http.StatusNotFound:
		return errors.New("unknown user")
	default:
		return api.StatusError(resp)
	}
}

// readBadge принимает токен как есть или читает его из файла, если аргумент начинается с '@'.
func readBadge(arg string) (string, error) {
	if !strings.HasPrefix(arg, "@") {
		return arg, nil
	}
	b, err := os.ReadFile(strings.TrimPrefix(arg, "@"))
	if err != nil {
		return "", fmt.Errorf("read badge file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored session" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	resp, err := newClient(cfg).Do(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.StatusError(resp)
	}
	// сервер мог не прислать cookie, удаляем локально в любом случае
	if err := authStore(cfg).Clear(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show the user of the current session" }
func (whoamiCmd) Usage() string       { return "whoami" }

func (whoamiCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	resp, err := newClient(cfg).Do(ctx, http.MethodGet, "/me", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return errors.New("not logged in or session expired")
	}
	if resp.StatusCode != http.StatusOK {
		return api.StatusError(resp)
	}
	var me struct {
		UserID string `json:"user_id"`
	}
	if err := resp.Decode(&me); err != nil {
		return err
	}
	fmt.Fprintf(Out, "user_id=%s\n", me.UserID)
	return nil
}

type qrCmd struct{}

func (qrCmd) Name() string        { return "qr" }
func (qrCmd) Description() string { return "Print the badge token of a user (defaults to the last login)" }
func (qrCmd) Usage() string       { return "qr [user_id]" }

func (qrCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var userID string
	switch len(args) {
	case 0:
		id, err := authStore(cfg).LoadUserID()
		if err != nil {
			return ErrUsage
		}
		userID = id
	case 1:
		userID = args[0]
	default:
		return ErrUsage
	}
	resp, err := newClient(cfg).Do(ctx, http.MethodGet, "/user-qr/"+url.PathEscape(userID), nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.StatusError(resp)
	}
	fmt.Fprintln(Out, resp.Text())
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(whoamiCmd{})
	RegisterCmd(qrCmd{})
}
