package fs

import (
	"InvKeeper/internal/cli/repo"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// AuthFSStore - файловое хранилище капсулы сессии и id пользователя для CLI.
// Если TokenFile пуст, файлы лежат в пользовательском конфиг-каталоге.
type AuthFSStore struct {
	TokenFile string
}

var (
	_ repo.TokenStore       = AuthFSStore{}
	_ repo.UserContextStore = AuthFSStore{}
)

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "InvKeeper")
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

func (s AuthFSStore) tokenPath() (string, error) {
	if s.TokenFile != "" {
		if err := os.MkdirAll(filepath.Dir(s.TokenFile), 0o700); err != nil {
			return "", err
		}
		return s.TokenFile, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "auth_token"), nil
}

func (s AuthFSStore) userIDPath() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	return p + ".user", nil
}

// Save сохраняет капсулу сессии в файл.
func (s AuthFSStore) Save(token string) error {
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(token), 0o600)
}

// Load читает капсулу сессии из файла.
func (s AuthFSStore) Load() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	return readTrimmed(p, "empty token file")
}

// Clear удаляет сохранённую капсулу. Отсутствие файла ошибкой не считается.
func (s AuthFSStore) Clear() error {
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SaveUserID сохраняет id пользователя последнего входа.
func (s AuthFSStore) SaveUserID(userID string) error {
	if userID == "" {
		return errors.New("empty user id")
	}
	p, err := s.userIDPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(userID), 0o600)
}

// LoadUserID читает id пользователя последнего входа.
func (s AuthFSStore) LoadUserID() (string, error) {
	p, err := s.userIDPath()
	if err != nil {
		return "", err
	}
	return readTrimmed(p, "no stored user id")
}

func readTrimmed(path, emptyMsg string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	v := strings.TrimRight(string(b), " \t\r\n")
	if v == "" {
		return "", errors.New(emptyMsg)
	}
	return v, nil
}
