package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/azamatkg/subi-sub002/internal/cli/api"
)

// Имена файлов под конфиг-каталогом пользователя. Три значения сессии:
// access-токен, refresh-токен и снимок пользователя. Очищаются вместе.
const (
	accessTokenFile  = "access_token"
	refreshTokenFile = "refresh_token"
	sessionFile      = "session.json"
)

// Session — локальный снимок текущего пользователя консоли.
type Session struct {
	Login    string `json:"login"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// FSStore — файловое хранилище учётных данных CLI.
// Отсутствующие или повреждённые файлы трактуются как «не залогинен».
type FSStore struct{}

var _ api.CredentialStore = FSStore{}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "subi")
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

func filePath(name string) (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// readTrimmed читает файл и обрезает завершающие переводы строки/пробелы.
// Отсутствующий файл — пустая строка без ошибки.
func readTrimmed(name string) (string, error) {
	p, err := filePath(name)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	for len(b) > 0 {
		c := b[len(b)-1]
		if c == '\n' || c == '\r' || c == ' ' || c == '\t' {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	return string(b), nil
}

func writeFile(name, value string) error {
	p, err := filePath(name)
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(value), 0o600)
}

func removeFile(name string) error {
	p, err := filePath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// AccessToken возвращает сохранённый access-токен ("" если не сохранён).
func (FSStore) AccessToken() (string, error) {
	return readTrimmed(accessTokenFile)
}

// RefreshToken возвращает сохранённый refresh-токен ("" если не сохранён).
func (FSStore) RefreshToken() (string, error) {
	return readTrimmed(refreshTokenFile)
}

// SaveTokens сохраняет пару токенов.
func (FSStore) SaveTokens(pair api.TokenPair) error {
	if err := writeFile(accessTokenFile, pair.AccessToken); err != nil {
		return err
	}
	return writeFile(refreshTokenFile, pair.RefreshToken)
}

// SaveSession сохраняет снимок текущего пользователя.
func (FSStore) SaveSession(s Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return writeFile(sessionFile, string(b))
}

// Session возвращает снимок текущего пользователя.
// (nil, nil) если снимок отсутствует или повреждён — «не залогинен».
func (FSStore) Session() (*Session, error) {
	raw, err := readTrimmed(sessionFile)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, nil
	}
	if s.Login == "" {
		return nil, nil
	}
	return &s, nil
}

// Clear удаляет все три сохранённых значения.
func (FSStore) Clear() error {
	var firstErr error
	for _, name := range []string{accessTokenFile, refreshTokenFile, sessionFile} {
		if err := removeFile(name); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
