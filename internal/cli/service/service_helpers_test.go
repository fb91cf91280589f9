package service

import (
	"runtime"
	"testing"

	"github.com/azamatkg/subi-sub002/internal/cli/auth"
)

// setTempEnv изолирует конфиг-каталог и каталог кеша для теста.
func setTempEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	t.Setenv("CLIENT_DB_PATH", t.TempDir())
}

// seedSession записывает снимок сессии, как будто пользователь уже вошёл.
func seedSession(t *testing.T, st auth.FSStore, login string) {
	t.Helper()
	if err := st.SaveSession(auth.Session{Login: login, FullName: "Test User", Role: "ADMIN"}); err != nil {
		t.Fatalf("save session: %v", err)
	}
}
