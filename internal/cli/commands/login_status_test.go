package commands

import (
	"context"
	"strings"
	"testing"
)

func TestLogin_SuccessAndStatus(t *testing.T) {
	withTempConfig(t)
	ts := newLoginServer(t)
	defer ts.Close()
	cfg := testCfg(ts.URL)

	out := withStdoutCapture(t, func() {
		if err := (loginCmd{}).Run(context.Background(), cfg, []string{"admin", "secret"}); err != nil {
			t.Fatalf("login: %v", err)
		}
	})
	if !strings.Contains(out, "Вход выполнен: admin") {
		t.Fatalf("уведомление о входе ожидалось, получено: %s", out)
	}

	// status работает по локальному снимку, сервер не нужен
	out = withStdoutCapture(t, func() {
		if err := (statusCmd{}).Run(context.Background(), cfg, nil); err != nil {
			t.Fatalf("status: %v", err)
		}
	})
	if !strings.Contains(out, "Пользователь: admin") || !strings.Contains(out, "Роль:         ADMIN") {
		t.Fatalf("неверный вывод status: %s", out)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	withTempConfig(t)
	ts := newLoginServer(t)
	defer ts.Close()

	err := (loginCmd{}).Run(context.Background(), testCfg(ts.URL), []string{"admin", "wrong"})
	if err == nil {
		t.Fatal("ожидалась ошибка при неверном пароле")
	}
}

func TestLogin_Usage(t *testing.T) {
	if err := (loginCmd{}).Run(context.Background(), testCfg(""), []string{"only-login"}); err != ErrUsage {
		t.Fatalf("ожидалась ErrUsage, получено %v", err)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	withTempConfig(t)
	ts := newLoginServer(t)
	defer ts.Close()
	cfg := testCfg(ts.URL)

	if err := (loginCmd{}).Run(context.Background(), cfg, []string{"admin", "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	out := withStdoutCapture(t, func() {
		if err := (logoutCmd{}).Run(context.Background(), cfg, nil); err != nil {
			t.Fatalf("logout: %v", err)
		}
	})
	if !strings.Contains(out, "Выход выполнен") {
		t.Fatalf("уведомление о выходе ожидалось: %s", out)
	}

	out = withStdoutCapture(t, func() {
		if err := (statusCmd{}).Run(context.Background(), cfg, nil); err != nil {
			t.Fatalf("status: %v", err)
		}
	})
	if !strings.Contains(out, "Не залогинен") {
		t.Fatalf("после logout статус должен быть пуст: %s", out)
	}
}

func TestStatus_Usage(t *testing.T) {
	if err := (statusCmd{}).Run(context.Background(), testCfg(""), []string{"extra"}); err != ErrUsage {
		t.Fatalf("ожидалась ErrUsage, получено %v", err)
	}
}
