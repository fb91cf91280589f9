package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// CachedItem — строка локального кеша справочника.
type CachedItem struct {
	ID     string
	Code   string
	NameRu string
	NameKy string
	NameEn string
	Status string
}

// Store — локальный SQLite-кеш справочников для офлайн-просмотра.
// Обновляется после каждого успешного списка с сервера.
type Store struct {
	db *sql.DB
}

// OpenForUser открывает (и создаёт при необходимости) файл кеша, сегрегированный
// по логину. Базовый каталог переопределяется переменной CLIENT_DB_PATH.
func OpenForUser(login string) (*Store, string, error) {
	if login == "" {
		return nil, "", errors.New("empty login for reference cache")
	}
	base := os.Getenv("CLIENT_DB_PATH")
	if base == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return nil, "", err
		}
		base = filepath.Join(cfgDir, "subi", "users")
	}
	dir := filepath.Join(base, login)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, "refcache.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", err
	}
	s := &Store{db: db}
	return s, dbPath, nil
}

// Close закрывает соединение с БД.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц/индексов.
func (s *Store) Migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS ref_items (
  kind TEXT NOT NULL,
  id TEXT NOT NULL,
  code TEXT NOT NULL,
  name_ru TEXT NOT NULL,
  name_ky TEXT NOT NULL DEFAULT '',
  name_en TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL,
  PRIMARY KEY (kind, id)
);
CREATE INDEX IF NOT EXISTS idx_ref_items_kind_code ON ref_items(kind, code);
CREATE TABLE IF NOT EXISTS ref_meta (
  kind TEXT PRIMARY KEY,
  fetched_at INTEGER NOT NULL
);
`
	_, err := s.db.Exec(ddl)
	return err
}

// ReplaceKind атомарно заменяет кеш справочника kind свежим списком с сервера.
func (s *Store) ReplaceKind(kind string, items []CachedItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM ref_items WHERE kind = ?`, kind); err != nil {
		return err
	}
	for _, it := range items {
		_, err := tx.Exec(
			`INSERT INTO ref_items(kind, id, code, name_ru, name_ky, name_en, status) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			kind, it.ID, it.Code, it.NameRu, it.NameKy, it.NameEn, it.Status,
		)
		if err != nil {
			return err
		}
	}
	now := time.Now().Unix()
	_, err = tx.Exec(
		`INSERT INTO ref_meta(kind, fetched_at) VALUES(?, ?) ON CONFLICT(kind) DO UPDATE SET fetched_at = excluded.fetched_at`,
		kind, now,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// ListKind возвращает кешированные записи справочника kind и время последнего
// обновления. Пустой кеш — пустой список и нулевое время, без ошибки.
func (s *Store) ListKind(kind string) ([]CachedItem, time.Time, error) {
	rows, err := s.db.Query(
		`SELECT id, code, name_ru, name_ky, name_en, status FROM ref_items WHERE kind = ? ORDER BY code`, kind)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	var items []CachedItem
	for rows.Next() {
		var it CachedItem
		if err := rows.Scan(&it.ID, &it.Code, &it.NameRu, &it.NameKy, &it.NameEn, &it.Status); err != nil {
			return nil, time.Time{}, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}

	var fetchedAt int64
	err = s.db.QueryRow(`SELECT fetched_at FROM ref_meta WHERE kind = ?`, kind).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return items, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	return items, time.Unix(fetchedAt, 0), nil
}
