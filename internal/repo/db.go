package repo

import (
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/azamatkg/subi-sub002/internal/model"
)

// InitDB открывает соединение с БД по DSN и выполняет автомиграции моделей.
// postgres:// (или postgresql://) — Postgres; любой другой DSN трактуется
// как путь к файлу SQLite (пустой — in-memory, для локальной разработки).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		dial = postgres.Open(dsn)
	case dsn == "":
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: "file::memory:?cache=shared"}
	default:
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.User{}, &model.ReferenceItem{}); err != nil {
		return nil, err
	}
	return db, nil
}
