package model

import "time"

// Роли пользователей консоли. Мутации справочников доступны только ADMIN.
const (
	RoleAdmin  = "ADMIN"
	RoleViewer = "VIEWER"
)

// User — серверная модель пользователя админ-консоли.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Login    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt-хеш
	FullName string
	Role     string `gorm:"not null;default:VIEWER"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
