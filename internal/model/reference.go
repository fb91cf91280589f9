package model

import "time"

// Виды справочников кредитного конвейера.
const (
	KindDocumentType     = "document-types"
	KindFloatingRateType = "floating-rate-types"
	KindRepaymentOrder   = "repayment-orders"
	KindCreditPurpose    = "credit-purposes"
	KindCurrency         = "currencies"
)

// Статусы записи справочника.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// ReferenceKinds — полный список видов справочников (порядок отображения в консоли).
var ReferenceKinds = []string{
	KindDocumentType,
	KindFloatingRateType,
	KindRepaymentOrder,
	KindCreditPurpose,
	KindCurrency,
}

// KnownKind сообщает, является ли kind одним из поддерживаемых справочников.
func KnownKind(kind string) bool {
	for _, k := range ReferenceKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ReferenceItem — серверная модель записи справочника.
// Все справочники консоли (виды документов, типы плавающих ставок, очерёдность
// погашения, цели кредита, валюты) хранятся в одной таблице с полем Kind.
type ReferenceItem struct {
	ID   string `gorm:"primaryKey;type:uuid"`
	Kind string `gorm:"not null;index:idx_ref_kind_code,unique,priority:1"`
	Code string `gorm:"not null;index:idx_ref_kind_code,unique,priority:2"`

	// Локализованные наименования (ru / ky / en)
	NameRu string `gorm:"not null"`
	NameKy string
	NameEn string

	Status string `gorm:"not null;default:ACTIVE"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
