package models

import "time"

type ProsthesisType struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:150;not null"`
	BasePrice float64 `gorm:"not null"` // birim fiyat

	// Model ücreti: sadece fiziksel model teslim edilirse eklenen sabit ücret.
	ModelPrice *float64
	Category   string `gorm:"size:100"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
