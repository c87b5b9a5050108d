package models

import "time"

type Clinic struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:150;not null"`
	Address string `gorm:"size:255"`
	Phone   string `gorm:"size:30"`
	Email   string `gorm:"size:100"`
	Logo    string `gorm:"size:255"`

	// Bilgilendirme amaçlı denormalize alanlar. Gerçek bakiye her zaman
	// teslim edilen siparişler ve ödemelerden yeniden hesaplanır.
	CurrentBalance float64 `gorm:"default:0"`
	TotalDebt      float64 `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
