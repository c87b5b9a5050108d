package models

import "time"

type Doctor struct {
	ID       uint `gorm:"primaryKey"`
	ClinicID uint `gorm:"index;not null"`
	Clinic   Clinic
	Name     string `gorm:"size:150;not null"`
	Phone    string `gorm:"size:30"`
	Email    string `gorm:"size:100"`
	Photo    string `gorm:"size:255"`

	// Bilgilendirme amaçlı denormalize alanlar, bkz. Clinic.
	CurrentBalance float64 `gorm:"default:0"`
	TotalDebt      float64 `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
