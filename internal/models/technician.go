package models

import "time"

type Technician struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:150;not null"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	MonthlyQuota int    `gorm:"default:0"` // aylık hedef iş sayısı
	CompletedJobs int   `gorm:"default:0"` // bilgilendirme amaçlı sayaç
	Salary       float64 `gorm:"default:0"` // sabit aylık maaş
	IsActive     bool   `gorm:"default:true"`
	Phone        string `gorm:"size:30"`
	Email        string `gorm:"size:100"`
	Photo        string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
