package models

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleTechnician UserRole = "technician"
	RoleAccountant UserRole = "accountant"
)

type User struct {
	ID            uint     `gorm:"primaryKey"`
	Username      string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash  string   `gorm:"size:255;not null"`
	Name          string   `gorm:"size:150;not null"`
	Email         string   `gorm:"size:100"`
	Phone         string   `gorm:"size:30"`
	Role          UserRole `gorm:"size:20;not null"`
	CanViewPrices bool     `gorm:"default:false"` // fiyat alanlarını görme yetkisi
	IsActive      bool     `gorm:"default:true"`
	Photo         string   `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
