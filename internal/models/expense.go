package models

import "time"

// Gider kategorileri sabit bir kümedir; serbest metin kabul edilmez.
var ExpenseCategories = []string{
	"Malzeme",
	"Ekipman",
	"Bakım-Onarım",
	"Kira",
	"Elektrik",
	"Su",
	"İnternet",
	"Telefon",
	"Kargo",
	"Kırtasiye",
	"Temizlik",
	"Diğer",
}

func IsValidExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Expense struct {
	ID            uint      `gorm:"primaryKey"`
	Date          time.Time `gorm:"index;not null"`
	Category      string    `gorm:"size:50;index;not null"`
	Description   string    `gorm:"size:255;not null"`
	Amount        float64   `gorm:"not null"`
	Supplier      string    `gorm:"size:150"`
	InvoiceNumber string    `gorm:"size:50"`
	Notes         string    `gorm:"size:500"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
