package models

import "time"

type PaymentType string

const (
	PaymentTypePayment PaymentType = "payment"
	// Elle girilen borç düzeltmesi. Bakiye hesabında payment ile aynı şekilde
	// pozitif toplanır, negatife çevrilmez.
	PaymentTypeDebt PaymentType = "debt"
)

type Payment struct {
	ID       uint `gorm:"primaryKey"`
	DoctorID uint `gorm:"index;not null"`
	Doctor   Doctor
	OrderID  *uint `gorm:"index"`
	Order    *Order

	Amount        float64     `gorm:"not null"`
	Date          time.Time   `gorm:"index;not null"`
	Type          PaymentType `gorm:"size:20;not null"`
	Description   string      `gorm:"size:255"`
	InvoiceNumber string      `gorm:"size:50"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
