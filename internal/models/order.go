package models

import "time"

type OrderStatus string

const (
	OrderStatusWaiting    OrderStatus = "waiting"
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// Order: bir hasta, bir protez tipi için tek iş kaydı. Siparişler hiçbir
// zaman silinmez; durum ilerledikçe yerinde güncellenir.
type Order struct {
	ID              uint   `gorm:"primaryKey"`
	Barcode         string `gorm:"size:30;uniqueIndex;not null"` // oluşturulunca değişmez
	PatientName     string `gorm:"size:150;not null"`
	DoctorID        uint   `gorm:"index;not null"`
	Doctor          Doctor
	ProsthesisTypeID uint `gorm:"index;not null"`
	ProsthesisType   ProsthesisType
	Status           OrderStatus `gorm:"size:20;index;not null"`
	TechnicianID     *uint       `gorm:"index"`
	Technician       *Technician

	ArrivalDate        time.Time `gorm:"index;not null"`
	DeliveryDate       time.Time `gorm:"index;not null"` // planlanan teslim tarihi
	CompletionDate     *time.Time
	ActualDeliveryDate *time.Time

	UnitCount  int     `gorm:"not null"` // sipariş edilen adet
	TotalPrice float64 `gorm:"not null"` // oluşturma anındaki teklif

	// Teslimde bir kez yazılan alanlar.
	FinalPrice     *float64
	DiscountAmount *float64
	HasModel       bool `gorm:"default:false"`

	Cost   *float64 // malzeme maliyeti
	IsPaid bool     `gorm:"default:false"`
	Notes  string   `gorm:"size:500"`

	IsDigitalMeasurement bool `gorm:"default:false"`
	IsManualMeasurement  bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
