package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormLoader, tüm koleksiyonları Postgres'ten okur. Orijinal yükleme
// sırası korunur: isimle sıralanan tanım tabloları, tarihle sıralanan
// hareket tabloları.
type GormLoader struct {
	DB *gorm.DB
}

func NewGormLoader(db *gorm.DB) *GormLoader {
	return &GormLoader{DB: db}
}

func (l *GormLoader) LoadAll(ctx context.Context) (*Snapshot, error) {
	db := l.DB.WithContext(ctx)
	snap := &Snapshot{}

	type load struct {
		name string
		run  func() error
	}

	loads := []load{
		{"clinics", func() error { return db.Order("name asc").Find(&snap.Clinics).Error }},
		{"doctors", func() error { return db.Order("name asc").Find(&snap.Doctors).Error }},
		{"prosthesis_types", func() error { return db.Order("name asc").Find(&snap.ProsthesisTypes).Error }},
		{"technicians", func() error { return db.Order("name asc").Find(&snap.Technicians).Error }},
		{"orders", func() error { return db.Order("created_at desc").Find(&snap.Orders).Error }},
		{"payments", func() error { return db.Order("date desc").Find(&snap.Payments).Error }},
		{"expenses", func() error { return db.Order("date desc").Find(&snap.Expenses).Error }},
		{"users", func() error { return db.Order("name asc").Find(&snap.Users).Error }},
	}

	// Tek bir tablo bile yüklenemezse tüm tur geçersizdir.
	for _, ld := range loads {
		if err := ld.run(); err != nil {
			return nil, fmt.Errorf("%s verisi yüklenemedi: %w", ld.name, err)
		}
	}

	return snap, nil
}
