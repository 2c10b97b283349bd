package models

import "time"

type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Stock     int       `gorm:"not null" json:"stock"`
	VendorID  uint      `gorm:"index;not null" json:"vendorId"`
	CreatedAt time.Time `json:"createdAt"`
}
