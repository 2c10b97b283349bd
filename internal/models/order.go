package models

import "time"

const (
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
)

type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

// PaymentInfo doubles as the duplicate-submission key: payment_id carries a
// unique index, so a second order with the same payment is rejected by the
// store rather than by a racy pre-check.
type PaymentInfo struct {
	ID     string `gorm:"column:payment_id;uniqueIndex;not null" json:"id"`
	Status string `gorm:"column:payment_status" json:"status"`
}

type TrackingInfo struct {
	Carrier string `json:"carrier"`
	Number  string `json:"number"`
	URL     string `json:"url"`
}

type Order struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"index;not null" json:"userId"`
	User         User         `json:"user"`
	ShippingInfo ShippingInfo `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingInfo"`
	Items        []OrderItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
	PaymentInfo  PaymentInfo  `gorm:"embedded" json:"paymentInfo"`
	TotalPrice   float64      `gorm:"not null" json:"totalPrice"`
	OrderStatus  string       `gorm:"not null;default:Processing" json:"orderStatus"`
	PaidAt       time.Time    `json:"paidAt"`
	ShippedAt    *time.Time   `json:"shippedAt,omitempty"`
	DeliveredAt  *time.Time   `json:"deliveredAt,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	TrackingInfo TrackingInfo `gorm:"embedded;embeddedPrefix:tracking_" json:"trackingInfo"`
	CreatedAt    time.Time    `json:"createdAt"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"-"`
	ProductID uint    `gorm:"index;not null" json:"product"`
	Quantity  uint    `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}
