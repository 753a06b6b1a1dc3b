package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func IsValidOrderStatus(status string) bool {
	switch OrderStatus(status) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

type Order struct {
	OrderID     uint            `gorm:"primaryKey"`
	UserID      uuid.UUID       `gorm:"not null;type:uuid;index"`
	Status      OrderStatus     `gorm:"not null;type:varchar(20);default:'pending'"`
	TotalAmount decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"` // 一對多，級聯刪除
	BaseModel
}

type OrderItem struct {
	OrderItemID uint `gorm:"primaryKey"`
	OrderID     uint `gorm:"not null;index"`
	ProductID   uint `gorm:"not null"`
	Quantity    int  `gorm:"not null"`
	// Price 下單當下的商品價格快照，建立後不再重新計算
	Price decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
}
