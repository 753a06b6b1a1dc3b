package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemDTO 表示訂單項目，價格為下單當下的快照
type OrderItemDTO struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderDTO 表示訂單資訊
type OrderDTO struct {
	ID          uint            `json:"id"`
	UserID      string          `json:"user_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItemDTO  `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}
