package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	CartItemID uint      `gorm:"primaryKey"`
	UserID     uuid.UUID `gorm:"not null;type:uuid;uniqueIndex:idx_cart_user_product"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Product    Product   `gorm:"foreignKey:ProductID"`
	Quantity   int       `gorm:"not null;check:quantity >= 1"`
	BaseModel
}

// TotalPrice 單行小計，使用當前商品價格
func (c *CartItem) TotalPrice() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// CartSummary 購物車彙總，total為讀取時計算，count為購物車行數
type CartSummary struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}
