package dto

import "github.com/shopspring/decimal"

// CartItemDTO 表示購物車項目，小計以當前商品價格計算
type CartItemDTO struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Product   ProductDTO      `json:"product"`
	Quantity  int             `json:"quantity"`
	SubTotal  decimal.Decimal `json:"sub_total"`
}

// CartSummaryDTO 表示購物車內容與總額
type CartSummaryDTO struct {
	Items []CartItemDTO   `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type AddCartItemDTO struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemDTO struct {
	Quantity int `json:"quantity"`
}
