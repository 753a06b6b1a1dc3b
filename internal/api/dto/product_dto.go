package dto

import "github.com/shopspring/decimal"

// ProductDTO 表示商品資訊
type ProductDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uint            `json:"category_id"`
	Image       string          `json:"image"`
}

// CategoryDTO 表示分類資訊
type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CreateProductDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uint            `json:"category_id"`
	Image       string          `json:"image"`
}

// UpdateProductDTO 部分更新商品，未帶的欄位不更新
type UpdateProductDTO struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uint            `json:"category_id"`
	Image       *string          `json:"image"`
}

type CreateCategoryDTO struct {
	Name string `json:"name"`
}

type UpdateCategoryDTO struct {
	Name string `json:"name"`
}
