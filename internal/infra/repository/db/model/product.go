package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	CategoryID uint      `gorm:"primaryKey"`
	Name       string    `gorm:"not null;type:varchar(100)"`
	Products   []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"` // 一對多，級聯刪除
	BaseModel
}

type Product struct {
	ProductID   uint            `gorm:"primaryKey"`
	Name        string          `gorm:"not null;type:varchar(200)"`
	Description string          `gorm:"not null;type:text"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	CategoryID  uint            `gorm:"not null;index"`
	Image       string          `gorm:"type:text"`
	OrderItems  []OrderItem     `gorm:"foreignKey:ProductID"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // 軟刪除，保留歷史訂單的商品參照
	BaseModel
}
