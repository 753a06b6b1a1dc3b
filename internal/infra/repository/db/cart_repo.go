package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/google/uuid"
)

type ICartRepository interface {
	GetCartItems(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)
	GetCartItemByID(ctx context.Context, id uint) (*model.CartItem, error)
	GetCartItemByUserAndProduct(ctx context.Context, userID uuid.UUID, productID uint) (*model.CartItem, error)
	CreateCartItem(ctx context.Context, item *model.CartItem) error
	UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) error
	DeleteCartItem(ctx context.Context, id uint) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type CartRepo struct {
	db *DbDao
}

func NewCartRepo(db *DbDao) *CartRepo {
	return &CartRepo{db: db}
}

// Read - 查詢用戶所有購物車項目，帶出商品資訊
func (s *CartRepo) GetCartItems(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	err := s.db.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).
		Find(&items).Error
	return items, err
}

// Read - 根據ID查詢購物車項目
func (s *CartRepo) GetCartItemByID(ctx context.Context, id uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.WithContext(ctx).Preload("Product").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Read - 根據(user, product)查詢購物車項目
func (s *CartRepo) GetCartItemByUserAndProduct(ctx context.Context, userID uuid.UUID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create - 創建購物車項目
func (s *CartRepo) CreateCartItem(ctx context.Context, item *model.CartItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// Update - 更新購物車項目數量
func (s *CartRepo) UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) error {
	return s.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("cart_item_id = ?", id).
		Update("quantity", quantity).Error
}

// Delete - 刪除單一購物車項目
func (s *CartRepo) DeleteCartItem(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.CartItem{}, id).Error
}

// Delete - 清空用戶購物車，冪等操作
func (s *CartRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
