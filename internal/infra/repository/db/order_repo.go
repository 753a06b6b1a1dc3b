package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEmptyCart = errors.New("cart is empty")

type IOrderRepository interface {
	CheckoutCart(ctx context.Context, userID uuid.UUID) (*model.Order, error)
	GetOrderByID(ctx context.Context, id uint) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error
	DeleteOrder(ctx context.Context, id uint) error
}

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// CheckoutCart 將用戶購物車轉換為一筆新訂單
//
// 整個流程在單一交易內執行:
//  1. 以FOR UPDATE鎖定用戶的購物車列，序列化同一用戶的並發結帳
//  2. 購物車為空則回傳ErrEmptyCart，不建立任何訂單
//  3. 以商品當前價格計算總金額，並將價格快照寫入訂單項目
//  4. 建立訂單與訂單項目，刪除已結帳的購物車列
//
// 任一步驟失敗，整個交易回滾，購物車與訂單皆不變動
func (s *OrderRepo) CheckoutCart(ctx context.Context, userID uuid.UUID) (*model.Order, error) {
	var order model.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cartItems []model.CartItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Find(&cartItems).Error; err != nil {
			return err
		}

		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		totalAmount := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		cartItemIDs := make([]uint, 0, len(cartItems))
		for _, cartItem := range cartItems {
			cartItemIDs = append(cartItemIDs, cartItem.CartItemID)
			var product model.Product
			if err := tx.First(&product, cartItem.ProductID).Error; err != nil {
				return err
			}

			totalAmount = totalAmount.Add(product.Price.Mul(decimal.NewFromInt(int64(cartItem.Quantity))))
			orderItems = append(orderItems, model.OrderItem{
				ProductID: cartItem.ProductID,
				Quantity:  cartItem.Quantity,
				Price:     product.Price,
			})
		}

		order = model.Order{
			UserID:      userID,
			Status:      model.OrderStatusPending,
			TotalAmount: totalAmount,
			Items:       orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// 僅刪除鎖定讀取到的項目，結帳期間新加入的購物車列必須保留
		return tx.Where("cart_item_id IN ?", cartItemIDs).Delete(&model.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 根據用戶ID查詢訂單
func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Find(&orders).Error
	return orders, err
}

// Read - 查詢所有訂單
func (s *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("Items").Find(&orders).Error
	return orders, err
}

// Update - 更新訂單狀態
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", id).
		Update("status", status).Error
}

// Delete - 刪除訂單，級聯刪除訂單項目
func (s *OrderRepo) DeleteOrder(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Order{}, id).Error
}
