package service

import (
	"context"
	"errors"
	"reflect"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"gorm.io/gorm"
)

type IOrderService interface {
	// Checkout 將購物車結帳為新訂單
	//
	// 錯誤:
	//   - er.UnauthorizedCode 403: 未授權
	//   - er.InvalidOperationCode 405: 購物車為空
	//   - er.InternalErrorCode 500: db操作錯誤
	Checkout(ctx context.Context, operator *model.User) (*model.Order, error)
	// ListOrders 查詢訂單列表，管理員取得全部訂單，一般用戶僅取得自己的訂單
	ListOrders(ctx context.Context, operator *model.User) ([]model.Order, error)
	// GetOrder 查詢單一訂單
	//
	// 非管理員查詢他人訂單回傳NotFound，不洩漏訂單是否存在
	//
	// 錯誤:
	//   - er.NotFoundCode 404: 訂單不存在或無權查看
	GetOrder(ctx context.Context, operator *model.User, orderID uint) (*model.Order, error)
	// UpdateOrderStatus 更新訂單狀態，僅限管理員
	//
	// 錯誤:
	//   - er.UnauthorizedCode 403: 非管理員
	//   - er.NotFoundCode 404: 訂單不存在
	//   - er.InvalidArgumentCode 460: 未知訂單狀態
	UpdateOrderStatus(ctx context.Context, operator *model.User, orderID uint, status string) (*model.Order, error)
	// DeleteOrder 刪除訂單，僅限管理員
	DeleteOrder(ctx context.Context, operator *model.User, orderID uint) error
}

type OrderService struct {
	orderRepo db.IOrderRepository
}

func NewOrderService(orderRepo db.IOrderRepository) IOrderService {
	if reflect.ValueOf(orderRepo).IsNil() {
		panic("order service initialization failed: orderRepo cannot be nil")
	}
	return &OrderService{orderRepo: orderRepo}
}

func (o *OrderService) Checkout(ctx context.Context, operator *model.User) (*model.Order, error) {
	if err := Authorize(operator, ActionCreate, ResourceCart); err != nil {
		return nil, err
	}

	order, err := o.orderRepo.CheckoutCart(ctx, operator.ID)
	if err != nil {
		if errors.Is(err, db.ErrEmptyCart) {
			return nil, er.New(er.InvalidOperationCode, "cart is empty")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	return order, nil
}

func (o *OrderService) ListOrders(ctx context.Context, operator *model.User) ([]model.Order, error) {
	if err := Authorize(operator, ActionRead, ResourceOrder); err != nil {
		return nil, err
	}

	var (
		orders []model.Order
		err    error
	)
	if operator.IsAdmin() {
		orders, err = o.orderRepo.GetAllOrders(ctx)
	} else {
		orders, err = o.orderRepo.GetOrdersByUserID(ctx, operator.ID)
	}
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return orders, nil
}

func (o *OrderService) GetOrder(ctx context.Context, operator *model.User, orderID uint) (*model.Order, error) {
	if err := Authorize(operator, ActionRead, ResourceOrder); err != nil {
		return nil, err
	}

	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.NotFoundCode, "order not found")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	// 他人訂單與不存在的訂單回傳相同錯誤
	if !operator.IsAdmin() && order.UserID != operator.ID {
		return nil, er.New(er.NotFoundCode, "order not found")
	}

	return order, nil
}

func (o *OrderService) UpdateOrderStatus(ctx context.Context, operator *model.User, orderID uint, status string) (*model.Order, error) {
	if err := Authorize(operator, ActionUpdate, ResourceOrder); err != nil {
		return nil, err
	}

	if !model.IsValidOrderStatus(status) {
		return nil, er.New(er.InvalidArgumentCode, "unknown order status")
	}

	if _, err := o.orderRepo.GetOrderByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.NotFoundCode, "order not found")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	if err := o.orderRepo.UpdateOrderStatus(ctx, orderID, model.OrderStatus(status)); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return order, nil
}

func (o *OrderService) DeleteOrder(ctx context.Context, operator *model.User, orderID uint) error {
	if err := Authorize(operator, ActionDelete, ResourceOrder); err != nil {
		return err
	}

	if _, err := o.orderRepo.GetOrderByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return er.New(er.NotFoundCode, "order not found")
		}
		return er.New(er.InternalErrorCode, err.Error())
	}

	if err := o.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}
	return nil
}
