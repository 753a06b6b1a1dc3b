package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/stretchr/testify/require"
)

func TestOrderCheckout(t *testing.T) {
	orderRepo := NewMockOrderRepo()
	orderService := NewOrderService(orderRepo)
	customer := newTestCustomer()

	order, err := orderService.Checkout(context.Background(), customer)

	require.NoError(t, err)
	require.Equal(t, customer.ID, order.UserID)
	require.Equal(t, model.OrderStatusPending, order.Status)
}

func TestOrderCheckout_EmptyCart(t *testing.T) {
	orderRepo := NewMockOrderRepo()
	orderRepo.CheckoutErr = db.ErrEmptyCart
	orderService := NewOrderService(orderRepo)
	customer := newTestCustomer()

	_, err := orderService.Checkout(context.Background(), customer)

	requireAnaCode(t, err, int(er.InvalidOperationCode))
}

func TestOrderCheckout_Unauthenticated(t *testing.T) {
	orderService := NewOrderService(NewMockOrderRepo())

	_, err := orderService.Checkout(context.Background(), nil)

	requireAnaCode(t, err, int(er.UnauthorizedCode))
}

func TestOrderList_CustomerSeesOwnOrdersOnly(t *testing.T) {
	orderRepo := NewMockOrderRepo()
	orderService := NewOrderService(orderRepo)
	customerA := newTestCustomer()
	customerB := newTestCustomer()

	_, err := orderService.Checkout(context.Background(), customerA)
	require.NoError(t, err)
	_, err = orderService.Checkout(context.Background(), customerB)
	require.NoError(t, err)

	orders, err := orderService.ListOrders(context.Background(), customerA)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, customerA.ID, orders[0].UserID)
}

func TestOrderList_AdminSeesAllOrders(t *testing.T) {
	orderRepo := NewMockOrderRepo()
	orderService := NewOrderService(orderRepo)
	admin := newTestAdmin()

	_, err := orderService.Checkout(context.Background(), newTestCustomer())
	require.NoError(t, err)
	_, err = orderService.Checkout(context.Background(), newTestCustomer())
	require.NoError(t, err)

	orders, err := orderService.ListOrders(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, orders, 2)
}

func TestOrderGet_OwnerAndAdmin(t *testing.T) {
	orderRepo := NewMockOrderRepo()
	orderService := NewOrderService(orderRepo)
	owner := newTestCustomer()
	admin := newTestAdmin()

	order, err := orderService.Checkout(context.Background(), owner)
	require.NoError(t, err)

	found, err := orderService.GetOrder(context.Background(), owner, order.OrderID)
	require.NoError(t, err)
	require.Equal(t, order.OrderID, found.OrderID)

	found, err = orderService.GetOrder(context.Background(), admin, order.OrderID)
	require.NoError(t, err)
	require.Equal(t, order.OrderID, found.OrderID)
}

func TestOrderGet_OtherUserGetsNotFound(t *testing.T) {
	orderRepo := NewMockOrderRepo()
	orderService := NewOrderService(orderRepo)
	owner := newTestCustomer()
	other := newTestCustomer()

	order, err := orderService.Checkout(context.Background(), owner)
	require.NoError(t, err)

	// 他人訂單與不存在的訂單回傳相同錯誤
	_, err = orderService.GetOrder(context.Background(), other, order.OrderID)
	requireAnaCode(t, err, int(er.NotFoundCode))

	_, err = orderService.GetOrder(context.Background(), other, 999)
	requireAnaCode(t, err, int(er.NotFoundCode))
}

func TestOrderUpdateStatus_AdminOnly(t *testing.T) {
	orderRepo := NewMockOrderRepo()
	orderService := NewOrderService(orderRepo)
	customer := newTestCustomer()
	admin := newTestAdmin()

	order, err := orderService.Checkout(context.Background(), customer)
	require.NoError(t, err)

	_, err = orderService.UpdateOrderStatus(context.Background(), customer, order.OrderID, string(model.OrderStatusShipped))
	requireAnaCode(t, err, int(er.UnauthorizedCode))

	updated, err := orderService.UpdateOrderStatus(context.Background(), admin, order.OrderID, string(model.OrderStatusShipped))
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusShipped, updated.Status)
}

func TestOrderUpdateStatus_UnknownStatus(t *testing.T) {
	orderRepo := NewMockOrderRepo()
	orderService := NewOrderService(orderRepo)
	admin := newTestAdmin()

	order, err := orderService.Checkout(context.Background(), newTestCustomer())
	require.NoError(t, err)

	_, err = orderService.UpdateOrderStatus(context.Background(), admin, order.OrderID, "teleported")
	requireAnaCode(t, err, int(er.InvalidArgumentCode))
}

func TestOrderDelete_AdminOnly(t *testing.T) {
	orderRepo := NewMockOrderRepo()
	orderService := NewOrderService(orderRepo)
	customer := newTestCustomer()
	admin := newTestAdmin()

	order, err := orderService.Checkout(context.Background(), customer)
	require.NoError(t, err)

	err = orderService.DeleteOrder(context.Background(), customer, order.OrderID)
	requireAnaCode(t, err, int(er.UnauthorizedCode))

	err = orderService.DeleteOrder(context.Background(), admin, order.OrderID)
	require.NoError(t, err)
	require.NotNil(t, orderRepo.DeletedOrderID)
	require.Equal(t, order.OrderID, *orderRepo.DeletedOrderID)
}

func TestOrderDelete_NotFound(t *testing.T) {
	orderService := NewOrderService(NewMockOrderRepo())
	admin := newTestAdmin()

	err := orderService.DeleteOrder(context.Background(), admin, 999)

	requireAnaCode(t, err, int(er.NotFoundCode))
}
