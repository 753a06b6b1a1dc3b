package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
)

type OrderHandler struct {
	orderService service.IOrderService
	userService  service.IUserService
}

func NewOrderHandler(orderService service.IOrderService, userService service.IUserService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
		userService:  userService,
	}
}

// @Summary checkout
// @use convert current user's cart into a new order
// @Tags order
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 405 {object} api.ResponseError{data=string} "InvalidOperationCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders/checkout [post]
func (o *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	operator, err := getOperator(ctx, o.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	order, err := o.orderService.Checkout(ctx, operator)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertOrderModelToDTO(order), nil)
}

// @Summary list orders
// @use admin gets all orders, customer gets own orders only
// @Tags order
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.OrderDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders [get]
func (o *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	operator, err := getOperator(ctx, o.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	orders, err := o.orderService.ListOrders(ctx, operator)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	orderDTOs := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		orderDTOs = append(orderDTOs, convertOrderModelToDTO(&orders[i]))
	}

	api.SuccessJSON(w, orderDTOs, nil)
}

// @Summary get order
// @use get single order, customer can only see own orders
// @Tags order
// @Accept json
// @Produce json
// @Param id path int true "order id"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders/{id} [get]
func (o *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(r, "id")
	if err != nil {
		handleServiceError(w, err)
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, o.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	order, err := o.orderService.GetOrder(ctx, operator, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertOrderModelToDTO(order), nil)
}

// @Summary update order status
// @use update order status, admin only
// @Tags order
// @Accept json
// @Produce json
// @Param id path int true "order id"
// @Param statusInfo body dto.UpdateOrderStatusDTO true "new status"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders/{id} [patch]
func (o *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(r, "id")
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var updateOrderStatusDTO dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&updateOrderStatusDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, o.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	order, err := o.orderService.UpdateOrderStatus(ctx, operator, id, updateOrderStatusDTO.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertOrderModelToDTO(order), nil)
}

// @Summary delete order
// @use delete an order and its items, admin only
// @Tags order
// @Accept json
// @Produce json
// @Param id path int true "order id"
// @Success 200 {object} api.Response{data=string} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders/{id} [delete]
func (o *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(r, "id")
	if err != nil {
		handleServiceError(w, err)
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, o.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := o.orderService.DeleteOrder(ctx, operator, id); err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, nil)
}
