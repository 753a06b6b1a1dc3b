package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
)

type CartHandler struct {
	cartService service.ICartService
	userService service.IUserService
}

func NewCartHandler(cartService service.ICartService, userService service.IUserService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &CartHandler{
		cartService: cartService,
		userService: userService,
	}
}

// @Summary get cart summary
// @use get current user's cart items and total, total uses current product prices
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=dto.CartSummaryDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /cart [get]
func (c *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	operator, err := getOperator(ctx, c.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	summary, err := c.cartService.Summary(ctx, operator)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertCartSummaryModelToDTO(summary), nil)
}

// @Summary add item to cart
// @use add a product to cart, same product accumulates quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param itemInfo body dto.AddCartItemDTO true "product id and quantity"
// @Success 200 {object} api.Response{data=dto.CartItemDTO} "quantity accumulated on existing item"
// @Success 201 {object} api.Response{data=dto.CartItemDTO} "new item created"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /cart/items [post]
func (c *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var addCartItemDTO dto.AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&addCartItemDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, c.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	item, created, err := c.cartService.AddItem(ctx, operator, addCartItemDTO.ProductID, addCartItemDTO.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 新增一筆回201，既有項目累加回200
	if created {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
	}
	api.SuccessJSON(w, convertCartItemModelToDTO(item), nil)
}

// @Summary update cart item
// @use overwrite cart item quantity, owner only
// @Tags cart
// @Accept json
// @Produce json
// @Param id path int true "cart item id"
// @Param itemInfo body dto.UpdateCartItemDTO true "quantity"
// @Success 200 {object} api.Response{data=dto.CartItemDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /cart/items/{id} [patch]
func (c *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(r, "id")
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var updateCartItemDTO dto.UpdateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&updateCartItemDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, c.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	item, err := c.cartService.UpdateItem(ctx, operator, id, updateCartItemDTO.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertCartItemModelToDTO(item), nil)
}

// @Summary remove cart item
// @use remove a cart item, owner only
// @Tags cart
// @Accept json
// @Produce json
// @Param id path int true "cart item id"
// @Success 200 {object} api.Response{data=string} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /cart/items/{id} [delete]
func (c *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(r, "id")
	if err != nil {
		handleServiceError(w, err)
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, c.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := c.cartService.RemoveItem(ctx, operator, id); err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, nil)
}

// @Summary clear cart
// @use remove all items from current user's cart, idempotent
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=string} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /cart [delete]
func (c *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	operator, err := getOperator(ctx, c.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := c.cartService.Clear(ctx, operator); err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, nil)
}
