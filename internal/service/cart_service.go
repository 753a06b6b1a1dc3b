package service

import (
	"context"
	"errors"
	"reflect"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ICartService interface {
	// AddItem 加入商品到購物車
	//
	// 同商品已存在則累加數量，回傳created=false；否則新增一筆，回傳created=true
	//
	// 錯誤:
	//   - er.UnauthorizedCode 403: 未授權
	//   - er.NotFoundCode 404: 商品不存在
	//   - er.InvalidArgumentCode 460: 數量小於1
	AddItem(ctx context.Context, operator *model.User, productID uint, quantity int) (item *model.CartItem, created bool, err error)
	// UpdateItem 覆寫購物車項目數量，僅限項目擁有者
	//
	// 錯誤:
	//   - er.UnauthorizedCode 403: 非項目擁有者
	//   - er.NotFoundCode 404: 項目不存在
	//   - er.InvalidArgumentCode 460: 數量小於1
	UpdateItem(ctx context.Context, operator *model.User, cartItemID uint, quantity int) (*model.CartItem, error)
	// RemoveItem 移除購物車項目，僅限項目擁有者
	RemoveItem(ctx context.Context, operator *model.User, cartItemID uint) error
	// Summary 查詢購物車內容，總額以當前商品價格即時計算
	Summary(ctx context.Context, operator *model.User) (*model.CartSummary, error)
	// Clear 清空購物車，冪等操作
	Clear(ctx context.Context, operator *model.User) error
}

type CartService struct {
	cartRepo    db.ICartRepository
	productRepo db.IProductRepository
}

func NewCartService(cartRepo db.ICartRepository, productRepo db.IProductRepository) ICartService {
	if reflect.ValueOf(cartRepo).IsNil() {
		panic("cart service initialization failed: cartRepo cannot be nil")
	}
	if reflect.ValueOf(productRepo).IsNil() {
		panic("cart service initialization failed: productRepo cannot be nil")
	}
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (c *CartService) AddItem(ctx context.Context, operator *model.User, productID uint, quantity int) (*model.CartItem, bool, error) {
	if err := Authorize(operator, ActionCreate, ResourceCart); err != nil {
		return nil, false, err
	}

	if quantity < 1 {
		return nil, false, er.New(er.InvalidArgumentCode, "quantity must be at least 1")
	}

	if _, err := c.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, er.New(er.NotFoundCode, "product not found")
		}
		return nil, false, er.New(er.InternalErrorCode, err.Error())
	}

	existing, err := c.cartRepo.GetCartItemByUserAndProduct(ctx, operator.ID, productID)
	if err == nil {
		return c.incrementQuantity(ctx, existing, quantity)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, er.New(er.InternalErrorCode, err.Error())
	}

	item := &model.CartItem{
		UserID:    operator.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := c.cartRepo.CreateCartItem(ctx, item); err != nil {
		// 與同用戶的另一請求競爭時撞上(user_id, product_id)唯一索引，改走累加
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, err := c.cartRepo.GetCartItemByUserAndProduct(ctx, operator.ID, productID)
			if err != nil {
				return nil, false, er.New(er.InternalErrorCode, err.Error())
			}
			return c.incrementQuantity(ctx, existing, quantity)
		}
		return nil, false, er.New(er.InternalErrorCode, err.Error())
	}

	created, err := c.cartRepo.GetCartItemByID(ctx, item.CartItemID)
	if err != nil {
		return nil, false, er.New(er.InternalErrorCode, err.Error())
	}
	return created, true, nil
}

func (c *CartService) incrementQuantity(ctx context.Context, item *model.CartItem, delta int) (*model.CartItem, bool, error) {
	newQuantity := item.Quantity + delta
	if err := c.cartRepo.UpdateCartItemQuantity(ctx, item.CartItemID, newQuantity); err != nil {
		return nil, false, er.New(er.InternalErrorCode, err.Error())
	}
	updated, err := c.cartRepo.GetCartItemByID(ctx, item.CartItemID)
	if err != nil {
		return nil, false, er.New(er.InternalErrorCode, err.Error())
	}
	return updated, false, nil
}

// getOwnedItem 取得購物車項目並確認擁有者
func (c *CartService) getOwnedItem(ctx context.Context, operator *model.User, cartItemID uint) (*model.CartItem, error) {
	item, err := c.cartRepo.GetCartItemByID(ctx, cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.NotFoundCode, "cart item not found")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if item.UserID != operator.ID {
		return nil, er.New(er.UnauthorizedCode, "forbidden")
	}
	return item, nil
}

func (c *CartService) UpdateItem(ctx context.Context, operator *model.User, cartItemID uint, quantity int) (*model.CartItem, error) {
	if err := Authorize(operator, ActionUpdate, ResourceCart); err != nil {
		return nil, err
	}

	if quantity < 1 {
		return nil, er.New(er.InvalidArgumentCode, "quantity must be at least 1")
	}

	item, err := c.getOwnedItem(ctx, operator, cartItemID)
	if err != nil {
		return nil, err
	}

	if err := c.cartRepo.UpdateCartItemQuantity(ctx, item.CartItemID, quantity); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	updated, err := c.cartRepo.GetCartItemByID(ctx, item.CartItemID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return updated, nil
}

func (c *CartService) RemoveItem(ctx context.Context, operator *model.User, cartItemID uint) error {
	if err := Authorize(operator, ActionDelete, ResourceCart); err != nil {
		return err
	}

	item, err := c.getOwnedItem(ctx, operator, cartItemID)
	if err != nil {
		return err
	}

	if err := c.cartRepo.DeleteCartItem(ctx, item.CartItemID); err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}
	return nil
}

func (c *CartService) Summary(ctx context.Context, operator *model.User) (*model.CartSummary, error) {
	if err := Authorize(operator, ActionRead, ResourceCart); err != nil {
		return nil, err
	}

	items, err := c.cartRepo.GetCartItems(ctx, operator.ID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].TotalPrice())
	}

	return &model.CartSummary{
		Items: items,
		Total: total,
		Count: len(items),
	}, nil
}

func (c *CartService) Clear(ctx context.Context, operator *model.User) error {
	if err := Authorize(operator, ActionDelete, ResourceCart); err != nil {
		return err
	}

	if err := c.cartRepo.ClearCart(ctx, operator.ID); err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}
	return nil
}
