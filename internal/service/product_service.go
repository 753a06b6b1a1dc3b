package service

import (
	"context"
	"errors"
	"reflect"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateProductParams 建立商品所需欄位
type CreateProductParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  uint
	Image       string
}

// UpdateProductParams 部分更新商品，nil欄位表示不更新
type UpdateProductParams struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	CategoryID  *uint
	Image       *string
}

type IProductService interface {
	// ListProducts 查詢商品列表，可依分類、價格區間過濾並排序
	//
	// 錯誤:
	//   - er.InvalidArgumentCode 460: 未知排序鍵或價格區間錯誤
	//   - er.InternalErrorCode 500: db操作錯誤
	ListProducts(ctx context.Context, filter db.ProductFilter) ([]model.Product, error)
	// GetProduct 查詢單一商品
	//
	// 錯誤:
	//   - er.NotFoundCode 404: 商品不存在
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	// CreateProduct 建立商品，僅限管理員
	//
	// 錯誤:
	//   - er.UnauthorizedCode 403: 非管理員
	//   - er.InvalidArgumentCode 460: 欄位驗證失敗
	//   - er.NotFoundCode 404: 分類不存在
	CreateProduct(ctx context.Context, operator *model.User, params CreateProductParams) (*model.Product, error)
	// UpdateProduct 部分更新商品，僅限管理員
	UpdateProduct(ctx context.Context, operator *model.User, id uint, params UpdateProductParams) (*model.Product, error)
	// DeleteProduct 刪除商品，僅限管理員
	DeleteProduct(ctx context.Context, operator *model.User, id uint) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, operator *model.User, name string) (*model.Category, error)
	UpdateCategory(ctx context.Context, operator *model.User, id uint, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, operator *model.User, id uint) error
}

type ProductService struct {
	productRepo db.IProductRepository
}

func NewProductService(productRepo db.IProductRepository) IProductService {
	if reflect.ValueOf(productRepo).IsNil() {
		panic("product service initialization failed: productRepo cannot be nil")
	}
	return &ProductService{productRepo: productRepo}
}

func (p *ProductService) ListProducts(ctx context.Context, filter db.ProductFilter) ([]model.Product, error) {
	if filter.Ordering != "" && !constants.IsValidProductOrdering(filter.Ordering) {
		return nil, er.New(er.InvalidArgumentCode, "unknown ordering key")
	}
	if filter.MinPrice != nil && filter.MinPrice.IsNegative() {
		return nil, er.New(er.InvalidArgumentCode, "min_price cannot be negative")
	}
	if filter.MaxPrice != nil && filter.MaxPrice.IsNegative() {
		return nil, er.New(er.InvalidArgumentCode, "max_price cannot be negative")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, er.New(er.InvalidArgumentCode, "min_price cannot exceed max_price")
	}

	products, err := p.productRepo.ListProducts(ctx, filter)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return products, nil
}

func (p *ProductService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := p.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.NotFoundCode, "product not found")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return product, nil
}

func validateProductFields(name string, price decimal.Decimal) error {
	if name == "" {
		return er.New(er.InvalidArgumentCode, "product name cannot be empty")
	}
	if price.IsNegative() {
		return er.New(er.InvalidArgumentCode, "product price cannot be negative")
	}
	return nil
}

func (p *ProductService) CreateProduct(ctx context.Context, operator *model.User, params CreateProductParams) (*model.Product, error) {
	if err := Authorize(operator, ActionCreate, ResourceCatalog); err != nil {
		return nil, err
	}

	if err := validateProductFields(params.Name, params.Price); err != nil {
		return nil, err
	}

	if _, err := p.productRepo.GetCategoryByID(ctx, params.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.NotFoundCode, "category not found")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	product := &model.Product{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		CategoryID:  params.CategoryID,
		Image:       params.Image,
	}
	if err := p.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return product, nil
}

func (p *ProductService) UpdateProduct(ctx context.Context, operator *model.User, id uint, params UpdateProductParams) (*model.Product, error) {
	if err := Authorize(operator, ActionUpdate, ResourceCatalog); err != nil {
		return nil, err
	}

	if _, err := p.GetProduct(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if params.Name != nil {
		if *params.Name == "" {
			return nil, er.New(er.InvalidArgumentCode, "product name cannot be empty")
		}
		updates["name"] = *params.Name
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.Price != nil {
		if params.Price.IsNegative() {
			return nil, er.New(er.InvalidArgumentCode, "product price cannot be negative")
		}
		updates["price"] = *params.Price
	}
	if params.CategoryID != nil {
		if _, err := p.productRepo.GetCategoryByID(ctx, *params.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, er.New(er.NotFoundCode, "category not found")
			}
			return nil, er.New(er.InternalErrorCode, err.Error())
		}
		updates["category_id"] = *params.CategoryID
	}
	if params.Image != nil {
		updates["image"] = *params.Image
	}

	if len(updates) > 0 {
		if err := p.productRepo.UpdateProductFields(ctx, id, updates); err != nil {
			return nil, er.New(er.InternalErrorCode, err.Error())
		}
	}

	return p.GetProduct(ctx, id)
}

func (p *ProductService) DeleteProduct(ctx context.Context, operator *model.User, id uint) error {
	if err := Authorize(operator, ActionDelete, ResourceCatalog); err != nil {
		return err
	}

	if _, err := p.GetProduct(ctx, id); err != nil {
		return err
	}

	if err := p.productRepo.DeleteProduct(ctx, id); err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}
	return nil
}

func (p *ProductService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := p.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return categories, nil
}

func (p *ProductService) CreateCategory(ctx context.Context, operator *model.User, name string) (*model.Category, error) {
	if err := Authorize(operator, ActionCreate, ResourceCatalog); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, er.New(er.InvalidArgumentCode, "category name cannot be empty")
	}

	category := &model.Category{Name: name}
	if err := p.productRepo.CreateCategory(ctx, category); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return category, nil
}

func (p *ProductService) UpdateCategory(ctx context.Context, operator *model.User, id uint, name string) (*model.Category, error) {
	if err := Authorize(operator, ActionUpdate, ResourceCatalog); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, er.New(er.InvalidArgumentCode, "category name cannot be empty")
	}

	category, err := p.productRepo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.NotFoundCode, "category not found")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	category.Name = name
	if err := p.productRepo.UpdateCategory(ctx, category); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return category, nil
}

func (p *ProductService) DeleteCategory(ctx context.Context, operator *model.User, id uint) error {
	if err := Authorize(operator, ActionDelete, ResourceCatalog); err != nil {
		return err
	}

	if _, err := p.productRepo.GetCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return er.New(er.NotFoundCode, "category not found")
		}
		return er.New(er.InternalErrorCode, err.Error())
	}

	if err := p.productRepo.DeleteCategory(ctx, id); err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}
	return nil
}
