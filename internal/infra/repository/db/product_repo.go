package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/shopspring/decimal"
)

// ProductFilter 商品查詢條件，排序鍵由service層先行驗證
type ProductFilter struct {
	CategoryID uint
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Ordering   string
}

type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	UpdateProductFields(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteProduct(ctx context.Context, id uint) error
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategoryByID(ctx context.Context, id uint) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id uint) error
}

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create - 創建商品
func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// Read - 根據ID查詢商品
func (s *ProductRepo) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// orderingClause 將排序鍵轉換為SQL排序子句
func orderingClause(ordering string) string {
	switch ordering {
	case "price":
		return "price ASC"
	case "-price":
		return "price DESC"
	case "name":
		return "name ASC"
	case "-name":
		return "name DESC"
	default:
		return ""
	}
}

// Read - 依分類、價格區間與排序鍵查詢商品
func (s *ProductRepo) ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	query := s.db.WithContext(ctx).Model(&model.Product{})

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if clause := orderingClause(filter.Ordering); clause != "" {
		query = query.Order(clause)
	}

	err := query.Find(&products).Error
	return products, err
}

// Update - 部分更新商品
func (s *ProductRepo) UpdateProductFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", id).
		Updates(updates).Error
}

// Delete - 軟刪除商品，保留歷史訂單的商品參照
func (s *ProductRepo) DeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

// Create - 創建分類
func (s *ProductRepo) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

// Read - 根據ID查詢分類
func (s *ProductRepo) GetCategoryByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Read - 查詢所有分類
func (s *ProductRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := s.db.WithContext(ctx).Find(&categories).Error
	return categories, err
}

// Update - 更新分類
func (s *ProductRepo) UpdateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Save(category).Error
}

// Delete - 刪除分類，級聯刪除其商品
func (s *ProductRepo) DeleteCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}
