package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestProductService(t *testing.T) (IProductService, *MockProductRepo) {
	t.Helper()
	productRepo := NewMockProductRepo()
	return NewProductService(productRepo), productRepo
}

func addMockCategory(productRepo *MockProductRepo, name string) *model.Category {
	category := &model.Category{Name: name}
	productRepo.CreateCategory(context.Background(), category)
	return category
}

func TestListProducts_ValidOrdering(t *testing.T) {
	productService, productRepo := newTestProductService(t)
	addMockProduct(productRepo, "keyboard", 59.9)

	for _, ordering := range []string{"", "price", "-price", "name", "-name"} {
		_, err := productService.ListProducts(context.Background(), db.ProductFilter{Ordering: ordering})
		require.NoError(t, err)
	}
}

func TestListProducts_UnknownOrderingRejected(t *testing.T) {
	productService, _ := newTestProductService(t)

	for _, ordering := range []string{"created_at", "PRICE", "price,name", "-unknown"} {
		_, err := productService.ListProducts(context.Background(), db.ProductFilter{Ordering: ordering})
		requireAnaCode(t, err, int(er.InvalidArgumentCode))
	}
}

func TestListProducts_InvalidPriceRange(t *testing.T) {
	productService, _ := newTestProductService(t)

	negative := decimal.NewFromFloat(-1.0)
	_, err := productService.ListProducts(context.Background(), db.ProductFilter{MinPrice: &negative})
	requireAnaCode(t, err, int(er.InvalidArgumentCode))

	minPrice := decimal.NewFromFloat(100.0)
	maxPrice := decimal.NewFromFloat(50.0)
	_, err = productService.ListProducts(context.Background(), db.ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	requireAnaCode(t, err, int(er.InvalidArgumentCode))
}

func TestCreateProduct_AdminOnly(t *testing.T) {
	productService, productRepo := newTestProductService(t)
	category := addMockCategory(productRepo, "electronics")
	customer := newTestCustomer()
	admin := newTestAdmin()

	params := CreateProductParams{
		Name:       "keyboard",
		Price:      decimal.NewFromFloat(59.9),
		CategoryID: category.CategoryID,
	}

	_, err := productService.CreateProduct(context.Background(), customer, params)
	requireAnaCode(t, err, int(er.UnauthorizedCode))

	product, err := productService.CreateProduct(context.Background(), admin, params)
	require.NoError(t, err)
	require.NotZero(t, product.ProductID)
}

func TestCreateProduct_Validation(t *testing.T) {
	productService, productRepo := newTestProductService(t)
	category := addMockCategory(productRepo, "electronics")
	admin := newTestAdmin()

	// 名稱不可為空
	_, err := productService.CreateProduct(context.Background(), admin, CreateProductParams{
		Name:       "",
		Price:      decimal.NewFromFloat(59.9),
		CategoryID: category.CategoryID,
	})
	requireAnaCode(t, err, int(er.InvalidArgumentCode))

	// 價格不可為負
	_, err = productService.CreateProduct(context.Background(), admin, CreateProductParams{
		Name:       "keyboard",
		Price:      decimal.NewFromFloat(-1.0),
		CategoryID: category.CategoryID,
	})
	requireAnaCode(t, err, int(er.InvalidArgumentCode))

	// 分類必須存在
	_, err = productService.CreateProduct(context.Background(), admin, CreateProductParams{
		Name:       "keyboard",
		Price:      decimal.NewFromFloat(59.9),
		CategoryID: 999,
	})
	requireAnaCode(t, err, int(er.NotFoundCode))
}

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	productService, productRepo := newTestProductService(t)
	admin := newTestAdmin()
	product := addMockProduct(productRepo, "keyboard", 59.9)

	newName := "mechanical keyboard"
	updated, err := productService.UpdateProduct(context.Background(), admin, product.ProductID, UpdateProductParams{
		Name: &newName,
	})

	require.NoError(t, err)
	require.Equal(t, "mechanical keyboard", updated.Name)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	productService, _ := newTestProductService(t)
	admin := newTestAdmin()

	newName := "mechanical keyboard"
	_, err := productService.UpdateProduct(context.Background(), admin, 999, UpdateProductParams{Name: &newName})

	requireAnaCode(t, err, int(er.NotFoundCode))
}

func TestDeleteProduct_AdminOnly(t *testing.T) {
	productService, productRepo := newTestProductService(t)
	customer := newTestCustomer()
	admin := newTestAdmin()
	product := addMockProduct(productRepo, "keyboard", 59.9)

	err := productService.DeleteProduct(context.Background(), customer, product.ProductID)
	requireAnaCode(t, err, int(er.UnauthorizedCode))

	err = productService.DeleteProduct(context.Background(), admin, product.ProductID)
	require.NoError(t, err)

	_, err = productService.GetProduct(context.Background(), product.ProductID)
	requireAnaCode(t, err, int(er.NotFoundCode))
}

func TestCreateCategory_AdminOnly(t *testing.T) {
	productService, _ := newTestProductService(t)
	customer := newTestCustomer()
	admin := newTestAdmin()

	_, err := productService.CreateCategory(context.Background(), customer, "electronics")
	requireAnaCode(t, err, int(er.UnauthorizedCode))

	_, err = productService.CreateCategory(context.Background(), admin, "")
	requireAnaCode(t, err, int(er.InvalidArgumentCode))

	category, err := productService.CreateCategory(context.Background(), admin, "electronics")
	require.NoError(t, err)
	require.NotZero(t, category.CategoryID)
}

func TestUpdateCategory(t *testing.T) {
	productService, productRepo := newTestProductService(t)
	customer := newTestCustomer()
	admin := newTestAdmin()
	category := addMockCategory(productRepo, "electronics")

	_, err := productService.UpdateCategory(context.Background(), customer, category.CategoryID, "gadgets")
	requireAnaCode(t, err, int(er.UnauthorizedCode))

	_, err = productService.UpdateCategory(context.Background(), admin, category.CategoryID, "")
	requireAnaCode(t, err, int(er.InvalidArgumentCode))

	_, err = productService.UpdateCategory(context.Background(), admin, 999, "gadgets")
	requireAnaCode(t, err, int(er.NotFoundCode))

	updated, err := productService.UpdateCategory(context.Background(), admin, category.CategoryID, "gadgets")
	require.NoError(t, err)
	require.Equal(t, "gadgets", updated.Name)

	found, err := productRepo.GetCategoryByID(context.Background(), category.CategoryID)
	require.NoError(t, err)
	require.Equal(t, "gadgets", found.Name)
}
