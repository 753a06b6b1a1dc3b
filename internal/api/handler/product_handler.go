package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productService service.IProductService
	userService    service.IUserService
}

func NewProductHandler(productService service.IProductService, userService service.IUserService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &ProductHandler{
		productService: productService,
		userService:    userService,
	}
}

// parseUintParam 解析url參數為uint
func parseUintParam(r *http.Request, key string) (uint, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, er.New(er.BadRequestCode, "invalid id")
	}
	return uint(id), nil
}

// parseProductFilter 解析商品查詢字串，排序鍵交由service驗證
func parseProductFilter(r *http.Request) (db.ProductFilter, error) {
	var filter db.ProductFilter
	query := r.URL.Query()

	if raw := query.Get("category_id"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filter, er.New(er.BadRequestCode, "invalid category_id")
		}
		filter.CategoryID = uint(categoryID)
	}
	if raw := query.Get("min_price"); raw != "" {
		minPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, er.New(er.BadRequestCode, "invalid min_price")
		}
		filter.MinPrice = &minPrice
	}
	if raw := query.Get("max_price"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, er.New(er.BadRequestCode, "invalid max_price")
		}
		filter.MaxPrice = &maxPrice
	}
	filter.Ordering = query.Get("ordering")

	return filter, nil
}

// @Summary list products
// @use list products with optional category, price range filters and ordering
// @Tags product
// @Accept json
// @Produce json
// @Param category_id query int false "category id"
// @Param min_price query string false "min price"
// @Param max_price query string false "max price"
// @Param ordering query string false "ordering key: price, -price, name, -name"
// @Success 200 {object} api.Response{data=[]dto.ProductDTO} "success"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /products [get]
func (p *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	ctx := r.Context()

	products, err := p.productService.ListProducts(ctx, filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	productDTOs := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		productDTOs = append(productDTOs, convertProductModelToDTO(&products[i]))
	}

	api.SuccessJSON(w, productDTOs, nil)
}

// @Summary get product
// @use get single product by id
// @Tags product
// @Accept json
// @Produce json
// @Param id path int true "product id"
// @Success 200 {object} api.Response{data=dto.ProductDTO} "success"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /products/{id} [get]
func (p *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(r, "id")
	if err != nil {
		handleServiceError(w, err)
		return
	}

	ctx := r.Context()

	product, err := p.productService.GetProduct(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertProductModelToDTO(product), nil)
}

// @Summary create product
// @use create a new product, admin only
// @Tags product
// @Accept json
// @Produce json
// @Param productInfo body dto.CreateProductDTO true "product info"
// @Success 200 {object} api.Response{data=dto.ProductDTO} "success"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /products [post]
func (p *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var createProductDTO dto.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&createProductDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, p.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	product, err := p.productService.CreateProduct(ctx, operator, service.CreateProductParams{
		Name:        createProductDTO.Name,
		Description: createProductDTO.Description,
		Price:       createProductDTO.Price,
		CategoryID:  createProductDTO.CategoryID,
		Image:       createProductDTO.Image,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertProductModelToDTO(product), nil)
}

// @Summary update product
// @use partially update a product, admin only
// @Tags product
// @Accept json
// @Produce json
// @Param id path int true "product id"
// @Param productInfo body dto.UpdateProductDTO true "fields to update"
// @Success 200 {object} api.Response{data=dto.ProductDTO} "success"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /products/{id} [patch]
func (p *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(r, "id")
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var updateProductDTO dto.UpdateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&updateProductDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, p.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	product, err := p.productService.UpdateProduct(ctx, operator, id, service.UpdateProductParams{
		Name:        updateProductDTO.Name,
		Description: updateProductDTO.Description,
		Price:       updateProductDTO.Price,
		CategoryID:  updateProductDTO.CategoryID,
		Image:       updateProductDTO.Image,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertProductModelToDTO(product), nil)
}

// @Summary delete product
// @use delete a product, admin only
// @Tags product
// @Accept json
// @Produce json
// @Param id path int true "product id"
// @Success 200 {object} api.Response{data=string} "success"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /products/{id} [delete]
func (p *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(r, "id")
	if err != nil {
		handleServiceError(w, err)
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, p.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := p.productService.DeleteProduct(ctx, operator, id); err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, nil)
}

// @Summary list categories
// @use list all categories
// @Tags category
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.CategoryDTO} "success"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /categories [get]
func (p *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := p.productService.ListCategories(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	categoryDTOs := make([]dto.CategoryDTO, 0, len(categories))
	for i := range categories {
		categoryDTOs = append(categoryDTOs, convertCategoryModelToDTO(&categories[i]))
	}

	api.SuccessJSON(w, categoryDTOs, nil)
}

// @Summary create category
// @use create a new category, admin only
// @Tags category
// @Accept json
// @Produce json
// @Param categoryInfo body dto.CreateCategoryDTO true "category info"
// @Success 200 {object} api.Response{data=dto.CategoryDTO} "success"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /categories [post]
func (p *ProductHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var createCategoryDTO dto.CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&createCategoryDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, p.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	category, err := p.productService.CreateCategory(ctx, operator, createCategoryDTO.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertCategoryModelToDTO(category), nil)
}

// @Summary update category
// @use rename a category, admin only
// @Tags category
// @Accept json
// @Produce json
// @Param id path int true "category id"
// @Param categoryInfo body dto.UpdateCategoryDTO true "category info"
// @Success 200 {object} api.Response{data=dto.CategoryDTO} "success"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /categories/{id} [put]
func (p *ProductHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(r, "id")
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var updateCategoryDTO dto.UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&updateCategoryDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, p.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	category, err := p.productService.UpdateCategory(ctx, operator, id, updateCategoryDTO.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertCategoryModelToDTO(category), nil)
}

// @Summary delete category
// @use delete a category and its products, admin only
// @Tags category
// @Accept json
// @Produce json
// @Param id path int true "category id"
// @Success 200 {object} api.Response{data=string} "success"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /categories/{id} [delete]
func (p *ProductHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(r, "id")
	if err != nil {
		handleServiceError(w, err)
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, p.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := p.productService.DeleteCategory(ctx, operator, id); err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, nil)
}
