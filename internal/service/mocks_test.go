package service

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockUserRepo implements db.IUserRepository for testing
type MockUserRepo struct {
	Users       map[uuid.UUID]*model.User
	ResetTokens map[string]*model.PasswordResetToken
	CreateErr   error
	nextTokenID uint
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{
		Users:       map[uuid.UUID]*model.User{},
		ResetTokens: map[string]*model.PasswordResetToken{},
	}
}

func (m *MockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *MockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	user, ok := m.Users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (m *MockUserRepo) CreateResetToken(_ context.Context, token *model.PasswordResetToken) error {
	m.nextTokenID++
	token.ID = m.nextTokenID
	m.ResetTokens[token.TokenHash] = token
	return nil
}

func (m *MockUserRepo) GetResetTokenByHash(_ context.Context, tokenHash string) (*model.PasswordResetToken, error) {
	token, ok := m.ResetTokens[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return token, nil
}

func (m *MockUserRepo) MarkResetTokenUsed(_ context.Context, id uint) error {
	for _, token := range m.ResetTokens {
		if token.ID == id {
			token.IsUsed = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *MockUserRepo) DeleteExpiredResetTokens(_ context.Context, before time.Time) error {
	for hash, token := range m.ResetTokens {
		if token.ExpiresAt.Before(before) {
			delete(m.ResetTokens, hash)
		}
	}
	return nil
}

// MockProductRepo implements db.IProductRepository for testing
type MockProductRepo struct {
	Products      map[uint]*model.Product
	Categories    map[uint]*model.Category
	ListErr       error
	nextProductID uint
	nextCatID     uint
}

func NewMockProductRepo() *MockProductRepo {
	return &MockProductRepo{
		Products:   map[uint]*model.Product{},
		Categories: map[uint]*model.Category{},
	}
}

func (m *MockProductRepo) CreateProduct(_ context.Context, product *model.Product) error {
	m.nextProductID++
	product.ProductID = m.nextProductID
	m.Products[product.ProductID] = product
	return nil
}

func (m *MockProductRepo) GetProductByID(_ context.Context, id uint) (*model.Product, error) {
	product, ok := m.Products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (m *MockProductRepo) ListProducts(_ context.Context, _ db.ProductFilter) ([]model.Product, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var products []model.Product
	for _, product := range m.Products {
		products = append(products, *product)
	}
	return products, nil
}

func (m *MockProductRepo) UpdateProductFields(_ context.Context, id uint, updates map[string]interface{}) error {
	product, ok := m.Products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		product.Name = name
	}
	return nil
}

func (m *MockProductRepo) DeleteProduct(_ context.Context, id uint) error {
	delete(m.Products, id)
	return nil
}

func (m *MockProductRepo) CreateCategory(_ context.Context, category *model.Category) error {
	m.nextCatID++
	category.CategoryID = m.nextCatID
	m.Categories[category.CategoryID] = category
	return nil
}

func (m *MockProductRepo) GetCategoryByID(_ context.Context, id uint) (*model.Category, error) {
	category, ok := m.Categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (m *MockProductRepo) ListCategories(_ context.Context) ([]model.Category, error) {
	var categories []model.Category
	for _, category := range m.Categories {
		categories = append(categories, *category)
	}
	return categories, nil
}

func (m *MockProductRepo) UpdateCategory(_ context.Context, category *model.Category) error {
	m.Categories[category.CategoryID] = category
	return nil
}

func (m *MockProductRepo) DeleteCategory(_ context.Context, id uint) error {
	delete(m.Categories, id)
	return nil
}

// MockCartRepo implements db.ICartRepository for testing
type MockCartRepo struct {
	Items     map[uint]*model.CartItem
	CreateErr error
	// MissFirstLookup 讓第一次查詢落空，模擬競爭請求在查詢與新增之間插入同商品列
	MissFirstLookup bool
	nextItemID      uint
}

func NewMockCartRepo() *MockCartRepo {
	return &MockCartRepo{
		Items: map[uint]*model.CartItem{},
	}
}

func (m *MockCartRepo) GetCartItems(_ context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	for _, item := range m.Items {
		if item.UserID == userID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *MockCartRepo) GetCartItemByID(_ context.Context, id uint) (*model.CartItem, error) {
	item, ok := m.Items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (m *MockCartRepo) GetCartItemByUserAndProduct(_ context.Context, userID uuid.UUID, productID uint) (*model.CartItem, error) {
	if m.MissFirstLookup {
		m.MissFirstLookup = false
		return nil, gorm.ErrRecordNotFound
	}
	for _, item := range m.Items {
		if item.UserID == userID && item.ProductID == productID {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCartRepo) CreateCartItem(_ context.Context, item *model.CartItem) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.nextItemID++
	item.CartItemID = m.nextItemID
	m.Items[item.CartItemID] = item
	return nil
}

func (m *MockCartRepo) UpdateCartItemQuantity(_ context.Context, id uint, quantity int) error {
	item, ok := m.Items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Quantity = quantity
	return nil
}

func (m *MockCartRepo) DeleteCartItem(_ context.Context, id uint) error {
	delete(m.Items, id)
	return nil
}

func (m *MockCartRepo) ClearCart(_ context.Context, userID uuid.UUID) error {
	for id, item := range m.Items {
		if item.UserID == userID {
			delete(m.Items, id)
		}
	}
	return nil
}

// MockOrderRepo implements db.IOrderRepository for testing
type MockOrderRepo struct {
	Orders         map[uint]*model.Order
	CheckoutErr    error
	UpdatedStatus  *model.OrderStatus
	DeletedOrderID *uint
	nextOrderID    uint
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		Orders: map[uint]*model.Order{},
	}
}

func (m *MockOrderRepo) CheckoutCart(_ context.Context, userID uuid.UUID) (*model.Order, error) {
	if m.CheckoutErr != nil {
		return nil, m.CheckoutErr
	}
	m.nextOrderID++
	order := &model.Order{
		OrderID: m.nextOrderID,
		UserID:  userID,
		Status:  model.OrderStatusPending,
	}
	m.Orders[order.OrderID] = order
	return order, nil
}

func (m *MockOrderRepo) GetOrderByID(_ context.Context, id uint) (*model.Order, error) {
	order, ok := m.Orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (m *MockOrderRepo) GetOrdersByUserID(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	for _, order := range m.Orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *MockOrderRepo) GetAllOrders(_ context.Context) ([]model.Order, error) {
	var orders []model.Order
	for _, order := range m.Orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (m *MockOrderRepo) UpdateOrderStatus(_ context.Context, id uint, status model.OrderStatus) error {
	order, ok := m.Orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	m.UpdatedStatus = &status
	return nil
}

func (m *MockOrderRepo) DeleteOrder(_ context.Context, id uint) error {
	delete(m.Orders, id)
	m.DeletedOrderID = &id
	return nil
}

// MockMailService implements IMailService for testing
type MockMailService struct {
	Sent []PasswordResetMailData
	Err  error
}

func (m *MockMailService) SendPasswordResetEmail(_ context.Context, data PasswordResetMailData) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, data)
	return nil
}
