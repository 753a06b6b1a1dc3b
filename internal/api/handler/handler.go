package handler

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
)

// getOperator 從token payload取得當前操作用戶
func getOperator(ctx context.Context, userService service.IUserService) (*model.User, error) {
	payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)
	if payload == nil {
		return nil, er.New(er.UnauthenticatedCode, "unauthenticated")
	}

	user, err := userService.GetUserByID(ctx, payload.UserId)
	if err != nil {
		return nil, er.New(er.UnauthorizedCode, "unauthorized")
	}
	return user, nil
}

// handleServiceError 依服務層錯誤類型回應
func handleServiceError(w http.ResponseWriter, err error) {
	if anaErr, ok := err.(*er.AnaError); ok {
		api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
	} else {
		api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
	}
}

// convertUserModelToDTO 將 User 轉換為 UserDTO
//
// 參數:
//   - model: 用戶模型數據
//
// 返回值:
//   - UserDTO: 轉換後的用戶數據傳輸對象
func convertUserModelToDTO(model *model.User) dto.UserDTO {
	return dto.UserDTO{
		ID:       model.ID.String(),
		Email:    model.Email,
		Role:     string(model.Role),
		IsActive: model.IsActive,
	}
}

func convertProductModelToDTO(model *model.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:          model.ProductID,
		Name:        model.Name,
		Description: model.Description,
		Price:       model.Price,
		CategoryID:  model.CategoryID,
		Image:       model.Image,
	}
}

func convertCategoryModelToDTO(model *model.Category) dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:   model.CategoryID,
		Name: model.Name,
	}
}

func convertCartItemModelToDTO(model *model.CartItem) dto.CartItemDTO {
	return dto.CartItemDTO{
		ID:        model.CartItemID,
		ProductID: model.ProductID,
		Product:   convertProductModelToDTO(&model.Product),
		Quantity:  model.Quantity,
		SubTotal:  model.TotalPrice(),
	}
}

func convertCartSummaryModelToDTO(summary *model.CartSummary) dto.CartSummaryDTO {
	items := make([]dto.CartItemDTO, 0, len(summary.Items))
	for i := range summary.Items {
		items = append(items, convertCartItemModelToDTO(&summary.Items[i]))
	}
	return dto.CartSummaryDTO{
		Items: items,
		Total: summary.Total,
		Count: summary.Count,
	}
}

func convertOrderModelToDTO(model *model.Order) dto.OrderDTO {
	items := make([]dto.OrderItemDTO, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, dto.OrderItemDTO{
			ID:        item.OrderItemID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return dto.OrderDTO{
		ID:          model.OrderID,
		UserID:      model.UserID.String(),
		Status:      string(model.Status),
		TotalAmount: model.TotalAmount,
		Items:       items,
		CreatedAt:   model.CreatedAt,
	}
}
