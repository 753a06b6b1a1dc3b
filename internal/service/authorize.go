package service

import (
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceCatalog Resource = "catalog"
	ResourceCart    Resource = "cart"
	ResourceOrder   Resource = "order"
)

// Authorize 統一的授權檢查，所有handler與service共用同一份policy
//
// 規則:
//   - catalog: 讀取開放所有人，寫入僅限admin
//   - cart: 登入用戶皆可操作，擁有權檢查由cart service負責
//   - order: 讀取開放登入用戶(查詢範圍由order service縮限)，寫入僅限admin
//
// 錯誤:
//   - er.UnauthorizedCode 403: 權限不足
func Authorize(operator *model.User, action Action, resource Resource) error {
	if operator == nil {
		return er.New(er.UnauthorizedCode, "unauthorized")
	}

	switch resource {
	case ResourceCatalog, ResourceOrder:
		if action == ActionRead {
			return nil
		}
		if !operator.IsAdmin() {
			return er.New(er.UnauthorizedCode, "admin role required")
		}
		return nil
	case ResourceCart:
		return nil
	default:
		return er.New(er.UnauthorizedCode, "unknown resource")
	}
}
