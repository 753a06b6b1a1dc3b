package constants

// 商品列表允許的排序鍵，未知排序鍵一律拒絕
type ProductOrderingEnum string

const (
	OrderingPriceAsc  ProductOrderingEnum = "price"
	OrderingPriceDesc ProductOrderingEnum = "-price"
	OrderingNameAsc   ProductOrderingEnum = "name"
	OrderingNameDesc  ProductOrderingEnum = "-name"
)

func IsValidProductOrdering(ordering string) bool {
	switch ProductOrderingEnum(ordering) {
	case OrderingPriceAsc, OrderingPriceDesc, OrderingNameAsc, OrderingNameDesc:
		return true
	default:
		return false
	}
}

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
)

type TokenDurationHour int

const (
	AccessTokenDuration  TokenDurationHour = 24
	RefreshTokenDuration TokenDurationHour = 72
)

// 密碼重設token有效時間(分鐘)
const ResetTokenDurationMinute = 15

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)
