package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "viet_commerce/internal/api/auth/models"
	"viet_commerce/internal/common"
	"viet_commerce/internal/pipeline"
)

// OwnerResolver trả về owner id của resource đang bị tác động. Resolver
// thường đọc entity đã được custom check load sẵn vào Exchange, tránh
// query lặp.
type OwnerResolver func(c fiber.Ctx, ex *pipeline.Exchange) (primitive.ObjectID, error)

// RequireOwner trả về một authorizer stage so sánh owner id của resource
// với user id trong TokenPayload: bằng nhau thì cho qua, khác thì 403.
func RequireOwner(resolve OwnerResolver) pipeline.Stage {
	return func(c fiber.Ctx) error {
		payload, ok := CurrentPayload(c)
		if !ok {
			return common.ErrTokenMissing
		}
		userID, err := payload.UserObjectID()
		if err != nil {
			return common.ErrTokenInvalid
		}

		ownerID, err := resolve(c, pipeline.CurrentExchange(c))
		if err != nil {
			return err
		}
		if ownerID != userID {
			return common.ErrNotResourceOwner
		}
		return nil
	}
}

// RequireProductOwner là ownership check riêng cho product với ba nhánh
// cố định: Admin được cho qua không cần so sánh, Customer bị từ chối thẳng
// (customer không bao giờ sở hữu product), loại user còn lại so sánh owner
// id như thường.
func RequireProductOwner(resolve OwnerResolver) pipeline.Stage {
	compare := RequireOwner(resolve)
	return func(c fiber.Ctx) error {
		payload, ok := CurrentPayload(c)
		if !ok {
			return common.ErrTokenMissing
		}
		switch payload.UserType {
		case models.UserTypeAdmin:
			return nil
		case models.UserTypeCustomer:
			return common.ErrNotResourceOwner
		}
		return compare(c)
	}
}
