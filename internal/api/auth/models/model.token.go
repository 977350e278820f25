package models

import (
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenPayload data được mã hóa trong access token. Sau khi middleware auth
// verify token, payload được gắn lên request cho các stage phía sau dùng;
// authorizer chỉ đọc từ đây, không query lại user.
type TokenPayload struct {
	UserID       string       `json:"userId"`
	UserType     UserType     `json:"userType"`
	UserStatus   UserStatus   `json:"userStatus"`
	VerifyStatus VerifyStatus `json:"verifyStatus"`
	jwt.RegisteredClaims
}

// UserObjectID chuyển UserID trong payload về ObjectID.
func (p *TokenPayload) UserObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(p.UserID)
}
