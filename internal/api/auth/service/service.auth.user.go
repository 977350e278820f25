// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "viet_commerce/internal/api/auth/dto"
	models "viet_commerce/internal/api/auth/models"
	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
	"viet_commerce/internal/utility"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng.
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService.
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// Register đăng ký tài khoản Customer mới. Email là duy nhất; mật khẩu được
// hash bcrypt trước khi lưu.
func (s *UserService) Register(ctx context.Context, input *authdto.UserRegisterInput) (models.User, error) {
	var zero models.User

	_, err := s.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err == nil {
		return zero, common.NewError(
			common.ErrCodeBusinessOperation,
			common.Msg("Email is already registered", "Email đã được đăng ký"),
			common.StatusConflict,
			nil,
		)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	hashed, err := utility.HashPassword(input.Password)
	if err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		Password:     hashed,
		Phone:        input.Phone,
		UserType:     models.UserTypeCustomer,
		Status:       models.UserStatusActive,
		VerifyStatus: models.VerifyStatusUnverified,
	}
	created, err := s.InsertOne(ctx, user)
	if err != nil {
		return zero, err
	}

	logrus.WithFields(logrus.Fields{"user_id": created.ID.Hex(), "email": created.Email}).Info("Register: Đăng ký tài khoản thành công")
	return created, nil
}

// Login xác thực email/mật khẩu và phát hành access token. Sai thông tin
// đăng nhập trả về cùng một lỗi chung, không tiết lộ email có tồn tại hay không.
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (models.User, string, error) {
	var zero models.User

	user, err := s.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, "", common.ErrInvalidCredentials
		}
		return zero, "", err
	}

	if !utility.ComparePassword(user.Password, input.Password) {
		return zero, "", common.ErrInvalidCredentials
	}
	if user.Status == models.UserStatusBlocked {
		return zero, "", common.ErrUserBlocked
	}

	ttl := time.Duration(global.MongoDB_ServerConfig.JwtAccessExpireMin) * time.Minute
	token, err := IssueToken(user, []byte(global.MongoDB_ServerConfig.JwtSecret), ttl)
	if err != nil {
		return zero, "", common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex()}).Info("Login: Đăng nhập thành công")
	return user, token, nil
}

// IssueToken tạo access token HS256 chứa TokenPayload của user.
func IssueToken(user models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	payload := models.TokenPayload{
		UserID:       user.ID.Hex(),
		UserType:     user.UserType,
		UserStatus:   user.Status,
		VerifyStatus: user.VerifyStatus,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &payload).SignedString(secret)
}

// ChangePassword đổi mật khẩu sau khi xác nhận mật khẩu cũ.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *authdto.UserChangePasswordInput) error {
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return err
	}
	if !utility.ComparePassword(user.Password, input.OldPassword) {
		return common.NewError(
			common.ErrCodeAuthCredentials,
			common.Msg("Old password is incorrect", "Mật khẩu cũ không chính xác"),
			common.StatusBadRequest,
			nil,
		)
	}

	hashed, err := utility.HashPassword(input.NewPassword)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}
	_, err = s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set: map[string]interface{}{"password": hashed},
	})
	return err
}

// SetBlocked khóa hoặc mở khóa tài khoản kèm ghi chú.
func (s *UserService) SetBlocked(ctx context.Context, userID primitive.ObjectID, block bool, note string) (models.User, error) {
	status := models.UserStatusActive
	if block {
		status = models.UserStatusBlocked
	}
	return s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":    status,
			"blockNote": note,
		},
	})
}

// EnsureAdminUser seed tài khoản admin từ cấu hình nếu email chưa tồn tại.
// Idempotent, gọi lúc khởi động; email/password trống thì bỏ qua.
func (s *UserService) EnsureAdminUser(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	ctx = basesvc.WithSeedDataWriteAllowed(ctx)

	exists, err := s.DocumentExists(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := utility.HashPassword(password)
	if err != nil {
		return err
	}
	created, err := s.InsertOne(ctx, models.User{
		Name:         "Administrator",
		Email:        email,
		Password:     hashed,
		UserType:     models.UserTypeAdmin,
		Status:       models.UserStatusActive,
		VerifyStatus: models.VerifyStatusVerified,
		IsSystem:     true,
	})
	if err != nil && !errors.Is(err, common.ErrDuplicate) {
		return err
	}
	if err == nil {
		logrus.WithField("user_id", created.ID.Hex()).Info("EnsureAdminUser: Đã seed tài khoản admin")
	}
	return nil
}

// FindUserByID lấy user theo ID, dùng bởi auth middleware để kiểm tra lại
// trạng thái tài khoản trên mỗi request.
func (s *UserService) FindUserByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.FindOneById(ctx, id)
}
