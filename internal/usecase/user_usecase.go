package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/domain/repository"
	"github.com/Moraarn/sistercheck/internal/infrastructure/cache"
	"github.com/Moraarn/sistercheck/internal/service"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"
	"github.com/Moraarn/sistercheck/pkg/jwt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrAccountSuspended   = errors.New("your account has been suspended")
	ErrResetTokenInvalid  = errors.New("token is invalid or has expired")
	ErrEmailSendFailed    = errors.New("there was an error sending the email, try again later")
)

const resetTokenTTL = time.Hour

type UserUsecase interface {
	Register(ctx context.Context, req *dto.RegisterUserRequest) (*entity.User, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*entity.User, string, error)
	Logout(ctx context.Context, userID, tokenID string) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	UpdateSelf(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*entity.User, error)
	DeleteSelf(ctx context.Context, userID string) error
	RequestPasswordReset(ctx context.Context, email, resetURLBase string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (*entity.User, string, error)

	// Admin surface.
	CreateByAdmin(ctx context.Context, req *dto.RegisterUserRequest) (*entity.User, error)
	List(ctx context.Context, params map[string]string) (apifeatures.PagedResult, error)
	ListByRole(ctx context.Context, role entity.UserRole, params map[string]string) (apifeatures.PagedResult, error)
	UpdateByID(ctx context.Context, id string, req *dto.UpdateUserRequest) (*entity.User, error)
	DeleteByID(ctx context.Context, id string) error
}

type userUsecase struct {
	log        *logrus.Logger
	repo       repository.UserRepository
	jwtService *jwt.JWTService
	tokens     cache.TokenStore
	mailer     service.Mailer
}

func NewUserUsecase(
	log *logrus.Logger,
	repo repository.UserRepository,
	jwtService *jwt.JWTService,
	tokens cache.TokenStore,
	mailer service.Mailer,
) UserUsecase {
	return &userUsecase{
		log:        log,
		repo:       repo,
		jwtService: jwtService,
		tokens:     tokens,
		mailer:     mailer,
	}
}

func (u *userUsecase) issueToken(ctx context.Context, id string) (string, error) {
	token, tokenID, err := u.jwtService.GenerateToken(id)
	if err != nil {
		return "", err
	}
	if err := u.tokens.Store(ctx, id, tokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store token for %s: %+v", id, err)
		return "", err
	}
	return token, nil
}

func (u *userUsecase) createUser(ctx context.Context, req *dto.RegisterUserRequest) (*entity.User, error) {
	email := strings.ToLower(req.Email)
	existing, err := u.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = u.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := entity.UserRole(req.Role)
	if role == "" {
		role = entity.RoleUser
	}

	user := &entity.User{
		Username:   req.Username,
		Email:      email,
		Password:   string(hashed),
		Name:       req.Name,
		Status:     entity.UserStatusActive,
		Role:       role,
		Age:        req.Age,
		Hospital:   req.Hospital,
		Region:     req.Region,
		ReferredBy: req.ReferralCode,
	}
	if err := u.repo.Create(ctx, user); err != nil {
		u.log.Warnf("Failed to create user %s: %+v", email, err)
		return nil, err
	}
	return user, nil
}

func (u *userUsecase) Register(ctx context.Context, req *dto.RegisterUserRequest) (*entity.User, string, error) {
	user, err := u.createUser(ctx, req)
	if err != nil {
		return nil, "", err
	}

	token, err := u.issueToken(ctx, user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CreateByAdmin provisions an account without logging it in.
func (u *userUsecase) CreateByAdmin(ctx context.Context, req *dto.RegisterUserRequest) (*entity.User, error) {
	return u.createUser(ctx, req)
}

func (u *userUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*entity.User, string, error) {
	user, err := u.repo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if user.Status == entity.UserStatusSuspended {
		return nil, "", ErrAccountSuspended
	}

	now := time.Now()
	if updated, err := u.repo.Update(ctx, user.ID.Hex(), bson.M{"lastLogin": now}); err != nil {
		u.log.Warnf("Failed to record last login for %s: %+v", user.ID.Hex(), err)
	} else if updated != nil {
		user = updated
	}

	token, err := u.issueToken(ctx, user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (u *userUsecase) Logout(ctx context.Context, userID, tokenID string) error {
	return u.tokens.Revoke(ctx, userID, tokenID)
}

func (u *userUsecase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *userUsecase) UpdateSelf(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*entity.User, error) {
	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Phone != nil {
		update["phone"] = *req.Phone
	}
	if req.Avatar != nil {
		update["avatar"] = *req.Avatar
	}
	if req.Bio != nil {
		update["bio"] = *req.Bio
	}
	if req.Age != nil {
		update["age"] = *req.Age
	}
	if req.Hospital != nil {
		update["hospital"] = *req.Hospital
	}
	if req.Region != nil {
		update["region"] = *req.Region
	}
	if req.HealthPreferences != nil {
		update["healthPreferences"] = entity.HealthPreferences{
			Notifications: req.HealthPreferences.Notifications,
			PrivacyLevel:  req.HealthPreferences.PrivacyLevel,
			Language:      req.HealthPreferences.Language,
		}
	}
	if req.EmergencyContact != nil {
		update["emergencyContact"] = entity.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Phone:        req.EmergencyContact.Phone,
			Relationship: req.EmergencyContact.Relationship,
		}
	}

	user, err := u.repo.Update(ctx, userID, update)
	if err != nil {
		u.log.Warnf("Failed to update user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *userUsecase) DeleteSelf(ctx context.Context, userID string) error {
	deleted, err := u.repo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrUserNotFound
	}
	return nil
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// RequestPasswordReset issues a reset token and mails the link. An
// unknown email returns nil so the endpoint cannot be used to probe for
// registered addresses.
func (u *userUsecase) RequestPasswordReset(ctx context.Context, email, resetURLBase string) error {
	user, err := u.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)
	if _, err := u.repo.Update(ctx, user.ID.Hex(), bson.M{
		"resetPasswordToken":   token,
		"resetPasswordExpires": expires,
	}); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", resetURLBase, token)
	result := u.mailer.Send(service.Mail{
		To:      []string{user.Email},
		Subject: "Your password reset token (valid for 1 hour)",
		HTML: fmt.Sprintf(
			"<p>Forgot your password? Follow the link below to set a new one.</p>"+
				"<p><a href=%q>%s</a></p>"+
				"<p>If you didn't request a password reset, please ignore this email.</p>",
			resetURL, resetURL,
		),
	})
	if !result.Success {
		// Undo the token so a failed send does not leave a live reset
		// credential behind.
		if _, err := u.repo.Update(ctx, user.ID.Hex(), bson.M{
			"resetPasswordToken":   "",
			"resetPasswordExpires": nil,
		}); err != nil {
			u.log.Warnf("Failed to clear reset token for %s: %+v", user.ID.Hex(), err)
		}
		return ErrEmailSendFailed
	}
	return nil
}

func (u *userUsecase) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (*entity.User, string, error) {
	user, err := u.repo.FindByResetToken(ctx, req.Token)
	if err != nil {
		return nil, "", err
	}
	if user == nil || user.ResetPasswordExpires == nil || user.ResetPasswordExpires.Before(time.Now()) {
		return nil, "", ErrResetTokenInvalid
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	updated, err := u.repo.Update(ctx, user.ID.Hex(), bson.M{
		"password":             string(hashed),
		"resetPasswordToken":   "",
		"resetPasswordExpires": nil,
	})
	if err != nil {
		return nil, "", err
	}
	if updated == nil {
		return nil, "", ErrUserNotFound
	}

	token, err := u.issueToken(ctx, updated.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return updated, token, nil
}

func (u *userUsecase) List(ctx context.Context, params map[string]string) (apifeatures.PagedResult, error) {
	return u.repo.List(ctx, bson.M{}, params)
}

func (u *userUsecase) ListByRole(ctx context.Context, role entity.UserRole, params map[string]string) (apifeatures.PagedResult, error) {
	return u.repo.List(ctx, bson.M{"role": role}, params)
}

func (u *userUsecase) UpdateByID(ctx context.Context, id string, req *dto.UpdateUserRequest) (*entity.User, error) {
	return u.UpdateSelf(ctx, id, req)
}

func (u *userUsecase) DeleteByID(ctx context.Context, id string) error {
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrUserNotFound
	}
	return nil
}
