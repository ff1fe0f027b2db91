package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/domain/repository"
	"github.com/Moraarn/sistercheck/internal/infrastructure/cache"
	"github.com/Moraarn/sistercheck/pkg/jwt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

var ErrAdminNotFound = errors.New("admin not found")

type AdminUsecase interface {
	Signin(ctx context.Context, req *dto.AdminLoginRequest) (*entity.Admin, string, error)
	Logout(ctx context.Context, adminID, tokenID string) error
	GetByID(ctx context.Context, id string) (*entity.Admin, error)
	UpdateProfile(ctx context.Context, adminID string, req *dto.UpdateAdminProfileRequest) (*entity.Admin, error)
}

type adminUsecase struct {
	log        *logrus.Logger
	repo       repository.AdminRepository
	jwtService *jwt.JWTService
	tokens     cache.TokenStore
}

func NewAdminUsecase(
	log *logrus.Logger,
	repo repository.AdminRepository,
	jwtService *jwt.JWTService,
	tokens cache.TokenStore,
) AdminUsecase {
	return &adminUsecase{
		log:        log,
		repo:       repo,
		jwtService: jwtService,
		tokens:     tokens,
	}
}

func (u *adminUsecase) Signin(ctx context.Context, req *dto.AdminLoginRequest) (*entity.Admin, string, error) {
	admin, err := u.repo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, "", err
	}
	if admin == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, tokenID, err := u.jwtService.GenerateToken(admin.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	if err := u.tokens.Store(ctx, admin.ID.Hex(), tokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store admin token: %+v", err)
		return nil, "", err
	}
	return admin, token, nil
}

func (u *adminUsecase) Logout(ctx context.Context, adminID, tokenID string) error {
	return u.tokens.Revoke(ctx, adminID, tokenID)
}

func (u *adminUsecase) GetByID(ctx context.Context, id string) (*entity.Admin, error) {
	admin, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

func (u *adminUsecase) UpdateProfile(ctx context.Context, adminID string, req *dto.UpdateAdminProfileRequest) (*entity.Admin, error) {
	update := bson.M{}
	if req.Username != nil {
		update["username"] = *req.Username
	}
	if req.Email != nil {
		update["email"] = strings.ToLower(*req.Email)
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		update["password"] = string(hashed)
	}

	admin, err := u.repo.Update(ctx, adminID, update)
	if err != nil {
		u.log.Warnf("Failed to update admin %s: %+v", adminID, err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}
