package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Moraarn/sistercheck/config"
	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/pkg/jwt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	admins []*entity.Admin
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *entity.Admin) error {
	admin.ID = primitive.NewObjectID()
	f.admins = append(f.admins, admin)
	return nil
}

func (f *fakeAdminRepo) FindByID(ctx context.Context, id string) (*entity.Admin, error) {
	for _, a := range f.admins {
		if a.ID.Hex() == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) Update(ctx context.Context, id string, update bson.M) (*entity.Admin, error) {
	admin, _ := f.FindByID(ctx, id)
	if admin == nil {
		return nil, nil
	}
	if email, ok := update["email"].(string); ok {
		admin.Email = email
	}
	if username, ok := update["username"].(string); ok {
		admin.Username = username
	}
	if password, ok := update["password"].(string); ok {
		admin.Password = password
	}
	return admin, nil
}

func newAdminFixture(t *testing.T) (AdminUsecase, *fakeAdminRepo, *fakeTokenStore) {
	t.Helper()
	repo := &fakeAdminRepo{}
	tokens := newFakeTokenStore()
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-secret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := repo.Create(context.Background(), &entity.Admin{
		Username: "root",
		Email:    "admin@sistercheck.com",
		Password: string(hashed),
		Role:     "admin",
	}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return NewAdminUsecase(testLogger(), repo, jwtService, tokens), repo, tokens
}

func TestAdminSigninEmailCaseInsensitive(t *testing.T) {
	uc, _, tokens := newAdminFixture(t)

	admin, token, err := uc.Signin(context.Background(), &dto.AdminLoginRequest{
		Email: "Admin@SisterCheck.COM", Password: "admin-secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
	if admin.Username != "root" {
		t.Errorf("got username %s, want root", admin.Username)
	}
	if len(tokens.stored) != 1 {
		t.Error("token id should be stored for revocation")
	}
}

func TestAdminSigninRejectsBadCredentials(t *testing.T) {
	uc, _, _ := newAdminFixture(t)

	_, _, err := uc.Signin(context.Background(), &dto.AdminLoginRequest{
		Email: "admin@sistercheck.com", Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}

	_, _, err = uc.Signin(context.Background(), &dto.AdminLoginRequest{
		Email: "nobody@sistercheck.com", Password: "admin-secret",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestAdminUpdateProfileLowercasesEmail(t *testing.T) {
	uc, repo, _ := newAdminFixture(t)
	id := repo.admins[0].ID.Hex()

	email := "Root@SisterCheck.COM"
	admin, err := uc.UpdateProfile(context.Background(), id, &dto.UpdateAdminProfileRequest{Email: &email})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.Email != strings.ToLower(email) {
		t.Errorf("got email %q, want it stored lowercased", admin.Email)
	}
}
