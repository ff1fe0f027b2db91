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

	"golang.org/x/crypto/bcrypt"
)

func newUserFixture() (UserUsecase, *fakeUserRepo, *fakeTokenStore, *fakeMailer) {
	repo := &fakeUserRepo{}
	tokens := newFakeTokenStore()
	mailer := &fakeMailer{}
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	return NewUserUsecase(testLogger(), repo, jwtService, tokens, mailer), repo, tokens, mailer
}

func TestUserRegisterIssuesToken(t *testing.T) {
	uc, repo, tokens, _ := newUserFixture()

	user, token, err := uc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "rose",
		Email:    "rose@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
	if user.Role != entity.RoleUser || user.Status != entity.UserStatusActive {
		t.Errorf("got role %s status %s, want user/active defaults", user.Role, user.Status)
	}
	if user.Password == "secret123" {
		t.Error("password must be hashed before persisting")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")); err != nil {
		t.Error("stored hash does not match the password")
	}
	if len(repo.users) != 1 {
		t.Error("user not persisted")
	}
	if len(tokens.stored) != 1 {
		t.Error("token id should be stored for revocation")
	}
}

func TestUserRegisterDuplicates(t *testing.T) {
	uc, _, _, _ := newUserFixture()

	req := &dto.RegisterUserRequest{Username: "rose", Email: "rose@example.com", Password: "secret123"}
	if _, _, err := uc.Register(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := uc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "other", Email: "rose@example.com", Password: "secret123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("got %v, want ErrEmailTaken", err)
	}

	_, _, err = uc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "rose", Email: "new@example.com", Password: "secret123",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("got %v, want ErrUsernameTaken", err)
	}
}

func TestUserEmailCaseInsensitive(t *testing.T) {
	uc, repo, _, _ := newUserFixture()

	user, _, err := uc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "amina",
		Email:    "Amina@Example.COM",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "amina@example.com" {
		t.Errorf("got email %q, want it stored lowercased", user.Email)
	}

	if _, _, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email: "amina@example.com", Password: "secret123",
	}); err != nil {
		t.Errorf("lowercase login failed: %v", err)
	}
	if _, _, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email: "AMINA@example.com", Password: "secret123",
	}); err != nil {
		t.Errorf("mixed-case login failed: %v", err)
	}

	_, _, err = uc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "amina2", Email: "AMINA@EXAMPLE.COM", Password: "secret123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("got %v, want ErrEmailTaken for a re-cased duplicate", err)
	}
	if len(repo.users) != 1 {
		t.Errorf("got %d users, want 1", len(repo.users))
	}
}

func TestCreateByAdminIssuesNoSession(t *testing.T) {
	uc, repo, tokens, _ := newUserFixture()

	user, err := uc.CreateByAdmin(context.Background(), &dto.RegisterUserRequest{
		Username: "nurse-joy",
		Email:    "joy@example.com",
		Password: "secret123",
		Role:     string(entity.RoleNurse),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != entity.RoleNurse {
		t.Errorf("got role %s, want nurse", user.Role)
	}
	if len(repo.users) != 1 {
		t.Error("user not persisted")
	}
	if len(tokens.stored) != 0 {
		t.Error("admin-created accounts must not get a login token")
	}
}

func TestUpdateByIDUnknownUser(t *testing.T) {
	uc, _, _, _ := newUserFixture()

	name := "Renamed"
	_, err := uc.UpdateByID(context.Background(), "64f000000000000000000000", &dto.UpdateUserRequest{Name: &name})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestUserLogin(t *testing.T) {
	uc, _, _, _ := newUserFixture()

	if _, _, err := uc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "rose", Email: "rose@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, token, err := uc.Login(context.Background(), &dto.LoginRequest{Email: "rose@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
	if user.LastLogin == nil {
		t.Error("login should record lastLogin")
	}

	if _, _, err := uc.Login(context.Background(), &dto.LoginRequest{Email: "rose@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := uc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestUserLoginSuspended(t *testing.T) {
	uc, repo, _, _ := newUserFixture()

	if _, _, err := uc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "rose", Email: "rose@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.users[0].Status = entity.UserStatusSuspended

	if _, _, err := uc.Login(context.Background(), &dto.LoginRequest{Email: "rose@example.com", Password: "secret123"}); !errors.Is(err, ErrAccountSuspended) {
		t.Errorf("got %v, want ErrAccountSuspended", err)
	}
}

func TestUserLogoutRevokesToken(t *testing.T) {
	uc, repo, tokens, _ := newUserFixture()

	if _, _, err := uc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "rose", Email: "rose@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	userID := repo.users[0].ID.Hex()

	var tokenID string
	for key := range tokens.stored {
		tokenID = strings.TrimPrefix(key, userID+":")
	}
	if err := uc.Logout(context.Background(), userID, tokenID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists, _ := tokens.Exists(context.Background(), userID, tokenID); exists {
		t.Error("token should be gone after logout")
	}
}

func TestRequestPasswordResetUnknownEmailSilent(t *testing.T) {
	uc, _, _, mailer := newUserFixture()

	if err := uc.RequestPasswordReset(context.Background(), "ghost@example.com", "https://app.test"); err != nil {
		t.Errorf("unknown email must not leak an error, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Error("no mail should be sent for an unknown email")
	}
}

func TestRequestPasswordResetSendsLink(t *testing.T) {
	uc, repo, _, mailer := newUserFixture()

	if _, _, err := uc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "rose", Email: "rose@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.RequestPasswordReset(context.Background(), "rose@example.com", "https://app.test/api/v1/users"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatal("expected one mail")
	}

	user := repo.users[0]
	if user.ResetPasswordToken == "" || user.ResetPasswordExpires == nil {
		t.Fatal("reset token not stored")
	}
	wantLink := "https://app.test/api/v1/users/reset-password/" + user.ResetPasswordToken
	if !strings.Contains(mailer.sent[0].HTML, wantLink) {
		t.Errorf("mail body missing reset link %s", wantLink)
	}
}

func TestRequestPasswordResetMailFailureClearsToken(t *testing.T) {
	uc, repo, _, mailer := newUserFixture()
	mailer.fail = true

	if _, _, err := uc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "rose", Email: "rose@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := uc.RequestPasswordReset(context.Background(), "rose@example.com", "https://app.test")
	if !errors.Is(err, ErrEmailSendFailed) {
		t.Errorf("got %v, want ErrEmailSendFailed", err)
	}
	if repo.users[0].ResetPasswordToken != "" {
		t.Error("reset token must be cleared when the mail fails")
	}
}

func TestResetPassword(t *testing.T) {
	uc, repo, _, _ := newUserFixture()

	if _, _, err := uc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "rose", Email: "rose@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.RequestPasswordReset(context.Background(), "rose@example.com", "https://app.test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resetToken := repo.users[0].ResetPasswordToken

	user, token, err := uc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       resetToken,
		NewPassword: "newsecret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("reset should log the user in with a fresh token")
	}
	if user.ResetPasswordToken != "" {
		t.Error("reset token must be single use")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newsecret")); err != nil {
		t.Error("new password not applied")
	}

	if _, _, err := uc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       resetToken,
		NewPassword: "again",
	}); !errors.Is(err, ErrResetTokenInvalid) {
		t.Errorf("reuse: got %v, want ErrResetTokenInvalid", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	uc, repo, _, _ := newUserFixture()

	if _, _, err := uc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "rose", Email: "rose@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.RequestPasswordReset(context.Background(), "rose@example.com", "https://app.test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expired := time.Now().Add(-time.Minute)
	repo.users[0].ResetPasswordExpires = &expired

	if _, _, err := uc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       repo.users[0].ResetPasswordToken,
		NewPassword: "newsecret",
	}); !errors.Is(err, ErrResetTokenInvalid) {
		t.Errorf("got %v, want ErrResetTokenInvalid", err)
	}
}
