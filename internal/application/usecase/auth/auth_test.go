// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

// fakePasswordService hashes by prefixing, strong enough for use case tests.
type fakePasswordService struct{}

func (s *fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (s *fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

func (s *fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

type fakeTokenService struct{}

func (s *fakeTokenService) GenerateAccessToken(_ context.Context, userID uuid.UUID, email string) (string, error) {
	return fmt.Sprintf("token-%s-%s", userID, email), nil
}

func (s *fakeTokenService) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func authErrorCode(t *testing.T, err error) domainerror.AuthErrorCode {
	t.Helper()
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected an auth error, got %v", err)
	}
	return authErr.Code
}

func TestRegisterUser(t *testing.T) {
	t.Run("normalizes the email and issues a token", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := NewRegisterUserUseCase(repo, &fakePasswordService{}, &fakeTokenService{})

		out, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "  Alice@Example.COM ",
			Name:     "Alice",
			Password: "correct-horse",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %q", out.User.Email)
		}
		if out.AccessToken == "" {
			t.Error("expected an access token")
		}
	})

	t.Run("rejects malformed emails", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserRepo(), &fakePasswordService{}, &fakeTokenService{})
		for _, email := range []string{"", "not-an-email", "missing@tld", "@example.com"} {
			_, err := uc.Execute(context.Background(), RegisterUserInput{Email: email, Name: "X", Password: "correct-horse"})
			if err == nil {
				t.Fatalf("expected an error for email %q", email)
			}
			if code := authErrorCode(t, err); code != domainerror.ErrCodeInvalidCredentials {
				t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCredentials, code)
			}
		}
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserRepo(), &fakePasswordService{}, &fakeTokenService{})
		_, err := uc.Execute(context.Background(), RegisterUserInput{Email: "a@example.com", Name: "A", Password: "short"})
		if code := authErrorCode(t, err); code != domainerror.ErrCodeWeakPassword {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeWeakPassword, code)
		}
	})

	t.Run("rejects duplicate emails case-insensitively", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := NewRegisterUserUseCase(repo, &fakePasswordService{}, &fakeTokenService{})

		if _, err := uc.Execute(context.Background(), RegisterUserInput{Email: "alice@example.com", Name: "Alice", Password: "correct-horse"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := uc.Execute(context.Background(), RegisterUserInput{Email: "ALICE@example.com", Name: "Alice", Password: "correct-horse"})
		if code := authErrorCode(t, err); code != domainerror.ErrCodeUserAlreadyExists {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeUserAlreadyExists, code)
		}
	})
}

func TestLoginUser(t *testing.T) {
	newLoginFixture := func(t *testing.T) (*LoginUserUseCase, *entity.User) {
		t.Helper()
		repo := newFakeUserRepo()
		register := NewRegisterUserUseCase(repo, &fakePasswordService{}, &fakeTokenService{})
		out, err := register.Execute(context.Background(), RegisterUserInput{
			Email:    "alice@example.com",
			Name:     "Alice",
			Password: "correct-horse",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return NewLoginUserUseCase(repo, &fakePasswordService{}, &fakeTokenService{}), out.User
	}

	t.Run("valid credentials", func(t *testing.T) {
		uc, user := newLoginFixture(t)
		out, err := uc.Execute(context.Background(), LoginUserInput{Email: "Alice@Example.com", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.ID != user.ID {
			t.Error("expected the registered user to be returned")
		}
		if out.AccessToken == "" {
			t.Error("expected an access token")
		}
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		uc, _ := newLoginFixture(t)

		_, wrongPassErr := uc.Execute(context.Background(), LoginUserInput{Email: "alice@example.com", Password: "wrong"})
		_, unknownErr := uc.Execute(context.Background(), LoginUserInput{Email: "nobody@example.com", Password: "correct-horse"})

		wrongCode := authErrorCode(t, wrongPassErr)
		unknownCode := authErrorCode(t, unknownErr)

		if wrongCode != domainerror.ErrCodeInvalidCredentials || unknownCode != domainerror.ErrCodeInvalidCredentials {
			t.Errorf("expected both failures to be invalid credentials, got %s and %s", wrongCode, unknownCode)
		}
		if wrongPassErr.Error() != unknownErr.Error() {
			t.Error("expected identical error messages for both failure modes")
		}
	})
}
