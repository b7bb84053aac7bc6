package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/test"
)

func TestAuthUseCaseRegister(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(*test.UserRepositoryStub)
		wantErr  error
	}{
		{
			name:     "success",
			email:    "Ada@Example.com",
			password: "secret",
		},
		{
			name:     "invalid email",
			email:    "not-an-email",
			password: "secret",
			wantErr:  domainErrors.ErrInvalidCredentials,
		},
		{
			name:     "empty password",
			email:    "ada@example.com",
			password: "",
			wantErr:  domainErrors.ErrInvalidCredentials,
		},
		{
			name:     "duplicate email",
			email:    "ada@example.com",
			password: "secret",
			setup: func(users *test.UserRepositoryStub) {
				if _, err := users.Create(context.Background(), "ada@example.com", "hash:other"); err != nil {
					panic(err)
				}
			},
			wantErr: domainErrors.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := test.NewUserRepositoryStub()
			if tt.setup != nil {
				tt.setup(users)
			}
			uc := NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{})

			usr, token, err := uc.Register(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if usr.Email != "ada@example.com" {
				t.Fatalf("email not normalized: %q", usr.Email)
			}
			if token == "" {
				t.Fatal("expected token")
			}
		})
	}
}

func TestAuthUseCaseRegisterThenAuthenticate(t *testing.T) {
	ctx := context.Background()
	email := test.RandomEmail()
	password := test.RandomPassword()
	uc := NewAuthUseCase(test.NewUserRepositoryStub(), test.HasherStub{}, test.StrategyStub{})

	if _, _, err := uc.Register(ctx, email, password); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, token, err := uc.Authenticate(ctx, email, password); err != nil || token == "" {
		t.Fatalf("authenticate after register: token %q, err %v", token, err)
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := test.NewUserRepositoryStub()
	if _, err := users.Create(ctx, "ada@example.com", "hash:secret"); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	uc := NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "success", email: "ada@example.com", password: "secret"},
		{name: "case insensitive email", email: "ADA@example.com", password: "secret"},
		{name: "wrong password", email: "ada@example.com", password: "nope", wantErr: domainErrors.ErrInvalidCredentials},
		{name: "unknown user", email: "bob@example.com", password: "secret", wantErr: domainErrors.ErrInvalidCredentials},
		{name: "empty credentials", email: "", password: "", wantErr: domainErrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, token, err := uc.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token == "" {
				t.Fatal("expected token")
			}
		})
	}
}

func TestAuthUseCaseIdentity(t *testing.T) {
	ctx := context.Background()
	users := test.NewUserRepositoryStub()
	usr, err := users.Create(ctx, "ada@example.com", "hash:secret")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	uc := NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{})

	identity, err := uc.Identity(ctx, usr.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.UserID != usr.ID || identity.Email != "ada@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	if _, err := uc.Identity(ctx, 999); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := NewAuthUseCase(test.NewUserRepositoryStub(), test.HasherStub{}, test.StrategyStub{
		ParseFn: func(token string) (int64, error) {
			if token != "valid" {
				return 0, errors.New("bad token")
			}
			return 42, nil
		},
	})

	id, err := uc.ParseToken("valid")
	if err != nil || id != 42 {
		t.Fatalf("expected 42, got %d (%v)", id, err)
	}
	if _, err := uc.ParseToken(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}
