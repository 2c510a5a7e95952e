package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/greentrack/greentrack-api/internal/domain/user"
	"github.com/greentrack/greentrack-api/internal/pkg/jwt"
	"github.com/greentrack/greentrack-api/internal/pkg/password"
)

type fakeUserRepo struct {
	created *user.User
	byEmail *user.User
	byID    *user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.created = u
	f.byID = u
	f.byEmail = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.byID != nil && f.byID.ID == id {
		return f.byID, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.byEmail != nil && f.byEmail.Email == email {
		return f.byEmail, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	return nil, nil
}

func newTestService(repo user.Repository) *Service {
	return NewService(repo, jwt.NewService("secret", time.Minute, time.Hour))
}

func TestRegisterDefaultsRoleToCitizen(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if repo.created == nil {
		t.Fatal("expected user to be created")
	}
	if repo.created.Role != user.RoleCitizen {
		t.Fatalf("expected citizen role, got %s", repo.created.Role)
	}
	if repo.created.Email != "asha@example.com" {
		t.Fatalf("expected normalized email, got %s", repo.created.Email)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{byEmail: &user.User{
		ID:    uuid.New(),
		Email: "taken@example.com",
		Role:  user.RoleCitizen,
	}}
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "password123",
	})
	if err != ErrEmailAlreadyExists {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestService(&fakeUserRepo{})

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Someone",
		Email:    "x@example.com",
		Password: "password123",
		Role:     "mayor",
	})
	if err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := password.Hash("correct-password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	repo := &fakeUserRepo{byEmail: &user.User{
		ID:           uuid.New(),
		Email:        "v@example.com",
		PasswordHash: hash,
		Role:         user.RoleVolunteer,
	}}
	svc := newTestService(repo)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "v@example.com",
		Password: "wrong-password",
	})
	if err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, err := password.Hash("correct-password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	u := &user.User{
		ID:           uuid.New(),
		Email:        "v@example.com",
		PasswordHash: hash,
		Role:         user.RoleVolunteer,
	}
	svc := newTestService(&fakeUserRepo{byEmail: u})

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "V@Example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.User.ID != u.ID {
		t.Fatal("expected the stored user in the response")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	jwtService := jwt.NewService("secret", time.Minute, time.Hour)
	u := &user.User{ID: uuid.New(), Email: "v@example.com", Role: user.RoleVolunteer}
	svc := NewService(&fakeUserRepo{byID: u}, jwtService)

	accessToken, err := jwtService.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), accessToken); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRefreshIssuesNewPair(t *testing.T) {
	jwtService := jwt.NewService("secret", time.Minute, time.Hour)
	u := &user.User{ID: uuid.New(), Email: "v@example.com", Role: user.RoleVolunteer}
	svc := NewService(&fakeUserRepo{byID: u}, jwtService)

	refreshToken, err := jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), refreshToken)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Tokens.AccessToken == "" {
		t.Fatal("expected a fresh access token")
	}
}

type failingLookupUserRepo struct {
	fakeUserRepo
	err error
}

func (f *failingLookupUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, f.err
}

type conflictOnCreateUserRepo struct {
	fakeUserRepo
}

func (f *conflictOnCreateUserRepo) Create(ctx context.Context, u *user.User) error {
	return &pq.Error{
		Code:       pq.ErrorCode("23505"),
		Constraint: "users_email_key",
		Message:    "duplicate key value violates unique constraint",
	}
}

func TestRegisterSurfacesLookupFailure(t *testing.T) {
	lookupErr := errors.New("connection reset")
	svc := newTestService(&failingLookupUserRepo{err: lookupErr})

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "password123",
	})
	if err != lookupErr {
		t.Fatalf("expected the lookup error to surface, got %v", err)
	}
}

func TestRegisterMapsUniqueViolationToEmailConflict(t *testing.T) {
	// The pre-insert lookup misses, so the duplicate is only caught by
	// the unique index when the insert runs.
	svc := newTestService(&conflictOnCreateUserRepo{})

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "password123",
	})
	if err != ErrEmailAlreadyExists {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}
