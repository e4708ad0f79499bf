package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrihub/internal/domain"
	profilerepo "agrihub/internal/repository/profile"
	tokenrepo "agrihub/internal/repository/token"
	"golang.org/x/crypto/bcrypt"
)

type stubProfileRepo struct {
	byEmail   *domain.Profile
	byID      *domain.Profile
	created   *domain.Profile
	createErr error
	emailErr  error
	idErr     error
	lastEmail string
}

func (s *stubProfileRepo) Create(_ context.Context, p domain.Profile) (*domain.Profile, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	out := p
	out.ID = "new-id"
	s.created = &out
	return &out, nil
}

func (s *stubProfileRepo) GetByID(_ context.Context, _ string) (*domain.Profile, error) {
	return s.byID, s.idErr
}

func (s *stubProfileRepo) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	s.lastEmail = email
	if s.emailErr != nil {
		return nil, s.emailErr
	}
	return s.byEmail, nil
}

func (s *stubProfileRepo) Update(_ context.Context, _ string, _ profilerepo.UpdateInput) (*domain.Profile, error) {
	return nil, errors.New("not implemented")
}

func (s *stubProfileRepo) List(_ context.Context, _ domain.Role) ([]domain.Profile, error) {
	return nil, nil
}

type stubTokenRepo struct {
	tokens    map[string]tokenrepo.Token
	createErr error
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (s *stubTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	s.tokens[t.Token] = t
	return nil
}

func (s *stubTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (s *stubTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := s.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(s.tokens, token)
	return nil
}

func (s *stubTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func TestSignupValidation(t *testing.T) {
	svc := New(&stubProfileRepo{}, newStubTokenRepo())

	cases := []struct {
		name string
		in   SignupInput
	}{
		{"missing email", SignupInput{Password: "Password1"}},
		{"short password", SignupInput{Email: "a@b.c", Password: "Pw1"}},
		{"no digit", SignupInput{Email: "a@b.c", Password: "Passwords"}},
		{"bad role", SignupInput{Email: "a@b.c", Password: "Password1", Role: "overlord"}},
		{"admin role", SignupInput{Email: "a@b.c", Password: "Password1", Role: "admin"}},
	}
	for _, tc := range cases {
		if _, err := svc.Signup(context.Background(), tc.in); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestSignupDefaultsToBuyer(t *testing.T) {
	repo := &stubProfileRepo{}
	svc := New(repo, newStubTokenRepo())
	p, err := svc.Signup(context.Background(), SignupInput{Email: "Farmer@Example.com", Password: "Password1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Role != domain.RoleBuyer {
		t.Fatalf("expected buyer role, got %s", p.Role)
	}
	if repo.created.Email != "farmer@example.com" {
		t.Fatalf("expected lowercased email, got %s", repo.created.Email)
	}
	if repo.created.PasswordHash == "Password1" || repo.created.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestLoginHappyPath(t *testing.T) {
	repo := &stubProfileRepo{
		byEmail: &domain.Profile{ID: "u1", Email: "a@b.c", PasswordHash: hash(t, "Password1"), Role: domain.RoleFarmer},
	}
	svc := New(repo, newStubTokenRepo())

	p, access, refresh, err := svc.Login(context.Background(), "A@B.C", "Password1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "u1" || access == "" || refresh == "" || access == refresh {
		t.Fatalf("unexpected login result: %+v %q %q", p, access, refresh)
	}
	if repo.lastEmail != "a@b.c" {
		t.Fatalf("expected normalized email lookup, got %q", repo.lastEmail)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := &stubProfileRepo{
		byEmail: &domain.Profile{ID: "u1", PasswordHash: hash(t, "Password1")},
	}
	svc := New(repo, newStubTokenRepo())

	if _, _, _, err := svc.Login(context.Background(), "a@b.c", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	repo.emailErr = domain.ErrNotFound
	if _, _, _, err := svc.Login(context.Background(), "ghost@b.c", "Password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLookupByToken(t *testing.T) {
	tokens := newStubTokenRepo()
	repo := &stubProfileRepo{
		byEmail: &domain.Profile{ID: "u1", PasswordHash: hash(t, "Password1")},
		byID:    &domain.Profile{ID: "u1", Email: "a@b.c"},
	}
	svc := New(repo, tokens)

	_, access, refresh, err := svc.Login(context.Background(), "a@b.c", "Password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	p, err := svc.LookupByToken(context.Background(), access)
	if err != nil || p.ID != "u1" {
		t.Fatalf("expected profile for access token, got %v / %v", p, err)
	}

	// Refresh tokens must not authenticate requests.
	if _, err := svc.LookupByToken(context.Background(), refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for refresh token, got %v", err)
	}

	if _, err := svc.LookupByToken(context.Background(), "bogus"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestExpiredTokenRejectedAndDeleted(t *testing.T) {
	tokens := newStubTokenRepo()
	tokens.tokens["stale"] = tokenrepo.Token{
		Token:     "stale",
		UserID:    "u1",
		Kind:      "access",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	svc := New(&stubProfileRepo{byID: &domain.Profile{ID: "u1"}}, tokens)

	if _, err := svc.LookupByToken(context.Background(), "stale"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, ok := tokens.tokens["stale"]; ok {
		t.Fatalf("expected expired token removed")
	}
}

func TestLogoutUnknownTokenIsNoop(t *testing.T) {
	svc := New(&stubProfileRepo{}, newStubTokenRepo())
	if err := svc.Logout(context.Background(), "ghost"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
