package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/authn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://idp.test"

type stubUserService struct {
	resolve func(ctx context.Context, claims authn.Claims) (user.User, error)
}

func (s *stubUserService) Resolve(ctx context.Context, claims authn.Claims) (user.User, error) {
	return s.resolve(ctx, claims)
}

func (s *stubUserService) Sync(ctx context.Context, req user.SyncUserRequest) (user.SyncUserResponse, error) {
	panic("not used")
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	panic("not used")
}

func (s *stubUserService) GetUser(ctx context.Context, subjectID string) (user.UserResponse, error) {
	panic("not used")
}

func (s *stubUserService) UpdateUser(ctx context.Context, subjectID string, req user.UpdateUserRequest) (user.UserResponse, error) {
	panic("not used")
}

func (s *stubUserService) DeactivateUser(ctx context.Context, subjectID string) error {
	panic("not used")
}

type authFixture struct {
	privateKey jwk.Key
	verifier   *authn.Verifier
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	rawKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privateKey, err := jwk.FromRaw(rawKey)
	require.NoError(t, err)
	require.NoError(t, privateKey.Set(jwk.KeyIDKey, "test-key-1"))
	require.NoError(t, privateKey.Set(jwk.AlgorithmKey, jwa.RS256))

	publicKey, err := privateKey.PublicKey()
	require.NoError(t, err)
	set := jwk.NewSet()
	require.NoError(t, set.AddKey(publicKey))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(set)
	}))
	t.Cleanup(server.Close)

	cache := authn.NewKeySetCache(server.URL, time.Hour, 5*time.Second, server.Client())
	return &authFixture{
		privateKey: privateKey,
		verifier:   authn.NewVerifier(cache, testIssuer, ""),
	}
}

func (f *authFixture) signToken(t *testing.T) string {
	t.Helper()

	token, err := jwt.NewBuilder().
		Issuer(testIssuer).
		Subject("subject-1").
		IssuedAt(time.Now()).
		Expiration(time.Now().Add(time.Hour)).
		Claim("email", "jane@example.com").
		Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, f.privateKey))
	require.NoError(t, err)
	return string(signed)
}

func passthroughHandler(called *bool, capture *user.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if u, ok := UserFromContext(r.Context()); ok && capture != nil {
			*capture = u
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	fixture := newAuthFixture(t)
	service := &stubUserService{}
	called := false

	handler := Authenticate(fixture.verifier, service)(passthroughHandler(&called, nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing or malformed authorization header")
	assert.False(t, called)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	fixture := newAuthFixture(t)
	service := &stubUserService{}

	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		called := false
		handler := Authenticate(fixture.verifier, service)(passthroughHandler(&called, nil))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.False(t, called, "header %q", header)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	fixture := newAuthFixture(t)
	service := &stubUserService{}
	called := false

	handler := Authenticate(fixture.verifier, service)(passthroughHandler(&called, nil))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
	assert.False(t, called)
}

func TestAuthenticate_AttachesResolvedUser(t *testing.T) {
	fixture := newAuthFixture(t)
	service := &stubUserService{
		resolve: func(ctx context.Context, claims authn.Claims) (user.User, error) {
			assert.Equal(t, "subject-1", claims.Subject)
			assert.Equal(t, "jane@example.com", claims.Email)
			return user.User{SubjectID: claims.Subject, Role: user.RoleEmployee, IsActive: true}, nil
		},
	}
	called := false
	var resolved user.User

	handler := Authenticate(fixture.verifier, service)(passthroughHandler(&called, &resolved))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+fixture.signToken(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, "subject-1", resolved.SubjectID)
}

func TestAuthenticate_InactiveAccountForbidden(t *testing.T) {
	fixture := newAuthFixture(t)
	service := &stubUserService{
		resolve: func(ctx context.Context, claims authn.Claims) (user.User, error) {
			return user.User{}, user.ErrAccountInactive
		},
	}
	called := false

	handler := Authenticate(fixture.verifier, service)(passthroughHandler(&called, nil))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+fixture.signToken(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Account is inactive")
	assert.False(t, called)
}
