package authn

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://idp.example.com"

type jwksFixture struct {
	privateKey jwk.Key
	server     *httptest.Server
	hits       atomic.Int64
}

func newJWKSFixture(t *testing.T) *jwksFixture {
	t.Helper()

	rawKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privateKey, err := jwk.FromRaw(rawKey)
	require.NoError(t, err)
	require.NoError(t, privateKey.Set(jwk.KeyIDKey, "test-key-1"))
	require.NoError(t, privateKey.Set(jwk.AlgorithmKey, jwa.RS256))

	publicKey, err := privateKey.PublicKey()
	require.NoError(t, err)

	publicSet := jwk.NewSet()
	require.NoError(t, publicSet.AddKey(publicKey))

	f := &jwksFixture{privateKey: privateKey}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		buf, err := json.Marshal(publicSet)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(buf)
	}))
	t.Cleanup(f.server.Close)

	return f
}

type tokenOption func(jwt.Token)

func (f *jwksFixture) signToken(t *testing.T, opts ...tokenOption) string {
	t.Helper()

	token := jwt.New()
	require.NoError(t, token.Set(jwt.IssuerKey, testIssuer))
	require.NoError(t, token.Set(jwt.SubjectKey, "subject-1"))
	require.NoError(t, token.Set(jwt.IssuedAtKey, time.Now().Add(-time.Minute)))
	require.NoError(t, token.Set(jwt.ExpirationKey, time.Now().Add(time.Hour)))
	require.NoError(t, token.Set("email", "one@example.com"))
	for _, opt := range opts {
		opt(token)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, f.privateKey))
	require.NoError(t, err)
	return string(signed)
}

func (f *jwksFixture) newVerifier(audience string) *Verifier {
	cache := NewKeySetCache(f.server.URL, time.Hour, 5*time.Second, f.server.Client())
	return NewVerifier(cache, testIssuer, audience)
}

func TestVerify_ValidToken(t *testing.T) {
	f := newJWKSFixture(t)
	v := f.newVerifier("")

	raw := f.signToken(t, func(tok jwt.Token) {
		_ = tok.Set("given_name", "Ada")
		_ = tok.Set("family_name", "Lovelace")
	})

	claims, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "subject-1", claims.Subject)
	assert.Equal(t, "one@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.GivenName)
	assert.Equal(t, "Lovelace", claims.FamilyName)
}

func TestVerify_AltNameClaims(t *testing.T) {
	f := newJWKSFixture(t)
	v := f.newVerifier("")

	raw := f.signToken(t, func(tok jwt.Token) {
		_ = tok.Set("firstName", "Ada")
		_ = tok.Set("lastName", "Lovelace")
	})

	claims, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "Ada", claims.GivenName)
	assert.Equal(t, "Lovelace", claims.FamilyName)
}

func TestVerify_ExpiredToken(t *testing.T) {
	f := newJWKSFixture(t)
	v := f.newVerifier("")

	raw := f.signToken(t, func(tok jwt.Token) {
		_ = tok.Set(jwt.ExpirationKey, time.Now().Add(-time.Hour))
	})

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	f := newJWKSFixture(t)
	v := f.newVerifier("")

	raw := f.signToken(t, func(tok jwt.Token) {
		_ = tok.Set(jwt.IssuerKey, "https://evil.example.com")
	})

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongAudience(t *testing.T) {
	f := newJWKSFixture(t)
	v := f.newVerifier("expected-audience")

	raw := f.signToken(t)

	_, err := v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_UnknownKid(t *testing.T) {
	f := newJWKSFixture(t)
	v := f.newVerifier("")

	// Sign with a key the server never published.
	rawKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	rogueKey, err := jwk.FromRaw(rawKey)
	require.NoError(t, err)
	require.NoError(t, rogueKey.Set(jwk.KeyIDKey, "rogue-key"))

	token := jwt.New()
	require.NoError(t, token.Set(jwt.IssuerKey, testIssuer))
	require.NoError(t, token.Set(jwt.SubjectKey, "subject-1"))
	require.NoError(t, token.Set(jwt.ExpirationKey, time.Now().Add(time.Hour)))
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, rogueKey))
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), string(signed))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_GarbageToken(t *testing.T) {
	f := newJWKSFixture(t)
	v := f.newVerifier("")

	_, err := v.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestKeySetCache_CachesWithinTTL(t *testing.T) {
	f := newJWKSFixture(t)
	cache := NewKeySetCache(f.server.URL, time.Hour, 5*time.Second, f.server.Client())

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	_, err = cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.hits.Load())
}

func TestKeySetCache_RefetchesAfterTTL(t *testing.T) {
	f := newJWKSFixture(t)
	cache := NewKeySetCache(f.server.URL, time.Millisecond, 5*time.Second, f.server.Client())

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), f.hits.Load())
}

func TestKeySetCache_InvalidateForcesRefetch(t *testing.T) {
	f := newJWKSFixture(t)
	cache := NewKeySetCache(f.server.URL, time.Hour, 5*time.Second, f.server.Client())

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), f.hits.Load())
}

func TestKeySetCache_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cache := NewKeySetCache(server.URL, time.Hour, time.Second, server.Client())

	_, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrKeySetUnavailable)
}
