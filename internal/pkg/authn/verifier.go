package authn

import (
	"context"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claims is the verified claim set of an identity provider token.
// Only Subject is guaranteed; the name and email claims depend on the
// provider's session token template.
type Claims struct {
	Subject    string
	Email      string
	GivenName  string
	FamilyName string
	Token      jwt.Token
}

type Verifier struct {
	keys     *KeySetCache
	issuer   string
	audience string // empty disables the audience check
}

func NewVerifier(keys *KeySetCache, issuer, audience string) *Verifier {
	return &Verifier{
		keys:     keys,
		issuer:   issuer,
		audience: audience,
	}
}

// Verify checks the token's signature against the cached key set (matched by
// the kid in the token header), then issuer, expiry and issued-at. It never
// returns claims from a token that failed any of those checks.
func (v *Verifier) Verify(ctx context.Context, raw string) (Claims, error) {
	set, err := v.keys.Get(ctx)
	if err != nil {
		return Claims{}, err
	}

	opts := []jwt.ParseOption{
		jwt.WithKeySet(set,
			jws.WithInferAlgorithmFromKey(true),
			jws.WithRequireKid(true),
		),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithAcceptableSkew(30 * time.Second),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.Parse([]byte(raw), opts...)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return Claims{
		Subject:    token.Subject(),
		Email:      stringClaim(token, "email"),
		GivenName:  firstNonEmpty(stringClaim(token, "given_name"), stringClaim(token, "firstName")),
		FamilyName: firstNonEmpty(stringClaim(token, "family_name"), stringClaim(token, "lastName")),
		Token:      token,
	}, nil
}

func stringClaim(token jwt.Token, name string) string {
	value, ok := token.Get(name)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
