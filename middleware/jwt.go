package middleware

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"travel-portal/config"
	"travel-portal/constants"
	"travel-portal/types"
	"travel-portal/types/user"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// ProfileResolver looks up the owner of an opaque token.
type ProfileResolver interface {
	Profile(ctx context.Context, token string) (*user.User, error)
}

// FetchPublicKey fetches a PEM encoded RSA public key served as {"key": "..."}.
func FetchPublicKey(client *http.Client, url string) (*rsa.PublicKey, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public key: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	keyResponse := struct {
		Key string `json:"key"`
	}{}
	if err := json.Unmarshal(body, &keyResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal public key response: %w", err)
	}

	block, _ := pem.Decode([]byte(keyResponse.Key))
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("failed to decode PEM block containing public key")
	}

	pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPubKey, ok := pubKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key")
	}
	return rsaPubKey, nil
}

// Verifier turns a bearer token into a Principal. It checks an HS256
// signature when a secret is configured, an RS256 signature when a public
// key URL is configured, and otherwise asks the user service who owns
// the token.
type Verifier struct {
	secret   []byte
	keyURL   string
	resolver ProfileResolver
	client   *http.Client

	mu  sync.Mutex
	key *rsa.PublicKey
}

func NewVerifier(cfg config.AuthConfig, resolver ProfileResolver) *Verifier {
	v := &Verifier{
		keyURL:   cfg.PublicKeyURL,
		resolver: resolver,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	if cfg.JWTSecret != "" {
		v.secret = []byte(cfg.JWTSecret)
	}
	return v
}

// publicKey fetches the key on first use and caches it. A failed fetch is
// retried on the next request.
func (v *Verifier) publicKey() (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.key != nil {
		return v.key, nil
	}
	key, err := FetchPublicKey(v.client, v.keyURL)
	if err != nil {
		return nil, err
	}
	v.key = key
	return key, nil
}

func (v *Verifier) Resolve(ctx context.Context, token string) (types.Principal, error) {
	switch {
	case v.secret != nil:
		return v.parse(token, jwt.SigningMethodHS256.Alg(), func(*jwt.Token) (interface{}, error) {
			return v.secret, nil
		})
	case v.keyURL != "":
		key, err := v.publicKey()
		if err != nil {
			return types.Principal{}, err
		}
		return v.parse(token, jwt.SigningMethodRS256.Alg(), func(*jwt.Token) (interface{}, error) {
			return key, nil
		})
	case v.resolver != nil:
		u, err := v.resolver.Profile(ctx, token)
		if err != nil {
			return types.Principal{}, err
		}
		return types.Principal{
			UserID: u.ID,
			Email:  u.Email,
			Name:   u.Name,
			Role:   NormalizeRole(u.Role),
			Token:  token,
		}, nil
	default:
		return types.Principal{}, fmt.Errorf("no token verification method configured")
	}
}

func (v *Verifier) parse(token, alg string, keyFunc jwt.Keyfunc) (types.Principal, error) {
	parsed, err := jwt.Parse(token, keyFunc, jwt.WithValidMethods([]string{alg}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return types.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return types.Principal{}, ErrInvalidToken
	}

	p := PrincipalFromClaims(claims)
	if p.UserID == "" {
		return types.Principal{}, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	p.Token = token
	return p, nil
}

// PrincipalFromClaims reads the caller from the claim names the user
// service issues.
func PrincipalFromClaims(claims jwt.MapClaims) types.Principal {
	p := types.Principal{
		UserID: firstString(claims, "userId", "id", "uuid", "sub"),
		Email:  firstString(claims, "email", "userEmail"),
		Name:   firstString(claims, "name", "userName", "username"),
		Role:   firstString(claims, "role"),
	}
	if p.Role == "" {
		if roles, ok := claims["roles"].([]interface{}); ok && len(roles) > 0 {
			p.Role, _ = roles[0].(string)
		}
	}
	p.Role = NormalizeRole(p.Role)
	return p
}

// NormalizeRole maps "role_admin" style values to the role constants.
func NormalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	role = strings.TrimPrefix(role, "ROLE_")
	if role == "" {
		return constants.RoleUser
	}
	return role
}

func firstString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
