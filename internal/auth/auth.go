// Package auth handles credential hashing, bearer-token issuance and
// verification, and resolution of the caller's identity and role profiles.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"complainthub/backend/internal/apperr"
	"complainthub/backend/internal/storage"
)

const issuer = "complainthub-service"

// HashPassword produces a one-way bcrypt hash of the credential.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Service issues and verifies tokens and resolves identities. Redis backs
// the revoked-token set used by logout; a nil client disables revocation.
type Service struct {
	Storage  storage.Storage
	Redis    *redis.Client
	Secret   []byte
	TokenTTL time.Duration
	Ctx      context.Context
}

func NewService(st storage.Storage, rdb *redis.Client, secret string, ttl time.Duration) *Service {
	return &Service{
		Storage:  st,
		Redis:    rdb,
		Secret:   []byte(secret),
		TokenTTL: ttl,
		Ctx:      context.Background(),
	}
}

// IssueToken generates a signed token for the account.
func (s *Service) IssueToken(accountID uint) (string, error) {
	claims := jwt.MapClaims{
		"account_id": accountID,
		"exp":        time.Now().Add(s.TokenTTL).Unix(),
		"iss":        issuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// parseToken validates the signature and expiry and extracts the account id.
func (s *Service) parseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperr.ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperr.ErrInvalidCredentials
	}
	raw, ok := claims["account_id"].(float64)
	if !ok {
		return 0, apperr.ErrInvalidCredentials
	}
	return uint(raw), nil
}

// RevokeToken blacklists a still-valid token until its natural expiry.
// Without Redis the token simply ages out.
func (s *Service) RevokeToken(tokenString string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Set(s.Ctx, "revoked:"+tokenString, "1", s.TokenTTL).Err()
}

func (s *Service) isRevoked(tokenString string) (bool, error) {
	if s.Redis == nil {
		return false, nil
	}
	_, err := s.Redis.Get(s.Ctx, "revoked:"+tokenString).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ResolveIdentity turns a bearer token into the caller's account and linked
// role profiles.
func (s *Service) ResolveIdentity(tokenString string) (*Identity, error) {
	revoked, err := s.isRevoked(tokenString)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperr.ErrInvalidCredentials
	}

	accountID, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	account, err := s.Storage.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperr.ErrInvalidCredentials
	}

	ident := &Identity{Account: account}
	if ident.Consumer, err = s.Storage.GetConsumerProfile(accountID); err != nil {
		return nil, err
	}
	if ident.Company, err = s.Storage.GetCompanyProfile(accountID); err != nil {
		return nil, err
	}
	if ident.Admin, err = s.Storage.GetAdministratorProfile(accountID); err != nil {
		return nil, err
	}
	return ident, nil
}
