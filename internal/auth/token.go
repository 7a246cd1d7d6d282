package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"adminbase/internal/errs"

	"github.com/golang-jwt/jwt/v5"
)

// SchemePrefix 访问令牌携带的认证方案前缀
const SchemePrefix = "Bearer "

// Claims represents the signed payload of a session token.
type Claims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// TokenPair 登录成功后下发的令牌对
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService encapsulates issuing and verifying signed session tokens.
// There is no revocation list: an issued token remains valid until expiry.
type TokenService struct {
	secret        []byte
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewTokenService creates a token service with separate access/refresh expiries.
func NewTokenService(secret, issuer string, accessExpiry, refreshExpiry time.Duration) (*TokenService, error) {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if accessExpiry <= 0 {
		accessExpiry = time.Hour
	}
	if refreshExpiry <= 0 {
		refreshExpiry = time.Hour * 24 * 7
	}
	if strings.TrimSpace(issuer) == "" {
		issuer = "adminbase"
	}
	return &TokenService{
		secret:        []byte(trimmed),
		issuer:        issuer,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}, nil
}

// IssuePair 为登录成功的用户签发访问令牌与刷新令牌
func (s *TokenService) IssuePair(userID uint) (*TokenPair, error) {
	if s == nil {
		return nil, errors.New("token service is nil")
	}
	if userID == 0 {
		return nil, errors.New("invalid user for token generation")
	}
	access, err := s.sign(userID, s.accessExpiry)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(userID, s.refreshExpiry)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  SchemePrefix + access,
		RefreshToken: refresh,
	}, nil
}

// Refresh 在不重新认证的情况下签发新的访问令牌
func (s *TokenService) Refresh(userID uint) (string, error) {
	if s == nil {
		return "", errors.New("token service is nil")
	}
	if userID == 0 {
		return "", errors.New("invalid user for token refresh")
	}
	access, err := s.sign(userID, s.accessExpiry)
	if err != nil {
		return "", err
	}
	return SchemePrefix + access, nil
}

// Verify strips the scheme prefix and validates signature and expiry.
// Malformed input, bad signature and expiry all collapse to the same
// unauthenticated outcome so callers gain no verification oracle.
func (s *TokenService) Verify(raw string) (uint, error) {
	if s == nil {
		return 0, errs.ErrUnauthorized
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), SchemePrefix))
	if tokenString == "" {
		return 0, errs.ErrUnauthorized
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return 0, errs.ErrUnauthorized
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return 0, errs.ErrUnauthorized
	}
	return claims.UserID, nil
}

func (s *TokenService) sign(userID uint, expiry time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
