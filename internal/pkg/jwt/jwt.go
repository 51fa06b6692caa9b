package jwt

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// AccessTokenType is the "type" claim of operator access tokens.
const AccessTokenType = "access"

type Service interface {
	// GenerateAccessToken signs a token for an operator acting with role
	GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error) {
	if !role.Valid() {
		return "", 0, fmt.Errorf("%w: %q", user.ErrUnknownRole, role)
	}

	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, fmt.Errorf("invalid access token lifetime %q: %w", j.accessTokenExpirationTime, err)
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]any{
		"user_id": userID,
		"role":    string(role),
		"type":    AccessTokenType,
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

// ActorFromClaims reads the operator identity out of verified access token claims.
func ActorFromClaims(claims map[string]any) (user.Actor, error) {
	tokenType, _ := claims["type"].(string)
	if tokenType != AccessTokenType {
		return user.Actor{}, user.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return user.Actor{}, user.ErrInvalidToken
	}

	roleStr, _ := claims["role"].(string)
	role := user.Role(roleStr)
	if !role.Valid() {
		return user.Actor{}, user.ErrUnknownRole
	}

	return user.Actor{UserID: userID, Role: role}, nil
}
