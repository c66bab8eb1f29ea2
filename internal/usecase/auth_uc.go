package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"banking-service/internal/domain"
	"banking-service/internal/repository"
	"banking-service/pkg/utils"
	"banking-service/pkg/xerrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

type Claims struct {
	UserID   string `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AuthService issues and revokes operator sessions. A session is an HS256
// token whose jti is registered in Redis; revoking the jti kills the token
// before it expires.
type AuthService struct {
	users      *repository.UserRepository
	rdb        *redis.Client
	secret     []byte
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewAuthService(users *repository.UserRepository, rdb *redis.Client, secret string, sessionTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		rdb:        rdb,
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", xerrors.ErrInvalidRequest)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, xerrors.ErrUserNotFound) {
			return nil, xerrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.String("username", username), zap.Error(err))
		return nil, xerrors.ErrStore
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, xerrors.ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	now := time.Now()
	claims := Claims{
		UserID:   fmt.Sprintf("%d", user.ID),
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("token signing failed", zap.Error(err))
		return nil, xerrors.ErrInternalServer
	}

	if err := s.rdb.Set(ctx, sessionKeyPrefix+sessionID, claims.UserID, s.sessionTTL).Err(); err != nil {
		s.logger.Error("session store failed", zap.Error(err))
		return nil, xerrors.ErrInternalServer
	}
	return &LoginResult{Token: token, User: user}, nil
}

// Validate parses the token and checks that its session is still live.
func (s *AuthService) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, xerrors.ErrUnauthorized
	}

	exists, err := s.rdb.Exists(ctx, sessionKeyPrefix+claims.ID).Result()
	if err != nil {
		s.logger.Error("session check failed", zap.Error(err))
		return nil, xerrors.ErrInternalServer
	}
	if exists == 0 {
		return nil, xerrors.ErrSessionExpired
	}
	return claims, nil
}

// Logout revokes the session behind the token. Revoking an unknown or already
// expired session is not an error.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return xerrors.ErrUnauthorized
	}
	return s.rdb.Del(ctx, sessionKeyPrefix+claims.ID).Err()
}
