package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

// TokenService issues and validates HS256 access tokens for the admin API.
type TokenService struct {
	AccessTTL time.Duration
	secret    string
	log       logger.Logger
}

func NewTokenService(secret string, accessTTL time.Duration, log logger.Logger) *TokenService {
	return &TokenService{
		AccessTTL: accessTTL,
		secret:    secret,
		log:       log,
	}
}

// Issue signs an access token for subject with the given role.
func (s *TokenService) Issue(ctx context.Context, subject string, role types.UserRole) (*models.Token, error) {
	ctx = wrap.WithAction(ctx, "issue_token")

	if s.secret == "" {
		return nil, wrap.Error(ctx, ErrEmptySecret)
	}
	if subject == "" {
		return nil, wrap.Error(ctx, ErrInvalidSubject)
	}

	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.AccessTTL)

	token, err := s.signClaims(NewAccessClaim(subject, role, issuedAt, s.AccessTTL, uuid.New()))
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to sign token: %w", err))
	}

	s.log.Debug(ctx, "issued access token", "subject", subject, "role", role.String(), "expires_at", expiresAt)

	return &models.Token{Value: token, ExpiresAt: expiresAt}, nil
}

// Validate validates the given JWT token string, returning its claims if valid.
func (s *TokenService) Validate(ctx context.Context, token string) (*models.Claims, error) {
	ctx = wrap.WithAction(ctx, "validate_token")

	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return []byte(s.secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, wrap.Error(ctx, ErrExpToken)
		}
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}
	if !parsedToken.Valid {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	mc, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	if typ, _ := mc["typ"].(string); typ != models.Access {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	tokenID, _ := mc["jti"].(string)
	if _, err := uuid.Parse(tokenID); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%w: invalid 'jti' in token claims", ErrInvalidToken))
	}

	subject, _ := mc["sub"].(string)
	if subject == "" {
		return nil, wrap.Error(ctx, fmt.Errorf("%w: missing 'sub' in token claims", ErrInvalidToken))
	}

	role, _ := mc["role"].(string)

	return &models.Claims{
		ID:      tokenID,
		Subject: subject,
		Role:    role,
	}, nil
}

// RoleCheck validates token and returns the user it was issued for.
func (s *TokenService) RoleCheck(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	return &models.User{ID: claims.Subject, Role: types.UserRole(claims.Role)}, nil
}

func (s *TokenService) signClaims(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func NewAccessClaim(subject string, role types.UserRole, issuedAt time.Time, accessTTL time.Duration, tokenID uuid.UUID) jwt.Claims {
	return jwt.MapClaims{
		"typ":  models.Access,
		"jti":  tokenID.String(),
		"sub":  subject,
		"role": role.String(),
		"iat":  issuedAt.Unix(),
		"exp":  issuedAt.Add(accessTTL).Unix(),
	}
}
