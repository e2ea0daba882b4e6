package microservices

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/internal/service/auth"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

// TokenService prints an ADMIN access token for operators of the admin API.
type TokenService struct {
	tokens  *auth.TokenService
	subject string
	out     io.Writer
	log     logger.Logger
}

func NewToken(ctx context.Context, cfg config.Config, log logger.Logger) (*TokenService, error) {
	return &TokenService{
		tokens:  auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, log),
		subject: cfg.Auth.TokenSubject,
		out:     os.Stdout,
		log:     log,
	}, nil
}

func (s *TokenService) Start(ctx context.Context) error {
	ctx = wrap.WithAction(ctx, "token_mode")

	token, err := s.tokens.Issue(ctx, s.subject, types.AdminRole)
	if err != nil {
		return err
	}

	s.log.Info(ctx, "issued admin token", "subject", s.subject, "expires_at", token.ExpiresAt)
	fmt.Fprintln(s.out, token.Value)
	fmt.Fprintf(s.out, "expires at %s\n", token.ExpiresAt.Format(time.RFC3339))
	return nil
}
