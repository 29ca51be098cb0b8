package usecase

import (
	"crypto/subtle"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/shop-wallet/internal/config"
	"github.com/wekeepgrowing/shop-wallet/internal/middleware/auth"
)

// AccessGrant is the outcome of a successful password check
type AccessGrant struct {
	Token     string
	ExpiresAt time.Time
}

// AccessService checks the shared access password
type AccessService struct {
	password    string
	tokenSecret string
	tokenTTL    time.Duration
	logger      *zap.Logger
	now         Clock
}

// NewAccessService creates the password gate from configuration
func NewAccessService(cfg config.AccessConfig, logger *zap.Logger) *AccessService {
	if cfg.Password == "" {
		logger.Warn("Access password is not configured; every password check will fail")
	}
	return &AccessService{
		password:    cfg.Password,
		tokenSecret: cfg.TokenSecret,
		tokenTTL:    cfg.TokenTTL,
		logger:      logger,
		now:         utcNow,
	}
}

// CheckPassword returns a grant when the password matches. The grant carries
// a signed access token when a token secret is configured. A nil grant with
// a nil error means the password was wrong.
func (s *AccessService) CheckPassword(password string) (*AccessGrant, error) {
	if s.password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		s.logger.Info("Access password rejected")
		return nil, nil
	}

	grant := &AccessGrant{}
	if s.tokenSecret == "" {
		return grant, nil
	}

	token, expiresAt, err := auth.IssueAccessToken(s.tokenSecret, s.tokenTTL, s.now())
	if err != nil {
		return nil, err
	}
	grant.Token = token
	grant.ExpiresAt = expiresAt
	return grant, nil
}
