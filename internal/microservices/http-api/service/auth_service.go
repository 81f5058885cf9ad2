package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"yamdb/internal/config"
	"yamdb/internal/domain"
	"yamdb/internal/mailer"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/middleware/auth"
	"yamdb/internal/shared"
)

var ErrInvalidToken = errors.New("invalid token")

// SignupThrottle limits how often a confirmation mail goes to one address.
type SignupThrottle interface {
	Acquire(ctx context.Context, email string) (bool, error)
	Release(ctx context.Context, email string) error
}

type AuthService interface {
	Signup(ctx context.Context, email, username string) (*models.User, error)
	Token(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*shared.AuthClaims, error)
	CurrentUser(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	userRepo       repository.UserRepository
	codes          *auth.ConfirmationCodes
	sender         mailer.Sender
	throttle       SignupThrottle
	log            logrus.FieldLogger
	jwtSecret      []byte
	accessTokenTTL time.Duration
	now            func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	codes *auth.ConfirmationCodes,
	sender mailer.Sender,
	throttle SignupThrottle,
	cfg *config.Config,
	log logrus.FieldLogger,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codes:          codes,
		sender:         sender,
		throttle:       throttle,
		log:            log,
		jwtSecret:      []byte(cfg.JWTSecret),
		accessTokenTTL: cfg.AccessTokenTTL,
		now:            time.Now,
	}
}

func codeSubject(u *models.User) auth.CodeSubject {
	return auth.CodeSubject{
		UserID:    u.ID,
		Email:     u.Email,
		Active:    u.IsActive,
		LastLogin: u.LastLogin,
	}
}

// Signup registers (email, username) as a pending user, or finds the existing
// account for that exact pair, and mails a confirmation code for its current state.
// Repeating a valid pair always succeeds; inside the per-email cooldown the mail
// is skipped instead. If the mail cannot be sent the user stays as it is and the
// caller may retry.
func (s *authService) Signup(ctx context.Context, email, username string) (*models.User, error) {
	if err := domain.ValidateSignupUsername(username); err != nil {
		return nil, err
	}

	byEmail, err := s.lookup(ctx, s.userRepo.FindByEmail, email)
	if err != nil {
		return nil, err
	}
	byName, err := s.lookup(ctx, s.userRepo.FindByUsername, username)
	if err != nil {
		return nil, err
	}

	switch {
	case byEmail != nil && byName == nil:
		return nil, domain.ErrEmailAlreadyRegistered
	case byName != nil && !strings.EqualFold(byName.Email, email):
		return nil, domain.ErrEmailMismatch
	}

	user := byName
	if user == nil {
		user = &models.User{
			Username: username,
			Email:    domain.NormalizeEmail(email),
			Role:     domain.RoleUser,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user signed up")
	}

	if !s.acquireThrottle(ctx, user.Email) {
		s.log.WithField("username", user.Username).Info("confirmation code sent recently, mail skipped")
		return user, nil
	}

	subject, body := mailer.ConfirmationMessage(user.Username, s.codes.Make(codeSubject(user)))
	if err := s.sender.Send(ctx, user.Email, subject, body); err != nil {
		s.log.WithError(err).WithField("username", user.Username).Warn("confirmation code delivery failed")
		s.releaseThrottle(ctx, user.Email)
		return nil, fmt.Errorf("%w: %w", domain.ErrDelivery, err)
	}
	return user, nil
}

func (s *authService) lookup(ctx context.Context, find func(context.Context, string) (*models.User, error), key string) (*models.User, error) {
	user, err := find(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

// acquireThrottle reports whether a mail may go to email now. A failing
// cooldown store lets the mail through.
func (s *authService) acquireThrottle(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return true
	}
	ok, err := s.throttle.Acquire(ctx, email)
	if err != nil {
		s.log.WithError(err).Warn("signup cooldown unavailable")
		return true
	}
	return ok
}

func (s *authService) releaseThrottle(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Release(ctx, email); err != nil {
		s.log.WithError(err).Warn("release signup cooldown")
	}
}

// Token checks the confirmation code against the user's current state,
// activates the user and issues a bearer token. Recording the login changes
// the state, so the same code can never be used twice.
func (s *authService) Token(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if !s.codes.Check(codeSubject(user), code) {
		return "", domain.ErrInvalidCode
	}

	// postgres keeps microseconds; the code key must survive a round trip
	loginAt := s.now().UTC().Truncate(time.Microsecond)
	user.IsActive = true
	user.LastLogin = &loginAt
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := shared.AuthClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) ValidateToken(tokenString string) (*shared.AuthClaims, error) {
	claims := &shared.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CurrentUser resolves a bearer token to the stored user, so role changes and
// deletions take effect on the next request. Inactive users are rejected.
func (s *authService) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}
	return user, nil
}
