package services

import (
	"context"
	"crumbs/dto"
	"crumbs/models"
	"crumbs/repositories"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type IAuthService interface {
	Signup(ctx context.Context, input dto.SignupInput) (*models.User, error)
	Login(ctx context.Context, email string, password string) (*string, error)
	GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error)
	Logout(ctx context.Context, tokenString string) error
	EnsureSuperAdmin(ctx context.Context, name string, email string, password string) error
}

type sessionClaims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	repository      repositories.IUserRepository
	tokenRepository repositories.ITokenRepository
	secretKey       []byte
	tokenTTL        time.Duration
	logger          *slog.Logger
	now             func() time.Time
}

func NewAuthService(
	repository repositories.IUserRepository,
	tokenRepository repositories.ITokenRepository,
	secretKey string,
	tokenTTL time.Duration,
	logger *slog.Logger,
) IAuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		repository:      repository,
		tokenRepository: tokenRepository,
		secretKey:       []byte(secretKey),
		tokenTTL:        tokenTTL,
		logger:          logger,
		now:             time.Now,
	}
}

// Signup registers a business user. Self-service accounts always start with the user role.
func (s *AuthService) Signup(ctx context.Context, input dto.SignupInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < minPasswordLength {
		return nil, invalid("password", "must be at least 8 characters")
	}

	if err := ensureEmailFree(ctx, s.repository, email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		Password:     string(hashedPassword),
		BusinessName: optionalString(input.BusinessName),
		Role:         models.RoleUser,
		Plan:         "free",
		Currency:     "USD",
	}
	if err := s.repository.CreateUser(ctx, &user); err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (*string, error) {
	foundUser, err := s.repository.FindUser(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(foundUser.Password), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !foundUser.IsActive(s.now()) {
		return nil, forbidden("account is banned")
	}

	return s.CreateToken(foundUser)
}

func (s *AuthService) CreateToken(user *models.User) (*string, error) {
	now := s.now()
	claims := sessionClaims{
		Email: user.Email,
		Role:  user.Role.Normalize(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

func (s *AuthService) parse(tokenString string) (*sessionClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// GetUserFromToken resolves a bearer token to the stored user. Role and ban state come from the
// database, not from the token, so demotions and bans take effect immediately.
func (s *AuthService) GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	isBlacklisted, err := s.tokenRepository.IsTokenBlacklisted(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if isBlacklisted {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.repository.FindById(ctx, uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive(s.now()) {
		return nil, forbidden("account is banned")
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}
	return s.tokenRepository.AddBlacklistedToken(ctx, tokenString, claims.ExpiresAt.Unix())
}

// EnsureSuperAdmin creates the bootstrap superadmin unless an account with that email exists.
func (s *AuthService) EnsureSuperAdmin(ctx context.Context, name string, email string, password string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	_, err = s.repository.FindUser(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if len(password) < minPasswordLength {
		return invalid("password", "must be at least 8 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{
		Name:          name,
		Email:         email,
		EmailVerified: true,
		Password:      string(hashedPassword),
		Role:          models.RoleSuperAdmin,
		Plan:          "free",
		Currency:      "USD",
	}
	if err := s.repository.CreateUser(ctx, &user); err != nil {
		return translate(err, "user")
	}
	s.logger.Info("bootstrap superadmin created", slog.Uint64("user_id", uint64(user.ID)))
	return nil
}
