package services

import (
	"context"
	"crumbs/dto"
	"crumbs/metrics"
	"crumbs/models"
	"crumbs/repositories"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// maxBanSeconds caps timed bans at 100 years. Longer bans should omit the expiry.
const maxBanSeconds int64 = 100 * 365 * 24 * 60 * 60

// UserDirectory splits accounts into business users and staff. Admins stays empty unless the
// caller is a superadmin.
type UserDirectory struct {
	Users  []models.User
	Admins []models.User
}

type IAdminService interface {
	ListUsers(ctx context.Context, caller Caller) (*UserDirectory, error)
	UpdateUser(ctx context.Context, caller Caller, targetID uint, input dto.UpdateUserInput) (*models.User, error)
	SetRole(ctx context.Context, caller Caller, targetID uint, role string) (*models.User, error)
	BanUser(ctx context.Context, caller Caller, targetID uint, input dto.BanUserInput) (*models.User, error)
	UnbanUser(ctx context.Context, caller Caller, targetID uint) (*models.User, error)
	DeleteUser(ctx context.Context, caller Caller, targetID uint) error
	CreateAdmin(ctx context.Context, caller Caller, input dto.CreateAdminInput) (*models.User, error)
}

type AdminService struct {
	repository repositories.IUserRepository
	logger     *slog.Logger
	now        func() time.Time
}

func NewAdminService(repository repositories.IUserRepository, logger *slog.Logger) IAdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{repository: repository, logger: logger, now: time.Now}
}

func (s *AdminService) ListUsers(ctx context.Context, caller Caller) (*UserDirectory, error) {
	if !caller.Role.IsStaff() {
		return nil, s.deny(caller, "list_users", "", "caller is not staff")
	}

	all, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	directory := &UserDirectory{Users: []models.User{}, Admins: []models.User{}}
	includeStaff := caller.Role.AtLeast(models.RoleSuperAdmin)
	for _, u := range all {
		if !u.Role.Normalize().IsStaff() {
			directory.Users = append(directory.Users, u)
		} else if includeStaff {
			directory.Admins = append(directory.Admins, u)
		}
	}
	return directory, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, caller Caller, targetID uint, input dto.UpdateUserInput) (*models.User, error) {
	target, err := s.authorize(ctx, caller, targetID, "update_user")
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	plan := strings.TrimSpace(input.Plan)
	if plan == "" {
		return nil, invalid("plan", "is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = target.Currency
	}
	if len(currency) > 8 {
		return nil, invalid("currency", "must be at most 8 characters")
	}

	if email != target.Email {
		if err := ensureEmailFree(ctx, s.repository, email); err != nil {
			return nil, err
		}
	}

	updated, err := s.repository.UpdateColumns(ctx, target.ID, map[string]interface{}{
		"name":            name,
		"email":           email,
		"email_verified":  input.EmailVerified,
		"business_name":   optionalString(input.BusinessName),
		"plan":            plan,
		"plan_expires_at": input.PlanExpiresAt,
		"currency":        currency,
	})
	return s.record(caller, "update_user", updated, translate(err, "user"))
}

// SetRole checks the caller against the target's current role and against the role being granted,
// so an admin can never hand out admin rights.
func (s *AdminService) SetRole(ctx context.Context, caller Caller, targetID uint, role string) (*models.User, error) {
	if strings.TrimSpace(role) == "" {
		return nil, invalid("role", "is required")
	}
	newRole, ok := models.ParseRole(role)
	if !ok {
		return nil, invalid("role", "must be user, admin or superadmin")
	}

	target, err := s.authorize(ctx, caller, targetID, "set_role")
	if err != nil {
		return nil, err
	}
	if target.ID == caller.ID {
		return nil, s.deny(caller, "set_role", target.Role, "cannot change own role")
	}
	if !caller.Role.CanManage(newRole) {
		return nil, s.deny(caller, "set_role", newRole, "cannot grant role")
	}

	updated, err := s.repository.UpdateColumns(ctx, target.ID, map[string]interface{}{"role": newRole})
	return s.record(caller, "set_role", updated, translate(err, "user"))
}

func (s *AdminService) BanUser(ctx context.Context, caller Caller, targetID uint, input dto.BanUserInput) (*models.User, error) {
	target, err := s.authorize(ctx, caller, targetID, "ban_user")
	if err != nil {
		return nil, err
	}
	if target.ID == caller.ID {
		return nil, s.deny(caller, "ban_user", target.Role, "cannot ban self")
	}

	var expiresAt *time.Time
	if input.ExpiresInSeconds != nil {
		if *input.ExpiresInSeconds <= 0 {
			return nil, invalid("expiresInSeconds", "must be greater than 0")
		}
		if *input.ExpiresInSeconds > maxBanSeconds {
			return nil, invalid("expiresInSeconds", "must be at most 100 years; omit it for a permanent ban")
		}
		at := s.now().Add(time.Duration(*input.ExpiresInSeconds) * time.Second)
		expiresAt = &at
	}

	reason := strings.TrimSpace(input.Reason)
	updated, err := s.repository.UpdateColumns(ctx, target.ID, map[string]interface{}{
		"banned":         true,
		"ban_reason":     optionalString(&reason),
		"ban_expires_at": expiresAt,
	})
	return s.record(caller, "ban_user", updated, translate(err, "user"))
}

func (s *AdminService) UnbanUser(ctx context.Context, caller Caller, targetID uint) (*models.User, error) {
	target, err := s.authorize(ctx, caller, targetID, "unban_user")
	if err != nil {
		return nil, err
	}

	updated, err := s.repository.UpdateColumns(ctx, target.ID, map[string]interface{}{
		"banned":         false,
		"ban_reason":     nil,
		"ban_expires_at": nil,
	})
	return s.record(caller, "unban_user", updated, translate(err, "user"))
}

// DeleteUser removes the account and everything it owns.
func (s *AdminService) DeleteUser(ctx context.Context, caller Caller, targetID uint) error {
	target, err := s.authorize(ctx, caller, targetID, "delete_user")
	if err != nil {
		return err
	}
	if target.ID == caller.ID {
		return s.deny(caller, "delete_user", target.Role, "cannot delete self")
	}

	_, err = s.record(caller, "delete_user", target, translate(s.repository.Delete(ctx, target.ID), "user"))
	return err
}

func (s *AdminService) CreateAdmin(ctx context.Context, caller Caller, input dto.CreateAdminInput) (*models.User, error) {
	if !caller.Role.AtLeast(models.RoleSuperAdmin) {
		return nil, s.deny(caller, "create_admin", models.RoleAdmin, "only superadmins create admins")
	}

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

	admin := &models.User{
		Name:          name,
		Email:         email,
		EmailVerified: true,
		Password:      string(hashedPassword),
		Role:          models.RoleAdmin,
		Plan:          "free",
		Currency:      "USD",
	}
	err = translate(s.repository.CreateUser(ctx, admin), "user")
	return s.record(caller, "create_admin", admin, err)
}

// authorize loads the target and checks the caller may act on its current role. It never mutates.
func (s *AdminService) authorize(ctx context.Context, caller Caller, targetID uint, action string) (*models.User, error) {
	if !caller.Role.IsStaff() {
		return nil, s.deny(caller, action, "", "caller is not staff")
	}
	target, err := s.repository.FindById(ctx, targetID)
	if err != nil {
		return nil, translate(err, "user")
	}
	if !caller.Role.CanManage(target.Role) {
		return nil, s.deny(caller, action, target.Role, "target outranks caller")
	}
	return target, nil
}

func (s *AdminService) deny(caller Caller, action string, targetRole models.Role, reason string) error {
	s.logger.Warn("admin action denied",
		slog.String("action", action),
		slog.Uint64("caller_id", uint64(caller.ID)),
		slog.String("caller_role", caller.Role.String()),
		slog.String("target_role", targetRole.String()),
		slog.String("reason", reason),
	)
	metrics.ObserveAdminAction(action, "forbidden")
	return forbidden(reason)
}

func (s *AdminService) record(caller Caller, action string, target *models.User, err error) (*models.User, error) {
	metrics.ObserveAdminAction(action, metrics.Result(err))
	if err != nil {
		return nil, err
	}
	s.logger.Info("admin action",
		slog.String("action", action),
		slog.Uint64("caller_id", uint64(caller.ID)),
		slog.Uint64("target_id", uint64(target.ID)),
	)
	return target, nil
}

func ensureEmailFree(ctx context.Context, repository repositories.IUserRepository, email string) error {
	_, err := repository.FindUser(ctx, email)
	switch {
	case err == nil:
		return &ConflictError{Field: "email"}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", invalid("email", "is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", invalid("email", "must be a valid email address")
	}
	return email, nil
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
