package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/fxdesk/remittance_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	orgRepo  portsrepo.OrganisationReader
}

// NewUserService creates the user service. orgRepo is used to check agent organisations.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, orgRepo portsrepo.OrganisationReader) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, orgRepo: orgRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, actor domain.Principal, req dto.CreateUserRequest) (*domain.User, error) {
	if !actor.Role.CanManage(req.Role) {
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("role %s cannot create %s users", actor.Role, req.Role))
	}

	orgID, err := s.organisationFor(ctx, req.Role, req.OrganisationID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflictError(fmt.Sprintf("username %s is already taken", username))
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check username availability", slog.String("username", username))
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:         uuid.NewString(),
		Username:       username,
		Email:          strings.TrimSpace(req.Email),
		Name:           strings.TrimSpace(req.Name),
		PasswordHash:   hash,
		Role:           req.Role,
		OrganisationID: orgID,
		IsActive:       true,
		AuditFields:    newAudit(actor.UserID),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// organisationFor returns the organisation a user with role should carry. Only agents belong to one.
func (s *userService) organisationFor(ctx context.Context, role domain.UserRole, orgID *string) (*string, error) {
	if role != domain.RoleAgent {
		return nil, nil
	}
	if orgID == nil || *orgID == "" {
		return nil, apperrors.NewValidationError("agents must belong to an organisation")
	}
	org, err := s.orgRepo.FindOrganisationByID(ctx, *orgID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("organisation %s does not exist", *orgID))
		}
		return nil, fmt.Errorf("failed to load organisation: %w", err)
	}
	if !org.IsActive {
		return nil, apperrors.NewValidationError(fmt.Sprintf("organisation %s is inactive", *orgID))
	}
	return &org.OrganisationID, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor domain.Principal, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	self := actor.UserID == user.UserID
	if !self && !actor.Role.CanManage(user.Role) {
		return nil, apperrors.NewForbiddenError("not allowed to modify this user")
	}
	if self && (req.Role != nil || req.IsActive != nil || req.OrganisationID != nil) && !actor.Role.CanManage(user.Role) {
		return nil, apperrors.NewForbiddenError("users cannot change their own role, status or organisation")
	}

	updated := *user
	changed := false

	if req.Name != nil && strings.TrimSpace(*req.Name) != user.Name {
		updated.Name = strings.TrimSpace(*req.Name)
		changed = true
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != user.Email {
		updated.Email = strings.TrimSpace(*req.Email)
		changed = true
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updated.PasswordHash = hash
		changed = true
	}
	if req.Role != nil && *req.Role != user.Role {
		if !actor.Role.CanManage(*req.Role) {
			return nil, apperrors.NewForbiddenError(fmt.Sprintf("role %s cannot assign %s", actor.Role, *req.Role))
		}
		updated.Role = *req.Role
		changed = true
	}
	if req.IsActive != nil && *req.IsActive != user.IsActive {
		updated.IsActive = *req.IsActive
		changed = true
	}
	if req.OrganisationID != nil || updated.Role != user.Role {
		wanted := user.OrganisationID
		if req.OrganisationID != nil {
			wanted = req.OrganisationID
		}
		orgID, err := s.organisationFor(ctx, updated.Role, wanted)
		if err != nil {
			return nil, err
		}
		if !sameOptional(orgID, user.OrganisationID) {
			updated.OrganisationID = orgID
			changed = true
		}
	}

	if !changed {
		return user, nil
	}

	touch(&updated.AuditFields, actor.UserID)
	if err := s.userRepo.UpdateUser(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return &updated, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, actor domain.Principal, userID string) error {
	if actor.UserID == userID {
		return apperrors.NewValidationError("users cannot delete themselves")
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !actor.Role.CanManage(user.Role) {
		return apperrors.NewForbiddenError("not allowed to delete this user")
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now().UTC(), actor.UserID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID), slog.String("deleted_by", actor.UserID))
	return nil
}

// AuthenticateUser checks username and password. Every failure is reported as ErrUnauthorized.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user for authentication: %w", err)
	}
	if !user.IsActive || user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Authentication rejected", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func sameOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
