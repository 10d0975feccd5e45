package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/core/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/fxdesk/remittance_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockOrgRepo  *MockOrganisationRepository
	service      portssvc.UserSvcFacade
	superAdmin   domain.Principal
	admin        domain.Principal
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockOrgRepo = new(MockOrganisationRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockOrgRepo)
	suite.superAdmin = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSuperAdmin}
	suite.admin = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "desk.staff",
		Email:    "staff@example.com",
		Name:     "Desk Staff",
		Password: "password123",
		Role:     domain.RoleStaff,
	}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "desk.staff").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "desk.staff" && user.Role == domain.RoleStaff && user.PasswordHash != "" && user.PasswordHash != "password123"
	})).Return(nil).Once()

	created, err := suite.service.CreateUser(ctx, suite.admin, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.UserID)
	suite.True(created.IsActive)
	suite.Nil(created.OrganisationID)
	suite.Equal(suite.admin.UserID, created.CreatedBy)
	suite.True(utils.CheckPasswordHash("password123", created.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_AdminCannotCreateAdmin() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "boss", Password: "password123", Role: domain.RoleAdmin}

	created, err := suite.service.CreateUser(ctx, suite.admin, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_AgentNeedsActiveOrganisation() {
	ctx := context.Background()
	orgID := uuid.NewString()

	suite.Run("missing organisation", func() {
		_, err := suite.service.CreateUser(ctx, suite.admin, dto.CreateUserRequest{Username: "agent", Password: "password123", Role: domain.RoleAgent})
		suite.ErrorIs(err, apperrors.ErrValidation)
	})

	suite.Run("inactive organisation", func() {
		suite.mockOrgRepo.On("FindOrganisationByID", ctx, orgID).Return(&domain.Organisation{OrganisationID: orgID, IsActive: false}, nil).Once()
		_, err := suite.service.CreateUser(ctx, suite.admin, dto.CreateUserRequest{Username: "agent", Password: "password123", Role: domain.RoleAgent, OrganisationID: &orgID})
		suite.ErrorIs(err, apperrors.ErrValidation)
	})

	suite.Run("active organisation", func() {
		suite.mockOrgRepo.On("FindOrganisationByID", ctx, orgID).Return(&domain.Organisation{OrganisationID: orgID, IsActive: true}, nil).Once()
		suite.mockUserRepo.On("FindUserByUsername", ctx, "agent").Return(nil, apperrors.ErrNotFound).Once()
		suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

		created, err := suite.service.CreateUser(ctx, suite.admin, dto.CreateUserRequest{Username: "agent", Password: "password123", Role: domain.RoleAgent, OrganisationID: &orgID})
		suite.Require().NoError(err)
		suite.Require().NotNil(created.OrganisationID)
		suite.Equal(orgID, *created.OrganisationID)
	})
}

func (suite *UserServiceTestSuite) TestCreateUser_UsernameTaken() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "taken").Return(&domain.User{UserID: uuid.NewString()}, nil).Once()

	_, err := suite.service.CreateUser(ctx, suite.superAdmin, dto.CreateUserRequest{Username: "taken", Password: "password123", Role: domain.RoleStaff})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestCreateUser_SaveError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "staff").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	created, err := suite.service.CreateUser(ctx, suite.superAdmin, dto.CreateUserRequest{Username: "staff", Password: "password123", Role: domain.RoleStaff})

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, assert.AnError)
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListUsers Tests ---
func (suite *UserServiceTestSuite) TestListUsers_Empty() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUsers", ctx, 5, 10).Return(nil, nil).Once()

	users, err := suite.service.ListUsers(ctx, 5, 10)

	suite.Require().NoError(err)
	suite.Require().NotNil(users)
	suite.Empty(users)
}

func (suite *UserServiceTestSuite) TestListUsers_RepoError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUsers", ctx, 10, 0).Return(nil, assert.AnError).Once()

	users, err := suite.service.ListUsers(ctx, 10, 0)

	suite.Nil(users)
	suite.Contains(err.Error(), "failed to list users")
	suite.ErrorIs(err, assert.AnError)
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	newName := "Updated Name"
	original := &domain.User{
		UserID: userID,
		Name:   "Original Name",
		Role:   domain.RoleStaff,
		AuditFields: domain.AuditFields{
			LastUpdatedAt: time.Now().Add(-time.Hour),
			LastUpdatedBy: "somebodyElse",
		},
	}
	originalTimestamp := original.LastUpdatedAt

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(original, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once().Run(func(args mock.Arguments) {
		userArg := args.Get(1).(domain.User)
		suite.Equal(newName, userArg.Name)
		suite.Equal(suite.admin.UserID, userArg.LastUpdatedBy)
		suite.True(userArg.LastUpdatedAt.After(originalTimestamp))
	})

	user, err := suite.service.UpdateUser(ctx, suite.admin, userID, dto.UpdateUserRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NoChange() {
	ctx := context.Background()
	userID := uuid.NewString()
	name := "Original Name"
	original := &domain.User{UserID: userID, Name: name, Role: domain.RoleStaff}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(original, nil).Once()

	user, err := suite.service.UpdateUser(ctx, suite.admin, userID, dto.UpdateUserRequest{Name: &name})

	suite.Require().NoError(err)
	suite.Equal(original, user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_SelfCannotEscalate() {
	ctx := context.Background()
	staff := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleStaff}
	role := domain.RoleAdmin
	suite.mockUserRepo.On("FindUserByID", ctx, staff.UserID).Return(&domain.User{UserID: staff.UserID, Role: domain.RoleStaff}, nil).Once()

	_, err := suite.service.UpdateUser(ctx, staff, staff.UserID, dto.UpdateUserRequest{Role: &role})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestUpdateUser_AdminCannotTouchSuperAdmin() {
	ctx := context.Background()
	targetID := uuid.NewString()
	name := "x"
	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(&domain.User{UserID: targetID, Role: domain.RoleSuperAdmin}, nil).Once()

	_, err := suite.service.UpdateUser(ctx, suite.admin, targetID, dto.UpdateUserRequest{Name: &name})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- DeleteUser Tests ---
func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	targetID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(&domain.User{UserID: targetID, Role: domain.RoleAgent}, nil).Once()
	suite.mockUserRepo.On("MarkUserDeleted", ctx, targetID, mock.AnythingOfType("time.Time"), suite.admin.UserID).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, suite.admin, targetID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_Self() {
	err := suite.service.DeleteUser(context.Background(), suite.admin, suite.admin.UserID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestDeleteUser_NotFound() {
	ctx := context.Background()
	targetID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteUser(ctx, suite.admin, targetID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	active := &domain.User{UserID: uuid.NewString(), Username: "ops", PasswordHash: hash, IsActive: true}
	inactive := &domain.User{UserID: uuid.NewString(), Username: "gone", PasswordHash: hash, IsActive: false}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ops").Return(active, nil)
	suite.mockUserRepo.On("FindUserByUsername", ctx, "gone").Return(inactive, nil)
	suite.mockUserRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound)

	user, err := suite.service.AuthenticateUser(ctx, "ops", "correct-horse")
	suite.Require().NoError(err)
	suite.Equal(active.UserID, user.UserID)

	_, err = suite.service.AuthenticateUser(ctx, "ops", "wrong")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	_, err = suite.service.AuthenticateUser(ctx, "gone", "correct-horse")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	_, err = suite.service.AuthenticateUser(ctx, "nobody", "correct-horse")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- Run Test Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
