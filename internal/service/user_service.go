package service

import (
	"errors"

	"it-inventory/internal/apperror"
	"it-inventory/internal/model"
	"it-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	entityUser     = "user"
	msgEmailTaken  = "The email has already been taken."
	msgNoRole      = "Selected role does not exist."
	msgNoLocation  = "Selected location does not exist."
	msgUserHasData = "The user has recorded movements and cannot be deleted."
)

type UserService interface {
	CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest, updaterID string) (*model.User, error)
	DeleteUser(userID uuid.UUID) error
	UpdateUserPrivileges(userID uuid.UUID, privilegeCodes []string, updaterID string) (*model.User, error)
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	FullName    string  `json:"full_name" validate:"required,max=255"`
	PhoneNumber string  `json:"phone_number" validate:"omitempty,max=20"`
	RoleID      uint    `json:"role_id" validate:"required"`
	LocationID  *string `json:"location_id" validate:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=6"`
	FullName    string  `json:"full_name" validate:"required,max=255"`
	PhoneNumber string  `json:"phone_number" validate:"omitempty,max=20"`
	RoleID      uint    `json:"role_id" validate:"required"`
	LocationID  *string `json:"location_id" validate:"omitempty,uuid"`
	IsActive    *bool   `json:"is_active"`
}

type UpdatePrivilegesRequest struct {
	Privileges []string `json:"privileges"`
}

type userService struct {
	l             logrus.FieldLogger
	userRepo      repository.UserRepository
	privilegeRepo repository.PrivilegeRepository
	roleRepo      repository.RoleRepository
	locationRepo  repository.LocationRepository
}

func NewUserService(l logrus.FieldLogger, userRepo repository.UserRepository, privilegeRepo repository.PrivilegeRepository,
	roleRepo repository.RoleRepository, locationRepo repository.LocationRepository) UserService {
	return &userService{
		l:             l,
		userRepo:      userRepo,
		privilegeRepo: privilegeRepo,
		roleRepo:      roleRepo,
		locationRepo:  locationRepo,
	}
}

// resolve checks the role and location references of a user request.
func (s *userService) resolve(roleID uint, locationID *string) (*model.Role, *uuid.UUID, error) {
	role, err := s.roleRepo.FindByID(roleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperror.Reference("role_id", msgNoRole)
	} else if err != nil {
		return nil, nil, err
	}

	locID, err := parseOptionalID("location_id", locationID)
	if err != nil {
		return nil, nil, err
	}
	if locID != nil {
		if _, err := s.locationRepo.FindByID(*locID); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.Reference("location_id", msgNoLocation)
		} else if err != nil {
			return nil, nil, err
		}
	}
	return role, locID, nil
}

func (s *userService) CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	taken, err := s.userRepo.ExistsByEmail(req.Email, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Validation("email", msgEmailTaken)
	}
	role, locID, err := s.resolve(req.RoleID, req.LocationID)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		RoleID:      &role.ID,
		LocationID:  locID,
		IsActive:    true,
		// Privileges start from the role's set
		Privileges: role.Privileges,
	}
	user.CreatedBy = creatorID
	user.UpdatedBy = creatorID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, storeError(err, entityUser, "email", msgEmailTaken)
	}
	s.l.WithFields(logrus.Fields{"user_id": user.ID, "role": role.Code}).Info("User created")

	return s.userRepo.FindByID(user.ID)
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest, updaterID string) (*model.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	user, err := s.find(userID)
	if err != nil {
		return nil, err
	}
	taken, err := s.userRepo.ExistsByEmail(req.Email, &user.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Validation("email", msgEmailTaken)
	}
	role, locID, err := s.resolve(req.RoleID, req.LocationID)
	if err != nil {
		return nil, err
	}

	roleChanged := user.RoleID == nil || *user.RoleID != role.ID
	user.Email = req.Email
	user.FullName = req.FullName
	user.PhoneNumber = req.PhoneNumber
	user.RoleID = &role.ID
	user.Role = nil
	user.LocationID = locID
	user.Location = nil
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedBy = updaterID

	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, storeError(err, entityUser, "email", msgEmailTaken)
	}
	// A role change resets privileges to the new role's set
	if roleChanged {
		if err := s.userRepo.UpdatePrivileges(user.ID, role.Privileges); err != nil {
			return nil, err
		}
	}

	return s.userRepo.FindByID(userID)
}

func (s *userService) DeleteUser(userID uuid.UUID) error {
	recorded, err := s.userRepo.CountMovements(userID)
	if err != nil {
		return err
	}
	if recorded > 0 {
		return apperror.Reference(entityUser, msgUserHasData)
	}
	err = s.userRepo.Delete(userID)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperror.Reference(entityUser, msgUserHasData)
	}
	return storeError(err, entityUser, "email", msgEmailTaken)
}

func (s *userService) UpdateUserPrivileges(userID uuid.UUID, privilegeCodes []string, updaterID string) (*model.User, error) {
	user, err := s.find(userID)
	if err != nil {
		return nil, err
	}

	privileges, err := s.privilegeRepo.FindByCodes(privilegeCodes)
	if err != nil {
		return nil, err
	}
	if len(privileges) != len(uniqueStrings(privilegeCodes)) {
		return nil, apperror.Validation("privileges", "One or more privileges do not exist.")
	}

	if err := s.userRepo.UpdatePrivileges(userID, privileges); err != nil {
		return nil, err
	}

	user.UpdatedBy = updaterID
	user.Role = nil
	user.Location = nil
	user.Privileges = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return s.userRepo.FindByID(userID)
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.find(id)
	if err != nil {
		return nil, err
	}
	response := user.ToResponse()
	return &response, nil
}

func (s *userService) find(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(entityUser)
	}
	return user, err
}

func uniqueStrings(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[s] = struct{}{}
	}
	return out
}
