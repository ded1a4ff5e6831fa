package service

import (
	"errors"

	"it-inventory/internal/model"
	"it-inventory/internal/repository"
	"it-inventory/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionReplaced    = errors.New("session expired (logged in on another device)")
)

type AuthService interface {
	Login(req *LoginRequest) (*LoginResponse, error)
	ResetPassword(req *ResetPasswordRequest) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	// Authenticate resolves a bearer token to the stored user it was issued for.
	Authenticate(tokenString string) (*model.User, error)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type TokenValidationResponse struct {
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type authService struct {
	l        logrus.FieldLogger
	userRepo repository.UserRepository
	tokens   *jwt.Manager
}

func NewAuthService(l logrus.FieldLogger, userRepo repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{l: l, userRepo: userRepo, tokens: tokens}
}

func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	// Single session: a new version invalidates tokens issued earlier
	version := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, version); err != nil {
		return nil, err
	}
	user.TokenVersion = version

	token, err := s.tokens.GenerateToken(jwt.Claims{
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.FullName,
		RoleCode:     string(user.RoleCode()),
		LocationID:   user.LocationID,
		Privileges:   user.GetPrivilegeCodes(),
		TokenVersion: version,
	})
	if err != nil {
		return nil, err
	}
	s.l.WithField("user_id", user.ID).Info("User logged in")

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) ResetPassword(req *ResetPasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return ErrUserNotFound
	}
	if !user.CheckPassword(req.OldPassword) {
		return ErrWrongPassword
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		return err
	}
	// Existing sessions must log in again with the new password
	return s.userRepo.UpdateTokenVersion(user.ID, uuid.New().String())
}

func (s *authService) Authenticate(tokenString string) (*model.User, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionReplaced
	}
	return user, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	user, err := s.Authenticate(tokenString)
	if err != nil {
		return nil, err
	}
	return &TokenValidationResponse{
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}
