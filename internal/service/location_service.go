package service

import (
	"errors"
	"fmt"
	"strings"

	"it-inventory/internal/apperror"
	"it-inventory/internal/model"
	"it-inventory/internal/repository"
	"it-inventory/internal/scope"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	entityLocation = "location"
	msgCodeTaken   = "The code has already been taken."
)

type LocationRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Code     string  `json:"code" validate:"required,max=10"`
	Address  *string `json:"address"`
	City     string  `json:"city" validate:"required,max=100"`
	Country  string  `json:"country" validate:"omitempty,max=100"`
	IsActive *bool   `json:"is_active"`
}

type LocationService interface {
	Create(v scope.Viewer, req *LocationRequest) (*model.Location, error)
	Update(v scope.Viewer, id uuid.UUID, req *LocationRequest) (*model.Location, error)
	Delete(id uuid.UUID) error
	Get(id uuid.UUID) (*model.Location, error)
	List(activeOnly bool) ([]model.Location, error)
}

type locationService struct {
	l            logrus.FieldLogger
	locationRepo repository.LocationRepository
}

func NewLocationService(l logrus.FieldLogger, locationRepo repository.LocationRepository) LocationService {
	return &locationService{l: l, locationRepo: locationRepo}
}

func (s *locationService) apply(loc *model.Location, req *LocationRequest, excludeID *uuid.UUID) error {
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if err := validate(req); err != nil {
		return err
	}
	taken, err := s.locationRepo.ExistsByCode(req.Code, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Validation("code", msgCodeTaken)
	}

	loc.Name = req.Name
	loc.Code = req.Code
	loc.Address = emptyToNil(req.Address)
	loc.City = req.City
	loc.Country = req.Country
	if loc.Country == "" {
		loc.Country = model.DefaultCountry
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	return nil
}

func (s *locationService) Create(v scope.Viewer, req *LocationRequest) (*model.Location, error) {
	loc := &model.Location{IsActive: true}
	if err := s.apply(loc, req, nil); err != nil {
		return nil, err
	}
	loc.CreatedBy = v.UserID.String()
	loc.UpdatedBy = v.UserID.String()

	if err := s.locationRepo.Create(loc); err != nil {
		return nil, storeError(err, entityLocation, "code", msgCodeTaken)
	}
	s.l.WithField("code", loc.Code).Info("Location created")
	return loc, nil
}

func (s *locationService) Update(v scope.Viewer, id uuid.UUID, req *LocationRequest) (*model.Location, error) {
	loc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(loc, req, &loc.ID); err != nil {
		return nil, err
	}
	loc.UpdatedBy = v.UserID.String()

	if err := s.locationRepo.Update(loc); err != nil {
		return nil, storeError(err, entityLocation, "code", msgCodeTaken)
	}
	return loc, nil
}

// Delete refuses to remove a location that users or movements still point at.
func (s *locationService) Delete(id uuid.UUID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	users, movements, err := s.locationRepo.CountReferences(id)
	if err != nil {
		return err
	}
	if users > 0 || movements > 0 {
		return apperror.Reference(entityLocation,
			fmt.Sprintf("The location is still referenced by %d user(s) and %d movement(s).", users, movements))
	}
	if err := s.locationRepo.Delete(id); err != nil {
		return storeError(err, entityLocation, "code", msgCodeTaken)
	}
	s.l.WithField("location_id", id).Info("Location deleted")
	return nil
}

func (s *locationService) Get(id uuid.UUID) (*model.Location, error) {
	loc, err := s.locationRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(entityLocation)
	}
	return loc, err
}

func (s *locationService) List(activeOnly bool) ([]model.Location, error) {
	return s.locationRepo.FindAll(activeOnly)
}
