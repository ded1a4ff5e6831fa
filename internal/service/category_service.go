package service

import (
	"errors"
	"fmt"

	"it-inventory/internal/apperror"
	"it-inventory/internal/model"
	"it-inventory/internal/repository"
	"it-inventory/internal/scope"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	entityCategory = "category"
	msgSlugTaken   = "The slug has already been taken."
)

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Slug        string  `json:"slug" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Icon        *string `json:"icon" validate:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

type CategoryService interface {
	Create(v scope.Viewer, req *CategoryRequest) (*model.AssetCategory, error)
	Update(v scope.Viewer, id uuid.UUID, req *CategoryRequest) (*model.AssetCategory, error)
	Delete(id uuid.UUID) error
	Get(id uuid.UUID) (*model.AssetCategory, error)
	List(activeOnly bool) ([]model.AssetCategory, error)
}

type categoryService struct {
	l            logrus.FieldLogger
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(l logrus.FieldLogger, categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{l: l, categoryRepo: categoryRepo}
}

func (s *categoryService) apply(c *model.AssetCategory, req *CategoryRequest, excludeID *uuid.UUID) error {
	if err := validate(req); err != nil {
		return err
	}
	slug := req.Slug
	if slug == "" {
		slug = model.Slugify(req.Name)
	}
	if slug == "" {
		return apperror.Validation("slug", "The slug field is required.")
	}
	taken, err := s.categoryRepo.ExistsBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Validation("slug", msgSlugTaken)
	}

	c.Name = req.Name
	c.Slug = slug
	c.Description = emptyToNil(req.Description)
	c.Icon = emptyToNil(req.Icon)
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	return nil
}

func (s *categoryService) Create(v scope.Viewer, req *CategoryRequest) (*model.AssetCategory, error) {
	c := &model.AssetCategory{IsActive: true}
	if err := s.apply(c, req, nil); err != nil {
		return nil, err
	}
	c.CreatedBy = v.UserID.String()
	c.UpdatedBy = v.UserID.String()

	if err := s.categoryRepo.Create(c); err != nil {
		return nil, storeError(err, entityCategory, "slug", msgSlugTaken)
	}
	s.l.WithField("slug", c.Slug).Info("Category created")
	return c, nil
}

func (s *categoryService) Update(v scope.Viewer, id uuid.UUID, req *CategoryRequest) (*model.AssetCategory, error) {
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(c, req, &c.ID); err != nil {
		return nil, err
	}
	c.UpdatedBy = v.UserID.String()

	if err := s.categoryRepo.Update(c); err != nil {
		return nil, storeError(err, entityCategory, "slug", msgSlugTaken)
	}
	return c, nil
}

// Delete refuses to remove a category that still has assets.
func (s *categoryService) Delete(id uuid.UUID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	n, err := s.categoryRepo.CountAssets(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.Reference(entityCategory, fmt.Sprintf("The category still has %d asset(s) assigned.", n))
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return storeError(err, entityCategory, "slug", msgSlugTaken)
	}
	s.l.WithField("category_id", id).Info("Category deleted")
	return nil
}

func (s *categoryService) Get(id uuid.UUID) (*model.AssetCategory, error) {
	c, err := s.categoryRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(entityCategory)
	}
	return c, err
}

func (s *categoryService) List(activeOnly bool) ([]model.AssetCategory, error) {
	return s.categoryRepo.FindAll(activeOnly)
}
