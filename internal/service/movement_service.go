package service

import (
	"errors"
	"time"

	"it-inventory/internal/apperror"
	"it-inventory/internal/event"
	"it-inventory/internal/model"
	"it-inventory/internal/repository"
	"it-inventory/internal/scope"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const entityMovement = "movement"

// MovementRequest is the payload for recording and editing a movement.
// Location and user are never read from the client.
type MovementRequest struct {
	AssetID      string  `json:"asset_id" validate:"required,uuid"`
	Type         string  `json:"type" validate:"required,oneof=incoming outgoing"`
	Quantity     *int    `json:"quantity" validate:"required,min=1"`
	Purpose      *string `json:"purpose" validate:"omitempty,max=500"`
	Recipient    *string `json:"recipient" validate:"omitempty,max=255"`
	Notes        *string `json:"notes"`
	MovementDate string  `json:"movement_date" validate:"required,date"`
}

func (MovementRequest) Messages() map[string]string {
	return map[string]string{
		"asset_id.required":      "Asset selection is required.",
		"type.required":          "Movement type is required.",
		"type.oneof":             "Movement type must be either incoming or outgoing.",
		"quantity.required":      "Quantity is required.",
		"quantity.min":           "Quantity must be at least 1.",
		"movement_date.required": "Movement date is required.",
	}
}

// movementInput is a MovementRequest translated into domain types.
type movementInput struct {
	assetID  uuid.UUID
	typ      model.MovementType
	quantity int
	date     time.Time
}

type MovementService interface {
	Record(v scope.Viewer, req *MovementRequest) (*model.AssetMovement, error)
	Update(v scope.Viewer, id uuid.UUID, req *MovementRequest) (*model.AssetMovement, error)
	Delete(v scope.Viewer, id uuid.UUID) error
	Get(v scope.Viewer, id uuid.UUID) (*model.AssetMovement, error)
	List(v scope.Viewer, page int) (*repository.Page[model.AssetMovement], error)
}

type movementService struct {
	l            logrus.FieldLogger
	movementRepo repository.MovementRepository
	assetRepo    repository.AssetRepository
	events       event.Publisher
	loc          *time.Location
}

// NewMovementService reads zone-less movement dates in loc.
func NewMovementService(l logrus.FieldLogger, movementRepo repository.MovementRepository, assetRepo repository.AssetRepository, events event.Publisher, loc *time.Location) MovementService {
	if loc == nil {
		loc = time.UTC
	}
	return &movementService{l: l, movementRepo: movementRepo, assetRepo: assetRepo, events: events, loc: loc}
}

func (s *movementService) parse(req *MovementRequest) (*movementInput, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	assetID, err := parseID("asset_id", req.AssetID)
	if err != nil {
		return nil, err
	}
	typ, err := model.ParseMovementType(req.Type)
	if err != nil {
		return nil, apperror.Validation("type", "Movement type must be either incoming or outgoing.")
	}
	date, err := parseDate("movement_date", req.MovementDate, s.loc)
	if err != nil {
		return nil, err
	}

	exists, err := s.assetRepo.Exists(assetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.Reference("asset_id", "Selected asset does not exist.")
	}
	return &movementInput{assetID: assetID, typ: typ, quantity: *req.Quantity, date: date.UTC()}, nil
}

func (s *movementService) Record(v scope.Viewer, req *MovementRequest) (*model.AssetMovement, error) {
	in, err := s.parse(req)
	if err != nil {
		return nil, err
	}
	if v.LocationID == nil || *v.LocationID == uuid.Nil {
		return nil, apperror.Validation("location_id", "Your account has no assigned location; movements cannot be recorded.")
	}

	m := &model.AssetMovement{
		AssetID:      in.assetID,
		LocationID:   *v.LocationID,
		UserID:       v.UserID,
		Type:         in.typ,
		Quantity:     in.quantity,
		Purpose:      emptyToNil(req.Purpose),
		Recipient:    emptyToNil(req.Recipient),
		Notes:        emptyToNil(req.Notes),
		MovementDate: in.date,
	}
	m.CreatedBy = v.UserID.String()
	m.UpdatedBy = v.UserID.String()

	if err := s.movementRepo.Create(m); err != nil {
		return nil, s.storeError(err)
	}
	s.l.WithFields(logrus.Fields{"movement_id": m.ID, "asset_id": m.AssetID, "type": m.Type}).Info("Movement recorded")

	s.publish(event.MovementRecorded, m, v)
	return s.movementRepo.FindVisible(v, m.ID)
}

func (s *movementService) Update(v scope.Viewer, id uuid.UUID, req *MovementRequest) (*model.AssetMovement, error) {
	m, err := s.find(v, id)
	if err != nil {
		return nil, err
	}
	in, err := s.parse(req)
	if err != nil {
		return nil, err
	}

	m.AssetID = in.assetID
	m.Asset = nil
	m.Type = in.typ
	m.Quantity = in.quantity
	m.Purpose = emptyToNil(req.Purpose)
	m.Recipient = emptyToNil(req.Recipient)
	m.Notes = emptyToNil(req.Notes)
	m.MovementDate = in.date
	m.UpdatedBy = v.UserID.String()

	// location_id and user_id keep the recorder's values
	err = s.movementRepo.Update(m,
		"asset_id", "type", "quantity", "purpose", "recipient", "notes", "movement_date", "updated_by")
	if err != nil {
		return nil, s.storeError(err)
	}

	s.publish(event.MovementUpdated, m, v)
	return s.movementRepo.FindVisible(v, m.ID)
}

func (s *movementService) Delete(v scope.Viewer, id uuid.UUID) error {
	m, err := s.find(v, id)
	if err != nil {
		return err
	}
	if err := s.movementRepo.Delete(m.ID); err != nil {
		return s.storeError(err)
	}
	s.l.WithField("movement_id", m.ID).Info("Movement deleted")

	s.publish(event.MovementDeleted, m, v)
	return nil
}

func (s *movementService) Get(v scope.Viewer, id uuid.UUID) (*model.AssetMovement, error) {
	return s.find(v, id)
}

func (s *movementService) List(v scope.Viewer, page int) (*repository.Page[model.AssetMovement], error) {
	return s.movementRepo.FindPage(v, page)
}

func (s *movementService) find(v scope.Viewer, id uuid.UUID) (*model.AssetMovement, error) {
	m, err := s.movementRepo.FindVisible(v, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(entityMovement)
	}
	return m, err
}

func (s *movementService) storeError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperror.Reference("asset_id", "Selected asset does not exist.")
	}
	return storeError(err, entityMovement, "id", "The movement already exists.")
}

func (s *movementService) publish(t event.Type, m *model.AssetMovement, v scope.Viewer) {
	e := event.NewStatusEvent(t, m.ID, v.UserID, newMovementBody(m))
	loc := m.LocationID
	e.LocationID = &loc
	if err := s.events.Publish(event.TopicMovement, e); err != nil {
		s.l.WithError(err).WithField("event", t).Warn("Unable to publish movement event")
	}
}

type movementBody struct {
	AssetID      uuid.UUID          `json:"asset_id"`
	Type         model.MovementType `json:"type"`
	Quantity     int                `json:"quantity"`
	MovementDate time.Time          `json:"movement_date"`
}

func newMovementBody(m *model.AssetMovement) movementBody {
	return movementBody{AssetID: m.AssetID, Type: m.Type, Quantity: m.Quantity, MovementDate: m.MovementDate}
}
