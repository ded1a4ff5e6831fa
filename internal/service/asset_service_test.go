package service_test

import (
	"testing"

	"it-inventory/internal/apperror"
	"it-inventory/internal/event"
	"it-inventory/internal/model"
	"it-inventory/internal/repository"
	"it-inventory/internal/scope"
	"it-inventory/internal/service"
	"it-inventory/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAssetService(t *testing.T) (*gorm.DB, service.AssetService, *recordingPublisher) {
	db := testutil.NewDB(t)
	l, _ := testutil.NullLogger()
	events := &recordingPublisher{}
	svc := service.NewAssetService(l, repository.NewAssetRepo(db), repository.NewCategoryRepo(db), events)
	return db, svc, events
}

func assetRequest(tag string, categoryID uuid.UUID) *service.AssetRequest {
	price := decimal.RequireFromString("1250.50")
	date := "2024-01-15"
	return &service.AssetRequest{
		AssetTag:        tag,
		Name:            "ThinkPad T14",
		AssetCategoryID: categoryID.String(),
		Brand:           strPtr("Lenovo"),
		PurchaseDate:    &date,
		PurchasePrice:   &price,
		Condition:       "good",
		Status:          "available",
	}
}

func TestCreateAsset(t *testing.T) {
	db, svc, events := newAssetService(t)
	cat := testutil.Category(t, db, "Laptops")
	admin := scope.Viewer{UserID: uuid.New(), Role: model.RoleAdmin}

	a, err := svc.Create(admin, assetRequest("LAP-001", cat.ID))
	require.NoError(t, err)

	assert.Equal(t, "LAP-001", a.AssetTag)
	assert.Equal(t, model.StatusAvailable, a.Status)
	require.NotNil(t, a.Category)
	assert.Equal(t, "Laptops", a.Category.Name)
	require.NotNil(t, a.PurchasePrice)
	assert.True(t, decimal.RequireFromString("1250.50").Equal(*a.PurchasePrice))
	assert.Nil(t, a.SerialNumber)
	assert.Equal(t, admin.UserID.String(), a.CreatedBy)

	require.Len(t, events.events, 1)
	assert.Equal(t, event.AssetCreated, events.events[0].Type)
	assert.Equal(t, event.TopicAsset, events.topics[0])
}

func TestCreateAssetRejectsDuplicateTag(t *testing.T) {
	db, svc, _ := newAssetService(t)
	cat := testutil.Category(t, db, "Laptops")
	v := scope.Viewer{UserID: uuid.New(), Role: model.RoleAdmin}

	_, err := svc.Create(v, assetRequest("LAP-001", cat.ID))
	require.NoError(t, err)

	_, err = svc.Create(v, assetRequest("LAP-001", cat.ID))
	fields, ok := apperror.FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "This asset tag is already in use.", fields["asset_tag"])
}

func TestAssetValidation(t *testing.T) {
	db, svc, _ := newAssetService(t)
	cat := testutil.Category(t, db, "Laptops")
	v := scope.Viewer{UserID: uuid.New(), Role: model.RoleAdmin}

	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name   string
		mutate func(r *service.AssetRequest)
		field  string
	}{
		{"missing tag", func(r *service.AssetRequest) { r.AssetTag = "" }, "asset_tag"},
		{"bad status", func(r *service.AssetRequest) { r.Status = "lost" }, "status"},
		{"bad condition", func(r *service.AssetRequest) { r.Condition = "mint" }, "condition"},
		{"negative price", func(r *service.AssetRequest) { r.PurchasePrice = &negative }, "purchase_price"},
		{"bad purchase date", func(r *service.AssetRequest) { r.PurchaseDate = strPtr("15/01/2024") }, "purchase_date"},
		{"unknown category", func(r *service.AssetRequest) { r.AssetCategoryID = uuid.NewString() }, "asset_category_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := assetRequest("LAP-100", cat.ID)
			tt.mutate(req)
			_, err := svc.Create(v, req)
			fields, ok := apperror.FieldErrors(err)
			require.True(t, ok, "got %v", err)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestUpdateAssetKeepsOwnTag(t *testing.T) {
	db, svc, _ := newAssetService(t)
	cat := testutil.Category(t, db, "Laptops")
	v := scope.Viewer{UserID: uuid.New(), Role: model.RoleAdmin}

	a, err := svc.Create(v, assetRequest("LAP-001", cat.ID))
	require.NoError(t, err)

	req := assetRequest("LAP-001", cat.ID)
	req.Status = "maintenance"
	updated, err := svc.Update(v, a.ID, req)
	require.NoError(t, err)
	assert.Equal(t, model.StatusMaintenance, updated.Status)

	_, err = svc.Update(v, uuid.New(), req)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteAsset(t *testing.T) {
	db, svc, events := newAssetService(t)
	cat := testutil.Category(t, db, "Laptops")
	v := scope.Viewer{UserID: uuid.New(), Role: model.RoleAdmin}

	a, err := svc.Create(v, assetRequest("LAP-001", cat.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(v, a.ID))
	assert.Equal(t, event.AssetDeleted, events.events[len(events.events)-1].Type)

	_, err = svc.Get(a.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, apperror.IsNotFound(svc.Delete(v, a.ID)))
}

func TestAssetListIsScoped(t *testing.T) {
	db, svc, _ := newAssetService(t)
	cat := testutil.Category(t, db, "Laptops")
	jkt := testutil.Location(t, db, "JKT")
	sby := testutil.Location(t, db, "SBY")
	staff := testutil.User(t, db, "staff@example.com", model.RoleITStaff, &jkt.ID)

	seen := testutil.Asset(t, db, cat.ID, "LAP-001", model.StatusAvailable)
	other := testutil.Asset(t, db, cat.ID, "LAP-002", model.StatusAvailable)
	testutil.Asset(t, db, cat.ID, "LAP-003", model.StatusAvailable)
	testutil.Movement(t, db, seen, staff, jkt.ID, model.MovementIncoming, 1, fixedNow)
	testutil.Movement(t, db, other, staff, sby.ID, model.MovementIncoming, 1, fixedNow)

	page, err := svc.List(scope.NewViewer(staff), 1)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "LAP-001", page.Data[0].AssetTag)

	page, err = svc.List(scope.Viewer{Role: model.RoleAdmin}, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)

	// show is not scoped
	got, err := svc.Get(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "LAP-002", got.AssetTag)
}
