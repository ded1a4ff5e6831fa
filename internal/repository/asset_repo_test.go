package repository

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"it-inventory/internal/model"
	"it-inventory/internal/scope"
	"it-inventory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAssetRepoFindPage(t *testing.T) {
	db := testutil.NewDB(t)
	jkt := testutil.Location(t, db, "JKT")
	cat := testutil.Category(t, db, "Laptops")
	user := testutil.User(t, db, "staff@example.com", model.RoleITStaff, &jkt.ID)
	for i := 0; i < 12; i++ {
		a := testutil.Asset(t, db, cat.ID, fmt.Sprintf("AST-%06d", i), model.StatusAvailable)
		if i < 3 {
			testutil.Movement(t, db, a, user, jkt.ID, model.MovementIncoming, 1, time.Now())
		}
	}
	repo := NewAssetRepo(db)

	first, err := repo.FindPage(scope.Viewer{Role: model.RoleAdmin}, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 12, first.Total)
	assert.Equal(t, 10, first.PerPage)
	assert.Equal(t, 2, first.LastPage)
	assert.Len(t, first.Data, 10)
	require.NotNil(t, first.Data[0].Category)

	second, err := repo.FindPage(scope.Viewer{Role: model.RoleAdmin}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, second.CurrentPage)
	assert.Len(t, second.Data, 2)

	for _, page := range []int{3, math.MaxInt} {
		past, err := repo.FindPage(scope.Viewer{Role: model.RoleAdmin}, page)
		require.NoError(t, err)
		assert.Equal(t, page, past.CurrentPage)
		assert.Equal(t, 2, past.LastPage)
		assert.EqualValues(t, 12, past.Total)
		assert.NotNil(t, past.Data)
		assert.Empty(t, past.Data)
	}

	staff, err := repo.FindPage(scope.NewViewer(user), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, staff.Total)
	assert.Len(t, staff.Data, 3)
	assert.Equal(t, 1, staff.LastPage)

	empty, err := repo.FindPage(scope.Viewer{Role: model.RoleITStaff}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, empty.CurrentPage)
	assert.EqualValues(t, 0, empty.Total)
	assert.NotNil(t, empty.Data)
}

func TestAssetRepoExistsByTag(t *testing.T) {
	db := testutil.NewDB(t)
	cat := testutil.Category(t, db, "Laptops")
	a := testutil.Asset(t, db, cat.ID, "AST-000001", model.StatusAvailable)
	repo := NewAssetRepo(db)

	exists, err := repo.ExistsByTag("AST-000001", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByTag("AST-000001", &a.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAssetRepoDuplicateTagIsTranslated(t *testing.T) {
	db := testutil.NewDB(t)
	cat := testutil.Category(t, db, "Laptops")
	testutil.Asset(t, db, cat.ID, "AST-000001", model.StatusAvailable)

	err := NewAssetRepo(db).Create(&model.Asset{
		AssetTag: "AST-000001", Name: "Dup", AssetCategoryID: cat.ID,
		Condition: model.ConditionGood, Status: model.StatusAvailable,
	})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
}

func TestAssetRepoDeleteCascadesMovements(t *testing.T) {
	db := testutil.NewDB(t)
	jkt := testutil.Location(t, db, "JKT")
	cat := testutil.Category(t, db, "Laptops")
	user := testutil.User(t, db, "staff@example.com", model.RoleITStaff, &jkt.ID)
	a := testutil.Asset(t, db, cat.ID, "AST-1", model.StatusAvailable)
	other := testutil.Asset(t, db, cat.ID, "AST-2", model.StatusAvailable)
	testutil.Movement(t, db, a, user, jkt.ID, model.MovementIncoming, 1, time.Now())
	testutil.Movement(t, db, a, user, jkt.ID, model.MovementOutgoing, 1, time.Now())
	testutil.Movement(t, db, other, user, jkt.ID, model.MovementIncoming, 1, time.Now())

	repo := NewAssetRepo(db)
	require.NoError(t, repo.Delete(a.ID))

	var remaining int64
	require.NoError(t, db.Model(&model.AssetMovement{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)

	assert.ErrorIs(t, repo.Delete(a.ID), gorm.ErrRecordNotFound)
}

func TestCategoryWithAssetsCannotBeDeleted(t *testing.T) {
	db := testutil.NewDB(t)
	cat := testutil.Category(t, db, "Laptops")
	testutil.Asset(t, db, cat.ID, "AST-1", model.StatusAvailable)

	err := NewCategoryRepo(db).Delete(cat.ID)
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)

	n, err := NewCategoryRepo(db).CountAssets(cat.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestAssetRepoFindOptionsOrderedByName(t *testing.T) {
	db := testutil.NewDB(t)
	cat := testutil.Category(t, db, "Laptops")
	b := testutil.Asset(t, db, cat.ID, "B", model.StatusAvailable)
	require.NoError(t, db.Model(b).Update("name", "Zebra printer").Error)
	a := testutil.Asset(t, db, cat.ID, "A", model.StatusAvailable)
	require.NoError(t, db.Model(a).Update("name", "Acer laptop").Error)

	opts, err := NewAssetRepo(db).FindOptions()
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, "Acer laptop", opts[0].Name)
	assert.Equal(t, "Zebra printer", opts[1].Name)
}
