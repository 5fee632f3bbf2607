package assets

import (
	"errors"
	"testing"

	"assetdesk/internal/repository"
	"assetdesk/pkg/auditlog"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/models"
	"assetdesk/pkg/security"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAssetsStore struct {
	mock.Mock
}

func (m *MockAssetsStore) GetAsset(id int) (*models.Asset, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetsStore) FindAssetByTag(tag string) (*models.Asset, error) {
	args := m.Called(tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetsStore) GetAssetList() ([]models.Asset, error) {
	args := m.Called()
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockAssetsStore) GetAssetsBy(conditions repository.QueryBuilder) ([]models.Asset, error) {
	args := m.Called(conditions)
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockAssetsStore) LockTagPrefix(tx *goqu.TxDatabase, prefix string) error {
	args := m.Called(tx, prefix)
	return args.Error(0)
}

func (m *MockAssetsStore) CountByTagPrefix(tx *goqu.TxDatabase, prefix string) (int, error) {
	args := m.Called(tx, prefix)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetsStore) PersistAsset(tx *goqu.TxDatabase, record goqu.Record) (int, error) {
	args := m.Called(tx, record)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetsStore) UpdateAsset(assetID int, record goqu.Record) error {
	args := m.Called(assetID, record)
	return args.Error(0)
}

func (m *MockAssetsStore) HasOpenChildRows(tx *goqu.TxDatabase, assetID int) (bool, error) {
	args := m.Called(tx, assetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetsStore) RemoveAsset(tx *goqu.TxDatabase, assetID int) error {
	args := m.Called(tx, assetID)
	return args.Error(0)
}

func (m *MockAssetsStore) LockAssetRow(tx *goqu.TxDatabase, assetID int) error {
	args := m.Called(tx, assetID)
	return args.Error(0)
}

func (m *MockAssetsStore) ResolveDepartment(tx *goqu.TxDatabase, name string) (*int, error) {
	args := m.Called(tx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}

type noopAuditRepo struct{}

func (noopAuditRepo) PersistLog(models.AuditLog, interface{}) error { return nil }

func newTestService(store AssetsStore) *AssetService {
	return &AssetService{
		store:    store,
		runTx:    func(fn func(tx *goqu.TxDatabase) error) error { return fn(nil) },
		auditLog: auditlog.NewAuditLog(noopAuditRepo{}),
	}
}

func TestCreateAssetGeneratesSequentialTag(t *testing.T) {
	store := new(MockAssetsStore)
	service := newTestService(store)

	departmentID := 3
	store.On("ResolveDepartment", mock.Anything, "IT").Return(&departmentID, nil).Once()
	store.On("LockTagPrefix", mock.Anything, "ADM-ITX-LAP").Return(nil).Once()
	store.On("CountByTagPrefix", mock.Anything, "ADM-ITX-LAP").Return(4, nil).Once()
	store.On("PersistAsset", mock.Anything, mock.MatchedBy(func(record goqu.Record) bool {
		return record["asset_tag"] == "ADM-ITX-LAP-0005" &&
			record["cond"] == "good" &&
			record["status"] == "available"
	})).Return(42, nil).Once()
	store.On("GetAsset", 42).Return(&models.Asset{
		ID:         42,
		Tag:        "ADM-ITX-LAP-0005",
		Name:       "ThinkPad",
		Department: models.Department{ID: departmentID, Name: "IT"},
	}, nil).Once()

	asset, err := service.CreateAsset(models.AssetRequest{
		Name:       "ThinkPad",
		Department: "IT",
		Category:   "Laptop",
	}, security.Claims{UserID: 9})

	assert.NoError(t, err)
	assert.Equal(t, "ADM-ITX-LAP-0005", asset.Tag)
	store.AssertExpectations(t)
}

func TestCreateAssetRequiresName(t *testing.T) {
	store := new(MockAssetsStore)
	service := newTestService(store)

	_, err := service.CreateAsset(models.AssetRequest{Department: "IT"}, security.Claims{})

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	store.AssertNotCalled(t, "PersistAsset", mock.Anything, mock.Anything)
}

func TestCreateAssetRejectsBadPurchaseDate(t *testing.T) {
	store := new(MockAssetsStore)
	service := newTestService(store)

	badDate := "31-12-2025"
	_, err := service.CreateAsset(models.AssetRequest{
		Name:         "Projector",
		PurchaseDate: &badDate,
	}, security.Claims{})

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestUpdateAssetRequiresChanges(t *testing.T) {
	store := new(MockAssetsStore)
	service := newTestService(store)

	_, err := service.UpdateAsset(1, models.AssetPatch{})

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestDeleteAssetBlockedWhileInUse(t *testing.T) {
	store := new(MockAssetsStore)
	service := newTestService(store)

	store.On("LockAssetRow", mock.Anything, 7).Return(nil).Once()
	store.On("HasOpenChildRows", mock.Anything, 7).Return(true, nil).Once()

	err := service.DeleteAsset(7)

	assert.ErrorIs(t, err, custom_error.ErrAssetInUse)
	store.AssertNotCalled(t, "RemoveAsset", mock.Anything, mock.Anything)
}

func TestDeleteAsset(t *testing.T) {
	store := new(MockAssetsStore)
	service := newTestService(store)

	store.On("LockAssetRow", mock.Anything, 7).Return(nil).Once()
	store.On("HasOpenChildRows", mock.Anything, 7).Return(false, nil).Once()
	store.On("RemoveAsset", mock.Anything, 7).Return(nil).Once()

	assert.NoError(t, service.DeleteAsset(7))
	store.AssertExpectations(t)
}

func TestDeleteAssetMissing(t *testing.T) {
	store := new(MockAssetsStore)
	service := newTestService(store)

	store.On("LockAssetRow", mock.Anything, 99).Return(custom_error.ErrNotFound).Once()

	err := service.DeleteAsset(99)
	assert.ErrorIs(t, err, custom_error.ErrNotFound)
}

func TestListAssetsWithoutFilters(t *testing.T) {
	store := new(MockAssetsStore)
	service := newTestService(store)

	expected := []models.Asset{{ID: 1}, {ID: 2}}
	store.On("GetAssetList").Return(expected, nil).Once()

	assets, err := service.ListAssets(repository.NewQueryBuilder())
	assert.NoError(t, err)
	assert.Equal(t, expected, assets)
}

func TestListAssetsWithFilters(t *testing.T) {
	store := new(MockAssetsStore)
	service := newTestService(store)

	filters := repository.NewQueryBuilder()
	filters.AddCondition("status", "available")

	expected := []models.Asset{{ID: 1}}
	store.On("GetAssetsBy", filters).Return(expected, nil).Once()

	assets, err := service.ListAssets(filters)
	assert.NoError(t, err)
	assert.Equal(t, expected, assets)
}

func TestCreateAssetPropagatesPersistError(t *testing.T) {
	store := new(MockAssetsStore)
	service := newTestService(store)

	departmentID := 1
	store.On("ResolveDepartment", mock.Anything, "").Return(&departmentID, nil).Once()
	store.On("LockTagPrefix", mock.Anything, "ADM-GEN-AST").Return(nil).Once()
	store.On("CountByTagPrefix", mock.Anything, "ADM-GEN-AST").Return(0, nil).Once()
	store.On("PersistAsset", mock.Anything, mock.Anything).
		Return(0, errors.New("insert failed")).Once()

	_, err := service.CreateAsset(models.AssetRequest{Name: "Chair"}, security.Claims{})
	assert.Error(t, err)
}
