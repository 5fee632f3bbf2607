package requests

import (
	"testing"
	"time"

	"assetdesk/pkg/auditlog"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"
	"assetdesk/pkg/roles"
	"assetdesk/pkg/security"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRequestStore struct {
	mock.Mock
}

func (m *MockRequestStore) GetRequests(filter models.RequestFilter) ([]models.BorrowingRequest, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.BorrowingRequest), args.Error(1)
}

func (m *MockRequestStore) GetRequest(id int) (*models.BorrowingRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BorrowingRequest), args.Error(1)
}

func (m *MockRequestStore) GetRequestForUpdate(tx *goqu.TxDatabase, id int) (*models.BorrowingRequest, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BorrowingRequest), args.Error(1)
}

func (m *MockRequestStore) PersistRequest(record goqu.Record) (int, error) {
	args := m.Called(record)
	return args.Int(0), args.Error(1)
}

func (m *MockRequestStore) UpdateRequestStatus(tx *goqu.TxDatabase, id int, record goqu.Record) error {
	args := m.Called(tx, id, record)
	return args.Error(0)
}

func (m *MockRequestStore) LockAssetRow(tx *goqu.TxDatabase, assetID int) error {
	args := m.Called(tx, assetID)
	return args.Error(0)
}

func (m *MockRequestStore) UpdateAssetStatus(tx *goqu.TxDatabase, assetID int, status metadata.Status) error {
	args := m.Called(tx, assetID, status)
	return args.Error(0)
}

func (m *MockRequestStore) ActiveMaintenanceExists(tx *goqu.TxDatabase, assetID int) (bool, error) {
	args := m.Called(tx, assetID)
	return args.Bool(0), args.Error(1)
}

type noopAuditRepo struct{}

func (noopAuditRepo) PersistLog(models.AuditLog, interface{}) error { return nil }

var frozenNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestService(store RequestStore) *RequestService {
	return &RequestService{
		store:    store,
		runTx:    func(fn func(tx *goqu.TxDatabase) error) error { return fn(nil) },
		auditLog: auditlog.NewAuditLog(noopAuditRepo{}),
		now:      func() time.Time { return frozenNow },
	}
}

func TestListRequestsScopesNonAdmins(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store)

	store.On("GetRequests", models.RequestFilter{Department: "Finance"}).
		Return([]models.BorrowingRequest{}, nil).Once()

	_, err := service.ListRequests("", security.Claims{Role: roles.Clerk, Department: "Finance"})
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestListRequestsAdminSeesAll(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store)

	store.On("GetRequests", models.RequestFilter{Status: "PENDING"}).
		Return([]models.BorrowingRequest{}, nil).Once()

	_, err := service.ListRequests("pending", security.Claims{Role: roles.Admin, Department: "IT"})
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestListRequestsRejectsUnknownStatus(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store)

	_, err := service.ListRequests("LOST", security.Claims{Role: roles.Admin})
	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateRequestDefaultsBorrowerDepartment(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store)

	store.On("PersistRequest", mock.MatchedBy(func(record goqu.Record) bool {
		borrowerDept, ok := record["borrower_department"].(*string)
		return ok && borrowerDept != nil && *borrowerDept == "Finance" &&
			record["status"] == "PENDING"
	})).Return(11, nil).Once()
	store.On("GetRequest", 11).Return(&models.BorrowingRequest{ID: 11, AssetID: 5}, nil).Once()

	created, err := service.CreateRequest(models.BorrowingRequestCreate{
		AssetID:      5,
		BorrowerName: "Alex",
	}, security.Claims{Department: "Finance"})

	assert.NoError(t, err)
	assert.Equal(t, 11, created.ID)
	store.AssertExpectations(t)
}

func TestCreateRequestValidation(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store)

	_, err := service.CreateRequest(models.BorrowingRequestCreate{BorrowerName: "Alex"}, security.Claims{})
	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = service.CreateRequest(models.BorrowingRequestCreate{AssetID: 5}, security.Claims{})
	assert.ErrorAs(t, err, &validationErr)
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store)

	store.On("GetRequestForUpdate", mock.Anything, 3).
		Return(&models.BorrowingRequest{ID: 3, AssetID: 5, Status: "PENDING"}, nil).Once()

	_, err := service.UpdateStatus(3, models.RequestStatusPatch{Status: "ISSUED"}, security.Claims{})

	assert.ErrorIs(t, err, custom_error.ErrInvalidTransition)
	store.AssertNotCalled(t, "UpdateRequestStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusApproveStampsApprover(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store)

	store.On("GetRequestForUpdate", mock.Anything, 3).
		Return(&models.BorrowingRequest{ID: 3, AssetID: 5, Status: "PENDING"}, nil).Once()
	store.On("LockAssetRow", mock.Anything, 5).Return(nil).Once()
	store.On("UpdateRequestStatus", mock.Anything, 3, mock.MatchedBy(func(record goqu.Record) bool {
		return record["status"] == "APPROVED" &&
			record["approved_by"] == "Jordan" &&
			record["approved_at"] == frozenNow
	})).Return(nil).Once()
	store.On("GetRequest", 3).
		Return(&models.BorrowingRequest{ID: 3, AssetID: 5, Status: "APPROVED"}, nil).Once()

	updated, err := service.UpdateStatus(3, models.RequestStatusPatch{Status: "approved"},
		security.Claims{Name: "Jordan", Role: roles.DepartmentHead})

	assert.NoError(t, err)
	assert.Equal(t, "APPROVED", updated.Status)
	store.AssertExpectations(t)
}

func TestUpdateStatusIssueMarksAssetBorrowed(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store)

	store.On("GetRequestForUpdate", mock.Anything, 3).
		Return(&models.BorrowingRequest{ID: 3, AssetID: 5, Status: "APPROVED"}, nil).Once()
	store.On("LockAssetRow", mock.Anything, 5).Return(nil).Once()
	store.On("UpdateRequestStatus", mock.Anything, 3, mock.MatchedBy(func(record goqu.Record) bool {
		return record["status"] == "ISSUED" && record["issued_at"] == frozenNow
	})).Return(nil).Once()
	store.On("UpdateAssetStatus", mock.Anything, 5, metadata.StatusBorrowed).Return(nil).Once()
	store.On("GetRequest", 3).
		Return(&models.BorrowingRequest{ID: 3, AssetID: 5, Status: "ISSUED"}, nil).Once()

	_, err := service.UpdateStatus(3, models.RequestStatusPatch{Status: "ISSUED"}, security.Claims{})
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUpdateStatusReturnFreesAssetWhenNoMaintenance(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store)

	condition := "good"
	store.On("GetRequestForUpdate", mock.Anything, 3).
		Return(&models.BorrowingRequest{ID: 3, AssetID: 5, Status: "ISSUED"}, nil).Once()
	store.On("LockAssetRow", mock.Anything, 5).Return(nil).Once()
	store.On("UpdateRequestStatus", mock.Anything, 3, mock.MatchedBy(func(record goqu.Record) bool {
		return record["status"] == "RETURNED" &&
			record["return_date"] == frozenNow &&
			record["return_condition"] == condition
	})).Return(nil).Once()
	store.On("ActiveMaintenanceExists", mock.Anything, 5).Return(false, nil).Once()
	store.On("UpdateAssetStatus", mock.Anything, 5, metadata.StatusAvailable).Return(nil).Once()
	store.On("GetRequest", 3).
		Return(&models.BorrowingRequest{ID: 3, AssetID: 5, Status: "RETURNED"}, nil).Once()

	_, err := service.UpdateStatus(3, models.RequestStatusPatch{
		Status:          "RETURNED",
		ReturnCondition: &condition,
	}, security.Claims{})
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUpdateStatusReturnKeepsAssetUnderMaintenance(t *testing.T) {
	store := new(MockRequestStore)
	service := newTestService(store)

	store.On("GetRequestForUpdate", mock.Anything, 3).
		Return(&models.BorrowingRequest{ID: 3, AssetID: 5, Status: "ISSUED"}, nil).Once()
	store.On("LockAssetRow", mock.Anything, 5).Return(nil).Once()
	store.On("UpdateRequestStatus", mock.Anything, 3, mock.Anything).Return(nil).Once()
	store.On("ActiveMaintenanceExists", mock.Anything, 5).Return(true, nil).Once()
	store.On("UpdateAssetStatus", mock.Anything, 5, metadata.StatusUnderMaintenance).Return(nil).Once()
	store.On("GetRequest", 3).
		Return(&models.BorrowingRequest{ID: 3, AssetID: 5, Status: "RETURNED_DAMAGED"}, nil).Once()

	_, err := service.UpdateStatus(3, models.RequestStatusPatch{Status: "RETURNED_DAMAGED"}, security.Claims{})
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUpdateStatusApproverNameFallback(t *testing.T) {
	assert.Equal(t, "Jordan", approverName(security.Claims{Name: "Jordan"}))
	assert.Equal(t, "Dept Head", approverName(security.Claims{}))
}
