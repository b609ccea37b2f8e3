package bills

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/codeamanwal/brysk/pkg/enrich"
	"github.com/codeamanwal/brysk/pkg/lookup"
	"github.com/codeamanwal/brysk/pkg/models"
)

type MockBillsRepository struct {
	mock.Mock
}

func (m *MockBillsRepository) Bills(ctx context.Context, period Period) ([]Row, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]Row), args.Error(1)
}

func (m *MockBillsRepository) BillsRange(ctx context.Context, start, end time.Time) ([]Row, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]Row), args.Error(1)
}

type MockReferenceSource struct {
	mock.Mock
}

func (m *MockReferenceSource) LocationRefs(ctx context.Context) (enrich.Refs, error) {
	args := m.Called(ctx)
	return args.Get(0).(enrich.Refs), args.Error(1)
}

func setupTest(t *testing.T) (*MockBillsRepository, *MockReferenceSource, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repository := new(MockBillsRepository)
	refs := new(MockReferenceSource)
	handler := NewHandler(repository, refs, zap.NewNop())

	router := gin.New()
	handler.RegisterRoutes(router)
	return repository, refs, router
}

func TestBillsPerWeek(t *testing.T) {
	repository, refs, router := setupTest(t)

	year, week := 2024.0, 10.0
	repository.On("Bills", mock.Anything, PeriodWeek).Return([]Row{
		{LocationID: "loc-1", SaleYear: &year, SaleWeek: &week, UniqueBills: 42, TotalBills: 42, AverageOrderValue: 310.5},
	}, nil)
	refs.On("LocationRefs", mock.Anything).Return(enrich.Refs{
		Locations: lookup.Table[string, models.LocationRef]{
			"loc-1": {ID: "loc-1", DisplayName: "Indiranagar", CityName: "Bengaluru"},
		},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/numberofbills/week", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var rows []Row
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(42), rows[0].UniqueBills)
	assert.Equal(t, "Indiranagar", rows[0].DisplayName)
	repository.AssertExpectations(t)
}

func TestBillsRangeRequiresBothDates(t *testing.T) {
	repository, _, router := setupTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/numberofbills/daterange?end_date=2024-03-31", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Start date and end date are required"}`, w.Body.String())
	repository.AssertNotCalled(t, "BillsRange")
}

func TestBillsEmptyResultIsAnArray(t *testing.T) {
	repository, refs, router := setupTest(t)

	repository.On("Bills", mock.Anything, PeriodDay).Return([]Row(nil), nil)
	refs.On("LocationRefs", mock.Anything).Return(enrich.Refs{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/numberofbills/day", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
