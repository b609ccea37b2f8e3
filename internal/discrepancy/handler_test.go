package discrepancy

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

type MockDiscrepancyRepository struct {
	mock.Mock
}

func (m *MockDiscrepancyRepository) Counts(ctx context.Context) ([]CountRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]CountRow), args.Error(1)
}

func (m *MockDiscrepancyRepository) Readings(ctx context.Context) ([]ReadingRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ReadingRow), args.Error(1)
}

type MockReferenceSource struct {
	mock.Mock
}

func (m *MockReferenceSource) LocationVariantRefs(ctx context.Context) (enrich.Refs, error) {
	args := m.Called(ctx)
	return args.Get(0).(enrich.Refs), args.Error(1)
}

func setupTest(t *testing.T) (*MockDiscrepancyRepository, *MockReferenceSource, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repository := new(MockDiscrepancyRepository)
	refs := new(MockReferenceSource)
	handler := NewHandler(repository, refs, zap.NewNop())

	router := gin.New()
	handler.RegisterRoutes(router)
	return repository, refs, router
}

func TestGetDiscrepancyEnrichment(t *testing.T) {
	repository, refs, router := setupTest(t)

	now := time.Now()
	repository.On("Counts", mock.Anything).Return([]CountRow{
		{LocationID: "loc-1", VariantID: "var-1", IMSQuantity: 120},
	}, nil)
	repository.On("Readings", mock.Anything).Return([]ReadingRow{
		{VariantID: "var-1", CurrentWeight: 96, UpdatedAt: now},
	}, nil)
	refs.On("LocationVariantRefs", mock.Anything).Return(enrich.Refs{
		Locations: lookup.Table[string, models.LocationRef]{
			"loc-1": {ID: "loc-1", DisplayName: "Jayanagar", CityID: "city-1", CityName: "Bengaluru"},
		},
		Variants: lookup.Table[string, models.VariantRef]{
			"var-1": {ID: "var-1", Title: "Walnuts 200g", ProductName: "Walnuts", UnitWeight: 0.8},
		},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/inventory-discrepancy", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `"locationName":"Jayanagar"`)
	assert.Contains(t, body, `"cityId":"city-1"`)
	assert.Contains(t, body, `"variantName":"Walnuts 200g"`)
	assert.Contains(t, body, `"productName":"Walnuts"`)
	assert.NotContains(t, body, `"displayName"`)

	var rows []Row
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, 120.0, rows[0].SensorQuantity)
	assert.Equal(t, 0.0, rows[0].Discrepancy)
}

func TestGetDiscrepancyUnresolvedReferencesReadUnknown(t *testing.T) {
	repository, refs, router := setupTest(t)

	repository.On("Counts", mock.Anything).Return([]CountRow{
		{LocationID: "loc-gone", VariantID: "var-gone", IMSQuantity: 5},
	}, nil)
	repository.On("Readings", mock.Anything).Return([]ReadingRow(nil), nil)
	refs.On("LocationVariantRefs", mock.Anything).Return(enrich.Refs{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/inventory-discrepancy", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var rows []Row
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, enrich.Unknown, rows[0].LocationName)
	assert.Equal(t, enrich.Unknown, rows[0].CityID)
	assert.Equal(t, enrich.Unknown, rows[0].VariantName)
	assert.Equal(t, enrich.Unknown, rows[0].ProductName)
}
