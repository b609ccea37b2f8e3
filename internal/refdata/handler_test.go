package refdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/codeamanwal/brysk/pkg/models"
)

type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) LocationList(ctx context.Context) ([]models.LocationRef, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.LocationRef), args.Error(1)
}

func (m *MockReferenceRepository) Cities(ctx context.Context) ([]models.City, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.City), args.Error(1)
}

func setupTest(t *testing.T) (*MockReferenceRepository, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repository := new(MockReferenceRepository)
	handler := NewHandler(repository, zap.NewNop())

	router := gin.New()
	handler.RegisterRoutes(router)
	return repository, router
}

func TestGetLocations(t *testing.T) {
	repository, router := setupTest(t)

	repository.On("LocationList", mock.Anything).Return([]models.LocationRef{
		{ID: "loc-1", DisplayName: "HSR Layout", CityID: "city-1", CityName: "Bengaluru"},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/locations", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "HSR Layout")
	repository.AssertExpectations(t)
}

func TestGetLocationsEmptyIsAnArray(t *testing.T) {
	repository, router := setupTest(t)

	repository.On("LocationList", mock.Anything).Return([]models.LocationRef(nil), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/locations", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetCitiesUpstreamFailure(t *testing.T) {
	repository, router := setupTest(t)

	repository.On("Cities", mock.Anything).Return([]models.City(nil), errors.New("connection refused"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/cities", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Internal Server Error"}`, w.Body.String())
}
