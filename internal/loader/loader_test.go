package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-maintenance/internal/api"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/resources"
	"github.com/ukydev/fleet-maintenance/internal/session"
)

type MockTrucks struct {
	mock.Mock
}

func (m *MockTrucks) List(ctx context.Context) ([]models.Truck, error) {
	args := m.Called(ctx)
	trucks, _ := args.Get(0).([]models.Truck)
	return trucks, args.Error(1)
}

func (m *MockTrucks) Get(ctx context.Context, id string) (*models.Truck, error) {
	args := m.Called(ctx, id)
	truck, _ := args.Get(0).(*models.Truck)
	return truck, args.Error(1)
}

type MockServices struct {
	mock.Mock
}

func (m *MockServices) List(ctx context.Context, opts resources.ServiceListOptions) ([]models.Service, error) {
	args := m.Called(ctx, opts)
	services, _ := args.Get(0).([]models.Service)
	return services, args.Error(1)
}

func (m *MockServices) Get(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	svc, _ := args.Get(0).(*models.Service)
	return svc, args.Error(1)
}

func (m *MockServices) ListMaterials(ctx context.Context, serviceID string) ([]models.Material, error) {
	args := m.Called(ctx, serviceID)
	materials, _ := args.Get(0).([]models.Material)
	return materials, args.Error(1)
}

type MockMeasurements struct {
	mock.Mock
}

func (m *MockMeasurements) List(ctx context.Context, opts resources.MeasurementListOptions) ([]models.Measurement, error) {
	args := m.Called(ctx, opts)
	measurements, _ := args.Get(0).([]models.Measurement)
	return measurements, args.Error(1)
}

// blockUntilCanceled makes a mocked call wait for its context.
func blockUntilCanceled(args mock.Arguments) {
	<-args.Get(0).(context.Context).Done()
}

func TestLoader_Report(t *testing.T) {
	trucks := &MockTrucks{}
	services := &MockServices{}
	trucks.On("List", mock.Anything).Return([]models.Truck{{ID: "t1"}}, nil)
	services.On("List", mock.Anything, resources.ServiceListOptions{}).Return([]models.Service{{ID: "s1"}, {ID: "s2"}}, nil)

	data, err := New(trucks, services, nil).Report(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Trucks, 1)
	assert.Len(t, data.Services, 2)
	trucks.AssertExpectations(t)
	services.AssertExpectations(t)
}

func TestLoader_Report_FailureCancelsSiblings(t *testing.T) {
	trucks := &MockTrucks{}
	services := &MockServices{}
	boom := errors.New("boom")
	trucks.On("List", mock.Anything).Return(nil, boom)
	services.On("List", mock.Anything, mock.Anything).Run(blockUntilCanceled).Return(nil, context.Canceled)

	data, err := New(trucks, services, nil).Report(context.Background())
	assert.Nil(t, data)
	assert.ErrorIs(t, err, boom)
}

func TestLoader_Measurements(t *testing.T) {
	trucks := &MockTrucks{}
	services := &MockServices{}
	measurements := &MockMeasurements{}
	opts := resources.MeasurementListOptions{TruckID: "t1"}
	measurements.On("List", mock.Anything, opts).Return([]models.Measurement{{ID: "m1", ValueBefore: models.NewAmount(1), ValueAfter: models.NewAmount(3)}}, nil)
	trucks.On("List", mock.Anything).Return([]models.Truck{{ID: "t1"}}, nil)
	services.On("List", mock.Anything, resources.ServiceListOptions{}).Return([]models.Service{{ID: "s1"}}, nil)

	data, err := New(trucks, services, measurements).Measurements(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, data.Measurements, 1)
	assert.Equal(t, "2", data.Measurements[0].Difference().String())
	assert.Len(t, data.Trucks, 1)
	assert.Len(t, data.Services, 1)
}

func TestLoader_Measurements_Error(t *testing.T) {
	trucks := &MockTrucks{}
	services := &MockServices{}
	measurements := &MockMeasurements{}
	measurements.On("List", mock.Anything, mock.Anything).Return(nil, api.ErrUnauthorized)
	trucks.On("List", mock.Anything).Run(blockUntilCanceled).Return(nil, context.Canceled)
	services.On("List", mock.Anything, mock.Anything).Run(blockUntilCanceled).Return(nil, context.Canceled)

	data, err := New(trucks, services, measurements).Measurements(context.Background(), resources.MeasurementListOptions{})
	assert.Nil(t, data)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestLoader_TruckDetail(t *testing.T) {
	trucks := &MockTrucks{}
	services := &MockServices{}
	trucks.On("Get", mock.Anything, "t1").Return(&models.Truck{ID: "t1", Brand: "Volvo", Model: "FH"}, nil)
	services.On("List", mock.Anything, resources.ServiceListOptions{TruckID: "t1"}).Return([]models.Service{{ID: "s1", TruckID: "t1"}}, nil)

	data, err := New(trucks, services, nil).TruckDetail(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "Volvo FH", data.Truck.Label())
	assert.Len(t, data.Services, 1)
}

func TestLoader_ServiceDetail(t *testing.T) {
	t.Run("uses embedded truck", func(t *testing.T) {
		trucks := &MockTrucks{}
		services := &MockServices{}
		services.On("Get", mock.Anything, "s1").Return(&models.Service{ID: "s1", TruckID: "t1", Truck: &models.Truck{ID: "t1", Brand: "Scania"}}, nil)
		services.On("ListMaterials", mock.Anything, "s1").Return([]models.Material{{ID: "mat1"}}, nil)

		data, err := New(trucks, services, nil).ServiceDetail(context.Background(), "s1")
		require.NoError(t, err)
		require.NotNil(t, data.Truck)
		assert.Equal(t, "Scania", data.Truck.Brand)
		assert.Len(t, data.Materials, 1)
		trucks.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("looks up missing truck", func(t *testing.T) {
		trucks := &MockTrucks{}
		services := &MockServices{}
		services.On("Get", mock.Anything, "s1").Return(&models.Service{ID: "s1", TruckID: "t9"}, nil)
		services.On("ListMaterials", mock.Anything, "s1").Return([]models.Material{}, nil)
		trucks.On("Get", mock.Anything, "t9").Return(&models.Truck{ID: "t9", Brand: "Iveco"}, nil)

		data, err := New(trucks, services, nil).ServiceDetail(context.Background(), "s1")
		require.NoError(t, err)
		assert.Equal(t, "Iveco", data.Truck.Brand)
		trucks.AssertExpectations(t)
	})

	t.Run("no truck id", func(t *testing.T) {
		trucks := &MockTrucks{}
		services := &MockServices{}
		services.On("Get", mock.Anything, "s1").Return(&models.Service{ID: "s1"}, nil)
		services.On("ListMaterials", mock.Anything, "s1").Return([]models.Material{}, nil)

		data, err := New(trucks, services, nil).ServiceDetail(context.Background(), "s1")
		require.NoError(t, err)
		assert.Nil(t, data.Truck)
		trucks.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("truck lookup failure fails the load", func(t *testing.T) {
		trucks := &MockTrucks{}
		services := &MockServices{}
		services.On("Get", mock.Anything, "s1").Return(&models.Service{ID: "s1", TruckID: "t9"}, nil)
		services.On("ListMaterials", mock.Anything, "s1").Return([]models.Material{}, nil)
		trucks.On("Get", mock.Anything, "t9").Return(nil, &api.APIError{StatusCode: http.StatusNotFound, Message: "not found"})

		data, err := New(trucks, services, nil).ServiceDetail(context.Background(), "s1")
		assert.Nil(t, data)
		assert.True(t, api.IsStatus(err, http.StatusNotFound))
	})
}

func TestNewFromClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/trucks/t1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"t1","brand":"Volvo","model":"FH","year":2019}`))
	})
	mux.HandleFunc("/api/services", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "t1", r.URL.Query().Get("truckId"))
		w.Write([]byte(`[{"id":"s1","truck_id":"t1","value":"10.50"}]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := api.NewClient(server.URL+"/api", session.NewMemoryStore())
	data, err := NewFromClient(client).TruckDetail(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 2019, data.Truck.Year)
	require.Len(t, data.Services, 1)
	assert.Equal(t, "t1", data.Services[0].TruckID)
	assert.Equal(t, "10.5", data.Services[0].Value.String())
}
