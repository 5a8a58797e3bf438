package httpgin_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebook/internal/service"
	"tablebook/internal/service/auth"
	"tablebook/internal/service/availability"
	httpgin "tablebook/internal/transport/http/gin"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	svcs := &service.Services{
		Auth:         auth.New(nil, auth.Config{Secret: testSecret, AccessTTL: time.Hour}),
		Availability: availability.New(nil, nil, availability.Config{}),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return httpgin.NewRouter(svcs, nil, nil, logger)
}

func TestBookingStateRoutesUsePut(t *testing.T) {
	r := testRouter()

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	assert.True(t, registered["PUT /admin/bookings/:id/confirm"])
	assert.True(t, registered["PUT /admin/bookings/:id/cancel"])
	assert.True(t, registered["PUT /customer/reservations/:id/cancel"])

	assert.False(t, registered["POST /admin/bookings/:id/confirm"])
	assert.False(t, registered["POST /admin/bookings/:id/cancel"])
	assert.False(t, registered["POST /customer/reservations/:id/cancel"])
}

func TestAvailableTimesRejectsBadDate(t *testing.T) {
	r := testRouter()

	t.Run("missing date", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/bookings/available-times", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("past date", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/bookings/available-times?date=2020-01-01", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAvailableTimesResponseCarriesOccupancy(t *testing.T) {
	t.Parallel()

	resp := httpgin.AvailableTimesResponse{
		Date:  "2026-09-01",
		Times: []string{"17:30", "18:30"},
		Booked: map[string]availability.SlotOccupancy{
			"18:00": {BySeats: map[int]int{4: 1}, TableIDs: []int64{3}},
		},
	}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Contains(t, decoded, "booked")

	var booked map[string]availability.SlotOccupancy
	require.NoError(t, json.Unmarshal(decoded["booked"], &booked))
	assert.Equal(t, 1, booked["18:00"].BySeats[4])
	assert.Equal(t, []int64{3}, booked["18:00"].TableIDs)
}
