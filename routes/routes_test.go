package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devhub/booking"
	"devhub/events"
	"devhub/home"
	"devhub/ratelim"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	return New(Deps{
		Home:        home.NewHandler(nil, 6, nil),
		Events:      events.NewHandlers(nil, nil),
		Bookings:    booking.NewHandlers(nil, nil, nil),
		RateLimiter: ratelim.NewRateLimiter(0.001, 1),
	})
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "200", rec.Body.String())
}

func TestBookingWritesAreRateLimited(t *testing.T) {
	router := newTestRouter()

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{`))
		req.RemoteAddr = "192.0.2.7:5000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusBadRequest, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
