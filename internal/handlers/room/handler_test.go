package room_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"inn/infras/otel/mocks"
	"inn/internal/handlers/room"
)

// Rooms are never deleted; bookings reference them by id for their whole
// lifetime. The router must not expose a DELETE on the rooms subtree.
func TestRouter_RoomsAreNeverDeleted(t *testing.T) {
	handler := room.New(nil, nil, mocks.NewOtel())

	mux := chi.NewRouter()
	handler.Router(mux)

	request := httptest.NewRequest(http.MethodDelete, "/rooms/1", nil)
	recorder := httptest.NewRecorder()

	mux.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}
