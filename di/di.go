package di

import (
	bookingService "inn/internal/domains/booking/service"
	"inn/transport/http"
)

// App bundles the HTTP server with the services main needs to touch
// before serving, such as the startup availability reconciliation.
type App struct {
	HTTP     *http.HTTP
	Bookings bookingService.Booking
}
