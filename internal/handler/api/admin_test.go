//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"flight-booking/internal/domain/reservation"
	"flight-booking/internal/handler/api"
	resdto "flight-booking/internal/handler/dto/response"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/queries"
	"flight-booking/tests/common/builder"
	"flight-booking/tests/common/httptest"
	commandsmock "flight-booking/tests/mock/commands"
	queriesmock "flight-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAdminCommands
	mockQueries  *queriesmock.MockAdminQueries
	now          time.Time
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.now = time.Date(2030, 5, 10, 8, 0, 0, 0, time.UTC)

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAdminCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAdminQueries(s.mockCtrl)
	handler := api.NewAdminHandler(s.mockCommands, s.mockQueries, clock.NewMockClock(s.now))

	s.router.GET("/admin/stats", handler.Stats)
	s.router.GET("/admin/flights/:id/passengers", handler.FlightPassengers)
	s.router.GET("/admin/reservations", handler.ListReservations)
	s.router.PATCH("/admin/reservations/:id", handler.UpdateReservation)
	s.router.DELETE("/admin/reservations/:id", handler.DeleteReservation)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) TestListReservations() {
	resourceID := uuid.New()
	views := []*queries.ReservationView{builder.NewReservationBuilder().ForFlight(resourceID).BuildView()}

	s.Run("success: passes filters and pagination", func() {
		filter := queries.ReservationFilter{Status: "CONFIRMED", ResourceID: &resourceID, Search: "ada"}
		s.mockQueries.EXPECT().ListReservations(gomock.Any(), filter, 1, 20).
			Return(views, queries.NewPageInfo(1, 20, 1), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/admin/reservations?status=CONFIRMED&resourceId="+resourceID.String()+"&search=ada&page=1&limit=20", nil, "")

		var response resdto.ReservationPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Reservations, 1)
		s.Equal(int64(1), response.Pagination.Total)
	})

	s.Run("error: 400 Bad Request on invalid filters", func() {
		for _, query := range []string{"status=PAID", "resourceId=abc", "limit=101", "page=-1"} {
			s.Run(query, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations?"+query, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
			})
		}
	})
}

func (s *AdminHandlerTestSuite) TestUpdateReservation() {
	id := uuid.New()
	url := "/admin/reservations/" + id.String()

	s.Run("success: confirm", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"action": "confirm"}, "")

		var response resdto.AdminActionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Success)
		s.Equal("Reservation confirmed", response.Message)
	})

	s.Run("success: cancel with a reason", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, "Duplicate booking").Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"action": "cancel", "reason": "Duplicate booking"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: cancel without a reason leaves it to the command", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, "").Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"action": "cancel", "reason": ""}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for an unknown action", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"action": "refund"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			action         string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{"already confirmed", "confirm", reservation.ErrAlreadyConfirmed, http.StatusBadRequest, "Reservation already confirmed"},
			{"already cancelled", "cancel", reservation.ErrAlreadyCancelled, http.StatusBadRequest, "Reservation already cancelled"},
			{"unknown reservation", "confirm", errs.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
			{"overbooked by storage constraint", "confirm", errs.ErrInsufficientInventory, http.StatusConflict, "Not enough seats available"},
			{"storage failure", "cancel", errors.New("db down"), http.StatusInternalServerError, "Internal error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				if tc.action == "confirm" {
					s.mockCommands.EXPECT().Confirm(gomock.Any(), id).Return(tc.commandsError).Times(1)
				} else {
					s.mockCommands.EXPECT().Cancel(gomock.Any(), id, "").Return(tc.commandsError).Times(1)
				}

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"action": tc.action}, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *AdminHandlerTestSuite) TestDeleteReservation() {
	id := uuid.New()

	s.Run("success: deletes the reservation", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/reservations/"+id.String(), nil, "")

		var response resdto.AdminActionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Reservation deleted", response.Message)
	})

	s.Run("error: 404 Not Found for an unknown reservation", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/reservations/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

func (s *AdminHandlerTestSuite) TestStats() {
	s.Run("success: evaluates the dashboard at the current time", func() {
		stats := &queries.DashboardStats{
			TotalReservations:     4,
			ConfirmedReservations: 2,
			PendingReservations:   1,
			CancelledReservations: 1,
			TotalRevenueCents:     35996,
			TotalUsers:            3,
			TotalFlights:          2,
			RecentReservations:    []*queries.ReservationView{builder.NewReservationBuilder().BuildView()},
		}
		s.mockQueries.EXPECT().Dashboard(gomock.Any(), s.now).Return(stats, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/stats", nil, "")

		var response resdto.DashboardResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(4), response.TotalReservations)
		s.Equal(int64(35996), response.TotalRevenueCents)
		s.Len(response.RecentReservations, 1)
		s.NotNil(response.RevenueByDay)
	})
}

func (s *AdminHandlerTestSuite) TestFlightPassengers() {
	flight := builder.NewFlightBuilder().WithSeats(10, 6).BuildView()
	url := "/admin/flights/" + flight.ID.String() + "/passengers"

	s.Run("success: returns the manifest with statistics", func() {
		manifest := &queries.FlightManifest{
			Flight: flight,
			Statistics: queries.ManifestStatistics{
				TotalReservations:     3,
				ConfirmedReservations: 2,
				TotalPassengers:       4,
				OccupancyRate:         0.4,
				RevenueCents:          35996,
			},
			Reservations: []*queries.ReservationView{builder.NewReservationBuilder().ForFlight(flight.ID).AsConfirmed().BuildView()},
			Pagination:   queries.NewPageInfo(1, 20, 1),
		}
		filter := queries.ReservationFilter{Status: "CONFIRMED"}
		s.mockQueries.EXPECT().FlightManifest(gomock.Any(), flight.ID, filter, 0, 0).Return(manifest, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?status=CONFIRMED", nil, "")

		var response resdto.FlightManifestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(flight.ID, response.Flight.ID)
		s.InDelta(0.4, response.Statistics.OccupancyRate, 1e-9)
		s.Equal(int64(4), response.Statistics.TotalPassengers)
		s.Len(response.Reservations, 1)
	})

	s.Run("error: 404 Not Found for an unknown flight", func() {
		s.mockQueries.EXPECT().FlightManifest(gomock.Any(), flight.ID, queries.ReservationFilter{}, 0, 0).
			Return(nil, queries.ErrFlightNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Flight not found")
	})

	s.Run("error: 400 Bad Request for a malformed flight id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/flights/abc/passengers", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid flight ID format")
	})
}
