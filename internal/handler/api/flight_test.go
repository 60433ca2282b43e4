//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"flight-booking/internal/domain/resource"
	"flight-booking/internal/handler/api"
	resdto "flight-booking/internal/handler/dto/response"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/commands"
	"flight-booking/internal/usecase/queries"
	"flight-booking/tests/common/builder"
	"flight-booking/tests/common/httptest"
	"flight-booking/tests/common/testutil"
	commandsmock "flight-booking/tests/mock/commands"
	queriesmock "flight-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type FlightHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockFlightCommands
	mockQueries  *queriesmock.MockFlightQueries
}

func (s *FlightHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockFlightCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockFlightQueries(s.mockCtrl)
	handler := api.NewFlightHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/flights", handler.List)
	s.router.GET("/flights/:id", handler.Get)
	s.router.POST("/admin/flights", handler.Create)
	s.router.PUT("/admin/flights/:id", handler.Update)
	s.router.DELETE("/admin/flights/:id", handler.Delete)
}

func (s *FlightHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestFlightHandlerSuite(t *testing.T) {
	suite.Run(t, new(FlightHandlerTestSuite))
}

func (s *FlightHandlerTestSuite) TestList() {
	views := []*queries.FlightView{
		builder.NewFlightBuilder().BuildView(),
		builder.NewFlightBuilder().WithSeats(50, 3).BuildView(),
	}

	s.Run("success: returns flights with pagination", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), 2, 10).
			Return(views, queries.NewPageInfo(2, 10, 12), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/flights?page=2&limit=10", nil, "")

		var response resdto.FlightListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Flights, 2)
		s.Equal(int32(3), response.Flights[1].AvailableSlots)
		s.Equal(resdto.PaginationResponse{Page: 2, Limit: 10, Total: 12, TotalPages: 2}, response.Pagination)
	})

	s.Run("error: 400 Bad Request for an out of range limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/flights?limit=500", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
	})
}

func (s *FlightHandlerTestSuite) TestGet() {
	view := builder.NewFlightBuilder().BuildView()

	s.Run("success: returns the flight", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/flights/"+view.ID.String(), nil, "")

		var response resdto.FlightResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
		s.Equal(view.FlightNumber, response.FlightNumber)
		s.Equal(view.PriceCents, response.PriceCents)
	})

	s.Run("error: 400 Bad Request for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/flights/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for an unknown flight", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(nil, queries.ErrFlightNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/flights/"+view.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Flight not found")
	})
}

func (s *FlightHandlerTestSuite) TestCreate() {
	fb := builder.NewFlightBuilder()
	reqBody := fb.BuildRequest()
	view := fb.BuildView()

	s.Run("success: returns 201 Created with the stored flight", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody).Return(view.ID, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/flights", reqBody, "")

		var response resdto.FlightResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal("/api/flights/"+view.ID.String(), rec.Header().Get("Location"))
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing name", mutate: testutil.Field("name", nil)},
			{name: "zero seats", mutate: testutil.Field("maxSlots", 0)},
			{name: "negative price", mutate: testutil.Field("priceCents", -1)},
			{name: "currency too long", mutate: testutil.Field("currency", "EURO")},
			{name: "origin not IATA", mutate: testutil.Field("origin", "MADR")},
			{name: "missing departure", mutate: testutil.Field("departureTime", nil)},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/flights", testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{"invalid schedule", errs.Wrap(commands.ErrInvalidFlight, "arrival before departure"), http.StatusBadRequest, "Invalid request"},
			{"storage failure", errors.New("db down"), http.StatusInternalServerError, "Internal error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), reqBody).Return(view.ID, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/flights", reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *FlightHandlerTestSuite) TestUpdate() {
	fb := builder.NewFlightBuilder().WithSeats(200, 170)
	reqBody := fb.BuildUpdateRequest()
	view := fb.BuildView()
	path := "/admin/flights/" + fb.ID.String()

	s.Run("success: returns the updated flight", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), fb.ID, reqBody).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), fb.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, path, reqBody, "")

		var response resdto.FlightResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int32(200), response.MaxSlots)
		s.Equal(int32(170), response.AvailableSlots)
	})

	s.Run("error: 400 Bad Request for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/admin/flights/not-a-uuid", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid flight ID format")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, path, testutil.DtoMap(s.T(), reqBody, testutil.Field("maxSlots", 0)), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{"capacity below sold seats", errs.Mark(resource.ErrCapacityBelowSold, errs.ErrInsufficientInventory), http.StatusConflict, "CAPACITY_BELOW_SOLD"},
			{"concurrent checkout took the seats", errs.Mark(errors.New("not enough available slots"), errs.ErrInsufficientInventory), http.StatusConflict, "INSUFFICIENT_INVENTORY"},
			{"unknown flight", errs.Mark(errors.New("resource not found"), errs.ErrResourceNotFound), http.StatusNotFound, "FLIGHT_NOT_FOUND"},
			{"invalid schedule", errs.Wrap(commands.ErrInvalidFlight, "arrival before departure"), http.StatusBadRequest, "VALIDATION_FAILED"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Update(gomock.Any(), fb.ID, reqBody).Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, path, reqBody, "")
				httptest.AssertErrorCode(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})
}

func (s *FlightHandlerTestSuite) TestDelete() {
	fb := builder.NewFlightBuilder()
	path := "/admin/flights/" + fb.ID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), fb.ID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, path, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("error: 409 Conflict while reservations are live", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), fb.ID).
			Return(errs.Wrapf(errs.ErrFlightHasReservations, "%d live reservations", 3)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, path, nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "FLIGHT_HAS_RESERVATIONS")
	})

	s.Run("error: 404 Not Found for an unknown flight", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), fb.ID).
			Return(errs.Mark(errors.New("resource not found"), errs.ErrResourceNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, path, nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "FLIGHT_NOT_FOUND")
	})

	s.Run("error: 400 Bad Request for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/flights/42", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid flight ID format")
	})
}
