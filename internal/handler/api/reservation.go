package api

import (
	"fmt"
	"net/http"

	reqdto "flight-booking/internal/handler/dto/request"
	resdto "flight-booking/internal/handler/dto/response"
	"flight-booking/internal/handler/httperr"
	"flight-booking/internal/handler/middleware"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var reservationErrors = []errorStatus{
	{queries.ErrReservationAccess, http.StatusForbidden, "RESERVATION_FORBIDDEN", "You can only view your own reservations"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "INVALID_CURSOR", "Invalid cursor"},
}

// ItineraryRenderer produces the PDF itinerary of a confirmed reservation.
type ItineraryRenderer interface {
	Render(view *queries.ReservationView) ([]byte, error)
}

type ReservationHandler struct {
	q         queries.ReservationQueries
	itinerary ItineraryRenderer
}

func NewReservationHandler(q queries.ReservationQueries, itinerary ItineraryRenderer) *ReservationHandler {
	return &ReservationHandler{q: q, itinerary: itinerary}
}

// @Summary List my reservations
// @Description Newest first, keyset paginated
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param after query string false "Cursor from the previous page"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} resdto.ReservationCursorResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Unauthorized", nil)
		return
	}

	var query reqdto.CursorQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid query parameters")
		return
	}

	var cursor *queries.Cursor
	if query.After != "" {
		cursor = &queries.Cursor{After: query.After}
	}
	views, next, err := h.q.ListByUser(c.Request.Context(), userID, cursor, query.Limit)
	if err != nil {
		abortWithMapped(c, err, reservationErrors)
		return
	}

	resp := resdto.ReservationCursorResponse{Reservations: resdto.FromReservationViews(views)}
	if next != nil && next.After != "" {
		resp.NextCursor = &next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get reservation
// @Description Owners see their own reservations; admins see any
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	view, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Download itinerary
// @Description PDF itinerary with a QR code of the booking reference; confirmed reservations only
// @Tags reservations
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {file} file
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/itinerary.pdf [get]
func (h *ReservationHandler) Itinerary(c *gin.Context) {
	view, ok := h.load(c)
	if !ok {
		return
	}

	pdf, err := h.itinerary.Render(view)
	if err != nil {
		abortWithMapped(c, err, []errorStatus{
			{errs.ErrDomainValidation, http.StatusBadRequest, "ITINERARY_UNAVAILABLE", "Itinerary is only available for confirmed reservations"},
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="itinerary-%s.pdf"`, view.Reference))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *ReservationHandler) load(c *gin.Context) (*queries.ReservationView, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid reservation ID format")
		return nil, false
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Unauthorized", nil)
		return nil, false
	}

	view, err := h.q.GetByID(c.Request.Context(), principal.UserID, principal.IsAdmin(), id)
	if err != nil {
		abortWithMapped(c, err, reservationErrors)
		return nil, false
	}
	return view, true
}
