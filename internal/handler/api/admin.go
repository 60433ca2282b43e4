package api

import (
	"net/http"

	reqdto "flight-booking/internal/handler/dto/request"
	resdto "flight-booking/internal/handler/dto/response"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/patch"
	"flight-booking/internal/usecase/commands"
	"flight-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var adminErrors = []errorStatus{
	{queries.ErrInvalidStatusFilter, http.StatusBadRequest, "INVALID_STATUS_FILTER", "Invalid status filter"},
}

type AdminHandler struct {
	cmds  commands.AdminCommands
	q     queries.AdminQueries
	clock clock.Clock
}

func NewAdminHandler(cmds commands.AdminCommands, q queries.AdminQueries, clk clock.Clock) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q, clock: clk}
}

// @Summary List reservations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Param status query string false "PENDING_PAYMENT, CONFIRMED or CANCELLED"
// @Param search query string false "Matches customer e-mail, name or passenger data"
// @Param resourceId query string false "Flight ID"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/reservations [get]
func (h *AdminHandler) ListReservations(c *gin.Context) {
	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid query parameters")
		return
	}

	filter := queries.ReservationFilter{
		Status:     query.Status,
		ResourceID: query.ResourceUUID(),
		Search:     query.Search,
	}
	views, page, err := h.q.ListReservations(c.Request.Context(), filter, query.Page, query.Limit)
	if err != nil {
		abortWithMapped(c, err, adminErrors)
		return
	}
	c.JSON(http.StatusOK, resdto.ReservationPageResponse{
		Reservations: resdto.FromReservationViews(views),
		Pagination:   resdto.FromPageInfo(page),
	})
}

// @Summary Confirm or cancel a reservation
// @Description confirm takes seats unconditionally; cancel releases seats of a confirmed reservation and marks a captured payment for refund
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Action"
// @Success 200 {object} resdto.AdminActionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations/{id} [patch]
func (h *AdminHandler) UpdateReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid reservation ID format")
		return
	}

	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	var message string
	switch req.Action {
	case reqdto.ActionConfirm:
		err = h.cmds.Confirm(c.Request.Context(), id)
		message = "Reservation confirmed"
	case reqdto.ActionCancel:
		err = h.cmds.Cancel(c.Request.Context(), id, patch.NonEmpty(req.Reason, ""))
		message = "Reservation cancelled"
	}
	if err != nil {
		abortWithMapped(c, err, adminErrors)
		return
	}
	c.JSON(http.StatusOK, resdto.AdminActionResponse{Success: true, Message: message})
}

// @Summary Delete a reservation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.AdminActionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/reservations/{id} [delete]
func (h *AdminHandler) DeleteReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid reservation ID format")
		return
	}

	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		abortWithMapped(c, err, adminErrors)
		return
	}
	c.JSON(http.StatusOK, resdto.AdminActionResponse{Success: true, Message: "Reservation deleted"})
}

// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.DashboardResponse
// @Failure 403 {object} httperr.Response
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.q.Dashboard(c.Request.Context(), h.clock.Now())
	if err != nil {
		abortWithMapped(c, err, adminErrors)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDashboardStats(stats))
}

// @Summary Flight passenger manifest
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Flight ID"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Param status query string false "Reservation status filter"
// @Param search query string false "Matches customer e-mail, name or passenger data"
// @Success 200 {object} resdto.FlightManifestResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/flights/{id}/passengers [get]
func (h *AdminHandler) FlightPassengers(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid flight ID format")
		return
	}

	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid query parameters")
		return
	}

	filter := queries.ReservationFilter{Status: query.Status, Search: query.Search}
	manifest, err := h.q.FlightManifest(c.Request.Context(), resourceID, filter, query.Page, query.Limit)
	if err != nil {
		abortWithMapped(c, err, adminErrors)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFlightManifest(manifest))
}
