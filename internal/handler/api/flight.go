package api

import (
	"net/http"

	"flight-booking/internal/domain/resource"
	reqdto "flight-booking/internal/handler/dto/request"
	resdto "flight-booking/internal/handler/dto/response"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/commands"
	"flight-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var flightErrors = []errorStatus{
	{resource.ErrCapacityBelowSold, http.StatusConflict, "CAPACITY_BELOW_SOLD", "Capacity cannot drop below seats already sold"},
	{errs.ErrFlightHasReservations, http.StatusConflict, "FLIGHT_HAS_RESERVATIONS", "Flight still has pending or confirmed reservations"},
}

type FlightHandler struct {
	cmds commands.FlightCommands
	q    queries.FlightQueries
}

func NewFlightHandler(cmds commands.FlightCommands, q queries.FlightQueries) *FlightHandler {
	return &FlightHandler{cmds: cmds, q: q}
}

// @Summary List flights
// @Tags flights
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} resdto.FlightListResponse
// @Failure 400 {object} httperr.Response
// @Router /flights [get]
func (h *FlightHandler) List(c *gin.Context) {
	var query reqdto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid query parameters")
		return
	}

	views, page, err := h.q.List(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		abortWithMapped(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFlightViews(views, page))
}

// @Summary Get flight
// @Tags flights
// @Produce json
// @Param id path string true "Flight ID"
// @Success 200 {object} resdto.FlightResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /flights/{id} [get]
func (h *FlightHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid id")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithMapped(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFlightView(view))
}

// @Summary Create flight
// @Description Creates a flight with every seat available
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateFlightRequest true "Flight"
// @Success 201 {object} resdto.FlightResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/flights [post]
func (h *FlightHandler) Create(c *gin.Context) {
	var req reqdto.CreateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), req)
	if err != nil {
		abortWithMapped(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithMapped(c, err)
		return
	}
	c.Header("Location", "/api/flights/"+id.String())
	c.JSON(http.StatusCreated, resdto.FromFlightView(view))
}

// @Summary Update flight
// @Description Replaces the flight's fields. A capacity change shifts available seats by the same amount.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Flight ID"
// @Param request body reqdto.UpdateFlightRequest true "Flight"
// @Success 200 {object} resdto.FlightResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/flights/{id} [put]
func (h *FlightHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid flight ID format")
		return
	}

	var req reqdto.UpdateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	if err := h.cmds.Update(c.Request.Context(), id, req); err != nil {
		abortWithMapped(c, err, flightErrors)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithMapped(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFlightView(view))
}

// @Summary Delete flight
// @Description Refused while the flight has pending or confirmed reservations
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Flight ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/flights/{id} [delete]
func (h *FlightHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid flight ID format")
		return
	}

	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		abortWithMapped(c, err, flightErrors)
		return
	}
	c.Status(http.StatusNoContent)
}
