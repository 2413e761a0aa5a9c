package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

// ParkHandler exposes the national-park catalog and the user's visited parks.
type ParkHandler struct {
	service ports.ParkService
}

func NewParkHandler(service ports.ParkService) *ParkHandler {
	return &ParkHandler{service: service}
}

type parkListResponse struct {
	Total int                   `json:"total"`
	Parks []domain.NationalPark `json:"parks"`
}

// List handles GET /v1/parks. Optional filter: state.
//
// @Summary      List the national parks catalog
// @Tags         parks
// @Produce      json
// @Security     BearerAuth
// @Param        state  query     string  false  "Filter by state abbreviation (e.g. UT)"
// @Success      200    {object}  parkListResponse
// @Router       /v1/parks [get]
func (h *ParkHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		parks []domain.NationalPark
		err   error
	)
	if state := c.QueryParam("state"); state != "" {
		parks, err = h.service.ListParksByState(ctx, state)
	} else {
		parks, err = h.service.ListParks(ctx)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parkListResponse{Total: len(parks), Parks: parks})
}

// Visited handles GET /v1/parks/visited.
//
// @Summary      List the national parks the user has logged
// @Tags         parks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  parkListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/parks/visited [get]
func (h *ParkHandler) Visited(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	parks, err := h.service.ListVisitedParks(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parkListResponse{Total: len(parks), Parks: parks})
}
