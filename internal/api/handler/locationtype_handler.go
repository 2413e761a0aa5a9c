package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

// LocationTypeHandler exposes the controlled location-type vocabulary.
type LocationTypeHandler struct {
	service ports.LocationTypeService
}

func NewLocationTypeHandler(service ports.LocationTypeService) *LocationTypeHandler {
	return &LocationTypeHandler{service: service}
}

type locationTypeListResponse struct {
	Types []domain.LocationType `json:"types"`
}

// List handles GET /v1/location-types.
//
// @Summary      List valid location types
// @Tags         location-types
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  locationTypeListResponse
// @Router       /v1/location-types [get]
func (h *LocationTypeHandler) List(c echo.Context) error {
	types, err := h.service.ListTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locationTypeListResponse{Types: types})
}

// Get handles GET /v1/location-types/:name.
//
// @Summary      Get a location type by name
// @Tags         location-types
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Type name (e.g. National Park)"
// @Success      200   {object}  domain.LocationType
// @Failure      404   {object}  errorResponse
// @Router       /v1/location-types/{name} [get]
func (h *LocationTypeHandler) Get(c echo.Context) error {
	t, err := h.service.GetTypeByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}
