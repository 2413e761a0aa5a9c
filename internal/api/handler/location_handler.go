package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

// LocationHandler handles HTTP requests for travel-log CRUD operations.
type LocationHandler struct {
	service ports.LocationService
}

func NewLocationHandler(service ports.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// List handles GET /v1/locations. Optional filters: state, from, to.
//
// @Summary      List the user's travel locations
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Param        state  query     string  false  "Filter by state abbreviation (e.g. CA)"
// @Param        from   query     string  false  "Start of visit date range (YYYY-MM-DD)"
// @Param        to     query     string  false  "End of visit date range (YYYY-MM-DD)"
// @Success      200    {object}  locationListResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /v1/locations [get]
func (h *LocationHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	if state := c.QueryParam("state"); state != "" {
		locations, err := h.service.ListByState(ctx, userID, state)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toLocationListResponse(locations))
	}

	fromParam, toParam := c.QueryParam("from"), c.QueryParam("to")
	if fromParam != "" || toParam != "" {
		from, to, err := parseDateRange(fromParam, toParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		locations, err := h.service.ListByDateRange(ctx, userID, from, to)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toLocationListResponse(locations))
	}

	locations, err := h.service.List(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLocationListResponse(locations))
}

// Get handles GET /v1/locations/:id.
//
// @Summary      Get a location by ID
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Location ID"
// @Success      200  {object}  locationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/locations/{id} [get]
func (h *LocationHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	loc, err := h.service.Get(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLocationResponse(loc))
}

// StateCounts handles GET /v1/locations/stats/states.
//
// @Summary      Count the user's locations per state
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  stateCountsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/locations/stats/states [get]
func (h *LocationHandler) StateCounts(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	counts, err := h.service.CountByState(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stateCountsResponse{Counts: counts})
}

// Create handles POST /v1/locations.
//
// @Summary      Log a new travel location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      locationRequest  true  "Location details"
// @Success      201   {object}  locationResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/locations [post]
func (h *LocationHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	loc, err := h.bindLocation(c, userID)
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), loc)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toLocationResponse(created))
}

// Update handles PUT /v1/locations/:id.
//
// @Summary      Update a travel location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Location ID"
// @Param        body  body      locationRequest  true  "Updated location details"
// @Success      200   {object}  locationResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/locations/{id} [put]
func (h *LocationHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	loc, err := h.bindLocation(c, userID)
	if err != nil {
		return err
	}
	loc.ID = c.Param("id")

	updated, err := h.service.Update(c.Request().Context(), loc)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLocationResponse(updated))
}

// Delete handles DELETE /v1/locations/:id.
//
// @Summary      Delete a travel location
// @Tags         locations
// @Security     BearerAuth
// @Param        id  path  string  true  "Location ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/locations/{id} [delete]
func (h *LocationHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// bindLocation decodes, validates, and maps a location payload.
func (h *LocationHandler) bindLocation(c echo.Context, userID string) (*domain.Location, error) {
	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, err := parseRequestDate(req.StartDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid startDate value: "+req.StartDate)
	}

	loc := &domain.Location{
		UserID:       userID,
		Name:         req.Name,
		TripName:     req.TripName,
		LocationType: req.LocationType,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		StartDate:    start,
		Rating:       req.Rating,
		Comments:     req.Comments,
		Tags:         req.Tags,
	}
	if req.EndDate != "" {
		end, err := parseRequestDate(req.EndDate)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid endDate value: "+req.EndDate)
		}
		loc.EndDate = &end
	}
	return loc, nil
}

// parseDateRange fills in open-ended bounds when only one side is given.
func parseDateRange(fromParam, toParam string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	var err error
	if fromParam != "" {
		if from, err = parseRequestDate(fromParam); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if toParam != "" {
		if to, err = parseRequestDate(toParam); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}
