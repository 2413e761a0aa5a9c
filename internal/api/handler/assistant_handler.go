package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/traveltracker/travel-log-api/internal/api/metrics"
	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

// AssistantHandler handles the conversational travel assistant endpoint.
// When no provider is configured the endpoint reports 503 rather than being
// removed, so clients can probe availability.
type AssistantHandler struct {
	service ports.AssistantService
}

func NewAssistantHandler(service ports.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /v1/assistant/chat.
//
// @Summary      Ask the travel assistant a question
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "User message"
// @Success      200   {object}  chatResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/assistant/chat [post]
func (h *AssistantHandler) Chat(c echo.Context) error {
	if h.service == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "assistant is not configured")
	}

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	reply, err := h.service.Ask(c.Request().Context(), userID, req.Message)
	metrics.AssistantDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.AssistantRequestsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}
