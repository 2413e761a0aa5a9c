package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/traveltracker/travel-log-api/internal/api/metrics"
	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

// TransferHandler handles bulk import, pre-flight validation, and export.
type TransferHandler struct {
	importer ports.ImportService
	exporter ports.ExportService
}

func NewTransferHandler(importer ports.ImportService, exporter ports.ExportService) *TransferHandler {
	return &TransferHandler{importer: importer, exporter: exporter}
}

// Import handles POST /v1/locations/import?format=json|csv.
// The payload is either a multipart "file" field or the raw request body.
//
// @Summary      Bulk import locations from a JSON or CSV file
// @Tags         transfer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        format  query     string  true  "File format"  Enums(json, csv)
// @Param        file    formData  file    false "Upload file (raw body also accepted)"
// @Success      200     {object}  ports.ImportResult
// @Failure      400     {object}  ports.ImportResult
// @Router       /v1/locations/import [post]
func (h *TransferHandler) Import(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	format, err := transferFormat(c)
	if err != nil {
		return err
	}
	body, err := requestPayload(c)
	if err != nil {
		return err
	}
	defer body.Close()

	start := time.Now()
	var result *ports.ImportResult
	if format == "json" {
		result = h.importer.ImportJSON(c.Request().Context(), body, userID)
	} else {
		result = h.importer.ImportCSV(c.Request().Context(), body, userID)
	}
	metrics.ImportDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())

	outcome := "failure"
	if result.Success {
		outcome = "success"
	}
	metrics.ImportBatchesTotal.WithLabelValues(format, outcome).Inc()
	metrics.ImportRecordsTotal.WithLabelValues(format, "imported").Add(float64(result.ImportedRecords))
	metrics.ImportRecordsTotal.WithLabelValues(format, "failed").Add(float64(result.FailedRecords))

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	return c.JSON(status, result)
}

// Validate handles POST /v1/locations/import/validate?format=json|csv.
// It is a read-only pre-flight check; nothing is persisted.
//
// @Summary      Validate an import file without persisting anything
// @Tags         transfer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        format  query     string  true  "File format"  Enums(json, csv)
// @Param        file    formData  file    false "Upload file (raw body also accepted)"
// @Success      200     {object}  ports.ValidationResult
// @Router       /v1/locations/import/validate [post]
func (h *TransferHandler) Validate(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}
	format, err := transferFormat(c)
	if err != nil {
		return err
	}
	body, err := requestPayload(c)
	if err != nil {
		return err
	}
	defer body.Close()

	var result *ports.ValidationResult
	if format == "json" {
		result = h.importer.ValidateJSON(c.Request().Context(), body)
	} else {
		result = h.importer.ValidateCSV(c.Request().Context(), body)
	}
	return c.JSON(http.StatusOK, result)
}

// Export handles GET /v1/locations/export?format=json|csv.
//
// @Summary      Export the user's locations as a downloadable file
// @Tags         transfer
// @Produce      json
// @Produce      text/csv
// @Security     BearerAuth
// @Param        format  query  string  true  "File format"  Enums(json, csv)
// @Success      200     {file}  file
// @Failure      400     {object}  errorResponse
// @Router       /v1/locations/export [get]
func (h *TransferHandler) Export(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	format, err := transferFormat(c)
	if err != nil {
		return err
	}

	var (
		data        []byte
		contentType string
		filename    string
	)
	if format == "json" {
		data, err = h.exporter.ExportJSON(c.Request().Context(), userID)
		contentType = echo.MIMEApplicationJSON
		filename = "locations.json"
	} else {
		data, err = h.exporter.ExportCSV(c.Request().Context(), userID)
		contentType = "text/csv"
		filename = "locations.csv"
	}
	if err != nil {
		return err
	}
	metrics.ExportsTotal.WithLabelValues(format).Inc()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=`+strconv.Quote(filename))
	return c.Blob(http.StatusOK, contentType, data)
}

// transferFormat reads and checks the mandatory format query parameter.
func transferFormat(c echo.Context) (string, error) {
	format := c.QueryParam("format")
	switch format {
	case "json", "csv":
		return format, nil
	default:
		return "", echo.NewHTTPError(http.StatusBadRequest, "format must be 'json' or 'csv'")
	}
}

// requestPayload returns the uploaded multipart file when present, otherwise
// the raw request body.
func requestPayload(c echo.Context) (io.ReadCloser, error) {
	file, err := c.FormFile("file")
	if err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
		}
		return f, nil
	}
	return c.Request().Body, nil
}
