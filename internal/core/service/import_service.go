package service

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

// csvImportHeader is the canonical import header. The export side writes a
// 9th TripName column; the import side deliberately accepts only this 8-column
// form.
const csvImportHeader = "Location,Arrival,Departure,Comments,Address,Latitude,Longitude,Type"

// csvDefaultRating is applied to CSV rows since the format carries no rating
// column.
const csvDefaultRating = 5

// dateLayouts are tried in order when parsing arrival/departure values.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

type ImportService struct {
	locations ports.LocationRepository
	validator *TypeValidator
	log       zerolog.Logger
}

func NewImportService(locations ports.LocationRepository, validator *TypeValidator, log zerolog.Logger) *ImportService {
	return &ImportService{locations: locations, validator: validator, log: log}
}

// jsonBatch is the top-level import document. Elements stay raw so one
// undecodable record cannot abort the batch.
type jsonBatch struct {
	Locations []json.RawMessage `json:"locations"`
}

// jsonLocation mirrors one element of the "locations" array. Optional string
// fields are pointers so that absent-vs-empty stays observable for the
// defaulting rules (name -> "Unknown", locationType -> "Other"). Field name
// matching is case-insensitive per encoding/json.
type jsonLocation struct {
	Name         *string  `json:"name"`
	LocationType *string  `json:"locationType"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	ZipCode      *string  `json:"zipCode"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Rating       int      `json:"rating"`
	Comments     *string  `json:"comments"`
	Tags         []string `json:"tags"`
}

// ImportJSON decodes a {"locations": [...]} document and imports each element
// independently. One malformed record never aborts the batch.
func (s *ImportService) ImportJSON(ctx context.Context, r io.Reader, userID string) *ports.ImportResult {
	result := &ports.ImportResult{Errors: []string{}}

	data, err := io.ReadAll(r)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Import failed: %v", err))
		return result
	}

	var batch jsonBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Import failed: %v", err))
		return result
	}
	if batch.Locations == nil {
		result.Errors = append(result.Errors, "Invalid JSON structure. Missing 'locations' array.")
		return result
	}

	result.TotalRecords = len(batch.Locations)

	for _, raw := range batch.Locations {
		name, err := s.importJSONRecord(ctx, raw, userID)
		if err != nil {
			result.FailedRecords++
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to import location '%s': %v", name, err))
			continue
		}
		result.ImportedRecords++
	}

	result.Success = result.ImportedRecords > 0
	s.log.Info().
		Str("user_id", userID).
		Int("total", result.TotalRecords).
		Int("imported", result.ImportedRecords).
		Int("failed", result.FailedRecords).
		Msg("json import finished")
	return result
}

// importJSONRecord maps, validates, and persists one element. The returned
// name is used as the error locator even when mapping fails.
func (s *ImportService) importJSONRecord(ctx context.Context, raw json.RawMessage, userID string) (string, error) {
	name := peekName(raw)

	var rec jsonLocation
	if err := json.Unmarshal(raw, &rec); err != nil {
		return name, err
	}

	loc, err := mapJSONLocation(rec, userID)
	if err != nil {
		return name, err
	}

	normalized, err := s.validator.ValidateAndNormalize(ctx, loc.LocationType, loc.Name)
	if err != nil {
		return loc.Name, err
	}
	loc.LocationType = normalized

	if _, err := s.locations.Create(ctx, loc); err != nil {
		return loc.Name, err
	}
	return loc.Name, nil
}

// peekName extracts just the record name for error locators; "Unknown" when
// absent or undecodable.
func peekName(raw json.RawMessage) string {
	var partial struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(raw, &partial); err != nil || partial.Name == nil {
		return "Unknown"
	}
	return *partial.Name
}

// mapJSONLocation is the pure mapping from the loose wire element to a
// candidate record. Missing-field defaults live here, as one auditable path.
func mapJSONLocation(rec jsonLocation, userID string) (*domain.Location, error) {
	loc := &domain.Location{
		UserID:       userID,
		Name:         orDefault(rec.Name, "Unknown"),
		LocationType: orDefault(rec.LocationType, "Other"),
		Address:      orDefault(rec.Address, ""),
		City:         orDefault(rec.City, ""),
		State:        orDefault(rec.State, ""),
		ZipCode:      orDefault(rec.ZipCode, ""),
		Latitude:     rec.Latitude,
		Longitude:    rec.Longitude,
		Rating:       rec.Rating,
		Comments:     orDefault(rec.Comments, ""),
		Tags:         rec.Tags,
	}
	if loc.Tags == nil {
		loc.Tags = []string{}
	}

	if rec.StartDate != "" {
		start, ok := parseDate(rec.StartDate)
		if !ok {
			return nil, fmt.Errorf("invalid start date value: %s", rec.StartDate)
		}
		loc.StartDate = start
	}
	if rec.EndDate != "" {
		end, ok := parseDate(rec.EndDate)
		if !ok {
			return nil, fmt.Errorf("invalid end date value: %s", rec.EndDate)
		}
		loc.EndDate = &end
	}

	return loc, nil
}

func orDefault(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ImportCSV reads a header line plus positional data rows and imports each
// non-blank row independently. Blank lines are skipped without touching any
// counter; every other row counts toward TotalRecords regardless of outcome.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader, userID string) *ports.ImportResult {
	result := &ports.ImportResult{Errors: []string{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) == "" {
		result.Errors = append(result.Errors, "CSV file is empty or missing header row.")
		return result
	}
	if !strings.EqualFold(strings.TrimSpace(scanner.Text()), csvImportHeader) {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid CSV header. Expected: %s", csvImportHeader))
		return result
	}

	lineNumber := 1
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		result.TotalRecords++

		loc, err := s.parseCSVLine(ctx, line, userID)
		if err != nil {
			result.FailedRecords++
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: %v", lineNumber, err))
			continue
		}
		if _, err := s.locations.Create(ctx, loc); err != nil {
			result.FailedRecords++
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: %v", lineNumber, err))
			continue
		}
		result.ImportedRecords++
	}
	if err := scanner.Err(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("CSV import failed: %v", err))
	}

	result.Success = result.ImportedRecords > 0
	s.log.Info().
		Str("user_id", userID).
		Int("total", result.TotalRecords).
		Int("imported", result.ImportedRecords).
		Int("failed", result.FailedRecords).
		Msg("csv import finished")
	return result
}

// parseCSVLine maps one data row to a validated candidate record.
// Row format: Location,Arrival,Departure,Comments,Address,Latitude,Longitude,Type.
func (s *ImportService) parseCSVLine(ctx context.Context, line, userID string) (*domain.Location, error) {
	fields := parseCSVFields(line)
	if len(fields) < 8 {
		return nil, fmt.Errorf("Invalid CSV format. Expected 8 fields, found %d.", len(fields))
	}

	name := strings.TrimSpace(fields[0])
	arrival := strings.TrimSpace(fields[1])
	departure := strings.TrimSpace(fields[2])
	comments := strings.TrimSpace(fields[3])
	address := strings.TrimSpace(fields[4])
	latitudeStr := strings.TrimSpace(fields[5])
	longitudeStr := strings.TrimSpace(fields[6])
	rowType := strings.TrimSpace(fields[7])

	if name == "" {
		return nil, errors.New("Location name is required.")
	}

	latitude, err := strconv.ParseFloat(latitudeStr, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid latitude value: %s", latitudeStr)
	}
	longitude, err := strconv.ParseFloat(longitudeStr, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid longitude value: %s", longitudeStr)
	}

	// Unparseable dates are treated as absent, not as errors.
	startDate := time.Now().UTC()
	if arrival != "" {
		if t, ok := parseDate(arrival); ok {
			startDate = t
		}
	}
	var endDate *time.Time
	if departure != "" {
		if t, ok := parseDate(departure); ok {
			endDate = &t
		}
	}

	locationType := rowType
	if locationType == "" {
		locationType = "Other"
	}
	locationType, err = s.validator.ValidateAndNormalize(ctx, locationType, name)
	if err != nil {
		return nil, err
	}

	return &domain.Location{
		UserID:       userID,
		Name:         name,
		LocationType: locationType,
		Address:      address,
		City:         extractCity(address),
		State:        extractState(address),
		ZipCode:      extractZip(address),
		Latitude:     latitude,
		Longitude:    longitude,
		StartDate:    startDate,
		EndDate:      endDate,
		Rating:       csvDefaultRating,
		Comments:     comments,
		Tags:         []string{},
	}, nil
}

// ValidateJSON is the read-only pre-flight for JSON payloads: structure plus
// a per-element name/state presence check. Nothing is persisted and the
// type/landmark validator is not consulted.
func (s *ImportService) ValidateJSON(ctx context.Context, r io.Reader) *ports.ValidationResult {
	result := &ports.ValidationResult{Valid: true, Messages: []string{}, Errors: []string{}}

	data, err := io.ReadAll(r)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Validation failed: %v", err))
		return result
	}

	var batch jsonBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("JSON parsing error: %v", err))
		return result
	}
	if batch.Locations == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "Invalid JSON structure. Missing 'locations' array.")
		return result
	}

	result.RecordCount = len(batch.Locations)
	result.Messages = append(result.Messages, fmt.Sprintf("Found %d locations in JSON file.", result.RecordCount))

	validLocations := 0
	for _, raw := range batch.Locations {
		var partial struct {
			Name  string `json:"name"`
			State string `json:"state"`
		}
		if err := json.Unmarshal(raw, &partial); err != nil {
			continue
		}
		if strings.TrimSpace(partial.Name) != "" && strings.TrimSpace(partial.State) != "" {
			validLocations++
		}
	}

	if validLocations == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "No valid locations found. Each location must have at least a name and state.")
	} else {
		result.Messages = append(result.Messages, fmt.Sprintf("%d locations are valid and ready for import.", validLocations))
	}

	return result
}

// ValidateCSV is the read-only pre-flight for CSV payloads: header check plus
// a structural row check (>= 8 fields, non-blank second field). Intentionally
// lighter than the import path — no type/landmark validation.
func (s *ImportService) ValidateCSV(ctx context.Context, r io.Reader) *ports.ValidationResult {
	result := &ports.ValidationResult{Valid: true, Messages: []string{}, Errors: []string{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "CSV file is empty or missing header row.")
		return result
	}
	if !strings.EqualFold(strings.TrimSpace(scanner.Text()), csvImportHeader) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid CSV header. Expected: %s", csvImportHeader))
		return result
	}

	result.Messages = append(result.Messages, "CSV header is valid.")

	lineCount := 0
	validLines := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineCount++

		fields := parseCSVFields(line)
		if len(fields) >= 8 && strings.TrimSpace(fields[1]) != "" {
			validLines++
		}
	}
	if err := scanner.Err(); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("CSV validation failed: %v", err))
		return result
	}

	result.RecordCount = lineCount
	result.Messages = append(result.Messages, fmt.Sprintf("Found %d data rows in CSV file.", lineCount))

	if validLines == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "No valid data rows found in CSV file.")
	} else {
		result.Messages = append(result.Messages, fmt.Sprintf("%d rows appear valid and ready for import.", validLines))
	}

	return result
}
