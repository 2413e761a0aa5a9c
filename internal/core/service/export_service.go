package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

// csvExportHeader adds TripName to the import column set. Exported CSV is a
// superset of what the import side accepts; see DESIGN.md for the header
// drift decision.
const csvExportHeader = csvImportHeader + ",TripName"

const exportDateLayout = "2006-01-02"

type ExportService struct {
	locations ports.LocationRepository
	log       zerolog.Logger
}

func NewExportService(locations ports.LocationRepository, log zerolog.Logger) *ExportService {
	return &ExportService{locations: locations, log: log}
}

// exportLocation is the camelCase wire shape of one exported record.
type exportLocation struct {
	Name         string   `json:"name"`
	TripName     string   `json:"tripName"`
	LocationType string   `json:"locationType"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	ZipCode      string   `json:"zipCode"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	StartDate    string   `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Rating       int      `json:"rating"`
	Comments     string   `json:"comments"`
	Tags         []string `json:"tags"`
}

// ExportJSON serializes all of a user's locations as a {"locations": [...]}
// document, dates as yyyy-MM-dd.
func (s *ExportService) ExportJSON(ctx context.Context, userID string) ([]byte, error) {
	locations, err := s.locations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	out := struct {
		Locations []exportLocation `json:"locations"`
	}{Locations: make([]exportLocation, 0, len(locations))}

	for _, loc := range locations {
		var endDate *string
		if loc.EndDate != nil {
			formatted := loc.EndDate.Format(exportDateLayout)
			endDate = &formatted
		}
		tags := loc.Tags
		if tags == nil {
			tags = []string{}
		}
		out.Locations = append(out.Locations, exportLocation{
			Name:         loc.Name,
			TripName:     loc.TripName,
			LocationType: loc.LocationType,
			Address:      loc.Address,
			City:         loc.City,
			State:        loc.State,
			ZipCode:      loc.ZipCode,
			Latitude:     loc.Latitude,
			Longitude:    loc.Longitude,
			StartDate:    loc.StartDate.Format(exportDateLayout),
			EndDate:      endDate,
			Rating:       loc.Rating,
			Comments:     loc.Comments,
			Tags:         tags,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}

	s.log.Info().Str("user_id", userID).Int("records", len(locations)).Msg("json export finished")
	return data, nil
}

// ExportCSV serializes all of a user's locations as delimited text with
// per-field escaping.
func (s *ExportService) ExportCSV(ctx context.Context, userID string) ([]byte, error) {
	locations, err := s.locations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(csvExportHeader)
	sb.WriteByte('\n')

	for _, loc := range locations {
		endDate := ""
		if loc.EndDate != nil {
			endDate = loc.EndDate.Format(exportDateLayout)
		}
		fields := []string{
			escapeCSVField(loc.Name),
			loc.StartDate.Format(exportDateLayout),
			endDate,
			escapeCSVField(loc.Comments),
			escapeCSVField(loc.Address),
			strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
			strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
			escapeCSVField(loc.LocationType),
			escapeCSVField(loc.TripName),
		}
		sb.WriteString(strings.Join(fields, ","))
		sb.WriteByte('\n')
	}

	s.log.Info().Str("user_id", userID).Int("records", len(locations)).Msg("csv export finished")
	return []byte(sb.String()), nil
}
