package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestImportService(repo *stubLocationRepo, types *stubTypeRepo, parks *stubParkRepo) *ImportService {
	validator := NewTypeValidator(types, parks)
	return NewImportService(repo, validator, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// JSON import
// ---------------------------------------------------------------------------

func TestImportJSON_MalformedDocument(t *testing.T) {
	repo := newStubLocationRepo()
	svc := newTestImportService(repo, newStubTypeRepo(), newStubParkRepo())

	result := svc.ImportJSON(context.Background(), strings.NewReader("{not json"), "user-1")

	if result.Success {
		t.Error("expected Success=false")
	}
	if result.TotalRecords != 0 || result.ImportedRecords != 0 || result.FailedRecords != 0 {
		t.Errorf("structural failure must not count records, got %+v", result)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("want a single structural error, got %v", result.Errors)
	}
	if len(repo.created) != 0 {
		t.Error("nothing may be persisted on structural failure")
	}
}

func TestImportJSON_MissingLocationsArray(t *testing.T) {
	svc := newTestImportService(newStubLocationRepo(), newStubTypeRepo(), newStubParkRepo())

	result := svc.ImportJSON(context.Background(), strings.NewReader(`{"stops": []}`), "user-1")

	if result.Success {
		t.Error("expected Success=false")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Missing 'locations' array") {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestImportJSON_EmptyBatch(t *testing.T) {
	svc := newTestImportService(newStubLocationRepo(), newStubTypeRepo(), newStubParkRepo())

	result := svc.ImportJSON(context.Background(), strings.NewReader(`{"locations": []}`), "user-1")

	if result.Success {
		t.Error("empty batch imports nothing, Success must be false")
	}
	if result.TotalRecords != 0 {
		t.Errorf("TotalRecords = %d, want 0", result.TotalRecords)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestImportJSON_ImportsAndAppliesDefaults(t *testing.T) {
	repo := newStubLocationRepo()
	svc := newTestImportService(repo, newStubTypeRepo(), newStubParkRepo())

	payload := `{"locations": [
		{"name": "Grand Lodge", "locationType": "Hotel", "address": "1 Main St, Bozeman, MT 59715",
		 "city": "Bozeman", "state": "MT", "zipCode": "59715",
		 "latitude": 45.68, "longitude": -111.04, "startDate": "2024-06-01",
		 "rating": 4, "comments": "great stay", "tags": ["summer", "family"]},
		{"latitude": 1.0, "longitude": 2.0}
	]}`

	result := svc.ImportJSON(context.Background(), strings.NewReader(payload), "user-1")

	if !result.Success {
		t.Fatalf("expected success, errors: %v", result.Errors)
	}
	if result.TotalRecords != 2 || result.ImportedRecords != 2 || result.FailedRecords != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	first := repo.created[0]
	if first.Name != "Grand Lodge" || first.State != "MT" || first.Latitude != 45.68 {
		t.Errorf("first record mapped wrong: %+v", first)
	}
	if first.StartDate.Format("2006-01-02") != "2024-06-01" {
		t.Errorf("start date = %v", first.StartDate)
	}
	if len(first.Tags) != 2 {
		t.Errorf("tags = %v", first.Tags)
	}

	// Absent name and locationType fall back to "Unknown" / "Other".
	second := repo.created[1]
	if second.Name != "Unknown" {
		t.Errorf("defaulted name = %q, want Unknown", second.Name)
	}
	if second.LocationType != "Other" {
		t.Errorf("defaulted type = %q, want Other", second.LocationType)
	}
}

func TestImportJSON_CaseInsensitiveFieldNames(t *testing.T) {
	repo := newStubLocationRepo()
	svc := newTestImportService(repo, newStubTypeRepo(), newStubParkRepo())

	payload := `{"Locations": [{"NAME": "Grand Lodge", "LOCATIONTYPE": "Hotel", "Latitude": 45.68, "Longitude": -111.04}]}`

	result := svc.ImportJSON(context.Background(), strings.NewReader(payload), "user-1")
	if !result.Success || result.ImportedRecords != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if repo.created[0].Name != "Grand Lodge" {
		t.Errorf("name = %q", repo.created[0].Name)
	}
}

func TestImportJSON_PerRecordIsolation(t *testing.T) {
	repo := newStubLocationRepo()
	repo.failOn = "Broken Lodge"
	svc := newTestImportService(repo, newStubTypeRepo(), newStubParkRepo())

	payload := `{"locations": [
		{"name": "Good Camp", "locationType": "RV Park", "latitude": 1, "longitude": 2},
		{"name": "Totally Made Up Park", "locationType": "National Park", "latitude": 1, "longitude": 2},
		{"name": "Bad Type Inn", "locationType": "Castle", "latitude": 1, "longitude": 2},
		{"name": "Broken Lodge", "locationType": "Hotel", "latitude": 1, "longitude": 2},
		{"name": "Yellowstone", "locationType": "National Park", "latitude": 44.4, "longitude": -110.5}
	]}`

	result := svc.ImportJSON(context.Background(), strings.NewReader(payload), "user-1")

	if result.TotalRecords != 5 || result.ImportedRecords != 2 || result.FailedRecords != 3 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if !result.Success {
		t.Error("partial success still sets Success=true")
	}
	if len(result.Errors) != 3 {
		t.Fatalf("want 3 errors, got %v", result.Errors)
	}
	for i, wantPrefix := range []string{
		"Failed to import location 'Totally Made Up Park':",
		"Failed to import location 'Bad Type Inn':",
		"Failed to import location 'Broken Lodge':",
	} {
		if !strings.HasPrefix(result.Errors[i], wantPrefix) {
			t.Errorf("error[%d] = %q, want prefix %q", i, result.Errors[i], wantPrefix)
		}
	}
}

func TestImportJSON_UndecodableElementIsPerRecord(t *testing.T) {
	repo := newStubLocationRepo()
	svc := newTestImportService(repo, newStubTypeRepo(), newStubParkRepo())

	// Second element has a non-numeric latitude: it alone fails.
	payload := `{"locations": [
		{"name": "Good Camp", "locationType": "RV Park", "latitude": 1, "longitude": 2},
		{"name": "Sideways Inn", "locationType": "Hotel", "latitude": "north", "longitude": 2}
	]}`

	result := svc.ImportJSON(context.Background(), strings.NewReader(payload), "user-1")

	if result.TotalRecords != 2 || result.ImportedRecords != 1 || result.FailedRecords != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if !strings.Contains(result.Errors[0], "Sideways Inn") {
		t.Errorf("error should locate the record by name: %q", result.Errors[0])
	}
}

func TestImportJSON_NoDeduplication(t *testing.T) {
	repo := newStubLocationRepo()
	svc := newTestImportService(repo, newStubTypeRepo(), newStubParkRepo())

	payload := `{"locations": [{"name": "Grand Lodge", "locationType": "Hotel", "latitude": 1, "longitude": 2}]}`

	first := svc.ImportJSON(context.Background(), strings.NewReader(payload), "user-1")
	second := svc.ImportJSON(context.Background(), strings.NewReader(payload), "user-1")

	if !first.Success || !second.Success {
		t.Fatal("both imports should succeed")
	}
	// Importing the same batch twice persists two copies.
	if len(repo.created) != 2 {
		t.Errorf("want 2 persisted copies, got %d", len(repo.created))
	}
}

// ---------------------------------------------------------------------------
// CSV import
// ---------------------------------------------------------------------------

const csvHeader = "Location,Arrival,Departure,Comments,Address,Latitude,Longitude,Type"

func TestImportCSV_EmptyInput(t *testing.T) {
	svc := newTestImportService(newStubLocationRepo(), newStubTypeRepo(), newStubParkRepo())

	for _, input := range []string{"", "\n", "   \n"} {
		result := svc.ImportCSV(context.Background(), strings.NewReader(input), "user-1")
		if result.Success {
			t.Errorf("input %q: expected Success=false", input)
		}
		if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "empty or missing header") {
			t.Errorf("input %q: unexpected errors %v", input, result.Errors)
		}
	}
}

func TestImportCSV_HeaderMismatch(t *testing.T) {
	svc := newTestImportService(newStubLocationRepo(), newStubTypeRepo(), newStubParkRepo())

	result := svc.ImportCSV(context.Background(), strings.NewReader("Wrong,Header\ndata"), "user-1")

	if result.Success {
		t.Error("expected Success=false")
	}
	if result.TotalRecords != 0 {
		t.Errorf("TotalRecords = %d, want 0 (no rows read after header mismatch)", result.TotalRecords)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Invalid CSV header") {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestImportCSV_HeaderIsCaseInsensitive(t *testing.T) {
	repo := newStubLocationRepo()
	svc := newTestImportService(repo, newStubTypeRepo(), newStubParkRepo())

	input := strings.ToUpper(csvHeader) + "\n" +
		"Grand Lodge,2024-06-01,2024-06-03,nice,\"1 Main St, Bozeman, MT 59715\",45.68,-111.04,Hotel\n"

	result := svc.ImportCSV(context.Background(), strings.NewReader(input), "user-1")
	if !result.Success || result.ImportedRecords != 1 {
		t.Fatalf("unexpected result: %+v errors=%v", result, result.Errors)
	}
}

func TestImportCSV_MapsRowAndDerivesAddressParts(t *testing.T) {
	repo := newStubLocationRepo()
	svc := newTestImportService(repo, newStubTypeRepo(), newStubParkRepo())

	input := csvHeader + "\n" +
		"Grand Lodge,2024-06-01,2024-06-03,\"cozy, clean\",\"1 Main St, Bozeman, MT 59715\",45.68,-111.04,Hotel\n"

	result := svc.ImportCSV(context.Background(), strings.NewReader(input), "user-1")
	if !result.Success {
		t.Fatalf("errors: %v", result.Errors)
	}

	loc := repo.created[0]
	if loc.Name != "Grand Lodge" || loc.LocationType != "Hotel" {
		t.Errorf("mapped wrong: %+v", loc)
	}
	if loc.Comments != "cozy, clean" {
		t.Errorf("quoted comment mangled: %q", loc.Comments)
	}
	if loc.City != "Bozeman" || loc.State != "MT" || loc.ZipCode != "59715" {
		t.Errorf("address parts not derived: city=%q state=%q zip=%q", loc.City, loc.State, loc.ZipCode)
	}
	if loc.StartDate.Format("2006-01-02") != "2024-06-01" {
		t.Errorf("arrival = %v", loc.StartDate)
	}
	if loc.EndDate == nil || loc.EndDate.Format("2006-01-02") != "2024-06-03" {
		t.Errorf("departure = %v", loc.EndDate)
	}
	// The CSV format carries no rating column or tags.
	if loc.Rating != 5 {
		t.Errorf("rating = %d, want sentinel 5", loc.Rating)
	}
	if loc.Tags == nil || len(loc.Tags) != 0 {
		t.Errorf("tags = %v, want empty list", loc.Tags)
	}
}

func TestImportCSV_MixedValidityBatch(t *testing.T) {
	repo := newStubLocationRepo()
	svc := newTestImportService(repo, newStubTypeRepo(), newStubParkRepo())

	input := csvHeader + "\n" +
		"Camp One,2024-06-01,,ok,\"Moab, UT 84532\",38.57,-109.55,RV Park\n" +
		"Camp Two,2024-06-01,,ok,\"Moab, UT 84532\",not-a-number,-109.55,RV Park\n" +
		"Camp Three,2024-06-01,,ok,\"Moab, UT 84532\",38.59,-109.55,RV Park\n"

	result := svc.ImportCSV(context.Background(), strings.NewReader(input), "user-1")

	if result.TotalRecords != 3 || result.ImportedRecords != 2 || result.FailedRecords != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if !result.Success {
		t.Error("partial success still sets Success=true")
	}
	// Header is line 1, so the failing second data row is line 3.
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Line 3:") {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Invalid latitude value: not-a-number") {
		t.Errorf("error should name the bad value: %q", result.Errors[0])
	}
}

func TestImportCSV_BlankLinesSkipped(t *testing.T) {
	repo := newStubLocationRepo()
	svc := newTestImportService(repo, newStubTypeRepo(), newStubParkRepo())

	input := csvHeader + "\n" +
		"\n" +
		"Camp One,2024-06-01,,ok,\"Moab, UT 84532\",38.57,-109.55,RV Park\n" +
		"   \n" +
		"Camp Two,2024-06-01,,ok,\"Moab, UT 84532\",38.58,-109.55,RV Park\n"

	result := svc.ImportCSV(context.Background(), strings.NewReader(input), "user-1")

	if result.TotalRecords != 2 || result.ImportedRecords != 2 {
		t.Fatalf("blank lines must not count: %+v", result)
	}
	// Line numbers in locators still reflect the physical file.
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestImportCSV_ShortRowAndMissingName(t *testing.T) {
	svc := newTestImportService(newStubLocationRepo(), newStubTypeRepo(), newStubParkRepo())

	input := csvHeader + "\n" +
		"only,three,fields\n" +
		",2024-06-01,,ok,\"Moab, UT\",38.57,-109.55,RV Park\n"

	result := svc.ImportCSV(context.Background(), strings.NewReader(input), "user-1")

	if result.TotalRecords != 2 || result.FailedRecords != 2 || result.Success {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if !strings.Contains(result.Errors[0], "Line 2:") || !strings.Contains(result.Errors[0], "Invalid CSV format") {
		t.Errorf("short row error: %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "Line 3:") || !strings.Contains(result.Errors[1], "Location name is required") {
		t.Errorf("missing name error: %q", result.Errors[1])
	}
}

func TestImportCSV_UnparseableDatesAreAbsent(t *testing.T) {
	repo := newStubLocationRepo()
	svc := newTestImportService(repo, newStubTypeRepo(), newStubParkRepo())

	input := csvHeader + "\n" +
		"Camp One,sometime last summer,whenever,ok,\"Moab, UT 84532\",38.57,-109.55,RV Park\n"

	result := svc.ImportCSV(context.Background(), strings.NewReader(input), "user-1")
	if !result.Success || result.FailedRecords != 0 {
		t.Fatalf("bad dates must not fail the row: %+v errors=%v", result, result.Errors)
	}

	loc := repo.created[0]
	if loc.StartDate.IsZero() {
		t.Error("unparseable arrival should default to now, not zero")
	}
	if loc.EndDate != nil {
		t.Errorf("unparseable departure should stay absent, got %v", loc.EndDate)
	}
}

func TestImportCSV_BlankTypeDefaultsToOther(t *testing.T) {
	repo := newStubLocationRepo()
	svc := newTestImportService(repo, newStubTypeRepo(), newStubParkRepo())

	input := csvHeader + "\n" +
		"Camp One,2024-06-01,,ok,\"Moab, UT 84532\",38.57,-109.55,\n"

	result := svc.ImportCSV(context.Background(), strings.NewReader(input), "user-1")
	if !result.Success {
		t.Fatalf("errors: %v", result.Errors)
	}
	if repo.created[0].LocationType != "Other" {
		t.Errorf("type = %q, want Other", repo.created[0].LocationType)
	}
}

// ---------------------------------------------------------------------------
// Validation-only pipelines
// ---------------------------------------------------------------------------

func TestValidateJSON(t *testing.T) {
	svc := newTestImportService(newStubLocationRepo(), newStubTypeRepo(), newStubParkRepo())
	ctx := context.Background()

	t.Run("valid batch", func(t *testing.T) {
		payload := `{"locations": [
			{"name": "Grand Lodge", "state": "MT"},
			{"name": "", "state": "UT"}
		]}`
		result := svc.ValidateJSON(ctx, strings.NewReader(payload))
		if !result.Valid {
			t.Fatalf("errors: %v", result.Errors)
		}
		if result.RecordCount != 2 {
			t.Errorf("RecordCount = %d, want 2", result.RecordCount)
		}
		if len(result.Messages) != 2 ||
			!strings.Contains(result.Messages[0], "Found 2 locations") ||
			!strings.Contains(result.Messages[1], "1 locations are valid") {
			t.Errorf("messages: %v", result.Messages)
		}
	})

	t.Run("no valid records", func(t *testing.T) {
		result := svc.ValidateJSON(ctx, strings.NewReader(`{"locations": [{"name": "x"}]}`))
		if result.Valid {
			t.Error("record without state must not validate")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		result := svc.ValidateJSON(ctx, strings.NewReader("[,"))
		if result.Valid || len(result.Errors) != 1 {
			t.Errorf("unexpected: %+v", result)
		}
	})
}

func TestValidateCSV(t *testing.T) {
	svc := newTestImportService(newStubLocationRepo(), newStubTypeRepo(), newStubParkRepo())
	ctx := context.Background()

	t.Run("valid rows counted", func(t *testing.T) {
		input := csvHeader + "\n" +
			"Camp One,2024-06-01,,ok,\"Moab, UT\",38.57,-109.55,RV Park\n" +
			"Camp Two,,,,,,,\n" + // blank arrival: structurally complete but not valid
			"short,row\n"
		result := svc.ValidateCSV(ctx, strings.NewReader(input))
		if !result.Valid {
			t.Fatalf("errors: %v", result.Errors)
		}
		if result.RecordCount != 3 {
			t.Errorf("RecordCount = %d, want 3", result.RecordCount)
		}
		found := false
		for _, msg := range result.Messages {
			if strings.Contains(msg, "1 rows appear valid") {
				found = true
			}
		}
		if !found {
			t.Errorf("messages: %v", result.Messages)
		}
	})

	t.Run("header mismatch", func(t *testing.T) {
		result := svc.ValidateCSV(ctx, strings.NewReader("Wrong,Header\ndata"))
		if result.Valid || !strings.Contains(result.Errors[0], "Invalid CSV header") {
			t.Errorf("unexpected: %+v", result)
		}
	})

	// The validation-only path never touches the type validator or storage:
	// an unknown type in a structurally sound row still validates.
	t.Run("no semantic validation", func(t *testing.T) {
		input := csvHeader + "\n" +
			"Camp One,2024-06-01,,ok,\"Moab, UT\",38.57,-109.55,Castle\n"
		result := svc.ValidateCSV(ctx, strings.NewReader(input))
		if !result.Valid {
			t.Errorf("structural check must ignore type semantics: %v", result.Errors)
		}
	})
}
