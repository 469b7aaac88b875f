package admin

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"pagex/models"
	"pagex/utils"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ImportError locates one invalid field in one record of an import file.
// Record numbers are 1-based over the parsed records.
type ImportError struct {
	Record  int    `json:"record"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportValidationError fails an import atomically: when any record is
// invalid, nothing is written and every violation is reported.
type ImportValidationError struct {
	Errors []ImportError
}

func (e ImportValidationError) Error() string {
	return fmt.Sprintf("import rejected: %d invalid record field(s)", len(e.Errors))
}

// importRecord is the raw pre-validation shape shared by all three file
// formats. Dates stay strings until validation so a malformed date is a
// field error, not a parse abort.
type importRecord struct {
	Title               string   `json:"title"`
	Organization        string   `json:"organization"`
	Description         string   `json:"description"`
	FundingAmount       string   `json:"fundingAmount"`
	ApplicationDeadline string   `json:"applicationDeadline"`
	ArtForms            []string `json:"artForms"`
	Location            string   `json:"location"`
	ExperienceLevel     string   `json:"experienceLevel"`
	ApplyURL            string   `json:"applyUrl"`
}

// importColumns is the header contract for the delimited and spreadsheet formats.
var importColumns = []string{
	"title", "organization", "description", "funding_amount",
	"application_deadline", "art_forms", "location", "experience_level", "apply_url",
}

// artFormSeparator splits multi-valued cells in CSV/XLSX files.
const artFormSeparator = ";"

// ImportGrants parses the uploaded file by extension, validates the whole
// batch up front and writes all records in one insert or none at all.
func (s *DefaultAdminService) ImportGrants(filename string, data []byte) (int, error) {
	var (
		records []importRecord
		err     error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		records, err = parseJSONRecords(data)
	case ".csv":
		records, err = parseCSVRecords(data)
	case ".xlsx", ".xls":
		records, err = parseXLSXRecords(data)
	default:
		return 0, fmt.Errorf("unsupported import format %q: upload a JSON, CSV, or XLSX file", filepath.Ext(filename))
	}
	if err != nil {
		return 0, fmt.Errorf("failed to parse import file: %w", err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("import file contains no records")
	}

	inputs := make([]models.GrantInput, len(records))
	var importErrs []ImportError
	for i, rec := range records {
		input, fieldErrs := rec.toGrantInput()
		inputs[i] = input
		for field, msg := range fieldErrs {
			importErrs = append(importErrs, ImportError{Record: i + 1, Field: field, Message: msg})
		}
		for field, msg := range validateGrantInput(input) {
			importErrs = append(importErrs, ImportError{Record: i + 1, Field: field, Message: msg})
		}
	}
	if len(importErrs) > 0 {
		return 0, ImportValidationError{Errors: importErrs}
	}

	grants := make([]models.Grant, len(inputs))
	for i, input := range inputs {
		grants[i] = models.Grant{ID: uuid.New().String()}
		applyInput(&grants[i], input)
	}

	if err := s.Grants.InsertMany(grants); err != nil {
		utils.GetLogger().Error("ImportGrants: batch insert failed", zap.Error(err))
		return 0, fmt.Errorf("failed to write imported grants: %w", err)
	}

	utils.GetLogger().Info("grants imported",
		zap.Int("count", len(grants)), zap.String("file", filename))
	return len(grants), nil
}

// toGrantInput converts a raw record, reporting unparseable fields.
func (r importRecord) toGrantInput() (models.GrantInput, map[string]string) {
	fieldErrs := map[string]string{}

	input := models.GrantInput{
		Title:           r.Title,
		Organization:    r.Organization,
		Description:     r.Description,
		FundingAmount:   r.FundingAmount,
		ArtForms:        r.ArtForms,
		Location:        r.Location,
		ExperienceLevel: r.ExperienceLevel,
		ApplyURL:        r.ApplyURL,
	}

	if deadline := strings.TrimSpace(r.ApplicationDeadline); deadline != "" {
		t, err := parseDeadline(deadline)
		if err != nil {
			fieldErrs["applicationDeadline"] = fmt.Sprintf("cannot parse date %q", deadline)
		} else {
			input.ApplicationDeadline = &t
		}
	}

	return input, fieldErrs
}

func parseDeadline(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// parseJSONRecords reads an array of grant-shaped objects.
func parseJSONRecords(data []byte) ([]importRecord, error) {
	var records []importRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return records, nil
}

// parseCSVRecords reads a delimited file with the importColumns header.
func parseCSVRecords(data []byte) ([]importRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("CSV file is empty")
	}
	return recordsFromRows(rows)
}

// parseXLSXRecords reads the first sheet of a spreadsheet with the
// importColumns header.
func parseXLSXRecords(data []byte) ([]importRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet rows: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}
	return recordsFromRows(rows)
}

// recordsFromRows maps header-addressed rows onto import records. Column
// order in the file does not matter; unknown headers are ignored.
func recordsFromRows(rows [][]string) ([]importRecord, error) {
	header := map[string]int{}
	for idx, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	for _, required := range importColumns[:3] {
		if _, ok := header[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	cell := func(row []string, column string) string {
		idx, ok := header[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []importRecord
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec := importRecord{
			Title:               cell(row, "title"),
			Organization:        cell(row, "organization"),
			Description:         cell(row, "description"),
			FundingAmount:       cell(row, "funding_amount"),
			ApplicationDeadline: cell(row, "application_deadline"),
			Location:            cell(row, "location"),
			ExperienceLevel:     cell(row, "experience_level"),
			ApplyURL:            cell(row, "apply_url"),
		}
		if forms := cell(row, "art_forms"); forms != "" {
			for _, form := range strings.Split(forms, artFormSeparator) {
				if form = strings.TrimSpace(form); form != "" {
					rec.ArtForms = append(rec.ArtForms, form)
				}
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
