package admin

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const importCSVHeader = "title,organization,description,funding_amount,application_deadline,art_forms,location,experience_level,apply_url\n"

func TestImportGrants_JSON(t *testing.T) {
	t.Run("Given a valid JSON batch When imported Then every record is written once", func(t *testing.T) {
		grants := newMockGrantRepo()
		svc := &DefaultAdminService{Grants: grants, Saved: &mockSavedRepo{}}

		data := []byte(`[
			{"title":"Mural Fund","organization":"City Arts","description":"Public murals.","artForms":["Visual Arts"],"applicationDeadline":"2026-10-01"},
			{"title":"Composer Residency","organization":"Philharmonic","description":"Season residency.","artForms":["Music"],"experienceLevel":"Emerging"}
		]`)

		count, err := svc.ImportGrants("grants.json", data)

		if err != nil {
			t.Fatalf("ImportGrants failed: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 imported, got %d", count)
		}
		if grants.insertManyCalls != 1 {
			t.Errorf("expected a single batch insert, got %d", grants.insertManyCalls)
		}
		for _, g := range grants.inserted {
			if g.ID == "" {
				t.Error("imported grant missing an assigned id")
			}
		}
	})

	t.Run("Given one invalid record among valid ones When imported Then nothing is written", func(t *testing.T) {
		grants := newMockGrantRepo()
		svc := &DefaultAdminService{Grants: grants, Saved: &mockSavedRepo{}}

		data := []byte(`[
			{"title":"Mural Fund","organization":"City Arts","description":"Public murals.","artForms":["Visual Arts"]},
			{"title":"","organization":"Broken Org","description":"Missing title.","artForms":["Music"]},
			{"title":"Composer Residency","organization":"Philharmonic","description":"Season residency.","artForms":["Music"]}
		]`)

		_, err := svc.ImportGrants("grants.json", data)

		var ivErr ImportValidationError
		if !errors.As(err, &ivErr) {
			t.Fatalf("expected ImportValidationError, got %v", err)
		}
		if len(ivErr.Errors) != 1 {
			t.Fatalf("expected 1 import error, got %d: %v", len(ivErr.Errors), ivErr.Errors)
		}
		if ivErr.Errors[0].Record != 2 || ivErr.Errors[0].Field != "title" {
			t.Errorf("expected record 2 title error, got %+v", ivErr.Errors[0])
		}
		if grants.insertManyCalls != 0 {
			t.Errorf("a rejected import must write nothing, got %d inserts", grants.insertManyCalls)
		}
	})

	t.Run("Given a malformed deadline When imported Then it is a located field error", func(t *testing.T) {
		svc := &DefaultAdminService{Grants: newMockGrantRepo(), Saved: &mockSavedRepo{}}

		data := []byte(`[{"title":"Mural Fund","organization":"City Arts","description":"Public murals.","artForms":["Visual Arts"],"applicationDeadline":"next spring"}]`)

		_, err := svc.ImportGrants("grants.json", data)

		var ivErr ImportValidationError
		if !errors.As(err, &ivErr) {
			t.Fatalf("expected ImportValidationError, got %v", err)
		}
		if ivErr.Errors[0].Field != "applicationDeadline" {
			t.Errorf("expected a deadline field error, got %+v", ivErr.Errors[0])
		}
	})
}

func TestImportGrants_CSV(t *testing.T) {
	t.Run("Given a valid CSV When imported Then rows map onto grants", func(t *testing.T) {
		grants := newMockGrantRepo()
		svc := &DefaultAdminService{Grants: grants, Saved: &mockSavedRepo{}}

		csv := importCSVHeader +
			`Mural Fund,City Arts,Public murals.,"$10,000",2026-10-01,Visual Arts;Photography,Chicago,Emerging,https://cityarts.example/apply` + "\n" +
			"Composer Residency,Philharmonic,Season residency.,,,Music,,All Levels,\n"

		count, err := svc.ImportGrants("grants.csv", []byte(csv))

		if err != nil {
			t.Fatalf("ImportGrants failed: %v", err)
		}
		if count != 2 {
			t.Fatalf("expected 2 imported, got %d", count)
		}

		first := grants.inserted[0]
		if first.FundingAmount != "$10,000" {
			t.Errorf("quoted funding amount mishandled: %q", first.FundingAmount)
		}
		if len(first.ArtForms) != 2 || first.ArtForms[0] != "Visual Arts" || first.ArtForms[1] != "Photography" {
			t.Errorf("semicolon art form split mishandled: %v", first.ArtForms)
		}
		if first.ApplicationDeadline == nil || first.ApplicationDeadline.Format("2006-01-02") != "2026-10-01" {
			t.Errorf("deadline mishandled: %v", first.ApplicationDeadline)
		}
		if grants.inserted[1].ApplicationDeadline != nil {
			t.Errorf("empty deadline should stay unset, got %v", grants.inserted[1].ApplicationDeadline)
		}
	})

	t.Run("Given a CSV missing a required column When imported Then the file is rejected", func(t *testing.T) {
		svc := &DefaultAdminService{Grants: newMockGrantRepo(), Saved: &mockSavedRepo{}}

		csv := "title,description\nMural Fund,Public murals.\n"
		_, err := svc.ImportGrants("grants.csv", []byte(csv))

		if err == nil || !strings.Contains(err.Error(), "organization") {
			t.Fatalf("expected a missing-column error naming organization, got %v", err)
		}
	})

	t.Run("Given blank rows When imported Then they are skipped", func(t *testing.T) {
		grants := newMockGrantRepo()
		svc := &DefaultAdminService{Grants: grants, Saved: &mockSavedRepo{}}

		csv := importCSVHeader +
			"Mural Fund,City Arts,Public murals.,,,Visual Arts,,,\n" +
			",,,,,,,,\n"

		count, err := svc.ImportGrants("grants.csv", []byte(csv))
		if err != nil {
			t.Fatalf("ImportGrants failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected the blank row skipped, got %d imported", count)
		}
	})
}

func TestImportGrants_XLSX(t *testing.T) {
	t.Run("Given a valid spreadsheet When imported Then rows map onto grants", func(t *testing.T) {
		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		rows := [][]interface{}{
			{"title", "organization", "description", "funding_amount", "application_deadline", "art_forms", "location", "experience_level", "apply_url"},
			{"Mural Fund", "City Arts", "Public murals.", "$10,000", "2026-10-01", "Visual Arts;Design", "Chicago", "Emerging", "https://cityarts.example/apply"},
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				t.Fatalf("failed to build test sheet: %v", err)
			}
		}
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			t.Fatalf("failed to serialize test sheet: %v", err)
		}

		grants := newMockGrantRepo()
		svc := &DefaultAdminService{Grants: grants, Saved: &mockSavedRepo{}}

		count, err := svc.ImportGrants("grants.xlsx", buf.Bytes())
		if err != nil {
			t.Fatalf("ImportGrants failed: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected 1 imported, got %d", count)
		}
		if got := grants.inserted[0].Organization; got != "City Arts" {
			t.Errorf("unexpected organization: %q", got)
		}
		if len(grants.inserted[0].ArtForms) != 2 {
			t.Errorf("expected 2 art forms, got %v", grants.inserted[0].ArtForms)
		}
	})
}

func TestImportGrants_Unsupported(t *testing.T) {
	t.Run("Given an unsupported extension When imported Then the file is rejected up front", func(t *testing.T) {
		grants := newMockGrantRepo()
		svc := &DefaultAdminService{Grants: grants, Saved: &mockSavedRepo{}}

		_, err := svc.ImportGrants("grants.pdf", []byte("%PDF-1.4"))
		if err == nil {
			t.Fatal("expected an unsupported-format error")
		}
		if grants.insertManyCalls != 0 {
			t.Errorf("no insert expected, got %d", grants.insertManyCalls)
		}
	})
}
