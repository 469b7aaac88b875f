package admin

import (
	"fmt"
	"strings"

	"pagex/models"
)

// ValidationError reports field-level problems with a curation submission.
// The store is never called while one is outstanding.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "grant validation failed: " + strings.Join(parts, "; ")
}

// validateGrantInput checks the curation rules: the three required text
// fields, a non-empty art form set, and enum membership for tags.
func validateGrantInput(input models.GrantInput) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(input.Organization) == "" {
		fields["organization"] = "organization is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "description is required"
	}
	if len(input.ArtForms) == 0 {
		fields["artForms"] = "at least one art form must be selected"
	}
	for _, form := range input.ArtForms {
		if !models.IsValidArtForm(form) {
			fields["artForms"] = fmt.Sprintf("unknown art form %q", form)
			break
		}
	}
	if input.ExperienceLevel != "" && !models.IsValidExperienceLevel(input.ExperienceLevel) {
		fields["experienceLevel"] = fmt.Sprintf("unknown experience level %q", input.ExperienceLevel)
	}

	return fields
}

// applyInput copies the editable fields onto a grant record (full replace).
func applyInput(grant *models.Grant, input models.GrantInput) {
	grant.Title = strings.TrimSpace(input.Title)
	grant.Organization = strings.TrimSpace(input.Organization)
	grant.Description = strings.TrimSpace(input.Description)
	grant.FundingAmount = strings.TrimSpace(input.FundingAmount)
	grant.ApplicationDeadline = input.ApplicationDeadline
	grant.ArtForms = input.ArtForms
	grant.Location = strings.TrimSpace(input.Location)
	grant.ExperienceLevel = input.ExperienceLevel
	grant.ApplyURL = strings.TrimSpace(input.ApplyURL)
}
