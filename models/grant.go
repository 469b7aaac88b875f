package models

import "time"

// Grant is a single catalog entry: a grant or residency artists can apply to.
type Grant struct {
	ID                  string     `bson:"id" json:"id"`
	Title               string     `bson:"title" json:"title"`
	Organization        string     `bson:"organization" json:"organization"`
	Description         string     `bson:"description" json:"description"`
	FundingAmount       string     `bson:"fundingAmount,omitempty" json:"fundingAmount,omitempty"`
	ApplicationDeadline *time.Time `bson:"applicationDeadline,omitempty" json:"applicationDeadline,omitempty"`
	ArtForms            []string   `bson:"artForms" json:"artForms"`
	Location            string     `bson:"location,omitempty" json:"location,omitempty"`
	ExperienceLevel     string     `bson:"experienceLevel,omitempty" json:"experienceLevel,omitempty"`
	ApplyURL            string     `bson:"applyUrl,omitempty" json:"applyUrl,omitempty"`
	CreatedAt           time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// GrantInput carries the editable fields of a grant as submitted by curation
// (create, update, and every bulk-import format reduce to this shape).
type GrantInput struct {
	Title               string     `json:"title"`
	Organization        string     `json:"organization"`
	Description         string     `json:"description"`
	FundingAmount       string     `json:"fundingAmount,omitempty"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	ArtForms            []string   `json:"artForms"`
	Location            string     `json:"location,omitempty"`
	ExperienceLevel     string     `json:"experienceLevel,omitempty"`
	ApplyURL            string     `json:"applyUrl,omitempty"`
}

// ArtForms is the closed set of art form tags a grant may carry.
var ArtForms = []string{
	"Visual Arts",
	"Performing Arts",
	"Music",
	"Literature",
	"Film & Media",
	"Digital Arts",
	"Multidisciplinary",
	"Sculpture",
	"Photography",
	"Design",
	"Crafts",
}

// ExperienceLevels is the closed set of experience level tags.
var ExperienceLevels = []string{
	"Emerging",
	"Mid-Career",
	"Established",
	"Student",
	"All Levels",
}

// IsValidArtForm reports whether form is a member of the ArtForms set.
func IsValidArtForm(form string) bool {
	for _, f := range ArtForms {
		if f == form {
			return true
		}
	}
	return false
}

// IsValidExperienceLevel reports whether level is a member of the ExperienceLevels set.
func IsValidExperienceLevel(level string) bool {
	for _, l := range ExperienceLevels {
		if l == level {
			return true
		}
	}
	return false
}

// GrantSort selects the single active ordering for a catalog listing.
type GrantSort string

const (
	SortByDeadline GrantSort = "deadline" // soonest first, grants without a deadline last
	SortByTitle    GrantSort = "title"    // lexicographic ascending
	SortByRecent   GrantSort = "recent"   // newest first
)

// GrantFilter is the optional filter set applied to a catalog listing.
// All populated criteria are ANDed; Search alone fans out as an OR across
// title, description and organization.
type GrantFilter struct {
	Search          string   `json:"search,omitempty" form:"search"`
	ArtForms        []string `json:"artForms,omitempty" form:"artForms"`
	Location        string   `json:"location,omitempty" form:"location"`
	ExperienceLevel string   `json:"experienceLevel,omitempty" form:"experienceLevel"`
}

// IsZero reports whether no filter criterion is set.
func (f GrantFilter) IsZero() bool {
	return f.Search == "" && len(f.ArtForms) == 0 && f.Location == "" && f.ExperienceLevel == ""
}
