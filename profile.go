package jobscout

import (
	"sort"
	"strings"
	"time"
)

// ParserProfile is a reusable extraction recipe for one careers page layout.
// ListSelector locates the repeating job elements; Fields are evaluated
// relative to each of them.
type ParserProfile struct {
	ListSelector     string                 `json:"listSelector"`
	Fields           map[string]ParserField `json:"fields"`
	TagFields        []string               `json:"tagFields,omitempty"`
	DescriptionField string                 `json:"descriptionField,omitempty"`
	DetailFetch      *DetailFetchConfig     `json:"detailFetch,omitempty"`
}

// DetailFetchConfig enables fetching each job's detail page to fill in the
// description. URLField names the record value the detail URL comes from.
type DetailFetchConfig struct {
	Enabled  bool   `json:"enabled"`
	URLField string `json:"urlField,omitempty"` // "url" or "externalId"
	BaseURL  string `json:"baseUrl,omitempty"`
}

// IsConfigured reports whether the profile has a list selector and a title field.
func (p *ParserProfile) IsConfigured() bool {
	if p == nil || strings.TrimSpace(p.ListSelector) == "" {
		return false
	}
	_, ok := p.Fields[FieldNameTitle]
	return ok
}

// Validate returns an error if the profile cannot be used for parsing.
func (p *ParserProfile) Validate() error {
	if !p.IsConfigured() {
		return Errorf(EINVALID, "profile requires a list selector and a title field")
	}
	for _, name := range p.FieldNames() {
		f := p.Fields[name]
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FieldNames returns the configured field names in sorted order.
func (p *ParserProfile) FieldNames() []string {
	names := make([]string, 0, len(p.Fields))
	for name := range p.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParsedJob is one normalized job record assembled from a list element.
type ParsedJob struct {
	ExternalID  string     `json:"externalId"`
	Title       string     `json:"title"`
	Company     string     `json:"company,omitempty"`
	Location    string     `json:"location,omitempty"`
	URL         string     `json:"url,omitempty"`
	Level       string     `json:"level,omitempty"`
	PostedAt    *time.Time `json:"postedAt,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Key returns the identity used to suppress duplicates within a run.
func (j *ParsedJob) Key() string {
	if j.URL != "" {
		return j.URL
	}
	return j.ExternalID
}
