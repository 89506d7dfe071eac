package goquery

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/jobscout"
)

const minTitleRunes = 3

// Ensure Parser implements jobscout.ProfileParser at compile time.
var _ jobscout.ProfileParser = (*Parser)(nil)

// Parser runs parser profiles against HTML snapshots.
// Parser holds only immutable configuration and is safe for concurrent use.
type Parser struct {
	locationKeywords []string
}

// NewParser creates a Parser using the location keywords from cfg.
func NewParser(cfg jobscout.Config) *Parser {
	return &Parser{locationKeywords: append([]string(nil), cfg.LocationKeywords...)}
}

// Parse returns the job records profile finds in rawHTML.
func (p *Parser) Parse(profile *jobscout.ParserProfile, rawHTML, pageURL string) ([]jobscout.ParsedJob, error) {
	if !profile.IsConfigured() {
		return nil, jobscout.Errorf(jobscout.EINVALID, "profile requires a list selector and a title field")
	}
	pg, err := newPage(rawHTML, pageURL)
	if err != nil {
		return nil, err
	}
	return p.parse(profile, pg)
}

func (p *Parser) parse(profile *jobscout.ParserProfile, pg *page) ([]jobscout.ParsedJob, error) {
	items, err := listItems(profile, pg)
	if err != nil {
		return nil, err
	}
	var jobs []jobscout.ParsedJob
	items.Each(func(_ int, item *goquery.Selection) {
		if job, ok := p.assemble(profile, item, pg); ok {
			jobs = append(jobs, job)
		}
	})
	return jobs, nil
}

func listItems(profile *jobscout.ParserProfile, pg *page) (*goquery.Selection, error) {
	items, ok := find(pg.doc.Selection, profile.ListSelector)
	if !ok {
		return nil, jobscout.Errorf(jobscout.EINVALID, "list selector %q is not valid CSS", profile.ListSelector)
	}
	return items, nil
}

// assemble builds one record from item. Records missing a required field
// or without a usable title are dropped.
func (p *Parser) assemble(profile *jobscout.ParserProfile, item *goquery.Selection, pg *page) (jobscout.ParsedJob, bool) {
	values := make(map[string]any, len(profile.Fields))
	for _, name := range profile.FieldNames() {
		f := profile.Fields[name]
		if f.Name == "" {
			f.Name = name
		}
		v := p.extract(&f, item, pg)
		if v == nil && f.Required {
			return jobscout.ParsedJob{}, false
		}
		values[name] = v
	}

	title := asText(values[jobscout.FieldNameTitle])
	if utf8.RuneCountInString(title) < minTitleRunes || isJunkTitle(title) {
		return jobscout.ParsedJob{}, false
	}

	job := jobscout.ParsedJob{
		Title:    title,
		Company:  asText(values[jobscout.FieldNameCompany]),
		Location: asText(values[jobscout.FieldNameLocation]),
		URL:      asText(values[jobscout.FieldNameURL]),
		Level:    asText(values[jobscout.FieldNameLevel]),
	}
	job.ExternalID = asText(values[jobscout.FieldNameExternalID])
	if job.ExternalID == "" {
		job.ExternalID = HashID(job.URL, job.Title)
	}
	if t, ok := values[jobscout.FieldNamePostedAt].(time.Time); ok {
		job.PostedAt = &t
	}
	job.Tags = collectTags(profile, values)
	job.Description = describe(profile, values, &job, item)
	return job, true
}

// HashID returns a deterministic identifier for a record without one.
func HashID(url, title string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(url+"\n"+title))
}

func collectTags(profile *jobscout.ParserProfile, values map[string]any) []string {
	names := append([]string(nil), profile.TagFields...)
	if _, ok := profile.Fields[jobscout.FieldNameTags]; ok {
		names = append(names, jobscout.FieldNameTags)
	}
	seen := make(map[string]bool)
	var tags []string
	add := func(s string) {
		s = strings.ToLower(cleanText(s))
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		tags = append(tags, s)
	}
	for _, name := range names {
		switch v := values[name].(type) {
		case string:
			add(v)
		case []string:
			for _, s := range v {
				add(s)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

func describe(profile *jobscout.ParserProfile, values map[string]any, job *jobscout.ParsedJob, item *goquery.Selection) string {
	if profile.DescriptionField != "" {
		if d := asText(values[profile.DescriptionField]); d != "" {
			return d
		}
		if h, err := item.Html(); err == nil && strings.TrimSpace(h) != "" {
			return strings.TrimSpace(h)
		}
	}
	var lines []string
	for _, l := range []struct{ label, value string }{
		{"Title", job.Title},
		{"Company", job.Company},
		{"Location", job.Location},
		{"Level", job.Level},
	} {
		if l.value != "" {
			lines = append(lines, l.label+": "+l.value)
		}
	}
	if len(lines) > 0 {
		return strings.Join(lines, "\n")
	}
	if text := cleanText(item.Text()); text != "" && !isJunkTitle(text) {
		return text
	}
	return job.URL
}

func asText(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case time.Time:
		return v.Format(time.RFC3339)
	}
	return ""
}
