package jobscout

import "strings"

// FieldType identifies how a ParserField produces its value.
type FieldType string

// FieldType constants.
const (
	FieldText      FieldType = "TEXT"
	FieldAttribute FieldType = "ATTRIBUTE"
	FieldHTML      FieldType = "HTML"
	FieldList      FieldType = "LIST"
	FieldDate      FieldType = "DATE"
	FieldConstant  FieldType = "CONSTANT"
)

// DefaultDelimiter splits LIST field values when no delimiter is configured.
const DefaultDelimiter = ","

// Logical field names the record assembler understands.
const (
	FieldNameTitle       = "title"
	FieldNameURL         = "url"
	FieldNameCompany     = "company"
	FieldNameLocation    = "location"
	FieldNameLevel       = "level"
	FieldNameExternalID  = "externalId"
	FieldNamePostedAt    = "postedAt"
	FieldNameDescription = "description"
	FieldNameTags        = "tags"
)

// ParserField describes how to extract one named value from a list element.
// A blank or "." selector refers to the list element itself. An ATTRIBUTE
// field with a blank Attribute reads the element text.
type ParserField struct {
	Name       string    `json:"name"`
	Type       FieldType `json:"type"`
	Selector   string    `json:"selector,omitempty"`
	Attribute  string    `json:"attribute,omitempty"`
	Constant   string    `json:"constant,omitempty"`
	DateFormat string    `json:"dateFormat,omitempty"` // Go time layout
	Delimiter  string    `json:"delimiter,omitempty"`
	Required   bool      `json:"required,omitempty"`
	BaseURL    string    `json:"baseUrl,omitempty"`
}

// Validate returns an error if the field lacks the data its type needs.
func (f *ParserField) Validate() error {
	switch f.Type {
	case FieldText, FieldAttribute, FieldHTML, FieldList, FieldDate:
		return nil
	case FieldConstant:
		if f.Constant == "" {
			return Errorf(EINVALID, "field %q: constant value required", f.Name)
		}
		return nil
	}
	return Errorf(EINVALID, "field %q: unknown type %q", f.Name, f.Type)
}

// SelfSelected reports whether the field targets the list element itself.
func (f *ParserField) SelfSelected() bool {
	s := strings.TrimSpace(f.Selector)
	return s == "" || s == "."
}

// ListDelimiter returns the configured delimiter or DefaultDelimiter.
func (f *ParserField) ListDelimiter() string {
	if f.Delimiter == "" {
		return DefaultDelimiter
	}
	return f.Delimiter
}
