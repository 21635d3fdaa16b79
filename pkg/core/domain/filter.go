package domain

import "strings"

// Tabs shared by events and documents.
const (
	TabAll        = "all"
	TabUpcoming   = "upcoming"
	TabArchive    = "archive"
	TabLeadership = "leadership"
)

// TabOption is one selectable tab of a listing.
type TabOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DefaultPageSize is the number of records shown before the first reveal.
const DefaultPageSize = 6

// FilterState is the complete, serializable input of a selection. Empty facet
// slices mean "no restriction".
type FilterState struct {
	Tab     string   `json:"tab"`
	Query   string   `json:"query,omitempty"`
	Years   []string `json:"years,omitempty"`
	Formats []Format `json:"formats,omitempty"`
	Visible int      `json:"visible"`
}

// NewFilterState returns the default state for a freshly opened listing.
func NewFilterState(pageSize int) FilterState {
	return FilterState{Tab: TabAll, Visible: pageSize}
}

// WithTab switches the active tab. The visible count always goes back to one page.
func (f FilterState) WithTab(tab string, pageSize int) FilterState {
	f.Tab = tab
	f.Visible = pageSize
	return f
}

// Normalize fills defaults and cleans user input.
func (f FilterState) Normalize(pageSize int) FilterState {
	f.Tab = strings.ToLower(strings.TrimSpace(f.Tab))
	if f.Tab == "" {
		f.Tab = TabAll
	}
	f.Query = strings.TrimSpace(f.Query)
	if f.Visible < 1 {
		f.Visible = pageSize
	}
	formats := make([]Format, 0, len(f.Formats))
	for _, fm := range f.Formats {
		if n := fm.Normalize(); n != "" {
			formats = append(formats, n)
		}
	}
	f.Formats = formats
	return f
}
