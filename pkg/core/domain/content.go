package domain

import "strings"

// Media holds the ordered image and video URLs attached to a record.
type Media struct {
	Images []string `json:"images"`
	Videos []string `json:"videos"`
}

// ContentRecord is a news item or event.
type ContentRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	FullContent string   `json:"fullContent,omitempty"`
	Date        Date     `json:"date"`
	Category    Category `json:"category"`
	Location    string   `json:"location,omitempty"`
	Icon        Icon     `json:"icon,omitempty"`
	Media       *Media   `json:"media,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
}

// PreviewImage returns the first image, or "" when the record has none.
func (r ContentRecord) PreviewImage() string {
	if r.Media == nil || len(r.Media.Images) == 0 {
		return ""
	}
	return r.Media.Images[0]
}

// Document is an entry of the documents library.
type Document struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Date        Date             `json:"date"`
	Category    DocumentCategory `json:"category"`
	Year        string           `json:"year"`
	Format      Format           `json:"format"`
	Size        string           `json:"size,omitempty"`
	URL         string           `json:"url,omitempty"`
	Featured    bool             `json:"featured,omitempty"`
}

// Searchable is implemented by every record type the selection engine filters.
type Searchable interface {
	RecordID() string
	RecordDate() Date
	Matches(query string) bool
}

func (r ContentRecord) RecordID() string { return r.ID }
func (r ContentRecord) RecordDate() Date { return r.Date }

// Matches reports whether the lower-cased query is a substring of the title or description.
func (r ContentRecord) Matches(query string) bool {
	return containsFold(r.Title, query) || containsFold(r.Description, query)
}

func (d Document) RecordID() string { return d.ID }
func (d Document) RecordDate() Date { return d.Date }

func (d Document) Matches(query string) bool {
	return containsFold(d.Title, query) || containsFold(d.Description, query)
}

func containsFold(s, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}

// NewsDataset is the on-disk shape of the news collection.
type NewsDataset struct {
	News []ContentRecord `json:"news"`
}

// DocumentDataset is the on-disk shape of the documents collection,
// including the facet values offered to the user.
type DocumentDataset struct {
	Documents []Document `json:"documents"`
	Years     []string   `json:"years"`
	Formats   []Format   `json:"formats"`
}
