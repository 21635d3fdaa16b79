package domain

import "strings"

// Category is the closed set of event/news tags. Values outside the set are
// kept as-is and rendered with their raw text.
type Category string

const (
	CategoryMeeting    Category = "meeting"
	CategoryNetworking Category = "networking"
	CategoryEducation  Category = "education"
	CategoryLaw        Category = "law"
	CategoryConference Category = "conference"
	CategoryVisit      Category = "visit"
)

// Categories lists the known event categories in display order.
var Categories = []Category{
	CategoryMeeting, CategoryNetworking, CategoryEducation,
	CategoryLaw, CategoryConference, CategoryVisit,
}

func (c Category) Known() bool {
	switch c {
	case CategoryMeeting, CategoryNetworking, CategoryEducation,
		CategoryLaw, CategoryConference, CategoryVisit:
		return true
	}
	return false
}

// Label returns the display label, or the raw tag for an unrecognized category.
func (c Category) Label() string {
	switch c {
	case CategoryMeeting:
		return "Meeting"
	case CategoryNetworking:
		return "Networking"
	case CategoryEducation:
		return "Education"
	case CategoryLaw:
		return "Law"
	case CategoryConference:
		return "Conference"
	case CategoryVisit:
		return "Visit"
	default:
		return string(c)
	}
}

// Icon is the pictogram attached to an event card.
type Icon string

const (
	IconMonitor       Icon = "monitor"
	IconUsers         Icon = "users"
	IconGraduationCap Icon = "graduation-cap"
	IconFileText      Icon = "file-text"
	IconMic           Icon = "mic"
	IconBriefcase     Icon = "briefcase"
	IconFileCheck     Icon = "file-check"
	IconSheet         Icon = "sheet"

	defaultEventIcon = IconMonitor
)

// Resolve maps an unknown icon to the generic monitor icon.
func (i Icon) Resolve() Icon {
	switch i {
	case IconMonitor, IconUsers, IconGraduationCap, IconFileText, IconMic, IconBriefcase:
		return i
	default:
		return defaultEventIcon
	}
}

// DocumentCategory is the closed set of document tabs.
type DocumentCategory string

const (
	DocumentProtocols DocumentCategory = "protocols"
	DocumentLaws      DocumentCategory = "laws"
	DocumentTemplates DocumentCategory = "templates"
	DocumentArchive   DocumentCategory = "archive"
)

func (c DocumentCategory) Label() string {
	switch c {
	case DocumentProtocols:
		return "Protocols"
	case DocumentLaws:
		return "Legislation"
	case DocumentTemplates:
		return "Templates"
	case DocumentArchive:
		return "Archive"
	default:
		return string(c)
	}
}

// Format is a document file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatXLSX Format = "xlsx"
)

// FormatMeta is the display metadata of a document format.
type FormatMeta struct {
	Label string `json:"label"`
	Icon  Icon   `json:"icon"`
	Color string `json:"color"`
	Known bool   `json:"known"`
}

// Meta maps every known format to its metadata. Unknown formats keep their
// raw text as label and fall back to the generic file icon.
func (f Format) Meta() FormatMeta {
	switch f {
	case FormatPDF:
		return FormatMeta{Label: "PDF", Icon: IconFileText, Color: "red", Known: true}
	case FormatDOCX:
		return FormatMeta{Label: "DOCX", Icon: IconFileCheck, Color: "blue", Known: true}
	case FormatXLSX:
		return FormatMeta{Label: "XLSX", Icon: IconSheet, Color: "green", Known: true}
	default:
		return FormatMeta{Label: string(f), Icon: IconFileText, Color: "muted"}
	}
}

// Normalize lower-cases a format read from user input.
func (f Format) Normalize() Format {
	return Format(strings.ToLower(strings.TrimSpace(string(f))))
}
