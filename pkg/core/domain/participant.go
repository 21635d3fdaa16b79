package domain

// Leader is a member of the committee leadership.
type Leader struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Initials    string `json:"initials"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Photo       string `json:"photo,omitempty"`
	Telegram    string `json:"telegram,omitempty"`
	Email       string `json:"email,omitempty"`
	Category    string `json:"category"`
}

// Company is a participating organisation.
type Company struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Initials      string `json:"initials"`
	Category      string `json:"category"`
	CategoryLabel string `json:"categoryLabel"`
	Description   string `json:"description"`
	Tag           string `json:"tag,omitempty"`
	Color         string `json:"color,omitempty"`
	Website       string `json:"website,omitempty"`
}

// ParticipantFilter is one selectable participants tab.
type ParticipantFilter struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type ParticipantDataset struct {
	Leadership []Leader            `json:"leadership"`
	Companies  []Company           `json:"companies"`
	Filters    []ParticipantFilter `json:"filters"`
}

// CompanyPalette is the card color scheme; unknown colors fall back to zinc.
type CompanyPalette struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Border     string `json:"border"`
}

func PaletteFor(color string) CompanyPalette {
	switch color {
	case "blue", "indigo", "green", "orange", "purple", "zinc":
	default:
		color = "zinc"
	}
	return CompanyPalette{
		Background: "bg-" + color + "-50",
		Text:       "text-" + color + "-600",
		Border:     "border-" + color + "-100",
	}
}
