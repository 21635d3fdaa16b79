package selection

import (
	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
)

// ParticipantView is the participants page for one filter.
type ParticipantView struct {
	Leadership     []domain.Leader            `json:"leadership"`
	Companies      []domain.Company           `json:"companies"`
	Filters        []domain.ParticipantFilter `json:"filters"`
	ChairmanID     string                     `json:"chairman_id,omitempty"`
	ShowLeadership bool                       `json:"show_leadership"`
	ShowCompanies  bool                       `json:"show_companies"`
}

// SelectParticipants applies the participants filter: "all" shows everyone,
// "leadership" only the leaders, any other value a category across both lists.
func SelectParticipants(ds domain.ParticipantDataset, filter string) ParticipantView {
	view := ParticipantView{Filters: ds.Filters}
	switch filter {
	case domain.TabAll, "":
		view.Leadership = ds.Leadership
		view.Companies = ds.Companies
	case domain.TabLeadership:
		view.Leadership = ds.Leadership
	default:
		view.Leadership = Filter(ds.Leadership, []Predicate[domain.Leader]{
			func(l domain.Leader) bool { return l.Category == filter },
		})
		view.Companies = Filter(ds.Companies, []Predicate[domain.Company]{
			func(c domain.Company) bool { return c.Category == filter },
		})
	}
	if view.Leadership == nil {
		view.Leadership = []domain.Leader{}
	}
	if view.Companies == nil {
		view.Companies = []domain.Company{}
	}
	view.ShowLeadership = len(view.Leadership) > 0
	view.ShowCompanies = filter != domain.TabLeadership && len(view.Companies) > 0
	if view.ShowLeadership {
		view.ChairmanID = view.Leadership[0].ID
	}
	return view
}
