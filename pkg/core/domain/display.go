package domain

import "encoding/json"

// MarshalJSON renders a record for clients. Unknown icons fall back to the
// generic one, and the category label and preview image are added.
func (r ContentRecord) MarshalJSON() ([]byte, error) {
	type plain ContentRecord
	p := plain(r)
	p.Icon = r.Icon.Resolve()
	return json.Marshal(struct {
		plain
		CategoryLabel string `json:"categoryLabel"`
		KnownCategory bool   `json:"knownCategory"`
		Preview       string `json:"preview,omitempty"`
	}{p, r.Category.Label(), r.Category.Known(), r.PreviewImage()})
}

func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return json.Marshal(struct {
		plain
		CategoryLabel string     `json:"categoryLabel"`
		FormatMeta    FormatMeta `json:"formatMeta"`
	}{plain(d), d.Category.Label(), d.Format.Meta()})
}

func (c Company) MarshalJSON() ([]byte, error) {
	type plain Company
	return json.Marshal(struct {
		plain
		Palette CompanyPalette `json:"palette"`
	}{plain(c), PaletteFor(c.Color)})
}
