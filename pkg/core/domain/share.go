package domain

import (
	"net/url"
	"strings"
)

// SharePlatform is a destination of the share buttons.
type SharePlatform string

const (
	ShareTelegram SharePlatform = "telegram"
	ShareVK       SharePlatform = "vk"
	ShareWhatsApp SharePlatform = "whatsapp"
	ShareCopy     SharePlatform = "copy"
)

type ShareLink struct {
	Platform SharePlatform `json:"platform"`
	URL      string        `json:"url"`
}

// ShareLinks builds the share targets for a record page.
func ShareLinks(title, pageURL string) []ShareLink {
	t := url.QueryEscape(title)
	u := url.QueryEscape(pageURL)
	return []ShareLink{
		{Platform: ShareTelegram, URL: "https://t.me/share/url?url=" + u + "&text=" + t},
		{Platform: ShareVK, URL: "https://vk.com/share.php?url=" + u + "&title=" + t},
		{Platform: ShareWhatsApp, URL: "https://wa.me/?text=" + t + "%20" + u},
		{Platform: ShareCopy, URL: pageURL},
	}
}

// DetailURL is the addressable URL of a record's detail view, e.g. https://site/events?id=12.
func DetailURL(baseURL, section, id string) string {
	q := url.Values{}
	q.Set("id", id)
	return strings.TrimRight(baseURL, "/") + "/" + strings.Trim(section, "/") + "?" + q.Encode()
}
