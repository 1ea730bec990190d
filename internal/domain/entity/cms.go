package entity

import "strings"

// bannerSectionSuffix marks CMS sections whose content is a JSON-encoded banner list
const bannerSectionSuffix = "-banners"

// CMSSection is a named content bucket stored by the backend as an opaque string
type CMSSection struct {
	Name     string `json:"-"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Banner is one entry of a banner section
type Banner struct {
	Title    string `json:"title" validate:"required"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"imageUrl" validate:"required"`
	Link     string `json:"link,omitempty"`
}

// IsBannerSection reports whether a section holds a banner list rather than HTML
func IsBannerSection(name string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), bannerSectionSuffix)
}
