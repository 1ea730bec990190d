package dto

// Section kinds
const (
	CMSKindHTML    = "html"
	CMSKindBanners = "banners"
)

// Request DTOs

type UpdateCMSHTMLRequest struct {
	Content  string `json:"content" validate:"required"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

type BannerRequest struct {
	Title    string `json:"title" validate:"required"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url" validate:"required"`
	Link     string `json:"link"`
}

type UpdateBannersRequest struct {
	Banners []BannerRequest `json:"banners" validate:"dive"`
}

// Response DTOs

type CMSSectionResponse struct {
	Section  string          `json:"section"`
	Kind     string          `json:"kind"`
	Content  string          `json:"content,omitempty"`
	ImageURL string          `json:"image_url,omitempty"`
	Banners  []BannerRequest `json:"banners,omitempty"`
}

type UploadResponse struct {
	URL         string `json:"url"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
