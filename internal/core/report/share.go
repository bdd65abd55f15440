package report

import (
	"fmt"
	"net/url"
	"strings"

	"green-chemistry-helper/internal/core/chemistry"
)

// ShareLinks 社群分享連結
type ShareLinks struct {
	Text     string `json:"text" yaml:"text"`
	URL      string `json:"url" yaml:"url"`
	Twitter  string `json:"twitter" yaml:"twitter"`
	Facebook string `json:"facebook" yaml:"facebook"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
}

// 與瀏覽器 encodeURIComponent 相同的保留字元
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// ShareText 分享文字
func ShareText(rating chemistry.EcoRating) string {
	return fmt.Sprintf("I just analyzed my chemical reaction and got a %s eco-rating on Green Chemistry Helper! #GreenChemistry #Sustainability", rating)
}

// NewShareLinks 依評級與頁面網址產生分享連結
func NewShareLinks(rating chemistry.EcoRating, pageURL string) ShareLinks {
	text := ShareText(rating)
	encodedURL := encodeURIComponent(pageURL)

	return ShareLinks{
		Text:     text,
		URL:      pageURL,
		Twitter:  "https://twitter.com/intent/tweet?text=" + encodeURIComponent(text) + "&url=" + encodedURL,
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + encodedURL,
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + encodedURL,
	}
}

func encodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
