package utils

import (
	"fmt"
	"regexp"
)

var (
	youtubeRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\s?]+)`)
	vimeoRe   = regexp.MustCompile(`vimeo\.com/(\d+)`)
)

// ToEmbedURL converts a public YouTube or Vimeo link into its player
// embed URL. Unrecognized URLs are returned unchanged.
func ToEmbedURL(url string) string {
	if m := youtubeRe.FindStringSubmatch(url); m != nil {
		return fmt.Sprintf("https://www.youtube.com/embed/%s", m[1])
	}
	if m := vimeoRe.FindStringSubmatch(url); m != nil {
		return fmt.Sprintf("https://player.vimeo.com/video/%s", m[1])
	}
	return url
}
