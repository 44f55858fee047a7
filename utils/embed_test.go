package utils

import "testing"

func TestToEmbedURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"YouTube watch link",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			"YouTube watch link with extra params",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			"https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			"Short youtu.be link",
			"https://youtu.be/dQw4w9WgXcQ",
			"https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			"Vimeo link",
			"https://vimeo.com/123456789",
			"https://player.vimeo.com/video/123456789",
		},
		{
			"Unknown host passes through",
			"https://example.com/video.mp4",
			"https://example.com/video.mp4",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToEmbedURL(tc.in); got != tc.want {
				t.Errorf("ToEmbedURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
