package services

import "testing"

func TestClampPage(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"Zero falls back to first page", 0, 1},
		{"Negative falls back to first page", -3, 1},
		{"Valid page passes through", 7, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampPage(tc.in); got != tc.want {
				t.Errorf("clampPage(%d) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestClampPageSize(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"Zero uses the default", 0, defaultPageSize},
		{"Negative uses the default", -1, defaultPageSize},
		{"Oversized is capped", 500, maxPageSize},
		{"Boundary stays as is", maxPageSize, maxPageSize},
		{"Valid size passes through", 25, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampPageSize(tc.in); got != tc.want {
				t.Errorf("clampPageSize(%d) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}
