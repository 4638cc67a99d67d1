package app

import "testing"

func TestResolveLink(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"absolute stays", "https://example.com/a/b", "https://other.org/x", "https://other.org/x"},
		{"relative path", "https://example.com/docs/intro", "setup", "https://example.com/docs/setup"},
		{"root relative", "https://example.com/docs/intro", "/about", "https://example.com/about"},
		{"fragment", "https://example.com/page", "#section", "https://example.com/page#section"},
		{"empty base", "", "/about", "/about"},
		{"scheme relative", "https://example.com/page", "//cdn.example.com/x", "https://cdn.example.com/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveLink(tt.base, tt.href); got != tt.want {
				t.Errorf("resolveLink(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
			}
		})
	}
}
