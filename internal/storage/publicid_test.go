package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"hosted url", "http://localhost:8080/api/v1/media/upload/v1712345678/land_ads/abc.jpg", "land_ads/abc"},
		{"cdn style url", "https://res.cloudinary.com/demo/image/upload/v1699999999/land_ads/plot_1.png", "land_ads/plot_1"},
		{"no version", "https://host/media/upload/land_ads/abc.jpeg", "land_ads/abc"},
		{"nested folders", "https://host/upload/v1/a/b/c.png", "a/b/c"},
		{"no extension", "https://host/upload/v1/land_ads/abc", "land_ads/abc"},
		{"query string ignored", "https://host/upload/v1/land_ads/abc.jpg?w=100", "land_ads/abc"},
		{"missing marker", "https://example.com/images/abc.jpg", ""},
		{"empty", "", ""},
		{"path traversal", "https://host/upload/v1/../secret.jpg", ""},
		{"marker only", "https://host/upload/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPublicID(tt.url))
		})
	}
}
