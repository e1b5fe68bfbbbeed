package storage

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

const uploadMarker = "upload"

var versionSegment = regexp.MustCompile(`^v\d+$`)

// ExtractPublicID turns a hosted image URL into the asset's public id, e.g.
// ".../upload/v1712345678/land_ads/abc.jpg" -> "land_ads/abc". It returns "" when the
// URL has no upload segment or the remainder is not a usable id.
func ExtractPublicID(imageURL string) string {
	p := imageURL
	if u, err := url.Parse(imageURL); err == nil && u.Path != "" {
		p = u.Path
	}

	parts := strings.Split(p, "/")
	idx := -1
	for i, part := range parts {
		if part == uploadMarker {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ""
	}

	rest := parts[idx+1:]
	if len(rest) > 0 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	for _, seg := range rest {
		if seg == "" || seg == "." || seg == ".." {
			return ""
		}
	}

	id := strings.Join(rest, "/")
	return strings.TrimSuffix(id, path.Ext(id))
}
