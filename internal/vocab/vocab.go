// Package vocab holds the canonical translation tables between the labels the
// storefront UI shows and the slugs/codes the upstream catalog API expects.
// Every query-construction path goes through this package so the mappings
// cannot drift between call sites.
package vocab

import (
	"strings"
	"unicode"
)

// brandSlugs maps display names onto upstream brand slugs. Many-to-one:
// several labels collapse onto the same slug.
var brandSlugs = map[string]string{
	"Disney Plus":  "disney",
	"Disney":       "disney",
	"Apple iTunes": "apple",
	"Apple":        "apple",
	"Revolut":      "revolut",
	"Xbox":         "xbox",
	"XBOX":         "xbox",
	"Microsoft":    "xbox",
	"Playstation":  "playstation",
	"PlayStation":  "playstation",
	"Sony":         "playstation",
	"Nintendo":     "nintendo",
	"AliExpress":   "aliexpress",
	"OnlyFans":     "onlyfans",
	"PayPal":       "paypal",
	"Steam":        "steam",
	"Google":       "google",
	"Google Play":  "google",
	"Amazon":       "amazon",
	"Netflix":      "netflix",
	"Spotify":      "spotify",
}

// regionCodes maps display labels onto upstream region codes.
var regionCodes = map[string]string{
	"United States":   "us",
	"US":              "us",
	"USA":             "us",
	"Netherlands":     "nl",
	"The Netherlands": "nl",
	"NL":              "nl",
	"Germany":         "de",
	"DE":              "de",
	"Belgium":         "be",
	"BE":              "be",
	"United Kingdom":  "gb",
	"UK":              "gb",
	"GB":              "gb",
	"Europe":          "eu",
	"EU":              "eu",
	"Worldwide":       "ww",
	"WW":              "ww",
	"Global":          "ww",
}

// BrandSlug translates a brand display name to its upstream slug, falling
// back to Slugify on a table miss.
func BrandSlug(label string) string {
	label = strings.TrimSpace(label)
	if slug, ok := brandSlugs[label]; ok {
		return slug
	}
	return Slugify(label)
}

// RegionCode translates a region display label to its upstream code, falling
// back to Slugify on a table miss.
func RegionCode(label string) string {
	label = strings.TrimSpace(label)
	if code, ok := regionCodes[label]; ok {
		return code
	}
	return Slugify(label)
}

// Slugify lower-cases, joins whitespace runs with "-", and strips everything
// outside [a-z0-9-].
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "-")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BrandName renders an upstream brand slug as a display name: dash-separated
// words, each title-cased, joined with spaces.
func BrandName(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		parts[i] = TitleCase(part)
	}
	return strings.Join(parts, " ")
}

// TitleCase upper-cases only the first letter, leaving the rest untouched.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
