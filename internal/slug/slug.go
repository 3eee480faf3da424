// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// transliterator maps known non-ASCII letters to their closest ASCII form.
	// Upper-case Turkish İ is listed because strings.ToLower turns it into
	// "i" followed by a combining dot.
	transliterator = strings.NewReplacer(
		"ç", "c", "ğ", "g", "ı", "i", "i̇", "i", "ö", "o", "ş", "s", "ü", "u",
		"â", "a", "î", "i", "û", "u", "à", "a", "á", "a", "ä", "a",
		"é", "e", "è", "e", "ê", "e", "ë", "e", "í", "i", "ï", "i",
		"ó", "o", "ô", "o", "ú", "u", "ù", "u", "ñ", "n", "ß", "ss",
	)
	// nonAlphanumeric matches every maximal run outside [a-z0-9].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Yapay Zeka & Robotik" → "yapay-zeka-robotik"
func Generate(s string) string {
	result := strings.ToLower(s)
	result = transliterator.Replace(result)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Valid reports whether s is already in slug form.
func Valid(s string) bool {
	return s != "" && Generate(s) == s
}
