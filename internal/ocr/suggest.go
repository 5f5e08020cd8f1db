package ocr

import (
	"strings"
	"unicode"
)

// methodHints maps words that commonly appear on UI controls to the HTTP
// method a backend call for that control would likely use.
var methodHints = map[string]string{
	"save":   "POST",
	"submit": "POST",
	"create": "POST",
	"add":    "POST",
	"send":   "POST",
	"login":  "POST",
	"signup": "POST",
	"update": "PUT",
	"edit":   "PUT",
	"rename": "PATCH",
	"delete": "DELETE",
	"remove": "DELETE",
	"search": "GET",
	"filter": "GET",
	"load":   "GET",
	"view":   "GET",
}

// CleanText normalizes raw OCR output: collapses whitespace and strips
// stray punctuation Tesseract tends to hallucinate around antialiased type.
func CleanText(text string) string {
	fields := strings.Fields(text)
	cleaned := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if f != "" {
			cleaned = append(cleaned, f)
		}
	}
	return strings.Join(cleaned, " ")
}

// SuggestEndpoint slugifies recognized label text into a plausible endpoint
// path, e.g. "User Profile" becomes "/user-profile".
func SuggestEndpoint(text string) string {
	fields := strings.Fields(strings.ToLower(CleanText(text)))
	if len(fields) == 0 {
		return ""
	}
	// Drop the action verb if the label starts with one; "Save Order"
	// suggests /order, not /save-order.
	if _, ok := methodHints[fields[0]]; ok && len(fields) > 1 {
		fields = fields[1:]
	}
	return "/" + strings.Join(fields, "-")
}

// SuggestMethod guesses an HTTP method from recognized label text. Returns
// GET when no hint word is present.
func SuggestMethod(text string) string {
	for _, f := range strings.Fields(strings.ToLower(CleanText(text))) {
		if m, ok := methodHints[f]; ok {
			return m
		}
	}
	return "GET"
}
