// Package speech covers the session's spoken-language collaborators:
// prompt translation, text-to-speech, and voice input.
package speech

import "sort"

// languageCodes maps display names to translation service codes.
var languageCodes = map[string]string{
	"Arabic":               "ar",
	"Assamese":             "as",
	"Bengali":              "bn",
	"Bodo":                 "brx",
	"Chinese (Simplified)": "zh-cn",
	"Danish":               "da",
	"Dutch":                "nl",
	"English":              "en",
	"Finnish":              "fi",
	"French":               "fr",
	"German":               "de",
	"Greek":                "el",
	"Gujarati":             "gu",
	"Hebrew":               "he",
	"Hindi":                "hi",
	"Indonesian":           "id",
	"Italian":              "it",
	"Japanese":             "ja",
	"Kannada":              "kn",
	"Kashmiri":             "ks",
	"Konkani":              "kok",
	"Korean":               "ko",
	"Maithili":             "mai",
	"Malayalam":            "ml",
	"Manipuri/Meitei":      "mni",
	"Marathi":              "mr",
	"Nepali":               "ne",
	"Odia":                 "or",
	"Polish":               "pl",
	"Portuguese":           "pt",
	"Punjabi":              "pa",
	"Russian":              "ru",
	"Sanskrit":             "sa",
	"Santali":              "sat",
	"Sindhi":               "sd",
	"Spanish":              "es",
	"Swahili":              "sw",
	"Swedish":              "sv",
	"Tamil":                "ta",
	"Telugu":               "te",
	"Thai":                 "th",
	"Turkish":              "tr",
	"Urdu":                 "ur",
	"Vietnamese":           "vi",
}

// LanguageCode resolves a display name to its code. Unknown names
// resolve to English.
func LanguageCode(name string) (string, bool) {
	code, ok := languageCodes[name]
	if !ok {
		return "en", false
	}
	return code, true
}

// LanguageNames returns the supported display names in sorted order.
func LanguageNames() []string {
	names := make([]string, 0, len(languageCodes))
	for name := range languageCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
