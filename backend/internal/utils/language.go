package utils

import (
	"strings"

	"graph-rag-recommender/backend/internal/constants"
)

// LanguageNames maps language codes to display names
var LanguageNames = map[string]string{
	constants.LanguageCodeEnglish:    "English",
	constants.LanguageCodeKorean:     "Korean",
	constants.LanguageCodeJapanese:   "Japanese",
	constants.LanguageCodeChinese:    "Chinese",
	constants.LanguageCodeFrench:     "French",
	constants.LanguageCodeSpanish:    "Spanish",
	constants.LanguageCodeGerman:     "German",
	constants.LanguageCodeItalian:    "Italian",
	constants.LanguageCodePortuguese: "Portuguese",
	constants.LanguageCodeRussian:    "Russian",
}

// LanguageName turns a configured language into the name used in prompts.
// Known codes ("ko", "en-US") become their display name, anything else is
// returned trimmed, and an empty value falls back to the default language.
func LanguageName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return constants.DefaultResponseLanguage
	}

	code := strings.ToLower(value)
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	if name, ok := LanguageNames[code]; ok {
		return name
	}
	return value
}
