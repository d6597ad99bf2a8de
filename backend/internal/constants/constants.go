package constants

// Recommender defaults
const (
	// DefaultResponseLanguage is used when no reply language is configured
	DefaultResponseLanguage = "English"
)

// Language codes accepted for RESPONSE_LANGUAGE in place of a full name
const (
	LanguageCodeEnglish    = "en"
	LanguageCodeKorean     = "ko"
	LanguageCodeJapanese   = "ja"
	LanguageCodeChinese    = "zh"
	LanguageCodeFrench     = "fr"
	LanguageCodeSpanish    = "es"
	LanguageCodeGerman     = "de"
	LanguageCodeItalian    = "it"
	LanguageCodePortuguese = "pt"
	LanguageCodeRussian    = "ru"
)
