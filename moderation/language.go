package moderation

import "github.com/abadojack/whatlanggo"

// minDetectionLength avoids guessing a language from greetings like "hi".
const minDetectionLength = 12

type LanguageDetector struct{}

// Detect returns the ISO 639-1 code of text when whatlanggo is confident about it.
func (LanguageDetector) Detect(text string) (string, bool) {
	if len([]rune(text)) < minDetectionLength {
		return "", false
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return "", false
	}
	code := info.Lang.Iso6391()
	return code, code != ""
}
