package speech

import "strings"

// defaultVoiceID is the English voice, used whenever the reply language
// has no dedicated voice.
const defaultVoiceID = "aEO01A4wXwd1O8GPgGlF"

var voicesByLanguage = map[string]string{
	"english": defaultVoiceID,
	"hindi":   "FFmp1h1BMl0iVHA0JxrI",
	"tamil":   "1XNFRxE3WBB7iI0jnm7p",
}

// VoiceForLanguage maps a reply language to a synthesis voice identifier.
// The match is exact and case-insensitive; any unrecognized language falls
// back to the default voice so audio delivery never fails on lookup.
func VoiceForLanguage(language string) string {
	if voice, ok := voicesByLanguage[strings.ToLower(strings.TrimSpace(language))]; ok {
		return voice
	}
	return defaultVoiceID
}
