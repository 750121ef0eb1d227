package speech

import "testing"

func TestVoiceForLanguage(t *testing.T) {
	cases := []struct {
		language string
		want     string
	}{
		{language: "English", want: "aEO01A4wXwd1O8GPgGlF"},
		{language: "english", want: "aEO01A4wXwd1O8GPgGlF"},
		{language: "Hindi", want: "FFmp1h1BMl0iVHA0JxrI"},
		{language: "HINDI", want: "FFmp1h1BMl0iVHA0JxrI"},
		{language: "Tamil", want: "1XNFRxE3WBB7iI0jnm7p"},
		{language: " tamil ", want: "1XNFRxE3WBB7iI0jnm7p"},
		// Anything unrecognized gets the default voice; audio delivery
		// never fails on language lookup.
		{language: "Bengali", want: "aEO01A4wXwd1O8GPgGlF"},
		{language: "Klingon", want: "aEO01A4wXwd1O8GPgGlF"},
		{language: "", want: "aEO01A4wXwd1O8GPgGlF"},
	}

	for _, tc := range cases {
		if got := VoiceForLanguage(tc.language); got != tc.want {
			t.Fatalf("VoiceForLanguage(%q) = %s, want %s", tc.language, got, tc.want)
		}
	}
}
