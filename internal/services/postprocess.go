package services

import (
	"regexp"
	"strings"
)

var (
	assistantLabel = regexp.MustCompile(`Assistant:\s*`)
	fencedHTML     = regexp.MustCompile("(?s)```html\n(.*?)\n```")
	rawHTML        = regexp.MustCompile(`(?is)<(?:!DOCTYPE|html)[\s\S]*</html>`)
)

// CleanChatReply strips role labels the model echoes back from the prompt.
// Removal repeats until none remain, so "AssAssistant:istant:" cannot leave a
// label behind.
func CleanChatReply(text string) string {
	for assistantLabel.MatchString(text) {
		text = assistantLabel.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// ExtractHTML pulls the document out of a reply that may wrap it in prose.
// A fenced html block wins over a bare document span; with neither the reply
// is returned unchanged. An empty fenced block yields the whole fence.
func ExtractHTML(text string) string {
	if m := fencedHTML.FindStringSubmatch(text); m != nil {
		if m[1] == "" {
			return m[0]
		}
		return m[1]
	}
	if m := rawHTML.FindString(text); m != "" {
		return m
	}
	return text
}
