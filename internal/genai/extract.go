package genai

import "encoding/json"

// An extractor pulls completion text out of one known response shape,
// reporting whether it produced a non-empty result.
type extractor func(body []byte) (string, bool)

// Shapes are tried in order; the first non-empty text wins. New providers
// slot in by appending an extractor.
var extractors = []extractor{
	extractChatChoice,
	extractContentBlock,
}

// Extract returns the completion text from a response body, or the empty
// string when no known shape matches.
func Extract(body []byte) string {
	for _, ex := range extractors {
		if text, ok := ex(body); ok {
			return text
		}
	}
	return ""
}

// extractChatChoice reads the chat-completions shape:
// choices[0].message.content.
func extractChatChoice(body []byte) (string, bool) {
	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &r); err != nil || len(r.Choices) == 0 {
		return "", false
	}
	text := r.Choices[0].Message.Content
	return text, text != ""
}

// extractContentBlock reads the messages shape: content[0].text.
func extractContentBlock(body []byte) (string, bool) {
	var r struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &r); err != nil || len(r.Content) == 0 {
		return "", false
	}
	text := r.Content[0].Text
	return text, text != ""
}
