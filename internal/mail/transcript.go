package mail

import "strings"

// QA is one question/answer pair extracted from a chat transcript.
type QA struct {
	Question string
	Answer   string
}

// ParseTranscript extracts ordered Q/A pairs from a plain-text chat
// transcript where agent lines start with "AI Agent:" and customer lines
// with "Customer:". Lines that do not follow that shape are skipped.
func ParseTranscript(history string) []QA {
	var items []QA
	lines := make([]string, 0)
	for _, line := range strings.Split(history, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}

	for i := 0; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "AI Agent:") {
			continue
		}
		question := strings.TrimSpace(strings.TrimPrefix(lines[i], "AI Agent:"))
		if question == "" {
			continue
		}
		answer := ""
		if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "Customer:") {
			answer = strings.TrimSpace(strings.TrimPrefix(lines[i+1], "Customer:"))
			i++
		}
		items = append(items, QA{Question: question, Answer: answer})
	}
	return items
}
