package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

const optionsPerQuestion = 4

// CleanResponse strips the markdown code-fence wrapping (```json ... ```)
// models tend to add around JSON output.
func CleanResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseGenerated decodes a completion response into generated questions
// and validates each: non-empty description, exactly 4 options, and a
// correct index inside the option list. Any violation fails the whole
// response.
func ParseGenerated(response string) ([]GeneratedQuestion, error) {
	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(response), &questions); err != nil {
		return nil, fmt.Errorf("decode generated questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("generated response contains no questions")
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Description) == "" {
			return nil, fmt.Errorf("question %d: empty description", i)
		}
		if len(q.Options) != optionsPerQuestion {
			return nil, fmt.Errorf("question %d: expected %d options, got %d", i, optionsPerQuestion, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= optionsPerQuestion {
			return nil, fmt.Errorf("question %d: correctIndex %d out of range [0,%d)", i, q.CorrectIndex, optionsPerQuestion)
		}
	}
	return questions, nil
}
