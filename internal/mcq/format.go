package mcq

import (
	"strings"
)

// Format записывает вопросы в каноническом виде: блоки через пустую строку,
// варианты "A) ...", строка "Correct: X" и, если есть, "Explanation: ...".
// Результат снова разбирается в те же вопросы, если поля не содержат переводов строк.
func Format(records []QuestionRecord) string {
	grammar := DefaultGrammar()

	var sb strings.Builder
	for i, r := range records {
		if i > 0 {
			sb.WriteString("\n")
		}

		prompt := strings.TrimSpace(r.Prompt)
		// Вопрос, похожий на служебную строку, помечаем явным маркером.
		if first, _, _ := strings.Cut(prompt, "\n"); grammar.classify(first).kind != lineText {
			prompt = "Q: " + prompt
		}

		sb.WriteString(prompt)
		sb.WriteString("\n")

		for j, option := range r.Options {
			sb.WriteString(IndexToLetter(j))
			sb.WriteString(") ")
			sb.WriteString(strings.TrimSpace(option))
			sb.WriteString("\n")
		}

		sb.WriteString("Correct: ")
		sb.WriteString(IndexToLetter(r.CorrectIndex))
		sb.WriteString("\n")

		if explanation := strings.TrimSpace(r.Explanation); explanation != "" {
			sb.WriteString("Explanation: ")
			sb.WriteString(explanation)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
