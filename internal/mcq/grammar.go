package mcq

import (
	"regexp"
	"strings"
)

// Grammar описывает, как распознаются строки вопроса.
// Каждое выражение применяется к строке без начальных и конечных пробелов и
// должно содержать именованные группы:
//   - Question: text — текст вопроса после маркера (может быть пустым);
//   - Option: label — буква варианта, text — текст варианта;
//   - Answer: token — все, что после метки ответа;
//   - Explanation: text — текст пояснения.
type Grammar struct {
	Question    *regexp.Regexp
	Option      *regexp.Regexp
	Answer      *regexp.Regexp
	Explanation *regexp.Regexp

	MinOptions int
	MaxOptions int
}

// Выражения грамматики по умолчанию. Покрывают все встречающиеся диалекты:
// блоки через пустую строку, "Q1." без разделителей и "Q:/Question:" с "Explanation:".
var reQuestion = regexp.MustCompile(
	`(?i)^(?:(?:question|q)\s*\d+\s*[:：.\-]|(?:question|q)\s*(?:[:：]|[.\-](?:\s|$))|\d+\s*(?:[:：]|[.\-](?:\s|$)))\s*(?P<text>.*)$`,
)

// reBullet — маркер без номера ("- ", ": ") перед текстом вопроса.
var reBullet = regexp.MustCompile(`^(?:[:：]\s*|[.\-]\s+)`)

var (
	reOption      = regexp.MustCompile(`(?i)^\(?(?P<label>[a-d])\s*[).]\s*(?P<text>.*)$`)
	reAnswer      = regexp.MustCompile(`(?i)^(?:correct\s+answer|correct|answer|ans)\s*[:.\-：]\s*(?P<token>.*)$`)
	reExplanation = regexp.MustCompile(`(?i)^(?:explanation|explain)\s*[:.\-：]\s*(?P<text>.*)$`)
)

// DefaultGrammar возвращает грамматику, понимающую все поддерживаемые диалекты.
func DefaultGrammar() Grammar {
	return Grammar{
		Question:    reQuestion,
		Option:      reOption,
		Answer:      reAnswer,
		Explanation: reExplanation,
		MinOptions:  MinOptions,
		MaxOptions:  MaxOptions,
	}
}

// lineKind — тип строки документа.
type lineKind int

const (
	lineBlank lineKind = iota
	lineText
	lineQuestion
	lineOption
	lineAnswer
	lineExplanation
)

// line — классифицированная строка.
type line struct {
	kind  lineKind
	label string
	text  string
	raw   string
}

// classify определяет тип строки. Порядок проверок важен:
// метки ответа и пояснения проверяются раньше вариантов и маркеров вопроса.
func (g Grammar) classify(raw string) line {
	s := strings.TrimSpace(raw)
	if s == "" {
		return line{kind: lineBlank}
	}

	if text, ok := submatch(g.Answer, s, "token"); ok {
		return line{kind: lineAnswer, text: text}
	}

	if text, ok := submatch(g.Explanation, s, "text"); ok {
		return line{kind: lineExplanation, text: text}
	}

	if m := match(g.Option, s); m != nil {
		return line{
			kind:  lineOption,
			label: strings.ToUpper(group(g.Option, m, "label")),
			text:  strings.TrimSpace(group(g.Option, m, "text")),
			raw:   s,
		}
	}

	if text, ok := submatch(g.Question, s, "text"); ok {
		return line{kind: lineQuestion, text: text}
	}

	return line{kind: lineText, text: s}
}

// trimBullet убирает маркер без номера в начале первой строки вопроса.
func trimBullet(s string) string {
	if loc := reBullet.FindStringIndex(s); loc != nil && loc[1] < len(s) {
		return s[loc[1]:]
	}

	return s
}

func match(re *regexp.Regexp, s string) []string {
	if re == nil {
		return nil
	}

	return re.FindStringSubmatch(s)
}

func group(re *regexp.Regexp, m []string, name string) string {
	idx := re.SubexpIndex(name)
	if idx < 0 || idx >= len(m) {
		return ""
	}

	return m[idx]
}

func submatch(re *regexp.Regexp, s, name string) (string, bool) {
	m := match(re, s)
	if m == nil {
		return "", false
	}

	return strings.TrimSpace(group(re, m, name)), true
}
