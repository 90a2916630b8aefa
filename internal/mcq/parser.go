package mcq

import (
	"strconv"
	"strings"
)

// Parser разбирает текст с вопросами в последовательность QuestionRecord.
// После создания не изменяется и может использоваться из нескольких горутин.
type Parser struct {
	grammar Grammar
	strict  bool
}

// Option настраивает Parser.
type Option func(*Parser)

// WithGrammar заменяет грамматику по умолчанию.
func WithGrammar(g Grammar) Option {
	return func(p *Parser) {
		p.grammar = g
	}
}

// WithStrictAnswers отбрасывает блоки с нераспознанным ответом
// вместо выбора первого варианта.
func WithStrictAnswers() Option {
	return func(p *Parser) {
		p.strict = true
	}
}

// NewParser создаёт новый Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{grammar: DefaultGrammar()}
	for _, opt := range opts {
		opt(p)
	}

	// Записи с числом вариантов вне [MinOptions, MaxOptions] не пройдут Validate.
	if p.grammar.MinOptions < MinOptions {
		p.grammar.MinOptions = MinOptions
	}

	if p.grammar.MaxOptions < p.grammar.MinOptions || p.grammar.MaxOptions > MaxOptions {
		p.grammar.MaxOptions = MaxOptions
	}

	if p.grammar.MinOptions > p.grammar.MaxOptions {
		p.grammar.MinOptions = p.grammar.MaxOptions
	}

	return p
}

var defaultParser = NewParser()

// Parse разбирает text парсером по умолчанию.
// Никогда не возвращает ошибку: пустой результат означает, что вопросов не найдено.
func Parse(text string) []QuestionRecord {
	return defaultParser.Parse(text)
}

// Parse разбирает text и возвращает вопросы в порядке следования в тексте.
func (p *Parser) Parse(text string) []QuestionRecord {
	return p.ParseReport(text).Records
}

// ParseReport разбирает text и возвращает вопросы вместе с диагностикой.
func (p *Parser) ParseReport(text string) Report {
	s := &scanner{parser: p}

	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	for _, raw := range strings.Split(text, "\n") {
		s.feed(p.grammar.classify(raw))
	}
	s.flush()

	if s.report.Records == nil {
		s.report.Records = []QuestionRecord{}
	}

	return s.report
}

// stage — на каком месте блока находится разбор.
type stage int

const (
	stageEmpty stage = iota
	stagePrompt
	stageOptions
	stageAnswered
	stageExplanation
)

// block — сырой блок вопроса до проверки.
type block struct {
	stage       stage
	tagged      bool
	prompt      []string
	labels      []string
	options     []string
	answer      string
	hasAnswer   bool
	explanation []string
	// explanationTail — сколько строк без метки подряд дописано к пояснению.
	explanationTail int
}

// scanner — состояние одного вызова ParseReport.
type scanner struct {
	parser *Parser
	cur    block
	report Report
}

func (s *scanner) feed(l line) {
	b := &s.cur

	switch l.kind {
	case lineBlank:
		switch b.stage {
		case stageEmpty:
		case stagePrompt:
			// Заголовок без вариантов отбрасывается, но текст после явного
			// маркера вопроса может отделяться от вариантов пустой строкой.
			if !b.tagged {
				s.flush()
			}
		default:
			s.flush()
		}

	case lineQuestion:
		s.flush()
		s.cur = block{stage: stagePrompt, tagged: true}
		if l.text != "" {
			s.cur.prompt = append(s.cur.prompt, l.text)
		}

	case lineOption:
		if b.stage == stageExplanation && b.explanationTail > 0 {
			// Последняя строка пояснения оказалась текстом следующего вопроса.
			last := len(b.explanation) - 1
			prompt := b.explanation[last]
			b.explanation = b.explanation[:last]

			s.flush()
			s.cur = block{stage: stagePrompt, prompt: []string{trimBullet(prompt)}}
			s.feed(l)

			return
		}

		if b.stage == stageAnswered || b.stage == stageExplanation {
			return
		}

		// "D. H. Lawrence wrote?" похоже на вариант D, но список вариантов
		// начинается с A, поэтому в начале блока такая строка — текст вопроса.
		if b.stage == stageEmpty && l.label != "A" && l.raw != "" {
			b.prompt = append(b.prompt, l.raw)
			b.stage = stagePrompt
			return
		}

		b.stage = stageOptions
		if l.text == "" || len(b.options) >= s.parser.grammar.MaxOptions {
			return
		}

		b.labels = append(b.labels, l.label)
		b.options = append(b.options, l.text)

	case lineAnswer:
		if !b.hasAnswer {
			b.answer = l.text
			b.hasAnswer = true
		}
		b.stage = stageAnswered

	case lineExplanation:
		if l.text != "" {
			b.explanation = append(b.explanation, l.text)
		}
		b.stage = stageExplanation
		b.explanationTail = 0

	case lineText:
		switch b.stage {
		case stageEmpty:
			b.prompt = append(b.prompt, trimBullet(l.text))
			b.stage = stagePrompt
		case stagePrompt:
			b.prompt = append(b.prompt, l.text)
		case stageOptions:
		case stageAnswered:
			s.flush()
			s.cur = block{stage: stagePrompt, prompt: []string{trimBullet(l.text)}}
		case stageExplanation:
			b.explanation = append(b.explanation, l.text)
			b.explanationTail++
		}
	}
}

// flush закрывает текущий блок и, если он корректен, добавляет вопрос в отчёт.
func (s *scanner) flush() {
	b := s.cur
	s.cur = block{}

	if b.stage == stageEmpty && !b.hasAnswer {
		return
	}

	s.report.Blocks++

	prompt := strings.TrimSpace(strings.Join(b.prompt, "\n"))
	if prompt == "" || len(b.options) < s.parser.grammar.MinOptions {
		s.report.Dropped++
		return
	}

	correct, ok := resolveAnswer(b.answer, b.labels, b.options)
	if !ok {
		if s.parser.strict {
			s.report.Dropped++
			return
		}

		correct = 0
		s.report.Defaulted++
	}

	s.report.Records = append(s.report.Records, QuestionRecord{
		Prompt:       prompt,
		Options:      b.options,
		CorrectIndex: correct,
		Explanation:  strings.TrimSpace(strings.Join(b.explanation, "\n")),
	})
}

// resolveAnswer переводит токен ответа в индекс варианта.
// Понимает букву (с учетом фактических меток вариантов), номер с единицы
// и полный текст варианта.
func resolveAnswer(token string, labels, options []string) (int, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}

	field := strings.Trim(strings.Fields(token)[0], "()[].:,;")

	if idx, ok := LetterToIndex(field); ok {
		labeled := false
		for i, label := range labels {
			if label == "" {
				continue
			}

			labeled = true
			if strings.EqualFold(label, field) {
				return i, true
			}
		}

		if !labeled && idx < len(options) {
			return idx, true
		}

		return 0, false
	}

	if n, err := strconv.Atoi(field); err == nil {
		if n >= 1 && n <= len(options) {
			return n - 1, true
		}

		return 0, false
	}

	for i, option := range options {
		if strings.EqualFold(option, token) {
			return i, true
		}
	}

	return 0, false
}
