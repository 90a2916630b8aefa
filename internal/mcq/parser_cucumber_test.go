//go:build cucumber

package mcq

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

// TestParserFeatures прогоняет сценарии разбора из features/parser.feature.
func TestParserFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "mcq-parser",
		ScenarioInitializer: initializeParserScenario,
		Options: &godog.Options{
			Format:    "progress",
			Paths:     []string{filepath.Join("features", "parser.feature")},
			Output:    io.Discard,
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}

	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// parserState хранит состояние одного сценария.
type parserState struct {
	document string
	report   Report
}

func initializeParserScenario(ctx *godog.ScenarioContext) {
	state := &parserState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*state = parserState{}
		return ctx, nil
	})

	ctx.Step(`^the document:$`, state.givenDocument)
	ctx.Step(`^I parse it$`, state.parse)
	ctx.Step(`^I parse it in strict mode$`, state.parseStrict)
	ctx.Step(`^(\d+) questions? (?:is|are) produced$`, state.questionsProduced)
	ctx.Step(`^(\d+) blocks? (?:is|are) dropped$`, state.blocksDropped)
	ctx.Step(`^question (\d+) has prompt "([^"]*)"$`, state.questionHasPrompt)
	ctx.Step(`^question (\d+) has options "([^"]*)"$`, state.questionHasOptions)
	ctx.Step(`^question (\d+) has correct index (\d+)$`, state.questionHasCorrectIndex)
	ctx.Step(`^question (\d+) has explanation "([^"]*)"$`, state.questionHasExplanation)
}

func (s *parserState) givenDocument(doc *godog.DocString) error {
	s.document = doc.Content
	return nil
}

func (s *parserState) parse() error {
	s.report = NewParser().ParseReport(s.document)
	return nil
}

func (s *parserState) parseStrict() error {
	s.report = NewParser(WithStrictAnswers()).ParseReport(s.document)
	return nil
}

func (s *parserState) questionsProduced(n int) error {
	if len(s.report.Records) != n {
		return fmt.Errorf("expected %d questions, got %d", n, len(s.report.Records))
	}
	return nil
}

func (s *parserState) blocksDropped(n int) error {
	if s.report.Dropped != n {
		return fmt.Errorf("expected %d dropped blocks, got %d", n, s.report.Dropped)
	}
	return nil
}

func (s *parserState) question(n int) (QuestionRecord, error) {
	if n < 1 || n > len(s.report.Records) {
		return QuestionRecord{}, fmt.Errorf("question %d does not exist, got %d questions", n, len(s.report.Records))
	}
	return s.report.Records[n-1], nil
}

func (s *parserState) questionHasPrompt(n int, prompt string) error {
	q, err := s.question(n)
	if err != nil {
		return err
	}
	if q.Prompt != prompt {
		return fmt.Errorf("expected prompt %q, got %q", prompt, q.Prompt)
	}
	return nil
}

func (s *parserState) questionHasOptions(n int, options string) error {
	q, err := s.question(n)
	if err != nil {
		return err
	}
	got := strings.Join(q.Options, " | ")
	if got != options {
		return fmt.Errorf("expected options %q, got %q", options, got)
	}
	return nil
}

func (s *parserState) questionHasCorrectIndex(n, idx int) error {
	q, err := s.question(n)
	if err != nil {
		return err
	}
	if q.CorrectIndex != idx {
		return fmt.Errorf("expected correct index %d, got %d", idx, q.CorrectIndex)
	}
	return nil
}

func (s *parserState) questionHasExplanation(n int, explanation string) error {
	q, err := s.question(n)
	if err != nil {
		return err
	}
	if q.Explanation != explanation {
		return fmt.Errorf("expected explanation %q, got %q", explanation, q.Explanation)
	}
	return nil
}
