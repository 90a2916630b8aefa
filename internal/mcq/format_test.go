package mcq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Canonical(t *testing.T) {
	text := Format([]QuestionRecord{
		{Prompt: "What is 2 + 2?", Options: []string{"3", "4", "5", "6"}, CorrectIndex: 1},
	})

	assert.Equal(t, "What is 2 + 2?\nA) 3\nB) 4\nC) 5\nD) 6\nCorrect: B\n", text)
}

func TestFormat_RoundTrip(t *testing.T) {
	records := []QuestionRecord{
		{Prompt: "Capital of France?", Options: []string{"London", "Paris"}, CorrectIndex: 1},
		{Prompt: "1. Looks like a marker", Options: []string{"a", "b", "c"}, CorrectIndex: 2, Explanation: "Numbered."},
		{Prompt: "Answer: trick question", Options: []string{"x", "y"}, CorrectIndex: 0},
		{Prompt: "Q: already tagged", Options: []string{"x", "y", "z", "w"}, CorrectIndex: 3},
	}

	parsed := Parse(Format(records))

	require.Len(t, parsed, len(records))
	assert.Equal(t, records, parsed)
}

func TestFormat_Empty(t *testing.T) {
	assert.Equal(t, "", Format(nil))
}

func TestValidate(t *testing.T) {
	valid := QuestionRecord{Prompt: "Q?", Options: []string{"a", "b"}, CorrectIndex: 1}
	require.NoError(t, valid.Validate())

	testCases := []struct {
		name   string
		record QuestionRecord
	}{
		{name: "empty prompt", record: QuestionRecord{Prompt: " ", Options: []string{"a", "b"}}},
		{name: "one option", record: QuestionRecord{Prompt: "Q?", Options: []string{"a"}}},
		{name: "five options", record: QuestionRecord{Prompt: "Q?", Options: []string{"a", "b", "c", "d", "e"}}},
		{name: "empty option", record: QuestionRecord{Prompt: "Q?", Options: []string{"a", ""}}},
		{name: "negative index", record: QuestionRecord{Prompt: "Q?", Options: []string{"a", "b"}, CorrectIndex: -1}},
		{name: "index out of range", record: QuestionRecord{Prompt: "Q?", Options: []string{"a", "b"}, CorrectIndex: 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.record.Validate(), ErrInvalidRecord)
		})
	}
}

func TestLetterToIndex(t *testing.T) {
	idx, ok := LetterToIndex("c")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = LetterToIndex("E")
	assert.False(t, ok)

	assert.Equal(t, "D", IndexToLetter(3))
	assert.Equal(t, "", IndexToLetter(4))
}

func TestClone(t *testing.T) {
	r := QuestionRecord{Prompt: "Q?", Options: []string{"a", "b"}}
	c := r.Clone()
	c.Options[0] = "changed"

	assert.Equal(t, "a", r.Options[0])
	assert.Equal(t, "changed", c.CorrectOption())
}
