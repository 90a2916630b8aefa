package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/letsssgooo/mcqPollBot/internal/mcq"
)

func TestRenderReport(t *testing.T) {
	report := mcq.NewParser().ParseReport(`What is 2+2?
A) 3
B) 4
Answer: B
Explanation: Arithmetic.

orphan heading

Q: No answer here
A) x
B) y
`)

	out := renderReport(newStyles(true), "quiz.txt", report)

	assert.Contains(t, out, "quiz.txt\n")
	assert.Contains(t, out, "1. What is 2+2?\n")
	assert.Contains(t, out, "   B) 4 *\n")
	assert.Contains(t, out, "   A) 3\n")
	assert.Contains(t, out, "   Arithmetic.\n")
	assert.Contains(t, out, "2 questions from 3 blocks, 1 dropped, 1 answers defaulted to A")
}
