package quiz

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsssgooo/mcqPollBot/internal/mcq"
)

const twoQuestions = `What is 2+2?
A) 3
B) 4
Correct: B

Q: Capital of France?
A. Berlin
B. Paris
C. Rome
Answer: B
Explanation: Paris.

This block has no options
`

func writeQuestions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quiz.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBank_Reload(t *testing.T) {
	bank := NewBank(writeQuestions(t, twoQuestions), nil)
	assert.Zero(t, bank.Len())

	report, err := bank.Reload()
	require.NoError(t, err)

	assert.Equal(t, 2, bank.Len())
	assert.Equal(t, 1, report.Dropped)

	questions := bank.Questions()
	require.Len(t, questions, 2)
	assert.Equal(t, "What is 2+2?", questions[0].Prompt)
	assert.Equal(t, "Paris.", questions[1].Explanation)
}

func TestBank_ReloadKeepsSetOnReadError(t *testing.T) {
	path := writeQuestions(t, twoQuestions)
	bank := NewBank(path, mcq.NewParser())

	_, err := bank.Reload()
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	_, err = bank.Reload()
	assert.Error(t, err)
	assert.Equal(t, 2, bank.Len())
}

func TestBank_ReloadEmptyFile(t *testing.T) {
	path := writeQuestions(t, twoQuestions)
	bank := NewBank(path, nil)

	_, err := bank.Reload()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("nothing useful here\n"), 0o600))

	report, err := bank.Reload()
	require.NoError(t, err)
	assert.Empty(t, report.Records)
	assert.Zero(t, bank.Len())

	_, ok := bank.Random()
	assert.False(t, ok)
}

func TestBank_RandomReturnsCopy(t *testing.T) {
	bank := NewBank(writeQuestions(t, twoQuestions), nil)
	_, err := bank.Reload()
	require.NoError(t, err)

	q, ok := bank.Random()
	require.True(t, ok)
	q.Options[0] = "changed"

	for _, stored := range bank.Questions() {
		assert.NotEqual(t, "changed", stored.Options[0])
	}
}

func TestBank_Concurrent(t *testing.T) {
	bank := NewBank(writeQuestions(t, twoQuestions), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = bank.Reload()
		}()
		go func() {
			defer wg.Done()
			_, _ = bank.Random()
			_ = bank.Len()
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, bank.Len())
}
