package quiz

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/letsssgooo/mcqPollBot/internal/mcq"
)

var csvHeader = []string{"Index", "Question", "A", "B", "C", "D", "Correct", "Explanation"}

// ExportCSV экспортирует вопросы в CSV. Отсутствующие варианты остаются пустыми,
// правильный ответ записывается буквой.
func ExportCSV(records []mcq.QuestionRecord) ([]byte, error) {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, csvHeader)

	for i, r := range records {
		row := make([]string, 0, len(csvHeader))
		row = append(row, strconv.Itoa(i+1), r.Prompt)

		for j := 0; j < mcq.MaxOptions; j++ {
			if j < len(r.Options) {
				row = append(row, r.Options[j])
			} else {
				row = append(row, "")
			}
		}

		row = append(row, mcq.IndexToLetter(r.CorrectIndex), r.Explanation)
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	return buf.Bytes(), nil
}
