// Package spreadsheet reads and writes question-bank workbooks.
//
// A workbook holds one question per row on its first sheet. The first row is
// a header naming the columns; the required names are listed in Columns.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/stemsi/quizxmentor-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// Column names of a question workbook, in template order.
const (
	ColQuestion   = "Question"
	ColOptionA    = "Option_A"
	ColOptionB    = "Option_B"
	ColOptionC    = "Option_C"
	ColOptionD    = "Option_D"
	ColCorrectAns = "Correct_Ans"
)

// Columns lists every required header.
var Columns = []string{ColQuestion, ColOptionA, ColOptionB, ColOptionC, ColOptionD, ColCorrectAns}

// ParseError describes why a workbook was rejected. Row is the 1-based sheet
// row (the header is row 1); zero when the problem is not tied to a row.
type ParseError struct {
	Row    int
	Column string
	Reason string
}

func (e *ParseError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("row %d, column %s: %s", e.Row, e.Column, e.Reason)
	case e.Row > 0:
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	default:
		return e.Reason
	}
}

// ParseQuestions reads every question of the first sheet of an xlsx workbook.
// It is all or nothing: the first bad row fails the whole workbook.
func ParseQuestions(r io.Reader) ([]model.Question, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Reason: "file is not a readable xlsx workbook"}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("read sheet %q: %v", sheets[0], err)}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Row: 1, Reason: "header row is missing"}
	}

	index, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		q, err := parseRow(row, index, i+2)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// headerIndex maps each required column to its position in the header row.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(Columns))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &ParseError{Row: 1, Reason: "missing required columns: " + strings.Join(missing, ", ")}
	}
	return index, nil
}

func parseRow(row []string, index map[string]int, rowNum int) (model.Question, error) {
	cells := make(map[string]string, len(Columns))
	for _, col := range Columns {
		v := cell(row, index[col])
		if v == "" {
			return model.Question{}, &ParseError{Row: rowNum, Column: col, Reason: "value is required"}
		}
		cells[col] = v
	}

	answer := strings.ToUpper(cells[ColCorrectAns])
	if !model.IsOptionLetter(answer) {
		return model.Question{}, &ParseError{
			Row:    rowNum,
			Column: ColCorrectAns,
			Reason: fmt.Sprintf("%q is not one of A, B, C, D", cells[ColCorrectAns]),
		}
	}

	return model.Question{
		QuestionText: cells[ColQuestion],
		OptionA:      cells[ColOptionA],
		OptionB:      cells[ColOptionB],
		OptionC:      cells[ColOptionC],
		OptionD:      cells[ColOptionD],
		CorrectAns:   answer,
	}, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
