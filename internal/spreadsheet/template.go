package spreadsheet

import (
	"fmt"
	"io"

	"github.com/stemsi/quizxmentor-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// TemplateExample is the single illustrative row of the download template.
var TemplateExample = model.Question{
	QuestionText: "What is the capital of France?",
	OptionA:      "Berlin",
	OptionB:      "Paris",
	OptionC:      "Madrid",
	OptionD:      "Rome",
	CorrectAns:   model.OptionB,
}

// SampleQuestions is the starter question set shipped with the CLI.
var SampleQuestions = []model.Question{
	{QuestionText: "What is the default port number for the Flask development server?", OptionA: "5000", OptionB: "8000", OptionC: "3000", OptionD: "80", CorrectAns: model.OptionA},
	{QuestionText: "Which AWS service is used for serverless computing?", OptionA: "EC2", OptionB: "Lambda", OptionC: "ECS", OptionD: "Fargate", CorrectAns: model.OptionB},
	{QuestionText: "What decorator is used to define a route in Flask?", OptionA: "@route", OptionB: "@app.route", OptionC: "@flask.route", OptionD: "@web.route", CorrectAns: model.OptionB},
	{QuestionText: "Which AWS service provides scalable object storage?", OptionA: "RDS", OptionB: "S3", OptionC: "DynamoDB", OptionD: "CloudFront", CorrectAns: model.OptionB},
	{QuestionText: "What method is used to get form data in Flask?", OptionA: "request.form", OptionB: "request.get", OptionC: "request.data", OptionD: "request.json", CorrectAns: model.OptionA},
}

// WriteQuestions writes a workbook with the header row followed by questions,
// in a layout ParseQuestions reads back unchanged.
func WriteQuestions(w io.Writer, questions []model.Question) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, q := range questions {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAns}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 60); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "F", 18); err != nil {
		return err
	}

	return f.Write(w)
}
