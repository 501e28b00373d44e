package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-survey/pkg/survey"
)

func sampleAnswers() *survey.Answers {
	answers := survey.NewAnswers()
	answers.Set("Q1", survey.FieldLabel, "Name")
	answers.Set("Q1", survey.FieldWidgetKey, "k1")
	answers.Set("Q1", survey.FieldValue, "Ada")
	answers.Set("Q2", survey.FieldLabel, "Tags")
	answers.Set("Q2", survey.FieldValue, []string{"a", "b"})
	answers.Set("Q3", survey.FieldLabel, "Score")
	answers.Set("Q3", survey.FieldValue, 4.5)
	return answers
}

func TestWriteFileAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	src := sampleAnswers()

	require.NoError(t, WriteFile(path, src))

	dst := survey.NewAnswers()
	require.NoError(t, ReadFile(path, dst))

	want, err := src.Export()
	require.NoError(t, err)
	got, err := dst.Export()
	require.NoError(t, err)
	require.JSONEq(t, string(want), string(got))
}

func TestReadFrom_ParseErrorLeavesAnswers(t *testing.T) {
	dst := sampleAnswers()
	err := ReadFrom(strings.NewReader(`[1]`), dst)
	require.True(t, errors.Is(err, survey.ErrParse), "expected parse error, got %v", err)
	require.Equal(t, 3, dst.Len())
}

func TestReadFrom_RejectsOversizedPayload(t *testing.T) {
	payload := bytes.Repeat([]byte(" "), MaxImportSize+1)
	err := ReadFrom(bytes.NewReader(payload), survey.NewAnswers())
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeds")
}

func TestReadFile_Missing(t *testing.T) {
	err := ReadFile(filepath.Join(t.TempDir(), "missing.json"), survey.NewAnswers())
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFilename(t *testing.T) {
	require.Equal(t, "Survey-1.json", Filename("", "Survey 1"))
	require.Equal(t, "answers-Survey-1.json", Filename("answers-{label}.json", "Survey 1"))
	require.Equal(t, "survey.json", Filename("", "👍"))
}

func TestXLSX(t *testing.T) {
	data, err := XLSX(sampleAnswers())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"ID", "Label", "Widget Key", "Value"},
		{"Q1", "Name", "k1", "Ada"},
		{"Q2", "Tags", "", "a, b"},
		{"Q3", "Score", "", "4.5"},
	}, rows)
}
