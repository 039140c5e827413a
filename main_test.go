package main

import (
	"bytes"
	"cacei_stats_backend/internal/grading"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledger = `student,subject,cycle,grade,level
A1,M1,2022-SEM-ENE/JUN,55,1
A1,M1,2022-SEM-ENE/JUN,85,1
A2,M1,2022-SEM-ENE/JUN,40,1
A3,M2,2022-SEM-ENE/JUN,NP,2
A4,M2,2022-SEM-AGO/DIC,90,2
`

type decodedOutput struct {
	Variant string                  `json:"variante"`
	Records int                     `json:"registros"`
	Scale   grading.Scale           `json:"escala"`
	Rows    []grading.SubjectResult `json:"filas"`
}

// runCLI 执行 evaluate 子命令，所有标志显式给出以免沿用上一次的值
func runCLI(t *testing.T, input string, args ...string) (decodedOutput, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(append([]string{"evaluate"}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	var got decodedOutput
	if err := rootCmd.Execute(); err != nil {
		return got, err
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	return got, nil
}

func TestReadRecordsCSV(t *testing.T) {
	records, err := readRecordsCSV(strings.NewReader(ledger))
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "A3", records[3].StudentID)
	assert.Equal(t, "NP", records[3].RawGrade)
	assert.Equal(t, "2", records[3].GradeLevel)

	_, err = readRecordsCSV(strings.NewReader("A1,M1,2022-SEM-ENE/JUN\n"))
	assert.Error(t, err)

	// 成绩前的空格保留，交给引擎按非数字处理
	records, err = readRecordsCSV(strings.NewReader("A1,M1,2022-SEM-ENE/JUN, 7,1\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, " 7", records[0].RawGrade)
}

func TestEvaluateCommand(t *testing.T) {
	got, err := runCLI(t, ledger, "--file", "-", "--variant", "best_attempt", "--threshold", "60", "--group-by", "cycle", "--non-numeric-fail")
	require.NoError(t, err)

	assert.Equal(t, "best_attempt", got.Variant)
	assert.Equal(t, 5, got.Records)
	assert.Equal(t, 90.0, got.Scale.MaxObserved)
	require.Len(t, got.Rows, 2)

	// A1 取最高分 85 及格，A2 不及格，A3 非数字计为不及格
	assert.Equal(t, "2022-SEM-ENE/JUN", got.Rows[0].Cycle)
	assert.Equal(t, 3, got.Rows[0].EvaluatedCount)
	assert.Equal(t, 2, got.Rows[0].FailedCount)
	assert.Equal(t, 66.67, *got.Rows[0].FailurePercentage)
}

func TestEvaluateCommandBySubject(t *testing.T) {
	input := ledger + "A5,M3,2022-SEM-AGO/DIC,70,X\n"
	got, err := runCLI(t, input, "--file", "-", "--variant", "best_attempt", "--threshold", "60", "--group-by", "subject", "--non-numeric-fail=false")
	require.NoError(t, err)
	require.Len(t, got.Rows, 4)

	bySubject := map[string]grading.SubjectResult{}
	for _, r := range got.Rows {
		bySubject[r.SubjectCode+"@"+r.Cycle] = r
	}
	assert.Equal(t, 1, bySubject["M1@2022-SEM-ENE/JUN"].Semester)
	assert.Equal(t, 2, bySubject["M2@2022-SEM-AGO/DIC"].Semester)
	assert.Equal(t, 0, bySubject["M3@2022-SEM-AGO/DIC"].Semester)
}

func TestEvaluateTreatsPaddedGradeAsNonNumeric(t *testing.T) {
	got, err := runCLI(t, "A1,M1,2022-SEM-ENE/JUN, 7,1\nA2,M1,2022-SEM-ENE/JUN,8,1\n",
		"--file", "-", "--variant", "best_attempt", "--threshold", "6", "--group-by", "cycle", "--non-numeric-fail=false")
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, 1, got.Rows[0].EvaluatedCount)
}

func TestEvaluateRejectsBadOptions(t *testing.T) {
	_, err := runCLI(t, ledger, "--file", "-", "--variant", "best_attempt", "--threshold", "60", "--group-by", "weekday", "--non-numeric-fail=false")
	assert.ErrorIs(t, err, grading.ErrInvalidGroupBy)
}

func TestEvaluateValidatesBeforeReading(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")

	_, err := runCLI(t, ledger, "--file", missing, "--variant", "bogus", "--threshold", "6", "--group-by", "cycle", "--non-numeric-fail=false")
	assert.ErrorIs(t, err, grading.ErrUnknownVariant)

	_, err = runCLI(t, ledger, "--file", missing, "--variant", "best_attempt", "--threshold", "0", "--group-by", "cycle", "--non-numeric-fail=false")
	assert.ErrorIs(t, err, grading.ErrInvalidThreshold)
}
