package grading

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func rec(student, subject, cycle, grade string) Record {
	return Record{StudentID: student, SubjectCode: subject, Cycle: cycle, RawGrade: grade}
}

func pct(t *testing.T, r Result) float64 {
	t.Helper()
	require.NotNil(t, r.FailurePercentage)
	return *r.FailurePercentage
}

func TestParseGrade(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		numeric bool
	}{
		{raw: "8", want: 8, numeric: true},
		{raw: "8.5", want: 8.5, numeric: true},
		{raw: ".5", want: 0.5, numeric: true},
		{raw: "0.456", want: 0.46, numeric: true},
		{raw: "100", want: 100, numeric: true},
		{raw: "8.", numeric: false},
		{raw: "NP", numeric: false},
		{raw: "NA", numeric: false},
		{raw: "", numeric: false},
		{raw: " 7", numeric: false},
		{raw: "-5", numeric: false},
		{raw: "7,5", numeric: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseGrade(tt.raw)
			assert.Equal(t, tt.numeric, ok)
			if tt.numeric {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestNormalizeThresholdProperties(t *testing.T) {
	for _, maxObserved := range []float64{0, 0.45, 1.0} {
		for _, threshold := range []float64{1.5, 6, 60, 70.5} {
			assert.Equal(t, threshold/100.0, NormalizeThreshold(maxObserved, threshold), "max=%v t=%v", maxObserved, threshold)
		}
		assert.Equal(t, 0.6, NormalizeThreshold(maxObserved, 0.6))
	}

	for _, maxObserved := range []float64{1.01, 8, 10} {
		for _, threshold := range []float64{10.5, 60, 70} {
			assert.Equal(t, threshold/10.0, NormalizeThreshold(maxObserved, threshold), "max=%v t=%v", maxObserved, threshold)
		}
		assert.Equal(t, 6.0, NormalizeThreshold(maxObserved, 6))
	}

	for _, maxObserved := range []float64{10.01, 85, 100} {
		for _, threshold := range []float64{0.6, 6, 60, 600} {
			assert.Equal(t, threshold, NormalizeThreshold(maxObserved, threshold))
		}
	}
}

func TestComputeScaleIgnoresRecordsWithoutCycle(t *testing.T) {
	records := []Record{
		rec("S1", "M1", "2022-SEM-ENE/JUN", "0.8"),
		rec("S2", "M1", "", "95"),
		rec("S3", "M1", "2022-SEM-ENE/JUN", "NP"),
	}

	scale := ComputeScale(records, 60)
	assert.Equal(t, Scale{MaxObserved: 0.8, ThresholdRaw: 60, ThresholdEffective: 0.6}, scale)

	assert.Equal(t, 0.0, ComputeScale(nil, 6).MaxObserved)
}

func TestEvaluateBestAttemptPasses(t *testing.T) {
	records := []Record{
		rec("S1", "M1", "C1", "5.0"),
		rec("S1", "M1", "C1", "8.0"),
	}

	attempts := Consolidate(records)
	require.Len(t, attempts, 1)
	require.NotNil(t, attempts[0].Best)
	assert.Equal(t, 8.0, *attempts[0].Best)

	results, scale, err := BestAttempt.EvaluateWithScale(records, Options{Threshold: 6.0, GroupBy: GroupByCycle})
	require.NoError(t, err)
	assert.Equal(t, 8.0, scale.MaxObserved)
	assert.Equal(t, 6.0, scale.ThresholdEffective)

	require.Len(t, results, 1)
	assert.Equal(t, "C1", results[0].Cycle)
	assert.Equal(t, 1, results[0].EvaluatedCount)
	assert.Equal(t, 0, results[0].FailedCount)
	assert.Equal(t, 0.0, pct(t, results[0]))
	assert.Equal(t, 6.0, results[0].ThresholdUsed)
}

func TestEvaluateFractionalScaleThreshold(t *testing.T) {
	results, err := Evaluate([]Record{rec("S1", "M1", "C1", "0.45")}, Options{Threshold: 0.6, GroupBy: GroupByCycle})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, 0.6, results[0].ThresholdUsed)
	assert.Equal(t, 1, results[0].EvaluatedCount)
	assert.Equal(t, 1, results[0].FailedCount)
	assert.Equal(t, 100.0, pct(t, results[0]))
}

func TestEvaluateNonNumericCountedAsFail(t *testing.T) {
	records := []Record{rec("S1", "M1", "C1", "NP")}

	results, err := Evaluate(records, Options{Threshold: 6, CountNonNumericAsFail: true, GroupBy: GroupByCycle})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].EvaluatedCount)
	assert.Equal(t, 1, results[0].FailedCount)
	assert.Equal(t, 100.0, pct(t, results[0]))

	results, err = Evaluate(records, Options{Threshold: 6, GroupBy: GroupByCycle})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].EvaluatedCount)
	assert.Equal(t, 0, results[0].FailedCount)
	assert.Nil(t, results[0].FailurePercentage)
}

func TestEvaluateBestGradeWinsAcrossAttempts(t *testing.T) {
	records := []Record{
		rec("S1", "M1", "C1", "4"),
		rec("S1", "M1", "C1", "7"),
	}

	results, err := Evaluate(records, Options{Threshold: 6, GroupBy: GroupBySubjectCycle})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "M1", results[0].SubjectCode)
	assert.Equal(t, 1, results[0].EvaluatedCount)
	assert.Equal(t, 0, results[0].FailedCount)
}

func TestEvaluateRescalesHundredPointThreshold(t *testing.T) {
	records := []Record{
		rec("S1", "M1", "2022-SEM-ENE/JUN", "5.5"),
		rec("S2", "M1", "2022-SEM-ENE/JUN", "9"),
		rec("S3", "M1", "2022-SEM-ENE/JUN", "6"),
	}

	results, err := Evaluate(records, Options{Threshold: 60, GroupBy: GroupByCycle})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 6.0, results[0].ThresholdUsed)
	assert.Equal(t, 3, results[0].EvaluatedCount)
	assert.Equal(t, 1, results[0].FailedCount)
	assert.Equal(t, 33.33, pct(t, results[0]))
}

func TestEvaluateThresholdIsGlobalAcrossGroups(t *testing.T) {
	// 一个周期是 0-100 刻度，另一个是 0-10，阈值按全局最大值只算一次
	records := []Record{
		rec("S1", "M1", "2021-SEM-AGO/DIC", "8"),
		rec("S2", "M1", "2022-SEM-ENE/JUN", "85"),
	}

	results, err := Evaluate(records, Options{Threshold: 60, GroupBy: GroupByCycle})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, 60.0, r.ThresholdUsed)
	}
	assert.Equal(t, 1, results[0].FailedCount)
	assert.Equal(t, 0, results[1].FailedCount)
}

func TestEvaluateFailedNeverExceedsEvaluated(t *testing.T) {
	records := []Record{
		rec("S1", "M1", "2022-SEM-ENE/JUN", "NP"),
		rec("S1", "M2", "2022-SEM-ENE/JUN", "3"),
		rec("S2", "M1", "2022-SEM-ENE/JUN", "NA"),
		rec("S2", "M1", "2022-SEM-ENE/JUN", ""),
		rec("S3", "M2", "2022-SEM-AGO/DIC", "10"),
		rec("S4", "M2", "2022-SEM-AGO/DIC", "abc"),
	}

	for _, groupBy := range []GroupBy{GroupByCycle, GroupBySubjectCycle} {
		results, err := Evaluate(records, Options{Threshold: 6, GroupBy: groupBy})
		require.NoError(t, err)
		for _, r := range results {
			assert.LessOrEqual(t, r.FailedCount, r.EvaluatedCount, "%s %s %s", groupBy, r.Cycle, r.SubjectCode)
			if r.EvaluatedCount == 0 {
				assert.Nil(t, r.FailurePercentage)
			}
		}
	}
}

func TestEvaluateOrdering(t *testing.T) {
	records := []Record{
		rec("S1", "B", "2022-SEM-AGO/DIC", "5"),
		rec("S1", "A", "2022-SEM-AGO/DIC", "9"),
		rec("S2", "A", "2022-SEM-AGO/DIC", "4"),
		rec("S1", "C", "2022-SEM-AGO/DIC", "NP"),
		rec("S1", "D", "2022-SEM-AGO/DIC", "2"),
		rec("S1", "A", "2022-SEM-ENE/JUN", "7"),
		rec("S1", "A", "2021-SEM-AGO/DIC", "7"),
	}

	byCycle, err := Evaluate(records, Options{Threshold: 6, GroupBy: GroupByCycle})
	require.NoError(t, err)
	var cycles []string
	for _, r := range byCycle {
		cycles = append(cycles, r.Cycle)
	}
	assert.Equal(t, []string{"2021-SEM-AGO/DIC", "2022-SEM-ENE/JUN", "2022-SEM-AGO/DIC"}, cycles)

	bySubject, err := Evaluate(records, Options{Threshold: 6, GroupBy: GroupBySubjectCycle})
	require.NoError(t, err)
	var keys []string
	for _, r := range bySubject {
		keys = append(keys, r.Cycle+"/"+r.SubjectCode)
	}
	assert.Equal(t, []string{
		"2021-SEM-AGO/DIC/A",
		"2022-SEM-ENE/JUN/A",
		"2022-SEM-AGO/DIC/B",
		"2022-SEM-AGO/DIC/D",
		"2022-SEM-AGO/DIC/A",
		"2022-SEM-AGO/DIC/C",
	}, keys)
	assert.Equal(t, 50.0, pct(t, bySubject[4]))
	assert.Nil(t, bySubject[5].FailurePercentage)
}

func TestEvaluateSubjectSemesterIsMinimum(t *testing.T) {
	records := []Record{
		{StudentID: "S1", SubjectCode: "M1", Cycle: "C1", RawGrade: "8", GradeLevel: "3 SEMESTRE"},
		{StudentID: "S1", SubjectCode: "M1", Cycle: "C1", RawGrade: "9", GradeLevel: "2"},
		{StudentID: "S2", SubjectCode: "M1", Cycle: "C1", RawGrade: "9", GradeLevel: " 4o"},
	}

	results, err := Evaluate(records, Options{Threshold: 6, GroupBy: GroupBySubjectCycle})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Semester)

	attempts := Consolidate(records)
	require.Len(t, attempts, 2)
	assert.Equal(t, 2, attempts[0].Semester)
	assert.Equal(t, 4, attempts[1].Semester)
}

func TestSubjectResultsKeepUnparsedSemester(t *testing.T) {
	records := []Record{
		{StudentID: "S1", SubjectCode: "M1", Cycle: "C1", RawGrade: "8", GradeLevel: "X"},
	}

	results, err := Evaluate(records, Options{Threshold: 6, GroupBy: GroupBySubjectCycle})
	require.NoError(t, err)
	rows := SubjectResults(results)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Semester)

	data, err := json.Marshal(rows[0])
	require.NoError(t, err)
	var subject map[string]any
	require.NoError(t, json.Unmarshal(data, &subject))
	assert.Equal(t, "M1", subject["clave"])
	assert.Contains(t, subject, "semestre")
	assert.Equal(t, 0.0, subject["semestre"])
	assert.Equal(t, "C1", subject["ciclo"])

	byCycle, err := Evaluate(records, Options{Threshold: 6, GroupBy: GroupByCycle})
	require.NoError(t, err)
	data, err = json.Marshal(byCycle[0])
	require.NoError(t, err)
	var cycleRow map[string]any
	require.NoError(t, json.Unmarshal(data, &cycleRow))
	assert.NotContains(t, cycleRow, "clave")
	assert.NotContains(t, cycleRow, "semestre")
}

func TestConsolidateIsIdempotent(t *testing.T) {
	records := []Record{
		{StudentID: "S1", SubjectCode: "M1", Cycle: "C1", RawGrade: "4", GradeLevel: "5"},
		{StudentID: "S1", SubjectCode: "M1", Cycle: "C1", RawGrade: "7.25", GradeLevel: "3"},
		{StudentID: "S1", SubjectCode: "M2", Cycle: "C1", RawGrade: "NP", GradeLevel: "X"},
		{StudentID: "S2", SubjectCode: "M1", Cycle: "C2", RawGrade: "0.45", GradeLevel: "1"},
	}

	first := Consolidate(records)

	var again []Record
	for _, a := range first {
		r := Record{StudentID: a.StudentID, SubjectCode: a.SubjectCode, Cycle: a.Cycle, GradeLevel: strconv.Itoa(a.Semester)}
		if a.Best != nil {
			r.RawGrade = strconv.FormatFloat(*a.Best, 'f', -1, 64)
		}
		again = append(again, r)
	}

	assert.Equal(t, first, Consolidate(again))
}

func TestEvaluateEmptyInput(t *testing.T) {
	results, err := Evaluate(nil, Options{Threshold: 6, GroupBy: GroupBySubjectCycle})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestEvaluateRejectsInvalidOptions(t *testing.T) {
	records := []Record{rec("S1", "M1", "C1", "8")}

	for _, threshold := range []float64{0, -6, math.NaN(), math.Inf(1)} {
		_, err := Evaluate(records, Options{Threshold: threshold, GroupBy: GroupByCycle})
		assert.True(t, errors.Is(err, ErrInvalidThreshold), "threshold %v", threshold)
	}

	_, err := Evaluate(records, Options{Threshold: 6})
	assert.ErrorIs(t, err, ErrInvalidGroupBy)

	_, err = Evaluate(records, Options{Threshold: 6, GroupBy: GroupBy(9)})
	assert.ErrorIs(t, err, ErrInvalidGroupBy)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	records := []Record{
		rec("S2", "M1", "2022-SEM-ENE/JUN", "5"),
		rec("S1", "M2", "2022-SEM-ENE/JUN", "NP"),
		rec("S1", "M1", "2021-SEM-AGO/DIC", "9"),
	}
	opts := Options{Threshold: 6, CountNonNumericAsFail: true, GroupBy: GroupBySubjectCycle}

	first, err := Evaluate(records, opts)
	require.NoError(t, err)
	second, err := Evaluate(records, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseGroupBy(t *testing.T) {
	g, err := ParseGroupBy("cycle")
	require.NoError(t, err)
	assert.Equal(t, GroupByCycle, g)

	g, err = ParseGroupBy(" Subject ")
	require.NoError(t, err)
	assert.Equal(t, GroupBySubjectCycle, g)

	_, err = ParseGroupBy("student")
	assert.ErrorIs(t, err, ErrInvalidGroupBy)
}
