package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectAverages(t *testing.T) {
	records := []Record{
		{StudentID: "S1", SubjectCode: "M1", Cycle: "2022-SEM-ENE/JUN", RawGrade: "6", GradeLevel: "2"},
		{StudentID: "S1", SubjectCode: "M1", Cycle: "2022-SEM-ENE/JUN", RawGrade: "9", GradeLevel: "2"},
		{StudentID: "S2", SubjectCode: "M1", Cycle: "2022-SEM-ENE/JUN", RawGrade: "7", GradeLevel: "2"},
		{StudentID: "S3", SubjectCode: "M1", Cycle: "2022-SEM-ENE/JUN", RawGrade: "5", GradeLevel: "3"},
		{StudentID: "S4", SubjectCode: "M1", Cycle: "2022-SEM-ENE/JUN", RawGrade: "NP", GradeLevel: "2"},
		{StudentID: "S1", SubjectCode: "M0", Cycle: "2022-SEM-ENE/JUN", RawGrade: "NA", GradeLevel: "1"},
		{StudentID: "S1", SubjectCode: "M9", Cycle: "2021-SEM-AGO/DIC", RawGrade: "10", GradeLevel: "1"},
	}

	got := SubjectAverages(records)
	require.Len(t, got, 3)

	assert.Equal(t, "M9", got[0].SubjectCode)
	assert.Equal(t, "2021-SEM-AGO/DIC", got[0].Cycle)
	require.NotNil(t, got[0].Average)
	assert.Equal(t, 10.0, *got[0].Average)
	assert.Equal(t, 1, got[0].AtOrAboveAverage)

	assert.Equal(t, "M0", got[1].SubjectCode)
	assert.Equal(t, 1, got[1].Enrolled)
	assert.Nil(t, got[1].Average)
	assert.Nil(t, got[1].Percentage)

	m1 := got[2]
	assert.Equal(t, "M1", m1.SubjectCode)
	assert.Equal(t, 2, m1.Semester)
	assert.Equal(t, 4, m1.Enrolled)
	require.NotNil(t, m1.Average)
	assert.Equal(t, 7.0, *m1.Average)
	assert.Equal(t, 2, m1.AtOrAboveAverage)
	require.NotNil(t, m1.Percentage)
	assert.Equal(t, 66.7, *m1.Percentage)
}

func TestSubjectAveragesEmpty(t *testing.T) {
	assert.Empty(t, SubjectAverages(nil))
}
