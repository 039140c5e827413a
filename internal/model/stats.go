package model

import "cacei_stats_backend/internal/grading"

// GradeRow estadistica.boletas 中的一次成绩记录
type GradeRow struct {
	StudentID   string `gorm:"column:student_id"`
	SubjectCode string `gorm:"column:subject_code"`
	Cycle       string `gorm:"column:cycle"`
	RawGrade    string `gorm:"column:raw_grade"`
	GradeLevel  string `gorm:"column:grade_level"`
}

func (r GradeRow) Record() grading.Record {
	return grading.Record{
		StudentID:   r.StudentID,
		SubjectCode: r.SubjectCode,
		Cycle:       r.Cycle,
		RawGrade:    r.RawGrade,
		GradeLevel:  r.GradeLevel,
	}
}

func GradeRecords(rows []GradeRow) []grading.Record {
	out := make([]grading.Record, len(rows))
	for i, r := range rows {
		out[i] = r.Record()
	}
	return out
}

// StatusCount 按周期（或入学周期）和学籍状态分组的人数
type StatusCount struct {
	Cycle  string `gorm:"column:cycle"`
	Status string `gorm:"column:status"`
	Total  int64  `gorm:"column:total"`
}

type StudentRow struct {
	StudentID string `gorm:"column:student_id"`
	Cohort    string `gorm:"column:cohort"`
	Status    string `gorm:"column:status"`
}

type StudentCycleRow struct {
	StudentID string `gorm:"column:student_id"`
	Cycle     string `gorm:"column:cycle"`
}

type SubjectName struct {
	Code string  `gorm:"column:code"`
	Name *string `gorm:"column:name"`
}

// EnrollmentRow 每个周期的在册学生数
type EnrollmentRow struct {
	Cycle    string `json:"ciclo" gorm:"column:cycle"`
	Enrolled int64  `json:"inscritos" gorm:"column:enrolled"`
}

type CohortActivityRow struct {
	Cycle  string `json:"ciclo" gorm:"column:cycle"`
	Active int64  `json:"activos" gorm:"column:active"`
}

type StatusBreakdownRow struct {
	Gender string `json:"genero" gorm:"column:genero"`
	Status string `json:"estatus" gorm:"column:estatus"`
	Total  int64  `json:"total" gorm:"column:total"`
}

type DropoutRow struct {
	Cycle      string   `json:"ciclo"`
	Dropouts   int64    `json:"desertores"`
	Total      int64    `json:"total"`
	Percentage *float64 `json:"porcentaje"`
}

// CohortDropoutRow 按入学周期统计的各类退学代码
type CohortDropoutRow struct {
	Cohort     string   `json:"cohorte"`
	BD         int64    `json:"BD"`
	BCPED      int64    `json:"BCPED"`
	BCPES      int64    `json:"BCPES"`
	BCM        int64    `json:"BCM"`
	BT         int64    `json:"BT"`
	RI         int64    `json:"RI"`
	Total      int64    `json:"total"`
	Dropouts   int64    `json:"desercion"`
	Percentage *float64 `json:"porcentaje"`
}

type CohortSummary struct {
	Cohort           string   `json:"cohorte"`
	Intake           int64    `json:"ingreso"`
	ActiveBySemester []int64  `json:"activos_por_semestre"`
	Graduates        int64    `json:"egresados"`
	Titled           int64    `json:"titulados"`
	Interns          int64    `json:"pasantes"`
	PctGraduates     *float64 `json:"pct_egresados"`
	PctTitled        *float64 `json:"pct_titulados"`
}

type FailureReport struct {
	Program string           `json:"programa"`
	Variant string           `json:"variante"`
	Scale   grading.Scale    `json:"escala"`
	Rows    []grading.Result `json:"filas"`
}

type SubjectFailureRow struct {
	grading.SubjectResult
	SubjectName string `json:"nombre"`
}

type SubjectFailureReport struct {
	Program string              `json:"programa"`
	Variant string              `json:"variante"`
	Scale   grading.Scale       `json:"escala"`
	Rows    []SubjectFailureRow `json:"filas"`
}

type SubjectAverageRow struct {
	grading.SubjectAverage
	SubjectName string `json:"nombre"`
}

type HealthStatus struct {
	Status    string   `json:"status"`
	Databases []string `json:"databases"`
	Catalog   string   `json:"catalog"`
}
