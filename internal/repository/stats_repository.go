package repository

import (
	"cacei_stats_backend/internal/model"
	"cacei_stats_backend/pkg/database"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// 两个库：estadistica（成绩台账 boletas）与 ingenieria（学籍 alumnos/programas/materias）
const (
	gradeRecordsSQL = `
	SELECT
	  b.matricula                     AS student_id,
	  b.clave                         AS subject_code,
	  COALESCE(b.ciclo, '')           AS cycle,
	  COALESCE(b.calificacion, '')    AS raw_grade,
	  COALESCE(b.grado, '')           AS grade_level
	FROM estadistica.boletas b
	LEFT JOIN ingenieria.alumnos a ON a.matricula = b.matricula
	WHERE UPPER(COALESCE(b.carrera, a.desc_programa, '')) LIKE @programa
	  AND (@ciclo IS NULL OR b.ciclo = @ciclo)`

	enrollmentSQL = `
	SELECT b.ciclo AS cycle,
	       COUNT(DISTINCT b.matricula) AS enrolled
	FROM estadistica.boletas b
	WHERE UPPER(COALESCE(b.carrera, '')) LIKE @programa
	  AND b.ciclo IS NOT NULL
	GROUP BY b.ciclo`

	statusByLastCycleSQL = `
	SELECT COALESCE(a.ultimo_ciclo_kardex, a.ciclo_ingreso, '') AS cycle,
	       UPPER(COALESCE(a.estatus, ''))                       AS status,
	       COUNT(*)                                             AS total
	FROM ingenieria.alumnos a
	WHERE UPPER(COALESCE(a.desc_programa, '')) LIKE @programa
	GROUP BY COALESCE(a.ultimo_ciclo_kardex, a.ciclo_ingreso, ''), UPPER(COALESCE(a.estatus, ''))`

	statusByCohortSQL = `
	SELECT a.ciclo_ingreso                 AS cycle,
	       UPPER(COALESCE(a.estatus, ''))  AS status,
	       COUNT(*)                        AS total
	FROM ingenieria.alumnos a
	WHERE UPPER(COALESCE(a.desc_programa, '')) LIKE @programa
	  AND a.ciclo_ingreso IS NOT NULL AND a.ciclo_ingreso <> ''
	GROUP BY a.ciclo_ingreso, UPPER(COALESCE(a.estatus, ''))`

	cohortActivitySQL = `
	SELECT b.ciclo AS cycle,
	       COUNT(DISTINCT b.matricula) AS active
	FROM estadistica.boletas b
	JOIN ingenieria.alumnos a ON a.matricula = b.matricula
	WHERE a.ciclo_ingreso = @cohorte
	  AND UPPER(COALESCE(a.desc_programa, '')) LIKE @programa
	  AND b.ciclo IS NOT NULL
	GROUP BY b.ciclo`

	cohortStudentsSQL = `
	SELECT a.matricula                    AS student_id,
	       a.ciclo_ingreso                AS cohort,
	       UPPER(COALESCE(a.estatus, '')) AS status
	FROM ingenieria.alumnos a
	WHERE UPPER(COALESCE(a.desc_programa, '')) LIKE @programa
	  AND a.ciclo_ingreso IS NOT NULL AND a.ciclo_ingreso <> ''
	  AND (@cohorte IS NULL OR a.ciclo_ingreso = @cohorte)`

	studentCyclesSQL = `
	SELECT DISTINCT b.matricula AS student_id,
	       b.ciclo AS cycle
	FROM estadistica.boletas b
	JOIN ingenieria.alumnos a ON a.matricula = b.matricula
	WHERE UPPER(COALESCE(a.desc_programa, '')) LIKE @programa
	  AND b.ciclo IS NOT NULL
	  AND (@cohorte IS NULL OR a.ciclo_ingreso = @cohorte)`

	statusBreakdownSQL = `
	SELECT UPPER(COALESCE(a.genero, 'N/D'))  AS genero,
	       UPPER(COALESCE(a.estatus, 'N/D')) AS estatus,
	       COUNT(*)                          AS total
	FROM ingenieria.alumnos a
	WHERE UPPER(COALESCE(a.desc_programa, '')) LIKE @programa
	GROUP BY UPPER(COALESCE(a.genero, 'N/D')), UPPER(COALESCE(a.estatus, 'N/D'))
	ORDER BY genero, estatus`

	programsSQL = `
	SELECT DISTINCT COALESCE(p.descripcion, a.desc_programa, 'SIN_PROGRAMA') AS programa
	FROM estadistica.boletas b
	LEFT JOIN ingenieria.alumnos a ON a.matricula = b.matricula
	LEFT JOIN ingenieria.programas p ON p.id_programa = a.id_programa
	ORDER BY 1
	LIMIT @limit`

	cohortsSQL = `
	SELECT DISTINCT a.ciclo_ingreso AS cohorte
	FROM ingenieria.alumnos a
	WHERE UPPER(COALESCE(a.desc_programa, '')) LIKE @programa
	  AND a.ciclo_ingreso IS NOT NULL AND a.ciclo_ingreso <> ''`

	subjectNamesSQL = `
	SELECT c.clave AS code, %s AS name
	FROM (SELECT DISTINCT b.clave FROM estadistica.boletas b WHERE b.clave IN @claves) c
	%s`
)

// ProgramPattern 把程序名转换为 LIKE 模式，仅做字符串包含匹配
func ProgramPattern(program string) string {
	return "%" + strings.ToUpper(strings.TrimSpace(program)) + "%"
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

type StatsRepository struct {
	DB      *gorm.DB
	Exec    *database.Executor
	Catalog model.SubjectCatalog
}

func NewStatsRepository(db *gorm.DB, catalog model.SubjectCatalog) *StatsRepository {
	return &StatsRepository{DB: db, Exec: database.NewExecutor(db), Catalog: catalog}
}

// GradeRecords 返回程序内（可选限定周期）的全部成绩尝试
func (r *StatsRepository) GradeRecords(ctx context.Context, program, cycle string) ([]model.GradeRow, error) {
	var rows []model.GradeRow
	err := r.DB.WithContext(ctx).Raw(gradeRecordsSQL, map[string]interface{}{
		"programa": ProgramPattern(program),
		"ciclo":    nullable(cycle),
	}).Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) EnrollmentByCycle(ctx context.Context, program string) ([]model.EnrollmentRow, error) {
	var rows []model.EnrollmentRow
	err := r.DB.WithContext(ctx).Raw(enrollmentSQL, map[string]interface{}{
		"programa": ProgramPattern(program),
	}).Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) StatusByLastCycle(ctx context.Context, program string) ([]model.StatusCount, error) {
	var rows []model.StatusCount
	err := r.DB.WithContext(ctx).Raw(statusByLastCycleSQL, map[string]interface{}{
		"programa": ProgramPattern(program),
	}).Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) StatusByCohort(ctx context.Context, program string) ([]model.StatusCount, error) {
	var rows []model.StatusCount
	err := r.DB.WithContext(ctx).Raw(statusByCohortSQL, map[string]interface{}{
		"programa": ProgramPattern(program),
	}).Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) CohortActivity(ctx context.Context, program, cohort string) ([]model.CohortActivityRow, error) {
	var rows []model.CohortActivityRow
	err := r.DB.WithContext(ctx).Raw(cohortActivitySQL, map[string]interface{}{
		"programa": ProgramPattern(program),
		"cohorte":  cohort,
	}).Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) CohortStudents(ctx context.Context, program, cohort string) ([]model.StudentRow, error) {
	var rows []model.StudentRow
	err := r.DB.WithContext(ctx).Raw(cohortStudentsSQL, map[string]interface{}{
		"programa": ProgramPattern(program),
		"cohorte":  nullable(cohort),
	}).Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) StudentCycles(ctx context.Context, program, cohort string) ([]model.StudentCycleRow, error) {
	var rows []model.StudentCycleRow
	err := r.DB.WithContext(ctx).Raw(studentCyclesSQL, map[string]interface{}{
		"programa": ProgramPattern(program),
		"cohorte":  nullable(cohort),
	}).Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) StatusBreakdown(ctx context.Context, program string) ([]model.StatusBreakdownRow, error) {
	var rows []model.StatusBreakdownRow
	err := r.DB.WithContext(ctx).Raw(statusBreakdownSQL, map[string]interface{}{
		"programa": ProgramPattern(program),
	}).Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) Programs(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.Exec.Query(ctx, programsSQL, map[string]interface{}{"limit": limit})
	if err != nil {
		return nil, err
	}
	return stringColumn(rows, "programa"), nil
}

func (r *StatsRepository) Cohorts(ctx context.Context, program string) ([]string, error) {
	rows, err := r.Exec.Query(ctx, cohortsSQL, map[string]interface{}{
		"programa": ProgramPattern(program),
	})
	if err != nil {
		return nil, err
	}
	return stringColumn(rows, "cohorte"), nil
}

// SubjectNames 通过启动时解析的目录查询科目名称，缺失的不出现在结果中
func (r *StatsRepository) SubjectNames(ctx context.Context, codes []string) (map[string]string, error) {
	names := make(map[string]string)
	if len(codes) == 0 || !r.Catalog.Available() {
		return names, nil
	}

	query := fmt.Sprintf(subjectNamesSQL, r.Catalog.NameExpr(), r.Catalog.Join("c"))
	var rows []model.SubjectName
	if err := r.DB.WithContext(ctx).Raw(query, map[string]interface{}{"claves": codes}).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Name != nil && *row.Name != "" {
			names[row.Code] = *row.Name
		}
	}
	return names, nil
}

func (r *StatsRepository) Databases(ctx context.Context) ([]string, error) {
	rows, err := r.Exec.Query(ctx, "SHOW DATABASES", nil)
	if err != nil {
		return nil, err
	}
	return stringColumn(rows, "Database"), nil
}

func (r *StatsRepository) Ping(ctx context.Context) error {
	return r.Exec.Ping(ctx)
}

func stringColumn(rows []database.Row, col string) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		switch v := row[col].(type) {
		case string:
			out = append(out, v)
		case nil:
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}
