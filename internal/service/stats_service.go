package service

import (
	"cacei_stats_backend/internal/config"
	"cacei_stats_backend/internal/cycle"
	"cacei_stats_backend/internal/grading"
	"cacei_stats_backend/internal/model"
	"cacei_stats_backend/internal/util"
	"cacei_stats_backend/pkg/logger"
	"cacei_stats_backend/pkg/monitoring"
	"cacei_stats_backend/pkg/tracing"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	deserterPattern = regexp.MustCompile(`BAJA|INACT`)
	graduatePattern = regexp.MustCompile(`EGRES`)
	titledPattern   = regexp.MustCompile(`TITUL`)
	internPattern   = regexp.MustCompile(`PASANT`)
)

// dropoutCodes 学籍状态代码及其全称写法，顺序即匹配优先级
var dropoutCodes = []struct {
	code    string
	pattern *regexp.Regexp
}{
	{"BCPED", regexp.MustCompile(`^BCPED\b|CAMBIO DE PROGRAMA`)},
	{"BCPES", regexp.MustCompile(`^BCPES\b|CAMBIO DE PLAN`)},
	{"BCM", regexp.MustCompile(`^BCM\b|CAMBIO DE MODALIDAD`)},
	{"BD", regexp.MustCompile(`^BD\b|BAJA DEFINITIVA`)},
	{"BT", regexp.MustCompile(`^BT\b|BAJA TEMPORAL`)},
	{"RI", regexp.MustCompile(`^RI\b|REINGRESO`)},
}

// dropoutCode 返回状态对应的退学代码，不匹配时为空
func dropoutCode(status string) string {
	s := strings.ToUpper(strings.TrimSpace(status))
	for _, dc := range dropoutCodes {
		if dc.pattern.MatchString(s) {
			return dc.code
		}
	}
	return ""
}

// FailureParams 不及格率查询参数，nil 或空值使用当前默认值
type FailureParams struct {
	Program               string
	Cycle                 string
	Threshold             *float64
	CountNonNumericAsFail *bool
	Variant               string
}

type StatsService struct {
	Store StatsStore

	mu       sync.RWMutex
	defaults config.GradingConfig
}

func NewStatsService(store StatsStore, defaults config.GradingConfig) *StatsService {
	return &StatsService{Store: store, defaults: defaults}
}

// Defaults 返回当前默认评估参数
func (s *StatsService) Defaults() config.GradingConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// UpdateDefaults 配置热更新时调用
func (s *StatsService) UpdateDefaults(cfg config.GradingConfig) {
	s.mu.Lock()
	s.defaults = cfg
	s.mu.Unlock()
	logger.Log.Info("Grading defaults updated",
		zap.String("program", cfg.DefaultProgram),
		zap.Float64("threshold", cfg.DefaultThreshold),
		zap.String("variant", cfg.DefaultVariant),
	)
}

// Program 空程序名使用默认程序
func (s *StatsService) Program(program string) string {
	if p := strings.TrimSpace(program); p != "" {
		return p
	}
	return s.Defaults().DefaultProgram
}

// resolve 在查询数据库之前完成全部参数校验
func (s *StatsService) resolve(p FailureParams, groupBy grading.GroupBy) (grading.Variant, grading.Options, error) {
	d := s.Defaults()

	name := p.Variant
	if name == "" {
		name = d.DefaultVariant
	}
	variant, err := grading.LookupVariant(name)
	if err != nil {
		return grading.Variant{}, grading.Options{}, fmt.Errorf("%w: %w", util.ErrInvalidParameter, err)
	}

	opts := grading.Options{
		Threshold:             d.DefaultThreshold,
		CountNonNumericAsFail: d.CountNonNumericAsFail,
		GroupBy:               groupBy,
	}
	if opts.Threshold == 0 {
		opts.Threshold = variant.DefaultThreshold
	}
	if p.Threshold != nil {
		opts.Threshold = *p.Threshold
	}
	if p.CountNonNumericAsFail != nil {
		opts.CountNonNumericAsFail = *p.CountNonNumericAsFail
	}
	if err := opts.Validate(); err != nil {
		return grading.Variant{}, grading.Options{}, fmt.Errorf("%w: %w", util.ErrInvalidParameter, err)
	}
	return variant, opts, nil
}

func (s *StatsService) evaluate(ctx context.Context, op string, p FailureParams, groupBy grading.GroupBy) (string, grading.Variant, []grading.Result, grading.Scale, error) {
	variant, opts, err := s.resolve(p, groupBy)
	if err != nil {
		return "", grading.Variant{}, nil, grading.Scale{}, err
	}
	program := s.Program(p.Program)

	rows, err := s.Store.GradeRecords(ctx, program, strings.TrimSpace(p.Cycle))
	if err != nil {
		monitoring.QueryErrors.WithLabelValues(op).Inc()
		return "", grading.Variant{}, nil, grading.Scale{}, fmt.Errorf("load grade records: %w", err)
	}

	results, scale, err := variant.EvaluateWithScale(model.GradeRecords(rows), opts)
	if err != nil {
		return "", grading.Variant{}, nil, grading.Scale{}, fmt.Errorf("%w: %w", util.ErrInvalidParameter, err)
	}
	monitoring.ObserveEvaluation(variant.Name, groupBy.String(), len(rows))
	logger.Log.Debug("Grades evaluated",
		zap.String("op", op),
		zap.String("program", program),
		zap.String("variant", variant.Name),
		zap.Int("records", len(rows)),
		zap.Float64("max_observed", scale.MaxObserved),
		zap.Float64("threshold_effective", scale.ThresholdEffective),
	)
	return program, variant, results, scale, nil
}

// FailureByCycle 按周期统计不及格率
func (s *StatsService) FailureByCycle(ctx context.Context, p FailureParams) (*model.FailureReport, error) {
	ctx, span := tracing.Tracer.Start(ctx, "StatsService.FailureByCycle")
	defer span.End()

	program, variant, results, scale, err := s.evaluate(ctx, "failure_by_cycle", p, grading.GroupByCycle)
	if err != nil {
		tracing.Fail(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("program", program), attribute.Int("rows", len(results)))

	return &model.FailureReport{
		Program: program,
		Variant: variant.Name,
		Scale:   scale,
		Rows:    results,
	}, nil
}

// FailureBySubject 按科目和周期统计不及格率，并补充科目名称
func (s *StatsService) FailureBySubject(ctx context.Context, p FailureParams) (*model.SubjectFailureReport, error) {
	ctx, span := tracing.Tracer.Start(ctx, "StatsService.FailureBySubject")
	defer span.End()

	program, variant, results, scale, err := s.evaluate(ctx, "failure_by_subject", p, grading.GroupBySubjectCycle)
	if err != nil {
		tracing.Fail(span, err)
		return nil, err
	}

	codes := make([]string, 0, len(results))
	for _, r := range results {
		codes = append(codes, r.SubjectCode)
	}
	names, err := s.subjectNames(ctx, codes)
	if err != nil {
		tracing.Fail(span, err)
		return nil, err
	}

	rows := make([]model.SubjectFailureRow, len(results))
	for i, r := range grading.SubjectResults(results) {
		rows[i] = model.SubjectFailureRow{SubjectResult: r, SubjectName: nameOf(names, r.SubjectCode)}
	}
	span.SetAttributes(attribute.String("program", program), attribute.Int("rows", len(rows)))

	return &model.SubjectFailureReport{
		Program: program,
		Variant: variant.Name,
		Scale:   scale,
		Rows:    rows,
	}, nil
}

// SubjectAverages 某周期各科目的平均分及达到平均分的人数比例
func (s *StatsService) SubjectAverages(ctx context.Context, program, cyc, variantName string) ([]model.SubjectAverageRow, error) {
	ctx, span := tracing.Tracer.Start(ctx, "StatsService.SubjectAverages")
	defer span.End()

	cyc = strings.TrimSpace(cyc)
	if cyc == "" {
		err := fmt.Errorf("%w: ciclo", util.ErrMissingParameter)
		tracing.Fail(span, err)
		return nil, err
	}
	if variantName == "" {
		variantName = s.Defaults().DefaultVariant
	}
	variant, err := grading.LookupVariant(variantName)
	if err != nil {
		err = fmt.Errorf("%w: %w", util.ErrInvalidParameter, err)
		tracing.Fail(span, err)
		return nil, err
	}

	rows, err := s.Store.GradeRecords(ctx, s.Program(program), cyc)
	if err != nil {
		monitoring.QueryErrors.WithLabelValues("subject_averages").Inc()
		tracing.Fail(span, err)
		return nil, fmt.Errorf("load grade records: %w", err)
	}

	averages := variant.SubjectAverages(model.GradeRecords(rows))
	codes := make([]string, 0, len(averages))
	for _, a := range averages {
		codes = append(codes, a.SubjectCode)
	}
	names, err := s.subjectNames(ctx, codes)
	if err != nil {
		tracing.Fail(span, err)
		return nil, err
	}

	out := make([]model.SubjectAverageRow, len(averages))
	for i, a := range averages {
		out[i] = model.SubjectAverageRow{SubjectAverage: a, SubjectName: nameOf(names, a.SubjectCode)}
	}
	return out, nil
}

func (s *StatsService) subjectNames(ctx context.Context, codes []string) (map[string]string, error) {
	if len(codes) == 0 {
		return map[string]string{}, nil
	}
	seen := make(map[string]struct{}, len(codes))
	unique := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}
	names, err := s.Store.SubjectNames(ctx, unique)
	if err != nil {
		monitoring.QueryErrors.WithLabelValues("subject_names").Inc()
		return nil, fmt.Errorf("load subject names: %w", err)
	}
	return names, nil
}

func nameOf(names map[string]string, code string) string {
	if n := strings.TrimSpace(names[code]); n != "" {
		return n
	}
	return model.UnnamedSubject
}

// EnrollmentByCycle 每个周期的在册学生数
func (s *StatsService) EnrollmentByCycle(ctx context.Context, program string) ([]model.EnrollmentRow, error) {
	ctx, span := tracing.Tracer.Start(ctx, "StatsService.EnrollmentByCycle")
	defer span.End()

	rows, err := s.Store.EnrollmentByCycle(ctx, s.Program(program))
	if err != nil {
		monitoring.QueryErrors.WithLabelValues("enrollment").Inc()
		tracing.Fail(span, err)
		return nil, fmt.Errorf("load enrollment: %w", err)
	}
	sort.SliceStable(rows, func(i, j int) bool { return cycle.Less(rows[i].Cycle, rows[j].Cycle) })
	return rows, nil
}

// DropoutByCycle 按最后一个周期统计退学人数
func (s *StatsService) DropoutByCycle(ctx context.Context, program string) ([]model.DropoutRow, error) {
	ctx, span := tracing.Tracer.Start(ctx, "StatsService.DropoutByCycle")
	defer span.End()

	counts, err := s.Store.StatusByLastCycle(ctx, s.Program(program))
	if err != nil {
		monitoring.QueryErrors.WithLabelValues("dropout_by_cycle").Inc()
		tracing.Fail(span, err)
		return nil, fmt.Errorf("load status counts: %w", err)
	}

	index := make(map[string]*model.DropoutRow)
	var order []string
	for _, c := range counts {
		row, ok := index[c.Cycle]
		if !ok {
			row = &model.DropoutRow{Cycle: c.Cycle}
			index[c.Cycle] = row
			order = append(order, c.Cycle)
		}
		row.Total += c.Total
		if deserterPattern.MatchString(strings.ToUpper(c.Status)) {
			row.Dropouts += c.Total
		}
	}

	cycle.Sort(order)
	out := make([]model.DropoutRow, 0, len(order))
	for _, key := range order {
		row := index[key]
		row.Percentage = grading.Percentage(row.Dropouts, row.Total, 2)
		out = append(out, *row)
	}
	return out, nil
}

// DropoutByCohort 按入学周期统计各类退学代码，subtractRI 为真时从退学总数中减去复学人数
func (s *StatsService) DropoutByCohort(ctx context.Context, program string, subtractRI bool) ([]model.CohortDropoutRow, error) {
	ctx, span := tracing.Tracer.Start(ctx, "StatsService.DropoutByCohort")
	defer span.End()

	counts, err := s.Store.StatusByCohort(ctx, s.Program(program))
	if err != nil {
		monitoring.QueryErrors.WithLabelValues("dropout_by_cohort").Inc()
		tracing.Fail(span, err)
		return nil, fmt.Errorf("load status counts: %w", err)
	}

	index := make(map[string]*model.CohortDropoutRow)
	var order []string
	for _, c := range counts {
		row, ok := index[c.Cycle]
		if !ok {
			row = &model.CohortDropoutRow{Cohort: c.Cycle}
			index[c.Cycle] = row
			order = append(order, c.Cycle)
		}
		row.Total += c.Total
		switch dropoutCode(c.Status) {
		case "BD":
			row.BD += c.Total
		case "BCPED":
			row.BCPED += c.Total
		case "BCPES":
			row.BCPES += c.Total
		case "BCM":
			row.BCM += c.Total
		case "BT":
			row.BT += c.Total
		case "RI":
			row.RI += c.Total
		}
	}

	cycle.Sort(order)
	out := make([]model.CohortDropoutRow, 0, len(order))
	for _, key := range order {
		row := index[key]
		row.Dropouts = row.BD + row.BCPED + row.BCPES + row.BCM + row.BT
		if subtractRI {
			row.Dropouts -= row.RI
		}
		if row.Dropouts < 0 {
			row.Dropouts = 0
		}
		row.Percentage = grading.Percentage(row.Dropouts, row.Total, 2)
		out = append(out, *row)
	}
	return out, nil
}

// CohortTracking 某入学周期的学生在之后各周期的在册人数
func (s *StatsService) CohortTracking(ctx context.Context, program, cohort string) ([]model.CohortActivityRow, error) {
	ctx, span := tracing.Tracer.Start(ctx, "StatsService.CohortTracking")
	defer span.End()

	cohort = strings.TrimSpace(cohort)
	if cohort == "" {
		err := fmt.Errorf("%w: ciclo_ingreso", util.ErrMissingParameter)
		tracing.Fail(span, err)
		return nil, err
	}

	rows, err := s.Store.CohortActivity(ctx, s.Program(program), cohort)
	if err != nil {
		monitoring.QueryErrors.WithLabelValues("cohort_tracking").Inc()
		tracing.Fail(span, err)
		return nil, fmt.Errorf("load cohort activity: %w", err)
	}
	sort.SliceStable(rows, func(i, j int) bool { return cycle.Less(rows[i].Cycle, rows[j].Cycle) })
	return rows, nil
}

// CohortSummary 各入学周期按学期的留存人数以及毕业、取得学位、实习人数
func (s *StatsService) CohortSummary(ctx context.Context, program, cohort string, maxSemesters int) ([]model.CohortSummary, error) {
	ctx, span := tracing.Tracer.Start(ctx, "StatsService.CohortSummary")
	defer span.End()

	if maxSemesters <= 0 {
		maxSemesters = s.Defaults().MaxCohortSemesters
	}
	if maxSemesters <= 0 || maxSemesters > 30 {
		err := fmt.Errorf("%w: max_semestres must be between 1 and 30", util.ErrInvalidParameter)
		tracing.Fail(span, err)
		return nil, err
	}
	program = s.Program(program)
	cohort = strings.TrimSpace(cohort)

	var (
		students []model.StudentRow
		cycles   []model.StudentCycleRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		students, err = s.Store.CohortStudents(gctx, program, cohort)
		if err != nil {
			return fmt.Errorf("load cohort students: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cycles, err = s.Store.StudentCycles(gctx, program, cohort)
		if err != nil {
			return fmt.Errorf("load student cycles: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		monitoring.QueryErrors.WithLabelValues("cohort_summary").Inc()
		tracing.Fail(span, err)
		return nil, err
	}

	return summarizeCohorts(students, cycles, maxSemesters), nil
}

func summarizeCohorts(students []model.StudentRow, cycles []model.StudentCycleRow, maxSemesters int) []model.CohortSummary {
	type bucket struct {
		cohort   string
		semester int
	}

	cohortOf := make(map[string]string, len(students))
	index := make(map[string]*model.CohortSummary)
	var order []string

	for _, st := range students {
		cohortOf[st.StudentID] = st.Cohort
		row, ok := index[st.Cohort]
		if !ok {
			row = &model.CohortSummary{Cohort: st.Cohort, ActiveBySemester: make([]int64, maxSemesters)}
			index[st.Cohort] = row
			order = append(order, st.Cohort)
		}
		row.Intake++

		status := strings.ToUpper(st.Status)
		if graduatePattern.MatchString(status) {
			row.Graduates++
		}
		if titledPattern.MatchString(status) {
			row.Titled++
		}
		if internPattern.MatchString(status) {
			row.Interns++
		}
	}

	// 同一学期可能对应多个周期写法，按学生去重
	seen := make(map[bucket]map[string]struct{})
	for _, sc := range cycles {
		cohort, ok := cohortOf[sc.StudentID]
		if !ok {
			continue
		}
		steps, ok := cycle.SemestersBetween(cohort, sc.Cycle)
		if !ok || steps < 0 || steps >= maxSemesters {
			continue
		}
		key := bucket{cohort, steps}
		if seen[key] == nil {
			seen[key] = make(map[string]struct{})
		}
		if _, dup := seen[key][sc.StudentID]; dup {
			continue
		}
		seen[key][sc.StudentID] = struct{}{}
		index[cohort].ActiveBySemester[steps]++
	}

	cycle.Sort(order)
	out := make([]model.CohortSummary, 0, len(order))
	for _, key := range order {
		row := index[key]
		row.PctGraduates = grading.Percentage(row.Graduates, row.Intake, 2)
		row.PctTitled = grading.Percentage(row.Titled, row.Intake, 2)
		out = append(out, *row)
	}
	return out
}

// StatusBreakdown 按性别和学籍状态统计人数
func (s *StatsService) StatusBreakdown(ctx context.Context, program string) ([]model.StatusBreakdownRow, error) {
	ctx, span := tracing.Tracer.Start(ctx, "StatsService.StatusBreakdown")
	defer span.End()

	rows, err := s.Store.StatusBreakdown(ctx, s.Program(program))
	if err != nil {
		monitoring.QueryErrors.WithLabelValues("status_breakdown").Inc()
		tracing.Fail(span, err)
		return nil, fmt.Errorf("load status breakdown: %w", err)
	}
	return rows, nil
}
