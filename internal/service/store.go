package service

import (
	"cacei_stats_backend/internal/model"
	"context"
)

// StatsStore 报表服务依赖的查询集合，由 repository.StatsRepository 实现
type StatsStore interface {
	GradeRecords(ctx context.Context, program, cycle string) ([]model.GradeRow, error)
	EnrollmentByCycle(ctx context.Context, program string) ([]model.EnrollmentRow, error)
	StatusByLastCycle(ctx context.Context, program string) ([]model.StatusCount, error)
	StatusByCohort(ctx context.Context, program string) ([]model.StatusCount, error)
	CohortActivity(ctx context.Context, program, cohort string) ([]model.CohortActivityRow, error)
	CohortStudents(ctx context.Context, program, cohort string) ([]model.StudentRow, error)
	StudentCycles(ctx context.Context, program, cohort string) ([]model.StudentCycleRow, error)
	StatusBreakdown(ctx context.Context, program string) ([]model.StatusBreakdownRow, error)
	SubjectNames(ctx context.Context, codes []string) (map[string]string, error)
}

// MetaStore 元数据查询
type MetaStore interface {
	Programs(ctx context.Context, limit int) ([]string, error)
	Cohorts(ctx context.Context, program string) ([]string, error)
}

// HealthStore 健康检查
type HealthStore interface {
	Ping(ctx context.Context) error
	Databases(ctx context.Context) ([]string, error)
}
