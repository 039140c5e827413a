package service

import (
	"cacei_stats_backend/internal/cycle"
	"cacei_stats_backend/internal/grading"
	"cacei_stats_backend/internal/util"
	"cacei_stats_backend/pkg/tracing"
	"context"
	"fmt"
	"strings"
)

type MetaService struct {
	Store MetaStore
	Stats *StatsService
}

func NewMetaService(store MetaStore, stats *StatsService) *MetaService {
	return &MetaService{Store: store, Stats: stats}
}

// VariantInfo 对外展示的评估变体
type VariantInfo struct {
	Name             string  `json:"nombre"`
	Description      string  `json:"descripcion"`
	DefaultThreshold float64 `json:"umbral_predeterminado"`
	Default          bool    `json:"predeterminada"`
}

// Programs 列出程序名称，limit 取值 1..1000
func (s *MetaService) Programs(ctx context.Context, limit int) ([]string, error) {
	ctx, span := tracing.Tracer.Start(ctx, "MetaService.Programs")
	defer span.End()

	if limit < 1 || limit > util.MaxProgramLimit {
		err := fmt.Errorf("%w: limit must be between 1 and %d", util.ErrInvalidParameter, util.MaxProgramLimit)
		tracing.Fail(span, err)
		return nil, err
	}
	programs, err := s.Store.Programs(ctx, limit)
	if err != nil {
		tracing.Fail(span, err)
		return nil, fmt.Errorf("load programs: %w", err)
	}
	return programs, nil
}

// Cohorts 程序的入学周期，按周期顺序排列
func (s *MetaService) Cohorts(ctx context.Context, program string) ([]string, error) {
	ctx, span := tracing.Tracer.Start(ctx, "MetaService.Cohorts")
	defer span.End()

	if strings.TrimSpace(program) == "" && s.Stats != nil {
		program = s.Stats.Program(program)
	}
	cohorts, err := s.Store.Cohorts(ctx, program)
	if err != nil {
		tracing.Fail(span, err)
		return nil, fmt.Errorf("load cohorts: %w", err)
	}
	cycle.Sort(cohorts)
	return cohorts, nil
}

func (s *MetaService) Variants() []VariantInfo {
	def := grading.BestAttempt.Name
	if s.Stats != nil && s.Stats.Defaults().DefaultVariant != "" {
		def = s.Stats.Defaults().DefaultVariant
	}
	variants := grading.Variants()
	out := make([]VariantInfo, len(variants))
	for i, v := range variants {
		out[i] = VariantInfo{
			Name:             v.Name,
			Description:      v.Description,
			DefaultThreshold: v.DefaultThreshold,
			Default:          v.Name == def,
		}
	}
	return out
}
