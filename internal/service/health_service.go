package service

import (
	"cacei_stats_backend/internal/model"
	"context"
	"fmt"
)

type HealthService struct {
	Store   HealthStore
	Catalog model.SubjectCatalog
}

func NewHealthService(store HealthStore, catalog model.SubjectCatalog) *HealthService {
	return &HealthService{Store: store, Catalog: catalog}
}

// Check ping 数据库并列出可见的库
func (s *HealthService) Check(ctx context.Context) (*model.HealthStatus, error) {
	if err := s.Store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	dbs, err := s.Store.Databases(ctx)
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	return &model.HealthStatus{
		Status:    "ok",
		Databases: dbs,
		Catalog:   s.Catalog.String(),
	}, nil
}
