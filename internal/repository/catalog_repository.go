package repository

import (
	"cacei_stats_backend/internal/config"
	"cacei_stats_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

// schemaProber 检查 information_schema 中的表和列
type schemaProber interface {
	TableExists(ctx context.Context, schema, table string) (bool, error)
	ColumnExists(ctx context.Context, schema, table, column string) (bool, error)
}

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) TableExists(ctx context.Context, schema, table string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = @s AND table_name = @t`,
		map[string]interface{}{"s": schema, "t": table}).Scan(&n).Error
	return n > 0, err
}

func (r *CatalogRepository) ColumnExists(ctx context.Context, schema, table, column string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM information_schema.columns
		WHERE table_schema = @s AND table_name = @t AND column_name = @c`,
		map[string]interface{}{"s": schema, "t": table, "c": column}).Scan(&n).Error
	return n > 0, err
}

// Resolve 按配置决定目录形态；auto 时探测一次 information_schema
func (r *CatalogRepository) Resolve(ctx context.Context, cfg config.CatalogConfig) (model.SubjectCatalog, error) {
	if cfg.Mode != "" && cfg.Mode != "auto" {
		kind, err := model.ParseCatalogKind(cfg.Mode)
		if err != nil {
			return model.SubjectCatalog{}, err
		}
		if kind == model.CatalogNone {
			return model.SubjectCatalog{}, nil
		}
		return model.SubjectCatalog{Kind: kind, Schema: cfg.Schema}, nil
	}
	return probeCatalog(ctx, r)
}

// 优先 ingenieria.materias(nombre|asignatura)，其次 estadistica.materias(nombre)
var catalogCandidates = []model.SubjectCatalog{
	{Kind: model.CatalogNombre, Schema: "ingenieria"},
	{Kind: model.CatalogAsignatura, Schema: "ingenieria"},
	{Kind: model.CatalogNombre, Schema: "estadistica"},
}

func probeCatalog(ctx context.Context, p schemaProber) (model.SubjectCatalog, error) {
	for _, c := range catalogCandidates {
		ok, err := p.TableExists(ctx, c.Schema, "materias")
		if err != nil {
			return model.SubjectCatalog{}, err
		}
		if !ok {
			continue
		}
		if ok, err = p.ColumnExists(ctx, c.Schema, "materias", "clave"); err != nil {
			return model.SubjectCatalog{}, err
		} else if !ok {
			continue
		}
		if ok, err = p.ColumnExists(ctx, c.Schema, "materias", c.Kind.String()); err != nil {
			return model.SubjectCatalog{}, err
		} else if ok {
			return c, nil
		}
	}
	return model.SubjectCatalog{}, nil
}
