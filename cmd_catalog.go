package main

import (
	"cacei_stats_backend/internal/config"
	"cacei_stats_backend/internal/repository"
	"cacei_stats_backend/pkg/database"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "探测并打印科目名称目录",
	Long: `按优先级探测 ingenieria.materias(nombre)、ingenieria.materias(asignatura)、
estadistica.materias(nombre)，输出服务启动时会使用的目录。`,
	RunE: runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	catalog, err := repository.NewCatalogRepository(db).Resolve(ctx, cfg.Catalog)
	if err != nil {
		return fmt.Errorf("resolve catalog: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "mode=%s catalog=%s\n", cfg.Catalog.Mode, catalog)
	return nil
}
