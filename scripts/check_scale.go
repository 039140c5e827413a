// 成绩量纲诊断脚本
//
// 打印某个程序的 max_observed 与换算后的及格线，并列出最大的几条数字成绩，
// 用于排查台账中混入 0-100 分制或录入错误导致的量纲误判。
//
// 用法: go run scripts/check_scale.go -program AEROESPACIAL -threshold 6 [-cycle 2022-SEM-ENE/JUN]

package main

import (
	"cacei_stats_backend/internal/config"
	"cacei_stats_backend/internal/grading"
	"cacei_stats_backend/internal/model"
	"cacei_stats_backend/internal/repository"
	"cacei_stats_backend/pkg/database"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

func main() {
	configFile := flag.String("config", "configs/config.yaml", "配置文件")
	program := flag.String("program", "AEROESPACIAL", "程序名称（包含匹配）")
	cycle := flag.String("cycle", "", "只检查该周期")
	threshold := flag.Float64("threshold", 6, "及格线")
	variantName := flag.String("variant", grading.BestAttempt.Name, "评估变体")
	top := flag.Int("top", 10, "列出最大的 N 条数字成绩")
	flag.Parse()

	data, err := os.ReadFile(*configFile)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}
	if cfg.Database.Charset == "" {
		cfg.Database.Charset = "utf8mb4"
	}

	variant, err := grading.LookupVariant(*variantName)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repo := repository.NewStatsRepository(db, model.SubjectCatalog{})
	rows, err := repo.GradeRecords(ctx, *program, *cycle)
	if err != nil {
		log.Fatalf("读取成绩失败: %v", err)
	}
	records := model.GradeRecords(rows)
	scale := variant.ComputeScale(records, *threshold)

	fmt.Printf("program=%s variant=%s records=%d\n", *program, variant.Name, len(records))
	fmt.Printf("max_observed=%.2f threshold_raw=%.2f threshold_effective=%.2f\n",
		scale.MaxObserved, scale.ThresholdRaw, scale.ThresholdEffective)

	type sample struct {
		value float64
		rec   grading.Record
	}
	var numeric []sample
	nonNumeric := 0
	for _, r := range records {
		if v, ok := variant.ParseGrade(r.RawGrade); ok {
			numeric = append(numeric, sample{v, r})
		} else {
			nonNumeric++
		}
	}
	sort.Slice(numeric, func(i, j int) bool { return numeric[i].value > numeric[j].value })

	fmt.Printf("numeric=%d non_numeric=%d\n", len(numeric), nonNumeric)
	for i := 0; i < len(numeric) && i < *top; i++ {
		s := numeric[i]
		fmt.Printf("  %8.2f  %s %s %s\n", s.value, s.rec.StudentID, s.rec.SubjectCode, s.rec.Cycle)
	}
}
