package main

import (
	"cacei_stats_backend/internal/grading"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	evalFile           string
	evalThreshold      float64
	evalGroupBy        string
	evalNonNumericFail bool
	evalVariant        string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "对 CSV 成绩台账离线计算不及格率",
	Long: `CSV 列依次为 student,subject,cycle,grade,level，首行若为表头会被跳过。
结果以 JSON 输出到标准输出。

示例:
  cacei-stats evaluate --file boletas.csv --threshold 70 --group-by subject`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVarP(&evalFile, "file", "f", "-", "CSV 文件路径，- 表示标准输入")
	evaluateCmd.Flags().Float64Var(&evalThreshold, "threshold", 6, "及格线")
	evaluateCmd.Flags().StringVar(&evalGroupBy, "group-by", "cycle", "cycle 或 subject")
	evaluateCmd.Flags().BoolVar(&evalNonNumericFail, "non-numeric-fail", false, "非数字成绩计为不及格")
	evaluateCmd.Flags().StringVar(&evalVariant, "variant", grading.BestAttempt.Name, "评估变体")
}

type evaluateOutput struct {
	Variant string        `json:"variante"`
	Records int           `json:"registros"`
	Scale   grading.Scale `json:"escala"`
	// 按周期为 []grading.Result，按科目为 []grading.SubjectResult
	Rows any `json:"filas"`
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	// 参数先校验，再读取台账
	variant, err := grading.LookupVariant(evalVariant)
	if err != nil {
		return err
	}
	groupBy, err := grading.ParseGroupBy(evalGroupBy)
	if err != nil {
		return err
	}
	opts := grading.Options{
		Threshold:             evalThreshold,
		CountNonNumericAsFail: evalNonNumericFail,
		GroupBy:               groupBy,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if evalFile != "-" {
		f, err := os.Open(evalFile)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	records, err := readRecordsCSV(in)
	if err != nil {
		return err
	}

	results, scale, err := variant.EvaluateWithScale(records, opts)
	if err != nil {
		return err
	}

	out := evaluateOutput{
		Variant: variant.Name,
		Records: len(records),
		Scale:   scale,
		Rows:    results,
	}
	if groupBy == grading.GroupBySubjectCycle {
		out.Rows = grading.SubjectResults(results)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// readRecordsCSV 读取 student,subject,cycle,grade[,level] 格式的台账
func readRecordsCSV(r io.Reader) ([]grading.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var records []grading.Record
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if line == 1 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "student") {
			continue
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("line %d: expected at least 4 columns, got %d", line, len(row))
		}

		rec := grading.Record{
			StudentID:   row[0],
			SubjectCode: row[1],
			Cycle:       row[2],
			RawGrade:    row[3],
		}
		if len(row) > 4 {
			rec.GradeLevel = row[4]
		}
		records = append(records, rec)
	}
	return records, nil
}
