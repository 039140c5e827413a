package grading

import (
	"fmt"
	"sort"
	"strings"

	"cacei_stats_backend/internal/cycle"
)

var compareCycles = cycle.Compare

type GroupBy int

const (
	GroupByCycle GroupBy = iota + 1
	GroupBySubjectCycle
)

func (g GroupBy) String() string {
	switch g {
	case GroupByCycle:
		return "cycle"
	case GroupBySubjectCycle:
		return "subject_cycle"
	default:
		return fmt.Sprintf("GroupBy(%d)", int(g))
	}
}

// ParseGroupBy 接受 "cycle" 或 "subject_cycle"（也可写 "subject"）
func ParseGroupBy(s string) (GroupBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cycle":
		return GroupByCycle, nil
	case "subject", "subject_cycle":
		return GroupBySubjectCycle, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGroupBy, s)
}

type Options struct {
	Threshold             float64
	CountNonNumericAsFail bool
	GroupBy               GroupBy
}

// Validate 校验参数，Evaluate 在读取记录前调用
func (o Options) Validate() error {
	if !validThreshold(o.Threshold) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, o.Threshold)
	}
	if o.GroupBy != GroupByCycle && o.GroupBy != GroupBySubjectCycle {
		return fmt.Errorf("%w: %v", ErrInvalidGroupBy, o.GroupBy)
	}
	return nil
}

// Result 一行汇总结果，SubjectCode 和 Semester 只在按科目分组时有值
type Result struct {
	Cycle             string   `json:"ciclo"`
	SubjectCode       string   `json:"-"`
	Semester          int      `json:"-"`
	EvaluatedCount    int      `json:"evaluadas"`
	FailedCount       int      `json:"reprobados"`
	FailurePercentage *float64 `json:"porcentaje_reprobacion"`
	ThresholdUsed     float64  `json:"umbral_usado"`
}

// SubjectResult 按科目分组时的输出行，科目和学期总是输出（学期无法解析时为 0）
type SubjectResult struct {
	Result
	SubjectCode string `json:"clave"`
	Semester    int    `json:"semestre"`
}

func SubjectResults(results []Result) []SubjectResult {
	out := make([]SubjectResult, len(results))
	for i, r := range results {
		out[i] = SubjectResult{Result: r, SubjectCode: r.SubjectCode, Semester: r.Semester}
	}
	return out
}

// Evaluate 使用默认变体
func Evaluate(records []Record, opts Options) ([]Result, error) {
	return BestAttempt.Evaluate(records, opts)
}

// Evaluate 判定并汇总记录，参数不合法时不处理任何记录
func (v Variant) Evaluate(records []Record, opts Options) ([]Result, error) {
	results, _, err := v.EvaluateWithScale(records, opts)
	return results, err
}

// EvaluateWithScale 同 Evaluate，另外返回使用的量纲
func (v Variant) EvaluateWithScale(records []Record, opts Options) ([]Result, Scale, error) {
	if err := opts.Validate(); err != nil {
		return nil, Scale{}, err
	}

	parsed := v.parse(records)
	scale := v.scale(parsed, opts.Threshold)
	attempts := v.consolidate(parsed)

	type groupKey struct{ subject, cycle string }
	index := make(map[groupKey]int)
	results := make([]Result, 0)

	for _, a := range attempts {
		key := groupKey{cycle: a.Cycle}
		if opts.GroupBy == GroupBySubjectCycle {
			key.subject = a.SubjectCode
		}

		i, ok := index[key]
		if !ok {
			i = len(results)
			index[key] = i
			r := Result{Cycle: a.Cycle, SubjectCode: key.subject, ThresholdUsed: scale.ThresholdEffective}
			if opts.GroupBy == GroupBySubjectCycle {
				r.Semester = a.Semester
			}
			results = append(results, r)
		}
		r := &results[i]

		if opts.GroupBy == GroupBySubjectCycle && a.Semester < r.Semester {
			r.Semester = a.Semester
		}

		switch {
		case a.Best != nil:
			r.EvaluatedCount++
			if *a.Best < scale.ThresholdEffective {
				r.FailedCount++
			}
		case opts.CountNonNumericAsFail:
			r.EvaluatedCount++
			r.FailedCount++
		}
	}

	places := 2
	if opts.GroupBy == GroupBySubjectCycle {
		places = 1
	}
	for i := range results {
		r := &results[i]
		r.FailurePercentage = Percentage(int64(r.FailedCount), int64(r.EvaluatedCount), places)
	}

	sortResults(results, opts.GroupBy)
	return results, scale, nil
}

func sortResults(results []Result, groupBy GroupBy) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if c := compareCycles(a.Cycle, b.Cycle); c != 0 {
			return c < 0
		}
		if groupBy != GroupBySubjectCycle {
			return false
		}
		// nil 百分比排在最后
		switch {
		case a.FailurePercentage == nil && b.FailurePercentage != nil:
			return false
		case a.FailurePercentage != nil && b.FailurePercentage == nil:
			return true
		case a.FailurePercentage != nil && *a.FailurePercentage != *b.FailurePercentage:
			return *a.FailurePercentage > *b.FailurePercentage
		}
		return a.SubjectCode < b.SubjectCode
	})
}
