package grading

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
)

// Variant 不及格率计算的一种口径
type Variant struct {
	Name             string
	Description      string
	NumericPattern   *regexp.Regexp
	DefaultThreshold float64
	// Normalize 把调用方的及格线换算到观测量纲
	Normalize func(maxObserved, threshold float64) float64
}

var (
	BestAttempt = Variant{
		Name:             "best_attempt",
		Description:      "best grade per student, subject and cycle; threshold rescaled to the observed scale",
		NumericPattern:   regexp.MustCompile(`^[0-9]*\.?[0-9]+$`),
		DefaultThreshold: 6.0,
		Normalize:        NormalizeThreshold,
	}

	StrictDecimal = Variant{
		Name:             "strict_decimal",
		Description:      "as best_attempt, but numeric grades need an integer part",
		NumericPattern:   regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`),
		DefaultThreshold: 6.0,
		Normalize:        NormalizeThreshold,
	}

	FixedScale = Variant{
		Name:             "fixed_scale",
		Description:      "threshold applied as given, no scale inference",
		NumericPattern:   regexp.MustCompile(`^[0-9]*\.?[0-9]+$`),
		DefaultThreshold: 6.0,
		Normalize:        func(_, threshold float64) float64 { return threshold },
	}
)

var variants = []Variant{BestAttempt, StrictDecimal, FixedScale}

// Variants 返回全部变体，默认变体在前
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// LookupVariant 按名称查找变体，名称为空时返回 BestAttempt
func LookupVariant(name string) (Variant, error) {
	if name == "" {
		return BestAttempt, nil
	}
	for _, v := range variants {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// ParseGrade 解析成绩并保留两位小数，不符合数字规则的视为非数字
func (v Variant) ParseGrade(raw string) (float64, bool) {
	if !v.NumericPattern.MatchString(raw) {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return round(f, 2), true
}

type parsedRecord struct {
	Record
	grade   float64
	numeric bool
}

func (v Variant) parse(records []Record) []parsedRecord {
	out := make([]parsedRecord, 0, len(records))
	for _, r := range records {
		if r.Cycle == "" {
			continue
		}
		g, ok := v.ParseGrade(r.RawGrade)
		out = append(out, parsedRecord{Record: r, grade: g, numeric: ok})
	}
	return out
}

func (v Variant) scale(parsed []parsedRecord, threshold float64) Scale {
	maxObserved := 0.0
	for _, p := range parsed {
		if p.numeric && p.grade > maxObserved {
			maxObserved = p.grade
		}
	}
	return Scale{
		MaxObserved:        maxObserved,
		ThresholdRaw:       threshold,
		ThresholdEffective: v.Normalize(maxObserved, threshold),
	}
}

// ComputeScale 根据有周期的记录计算量纲参数
func (v Variant) ComputeScale(records []Record, threshold float64) Scale {
	return v.scale(v.parse(records), threshold)
}

// Attempt 一个学生在某科目某周期合并后的成绩
type Attempt struct {
	StudentID   string
	SubjectCode string
	Cycle       string
	Best        *float64
	Semester    int
}

type attemptKey struct {
	student, subject, cycle string
}

func (v Variant) consolidate(parsed []parsedRecord) []Attempt {
	index := make(map[attemptKey]int)
	var out []Attempt

	for _, p := range parsed {
		key := attemptKey{p.StudentID, p.SubjectCode, p.Cycle}
		sem := parseSemester(p.GradeLevel)

		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			a := Attempt{StudentID: p.StudentID, SubjectCode: p.SubjectCode, Cycle: p.Cycle, Semester: sem}
			if p.numeric {
				g := p.grade
				a.Best = &g
			}
			out = append(out, a)
			continue
		}

		a := &out[i]
		if sem < a.Semester {
			a.Semester = sem
		}
		if p.numeric && (a.Best == nil || p.grade > *a.Best) {
			g := p.grade
			a.Best = &g
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := compareCycles(out[i].Cycle, out[j].Cycle); c != 0 {
			return c < 0
		}
		if out[i].SubjectCode != out[j].SubjectCode {
			return out[i].SubjectCode < out[j].SubjectCode
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out
}

// Consolidate 按（学生，科目，周期）合并记录
func (v Variant) Consolidate(records []Record) []Attempt {
	return v.consolidate(v.parse(records))
}

// Consolidate 使用默认变体
func Consolidate(records []Record) []Attempt {
	return BestAttempt.Consolidate(records)
}
