// Package grading 对成绩台账计算不及格统计。
//
// 台账中的成绩量纲不统一（0-1、0-10、0-100）。调用方只给一个及格线，
// 引擎按观测到的最高数字成绩推断量纲并换算及格线，同一学生同一科目
// 同一周期的多次成绩合并为最好的一次，再按周期或按科目加周期汇总。
package grading

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidThreshold = errors.New("threshold must be a positive finite number")
	ErrInvalidGroupBy   = errors.New("unknown group_by")
	ErrUnknownVariant   = errors.New("unknown grading variant")
)

// Record 台账中的一条成绩记录
type Record struct {
	StudentID   string
	SubjectCode string
	Cycle       string
	RawGrade    string
	GradeLevel  string
}

// Scale 每次评估计算一次的量纲换算结果
type Scale struct {
	MaxObserved        float64 `json:"max_observed"`
	ThresholdRaw       float64 `json:"threshold_raw"`
	ThresholdEffective float64 `json:"threshold_effective"`
}

var semesterPattern = regexp.MustCompile(`^[0-9]+`)

// NormalizeThreshold 按 maxObserved 推断的量纲换算及格线
func NormalizeThreshold(maxObserved, threshold float64) float64 {
	switch {
	case maxObserved <= 1.0:
		if threshold > 1.0 {
			return threshold / 100.0
		}
		return threshold
	case maxObserved <= 10.0:
		if threshold > 10.0 {
			return threshold / 10.0
		}
		return threshold
	default:
		return threshold
	}
}

// ParseGrade 用默认变体的数字规则解析成绩
func ParseGrade(raw string) (float64, bool) {
	return BestAttempt.ParseGrade(raw)
}

// ComputeScale 用默认变体计算量纲参数
func ComputeScale(records []Record, threshold float64) Scale {
	return BestAttempt.ComputeScale(records, threshold)
}

// parseSemester 取年级文本开头的数字，无法解析时为 0
func parseSemester(text string) int {
	m := semesterPattern.FindString(strings.TrimSpace(text))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// Percentage 返回 round(100*part/total, places)，total 为 0 时返回 nil
func Percentage(part, total int64, places int) *float64 {
	if total == 0 {
		return nil
	}
	p := round(100*float64(part)/float64(total), places)
	return &p
}

func validThreshold(t float64) bool {
	return t > 0 && !math.IsNaN(t) && !math.IsInf(t, 0)
}
