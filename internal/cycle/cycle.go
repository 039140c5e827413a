package cycle

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Half 学期半年代码
type Half int

const (
	HalfUnknown Half = iota
	HalfJanJun
	HalfAugDec
)

var yearPattern = regexp.MustCompile(`^[0-9]+`)

// Label 解析后的周期标签，格式 <year>-SEM-<ENE/JUN|AGO/DIC>
type Label struct {
	Raw  string
	Year int
	Half Half
}

func Parse(raw string) Label {
	l := Label{Raw: raw}
	if m := yearPattern.FindString(raw); m != "" {
		l.Year, _ = strconv.Atoi(m)
	}

	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "ENE/JUN"):
		l.Half = HalfJanJun
	case strings.Contains(upper, "AGO/DIC"):
		l.Half = HalfAugDec
	}
	return l
}

// Valid 年份和学期段都能识别时为 true
func (l Label) Valid() bool {
	return l.Year > 0 && l.Half != HalfUnknown
}

func (l Label) index() int {
	return l.Year*2 + int(l.Half) - 1
}

// Compare 按年份、半年代码、完整字符串排序
func Compare(a, b string) int {
	la, lb := Parse(a), Parse(b)
	if la.Year != lb.Year {
		if la.Year < lb.Year {
			return -1
		}
		return 1
	}
	if la.Half != lb.Half {
		if la.Half < lb.Half {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func Less(a, b string) bool {
	return Compare(a, b) < 0
}

func Sort(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return Less(labels[i], labels[j])
	})
}

// SemestersBetween 返回 from 到 to 之间的半年步数，任一标签无法解析时 ok 为 false
func SemestersBetween(from, to string) (int, bool) {
	lf, lt := Parse(from), Parse(to)
	if !lf.Valid() || !lt.Valid() {
		return 0, false
	}
	return lt.index() - lf.index(), true
}
