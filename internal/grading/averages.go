package grading

import "sort"

// SubjectAverage 某科目某周期合并后成绩的汇总
type SubjectAverage struct {
	SubjectCode      string   `json:"clave"`
	Cycle            string   `json:"ciclo"`
	Semester         int      `json:"semestre"`
	Enrolled         int      `json:"inscritos"`
	Average          *float64 `json:"promedio"`
	AtOrAboveAverage int      `json:"arriba_del_promedio"`
	Percentage       *float64 `json:"porcentaje"`
}

// SubjectAverages 使用默认变体
func SubjectAverages(records []Record) []SubjectAverage {
	return BestAttempt.SubjectAverages(records)
}

// SubjectAverages 按科目和周期分组，统计达到组内平均分的人数
func (v Variant) SubjectAverages(records []Record) []SubjectAverage {
	type groupKey struct{ subject, cycle string }
	type acc struct {
		out    SubjectAverage
		grades []float64
	}

	index := make(map[groupKey]*acc)
	var order []groupKey

	for _, a := range v.Consolidate(records) {
		key := groupKey{a.SubjectCode, a.Cycle}
		g, ok := index[key]
		if !ok {
			g = &acc{out: SubjectAverage{SubjectCode: a.SubjectCode, Cycle: a.Cycle, Semester: a.Semester}}
			index[key] = g
			order = append(order, key)
		}
		g.out.Enrolled++
		if a.Semester < g.out.Semester {
			g.out.Semester = a.Semester
		}
		if a.Best != nil {
			g.grades = append(g.grades, *a.Best)
		}
	}

	out := make([]SubjectAverage, 0, len(order))
	for _, key := range order {
		g := index[key]
		if n := len(g.grades); n > 0 {
			sum := 0.0
			for _, x := range g.grades {
				sum += x
			}
			mean := sum / float64(n)
			for _, x := range g.grades {
				if x >= mean {
					g.out.AtOrAboveAverage++
				}
			}
			avg := round(mean, 1)
			g.out.Average = &avg
			g.out.Percentage = Percentage(int64(g.out.AtOrAboveAverage), int64(n), 1)
		}
		out = append(out, g.out)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := compareCycles(out[i].Cycle, out[j].Cycle); c != 0 {
			return c < 0
		}
		if out[i].Semester != out[j].Semester {
			return out[i].Semester < out[j].Semester
		}
		return out[i].SubjectCode < out[j].SubjectCode
	})
	return out
}
