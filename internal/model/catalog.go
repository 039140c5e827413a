package model

import "fmt"

// CatalogKind 科目名称目录的可用形态，启动时解析一次
type CatalogKind int

const (
	CatalogNone CatalogKind = iota
	CatalogNombre
	CatalogAsignatura
)

func (k CatalogKind) String() string {
	switch k {
	case CatalogNombre:
		return "nombre"
	case CatalogAsignatura:
		return "asignatura"
	default:
		return "none"
	}
}

// ParseCatalogKind 解析配置里的 catalog.mode（auto 由调用方处理）
func ParseCatalogKind(s string) (CatalogKind, error) {
	switch s {
	case "none":
		return CatalogNone, nil
	case "nombre":
		return CatalogNombre, nil
	case "asignatura":
		return CatalogAsignatura, nil
	}
	return CatalogNone, fmt.Errorf("unknown catalog kind %q", s)
}

// SubjectCatalog <schema>.materias(clave, nombre|asignatura)
type SubjectCatalog struct {
	Kind   CatalogKind `json:"kind"`
	Schema string      `json:"schema,omitempty"`
}

const UnnamedSubject = "(SIN NOMBRE)"

func (c SubjectCatalog) Available() bool {
	return c.Kind != CatalogNone && c.Schema != ""
}

func (c SubjectCatalog) Table() string {
	if !c.Available() {
		return ""
	}
	return c.Schema + ".materias"
}

// Join 返回按科目代码关联目录的 LEFT JOIN 子句，无目录时为空
func (c SubjectCatalog) Join(alias string) string {
	if !c.Available() {
		return ""
	}
	return fmt.Sprintf("LEFT JOIN %s m ON m.clave = %s.clave", c.Table(), alias)
}

// NameExpr 返回科目名称表达式，无目录时为 NULL
func (c SubjectCatalog) NameExpr() string {
	if !c.Available() {
		return "NULL"
	}
	return "m." + c.Kind.String()
}

func (c SubjectCatalog) String() string {
	if !c.Available() {
		return "none"
	}
	return c.Table() + "." + c.Kind.String()
}
