package schema

// Layout names the column index of every field in a survey export variant.
// A negative index means the variant does not carry the field.
type Layout struct {
	Gender         int
	Age            int
	Civil          int
	School         int
	Property       int
	Department     int
	JobType        int
	Tenure         int
	QuestionsStart int
}

// DemographicColumn pairs a display name with its column index.
type DemographicColumn struct {
	Name   string
	Column int
}

// DepartmentLayout is the column layout of single-property exports (Palacio, Pierre).
var DepartmentLayout = Layout{
	Gender:         4,
	Age:            5,
	Civil:          6,
	School:         7,
	Property:       -1,
	Department:     8,
	JobType:        9,
	Tenure:         12,
	QuestionsStart: 14,
}

// PropertyLayout is the column layout of multi-property exports (Princess).
var PropertyLayout = Layout{
	Gender:         4,
	Age:            5,
	Civil:          6,
	School:         7,
	Property:       8,
	Department:     9,
	JobType:        10,
	Tenure:         13,
	QuestionsStart: 15,
}

// LayoutFor returns the column layout used by a job kind.
func LayoutFor(kind JobKind) Layout {
	if kind == PropertyJob {
		return PropertyLayout
	}
	return DepartmentLayout
}

// DemographicColumns returns the demographic columns in report order.
func (l Layout) DemographicColumns() []DemographicColumn {
	return []DemographicColumn{
		{Name: "Género", Column: l.Gender},
		{Name: "Edad", Column: l.Age},
		{Name: "Estado Civil", Column: l.Civil},
		{Name: "Nivel de Estudios", Column: l.School},
		{Name: "Tipo de Puesto", Column: l.JobType},
		{Name: "Tiempo en Puesto", Column: l.Tenure},
	}
}

// GroupColumn is the column that decides which workbook a row lands in.
func (l Layout) GroupColumn() int {
	if l.Property >= 0 {
		return l.Property
	}
	return l.Department
}

// SheetGeometry locates the header, type and data rows of a survey export.
type SheetGeometry struct {
	Sheet           string
	HeaderRow       int
	DataStartRow    int
	QuestionTypeRow int
}

// DefaultGeometry returns the geometry of the standard survey export.
func DefaultGeometry() SheetGeometry {
	return SheetGeometry{
		Sheet:           DefaultDataSheet,
		HeaderRow:       DefaultHeaderRow,
		DataStartRow:    DefaultDataStartRow,
		QuestionTypeRow: DefaultQuestionTypeRow,
	}
}
