package report

// Layout is the engine-independent content of a report.
type Layout struct {
	Lang   string
	Title  string
	Fields []Field
	Photo  Photo
}

// Field is one "label: value" line.
type Field struct {
	Label string
	Value string
}

// Photo is the single embedded image.
type Photo struct {
	Heading string
	Ref     string
	DataURI string
}
