// Package model defines the data types shared across the verification
// pipeline: extracted declarations and imports, parsed documents, issues,
// and the aggregated report.
package model

// DeclarationKind discriminates the four recognized declaration shapes.
type DeclarationKind string

const (
	// KindRecord is a structured record with named, typed fields.
	KindRecord DeclarationKind = "record"

	// KindAlias is a single-line named type alias.
	KindAlias DeclarationKind = "alias"

	// KindEnum is a named enumeration; fields hold member names.
	KindEnum DeclarationKind = "enum"

	// KindConstGroup is a named assignable group (error-code catalogs
	// and similar); only the name is recorded.
	KindConstGroup DeclarationKind = "const-group"
)

// Field is one named member of a record declaration.
type Field struct {
	// Name is the field identifier.
	Name string `json:"name" yaml:"name"`

	// Type is the raw type expression as written in the source.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Optional indicates the field was marked optional.
	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Declaration is a named, typed construct extracted from a document.
// Declarations are immutable after extraction and live only for the
// duration of one verification run.
type Declaration struct {
	// Name is the declared identifier.
	Name string `json:"name" yaml:"name"`

	// Kind is the declaration shape.
	Kind DeclarationKind `json:"kind" yaml:"kind"`

	// Fields lists record fields or enum members. Empty for alias and
	// const-group declarations.
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Document is the identifier of the originating document.
	Document string `json:"document" yaml:"document"`

	// Line is the 1-based line number in the original document.
	Line int `json:"line" yaml:"line"`
}

// FieldNamed returns the field with the given name, or nil.
func (d *Declaration) FieldNamed(name string) *Field {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

// Import is a reference from one document to a name expected to be
// declared elsewhere.
type Import struct {
	// Name is the imported identifier. For "name as alias" forms this
	// is the original name, not the alias.
	Name string `json:"name" yaml:"name"`

	// Module is the nominal path or module the document imports from.
	Module string `json:"module" yaml:"module"`

	// Document is the identifier of the importing document.
	Document string `json:"document" yaml:"document"`

	// Line is the 1-based line number of the import statement.
	Line int `json:"line" yaml:"line"`
}

// Document is one parsed unit: the shared vocabulary or one contract.
type Document struct {
	// ID is the document identifier (path or filename).
	ID string `json:"id" yaml:"id"`

	// Vocabulary marks the shared-vocabulary document, whose
	// declarations are globally visible to every contract.
	Vocabulary bool `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty"`

	// Declarations lists the declarations extracted from this document.
	Declarations []Declaration `json:"declarations" yaml:"declarations"`

	// Imports lists the import statements extracted from this document.
	Imports []Import `json:"imports" yaml:"imports"`
}

// DeclarationNamed returns the declaration with the given name, or nil.
func (d *Document) DeclarationNamed(name string) *Declaration {
	for i := range d.Declarations {
		if d.Declarations[i].Name == name {
			return &d.Declarations[i]
		}
	}
	return nil
}

// ImportsName reports whether the document imports the given name.
func (d *Document) ImportsName(name string) bool {
	for _, imp := range d.Imports {
		if imp.Name == name {
			return true
		}
	}
	return false
}
