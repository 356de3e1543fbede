package value

// Type is the declared type of an entry value.
type Type string

// Supported value types.
const (
	TypeText       Type = "text"
	TypeFile       Type = "file"
	TypeJSON       Type = "json"
	TypeProducts   Type = "products"
	TypeCategory   Type = "category"
	TypeCategories Type = "categories"
	TypeCMS        Type = "cms"
)

// Types lists every supported value type.
var Types = []Type{TypeText, TypeFile, TypeJSON, TypeProducts, TypeCategory, TypeCategories, TypeCMS} //nolint:gochecknoglobals

// Valid reports whether t is a supported value type.
func (t Type) Valid() bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}

	return false
}

// ParseType returns the type named s, TypeText for unknown or empty names.
func ParseType(s string) Type {
	if t := Type(s); t.Valid() {
		return t
	}

	return TypeText
}

// Infer picks the value type from the populated payload columns of s.
// Priority is cms, products, categories, json, file, text. Without any payload the
// declared type of s is kept.
func Infer(s Stored) Type {
	switch {
	case HasRefs(s.CMSPages):
		return TypeCMS
	case HasRefs(s.Products):
		return TypeProducts
	case HasRefs(s.Categories):
		if s.Type == TypeCategories {
			return TypeCategories
		}

		return TypeCategory
	case s.JSON != "":
		return TypeJSON
	case s.FilePath != "":
		return TypeFile
	case s.Text != "":
		return TypeText
	default:
		return ParseType(string(s.Type))
	}
}
