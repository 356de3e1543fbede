package value

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// Stored holds the raw payload columns of an entry.
type Stored struct {
	Type              Type
	Text              string
	FilePath          string
	JSON              string
	Products          string
	Categories        string
	CMSPages          string
	CMSIncludeContent bool
}

// Payload is the authoritative payload of an entry. It is one of
// Text, File, JSON, Products, Categories or CMS.
type Payload interface {
	Type() Type
	isPayload()
}

type (
	// Text is a plain text payload.
	Text string

	// File is a media relative file path.
	File string

	// JSON is a raw, not yet decoded json document.
	JSON string

	// Products references catalog products.
	Products []Ref

	// Categories references catalog categories.
	Categories []Ref

	// CMS references cms pages.
	CMS struct {
		Refs           []Ref
		IncludeContent bool
	}
)

func (Text) Type() Type       { return TypeText }
func (File) Type() Type       { return TypeFile }
func (JSON) Type() Type       { return TypeJSON }
func (Products) Type() Type   { return TypeProducts }
func (Categories) Type() Type { return TypeCategories }
func (CMS) Type() Type        { return TypeCMS }

func (Text) isPayload()       {}
func (File) isPayload()       {}
func (JSON) isPayload()       {}
func (Products) isPayload()   {}
func (Categories) isPayload() {}
func (CMS) isPayload()        {}

// Ref is a normalized reference to a catalog entity. Stored references are either bare
// ids or objects with an id and optional sku and name.
type Ref struct {
	ID   int64
	SKU  string
	Name string
}

// Decode returns the payload selected by the declared type of s. The other columns are ignored.
func (s Stored) Decode() Payload {
	switch ParseType(string(s.Type)) {
	case TypeFile:
		return File(s.FilePath)
	case TypeJSON:
		return JSON(s.JSON)
	case TypeProducts:
		return Products(DecodeRefs(s.Products))
	case TypeCategory, TypeCategories:
		return Categories(DecodeRefs(s.Categories))
	case TypeCMS:
		return CMS{Refs: DecodeRefs(s.CMSPages), IncludeContent: s.CMSIncludeContent}
	default:
		return Text(s.Text)
	}
}

// DecodeRefs decodes a json array of bare ids and reference objects. Elements without a
// usable id are dropped. Malformed documents decode to nil.
func DecodeRefs(raw string) []Ref {
	items, ok := decodeArray(raw)
	if !ok {
		return nil
	}

	refs := make([]Ref, 0, len(items))

	for _, item := range items {
		var ref Ref

		switch v := item.(type) {
		case map[string]any:
			ref.ID = refID(v["id"])
			ref.SKU = refString(v["sku"])
			ref.Name = refString(v["name"])
		default:
			ref.ID = refID(v)
		}

		if ref.ID == 0 {
			continue
		}

		refs = append(refs, ref)
	}

	if len(refs) == 0 {
		return nil
	}

	return refs
}

// HasRefs reports whether raw is a non-empty json array.
func HasRefs(raw string) bool {
	items, ok := decodeArray(raw)

	return ok && len(items) > 0
}

func decodeArray(raw string) ([]any, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}

	var items []any

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	if err := dec.Decode(&items); err != nil {
		return nil, false
	}

	// the document must hold exactly one value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, false
	}

	return items, true
}

// refID converts numbers and numeric strings to an id, truncating fractions. Anything else is 0.
func refID(v any) int64 {
	var s string

	switch n := v.(type) {
	case json.Number:
		s = n.String()
	case string:
		s = strings.TrimSpace(n)
	default:
		return 0
	}

	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0
	}

	return int64(f)
}

func refString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return ""
	}
}
