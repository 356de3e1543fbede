package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRefs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Ref
	}{
		{name: "empty", raw: "", want: nil},
		{name: "empty array", raw: "[]", want: nil},
		{name: "malformed", raw: "[1,", want: nil},
		{name: "not an array", raw: `{"id": 1}`, want: nil},
		{name: "object of ids", raw: `{"a": 10, "b": 11}`, want: nil},
		{name: "bare ids", raw: `[1, "2", 3.7]`, want: []Ref{{ID: 1}, {ID: 2}, {ID: 3}}},
		{
			name: "objects",
			raw:  `[{"id": 5, "sku": "A", "name": "Alpha"}, {"id": "6"}, {"sku": "no-id"}]`,
			want: []Ref{{ID: 5, SKU: "A", Name: "Alpha"}, {ID: 6}},
		},
		{name: "mixed with junk", raw: `[0, "abc", null, true, [], 9]`, want: []Ref{{ID: 9}}},
		{name: "numeric sku", raw: `[{"id": 1, "sku": 100}]`, want: []Ref{{ID: 1, SKU: "100"}}},
		{name: "trailing whitespace", raw: "[1]\n ", want: []Ref{{ID: 1}}},
		{name: "trailing garbage", raw: "[4, 5] trailing garbage", want: nil},
		{name: "two documents", raw: "[1][2]", want: nil},
		{name: "trailing brace", raw: "[4] }{", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeRefs(tt.raw))
		})
	}
}

func TestStoredDecodeUsesDeclaredColumnOnly(t *testing.T) {
	s := Stored{
		Type:       TypeText,
		Text:       "hello",
		FilePath:   "stale/file.png",
		JSON:       `{"stale": true}`,
		Products:   `[1]`,
		Categories: `[2]`,
		CMSPages:   `[3]`,
	}

	assert.Equal(t, Text("hello"), s.Decode())

	s.Type = TypeFile
	assert.Equal(t, File("stale/file.png"), s.Decode())

	s.Type = TypeCategory
	assert.Equal(t, Categories{{ID: 2}}, s.Decode())

	s.Type = TypeCMS
	s.CMSIncludeContent = true
	assert.Equal(t, CMS{Refs: []Ref{{ID: 3}}, IncludeContent: true}, s.Decode())

	s.Type = "unknown"
	assert.Equal(t, Text("hello"), s.Decode())
}

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		in   Stored
		want Type
	}{
		{name: "nothing keeps declared", in: Stored{Type: TypeJSON}, want: TypeJSON},
		{name: "nothing defaults to text", in: Stored{}, want: TypeText},
		{name: "text", in: Stored{Text: "a"}, want: TypeText},
		{name: "file beats text", in: Stored{Text: "a", FilePath: "f.png"}, want: TypeFile},
		{name: "json beats file", in: Stored{FilePath: "f.png", JSON: "{}"}, want: TypeJSON},
		{name: "category beats json", in: Stored{JSON: "{}", Categories: "[1]"}, want: TypeCategory},
		{name: "categories spelling kept", in: Stored{Type: TypeCategories, Categories: "[1]"}, want: TypeCategories},
		{name: "products beat categories", in: Stored{Categories: "[1]", Products: "[2]"}, want: TypeProducts},
		{name: "cms beats all", in: Stored{Products: "[2]", CMSPages: "[3]", Text: "x"}, want: TypeCMS},
		{name: "empty arrays ignored", in: Stored{Products: "[]", CMSPages: "[]", Text: "x"}, want: TypeText},
		{name: "trailing content is not an array", in: Stored{CMSPages: "[1] nope", Text: "x"}, want: TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.in))
		})
	}
}

func TestHasRefs(t *testing.T) {
	assert.True(t, HasRefs("[4]"))
	assert.True(t, HasRefs(" [4] \n"))
	assert.False(t, HasRefs("[]"))
	assert.False(t, HasRefs("[4] }{"))
	assert.False(t, HasRefs("[1][2]"))
}

func TestParseType(t *testing.T) {
	assert.Equal(t, TypeCMS, ParseType("cms"))
	assert.Equal(t, TypeText, ParseType(""))
	assert.Equal(t, TypeText, ParseType("CMS"))
	assert.True(t, TypeCategories.Valid())
	assert.False(t, Type("image").Valid())
}
