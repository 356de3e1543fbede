package transfer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	rowTypeGroup = "GROUP"
	rowTypeEntry = "KEYVALUE"

	colType        = "Type"
	colName        = "Name"
	colCode        = "Code"
	colDescription = "Description"
	colIsActive    = "Is Active"
	colVersion     = "Version"
	colKeyName     = "Key Name"
	colValue       = "Value"
	colValueType   = "Value Type"
	colFilePath    = "File Path"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF} //nolint:gochecknoglobals

	csvHeader = []string{ //nolint:gochecknoglobals
		colType, colName, colCode, colDescription, colIsActive,
		colVersion, colKeyName, colValue, colValueType, colFilePath,
	}
)

// SniffFormat guesses the format of data. JSON documents start with '{' after an optional BOM.
func SniffFormat(data []byte) Format {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) > 0 && data[0] == '{' {
		return FormatJSON
	}

	return FormatCSV
}

// Write encodes doc in format f.
func Write(w io.Writer, doc *Document, f Format) error {
	if f == FormatCSV {
		return WriteCSV(w, doc)
	}

	return WriteJSON(w, doc)
}

// Read decodes a document in format f.
func Read(r io.Reader, f Format) (*Document, error) {
	if f == FormatCSV {
		return ReadCSV(r)
	}

	return ReadJSON(r)
}

// WriteJSON writes doc as indented json without html escaping.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	return enc.Encode(doc)
}

// ReadJSON decodes a json document. Both groups and keyvalues must be present.
func ReadJSON(r io.Reader) (*Document, error) {
	var raw struct {
		Version    string         `json:"version"`
		ExportedAt string         `json:"exported_at"`
		Groups     *[]GroupRecord `json:"groups"`
		KeyValues  *[]EntryRecord `json:"keyvalues"`
	}

	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "invalid json file")
	}

	if raw.Groups == nil || raw.KeyValues == nil {
		return nil, ErrInvalidDocument
	}

	return &Document{
		Version:    raw.Version,
		ExportedAt: raw.ExportedAt,
		Groups:     *raw.Groups,
		KeyValues:  *raw.KeyValues,
	}, nil
}

// WriteCSV writes doc as csv with a leading utf-8 byte order mark. Groups come first.
func WriteCSV(w io.Writer, doc *Document) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, g := range doc.Groups {
		if err := cw.Write([]string{
			rowTypeGroup,
			deref(g.Name, ""),
			g.Code,
			deref(g.Description, ""),
			activeCell(g.IsActive),
			deref(g.Version, ""),
			"", "", "", "",
		}); err != nil {
			return err
		}
	}

	for _, e := range doc.KeyValues {
		if err := cw.Write([]string{
			rowTypeEntry,
			"",
			deref(e.GroupCode, ""),
			"",
			activeCell(e.IsActive),
			deref(e.Version, ""),
			e.KeyName,
			deref(e.Value, ""),
			deref(e.ValueType, "text"),
			deref(e.FilePath, ""),
		}); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// ReadCSV decodes a csv document. Columns are matched by header name, rows with fewer
// columns than the header and rows without code or key name are skipped.
func ReadCSV(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, errors.Wrap(err, "invalid csv file")
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	doc := &Document{Groups: []GroupRecord{}, KeyValues: []EntryRecord{}}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "invalid csv file")
		}

		if len(rec) < len(header) {
			continue
		}

		row := csvRow{rec: rec, index: index}

		switch row.get(colType) {
		case rowTypeGroup:
			if row.get(colCode) == "" {
				continue
			}

			doc.Groups = append(doc.Groups, GroupRecord{
				Name:        strPtr(row.get(colName)),
				Code:        row.get(colCode),
				Description: strPtr(row.get(colDescription)),
				IsActive:    row.active(),
				Version:     strPtr(row.get(colVersion)),
			})
		case rowTypeEntry:
			if row.get(colKeyName) == "" {
				continue
			}

			var groupCode *string
			if code := row.get(colCode); code != "" {
				groupCode = &code
			}

			doc.KeyValues = append(doc.KeyValues, EntryRecord{
				GroupCode: groupCode,
				KeyName:   row.get(colKeyName),
				Value:     strPtr(row.get(colValue)),
				ValueType: strPtr(row.get(colValueType)),
				FilePath:  strPtr(row.get(colFilePath)),
				IsActive:  row.active(),
				Version:   strPtr(row.get(colVersion)),
			})
		}
	}

	return doc, nil
}

type csvRow struct {
	rec   []string
	index map[string]int
}

func (r csvRow) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.rec) {
		return ""
	}

	return r.rec[i]
}

// active defaults to active when the column is missing.
func (r csvRow) active() *Active {
	if _, ok := r.index[colIsActive]; !ok {
		return activePtr(true)
	}

	a := parseActive(r.get(colIsActive))

	return &a
}

func activeCell(a *Active) string {
	if a != nil && *a {
		return "1"
	}

	return "0"
}
