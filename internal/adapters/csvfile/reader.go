// Package csvfile reads the semicolon separated planner input files and writes
// the route file.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"sleigh-route-service/internal/domain"
)

// Column names, matched case-insensitively after trimming.
const (
	ColChild     = "child"
	ColLatitude  = "latitude"
	ColLongitude = "longitude"
	ColWish      = "wish"
	ColNaughty   = "naughty"

	ColArticle = "article"
	ColWeight  = "weight"
	ColVolume  = "volume"

	ColMetaData = "meta data"
	ColValue    = "value"
)

const utf8BOM = "\ufeff"

// ParseError locates a bad value in an input file.
type ParseError struct {
	File   string
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: column %q: %v", e.File, e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// record is one data row addressed by column name.
type record struct {
	file   string
	line   int
	values map[string]string
}

func (r record) fail(column string, err error) error {
	return &ParseError{File: r.file, Line: r.line, Column: column, Err: err}
}

func (r record) str(column string) string { return r.values[column] }

func (r record) intValue(column string) (int, error) {
	v, err := parseInt(r.values[column])
	if err != nil {
		return 0, r.fail(column, err)
	}
	return v, nil
}

func (r record) floatValue(column string) (float64, error) {
	v, err := ParseDecimal(r.values[column])
	if err != nil {
		return 0, r.fail(column, err)
	}
	return v, nil
}

func (r record) boolValue(column string) (bool, error) {
	v, err := parseBool(r.values[column])
	if err != nil {
		return false, r.fail(column, err)
	}
	return v, nil
}

// readTable reads a header-driven semicolon table and checks that every
// required column is present. Blank lines are skipped.
func readTable(file string, in io.Reader, required ...string) ([]record, error) {
	cr := csv.NewReader(in)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{File: file, Line: 1, Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, &ParseError{File: file, Line: 1, Err: err}
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, &ParseError{File: file, Line: 1, Column: col, Err: errors.New("missing column")}
		}
	}

	var out []record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{File: file, Line: pe.Line, Err: pe.Err}
			}
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		line, _ := cr.FieldPos(0)

		if blank(fields) {
			continue
		}

		rec := record{file: file, line: line, values: make(map[string]string, len(required))}
		for _, col := range required {
			i := index[col]
			if i >= len(fields) {
				return nil, rec.fail(col, errors.New("missing value"))
			}
			rec.values[col] = strings.TrimSpace(fields[i])
		}
		out = append(out, rec)
	}
	return out, nil
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// ParseDecimal accepts both "," and "." as decimal separator. When both
// appear, "." is taken as a thousands separator.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty number")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// parseInt accepts plain integers and decimals with a zero fraction ("3,0").
// A "." without a "," is rejected: "1.000" may be a thousands group.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	if strings.Contains(s, ".") && !strings.Contains(s, ",") {
		return 0, fmt.Errorf("ambiguous integer %q", s)
	}
	f, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int(f), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1,0", "1.0", "true", "yes", "y":
		return true, nil
	case "0", "0,0", "0.0", "false", "no", "n", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid flag %q", s)
}

// ReadChildren parses the children table.
func ReadChildren(file string, in io.Reader) ([]domain.Child, error) {
	rows, err := readTable(file, in, ColChild, ColLatitude, ColLongitude, ColWish, ColNaughty)
	if err != nil {
		return nil, err
	}

	children := make([]domain.Child, 0, len(rows))
	for _, r := range rows {
		var c domain.Child
		if c.ChildID, err = r.intValue(ColChild); err != nil {
			return nil, err
		}
		if c.Location.Lat, err = r.floatValue(ColLatitude); err != nil {
			return nil, err
		}
		if c.Location.Lon, err = r.floatValue(ColLongitude); err != nil {
			return nil, err
		}
		if c.Wish, err = r.intValue(ColWish); err != nil {
			return nil, err
		}
		if c.Naughty, err = r.boolValue(ColNaughty); err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, r.fail("", err)
		}
		children = append(children, c)
	}
	return children, nil
}

// ReadArticles parses the article table.
func ReadArticles(file string, in io.Reader) ([]domain.Article, error) {
	rows, err := readTable(file, in, ColArticle, ColWeight, ColVolume)
	if err != nil {
		return nil, err
	}

	articles := make([]domain.Article, 0, len(rows))
	for _, r := range rows {
		var a domain.Article
		if a.ArticleID, err = r.intValue(ColArticle); err != nil {
			return nil, err
		}
		if a.Weight, err = r.floatValue(ColWeight); err != nil {
			return nil, err
		}
		if a.Volume, err = r.floatValue(ColVolume); err != nil {
			return nil, err
		}
		if err := a.Validate(); err != nil {
			return nil, r.fail("", err)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// ReadSpecification parses the "meta data;value" table. Rows with unknown
// labels are ignored; a label given twice is an error.
func ReadSpecification(file string, in io.Reader) (domain.Specification, error) {
	rows, err := readTable(file, in, ColMetaData, ColValue)
	if err != nil {
		return domain.Specification{}, err
	}

	values := make(map[string]float64, len(rows))
	for _, r := range rows {
		label := strings.ToLower(r.str(ColMetaData))
		if _, dup := values[label]; dup {
			return domain.Specification{}, r.fail(ColMetaData, fmt.Errorf("duplicate entry %q", label))
		}
		v, err := r.floatValue(ColValue)
		if err != nil {
			return domain.Specification{}, err
		}
		values[label] = v
	}

	spec, err := domain.SpecificationFromMetadata(values)
	if err != nil {
		return domain.Specification{}, fmt.Errorf("%s: %w", file, err)
	}
	return spec, nil
}

func readFile[T any](path string, read func(string, io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return read(path, f)
}

func LoadChildren(path string) ([]domain.Child, error) { return readFile(path, ReadChildren) }

func LoadArticles(path string) ([]domain.Article, error) { return readFile(path, ReadArticles) }

func LoadSpecification(path string) (domain.Specification, error) {
	return readFile(path, ReadSpecification)
}
