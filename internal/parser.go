package internal

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownFormat = errors.New("unknown record format")

// Parser reads a record file into a list of records
type Parser interface {
	Parse(path string) ([]Record, error)
}

// ParserFunc is a function that implements Parser
type ParserFunc func(path string) ([]Record, error)

func (f ParserFunc) Parse(path string) ([]Record, error) {
	return f(path)
}

// parsers is the registry of available parsers
var parsers = map[string]Parser{}

// extensions maps file extensions to the parser used when no format prefix is given
var extensions = map[string]string{}

// RegisterParser registers a parser with the given name and, optionally,
// the file extensions it handles.
func RegisterParser(name string, p Parser, exts ...string) {
	parsers[name] = p
	for _, ext := range exts {
		extensions[strings.ToLower(ext)] = name
	}
}

// GetParser returns the parser for the given format name
func GetParser(format string) (Parser, error) {
	p, ok := parsers[format]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%s (available: %s)", format, strings.Join(AvailableFormats(), ", "))
	}
	return p, nil
}

// AvailableFormats returns the registered format names, sorted
func AvailableFormats() []string {
	var formats []string
	for name := range parsers {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// IsKnownParser returns true if the name is a registered parser
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "simple-json:data.txt" → ("simple-json", "data.txt")
// Example: "C:\path\file.xlsx" → ("", "C:\path\file.xlsx")
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownParser(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg
}

// FormatForPath picks a parser name from the file extension.
func FormatForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := extensions[ext]
	if !ok {
		return "", errors.Wrapf(ErrUnknownFormat, "cannot infer format of %s, use a prefix such as simple-json:%s", path, path)
	}
	return format, nil
}

// LoadRecords resolves the parser for a file argument and parses the file.
func LoadRecords(arg string) ([]Record, error) {
	format, path := ParseFileArg(arg)
	if format == "" {
		var err error
		if format, err = FormatForPath(path); err != nil {
			return nil, err
		}
	}
	p, err := GetParser(format)
	if err != nil {
		return nil, err
	}
	records, err := p.Parse(path)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: %s", format, path)
	}
	return records, nil
}
