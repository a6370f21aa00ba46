package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Filename field separator and payload extension used across the corpus:
// TC#01_12345#rvn001#00W5#LR.json
const (
	Sep = "#"
	Ext = ".json"
)

// Collection document constants.
const (
	CollectionVersion = "1"
	CollectionType    = "collection"
	ItemTypeHTTP      = "http"
	BodyModeRaw       = "raw"
)

// ModelConfig describes one test-suite batch. Immutable once resolved,
// either from the static YAML config or from folder-name discovery.
type ModelConfig struct {
	TSNumber       string `json:"ts_number" yaml:"ts_number"`
	EditID         string `json:"edit_id" yaml:"edit_id"`
	Code           string `json:"code" yaml:"code"`
	SourceDir      string `json:"source_dir" yaml:"source_dir"`
	DestDir        string `json:"dest_dir" yaml:"dest_dir"`
	CollectionName string `json:"collection_name" yaml:"collection_name"`
	FileName       string `json:"file_name,omitempty" yaml:"file_name,omitempty"`
}

// Collection is the generated API-testing document.
type Collection struct {
	Version string `json:"version"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Items   []Item `json:"items"`
}

type Item struct {
	UID     string   `json:"uid"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Method  string   `json:"method"`
	URL     string   `json:"url"`
	Headers []Header `json:"headers"`
	Body    Body     `json:"body"`
}

type Header struct {
	UID     string `json:"uid"`
	Name    string `json:"name"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

type Body struct {
	Mode string `json:"mode"`
	Raw  string `json:"raw"`
}

// ParsedName holds the five fields of a renamed payload filename.
type ParsedName struct {
	TCPrefix string // "TC"
	TCID     string // "01_12345"
	EditID   string // "rvn001"
	Code     string // "00W5"
	Suffix   string // "LR", "NR", "EX" or pass-through
}

// ParseName splits a renamed filename into its five fields.
func ParseName(filename string) (ParsedName, error) {
	if !strings.HasSuffix(filename, Ext) {
		return ParsedName{}, fmt.Errorf("%s: not a %s file", filename, Ext)
	}
	stem := strings.TrimSuffix(filename, Ext)
	parts := strings.Split(stem, Sep)
	if len(parts) != 5 {
		return ParsedName{}, fmt.Errorf("%s: want 5 fields, got %d", filename, len(parts))
	}
	return ParsedName{
		TCPrefix: parts[0],
		TCID:     parts[1],
		EditID:   parts[2],
		Code:     parts[3],
		Suffix:   parts[4],
	}, nil
}

// Filename reassembles the five fields into the canonical name.
func (p ParsedName) Filename() string {
	return strings.Join([]string{p.TCPrefix, p.TCID, p.EditID, p.Code, p.Suffix}, Sep) + Ext
}

// Stem is the filename without extension; it doubles as the request name.
func (p ParsedName) Stem() string {
	return strings.TrimSuffix(p.Filename(), Ext)
}

// NormalizeTS zero-pads a TS number to two digits ("1" -> "01"); three-digit
// numbers keep their width. Non-numeric input is returned unchanged.
func NormalizeTS(s string) string {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return s
	}
	if n < 100 {
		return fmt.Sprintf("%02d", n)
	}
	return strconv.Itoa(n)
}
