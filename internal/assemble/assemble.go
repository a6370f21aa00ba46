package assemble

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"tc-batch/internal/ir"
)

var ErrMissingDir = errors.New("directory not found")

// ValidateURL is the target every generated request points at. The
// placeholders are resolved by the importing client, not by this tool.
const ValidateURL = "{{baseUrl}}/api/validate/{{tc_id}}"

// Assemble builds a collection from the renamed payloads under dir.
//
// Files are discovered recursively and processed in sorted path order so
// the same tree always yields the same items sequence. Unparsable names
// and unreadable files become warnings, not failures; an empty directory
// yields an empty collection plus a warning.
func Assemble(dir, collectionName string) (*ir.Collection, []string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingDir, dir)
	}

	paths, err := payloadPaths(dir)
	if err != nil {
		return nil, nil, err
	}

	col := &ir.Collection{
		Version: ir.CollectionVersion,
		Name:    collectionName,
		Type:    ir.CollectionType,
		Items:   []ir.Item{},
	}

	var warnings []string
	for _, path := range paths {
		p, err := ir.ParseName(filepath.Base(path))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skip %s: %v", filepath.Base(path), err))
			continue
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skip %s: %v", filepath.Base(path), err))
			continue
		}
		col.Items = append(col.Items, buildItem(p, raw))
	}

	if len(paths) == 0 {
		warnings = append(warnings, fmt.Sprintf("no %s files found in %s", ir.Ext, dir))
	}
	return col, warnings, nil
}

// buildItem makes one request descriptor. The payload bytes are embedded
// verbatim so the document round-trips the exact on-disk formatting.
func buildItem(p ir.ParsedName, raw []byte) ir.Item {
	return ir.Item{
		UID:    uuid.NewString(),
		Name:   p.Stem(),
		Type:   ir.ItemTypeHTTP,
		Method: "POST",
		URL:    ValidateURL,
		Headers: []ir.Header{
			header("Content-Type", "application/json"),
			header("X-Edit-ID", p.EditID),
			header("X-EOB-Code", p.Code),
			header("X-Test-Type", p.Suffix),
		},
		Body: ir.Body{Mode: ir.BodyModeRaw, Raw: string(raw)},
	}
}

func header(name, value string) ir.Header {
	return ir.Header{UID: uuid.NewString(), Name: name, Value: value, Enabled: true}
}

func payloadPaths(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ir.Ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// DirStats summarizes the renamed payloads in one directory.
type DirStats struct {
	Directory  string         `json:"directory"`
	TotalFiles int            `json:"total_files"`
	FileTypes  map[string]int `json:"file_types"`
	EditIDs    []string       `json:"edit_ids"`
	EOBCodes   []string       `json:"eob_codes"`
	Unparsed   int            `json:"unparsed,omitempty"`
}

// Stats walks dir and tallies suffix counts, edit ids and EOB codes.
func Stats(dir string) (*DirStats, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrMissingDir, dir)
	}
	paths, err := payloadPaths(dir)
	if err != nil {
		return nil, err
	}

	st := &DirStats{Directory: dir, TotalFiles: len(paths), FileTypes: map[string]int{}}
	editIDs := map[string]bool{}
	codes := map[string]bool{}
	for _, path := range paths {
		p, err := ir.ParseName(filepath.Base(path))
		if err != nil {
			st.Unparsed++
			continue
		}
		st.FileTypes[p.Suffix]++
		editIDs[p.EditID] = true
		codes[p.Code] = true
	}
	st.EditIDs = sortedKeys(editIDs)
	st.EOBCodes = sortedKeys(codes)
	return st, nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ListDirectories returns the sorted child directories of root, for the
// list subcommand.
func ListDirectories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingDir, root)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
