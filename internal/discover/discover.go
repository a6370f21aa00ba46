package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"tc-batch/internal/ir"
)

var ErrMissingRoot = errors.New("discovery root not found")

// TS batch folders look like
//
//	TS_07_REVENUE_WGS_CSBD_rvn011_00W11_sur
//	TS_03_Revenue code Services not payable on Facility claim Sub Edit 5_WGS_CSBD_RULEREVE000005_00W28_sur
//	TS_47_Covid_gbdf_mcr_RULEEM000001_v04_sur
//
// The label between the TS number and the edit id is free-form (spaces and
// punctuation included); the edit id and EOB code are the last two
// alphanumeric tokens before the _sur marker. TS numbers may be 1-3 digits.
var folderRe = regexp.MustCompile(`^TS_(\d{1,3})_(.+)_([A-Za-z0-9]+)_([A-Za-z0-9]+)_sur$`)

// suffix of a source folder name and its renamed counterpart
const (
	srcSuffix = "_sur"
	dstSuffix = "_dis"
)

// payload subfolder inside every batch folder
const regressionDir = "regression"

// Discover scans root for TS batch folders and builds one ModelConfig per
// match. Folder names that carry the _sur marker but do not parse are
// reported as warnings and skipped; discovery of the remaining folders
// continues. Results are sorted by TS number for a stable batch order.
func Discover(root, destRoot string) ([]ir.ModelConfig, []string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingRoot, root)
	}

	var models []ir.ModelConfig
	var warnings []string
	for _, e := range entries {
		if !e.IsDir() || !strings.HasSuffix(e.Name(), srcSuffix) {
			continue
		}
		cfg, err := parseFolder(e.Name())
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skip folder %s: %v", e.Name(), err))
			continue
		}
		cfg.SourceDir = filepath.Join(root, e.Name(), regressionDir)
		cfg.DestDir = filepath.Join(destRoot, renamedFolder(e.Name()), regressionDir)
		models = append(models, cfg)
	}

	sort.Slice(models, func(i, j int) bool {
		a, b := models[i].TSNumber, models[j].TSNumber
		if len(a) != len(b) {
			// "99" sorts before "100"
			return len(a) < len(b)
		}
		if a != b {
			return a < b
		}
		return models[i].EditID < models[j].EditID
	})
	return models, warnings, nil
}

func parseFolder(name string) (ir.ModelConfig, error) {
	m := folderRe.FindStringSubmatch(name)
	if m == nil {
		return ir.ModelConfig{}, errors.New("does not match TS_<n>_<label>_<editID>_<code>_sur")
	}
	ts := ir.NormalizeTS(m[1])
	return ir.ModelConfig{
		TSNumber:       ts,
		EditID:         m[3],
		Code:           m[4],
		CollectionName: fmt.Sprintf("ts_%s_collection", ts),
		FileName:       collectionFileName(m[2], m[3], m[4]),
	}, nil
}

// renamedFolder turns a _sur source folder name into its _dis destination.
func renamedFolder(name string) string {
	return strings.TrimSuffix(name, srcSuffix) + dstSuffix
}

// collectionFileName lower-cases the folder label and ids into a document
// filename, e.g. "revenue_wgs_csbd_rvn011_00w11.json".
func collectionFileName(label, editID, code string) string {
	s := strings.ToLower(label + "_" + editID + "_" + code)
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_") + ir.Ext
}
