package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tc-batch/internal/classify"
	"tc-batch/internal/ir"
)

var (
	ErrWrongFieldCount = errors.New("wrong field count")
	ErrMissingSource   = errors.New("source directory not found")
)

// Transform computes the renamed filename for a 3-field input.
// TC#01_12345#deny.json -> TC#01_12345#<editID>#<code>#LR.json
// It is pure: the caller performs the copy and delete.
func Transform(filename string, cfg ir.ModelConfig, table *classify.Table) (newName, testType string, err error) {
	if !strings.HasSuffix(filename, ir.Ext) {
		return "", "", fmt.Errorf("%w: %s is not a %s file", ErrWrongFieldCount, filename, ir.Ext)
	}
	stem := strings.TrimSuffix(filename, ir.Ext)
	parts := strings.Split(stem, ir.Sep)
	if len(parts) != 3 {
		return "", "", fmt.Errorf("%w: %s has %d fields, want 3", ErrWrongFieldCount, filename, len(parts))
	}

	mapped := table.Classify(parts[2])
	p := ir.ParsedName{
		TCPrefix: parts[0],
		TCID:     parts[1],
		EditID:   cfg.EditID,
		Code:     cfg.Code,
		Suffix:   mapped,
	}
	return p.Filename(), mapped, nil
}

// Skip records a file left in place, with the reason.
type Skip struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Failure records a file whose copy or delete failed. The original is
// untouched unless the delete itself failed.
type Failure struct {
	File string `json:"file"`
	Err  string `json:"error"`
}

// BatchResult summarizes one batch's rename pass.
type BatchResult struct {
	Config  ir.ModelConfig `json:"config"`
	Renamed []string       `json:"renamed"`
	Skipped []Skip         `json:"skipped,omitempty"`
	Failed  []Failure      `json:"failed,omitempty"`
}

// RenameBatch moves every payload in cfg.SourceDir to cfg.DestDir under the
// 5-field template. Per-file problems are recorded and the batch continues;
// only a missing source directory is fatal.
//
// Files are processed in sorted filename order so runs are deterministic
// across platforms. For each file the bytes are copied first and the
// original removed only after the copy succeeded.
func RenameBatch(cfg ir.ModelConfig, table *classify.Table) (*BatchResult, error) {
	info, err := os.Stat(cfg.SourceDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, cfg.SourceDir)
	}

	if err := os.MkdirAll(cfg.DestDir, 0o755); err != nil {
		return nil, fmt.Errorf("create dest dir: %w", err)
	}

	entries, err := os.ReadDir(cfg.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ir.Ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	res := &BatchResult{Config: cfg}
	for _, name := range names {
		newName, skipReason, err := resolveName(name, cfg, table)
		if err != nil {
			res.Skipped = append(res.Skipped, Skip{File: name, Reason: err.Error()})
			continue
		}
		if skipReason != "" {
			res.Skipped = append(res.Skipped, Skip{File: name, Reason: skipReason})
			continue
		}

		src := filepath.Join(cfg.SourceDir, name)
		dst := filepath.Join(cfg.DestDir, newName)
		if err := moveFile(src, dst); err != nil {
			res.Failed = append(res.Failed, Failure{File: name, Err: err.Error()})
			continue
		}
		res.Renamed = append(res.Renamed, newName)
	}
	return res, nil
}

// resolveName decides what a source file becomes. A 3-field name is
// transformed; a 5-field name that already carries this batch's edit id and
// code is moved as-is (re-runs are no-ops, not corruption); anything else
// is skipped.
func resolveName(name string, cfg ir.ModelConfig, table *classify.Table) (newName, skipReason string, err error) {
	stem := strings.TrimSuffix(name, ir.Ext)
	switch len(strings.Split(stem, ir.Sep)) {
	case 3:
		newName, _, err = Transform(name, cfg, table)
		return newName, "", err
	case 5:
		p, perr := ir.ParseName(name)
		if perr != nil {
			return "", "", perr
		}
		if p.EditID == cfg.EditID && p.Code == cfg.Code {
			return name, "", nil
		}
		return "", fmt.Sprintf("belongs to model %s_%s, not %s_%s", p.EditID, p.Code, cfg.EditID, cfg.Code), nil
	default:
		_, _, err = Transform(name, cfg, table)
		return "", "", err
	}
}

// moveFile copies src to dst and removes src only once the copy is fully
// written and closed. A failed copy leaves src untouched. When src and dst
// are the same file (a batch re-run pointed at its own destination) the
// payload is already in place and nothing is touched.
func moveFile(src, dst string) error {
	if srcInfo, err := os.Stat(src); err == nil {
		if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
			return nil
		}
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove original %s: %w", src, err)
	}
	return nil
}
