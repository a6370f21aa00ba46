package discover_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"tc-batch/internal/discover"
)

func TestDiscover_ParsesFolders(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(t.TempDir(), "renaming_jsons")
	mk(t, root, "TS_07_REVENUE_WGS_CSBD_rvn011_00W11_sur")
	mk(t, root, "TS_1_Covid_WGS_CSBD_RULEEM000001_W04_sur")
	mk(t, root, "TS_03_Revenue code Services not payable on Facility claim Sub Edit 5_WGS_CSBD_RULEREVE000005_00W28_sur")
	mk(t, root, "unrelated_folder")

	models, warnings, err := discover.Discover(root, dest)
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if len(models) != 3 {
		t.Fatalf("models len = %d, want 3", len(models))
	}

	// Sorted by normalized TS number.
	var ts []string
	for _, m := range models {
		ts = append(ts, m.TSNumber)
	}
	if diff := cmp.Diff([]string{"01", "03", "07"}, ts); diff != "" {
		t.Fatalf("ts order mismatch (-want +got):\n%s", diff)
	}

	m := models[2]
	if m.EditID != "rvn011" || m.Code != "00W11" {
		t.Fatalf("TS07 edit/code = %s/%s", m.EditID, m.Code)
	}
	wantSrc := filepath.Join(root, "TS_07_REVENUE_WGS_CSBD_rvn011_00W11_sur", "regression")
	if m.SourceDir != wantSrc {
		t.Fatalf("source dir = %s, want %s", m.SourceDir, wantSrc)
	}
	wantDst := filepath.Join(dest, "TS_07_REVENUE_WGS_CSBD_rvn011_00W11_dis", "regression")
	if m.DestDir != wantDst {
		t.Fatalf("dest dir = %s, want %s", m.DestDir, wantDst)
	}
	if m.CollectionName != "ts_07_collection" {
		t.Fatalf("collection name = %s", m.CollectionName)
	}
	if m.FileName != "revenue_wgs_csbd_rvn011_00w11.json" {
		t.Fatalf("file name = %s", m.FileName)
	}

	// Free-form label with spaces still parses down to the trailing ids.
	if models[1].EditID != "RULEREVE000005" || models[1].Code != "00W28" {
		t.Fatalf("TS03 edit/code = %s/%s", models[1].EditID, models[1].Code)
	}
}

func TestDiscover_MalformedFolderWarnsAndContinues(t *testing.T) {
	root := t.TempDir()
	mk(t, root, "TS_abc_broken_sur") // _sur marker but unparsable
	mk(t, root, "TS_02_Laterality_WGS_CSBD_RULELATE000001_00W17_sur")

	models, warnings, err := discover.Discover(root, t.TempDir())
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("models = %+v, want the one valid folder", models)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one skip", warnings)
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, _, err := discover.Discover(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if !errors.Is(err, discover.ErrMissingRoot) {
		t.Fatalf("err = %v, want ErrMissingRoot", err)
	}
}

func mk(t *testing.T, root, name string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
		t.Fatal(err)
	}
}
