package assemble_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"tc-batch/internal/assemble"
	"tc-batch/internal/ir"
)

func TestAssemble_BuildsItemsInSortedOrder(t *testing.T) {
	dir := t.TempDir()
	reg := filepath.Join(dir, "regression")
	if err := os.MkdirAll(reg, 0o755); err != nil {
		t.Fatal(err)
	}

	// Written out of order on purpose; assembly sorts by path.
	write(t, reg, "TC#01_22222#rvn001#00W5#NR.json", "{\n  \"claim\": 2\n}")
	write(t, reg, "TC#01_11111#rvn001#00W5#LR.json", `{"claim":1}`)

	col, warnings, err := assemble.Assemble(dir, "TS_01_Covid_Collection")
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}

	if col.Version != "1" || col.Type != "collection" || col.Name != "TS_01_Covid_Collection" {
		t.Fatalf("collection envelope = %+v", col)
	}
	if len(col.Items) != 2 {
		t.Fatalf("items len = %d, want 2", len(col.Items))
	}

	first := col.Items[0]
	if first.Name != "TC#01_11111#rvn001#00W5#LR" {
		t.Fatalf("items[0].name = %q, want the lexicographically first file", first.Name)
	}
	if first.Method != "POST" || first.Type != "http" {
		t.Fatalf("items[0] method/type = %s/%s", first.Method, first.Type)
	}
	if first.URL != "{{baseUrl}}/api/validate/{{tc_id}}" {
		t.Fatalf("items[0].url = %q", first.URL)
	}
	// Body is embedded verbatim, formatting preserved.
	if col.Items[1].Body.Raw != "{\n  \"claim\": 2\n}" {
		t.Fatalf("items[1].body.raw = %q", col.Items[1].Body.Raw)
	}

	wantHeaders := map[string]string{
		"Content-Type": "application/json",
		"X-Edit-ID":    "rvn001",
		"X-EOB-Code":   "00W5",
		"X-Test-Type":  "LR",
	}
	gotHeaders := map[string]string{}
	for _, h := range first.Headers {
		if !h.Enabled {
			t.Errorf("header %s disabled", h.Name)
		}
		if h.UID == "" {
			t.Errorf("header %s has empty uid", h.Name)
		}
		gotHeaders[h.Name] = h.Value
	}
	if diff := cmp.Diff(wantHeaders, gotHeaders); diff != "" {
		t.Fatalf("headers mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_UIDsUniquePerDocument(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "TC#01_11111#rvn001#00W5#LR.json", `{}`)
	write(t, dir, "TC#01_22222#rvn001#00W5#NR.json", `{}`)

	col, _, err := assemble.Assemble(dir, "c")
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	seen := map[string]bool{}
	for _, it := range col.Items {
		for _, uid := range append([]string{it.UID}, headerUIDs(it)...) {
			if uid == "" {
				t.Fatal("empty uid")
			}
			if seen[uid] {
				t.Fatalf("duplicate uid %s", uid)
			}
			seen[uid] = true
		}
	}
}

func TestAssemble_SkipsUnparsableNames(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "TC#01_11111#rvn001#00W5#LR.json", `{}`)
	write(t, dir, "TC#01_22222#deny.json", `{}`) // 3 fields: not renamed yet

	col, warnings, err := assemble.Assemble(dir, "c")
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	if len(col.Items) != 1 {
		t.Fatalf("items len = %d, want 1", len(col.Items))
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one skip", warnings)
	}
}

func TestAssemble_EmptyDirWarnsNotFails(t *testing.T) {
	col, warnings, err := assemble.Assemble(t.TempDir(), "empty")
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	if len(col.Items) != 0 {
		t.Fatalf("items = %v, want empty", col.Items)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want the no-files warning", warnings)
	}
}

func TestAssemble_MissingDir(t *testing.T) {
	_, _, err := assemble.Assemble(filepath.Join(t.TempDir(), "nope"), "c")
	if !errors.Is(err, assemble.ErrMissingDir) {
		t.Fatalf("err = %v, want ErrMissingDir", err)
	}
}

func TestAssemble_IdempotentItems(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "TC#01_11111#rvn001#00W5#LR.json", `{"a":1}`)
	write(t, dir, "TC#01_22222#rvn001#00W5#EX.json", `{"b":2}`)

	a, _, err := assemble.Assemble(dir, "c")
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := assemble.Assemble(dir, "c")
	if err != nil {
		t.Fatal(err)
	}

	// UIDs differ between runs; everything else must match.
	strip := func(c *ir.Collection) *ir.Collection {
		out := *c
		out.Items = make([]ir.Item, len(c.Items))
		for i, it := range c.Items {
			it.UID = ""
			hs := make([]ir.Header, len(it.Headers))
			for j, h := range it.Headers {
				h.UID = ""
				hs[j] = h
			}
			it.Headers = hs
			out.Items[i] = it
		}
		return &out
	}
	if diff := cmp.Diff(strip(a), strip(b)); diff != "" {
		t.Fatalf("two assemblies differ beyond uids (-a +b):\n%s", diff)
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "TC#01_11111#rvn001#00W5#LR.json", `{}`)
	write(t, dir, "TC#01_22222#rvn001#00W5#LR.json", `{}`)
	write(t, dir, "TC#01_33333#rvn002#00W6#EX.json", `{}`)
	write(t, dir, "TC#bad.json", `{}`)

	st, err := assemble.Stats(dir)
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if st.TotalFiles != 4 || st.Unparsed != 1 {
		t.Fatalf("total/unparsed = %d/%d, want 4/1", st.TotalFiles, st.Unparsed)
	}
	if diff := cmp.Diff(map[string]int{"LR": 2, "EX": 1}, st.FileTypes); diff != "" {
		t.Fatalf("file types mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"rvn001", "rvn002"}, st.EditIDs); diff != "" {
		t.Fatalf("edit ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"00W5", "00W6"}, st.EOBCodes); diff != "" {
		t.Fatalf("eob codes mismatch (-want +got):\n%s", diff)
	}
}

func headerUIDs(it ir.Item) []string {
	out := make([]string, len(it.Headers))
	for i, h := range it.Headers {
		out[i] = h.UID
	}
	return out
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
