package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tc-batch/internal/assemble"
	"tc-batch/internal/classify"
	"tc-batch/internal/collection"
	"tc-batch/internal/config"
	"tc-batch/internal/contract"
	"tc-batch/internal/discover"
	"tc-batch/internal/ir"
	"tc-batch/internal/rename"
	"tc-batch/internal/reporter"
	"tc-batch/internal/vars"
)

func main() {
	var (
		// batch selection
		tsSel       = flag.String("ts", "", "TS number of the model batch to process (e.g. 07)")
		all         = flag.Bool("all", false, "Process every model batch of the platform")
		platform    = flag.String("platform", "wgs_csbd", "Platform: wgs_csbd or gbdf")
		cfgPath     = flag.String("config", "", "Path to YAML model config (default: built-in table)")
		useDiscover = flag.Bool("discover", false, "Discover model batches from source folder names")
		sourceRoot  = flag.String("source", "", "Source root for discovery (default per platform)")
		destRoot    = flag.String("dest", "", "Destination root for renamed files (default per platform)")

		// collection generation
		noCollection = flag.Bool("no-collection", false, "Rename only, skip collection generation")
		outDir       = flag.String("out", "postman_collections", "Output directory for collection documents")
		openapiPath  = flag.String("openapi", "", "Path to OpenAPI (YAML/JSON) to route-check generated collections")
		envPaths     = flag.String("env", "", "Comma-separated JSON var files for URL placeholders (e.g., env/dev.json)")

		// reports
		reportDir = flag.String("report", "reports", "Output directory for run reports")
		jsonOut   = flag.Bool("json", true, "Write JSON run report")
		htmlOut   = flag.Bool("html", true, "Write HTML run report")
		verbose   = flag.Bool("v", false, "Verbose: print per-file warnings")

		// standalone modes
		list         = flag.Bool("list", false, "List known model batches and exit")
		listDirs     = flag.Bool("list-dirs", false, "List renamed directories under the destination root and exit")
		statsDir     = flag.String("stats", "", "Print statistics for a renamed directory and exit")
		validatePath = flag.String("validate", "", "Validate an existing collection document and exit")
	)
	flag.Parse()

	// ---- Standalone modes (no batch selector required) ----
	if *validatePath != "" {
		runValidate(*validatePath)
		return
	}
	if *statsDir != "" {
		runStats(*statsDir)
		return
	}
	if *listDirs {
		root := *destRoot
		if root == "" {
			root = filepath.Join("renaming_jsons", platformFolder(*platform))
		}
		dirs, err := assemble.ListDirectories(root)
		if err != nil {
			fail("%v", err)
		}
		for _, d := range dirs {
			fmt.Println(d)
		}
		return
	}

	models, err := resolveModels(*platform, *cfgPath, *useDiscover, *sourceRoot, *destRoot)
	if err != nil {
		fail("%v", err)
	}

	if *list {
		for _, m := range models {
			fmt.Printf("TS%s  %s_%s  %s\n", m.TSNumber, m.EditID, m.Code, m.SourceDir)
		}
		return
	}

	// ---- Batch processing ----
	if *tsSel == "" && !*all {
		fail("missing batch selector: pass -ts <number> or -all")
	}
	if *tsSel != "" {
		m, err := modelByTS(models, *tsSel)
		if err != nil {
			fail("%v", err)
		}
		models = []ir.ModelConfig{m}
	}

	var checker *contract.Checker
	if *openapiPath != "" {
		checker, err = contract.LoadFromFile(*openapiPath)
		if err != nil {
			fail("openapi load: %v", err)
		}
	}
	var urlVars map[string]string
	if *envPaths != "" {
		urlVars, err = vars.LoadJSONFiles(strings.Split(*envPaths, ","))
		if err != nil {
			fail("load env: %v", err)
		}
	}

	table := classify.Default()
	res := &reporter.RunResult{Platform: *platform}
	for _, m := range models {
		res.Batches = append(res.Batches, processBatch(m, table, checker, urlVars, *outDir, *noCollection))
	}

	// ---- Artifacts ----
	if *jsonOut || *htmlOut {
		if err := os.MkdirAll(*reportDir, 0o755); err != nil {
			fail("mkdir report dir: %v", err)
		}
	}
	if *jsonOut {
		writeOrDie(filepath.Join(*reportDir, "run.json"), func(f *os.File) error {
			return reporter.WriteJSON(f, res)
		})
	}
	if *htmlOut {
		writeOrDie(filepath.Join(*reportDir, "run.html"), func(f *os.File) error {
			return reporter.WriteHTML(f, res)
		})
	}

	// ---- Summary ----
	if !*verbose {
		trimmed := *res
		trimmed.Batches = make([]reporter.BatchReport, len(res.Batches))
		for i, b := range res.Batches {
			if b.Error == "" {
				b.Warnings = nil
			}
			trimmed.Batches[i] = b
		}
		_ = reporter.WriteSummary(os.Stdout, &trimmed)
	} else {
		_ = reporter.WriteSummary(os.Stdout, res)
	}

	if res.Succeeded() {
		os.Exit(0)
	}
	os.Exit(1)
}

// processBatch renames one model's files and, unless suppressed, assembles
// and writes its collection document. A fatal batch error is recorded in
// the report so sibling batches keep running.
func processBatch(m ir.ModelConfig, table *classify.Table, checker *contract.Checker, urlVars map[string]string, outDir string, noCollection bool) reporter.BatchReport {
	renRes, err := rename.RenameBatch(m, table)
	if err != nil {
		return reporter.BatchReport{
			TSNumber: m.TSNumber, EditID: m.EditID, Code: m.Code,
			Error: err.Error(),
		}
	}
	rep := reporter.NewBatchReport(renRes)
	if noCollection {
		return rep
	}

	col, warnings, err := assemble.Assemble(m.DestDir, collectionName(m))
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	rep.Warnings = append(rep.Warnings, warnings...)

	if checker != nil {
		for _, u := range checker.CheckCollection(col, urlVars) {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("unrouted %s: %s %s: %s", u.Item, u.Method, u.URL, u.Reason))
		}
	}

	dir := filepath.Join(outDir, col.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		rep.Error = fmt.Sprintf("mkdir collection dir: %v", err)
		return rep
	}
	fileName := m.FileName
	if fileName == "" {
		fileName = "collection.json"
	}
	path := filepath.Join(dir, fileName)

	f, err := os.Create(path)
	if err != nil {
		rep.Error = fmt.Sprintf("create %s: %v", path, err)
		return rep
	}
	defer f.Close()
	if err := collection.Write(f, col); err != nil {
		rep.Error = fmt.Sprintf("write %s: %v", path, err)
		return rep
	}
	rep.Collection = path
	rep.Items = len(col.Items)
	return rep
}

// resolveModels picks the batch configs for a platform: folder discovery
// when requested (static table as fallback), otherwise the YAML config or
// the built-in table.
func resolveModels(platform, cfgPath string, useDiscover bool, sourceRoot, destRoot string) ([]ir.ModelConfig, error) {
	if sourceRoot == "" {
		sourceRoot = filepath.Join("source_folder", platformFolder(platform))
	}
	if destRoot == "" {
		destRoot = filepath.Join("renaming_jsons", platformFolder(platform))
	}

	if useDiscover {
		models, warnings, err := discover.Discover(sourceRoot, destRoot)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		if len(models) > 0 {
			return models, nil
		}
		fmt.Fprintln(os.Stderr, "warning: discovery found no model folders, falling back to static config")
	}

	f := config.Default()
	if cfgPath != "" {
		var err error
		f, err = config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
	}
	return f.Models(platform)
}

func modelByTS(models []ir.ModelConfig, ts string) (ir.ModelConfig, error) {
	want := ir.NormalizeTS(ts)
	for _, m := range models {
		if m.TSNumber == want {
			return m, nil
		}
	}
	return ir.ModelConfig{}, fmt.Errorf("%w: TS%s", config.ErrUnknownModel, want)
}

func platformFolder(platform string) string {
	if platform == "gbdf" {
		return "GBDF"
	}
	return "WGS_CSBD"
}

func collectionName(m ir.ModelConfig) string {
	if m.CollectionName != "" {
		return m.CollectionName
	}
	return fmt.Sprintf("ts_%s_collection", m.TSNumber)
}

// ---- Standalone modes ----

func runValidate(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fail("read collection: %v", err)
	}
	rep, err := collection.Validate(data)
	if err != nil {
		fail("parse collection: %v", err)
	}

	fmt.Printf("Collection: %s\n", rep.Name)
	fmt.Printf("Items: %d\n", rep.Items)
	for _, d := range rep.Defects {
		fmt.Fprintf(os.Stderr, "defect: %s\n", d)
	}
	for _, w := range rep.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if rep.Valid() {
		fmt.Println("VALID")
		os.Exit(0)
	}
	fmt.Println("INVALID")
	os.Exit(1)
}

func runStats(dir string) {
	st, err := assemble.Stats(dir)
	if err != nil {
		fail("stats: %v", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(st)
}

// ---- helpers ----

func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", a...)
	os.Exit(2)
}

func writeOrDie(path string, fn func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		fail("create %s: %v", path, err)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		fail("write %s: %v", path, err)
	}
}
