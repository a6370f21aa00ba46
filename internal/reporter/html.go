package reporter

import (
	"html"
	"io"
	"strconv"
	"strings"
)

// WriteHTML renders a self-contained run report for sharing with the QA
// team.
func WriteHTML(w io.Writer, res *RunResult) error {
	var sb strings.Builder

	sb.WriteString(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
	sb.WriteString(`<meta name="viewport" content="width=device-width,initial-scale=1">`)
	sb.WriteString(`<title>tc-batch Report — ` + html.EscapeString(res.Platform) + `</title>`)
	sb.WriteString(`<style>
:root { --ok:#0a0; --bad:#b00; --muted:#666; --chip:#eee; --line:#e5e5e5; }
body{font-family:system-ui,Segoe UI,Roboto,Arial,sans-serif;margin:24px;line-height:1.45}
h1{margin:0 0 12px}
h2{margin:0 0 8px;font-size:1.05rem}
.summary{display:flex;gap:12px;align-items:center;margin:12px 0 18px}
.pass{color:var(--ok)} .fail{color:var(--bad)}
.badge{display:inline-block;padding:2px 8px;border-radius:999px;background:var(--chip);font-size:.85rem}
.card{border:1px solid var(--line);border-radius:12px;padding:16px;margin:12px 0}
pre{background:#f8f8f8;padding:12px;border-radius:8px;overflow:auto;max-height:320px;margin:8px 0 0;white-space:pre-wrap}
.muted{color:var(--muted)}
hr{border:0;border-top:1px solid var(--line);margin:20px 0}
.small{font-size:.85rem}
</style></head><body>`)

	p, s, f := res.Totals()
	sb.WriteString(`<h1>tc-batch — ` + html.EscapeString(res.Platform) + `</h1>`)
	sb.WriteString(`<div class="summary">`)
	sb.WriteString(`<div>Status: <strong class="` + statusClass(res.Succeeded()) + `">` + tern(res.Succeeded(), "PASS", "FAIL") + `</strong></div>`)
	sb.WriteString(chip("Batches: " + strconv.Itoa(len(res.Batches))))
	sb.WriteString(chip("Renamed: " + strconv.Itoa(p)))
	sb.WriteString(chip("Skipped: " + strconv.Itoa(s)))
	sb.WriteString(chip("Failed: " + strconv.Itoa(f)))
	sb.WriteString(`</div><hr>`)

	for _, b := range res.Batches {
		ok := b.Error == "" && b.Failed == 0
		sb.WriteString(`<div class="card">`)
		sb.WriteString(`<h2>TS` + html.EscapeString(b.TSNumber) + ` — ` + html.EscapeString(b.EditID+"_"+b.Code) + ` ` + badgeStatus(ok) + `</h2>`)
		sb.WriteString(`<div class="small">` +
			chip("renamed "+strconv.Itoa(b.Processed)) + ` ` +
			chip("skipped "+strconv.Itoa(b.Skipped)) + ` ` +
			chip("failed "+strconv.Itoa(b.Failed)) + `</div>`)

		if b.Collection != "" {
			sb.WriteString(`<div class="small muted" style="margin-top:10px;">Collection</div>`)
			sb.WriteString(`<pre>` + html.EscapeString(b.Collection) + ` (` + strconv.Itoa(b.Items) + ` items)</pre>`)
		}
		if b.Error != "" {
			sb.WriteString(`<pre>` + html.EscapeString(b.Error) + `</pre>`)
		}
		if len(b.Warnings) > 0 {
			sb.WriteString(`<pre>`)
			for _, warn := range b.Warnings {
				sb.WriteString(html.EscapeString(warn) + "\n")
			}
			sb.WriteString(`</pre>`)
		} else if b.Error == "" {
			sb.WriteString(`<div class="small muted">No warnings.</div>`)
		}
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`</body></html>`)
	_, err := io.WriteString(w, sb.String())
	return err
}

func statusClass(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}

func badgeStatus(ok bool) string {
	if ok {
		return `<span class="badge pass">OK</span>`
	}
	return `<span class="badge fail">FAILED</span>`
}

func chip(text string) string {
	return `<span class="badge">` + html.EscapeString(text) + `</span>`
}

func tern[T ~string](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
