// Package html renders a document page tree to HTML. One shared document
// template is used for all contexts, a Chrome only adds the surrounding page
// styling (modal close affordance, print CSS, background). Content and
// structure are identical across chromes.
package html

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/mpapenbr/trackday-instructions/pkg/document"
)

type Chrome string

const (
	// ChromeInline is the fragment embedded in the editor preview modal.
	ChromeInline Chrome = "inline"
	// ChromeFullPage is the standalone read-only preview page.
	ChromeFullPage Chrome = "fullpage"
	// ChromeExport is the print oriented page used by the export pipeline.
	ChromeExport Chrome = "export"
)

type pageData struct {
	Doc    *document.Document
	Chrome Chrome
}

// Render produces the HTML form of a document for the given chrome.
func Render(doc *document.Document, chrome Chrome) ([]byte, error) {
	var buf bytes.Buffer
	name := "fragment"
	if chrome != ChromeInline {
		name = "page"
	}
	if err := tmpl.ExecuteTemplate(&buf, name, pageData{Doc: doc, Chrome: chrome}); err != nil {
		return nil, fmt.Errorf("render document (%s): %w", chrome, err)
	}
	return buf.Bytes(), nil
}

var tmpl = template.Must(template.New("document").Parse(documentTemplate))

//nolint:lll // markup
const documentTemplate = `
{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Doc.Header.TrackName}}{{with .Doc.Header.InstructionName}} • {{.}}{{end}}</title>
<style>
body{font-family:-apple-system,'Segoe UI',Roboto,sans-serif;color:#222;margin:0}
.doc-page{box-sizing:border-box;width:210mm;min-height:297mm;margin:0 auto;padding:12mm;background:#fff}
.doc-columns{display:grid;grid-template-columns:1fr 1fr;gap:8mm}
.doc-block{margin-bottom:6mm}
.no-break{break-inside:avoid;page-break-inside:avoid}
.doc-header h1{font-size:20px;margin:0}
.doc-header .dates{color:#555;font-size:13px}
.section-label{font-size:15px;font-weight:600;margin:0 0 2mm}
.secondary{color:#666;font-size:0.85em;display:block}
.sched-caption{font-weight:600;font-size:13px;margin:2mm 0 1mm}
.sched-entry,.loc-entry,.note-entry{font-size:13px;margin-bottom:1.5mm}
.start-text{font-weight:700}
.warning-grid{display:grid;grid-template-columns:1fr 1fr;gap:2mm;font-size:13px}
.warning-flag{height:18px;vertical-align:middle;margin-right:2mm}
.block-image img{max-width:100%}
.shape-page{display:flex;align-items:center;justify-content:center}
.shape-page img{max-width:100%;max-height:273mm;object-fit:contain}
{{if eq .Chrome "fullpage"}}body{background:#777;padding:10mm 0}.doc-page{box-shadow:0 2px 12px rgba(0,0,0,.4);margin-bottom:10mm}{{end}}
{{if eq .Chrome "export"}}@page{size:A4 portrait;margin:0}.doc-page{page-break-after:always}.doc-page:last-child{page-break-after:auto}{{end}}
</style>
</head>
<body>
{{template "document" .Doc}}
</body>
</html>{{end}}

{{define "fragment"}}<div class="instruction-preview">
{{template "document" .Doc}}
</div>{{end}}

{{define "document"}}{{range .Pages}}{{if eq .Kind "content"}}<div class="doc-page">
<div class="doc-columns">
<div class="doc-col-left">{{range .Left}}{{template "block" .}}{{end}}</div>
<div class="doc-col-right">{{range .Right}}{{template "block" .}}{{end}}</div>
</div>
</div>
{{else}}<div class="doc-page shape-page"><img src="{{.ImageURL}}" alt="track shape"></div>
{{end}}{{end}}{{end}}

{{define "block"}}<div class="doc-block{{if .NoBreak}} no-break{{end}}{{if eq .Kind "image"}} block-image{{end}}">
{{if eq .Kind "image"}}<img src="{{.ImageURL}}" alt="">
{{else if eq .Kind "header"}}<div class="doc-header">
<h1>{{.Header.TrackName}}{{with .Header.InstructionName}} • {{.}}{{end}}</h1>
<div class="dates">{{.Header.DateList}}</div>
</div>
{{else}}{{template "section" .Section}}{{end}}
</div>{{end}}

{{define "bilingual"}}{{.Primary}}{{with .Secondary}}<span class="secondary">{{.}}</span>{{end}}{{end}}

{{define "section"}}<h2 class="section-label">{{template "bilingual" .Label}}</h2>
{{if eq .Kind "schedule"}}{{range .ScheduleGroups}}<div class="sched-group">
<div class="sched-caption">{{.Caption}}</div>
{{range .Entries}}<div class="sched-entry">
{{if or .StartText.Primary .StartText.Secondary}}<span class="start-text">{{template "bilingual" .StartText}} {{.TimeRange}}</span>{{else}}<span>{{.TimeRange}}</span>{{end}}
<div>{{template "bilingual" .Activity}}</div>
{{with .Location}}<div class="secondary">{{.}}</div>{{end}}
</div>{{end}}
</div>{{end}}
{{else if eq .Kind "locations"}}{{range .Locations}}<div class="loc-entry">{{template "bilingual" .Name}}{{with .Address}}<span class="secondary">{{.}}</span>{{end}}</div>{{end}}
{{else if eq .Kind "overtaking"}}{{range .Paragraphs}}<p>{{template "bilingual" .}}</p>{{end}}
{{else if eq .Kind "warnings"}}<div class="warning-grid">{{range .Warnings}}<div class="warning-item">{{with .ImageURL}}<img class="warning-flag" src="{{.}}" alt="">{{end}}{{template "bilingual" .Name}}</div>{{end}}</div>
{{else}}{{range .Notes}}<div class="note-entry">{{template "bilingual" .Text}}{{with .ImageURL}}<div><img src="{{.}}" alt=""></div>{{end}}</div>{{end}}
{{end}}{{end}}
`
