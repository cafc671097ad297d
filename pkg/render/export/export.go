// Package export renders a document page tree to fixed size pages (SVG or
// PNG) for print/download. It is the export side of the rendering pipeline:
// the page tree comes from pkg/document, this package only maps it onto
// physical pages. No-break blocks are never split, a block that does not fit
// the remaining column moves to a continuation page as a whole.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/mpapenbr/trackday-instructions/pkg/document"
)

// Options controls the page geometry and output of an export run.
type Options struct {
	Path       string  // output path; format inferred from extension when Format empty
	Format     string  // "svg" or "png" (case-insensitive)
	PageFormat string  // "A4" (default) or "Letter"
	Margin     float64 // page margin in points
	Scale      float64 // raster scale factor for PNG output (1.0 = 72dpi)

	// LoadImage resolves an image URL for raster output. When nil, images
	// render as labeled placeholder boxes. SVG output always references the
	// URL directly.
	LoadImage func(url string) (image.Image, error)
}

type pageSize struct{ w, h float64 }

var pageFormats = map[string]pageSize{
	"A4":     {595, 842},
	"Letter": {612, 792},
}

func (o *Options) applyDefaults() error {
	if o.PageFormat == "" {
		o.PageFormat = "A4"
	}
	if _, ok := pageFormats[o.PageFormat]; !ok {
		return fmt.Errorf("unsupported page format %q", o.PageFormat)
	}
	if o.Margin <= 0 {
		o.Margin = 36
	}
	if o.Scale <= 0 {
		o.Scale = 2
	}
	format := strings.ToLower(strings.TrimPrefix(o.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(o.Path)) {
		case ".png":
			format = "png"
		default:
			format = "svg"
			if o.Path != "" && filepath.Ext(o.Path) == "" {
				o.Path += ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	o.Format = format
	return nil
}

// Export writes one file per physical page and returns the written paths.
// A failed run removes the files it already wrote.
func Export(doc *document.Document, opts Options) ([]string, error) {
	if err := opts.applyDefaults(); err != nil {
		return nil, err
	}
	if opts.Path == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create parent dir: %w", err)
	}

	pages := layoutPages(doc, &opts)
	written := make([]string, 0, len(pages))
	cleanup := func() {
		for _, p := range written {
			os.Remove(p)
		}
	}
	for i := range pages {
		path := pagePath(opts.Path, i+1, len(pages))
		file, err := os.Create(path)
		if err != nil {
			cleanup()
			return nil, err
		}
		written = append(written, path)
		err = renderPage(file, pages[i], &opts)
		file.Close()
		if err != nil {
			cleanup()
			return nil, err
		}
	}
	return written, nil
}

// PageCount returns the number of physical pages the document occupies with
// the given options.
func PageCount(doc *document.Document, opts Options) (int, error) {
	if err := opts.applyDefaults(); err != nil {
		return 0, err
	}
	return len(layoutPages(doc, &opts)), nil
}

// WritePage renders one physical page (1-based) to w.
func WritePage(w io.Writer, doc *document.Document, page int, opts Options) error {
	if err := opts.applyDefaults(); err != nil {
		return err
	}
	pages := layoutPages(doc, &opts)
	if page < 1 || page > len(pages) {
		return fmt.Errorf("page %d out of range (1..%d)", page, len(pages))
	}
	return renderPage(w, pages[page-1], &opts)
}

func pagePath(base string, page, total int) string {
	if total == 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-p%d%s", strings.TrimSuffix(base, ext), page, ext)
}

// --- layout ----------------------------------------------------------------

// font metrics of the fixed 7x13 face used for both output formats
const (
	charW     = 7.0
	lineH     = 15.0
	gutter    = 16.0
	blockGap  = 12.0
	labelSize = 13.0
	textSize  = 12.0
)

type textEl struct {
	x, y   float64
	s      string
	bold   bool
	subtle bool
}

type imageEl struct {
	x, y, w, h float64
	url        string
}

type pageLayout struct {
	number int
	texts  []textEl
	images []imageEl
}

// column is a text flow cursor within one physical page.
type flow struct {
	opts    *Options
	size    pageSize
	pages   []pageLayout
	colX    float64
	colW    float64
	y       float64
	pageIdx int

	// set on the throwaway flow used by blockHeight so placement does not
	// recurse into another measurement
	measuring bool
}

func newFlow(opts *Options) *flow {
	return &flow{opts: opts, size: pageFormats[opts.PageFormat]}
}

func (f *flow) startColumn(colX, colW float64) {
	f.colX = colX
	f.colW = colW
	f.y = f.opts.Margin
	f.pageIdx = 0
}

func (f *flow) page() *pageLayout {
	for len(f.pages) <= f.pageIdx {
		f.pages = append(f.pages, pageLayout{number: len(f.pages) + 1})
	}
	return &f.pages[f.pageIdx]
}

// ensure moves the cursor to the next page when a no-break unit of height h
// does not fit the remaining column space.
func (f *flow) ensure(h float64) {
	if f.y+h > f.size.h-f.opts.Margin && f.y > f.opts.Margin {
		f.pageIdx++
		f.y = f.opts.Margin
	}
}

func (f *flow) text(s string, indent float64, bold, subtle bool) {
	f.ensure(lineH)
	p := f.page()
	p.texts = append(p.texts, textEl{
		x: f.colX + indent, y: f.y + lineH - 3, s: s, bold: bold, subtle: subtle,
	})
	f.y += lineH
}

func (f *flow) wrapped(s string, indent float64, bold, subtle bool) {
	for _, line := range wrap(s, int((f.colW-indent)/charW)) {
		f.text(line, indent, bold, subtle)
	}
}

func (f *flow) image(url string, h float64) {
	f.ensure(h)
	p := f.page()
	p.images = append(p.images, imageEl{x: f.colX, y: f.y, w: f.colW, h: h, url: url})
	f.y += h
}

func wrap(s string, cols int) []string {
	if cols < 8 {
		cols = 8
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	lines := []string{}
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) <= cols {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

func layoutPages(doc *document.Document, opts *Options) []pageLayout {
	f := newFlow(opts)
	size := f.size
	colW := (size.w - 2*opts.Margin - gutter) / 2

	shapePages := []document.Page{}
	for _, page := range doc.Pages {
		switch page.Kind {
		case document.PageContent:
			f.startColumn(opts.Margin, colW)
			for _, b := range page.Left {
				f.placeBlock(b)
			}
			f.startColumn(opts.Margin+colW+gutter, colW)
			for _, b := range page.Right {
				f.placeBlock(b)
			}
		case document.PageTrackShape:
			shapePages = append(shapePages, page)
		}
	}
	if len(f.pages) == 0 {
		f.pages = append(f.pages, pageLayout{number: 1})
	}
	// forced break: the track shape page always starts on its own page,
	// image letterboxed to the printable area, centered both axes
	for _, page := range shapePages {
		printW := size.w - 2*opts.Margin
		printH := size.h - 2*opts.Margin
		f.pages = append(f.pages, pageLayout{
			number: len(f.pages) + 1,
			images: []imageEl{{
				x: opts.Margin, y: opts.Margin, w: printW, h: printH,
				url: page.ImageURL,
			}},
		})
	}
	return f.pages
}

func (f *flow) placeBlock(b document.Block) {
	if b.NoBreak && !f.measuring {
		f.ensure(f.blockHeight(b))
	}
	switch b.Kind {
	case document.BlockImage:
		f.image(b.ImageURL, imageBlockHeight)
	case document.BlockHeader:
		f.placeHeader(b.Header)
	case document.BlockSection:
		f.placeSection(b.Section)
	}
	f.y += blockGap
}

const imageBlockHeight = 60.0

func (f *flow) placeHeader(h *document.Header) {
	title := h.TrackName
	if h.InstructionName != "" {
		title = fmt.Sprintf("%s • %s", title, h.InstructionName)
	}
	f.wrapped(title, 0, true, false)
	if h.DateList != "" {
		f.wrapped(h.DateList, 0, false, true)
	}
}

func (f *flow) placeBilingual(b document.Bilingual, indent float64, bold bool) {
	if b.Primary != "" {
		f.wrapped(b.Primary, indent, bold, false)
	}
	if b.Secondary != "" {
		f.wrapped(b.Secondary, indent, false, true)
	}
}

//nolint:cyclop // straight dispatch over section kinds
func (f *flow) placeSection(sec *document.Section) {
	f.placeBilingual(sec.Label, 0, true)
	switch sec.Kind {
	case document.SectionSchedule:
		for _, g := range sec.ScheduleGroups {
			f.wrapped(g.Caption, 0, true, false)
			for _, e := range g.Entries {
				if e.StartText.Empty() {
					f.text(e.TimeRange, 8, false, false)
				} else {
					f.wrapped(fmt.Sprintf("%s %s", e.StartText.Primary, e.TimeRange), 8, true, false)
					if e.StartText.Secondary != "" {
						f.wrapped(e.StartText.Secondary, 8, false, true)
					}
				}
				f.placeBilingual(e.Activity, 8, false)
				if e.Location != "" {
					f.wrapped(e.Location, 8, false, true)
				}
			}
		}
	case document.SectionLocations:
		for _, l := range sec.Locations {
			f.placeBilingual(l.Name, 0, false)
			if l.Address != "" {
				f.wrapped(l.Address, 8, false, true)
			}
		}
	case document.SectionOvertaking:
		for _, p := range sec.Paragraphs {
			f.placeBilingual(p, 0, false)
		}
	case document.SectionWarnings:
		// two column grid within the block, rows never split across pages
		half := (f.colW - 8) / 2
		for i := 0; i < len(sec.Warnings); i += 2 {
			pair := sec.Warnings[i:min(i+2, len(sec.Warnings))]
			f.ensure(warningRowHeight(pair, half))
			rowH := 0.0
			startY := f.y
			for j, w := range pair {
				f.y = startY
				offset := float64(j) * (half + 8)
				if w.ImageURL != "" {
					p := f.page()
					p.images = append(p.images, imageEl{
						x: f.colX + offset, y: f.y, w: 18, h: 12, url: w.ImageURL,
					})
					f.y += lineH
				}
				for _, line := range wrap(w.Name.Primary, int(half/charW)) {
					f.text(line, offset, false, false)
				}
				if w.Name.Secondary != "" {
					for _, line := range wrap(w.Name.Secondary, int(half/charW)) {
						f.text(line, offset, false, true)
					}
				}
				rowH = max(rowH, f.y-startY)
			}
			f.y = startY + rowH
		}
	case document.SectionNotes:
		for _, n := range sec.Notes {
			f.placeBilingual(n.Text, 0, n.Pinned)
			if n.ImageURL != "" {
				f.image(n.ImageURL, imageBlockHeight)
			}
		}
	}
}

func warningRowHeight(pair []document.WarningItem, half float64) float64 {
	ret := 0.0
	for _, w := range pair {
		h := float64(len(wrap(w.Name.Primary, int(half/charW)))) * lineH
		if w.ImageURL != "" {
			h += lineH
		}
		if w.Name.Secondary != "" {
			h += float64(len(wrap(w.Name.Secondary, int(half/charW)))) * lineH
		}
		ret = max(ret, h)
	}
	return ret
}

// blockHeight measures a block by running it through a throwaway flow whose
// page is tall enough to never break.
func (f *flow) blockHeight(b document.Block) float64 {
	probe := &flow{opts: f.opts, size: pageSize{w: f.size.w, h: 1 << 20}, measuring: true}
	probe.startColumn(f.colX, f.colW)
	probe.placeBlock(b)
	return probe.y - f.opts.Margin
}

// --- rendering -------------------------------------------------------------

var (
	colorText        = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorSubtle      = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorPlaceholder = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}
	colorPageBG      = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func renderPage(w io.Writer, page pageLayout, opts *Options) error {
	if opts.Format == "png" {
		return renderPNG(w, page, opts)
	}
	return renderSVG(w, page, opts)
}

func renderSVG(w io.Writer, page pageLayout, opts *Options) error {
	size := pageFormats[opts.PageFormat]
	canvas := svg.New(w)
	canvas.Start(int(size.w), int(size.h))
	canvas.Rect(0, 0, int(size.w), int(size.h), fmt.Sprintf("fill:%s", css(colorPageBG)))
	for _, img := range page.images {
		canvas.Image(int(img.x), int(img.y), int(img.w), int(img.h), img.url,
			"preserveAspectRatio=\"xMidYMid meet\"")
	}
	for _, t := range page.texts {
		style := fmt.Sprintf("fill:%s;font-size:%dpx;font-family:monospace",
			css(colorText), int(textSize))
		if t.subtle {
			style = fmt.Sprintf("fill:%s;font-size:%dpx;font-family:monospace",
				css(colorSubtle), int(textSize)-1)
		}
		if t.bold {
			style += ";font-weight:bold"
		}
		canvas.Text(int(t.x), int(t.y), t.s, style)
	}
	canvas.End()
	return nil
}

func renderPNG(w io.Writer, page pageLayout, opts *Options) error {
	size := pageFormats[opts.PageFormat]
	dc := gg.NewContext(int(size.w*opts.Scale), int(size.h*opts.Scale))
	dc.Scale(opts.Scale, opts.Scale)
	dc.SetColor(colorPageBG)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for _, img := range page.images {
		drawImage(dc, img, opts)
	}
	for _, t := range page.texts {
		if t.subtle {
			dc.SetColor(colorSubtle)
		} else {
			dc.SetColor(colorText)
		}
		dc.DrawStringAnchored(t.s, t.x, t.y, 0, 0)
		if t.bold {
			// poor man's bold for the bitmap face
			dc.DrawStringAnchored(t.s, t.x+0.5, t.y, 0, 0)
		}
	}
	return dc.EncodePNG(w)
}

// drawImage draws a fetched image scaled to fit its box without cropping,
// centered on both axes. Without a loader (or on load failure) a labeled
// placeholder box is drawn instead.
func drawImage(dc *gg.Context, el imageEl, opts *Options) {
	if opts.LoadImage != nil {
		if img, err := opts.LoadImage(el.url); err == nil && img != nil {
			b := img.Bounds()
			scale := min(el.w/float64(b.Dx()), el.h/float64(b.Dy()))
			dw := float64(b.Dx()) * scale
			dh := float64(b.Dy()) * scale
			dc.Push()
			dc.Translate(el.x+(el.w-dw)/2, el.y+(el.h-dh)/2)
			dc.Scale(scale, scale)
			dc.DrawImage(img, 0, 0)
			dc.Pop()
			return
		}
	}
	dc.SetColor(colorPlaceholder)
	dc.DrawRectangle(el.x, el.y, el.w, el.h)
	dc.Fill()
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(truncate(el.url, int(el.w/charW)),
		el.x+el.w/2, el.y+el.h/2, 0.5, 0.5)
}

func truncate(s string, limit int) string {
	if limit < 4 {
		limit = 4
	}
	if len(s) <= limit {
		return s
	}
	return s[:limit-1] + "…"
}
