package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/trackday-instructions/pkg/document"
)

func sectionBlock(kind document.SectionKind, sec document.Section) document.Block {
	sec.Kind = kind
	return document.Block{Kind: document.BlockSection, NoBreak: true, Section: &sec}
}

func paragraphs(n int) []document.Bilingual {
	out := make([]document.Bilingual, n)
	for i := range out {
		out[i] = document.Bilingual{Primary: "line"}
	}
	return out
}

func sampleDoc() *document.Document {
	return &document.Document{
		Header: document.Header{TrackName: "Bilster Berg", DateList: "5/30/2025"},
		Pages: []document.Page{{
			Number: 1,
			Kind:   document.PageContent,
			Left: []document.Block{
				sectionBlock(document.SectionSchedule, document.Section{
					Label: document.Bilingual{Primary: "Schedule"},
					ScheduleGroups: []document.ScheduleGroup{{
						Date:    "2025-05-30",
						Caption: "5/30/2025 • Bilster Berg",
						Entries: []document.ScheduleItem{{
							TimeRange: "09:00 – 17:00",
							Activity:  document.Bilingual{Primary: "Track Session"},
							Location:  "Main Track",
						}},
					}},
				}),
			},
			Right: []document.Block{
				{Kind: document.BlockHeader, NoBreak: true, Header: &document.Header{
					TrackName: "Bilster Berg", DateList: "5/30/2025",
				}},
			},
		}},
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name string
		doc  func() *document.Document
		want int
	}{
		{
			name: "single content page",
			doc:  sampleDoc,
			want: 1,
		},
		{
			name: "track shape adds a page",
			doc: func() *document.Document {
				doc := sampleDoc()
				doc.Pages = append(doc.Pages, document.Page{
					Number:   2,
					Kind:     document.PageTrackShape,
					ImageURL: "https://example.com/shape.png",
				})
				return doc
			},
			want: 2,
		},
		{
			name: "no-break overflow continues on a new page",
			doc: func() *document.Document {
				// three ~300pt blocks do not fit one 770pt column
				tall := func() document.Block {
					return sectionBlock(document.SectionOvertaking, document.Section{
						Label:      document.Bilingual{Primary: "Overtaking Rules"},
						Paragraphs: paragraphs(19),
					})
				}
				doc := sampleDoc()
				doc.Pages[0].Left = []document.Block{tall(), tall(), tall()}
				return doc
			},
			want: 2,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PageCount(tc.doc(), Options{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBlockMeasurementMatchesPlacement(t *testing.T) {
	opts := Options{}
	require.NoError(t, opts.applyDefaults())

	b := sectionBlock(document.SectionOvertaking, document.Section{
		Label:      document.Bilingual{Primary: "Overtaking Rules"},
		Paragraphs: paragraphs(5),
	})
	f := newFlow(&opts)
	f.startColumn(opts.Margin, 200)
	h := f.blockHeight(b)
	f.placeBlock(b)
	assert.InDelta(t, h+blockGap, f.y-opts.Margin, 0.01)
}

func TestLongColumnFlowsToNextPage(t *testing.T) {
	notes := make([]document.NoteItem, 80)
	for i := range notes {
		notes[i] = document.NoteItem{Text: document.Bilingual{Primary: "note"}}
	}
	doc := sampleDoc()
	doc.Pages[0].Right = append(doc.Pages[0].Right, document.Block{
		Kind: document.BlockSection,
		Section: &document.Section{
			Kind:  document.SectionNotes,
			Label: document.Bilingual{Primary: "Notes"},
			Notes: notes,
		},
	})

	opts := Options{}
	require.NoError(t, opts.applyDefaults())
	got, err := PageCount(doc, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	// nothing may be drawn below the printable area
	size := pageFormats[opts.PageFormat]
	for _, page := range layoutPages(doc, &opts) {
		for _, te := range page.texts {
			assert.LessOrEqual(t, te.y, size.h-opts.Margin,
				"text %q on page %d below bottom margin", te.s, page.number)
		}
	}
}

func TestWritePageSVG(t *testing.T) {
	doc := sampleDoc()
	doc.Pages = append(doc.Pages, document.Page{
		Number:   2,
		Kind:     document.PageTrackShape,
		ImageURL: "https://example.com/shape.png",
	})

	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, doc, 1, Options{Format: "svg"}))
	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Track Session")
	assert.Contains(t, out, "09:00 – 17:00")

	buf.Reset()
	require.NoError(t, WritePage(&buf, doc, 2, Options{Format: "svg"}))
	assert.Contains(t, buf.String(), "https://example.com/shape.png")

	assert.Error(t, WritePage(&buf, doc, 3, Options{Format: "svg"}))
	assert.Error(t, WritePage(&buf, doc, 0, Options{Format: "svg"}))
}

func TestWritePagePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, sampleDoc(), 1, Options{Format: "png", Scale: 2}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 595*2, img.Bounds().Dx())
	assert.Equal(t, 842*2, img.Bounds().Dy())
}

func TestExportWritesOneFilePerPage(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDoc()
	doc.Pages = append(doc.Pages, document.Page{
		Number:   2,
		Kind:     document.PageTrackShape,
		ImageURL: "https://example.com/shape.png",
	})

	paths, err := Export(doc, Options{Path: filepath.Join(dir, "out.svg")})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "out-p1.svg"), paths[0])
	assert.Equal(t, filepath.Join(dir, "out-p2.svg"), paths[1])
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestExportSinglePageKeepsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	paths, err := Export(sampleDoc(), Options{Path: path})
	require.NoError(t, err)
	require.Equal(t, []string{path}, paths)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "png signature expected")
}

func TestOptionsValidation(t *testing.T) {
	_, err := Export(sampleDoc(), Options{Path: "out.pdf", Format: "pdf"})
	assert.Error(t, err)

	_, err = Export(sampleDoc(), Options{Path: "out.svg", PageFormat: "A5"})
	assert.Error(t, err)

	_, err = Export(sampleDoc(), Options{})
	assert.Error(t, err, "path required")
}
