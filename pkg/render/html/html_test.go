package html

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/trackday-instructions/pkg/document"
	"github.com/mpapenbr/trackday-instructions/pkg/model"
)

func sampleDoc(t *testing.T) *document.Document {
	t.Helper()
	inst := &model.Instruction{
		InstructionName: "Trackday June",
		TrackName:       "Bilster Berg",
		Dates:           []string{"2025-06-01", "2025-05-30"},
		OvertakingRules: model.OvertakingLeftSideOnly,
		NoiseLimit:      "95",
		Schedule: []model.ScheduleEntry{
			{Date: "2025-05-30", StartTime: "09:00", EndTime: "17:00", Activity: "Track Session"},
		},
		Locations: []model.Location{{Name: "Reception", Address: "Paddock 1"}},
		Notes:     []model.Note{{Text: "Keep the pit lane clean"}},
		Warnings:  []model.Warning{{Name: "Blind crest T4"}},
	}
	track := &model.Track{
		Name:          "Bilster Berg",
		TrackShapeURL: "https://img.example.com/shape.png",
	}
	return document.NewRenderer().Render(inst, track)
}

// extract content between <body> tags; the document markup of the full page
// and export chromes must be identical, only the surrounding chrome differs.
func body(t *testing.T, markup []byte) string {
	t.Helper()
	s := string(markup)
	start := strings.Index(s, "<body>")
	end := strings.Index(s, "</body>")
	require.Greater(t, start, -1)
	require.Greater(t, end, start)
	return s[start+len("<body>") : end]
}

func TestRenderChromesShareDocumentMarkup(t *testing.T) {
	doc := sampleDoc(t)

	fullPage, err := Render(doc, ChromeFullPage)
	require.NoError(t, err)
	export, err := Render(doc, ChromeExport)
	require.NoError(t, err)
	inline, err := Render(doc, ChromeInline)
	require.NoError(t, err)

	assert.Equal(t, body(t, fullPage), body(t, export))

	// inline is a fragment around the same document markup
	assert.Contains(t, string(inline), strings.TrimSpace(body(t, fullPage)))
	for _, want := range []string{"Schedule", "Track Session", "Blind crest T4"} {
		assert.Contains(t, string(inline), want)
	}
	assert.NotContains(t, string(inline), "<body>")
}

func TestRenderExportChromeHasPrintRules(t *testing.T) {
	export, err := Render(sampleDoc(t), ChromeExport)
	require.NoError(t, err)
	assert.Contains(t, string(export), "size:A4 portrait")
	assert.Contains(t, string(export), "page-break-after:always")
	assert.Contains(t, string(export), "no-break")
}

func TestRenderContent(t *testing.T) {
	markup, err := Render(sampleDoc(t), ChromeFullPage)
	require.NoError(t, err)
	s := string(markup)

	// sorted ascending in the header date list
	assert.Less(t, strings.Index(s, "5/30/2025"), strings.Index(s, "6/1/2025"))
	assert.Contains(t, s, "09:00 – 17:00")
	assert.Contains(t, s, "Important Locations")
	assert.Contains(t, s, "Overtaking Rules")
	assert.Contains(t, s, "Left Side Only")
	assert.Contains(t, s, "Noise Limit: 95 dB")
	assert.Contains(t, s, "https://img.example.com/shape.png")
}

func TestRenderOmitsEmptySecondary(t *testing.T) {
	markup, err := Render(sampleDoc(t), ChromeFullPage)
	require.NoError(t, err)
	// the sample has no secondary values outside the label defaults
	assert.NotContains(t, string(markup), `<span class="secondary"></span>`)
}

func TestRenderEscapesUserContent(t *testing.T) {
	inst := &model.Instruction{
		TrackName:       "<script>alert(1)</script>",
		OvertakingRules: model.OvertakingEitherSide,
	}
	doc := document.NewRenderer().Render(inst, nil)
	markup, err := Render(doc, ChromeFullPage)
	require.NoError(t, err)
	assert.NotContains(t, string(markup), "<script>alert(1)</script>")
}
