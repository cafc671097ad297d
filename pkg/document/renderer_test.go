package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/trackday-instructions/pkg/model"
)

func sampleTrack() *model.Track {
	return &model.Track{
		Name:          "Bilster Berg",
		NoiseLimit:    95,
		Location:      "Bad Driburg",
		BuiltYear:     2013,
		Length:        4.2,
		Corners:       19,
		LogoURL:       "https://img.example.com/logo.png",
		TrackShapeURL: "https://img.example.com/shape.png",
	}
}

func sampleInstruction() *model.Instruction {
	return &model.Instruction{
		InstructionName: "Trackday June",
		TrackID:         "some-id",
		TrackName:       "Bilster Berg",
		Dates:           []string{"2025-06-01", "2025-05-30"},
		OvertakingRules: model.OvertakingLeftSideOnly,
		NoiseLimit:      "95",
		Schedule: []model.ScheduleEntry{
			{Date: "2025-06-01", StartTime: "09:00", EndTime: "17:00", Activity: "Track Session", Location: "Main Track"},
			{Date: "2025-05-30", StartTime: "08:30", Activity: "Briefing", Activity2: "Einweisung"},
		},
		Locations: []model.Location{
			{Name: "Reception", Name2: "Empfang", Address: "Paddock 1"},
		},
		Notes: []model.Note{
			{Text: "Keep the pit lane clean"},
		},
		Warnings: []model.Warning{
			{Name: "Blind crest T4", ImageURL: "https://img.example.com/flag.png"},
		},
	}
}

func findSection(blocks []Block, kind SectionKind) *Section {
	for _, b := range blocks {
		if b.Kind == BlockSection && b.Section.Kind == kind {
			return b.Section
		}
	}
	return nil
}

func TestRenderPageCount(t *testing.T) {
	r := NewRenderer()
	inst := sampleInstruction()

	withShape := r.Render(inst, sampleTrack())
	require.Len(t, withShape.Pages, 2)
	assert.Equal(t, PageTrackShape, withShape.Pages[1].Kind)
	assert.Equal(t, "https://img.example.com/shape.png", withShape.Pages[1].ImageURL)

	noShape := sampleTrack()
	noShape.TrackShapeURL = ""
	assert.Len(t, r.Render(inst, noShape).Pages, 1)

	// unresolved track: no second page, no track visuals
	assert.Len(t, r.Render(inst, nil).Pages, 1)
}

func TestRenderUnresolvedTrackKeepsInstructionContent(t *testing.T) {
	doc := NewRenderer().Render(sampleInstruction(), nil)

	page := doc.Pages[0]
	for _, b := range page.Left {
		assert.NotEqual(t, BlockImage, b.Kind, "no track derived image blocks")
	}
	require.NotNil(t, findSection(page.Left, SectionSchedule))
	require.NotNil(t, findSection(page.Left, SectionLocations))
	require.NotNil(t, findSection(page.Left, SectionOvertaking))
	require.NotNil(t, findSection(page.Right, SectionWarnings))
	require.NotNil(t, findSection(page.Right, SectionNotes))
	assert.Equal(t, "Bilster Berg", doc.Header.TrackName)
}

func TestRenderColumnLayout(t *testing.T) {
	doc := NewRenderer().Render(sampleInstruction(), sampleTrack())
	page := doc.Pages[0]

	// left column: logo, schedule, locations, overtaking - all no-break
	require.GreaterOrEqual(t, len(page.Left), 4)
	assert.Equal(t, BlockImage, page.Left[0].Kind)
	assert.Equal(t, SectionSchedule, page.Left[1].Section.Kind)
	assert.Equal(t, SectionLocations, page.Left[2].Section.Kind)
	assert.Equal(t, SectionOvertaking, page.Left[3].Section.Kind)
	for _, b := range page.Left {
		assert.True(t, b.NoBreak)
	}

	// right column: header, warnings, notes
	require.Len(t, page.Right, 3)
	assert.Equal(t, BlockHeader, page.Right[0].Kind)
	assert.Equal(t, SectionWarnings, page.Right[1].Section.Kind)
	assert.Equal(t, SectionNotes, page.Right[2].Section.Kind)
}

func TestRenderScheduleGroupOrderAndCaption(t *testing.T) {
	doc := NewRenderer(WithLocale("en-US")).Render(sampleInstruction(), sampleTrack())
	sched := findSection(doc.Pages[0].Left, SectionSchedule)
	require.NotNil(t, sched)
	require.Len(t, sched.ScheduleGroups, 2)

	assert.Equal(t, "2025-05-30", sched.ScheduleGroups[0].Date)
	assert.Equal(t, "2025-06-01", sched.ScheduleGroups[1].Date)
	assert.Equal(t, "5/30/2025 • Bilster Berg Trackday June",
		sched.ScheduleGroups[0].Caption)
}

func TestRenderScheduleCaptionUsesResolvedTrackName(t *testing.T) {
	inst := sampleInstruction()
	inst.TrackName = ""
	doc := NewRenderer(WithLocale("en-US")).Render(inst, sampleTrack())

	// captions show the same track name as the header, snapshot or resolved
	assert.Equal(t, "Bilster Berg", doc.Header.TrackName)
	sched := findSection(doc.Pages[0].Left, SectionSchedule)
	require.NotNil(t, sched)
	assert.Equal(t, "5/30/2025 • Bilster Berg Trackday June",
		sched.ScheduleGroups[0].Caption)
}

func TestRenderScheduleTimeRange(t *testing.T) {
	doc := NewRenderer().Render(sampleInstruction(), nil)
	sched := findSection(doc.Pages[0].Left, SectionSchedule)
	require.NotNil(t, sched)

	// entry without end time renders the bare start time
	assert.Equal(t, "08:30", sched.ScheduleGroups[0].Entries[0].TimeRange)
	// entry with end time renders the range
	assert.Equal(t, "09:00 – 17:00", sched.ScheduleGroups[1].Entries[0].TimeRange)
}

func TestRenderDateList(t *testing.T) {
	r := NewRenderer(WithLocale("en-US"))
	doc := r.Render(sampleInstruction(), nil)
	assert.Equal(t, "5/30/2025, 6/1/2025", doc.Header.DateList)

	empty := sampleInstruction()
	empty.Dates = []string{}
	assert.Equal(t, "", r.Render(empty, nil).Header.DateList)
}

func TestRenderNotesPinnedNoiseFirst(t *testing.T) {
	doc := NewRenderer().Render(sampleInstruction(), nil)
	notes := findSection(doc.Pages[0].Right, SectionNotes)
	require.NotNil(t, notes)
	require.Len(t, notes.Notes, 2)
	assert.True(t, notes.Notes[0].Pinned)
	assert.Equal(t, "Noise Limit: 95 dB", notes.Notes[0].Text.Primary)
	assert.Equal(t, "Keep the pit lane clean", notes.Notes[1].Text.Primary)
}

func TestRenderNoteOmitsEmptyOptionalParts(t *testing.T) {
	inst := sampleInstruction()
	inst.NoiseLimit = ""
	inst.Notes = []model.Note{{Text: "A", Text2: "", ImageURL: ""}}
	doc := NewRenderer().Render(inst, nil)

	notes := findSection(doc.Pages[0].Right, SectionNotes)
	require.NotNil(t, notes)
	require.Len(t, notes.Notes, 1)
	assert.Equal(t, "A", notes.Notes[0].Text.Primary)
	assert.Empty(t, notes.Notes[0].Text.Secondary)
	assert.Empty(t, notes.Notes[0].ImageURL)
}

func TestRenderSectionLabels(t *testing.T) {
	inst := sampleInstruction()
	doc := NewRenderer().Render(inst, nil)
	sched := findSection(doc.Pages[0].Left, SectionSchedule)
	assert.Equal(t, Bilingual{Primary: "Schedule"}, sched.Label)

	inst.ScheduleLabel = "Zeitplan"
	inst.ScheduleLabel2 = "Schedule"
	doc = NewRenderer().Render(inst, nil)
	sched = findSection(doc.Pages[0].Left, SectionSchedule)
	assert.Equal(t, Bilingual{Primary: "Zeitplan", Secondary: "Schedule"}, sched.Label)
}

func TestRenderOvertakingNormalizesUnknownRule(t *testing.T) {
	inst := sampleInstruction()
	inst.OvertakingRules = "somethingElse"
	doc := NewRenderer().Render(inst, nil)
	ot := findSection(doc.Pages[0].Left, SectionOvertaking)
	require.NotNil(t, ot)
	assert.Equal(t, "Either Side", ot.Paragraphs[0].Primary)
}

func TestRenderEmptySectionsOmitted(t *testing.T) {
	inst := &model.Instruction{
		TrackName:       "Somewhere",
		Dates:           []string{},
		OvertakingRules: model.OvertakingEitherSide,
		Schedule:        []model.ScheduleEntry{},
		Locations:       []model.Location{},
		Notes:           []model.Note{},
		Warnings:        []model.Warning{},
	}
	doc := NewRenderer().Render(inst, nil)
	page := doc.Pages[0]

	assert.Nil(t, findSection(page.Left, SectionSchedule))
	assert.Nil(t, findSection(page.Left, SectionLocations))
	assert.NotNil(t, findSection(page.Left, SectionOvertaking))
	assert.Nil(t, findSection(page.Right, SectionWarnings))
	assert.Nil(t, findSection(page.Right, SectionNotes))
}

func TestRenderWarningGrid(t *testing.T) {
	inst := sampleInstruction()
	inst.Warnings = append(inst.Warnings, model.Warning{}, model.Warning{Name2: "Schikane"})
	doc := NewRenderer().Render(inst, nil)
	warn := findSection(doc.Pages[0].Right, SectionWarnings)
	require.NotNil(t, warn)
	// fully empty rows are skipped
	require.Len(t, warn.Warnings, 2)
	assert.Equal(t, "https://img.example.com/flag.png", warn.Warnings[0].ImageURL)
	assert.Equal(t, "Schikane", warn.Warnings[1].Name.Secondary)
}

func TestRenderFooterImageFallback(t *testing.T) {
	inst := sampleInstruction()
	track := sampleTrack()
	track.FooterImageURL = "https://img.example.com/track-footer.png"

	doc := NewRenderer().Render(inst, track)
	left := doc.Pages[0].Left
	last := left[len(left)-1]
	assert.Equal(t, BlockImage, last.Kind)
	assert.Equal(t, "https://img.example.com/track-footer.png", last.ImageURL)

	inst.FooterImageURL = "https://img.example.com/event-footer.png"
	doc = NewRenderer().Render(inst, track)
	left = doc.Pages[0].Left
	assert.Equal(t, "https://img.example.com/event-footer.png", left[len(left)-1].ImageURL)
}
