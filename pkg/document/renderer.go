package document

import (
	"fmt"
	"strings"

	"github.com/mpapenbr/trackday-instructions/pkg/model"
)

type (
	Option   func(*Renderer)
	Renderer struct {
		dateLayout string
	}
)

// WithLocale selects the short date format used for all rendered dates.
func WithLocale(locale string) Option {
	return func(r *Renderer) {
		r.dateLayout = ShortDateLayout(locale)
	}
}

func NewRenderer(opts ...Option) *Renderer {
	ret := &Renderer{dateLayout: ShortDateLayout("en")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Render produces the two page document structure for an instruction and its
// optionally resolved track. It is pure and never fails: a nil track just
// omits all track derived visuals, absent optional fields render nothing.
func (r *Renderer) Render(inst *model.Instruction, track *model.Track) *Document {
	header := r.buildHeader(inst, track)

	left := []Block{}
	if track != nil && track.LogoURL != "" {
		left = append(left, Block{Kind: BlockImage, NoBreak: true, ImageURL: track.LogoURL})
	}
	left = appendSection(left, r.buildSchedule(inst, header.TrackName), true)
	left = appendSection(left, r.buildLocations(inst), true)
	left = appendSection(left, r.buildOvertaking(inst), true)
	if footer := footerImage(inst, track); footer != "" {
		left = append(left, Block{Kind: BlockImage, NoBreak: true, ImageURL: footer})
	}

	right := []Block{{Kind: BlockHeader, Header: &header}}
	right = appendSection(right, r.buildWarnings(inst), false)
	right = appendSection(right, r.buildNotes(inst), false)

	pages := []Page{{Number: 1, Kind: PageContent, Left: left, Right: right}}
	if track != nil && track.TrackShapeURL != "" {
		pages = append(pages, Page{
			Number:   2,
			Kind:     PageTrackShape,
			ImageURL: track.TrackShapeURL,
		})
	}
	return &Document{Header: header, Pages: pages}
}

func appendSection(blocks []Block, sec *Section, noBreak bool) []Block {
	if sec == nil {
		return blocks
	}
	return append(blocks, Block{Kind: BlockSection, NoBreak: noBreak, Section: sec})
}

func (r *Renderer) buildHeader(inst *model.Instruction, track *model.Track) Header {
	trackName := inst.TrackName
	if trackName == "" && track != nil {
		trackName = track.Name
	}
	dates := SortedUniqueDates(inst.Dates)
	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, FormatDate(d, r.dateLayout))
	}
	return Header{
		TrackName:       trackName,
		InstructionName: inst.InstructionName,
		DateList:        strings.Join(formatted, ", "),
	}
}

func footerImage(inst *model.Instruction, track *model.Track) string {
	if inst.FooterImageURL != "" {
		return inst.FooterImageURL
	}
	if track != nil {
		return track.FooterImageURL
	}
	return ""
}

func label(override, override2, fallback string) Bilingual {
	ret := Bilingual{Primary: override, Secondary: override2}
	if ret.Primary == "" {
		ret.Primary = fallback
	}
	return ret
}

func (r *Renderer) buildSchedule(inst *model.Instruction, trackName string) *Section {
	if len(inst.Schedule) == 0 {
		return nil
	}
	groups := GroupSchedule(inst.Schedule)
	ret := &Section{
		Kind:  SectionSchedule,
		Label: label(inst.ScheduleLabel, inst.ScheduleLabel2, model.DefaultScheduleLabel),
	}
	for _, g := range groups {
		rg := ScheduleGroup{
			Date:    g.Date,
			Caption: r.groupCaption(g.Date, trackName, inst.InstructionName),
		}
		for _, e := range g.Entries {
			rg.Entries = append(rg.Entries, ScheduleItem{
				StartText: Bilingual{Primary: e.StartText, Secondary: e.StartText2},
				TimeRange: timeRange(e),
				Activity:  Bilingual{Primary: e.Activity, Secondary: e.Activity2},
				Location:  e.Location,
			})
		}
		ret.ScheduleGroups = append(ret.ScheduleGroups, rg)
	}
	return ret
}

// groupCaption composes the date group headline: "<date> • <trackName>
// <instructionName>". Empty parts are left out. The track name is the one
// the header shows, resolved track included.
func (r *Renderer) groupCaption(date, trackName, instructionName string) string {
	name := strings.TrimSpace(strings.Join(nonEmpty(trackName, instructionName), " "))
	parts := nonEmpty(FormatDate(date, r.dateLayout), name)
	return strings.Join(parts, " • ")
}

func nonEmpty(values ...string) []string {
	ret := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			ret = append(ret, v)
		}
	}
	return ret
}

func timeRange(e model.ScheduleEntry) string {
	if e.EndTime == "" {
		return e.StartTime
	}
	return fmt.Sprintf("%s – %s", e.StartTime, e.EndTime)
}

func (r *Renderer) buildLocations(inst *model.Instruction) *Section {
	if len(inst.Locations) == 0 {
		return nil
	}
	ret := &Section{
		Kind:  SectionLocations,
		Label: label(inst.LocationsLabel, inst.LocationsLabel2, model.DefaultLocationsLabel),
	}
	for _, l := range inst.Locations {
		ret.Locations = append(ret.Locations, LocationItem{
			Name:    Bilingual{Primary: l.Name, Secondary: l.Name2},
			Address: l.Address,
		})
	}
	return ret
}

func (r *Renderer) buildOvertaking(inst *model.Instruction) *Section {
	ret := &Section{
		Kind: SectionOvertaking,
		Label: label(inst.OvertakingRulesLabel, inst.OvertakingRulesLabel2,
			model.DefaultOvertakingLabel),
		Paragraphs: []Bilingual{
			{Primary: inst.OvertakingRules.Normalize().DisplayText()},
		},
	}
	for _, p := range []Bilingual{
		{Primary: inst.OvertakingText1, Secondary: inst.OvertakingText1Second},
		{Primary: inst.OvertakingText2, Secondary: inst.OvertakingText2Second},
	} {
		if !p.Empty() {
			ret.Paragraphs = append(ret.Paragraphs, p)
		}
	}
	return ret
}

func (r *Renderer) buildWarnings(inst *model.Instruction) *Section {
	items := []WarningItem{}
	for _, w := range inst.Warnings {
		if w.Name == "" && w.Name2 == "" && w.ImageURL == "" {
			continue
		}
		items = append(items, WarningItem{
			Name:     Bilingual{Primary: w.Name, Secondary: w.Name2},
			ImageURL: w.ImageURL,
		})
	}
	if len(items) == 0 {
		return nil
	}
	return &Section{
		Kind:     SectionWarnings,
		Label:    label(inst.WarningsLabel, inst.WarningsLabel2, model.DefaultWarningsLabel),
		Warnings: items,
	}
}

// buildNotes assembles the notes section with the pinned noise limit entry
// first, followed by the free form notes in input order.
func (r *Renderer) buildNotes(inst *model.Instruction) *Section {
	items := []NoteItem{}
	if inst.NoiseLimit != "" {
		noiseLabel := label(inst.NoiseLimitLabel, inst.NoiseLimitLabel2,
			model.DefaultNoiseLabel)
		pinned := NoteItem{Pinned: true, Text: Bilingual{
			Primary: fmt.Sprintf("%s: %s dB", noiseLabel.Primary, inst.NoiseLimit),
		}}
		if noiseLabel.Secondary != "" {
			pinned.Text.Secondary = fmt.Sprintf("%s: %s dB",
				noiseLabel.Secondary, inst.NoiseLimit)
		}
		items = append(items, pinned)
		if inst.NoiseText != "" || inst.NoiseTextSecond != "" {
			items = append(items, NoteItem{
				Pinned: true,
				Text:   Bilingual{Primary: inst.NoiseText, Secondary: inst.NoiseTextSecond},
			})
		}
	}
	for _, n := range inst.Notes {
		if n.Text == "" && n.Text2 == "" && n.ImageURL == "" {
			continue
		}
		items = append(items, NoteItem{
			Text:     Bilingual{Primary: n.Text, Secondary: n.Text2},
			ImageURL: n.ImageURL,
		})
	}
	if len(items) == 0 {
		return nil
	}
	return &Section{
		Kind:  SectionNotes,
		Label: label(inst.NotesLabel, inst.NotesLabel2, model.DefaultNotesLabel),
		Notes: items,
	}
}
