package document

// The types in this file describe the rendered page tree. All three
// presentation adapters (inline preview, full page preview, export) consume
// exactly this structure, only page chrome differs between them.

// Bilingual is a primary language value with an optional secondary language
// counterpart. An empty secondary value renders nothing.
type Bilingual struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

func (b Bilingual) Empty() bool {
	return b.Primary == "" && b.Secondary == ""
}

type PageKind string

const (
	PageContent    PageKind = "content"
	PageTrackShape PageKind = "trackShape"
)

type Document struct {
	Header Header `json:"header"`
	Pages  []Page `json:"pages"`
}

// Header is the document headline: track name, instruction name and the
// formatted ascending date list.
type Header struct {
	TrackName       string `json:"trackName"`
	InstructionName string `json:"instructionName,omitempty"`
	DateList        string `json:"dateList"`
}

type Page struct {
	Number int      `json:"number"`
	Kind   PageKind `json:"kind"`

	// content page: two column grid
	Left  []Block `json:"left,omitempty"`
	Right []Block `json:"right,omitempty"`

	// track shape page: single full bleed image
	ImageURL string `json:"imageUrl,omitempty"`
}

type BlockKind string

const (
	BlockImage   BlockKind = "image"
	BlockHeader  BlockKind = "header"
	BlockSection BlockKind = "section"
)

// Block is one layout unit of a content page column. Blocks flagged NoBreak
// must never be split across a print page boundary.
type Block struct {
	Kind     BlockKind `json:"kind"`
	NoBreak  bool      `json:"noBreak,omitempty"`
	ImageURL string    `json:"imageUrl,omitempty"`
	Header   *Header   `json:"header,omitempty"`
	Section  *Section  `json:"section,omitempty"`
}

type SectionKind string

const (
	SectionSchedule   SectionKind = "schedule"
	SectionLocations  SectionKind = "locations"
	SectionOvertaking SectionKind = "overtaking"
	SectionNotes      SectionKind = "notes"
	SectionWarnings   SectionKind = "warnings"
)

// Section is a labeled content section. Exactly one of the content slices is
// populated, matching Kind.
type Section struct {
	Kind  SectionKind `json:"kind"`
	Label Bilingual   `json:"label"`

	ScheduleGroups []ScheduleGroup `json:"scheduleGroups,omitempty"`
	Locations      []LocationItem  `json:"locations,omitempty"`
	Paragraphs     []Bilingual     `json:"paragraphs,omitempty"`
	Notes          []NoteItem      `json:"notes,omitempty"`
	Warnings       []WarningItem   `json:"warnings,omitempty"`
}

// ScheduleGroup is one calendar date of the schedule with its composed
// caption ("<date> • <trackName> <instructionName>").
type ScheduleGroup struct {
	Date    string         `json:"date"`
	Caption string         `json:"caption"`
	Entries []ScheduleItem `json:"entries"`
}

// ScheduleItem is one rendered schedule line. When StartText is non empty it
// is rendered bold with the time range appended inline, otherwise only the
// bare time range is shown.
type ScheduleItem struct {
	StartText Bilingual `json:"startText,omitempty"`
	TimeRange string    `json:"timeRange"`
	Activity  Bilingual `json:"activity"`
	Location  string    `json:"location,omitempty"`
}

type LocationItem struct {
	Name    Bilingual `json:"name"`
	Address string    `json:"address,omitempty"`
}

// NoteItem is one entry of the notes section. The pinned noise limit entry
// always renders first.
type NoteItem struct {
	Text     Bilingual `json:"text,omitempty"`
	ImageURL string    `json:"imageUrl,omitempty"`
	Pinned   bool      `json:"pinned,omitempty"`
}

type WarningItem struct {
	Name     Bilingual `json:"name,omitempty"`
	ImageURL string    `json:"imageUrl,omitempty"`
}
