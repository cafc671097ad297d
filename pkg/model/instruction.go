package model

import "github.com/gofrs/uuid/v5"

// DbInstruction is a stored final instruction record.
type DbInstruction struct {
	ID   uuid.UUID   `json:"id"`
	Data Instruction `json:"data"`
}

// OvertakingRule is the closed set of overtaking policies an operator can
// pick. Unknown values are normalized at the adapter boundary, they never
// reach a renderer.
type OvertakingRule string

const (
	OvertakingLeftSideOnly  OvertakingRule = "leftSideOnly"
	OvertakingRightSideOnly OvertakingRule = "rightSideOnly"
	OvertakingEitherSide    OvertakingRule = "eitherSide"
)

// Normalize maps unknown values to OvertakingEitherSide.
func (r OvertakingRule) Normalize() OvertakingRule {
	switch r {
	case OvertakingLeftSideOnly, OvertakingRightSideOnly, OvertakingEitherSide:
		return r
	default:
		return OvertakingEitherSide
	}
}

// DisplayText is the English caption used when no free text is provided.
func (r OvertakingRule) DisplayText() string {
	switch r {
	case OvertakingLeftSideOnly:
		return "Left Side Only"
	case OvertakingRightSideOnly:
		return "Right Side Only"
	default:
		return "Either Side"
	}
}

type ScheduleEntry struct {
	Date       string `json:"date"`
	StartText  string `json:"startText,omitempty"`
	StartText2 string `json:"startText2,omitempty"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime,omitempty"`
	Activity   string `json:"activity"`
	Activity2  string `json:"activity2,omitempty"`
	Location   string `json:"location,omitempty"`
}

type Location struct {
	Name    string `json:"name"`
	Name2   string `json:"name2,omitempty"`
	Address string `json:"address"`
}

type Note struct {
	Text     string `json:"text,omitempty"`
	Text2    string `json:"text2,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type Warning struct {
	Name     string `json:"name,omitempty"`
	Name2    string `json:"name2,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Instruction is the final instruction document as kept in the store.
// All label fields are optional overrides, empty means the English default.
//
//nolint:lll // struct tags
type Instruction struct {
	InstructionName string   `json:"instructionName"`
	TrackID         string   `json:"trackId"`
	TrackName       string   `json:"trackName"` // snapshot at save time, not re-synced
	Dates           []string `json:"dates"`     // ISO dates, unique, unordered at rest

	OvertakingRules       OvertakingRule `json:"overtakingRules"`
	OvertakingRulesLabel  string         `json:"overtakingRulesLabel,omitempty"`
	OvertakingRulesLabel2 string         `json:"overtakingRulesLabel2,omitempty"`
	OvertakingText1       string         `json:"overtakingText1,omitempty"`
	OvertakingText1Second string         `json:"overtakingText1Second,omitempty"`
	OvertakingText2       string         `json:"overtakingText2,omitempty"`
	OvertakingText2Second string         `json:"overtakingText2Second,omitempty"`

	NoiseLimit       string `json:"noiseLimit"`
	NoiseLimitLabel  string `json:"noiseLimitLabel,omitempty"`
	NoiseLimitLabel2 string `json:"noiseLimitLabel2,omitempty"`
	NoiseText        string `json:"noiseText,omitempty"`
	NoiseTextSecond  string `json:"noiseTextSecond,omitempty"`

	ScheduleLabel  string          `json:"scheduleLabel,omitempty"`
	ScheduleLabel2 string          `json:"scheduleLabel2,omitempty"`
	Schedule       []ScheduleEntry `json:"schedule"`

	LocationsLabel  string     `json:"locationsLabel,omitempty"`
	LocationsLabel2 string     `json:"locationsLabel2,omitempty"`
	Locations       []Location `json:"locations"`

	NotesLabel  string `json:"notesLabel,omitempty"`
	NotesLabel2 string `json:"notesLabel2,omitempty"`
	Notes       []Note `json:"notes"`

	WarningsLabel  string    `json:"warningsLabel,omitempty"`
	WarningsLabel2 string    `json:"warningsLabel2,omitempty"`
	Warnings       []Warning `json:"warnings"`

	FooterImageURL string `json:"footerImageUrl,omitempty"`
}

// English defaults for the section labels.
const (
	DefaultScheduleLabel   = "Schedule"
	DefaultLocationsLabel  = "Important Locations"
	DefaultOvertakingLabel = "Overtaking Rules"
	DefaultNotesLabel      = "Additional Notes"
	DefaultWarningsLabel   = "Track Warnings"
	DefaultNoiseLabel      = "Noise Limit"
)

// WithEditingDefaults returns a copy where every empty sequence carries one
// placeholder row so the edit form always shows at least one line.
func (i Instruction) WithEditingDefaults() Instruction {
	if len(i.Schedule) == 0 {
		i.Schedule = []ScheduleEntry{{
			StartTime: "09:00",
			EndTime:   "17:00",
			Activity:  "Track Session",
			Location:  "Main Track",
		}}
	}
	if len(i.Locations) == 0 {
		i.Locations = []Location{{Name: "Reception"}}
	}
	if len(i.Notes) == 0 {
		i.Notes = []Note{{}}
	}
	if len(i.Warnings) == 0 {
		i.Warnings = []Warning{{}}
	}
	return i
}
