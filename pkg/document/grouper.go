package document

import (
	"sort"

	"github.com/mpapenbr/trackday-instructions/pkg/model"
)

// DateGroup holds the schedule entries of one calendar date in their
// original order.
type DateGroup struct {
	Date    string // raw date value, may be empty
	Entries []model.ScheduleEntry
}

// GroupSchedule groups entries by their date value. Groups are ordered by
// ascending calendar date, entries keep their relative input order. Entries
// without a parseable date form their own group(s) and sort last. Only dates
// present in the input produce a group.
func GroupSchedule(entries []model.ScheduleEntry) []DateGroup {
	byDate := map[string]int{}
	groups := []DateGroup{}
	for _, e := range entries {
		idx, ok := byDate[e.Date]
		if !ok {
			idx = len(groups)
			byDate[e.Date] = idx
			groups = append(groups, DateGroup{Date: e.Date})
		}
		groups[idx].Entries = append(groups[idx].Entries, e)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return dateLess(groups[i].Date, groups[j].Date)
	})
	return groups
}
