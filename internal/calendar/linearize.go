// Package calendar linearises a CalendarEntry list and a TimeSlot list
// into one dense, chronologically ordered sequence of global slots — the
// address space every lesson's start variable indexes into.
package calendar

import (
	"sort"

	"github.com/f2re/planer-solving/internal/engineerr"
	"github.com/f2re/planer-solving/internal/model"
)

// Linearized is the result of linearising a calendar against a set of
// time slots: the dense global slot sequence plus lookup indexes derived
// from it.
type Linearized struct {
	Slots []model.GlobalSlot

	// DayStart maps a DayIndex to the first global slot index of that day.
	DayStart []int
}

// Linearize filters admissible calendar dates, sorts them chronologically,
// and concatenates each date's time slots (sorted by SlotNumber, filtered
// to the date's weekday) into one global sequence. Returns
// engineerr.ErrNoWorkingDays if no admissible date remains.
func Linearize(entries []model.CalendarEntry, slots []model.TimeSlot) (Linearized, error) {
	admissible := make([]model.CalendarEntry, 0, len(entries))
	for _, e := range entries {
		if e.Admissible() {
			admissible = append(admissible, e)
		}
	}
	if len(admissible) == 0 {
		return Linearized{}, engineerr.Wrap(engineerr.ErrNoWorkingDays, "calendar linearization")
	}

	sort.Slice(admissible, func(i, j int) bool {
		return admissible[i].Date.Before(admissible[j].Date)
	})

	byWeekday := make(map[string][]model.TimeSlot)
	for _, s := range slots {
		key := s.DayOfWeek.String()
		byWeekday[key] = append(byWeekday[key], s)
	}
	for k := range byWeekday {
		day := byWeekday[k]
		sort.Slice(day, func(i, j int) bool { return day[i].SlotNumber < day[j].SlotNumber })
		byWeekday[k] = day
	}

	var out Linearized
	for _, entry := range admissible {
		daySlots := byWeekday[entry.Date.Weekday().String()]
		if len(daySlots) == 0 {
			continue
		}
		dayIdx := len(out.DayStart)
		out.DayStart = append(out.DayStart, len(out.Slots))
		year, week := entry.Date.ISOWeek()
		for _, slot := range daySlots {
			out.Slots = append(out.Slots, model.GlobalSlot{
				Date:     entry.Date,
				Slot:     slot,
				DayIndex: dayIdx,
				WeekKey:  model.WeekKey{Year: year, Week: week},
			})
		}
	}

	if len(out.Slots) == 0 {
		return Linearized{}, engineerr.Wrap(engineerr.ErrNoWorkingDays, "calendar linearization: no time slots matched any admissible weekday")
	}
	return out, nil
}

// DayBounds returns the [start, end) global slot range for a DayIndex.
func (l Linearized) DayBounds(dayIndex int) (start, end int) {
	start = l.DayStart[dayIndex]
	if dayIndex+1 < len(l.DayStart) {
		end = l.DayStart[dayIndex+1]
	} else {
		end = len(l.Slots)
	}
	return start, end
}
