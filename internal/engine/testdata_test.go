package engine_test

import (
	"time"

	"github.com/f2re/planer-solving/internal/model"
)

// baseCalendarAndSlots returns a Monday-to-Friday working week (no
// holidays) with three 90-minute slots per day, starting the given Monday.
func baseCalendarAndSlots(monday time.Time) ([]model.CalendarEntry, []model.TimeSlot) {
	var cal []model.CalendarEntry
	for i := 0; i < 5; i++ {
		cal = append(cal, model.CalendarEntry{
			Date:         monday.AddDate(0, 0, i),
			IsWorkingDay: true,
		})
	}

	var slots []model.TimeSlot
	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	for _, wd := range weekdays {
		for slotNum := 1; slotNum <= 3; slotNum++ {
			start := time.Duration(8+(slotNum-1)*2) * time.Hour
			slots = append(slots, model.TimeSlot{
				ID:              wd.String() + "-" + itoa(slotNum),
				DayOfWeek:       wd,
				Start:           start,
				End:             start + 90*time.Minute,
				DurationMinutes: 90,
				SlotNumber:      slotNum,
			})
		}
	}
	return cal, slots
}

// singleDayThreeSlots returns one working day (the given Monday) with
// three contiguous 90-minute slots and no other admissible date, so two
// lessons scheduled on it can be tested for intra-day slot adjacency.
func singleDayThreeSlots(monday time.Time) ([]model.CalendarEntry, []model.TimeSlot) {
	cal := []model.CalendarEntry{{Date: monday, IsWorkingDay: true}}

	var slots []model.TimeSlot
	for slotNum := 1; slotNum <= 3; slotNum++ {
		start := 8*time.Hour + time.Duration(slotNum-1)*90*time.Minute
		slots = append(slots, model.TimeSlot{
			ID:              "mon-" + itoa(slotNum),
			DayOfWeek:       time.Monday,
			Start:           start,
			End:             start + 90*time.Minute,
			DurationMinutes: 90,
			SlotNumber:      slotNum,
		})
	}
	return cal, slots
}

// singleDayTwoSlots returns one working day with exactly two 90-minute
// slots, so two single-room lessons are forced apart by H1 into a
// strict earlier/later ordering a soft term can then discriminate.
func singleDayTwoSlots(monday time.Time) ([]model.CalendarEntry, []model.TimeSlot) {
	cal := []model.CalendarEntry{{Date: monday, IsWorkingDay: true}}

	var slots []model.TimeSlot
	for slotNum := 1; slotNum <= 2; slotNum++ {
		start := time.Duration(8+(slotNum-1)*2) * time.Hour
		slots = append(slots, model.TimeSlot{
			ID:              "mon-" + itoa(slotNum),
			DayOfWeek:       time.Monday,
			Start:           start,
			End:             start + 90*time.Minute,
			DurationMinutes: 90,
			SlotNumber:      slotNum,
		})
	}
	return cal, slots
}

func itoa(n int) string {
	digits := "0123456789"
	if n < 10 {
		return string(digits[n])
	}
	return string(digits[n/10]) + string(digits[n%10])
}

func mustMonday() time.Time {
	t, _ := time.Parse("2006-01-02", "2026-08-03") // a Monday
	return t
}
