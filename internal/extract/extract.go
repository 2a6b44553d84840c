// Package extract converts a solved backend.Solution into the final
// ScheduleAssignment records, sorted by (date, start time, group name).
package extract

import (
	"fmt"
	"sort"

	"github.com/f2re/planer-solving/internal/backend"
	"github.com/f2re/planer-solving/internal/calendar"
	"github.com/f2re/planer-solving/internal/cpmodel"
	"github.com/f2re/planer-solving/internal/model"
)

// Extract reads every lesson's assigned start/room/teacher out of sol and
// builds its ScheduleAssignment record.
func Extract(sol backend.Solution, linear calendar.Linearized, m cpmodel.Model, data model.DataSet) []model.ScheduleAssignment {
	out := make([]model.ScheduleAssignment, 0, len(m.Lessons))
	for _, lv := range m.Lessons {
		startVal := sol.Value(lv.Start)
		duration := lv.Domain.DurationSlots
		roomIdx := sol.Value(lv.Room)
		teacherIdx := sol.Value(lv.Teacher)

		startSlot := linear.Slots[startVal]
		endSlot := linear.Slots[startVal+duration-1]
		room := data.Rooms[roomIdx]
		teacher := data.Teachers[teacherIdx]

		out = append(out, model.ScheduleAssignment{
			WeekNumber:     startSlot.WeekKey.Week,
			Date:           startSlot.Date,
			DayOfWeek:      startSlot.Slot.DayOfWeek,
			StartTime:      startSlot.Slot.Start,
			EndTime:        endSlot.Slot.End,
			SlotNumber:     startSlot.Slot.SlotNumber,
			DisciplineName: lv.Domain.Discipline.Name,
			LessonType:     lv.Domain.Lesson.Type,
			Topic:          lv.Domain.Lesson.Topic,
			GroupName:      lv.Domain.Discipline.GroupName,
			TeacherName:    teacher.FullName(),
			RoomName:       room.Name,
			Building:       room.Building,
			LessonID:       fmt.Sprintf("%s_%s_%d", lv.Domain.Discipline.ID, lv.Domain.Lesson.Type, lv.Domain.Lesson.LessonNumber),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].GroupName < out[j].GroupName
	})
	return out
}
