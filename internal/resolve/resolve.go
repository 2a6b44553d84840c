// Package resolve computes, for each Lesson, the domain of rooms and
// teachers it may legally be assigned to, and the number of global slots
// its duration occupies. Falls back to the full candidate set (with a
// warning) when a lesson's exact requirements match nothing.
package resolve

import (
	"fmt"

	"github.com/f2re/planer-solving/internal/config"
	"github.com/f2re/planer-solving/internal/model"
)

// LessonDomain is the resolved variable domain for one lesson.
type LessonDomain struct {
	Lesson          model.Lesson
	Discipline      model.Discipline
	DurationSlots   int
	CompatibleRooms []int // indexes into the Rooms slice passed to Resolve
	CompatibleTeachers []int // indexes into the Teachers slice passed to Resolve
}

// Result is the full set of resolved domains plus any non-fatal warnings
// raised while resolving them (room/teacher fallback, pair-length mismatch).
type Result struct {
	Domains  []LessonDomain
	Warnings []string
}

// Resolve computes one LessonDomain per lesson in data.Lessons.
func Resolve(data model.DataSet, cfg config.Config) Result {
	disciplineByID := make(map[string]model.Discipline, len(data.Disciplines))
	for _, d := range data.Disciplines {
		disciplineByID[d.ID] = d
	}
	teacherIndex := make(map[string]int, len(data.Teachers))
	for i, t := range data.Teachers {
		teacherIndex[t.ID] = i
	}

	var res Result
	for _, slot := range data.TimeSlots {
		if slot.DurationMinutes != config.PairLengthMinutes {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"time slot %s duration %dm differs from the %dm pair length",
				slot.ID, slot.DurationMinutes, config.PairLengthMinutes))
		}
	}
	for _, lesson := range data.Lessons {
		discipline, ok := disciplineByID[lesson.DisciplineID]
		if !ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("lesson %s references unknown discipline %s, skipped", lesson.ID, lesson.DisciplineID))
			continue
		}

		durationSlots := ceilDiv(lesson.DurationMinutes, config.PairLengthMinutes)
		if durationSlots < 1 {
			durationSlots = 1
		}
		if lesson.DurationMinutes%config.PairLengthMinutes != 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"lesson %s duration %dm is not a multiple of the %dm pair length",
				lesson.ID, lesson.DurationMinutes, config.PairLengthMinutes))
		}

		compatRooms := compatibleRooms(data.Rooms, lesson, discipline)
		if len(compatRooms) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"lesson %s: no room matches type %q and capacity %d, falling back to all rooms",
				lesson.ID, lesson.RequiredRoomType, discipline.GroupSize))
			compatRooms = allRoomIndexes(len(data.Rooms))
		}

		candidateTeacherIDs := discipline.TeachersFor(lesson.Type)
		compatTeachers := teacherIndexesFor(candidateTeacherIDs, teacherIndex)
		if len(compatTeachers) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"lesson %s: no valid teacher candidate for type %q, falling back to all teachers",
				lesson.ID, lesson.Type))
			compatTeachers = allRoomIndexes(len(data.Teachers))
		}

		res.Domains = append(res.Domains, LessonDomain{
			Lesson:             lesson,
			Discipline:         discipline,
			DurationSlots:      durationSlots,
			CompatibleRooms:    compatRooms,
			CompatibleTeachers: compatTeachers,
		})
	}
	return res
}

func compatibleRooms(rooms []model.Room, lesson model.Lesson, discipline model.Discipline) []int {
	minCap := lesson.MinCapacity
	if minCap < discipline.GroupSize {
		minCap = discipline.GroupSize
	}
	var out []int
	for i, r := range rooms {
		if r.Capacity >= minCap && r.Type == lesson.RequiredRoomType {
			out = append(out, i)
		}
	}
	return out
}

func teacherIndexesFor(ids []string, teacherIndex map[string]int) []int {
	var out []int
	for _, id := range ids {
		if idx, ok := teacherIndex[id]; ok {
			out = append(out, idx)
		}
	}
	return out
}

func allRoomIndexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}
