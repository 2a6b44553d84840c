// Package cpmodel allocates the backend decision variables for every
// lesson: a start slot, a room, a teacher, and the interval tying them
// together. It never adds constraints — that is internal/compile's job.
package cpmodel

import (
	"fmt"

	"github.com/f2re/planer-solving/internal/backend"
	"github.com/f2re/planer-solving/internal/calendar"
	"github.com/f2re/planer-solving/internal/resolve"
)

// LessonVars is the set of backend variables representing one lesson's
// placement: which global slot it starts at, which room and teacher serve
// it, and the interval those imply.
type LessonVars struct {
	Domain   resolve.LessonDomain
	Start    backend.VarID
	Room     backend.VarID
	Teacher  backend.VarID
	Interval backend.IntervalID
}

// Model is the fully allocated variable set for one engine run.
type Model struct {
	Lessons        []LessonVars
	NumGlobalSlots int
}

// Build allocates one Start/Room/Teacher/Interval quadruple per resolved
// lesson domain. Start ranges over [0, NumGlobalSlots-duration], so every
// lesson fits within the linearised calendar.
func Build(b *backend.Backend, linear calendar.Linearized, domains []resolve.LessonDomain) (Model, error) {
	numSlots := len(linear.Slots)
	m := Model{NumGlobalSlots: numSlots}

	for _, dom := range domains {
		maxStart := numSlots - dom.DurationSlots
		if maxStart < 0 {
			return Model{}, fmt.Errorf("lesson %s requires %d consecutive slots but only %d exist", dom.Lesson.ID, dom.DurationSlots, numSlots)
		}

		start := b.NewIntVar(0, maxStart, "start_"+dom.Lesson.ID)
		room := b.NewIntVarFromDomain(dom.CompatibleRooms, "room_"+dom.Lesson.ID)
		teacher := b.NewIntVarFromDomain(dom.CompatibleTeachers, "teacher_"+dom.Lesson.ID)
		interval := b.NewInterval(start, dom.DurationSlots, "interval_"+dom.Lesson.ID)

		m.Lessons = append(m.Lessons, LessonVars{
			Domain:   dom,
			Start:    start,
			Room:     room,
			Teacher:  teacher,
			Interval: interval,
		})
	}
	return m, nil
}
