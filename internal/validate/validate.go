// Package validate checks a DataSet against the engine's input invariants
// before the pipeline builds a model from it, aggregating every violation
// found rather than stopping at the first.
package validate

import (
	"fmt"

	"github.com/f2re/planer-solving/internal/config"
	"github.com/f2re/planer-solving/internal/engineerr"
	"github.com/f2re/planer-solving/internal/model"
)

// Validate returns a non-nil *engineerr.ValidationErrors (wrapping
// engineerr.ErrInputInvariantViolated) if data fails any structural
// invariant; returns a slice of non-fatal warnings alongside it.
func Validate(data model.DataSet) (warnings []string, err error) {
	verr := &engineerr.ValidationErrors{}

	teacherIDs := make(map[string]model.Teacher, len(data.Teachers))
	for _, t := range data.Teachers {
		if t.ID == "" {
			verr.Add("teacher record with empty id")
			continue
		}
		if _, dup := teacherIDs[t.ID]; dup {
			verr.Add("duplicate teacher id %q", t.ID)
		}
		teacherIDs[t.ID] = t
		if t.MaxHoursPerWeek <= 0 {
			verr.Add("teacher %q has non-positive max_hours_per_week", t.ID)
		}
	}

	disciplineIDs := make(map[string]model.Discipline, len(data.Disciplines))
	for _, d := range data.Disciplines {
		if d.ID == "" {
			verr.Add("discipline record with empty id")
			continue
		}
		disciplineIDs[d.ID] = d
		if d.LecturerID != "" {
			if _, ok := teacherIDs[d.LecturerID]; !ok {
				verr.Add("discipline %q references unknown lecturer %q", d.ID, d.LecturerID)
			}
		}
		for _, tid := range d.PracticeTeacherID {
			if _, ok := teacherIDs[tid]; !ok {
				verr.Add("discipline %q references unknown practice teacher %q", d.ID, tid)
			}
		}
		for _, tid := range d.LabTeacherID {
			if _, ok := teacherIDs[tid]; !ok {
				verr.Add("discipline %q references unknown lab teacher %q", d.ID, tid)
			}
		}
		if d.GroupSize <= 0 {
			verr.Add("discipline %q has non-positive group_size", d.ID)
		}
	}

	for _, l := range data.Lessons {
		if l.ID == "" {
			verr.Add("lesson record with empty id")
			continue
		}
		if _, ok := disciplineIDs[l.DisciplineID]; !ok {
			verr.Add("lesson %q references unknown discipline %q", l.ID, l.DisciplineID)
		}
		if l.DurationMinutes <= 0 {
			verr.Add("lesson %q has non-positive duration_minutes", l.ID)
		}
	}

	for _, u := range data.Unavailability {
		if _, ok := teacherIDs[u.TeacherID]; !ok {
			verr.Add("teacher_unavailability references unknown teacher %q", u.TeacherID)
		}
	}

	for _, r := range data.Rooms {
		if r.Capacity <= 0 {
			verr.Add("room %q has non-positive capacity", r.ID)
		}
	}

	if len(data.TimeSlots) == 0 {
		verr.Add("no time slots defined")
	}

	if verr.HasViolations() {
		return nil, verr
	}

	warnings = append(warnings, weeklyCapWarnings(data)...)
	return warnings, nil
}

// weeklyCapWarnings flags, per teacher, when the sum of every lesson type
// that could plausibly be assigned to them already exceeds their weekly
// slot cap even before any scheduling decision is made — a non-fatal
// early signal that H4 is likely to render the problem infeasible.
func weeklyCapWarnings(data model.DataSet) []string {
	disciplineByID := make(map[string]model.Discipline, len(data.Disciplines))
	for _, d := range data.Disciplines {
		disciplineByID[d.ID] = d
	}

	durationByTeacher := make(map[string]int)
	for _, l := range data.Lessons {
		d, ok := disciplineByID[l.DisciplineID]
		if !ok {
			continue
		}
		slots := (l.DurationMinutes + config.PairLengthMinutes - 1) / config.PairLengthMinutes
		for _, tid := range d.TeachersFor(l.Type) {
			durationByTeacher[tid] += slots
		}
	}

	var warnings []string
	for _, t := range data.Teachers {
		cap := (t.MaxHoursPerWeek * 60) / config.PairLengthMinutes
		if durationByTeacher[t.ID] > cap {
			warnings = append(warnings, fmt.Sprintf(
				"teacher %q: candidate lesson load (%d slots) exceeds weekly cap (%d slots); scheduling may be infeasible",
				t.ID, durationByTeacher[t.ID], cap))
		}
	}
	return warnings
}
