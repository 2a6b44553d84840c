// Package compile translates a resolved cpmodel.Model into backend
// constraints and objective terms: the four hard constraints (resource
// non-overlap, day integrity, teacher availability, weekly teacher load)
// and the seven weighted soft terms. This is the only package that adds
// constraints and objective terms to an internal/backend model.
package compile

import (
	"fmt"
	"sort"

	"github.com/f2re/planer-solving/internal/backend"
	"github.com/f2re/planer-solving/internal/calendar"
	"github.com/f2re/planer-solving/internal/config"
	"github.com/f2re/planer-solving/internal/cpmodel"
	"github.com/f2re/planer-solving/internal/model"
)

// slotRange is a contiguous [start, end) global-slot range, used for both
// day and week boundaries.
type slotRange struct {
	start, end int
}

// dayIndexer maps a start slot value to the day it falls within, using the
// same day boundaries the day-integrity constraint was built from.
type dayIndexer struct {
	bounds []slotRange
}

func newDayIndexer(bounds []slotRange) dayIndexer {
	return dayIndexer{bounds: bounds}
}

func (idx dayIndexer) dayOf(start int) int {
	d := sort.Search(len(idx.bounds), func(i int) bool { return idx.bounds[i].end > start })
	if d >= len(idx.bounds) {
		return len(idx.bounds) - 1
	}
	return d
}

// Compile adds every hard constraint and every enabled soft term from cfg
// to b, given the variable set m and the linearised calendar it indexes into.
func Compile(b *backend.Backend, linear calendar.Linearized, m cpmodel.Model, data model.DataSet, cfg config.Config) {
	days := dayBoundsAll(linear)
	weeks := weekBoundsAll(linear)
	dIdx := newDayIndexer(days)

	addDayIntegrity(b, m, days)
	teacherBools := addResourceNoOverlap(b, m)
	addTeacherAvailability(b, m, data, linear, teacherBools)
	addTeacherWeeklyLoad(b, m, data, weeks, teacherBools)

	if cfg.AvoidLateSlots.Enabled {
		addAvoidLateSlots(b, m, cfg.AvoidLateSlots.Weight)
	}
	if cfg.MinimizeStudentGaps.Enabled {
		addGapTerm(b, m, dIdx, groupKey, cfg.MinimizeStudentGaps.Weight)
	}
	if cfg.MinimizeTeacherGaps.Enabled {
		addGapTerm(b, m, dIdx, teacherKeyFunc(teacherBools), cfg.MinimizeTeacherGaps.Weight)
	}
	if cfg.GroupConsecutiveLessons.Enabled {
		// Alias of the student-gap term: tightening gaps is exactly what
		// pushes a group's lessons together, so no separate constraint exists.
		addGapTerm(b, m, dIdx, groupKey, cfg.GroupConsecutiveLessons.Weight)
	}
	if cfg.BalanceWorkload.Enabled {
		addBalanceWorkload(b, m, dIdx, cfg.BalanceWorkload.Weight)
	}
	if cfg.MinimizeBuildingTransfer.Enabled {
		addBuildingTransitions(b, m, data, dIdx, teacherBools, cfg.MinimizeBuildingTransfer.Weight)
	}
	if cfg.TeacherSeniorityPriority.Enabled {
		addSeniorityPriority(b, m, data, teacherBools, cfg.TeacherSeniorityPriority.Weight)
	}
}

func dayBoundsAll(linear calendar.Linearized) []slotRange {
	out := make([]slotRange, len(linear.DayStart))
	for d := range linear.DayStart {
		s, e := linear.DayBounds(d)
		out[d] = slotRange{start: s, end: e}
	}
	return out
}

func weekBoundsAll(linear calendar.Linearized) map[model.WeekKey]slotRange {
	out := make(map[model.WeekKey]slotRange)
	for i, gs := range linear.Slots {
		wb, ok := out[gs.WeekKey]
		if !ok {
			out[gs.WeekKey] = slotRange{start: i, end: i + 1}
			continue
		}
		wb.end = i + 1
		out[gs.WeekKey] = wb
	}
	return out
}

// addDayIntegrity creates, per lesson, one reified-in-range boolean per
// admissible day (true iff the lesson both starts and fully ends within
// that day) and requires exactly one to hold.
func addDayIntegrity(b *backend.Backend, m cpmodel.Model, days []slotRange) {
	for _, lv := range m.Lessons {
		duration := lv.Domain.DurationSlots
		bools := make([]backend.BoolID, len(days))
		for d, db := range days {
			hi := db.end - duration
			if hi < db.start {
				hi = db.start - 1 // empty range: no start value can fit this day
			}
			bools[d] = b.ReifiedInRange(lv.Start, db.start, hi)
		}
		b.AddExactlyOne(bools)
	}
}

// addResourceNoOverlap builds, for every compatible room and teacher, an
// optional interval present exactly when that lesson is assigned it, and
// forbids overlap within each room, each teacher, and each student group.
// Returns, per lesson, the map from teacher index to its presence boolean.
func addResourceNoOverlap(b *backend.Backend, m cpmodel.Model) []map[int]backend.BoolID {
	roomIntervals := make(map[int][]backend.IntervalID)
	teacherIntervals := make(map[int][]backend.IntervalID)
	groupIntervals := make(map[string][]backend.IntervalID)

	teacherBools := make([]map[int]backend.BoolID, len(m.Lessons))

	for li, lv := range m.Lessons {
		for _, r := range lv.Domain.CompatibleRooms {
			presence := b.ReifiedEquals(lv.Room, r)
			iv := b.NewOptionalInterval(lv.Start, lv.Domain.DurationSlots, presence, fmt.Sprintf("room_%d_%s", r, lv.Domain.Lesson.ID))
			roomIntervals[r] = append(roomIntervals[r], iv)
		}

		teacherBools[li] = make(map[int]backend.BoolID, len(lv.Domain.CompatibleTeachers))
		for _, t := range lv.Domain.CompatibleTeachers {
			presence := b.ReifiedEquals(lv.Teacher, t)
			teacherBools[li][t] = presence
			iv := b.NewOptionalInterval(lv.Start, lv.Domain.DurationSlots, presence, fmt.Sprintf("teacher_%d_%s", t, lv.Domain.Lesson.ID))
			teacherIntervals[t] = append(teacherIntervals[t], iv)
		}

		groupIntervals[lv.Domain.Discipline.GroupName] = append(groupIntervals[lv.Domain.Discipline.GroupName], lv.Interval)
	}

	for _, r := range sortedIntKeys(roomIntervals) {
		b.AddNoOverlap(roomIntervals[r])
	}
	for _, t := range sortedIntKeys(teacherIntervals) {
		b.AddNoOverlap(teacherIntervals[t])
	}
	for _, g := range sortedStringKeys(groupIntervals) {
		b.AddNoOverlap(groupIntervals[g])
	}
	return teacherBools
}

// sortedIntKeys returns a map's keys in ascending order, so constraint
// emission does not depend on Go's randomized map iteration order.
func sortedIntKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// sortedStringKeys returns a map's keys in ascending order, so constraint
// emission does not depend on Go's randomized map iteration order.
func sortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// addTeacherAvailability forbids a lesson's interval from covering any
// global slot the assigned teacher is unavailable for: for every such
// slot i, "assigned to this teacher" and "occupies slot i" cannot both hold.
func addTeacherAvailability(b *backend.Backend, m cpmodel.Model, data model.DataSet, linear calendar.Linearized, teacherBools []map[int]backend.BoolID) {
	teacherIdx := make(map[string]int, len(data.Teachers))
	for i, t := range data.Teachers {
		teacherIdx[t.ID] = i
	}

	for _, unav := range data.Unavailability {
		tIdx, ok := teacherIdx[unav.TeacherID]
		if !ok {
			continue
		}
		for i, gs := range linear.Slots {
			if !unav.Matches(gs.Date) {
				continue
			}
			for li, lv := range m.Lessons {
				presence, ok := teacherBools[li][tIdx]
				if !ok {
					continue
				}
				duration := lv.Domain.DurationSlots
				lo := i - duration + 1
				if lo < 0 {
					lo = 0
				}
				occupies := b.ReifiedInRange(lv.Start, lo, i)
				b.AddLinearLE([]backend.Term{
					backend.BoolTerm(presence, 1),
					backend.BoolTerm(occupies, 1),
				}, 1)
			}
		}
	}
}

// addTeacherWeeklyLoad caps, for every teacher and every ISO week, the
// total assigned-slots*duration to floor(max_hours_per_week*60/90).
func addTeacherWeeklyLoad(b *backend.Backend, m cpmodel.Model, data model.DataSet, weeks map[model.WeekKey]slotRange, teacherBools []map[int]backend.BoolID) {
	weekKeys := make([]model.WeekKey, 0, len(weeks))
	for k := range weeks {
		weekKeys = append(weekKeys, k)
	}
	sort.Slice(weekKeys, func(i, j int) bool {
		if weekKeys[i].Year != weekKeys[j].Year {
			return weekKeys[i].Year < weekKeys[j].Year
		}
		return weekKeys[i].Week < weekKeys[j].Week
	})

	for tIdx, teacher := range data.Teachers {
		weeklyCap := (teacher.MaxHoursPerWeek * 60) / config.PairLengthMinutes
		for _, wk := range weekKeys {
			wb := weeks[wk]
			var terms []backend.Term
			for li, lv := range m.Lessons {
				presence, ok := teacherBools[li][tIdx]
				if !ok {
					continue
				}
				inWeek := b.ReifiedInRange(lv.Start, wb.start, wb.end-lv.Domain.DurationSlots)
				both := b.BoolAnd([]backend.BoolID{presence, inWeek})
				terms = append(terms, backend.BoolTerm(both, float64(lv.Domain.DurationSlots)))
			}
			if len(terms) > 0 {
				b.AddLinearLE(terms, float64(weeklyCap))
			}
		}
	}
}

func addAvoidLateSlots(b *backend.Backend, m cpmodel.Model, weight float64) {
	for _, lv := range m.Lessons {
		b.AddObjectiveTerm(backend.VarTerm(lv.Start, -weight))
	}
}

// entityKey identifies, for one lesson in one evaluated solution, the
// entity (student group or assigned teacher) the gap/balance terms group
// by; ok is false when the lesson has no resolvable entity in this solution.
type entityKey func(values []int, bools []bool, li int, lv cpmodel.LessonVars) (name string, ok bool)

func groupKey(values []int, bools []bool, li int, lv cpmodel.LessonVars) (string, bool) {
	return lv.Domain.Discipline.GroupName, true
}

func teacherKeyFunc(teacherBools []map[int]backend.BoolID) entityKey {
	return func(values []int, bools []bool, li int, lv cpmodel.LessonVars) (string, bool) {
		for t, bid := range teacherBools[li] {
			if bools[bid] {
				return fmt.Sprintf("teacher#%d", t), true
			}
		}
		return "", false
	}
}

type daySpan struct {
	first, last, duration int
	any                    bool
}

// addGapTerm penalizes, for every entity (student group or teacher) and
// every admissible day, the idle time between that entity's first and
// last lesson of the day minus the lessons' own duration.
func addGapTerm(b *backend.Backend, m cpmodel.Model, dIdx dayIndexer, key entityKey, weight float64) {
	b.AddObjectiveFunc(func(values []int, bools []bool) float64 {
		spans := make(map[string]map[int]*daySpan)

		for li, lv := range m.Lessons {
			name, ok := key(values, bools, li, lv)
			if !ok {
				continue
			}
			start := values[lv.Start]
			duration := lv.Domain.DurationSlots
			end := start + duration
			day := dIdx.dayOf(start)

			days, ok := spans[name]
			if !ok {
				days = make(map[int]*daySpan)
				spans[name] = days
			}
			sp, ok := days[day]
			if !ok {
				sp = &daySpan{}
				days[day] = sp
			}
			if !sp.any || start < sp.first {
				sp.first = start
			}
			if !sp.any || end > sp.last {
				sp.last = end
			}
			sp.duration += duration
			sp.any = true
		}

		var penalty float64
		for _, days := range spans {
			for _, sp := range days {
				if gap := (sp.last - sp.first) - sp.duration; gap > 0 {
					penalty += weight * float64(gap)
				}
			}
		}
		return -penalty
	})
}

// addBalanceWorkload penalizes, per student group, its single busiest day
// (in slot-duration units) — pushing load away from any one heavy day.
func addBalanceWorkload(b *backend.Backend, m cpmodel.Model, dIdx dayIndexer, weight float64) {
	b.AddObjectiveFunc(func(values []int, bools []bool) float64 {
		type key struct {
			group string
			day   int
		}
		daily := make(map[key]int)
		for _, lv := range m.Lessons {
			d := dIdx.dayOf(values[lv.Start])
			k := key{group: lv.Domain.Discipline.GroupName, day: d}
			daily[k] += lv.Domain.DurationSlots
		}
		maxByGroup := make(map[string]int)
		for k, total := range daily {
			if total > maxByGroup[k.group] {
				maxByGroup[k.group] = total
			}
		}
		var penalty float64
		for _, mx := range maxByGroup {
			penalty += weight * float64(mx)
		}
		return -penalty
	})
}

// addBuildingTransitions penalizes a teacher having lessons in more than
// one building on the same day, once per extra building beyond the first.
func addBuildingTransitions(b *backend.Backend, m cpmodel.Model, data model.DataSet, dIdx dayIndexer, teacherBools []map[int]backend.BoolID, weight float64) {
	roomBuilding := make(map[int]string, len(data.Rooms))
	for i, r := range data.Rooms {
		roomBuilding[i] = r.Building
	}

	b.AddObjectiveFunc(func(values []int, bools []bool) float64 {
		type key struct {
			teacher, day int
		}
		buildingsByTeacherDay := make(map[key]map[string]bool)
		for li, lv := range m.Lessons {
			t, ok := assignedTeacher(teacherBools[li], bools)
			if !ok {
				continue
			}
			d := dIdx.dayOf(values[lv.Start])
			k := key{teacher: t, day: d}
			set, ok := buildingsByTeacherDay[k]
			if !ok {
				set = make(map[string]bool)
				buildingsByTeacherDay[k] = set
			}
			set[roomBuilding[values[lv.Room]]] = true
		}
		var penalty float64
		for _, set := range buildingsByTeacherDay {
			if len(set) > 1 {
				penalty += weight * float64(len(set)-1)
			}
		}
		return -penalty
	})
}

// addSeniorityPriority rewards assigning earlier global slots to more
// senior teachers: penalty grows with seniority * start slot index.
func addSeniorityPriority(b *backend.Backend, m cpmodel.Model, data model.DataSet, teacherBools []map[int]backend.BoolID, weight float64) {
	seniority := make(map[int]int, len(data.Teachers))
	for i, t := range data.Teachers {
		seniority[i] = t.Seniority
	}
	b.AddObjectiveFunc(func(values []int, bools []bool) float64 {
		var penalty float64
		for li, lv := range m.Lessons {
			t, ok := assignedTeacher(teacherBools[li], bools)
			if !ok {
				continue
			}
			penalty += weight * float64(seniority[t]) * float64(values[lv.Start])
		}
		return -penalty
	})
}

func assignedTeacher(bids map[int]backend.BoolID, bools []bool) (int, bool) {
	for t, bid := range bids {
		if bools[bid] {
			return t, true
		}
	}
	return 0, false
}
