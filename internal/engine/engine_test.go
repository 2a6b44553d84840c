package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f2re/planer-solving/internal/config"
	"github.com/f2re/planer-solving/internal/engine"
	"github.com/f2re/planer-solving/internal/model"
)

func quietEngine() *engine.Engine {
	return engine.New(nil)
}

func shortConfig() config.Config {
	cfg := config.Default()
	cfg.SolverTimeLimit = 2 * time.Second
	return cfg
}

// S1: a single trivial lesson with exactly one compatible room and teacher
// must solve and produce exactly one correctly attributed assignment.
func TestEngine_S1_TrivialSingleLesson(t *testing.T) {
	cal, slots := baseCalendarAndSlots(mustMonday())
	data := model.DataSet{
		Teachers: []model.Teacher{{ID: "t1", FirstName: "Ada", LastName: "Lovelace", MaxHoursPerWeek: 20, Seniority: 1}},
		Disciplines: []model.Discipline{
			{ID: "d1", Name: "Algorithms", GroupName: "G1", GroupSize: 20, LecturerID: "t1"},
		},
		Lessons: []model.Lesson{
			{ID: "l1", DisciplineID: "d1", Type: model.LessonLecture, LessonNumber: 1, DurationMinutes: 90, RequiredRoomType: "lecture_hall"},
		},
		Rooms:     []model.Room{{ID: "r1", Name: "Hall A", Building: "Main", Type: "lecture_hall", Capacity: 30}},
		TimeSlots: slots,
		Calendar:  cal,
	}

	res, err := quietEngine().Run(context.Background(), data, shortConfig())
	require.NoError(t, err)
	assert.Equal(t, engine.StateSolved, res.State)
	require.Len(t, res.Assignments, 1)
	assert.Equal(t, "Algorithms", res.Assignments[0].DisciplineName)
	assert.Equal(t, "Ada Lovelace", res.Assignments[0].TeacherName)
	assert.Equal(t, "Hall A", res.Assignments[0].RoomName)
}

// S2: two lessons of the same student group forced onto the single
// available global slot must be provably infeasible (no-overlap, H1).
func TestEngine_S2_ForcedConflictIsInfeasible(t *testing.T) {
	monday := mustMonday()
	cal := []model.CalendarEntry{{Date: monday, IsWorkingDay: true}}
	slots := []model.TimeSlot{
		{ID: "mon-1", DayOfWeek: time.Monday, Start: 8 * time.Hour, End: 9*time.Hour + 30*time.Minute, DurationMinutes: 90, SlotNumber: 1},
	}
	data := model.DataSet{
		Teachers: []model.Teacher{{ID: "t1", MaxHoursPerWeek: 40}},
		Disciplines: []model.Discipline{
			{ID: "d1", Name: "Algorithms", GroupName: "G1", GroupSize: 20, LecturerID: "t1"},
		},
		Lessons: []model.Lesson{
			{ID: "l1", DisciplineID: "d1", Type: model.LessonLecture, LessonNumber: 1, DurationMinutes: 90, RequiredRoomType: "lecture_hall"},
			{ID: "l2", DisciplineID: "d1", Type: model.LessonLecture, LessonNumber: 2, DurationMinutes: 90, RequiredRoomType: "lecture_hall"},
		},
		Rooms:     []model.Room{{ID: "r1", Building: "Main", Type: "lecture_hall", Capacity: 30}},
		TimeSlots: slots,
		Calendar:  cal,
	}

	cfg := shortConfig()
	cfg.SolverTimeLimit = 500 * time.Millisecond
	res, err := quietEngine().Run(context.Background(), data, cfg)
	require.Error(t, err)
	assert.Equal(t, engine.StateInfeasible, res.State)
}

// S3: with gap minimization enabled and only one admissible day carrying
// three slots, the two same-group lessons must land back-to-back (gap
// zero), not merely on some feasible pair of slots.
func TestEngine_S3_GapMinimizationPicksAdjacentSlots(t *testing.T) {
	cal, slots := singleDayThreeSlots(mustMonday())
	data := model.DataSet{
		Teachers: []model.Teacher{{ID: "t1", MaxHoursPerWeek: 40}},
		Disciplines: []model.Discipline{
			{ID: "d1", Name: "Algorithms", GroupName: "G1", GroupSize: 20, LecturerID: "t1"},
		},
		Lessons: []model.Lesson{
			{ID: "l1", DisciplineID: "d1", Type: model.LessonLecture, LessonNumber: 1, DurationMinutes: 90, RequiredRoomType: "lecture_hall"},
			{ID: "l2", DisciplineID: "d1", Type: model.LessonLecture, LessonNumber: 2, DurationMinutes: 90, RequiredRoomType: "lecture_hall"},
		},
		Rooms:     []model.Room{{ID: "r1", Building: "Main", Type: "lecture_hall", Capacity: 30}},
		TimeSlots: slots,
		Calendar:  cal,
	}

	cfg := config.Default()
	cfg.SolverTimeLimit = 3 * time.Second
	cfg.MinimizeStudentGaps = config.SoftConstraint{Enabled: true, Weight: 5}
	cfg.AvoidLateSlots = config.SoftConstraint{Enabled: false}
	cfg.MinimizeTeacherGaps = config.SoftConstraint{Enabled: false}
	cfg.BalanceWorkload = config.SoftConstraint{Enabled: false}
	cfg.MinimizeBuildingTransfer = config.SoftConstraint{Enabled: false}
	cfg.TeacherSeniorityPriority = config.SoftConstraint{Enabled: false}
	cfg.GroupConsecutiveLessons = config.SoftConstraint{Enabled: false}

	res, err := quietEngine().Run(context.Background(), data, cfg)
	require.NoError(t, err)
	assert.Equal(t, engine.StateSolved, res.State)
	require.Len(t, res.Assignments, 2)
	for _, a := range res.Assignments {
		assert.Equal(t, "G1", a.GroupName)
	}

	first, second := res.Assignments[0], res.Assignments[1]
	if second.StartTime < first.StartTime {
		first, second = second, first
	}
	assert.Equal(t, first.Date, second.Date)
	assert.Equal(t, first.EndTime, second.StartTime, "lessons must be back-to-back with zero gap")
}

// S4: a discipline has two candidate practice teachers; one is unavailable
// every weekday, so the engine must substitute the other.
func TestEngine_S4_TeacherAvailabilitySubstitution(t *testing.T) {
	cal, slots := baseCalendarAndSlots(mustMonday())
	data := model.DataSet{
		Teachers: []model.Teacher{
			{ID: "t_busy", LastName: "Busy", MaxHoursPerWeek: 40},
			{ID: "t_free", LastName: "Free", MaxHoursPerWeek: 40},
		},
		Unavailability: []model.TeacherUnavailability{
			{TeacherID: "t_busy", UnavailableDay: map[time.Weekday]bool{
				time.Monday: true, time.Tuesday: true, time.Wednesday: true, time.Thursday: true, time.Friday: true,
			}},
		},
		Disciplines: []model.Discipline{
			{ID: "d1", Name: "Databases", GroupName: "G1", GroupSize: 20, PracticeTeacherID: []string{"t_busy", "t_free"}},
		},
		Lessons: []model.Lesson{
			{ID: "l1", DisciplineID: "d1", Type: model.LessonPractice, LessonNumber: 1, DurationMinutes: 90, RequiredRoomType: "lab"},
		},
		Rooms:     []model.Room{{ID: "r1", Building: "Main", Type: "lab", Capacity: 30}},
		TimeSlots: slots,
		Calendar:  cal,
	}

	res, err := quietEngine().Run(context.Background(), data, shortConfig())
	require.NoError(t, err)
	require.Len(t, res.Assignments, 1)
	assert.NotEqual(t, "Busy", res.Assignments[0].TeacherName)
}

// S5: a teacher whose weekly cap allows zero 90-minute slots cannot take
// the one lesson that names them as sole candidate teacher: infeasible.
func TestEngine_S5_WeeklyCapInfeasibility(t *testing.T) {
	cal, slots := baseCalendarAndSlots(mustMonday())
	data := model.DataSet{
		Teachers: []model.Teacher{{ID: "t1", MaxHoursPerWeek: 1}}, // cap = (1*60)/90 = 0 slots
		Disciplines: []model.Discipline{
			{ID: "d1", Name: "Algorithms", GroupName: "G1", GroupSize: 20, LecturerID: "t1"},
		},
		Lessons: []model.Lesson{
			{ID: "l1", DisciplineID: "d1", Type: model.LessonLecture, LessonNumber: 1, DurationMinutes: 90, RequiredRoomType: "lecture_hall"},
		},
		Rooms:     []model.Room{{ID: "r1", Building: "Main", Type: "lecture_hall", Capacity: 30}},
		TimeSlots: slots,
		Calendar:  cal,
	}

	cfg := shortConfig()
	cfg.SolverTimeLimit = 500 * time.Millisecond
	res, err := quietEngine().Run(context.Background(), data, cfg)
	require.Error(t, err)
	assert.Equal(t, engine.StateInfeasible, res.State)
}

// S6: two lectures from different teachers share a single room and a
// two-slot day, so H1 forces them apart; with seniority priority enabled
// the senior teacher's lesson must win the earlier slot.
func TestEngine_S6_SeniorityPressurePicksEarlierSlotForSeniorTeacher(t *testing.T) {
	cal, slots := singleDayTwoSlots(mustMonday())
	data := model.DataSet{
		Teachers: []model.Teacher{
			{ID: "t_senior", FirstName: "Grace", LastName: "Hopper", MaxHoursPerWeek: 40, Seniority: 10},
			{ID: "t_junior", FirstName: "Lin", LastName: "Chen", MaxHoursPerWeek: 40, Seniority: 1},
		},
		Disciplines: []model.Discipline{
			{ID: "d1", Name: "Networks", GroupName: "G1", GroupSize: 20, LecturerID: "t_senior"},
			{ID: "d2", Name: "Operating Systems", GroupName: "G2", GroupSize: 20, LecturerID: "t_junior"},
		},
		Lessons: []model.Lesson{
			{ID: "l1", DisciplineID: "d1", Type: model.LessonLecture, LessonNumber: 1, DurationMinutes: 90, RequiredRoomType: "lecture_hall"},
			{ID: "l2", DisciplineID: "d2", Type: model.LessonLecture, LessonNumber: 1, DurationMinutes: 90, RequiredRoomType: "lecture_hall"},
		},
		Rooms:     []model.Room{{ID: "r1", Building: "Main", Type: "lecture_hall", Capacity: 30}},
		TimeSlots: slots,
		Calendar:  cal,
	}

	cfg := config.Default()
	cfg.SolverTimeLimit = 2 * time.Second
	cfg.TeacherSeniorityPriority = config.SoftConstraint{Enabled: true, Weight: 3}
	cfg.AvoidLateSlots = config.SoftConstraint{Enabled: false}
	cfg.MinimizeStudentGaps = config.SoftConstraint{Enabled: false}
	cfg.MinimizeTeacherGaps = config.SoftConstraint{Enabled: false}
	cfg.BalanceWorkload = config.SoftConstraint{Enabled: false}
	cfg.MinimizeBuildingTransfer = config.SoftConstraint{Enabled: false}
	cfg.GroupConsecutiveLessons = config.SoftConstraint{Enabled: false}

	res, err := quietEngine().Run(context.Background(), data, cfg)
	require.NoError(t, err)
	assert.Equal(t, engine.StateSolved, res.State)
	require.Len(t, res.Assignments, 2)

	var senior, junior model.ScheduleAssignment
	for _, a := range res.Assignments {
		switch a.TeacherName {
		case "Grace Hopper":
			senior = a
		case "Lin Chen":
			junior = a
		}
	}
	require.NotEmpty(t, senior.TeacherName, "senior teacher must be assigned")
	require.NotEmpty(t, junior.TeacherName, "junior teacher must be assigned")
	assert.Less(t, senior.StartTime, junior.StartTime, "senior teacher's lesson must start earlier")
}
