// Package ingest loads a model.DataSet from a directory of on-disk JSON
// files — a convenience for cmd/timetable; the engine API itself only
// ever takes already-parsed model.DataSet values.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/f2re/planer-solving/internal/model"
)

// jsonTeacher mirrors model.Teacher in the on-disk wire shape.
type jsonTeacher struct {
	ID              string `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	MaxHoursPerWeek int    `json:"max_hours_per_week"`
	Seniority       int    `json:"seniority"`
}

type jsonUnavailability struct {
	TeacherID       string   `json:"teacher_id"`
	StartDate       string   `json:"start_date,omitempty"`
	EndDate         string   `json:"end_date,omitempty"`
	UnavailableDays []string `json:"unavailable_days,omitempty"`
}

type jsonDiscipline struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	GroupName         string   `json:"group_name"`
	GroupSize         int      `json:"group_size"`
	LecturerID        string   `json:"lecturer_id"`
	PracticeTeacherID []string `json:"practice_teacher_ids"`
	LabTeacherID      []string `json:"lab_teacher_ids"`
}

type jsonLesson struct {
	ID               string `json:"id"`
	DisciplineID     string `json:"discipline_id"`
	Type             string `json:"lesson_type"`
	LessonNumber     int    `json:"lesson_number"`
	Topic            string `json:"topic"`
	DurationMinutes  int    `json:"duration_minutes"`
	RequiredRoomType string `json:"required_room_type"`
	MinCapacity      int    `json:"min_capacity"`
}

type jsonRoom struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Building string   `json:"building"`
	Type     string   `json:"type"`
	Capacity int      `json:"capacity"`
	Tags     []string `json:"tags"`
}

type jsonTimeSlot struct {
	ID              string `json:"id"`
	DayOfWeek       string `json:"day_of_week"`
	StartMinutes    int    `json:"start_minutes"`
	EndMinutes      int    `json:"end_minutes"`
	DurationMinutes int    `json:"duration_minutes"`
	SlotNumber      int    `json:"slot_number"`
}

type jsonCalendarEntry struct {
	Date         string `json:"date"`
	IsHoliday    bool   `json:"is_holiday"`
	IsWorkingDay bool   `json:"is_working_day"`
}

// LoadDataSet reads teachers.json, unavailability.json, disciplines.json,
// lessons.json, rooms.json, timeslots.json, and calendar.json from dir.
// Every file except calendar.json and timeslots.json may be absent (an
// empty collection results); calendar.json and timeslots.json are required.
func LoadDataSet(dir string) (model.DataSet, error) {
	var teachers []jsonTeacher
	if err := readJSONOptional(filepath.Join(dir, "teachers.json"), &teachers); err != nil {
		return model.DataSet{}, err
	}
	var unav []jsonUnavailability
	if err := readJSONOptional(filepath.Join(dir, "unavailability.json"), &unav); err != nil {
		return model.DataSet{}, err
	}
	var disciplines []jsonDiscipline
	if err := readJSONOptional(filepath.Join(dir, "disciplines.json"), &disciplines); err != nil {
		return model.DataSet{}, err
	}
	var lessons []jsonLesson
	if err := readJSONOptional(filepath.Join(dir, "lessons.json"), &lessons); err != nil {
		return model.DataSet{}, err
	}
	var rooms []jsonRoom
	if err := readJSONOptional(filepath.Join(dir, "rooms.json"), &rooms); err != nil {
		return model.DataSet{}, err
	}
	var slots []jsonTimeSlot
	if err := readJSONRequired(filepath.Join(dir, "timeslots.json"), &slots); err != nil {
		return model.DataSet{}, err
	}
	var cal []jsonCalendarEntry
	if err := readJSONRequired(filepath.Join(dir, "calendar.json"), &cal); err != nil {
		return model.DataSet{}, err
	}

	data := model.DataSet{
		Teachers:    make([]model.Teacher, len(teachers)),
		Disciplines: make([]model.Discipline, len(disciplines)),
		Lessons:     make([]model.Lesson, len(lessons)),
		Rooms:       make([]model.Room, len(rooms)),
		TimeSlots:   make([]model.TimeSlot, len(slots)),
		Calendar:    make([]model.CalendarEntry, len(cal)),
	}

	for i, t := range teachers {
		data.Teachers[i] = model.Teacher{
			ID: t.ID, FirstName: t.FirstName, LastName: t.LastName,
			MaxHoursPerWeek: t.MaxHoursPerWeek, Seniority: t.Seniority,
		}
	}
	for _, u := range unav {
		rec, err := convertUnavailability(u)
		if err != nil {
			return model.DataSet{}, err
		}
		data.Unavailability = append(data.Unavailability, rec)
	}
	for i, d := range disciplines {
		data.Disciplines[i] = model.Discipline{
			ID: d.ID, Name: d.Name, GroupName: d.GroupName, GroupSize: d.GroupSize,
			LecturerID: d.LecturerID, PracticeTeacherID: d.PracticeTeacherID, LabTeacherID: d.LabTeacherID,
		}
	}
	for i, l := range lessons {
		data.Lessons[i] = model.Lesson{
			ID: l.ID, DisciplineID: l.DisciplineID, Type: model.LessonType(l.Type),
			LessonNumber: l.LessonNumber, Topic: l.Topic, DurationMinutes: l.DurationMinutes,
			RequiredRoomType: l.RequiredRoomType, MinCapacity: l.MinCapacity,
		}
	}
	for i, r := range rooms {
		data.Rooms[i] = model.Room{ID: r.ID, Name: r.Name, Building: r.Building, Type: r.Type, Capacity: r.Capacity, Tags: r.Tags}
	}
	for i, s := range slots {
		day, err := parseWeekday(s.DayOfWeek)
		if err != nil {
			return model.DataSet{}, fmt.Errorf("timeslots.json[%d]: %w", i, err)
		}
		data.TimeSlots[i] = model.TimeSlot{
			ID: s.ID, DayOfWeek: day,
			Start: time.Duration(s.StartMinutes) * time.Minute,
			End:   time.Duration(s.EndMinutes) * time.Minute,
			DurationMinutes: s.DurationMinutes, SlotNumber: s.SlotNumber,
		}
	}
	for i, c := range cal {
		date, err := time.Parse("2006-01-02", c.Date)
		if err != nil {
			return model.DataSet{}, fmt.Errorf("calendar.json[%d]: %w", i, err)
		}
		data.Calendar[i] = model.CalendarEntry{Date: date, IsHoliday: c.IsHoliday, IsWorkingDay: c.IsWorkingDay}
	}

	return data, nil
}

func convertUnavailability(u jsonUnavailability) (model.TeacherUnavailability, error) {
	rec := model.TeacherUnavailability{TeacherID: u.TeacherID}
	if u.StartDate != "" && u.EndDate != "" {
		start, err := time.Parse("2006-01-02", u.StartDate)
		if err != nil {
			return rec, fmt.Errorf("unavailability.json: %w", err)
		}
		end, err := time.Parse("2006-01-02", u.EndDate)
		if err != nil {
			return rec, fmt.Errorf("unavailability.json: %w", err)
		}
		rec.StartDate = &start
		rec.EndDate = &end
	}
	if len(u.UnavailableDays) > 0 {
		rec.UnavailableDay = make(map[time.Weekday]bool, len(u.UnavailableDays))
		for _, name := range u.UnavailableDays {
			day, err := parseWeekday(name)
			if err != nil {
				return rec, fmt.Errorf("unavailability.json: %w", err)
			}
			rec.UnavailableDay[day] = true
		}
	}
	return rec, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", name)
}

func readJSONOptional(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(b, v)
}

func readJSONRequired(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return json.Unmarshal(b, v)
}
