package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/smartcowork/cowork-gin/internal/model"
	"github.com/smartcowork/cowork-gin/internal/repository"
)

// CalendarService projects the externally written AI task table onto
// calendar views. The server never creates or deletes tasks; the only write
// is the applied toggle.
type CalendarService interface {
	List() ([]*model.CalendarTaskModel, error)
	Month(year int, month time.Month) (*MonthView, error)
	TasksOn(day time.Time) ([]*model.CalendarTaskModel, error)
	ToggleApplied(id string) (*model.CalendarTaskModel, error)
}

// DayCell is one day of a month view with the tasks active on it.
type DayCell struct {
	Date  string                     `json:"date"`
	Tasks []*model.CalendarTaskModel `json:"tasks"`
}

// MonthView covers every day of one calendar month.
type MonthView struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Days  []DayCell `json:"days"`
}

type calendarService struct {
	tasks    repository.CalendarRepository
	notifier ChangeNotifier
	logger   *logrus.Logger
}

// NewCalendarService creates the calendar projection service.
func NewCalendarService(tasks repository.CalendarRepository, notifier ChangeNotifier, logger *logrus.Logger) CalendarService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &calendarService{tasks: tasks, notifier: notifier, logger: logger}
}

func (s *calendarService) List() ([]*model.CalendarTaskModel, error) {
	return s.tasks.FindAll()
}

// Month builds the per-day projection for one month. A task spanning the
// month boundary appears on every day it covers inside the month; the
// [start, end] range is inclusive on both sides.
func (s *calendarService) Month(year int, month time.Month) (*MonthView, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	tasks, err := s.tasks.FindOverlapping(first, last.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	view := &MonthView{Year: year, Month: int(month), Days: make([]DayCell, 0, last.Day())}
	for d := 1; d <= last.Day(); d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
		cell := DayCell{Date: day.Format("2006-01-02"), Tasks: []*model.CalendarTaskModel{}}
		for _, task := range tasks {
			if task.ActiveOn(day) {
				cell.Tasks = append(cell.Tasks, task)
			}
		}
		view.Days = append(view.Days, cell)
	}
	return view, nil
}

// TasksOn returns the tasks active on a single day.
func (s *calendarService) TasksOn(day time.Time) ([]*model.CalendarTaskModel, error) {
	tasks, err := s.tasks.FindOverlapping(day, day.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return nil, err
	}
	active := make([]*model.CalendarTaskModel, 0, len(tasks))
	for _, task := range tasks {
		if task.ActiveOn(day) {
			active = append(active, task)
		}
	}
	return active, nil
}

// ToggleApplied flips the applied flag and returns the updated row.
func (s *calendarService) ToggleApplied(id string) (*model.CalendarTaskModel, error) {
	task, err := s.tasks.FindByID(id)
	if err != nil {
		return nil, err
	}

	task.Applied = !task.Applied
	if err := s.tasks.SetApplied(id, task.Applied); err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	s.notifier.NotifyChange("ai_analyzed_tasks", ActionUpdate)
	s.logger.WithFields(logrus.Fields{
		"task_id": id,
		"applied": task.Applied,
	}).Info("calendar task toggled")
	return task, nil
}
