package application

import (
	"fmt"

	"github.com/parchados/parchados-services/api/internal/places/domain"
)

// recordToPlace maps one wire record into the domain. It fails on records
// the app cannot represent (missing id, unparseable schedule times); unknown
// enum names degrade to their defaults instead of failing.
func recordToPlace(r Record) (domain.Place, error) {
	if r.ID == "" {
		return domain.Place{}, fmt.Errorf("registro sin id")
	}

	schedules := make([]domain.Schedule, 0, len(r.Schedules))
	for _, s := range r.Schedules {
		schedule, err := scheduleFromRecord(s)
		if err != nil {
			return domain.Place{}, err
		}
		schedules = append(schedules, schedule)
	}

	return domain.Place{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Address:         r.Address,
		City:            domain.CityFromString(r.City),
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		Images:          append([]string{}, r.Images...),
		PhoneNumber:     r.PhoneNumber,
		Category:        domain.CategoryFromString(r.Type),
		Schedules:       schedules,
		CreatedByUserID: r.CreatedByUserID,
		CreatedAt:       r.CreatedAt,
		Status:          domain.StatusFromString(r.Status),
	}, nil
}

func scheduleFromRecord(s ScheduleRecord) (domain.Schedule, error) {
	day, err := domain.ParseWeekday(s.Day)
	if err != nil {
		return domain.Schedule{}, err
	}
	open, err := domain.ParseClockTime(s.Open)
	if err != nil {
		return domain.Schedule{}, err
	}
	closeAt, err := domain.ParseClockTime(s.Close)
	if err != nil {
		return domain.Schedule{}, err
	}
	return domain.Schedule{Day: day, Open: open, Close: closeAt}, nil
}

func scheduleToRecord(s domain.Schedule) ScheduleRecord {
	return ScheduleRecord{
		Day:   domain.WeekdayName(s.Day),
		Open:  s.Open.String(),
		Close: s.Close.String(),
	}
}
