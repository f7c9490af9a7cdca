package booking

import (
	"context"
	"time"

	"glowbook/models"
)

const (
	slotLayout = "15:04"
	dateLayout = "2006-01-02"
)

// dayWindow resolves a staff member's working window for a calendar date.
// Start/End are time-of-day strings interpreted in the date's location.
func dayWindow(st *models.Staff, date time.Time) (time.Time, time.Time, bool) {
	day, ok := st.ScheduleFor(date)
	if !ok || !day.Available {
		return time.Time{}, time.Time{}, false
	}
	opens, err := time.Parse(slotLayout, day.Start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	closes, err := time.Parse(slotLayout, day.End)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	y, m, d := date.Date()
	loc := date.Location()
	from := time.Date(y, m, d, opens.Hour(), opens.Minute(), 0, 0, loc)
	to := time.Date(y, m, d, closes.Hour(), closes.Minute(), 0, 0, loc)
	if !to.After(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// worksOn reports whether the staff member works the given calendar date.
func worksOn(st *models.Staff, date time.Time) bool {
	day, ok := st.ScheduleFor(date)
	return ok && day.Available
}

// fitsSchedule reports whether [start, start+duration) lies entirely inside
// the staff member's working window for that day.
func fitsSchedule(st *models.Staff, start time.Time, duration time.Duration) bool {
	from, to, ok := dayWindow(st, start)
	if !ok {
		return false
	}
	end := start.Add(duration)
	return !start.Before(from) && !end.After(to)
}

// daySlots produces the bookable start times of the given duration for one
// calendar date, stepped by interval. Pure: same inputs always yield the
// same sequence. A day off, a non-positive duration or interval, or a
// duration longer than the window yields nil.
func daySlots(st *models.Staff, date time.Time, duration, interval time.Duration) []time.Time {
	if duration <= 0 || interval <= 0 {
		return nil
	}
	from, to, ok := dayWindow(st, date)
	if !ok {
		return nil
	}
	last := to.Add(-duration)
	if last.Before(from) {
		return nil
	}
	var slots []time.Time
	for t := from; !t.After(last); t = t.Add(interval) {
		slots = append(slots, t)
	}
	return slots
}

// overlaps is the half-open interval rule: [s1,e1) and [s2,e2) overlap iff
// s1 < e2 && s2 < e1. Back-to-back intervals do not overlap.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// GetDayAvailability answers the read-only availability query: whether the
// staff member works the date at all, and which start times of the given
// duration are schedule-fitting and conflict-free. It applies the same
// evaluator and overlap rule as the booking write path.
func (s *DefaultBookingService) GetDayAvailability(ctx context.Context, q models.AvailabilityQuery) (*models.DayAvailability, error) {
	date, err := time.ParseInLocation(dateLayout, q.Date, time.UTC)
	if err != nil {
		return nil, NewError(CodeValidation, "date must be YYYY-MM-DD: %q", q.Date)
	}
	if q.DurationMinutes <= 0 {
		return nil, NewError(CodeValidation, "duration must be a positive number of minutes")
	}

	st, err := s.StaffRepo.GetByID(ctx, q.StaffID)
	if err != nil {
		return nil, classifyRepoError(err, CodeStaffNotFound)
	}

	out := &models.DayAvailability{AvailableSlots: []string{}}
	if !worksOn(st, date) {
		return out, nil
	}
	out.IsAvailable = true

	duration := time.Duration(q.DurationMinutes) * time.Minute
	slots := daySlots(st, date, duration, s.Settings.SlotInterval)
	if len(slots) == 0 {
		return out, nil
	}

	// One range query for the whole day, then filter in memory.
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)
	active, err := s.BookingRepo.ListActiveForStaffRange(ctx, q.StaffID, dayStart, dayEnd)
	if err != nil {
		return nil, classifyRepoError(err, CodeStaffNotFound)
	}

	for _, slot := range slots {
		end := slot.Add(duration)
		free := true
		for _, b := range active {
			if overlaps(slot, end, b.Start, b.End) {
				free = false
				break
			}
		}
		if free {
			out.AvailableSlots = append(out.AvailableSlots, slot.Format(slotLayout))
		}
	}
	return out, nil
}
