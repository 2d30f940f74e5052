package services

import (
	"strconv"
	"strings"
	"time"

	"snapagenda-backend/models"
)

const slotMinutes = 30

// BookedInterval is an existing, non-cancelled appointment occupying
// part of the day.
type BookedInterval struct {
	Start           time.Time
	DurationMinutes int
}

// WeekdayKey returns the lowercase English weekday name used as the
// operating-hours map key.
func WeekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// AvailableSlots computes the bookable half-hour start times of a date.
// Slot generation runs from the open hour truncated to the hour up to
// the close hour, exclusive; an inactive or unconfigured weekday, or a
// misconfigured open >= close, yields nothing. Slots overlapping a
// booked interval (extended by the buffer) are removed.
func AvailableSlots(hours map[string]models.DayHours, date time.Time, booked []BookedInterval, bufferMinutes int) []string {
	day, ok := hours[WeekdayKey(date)]
	if !ok || !day.Active {
		return nil
	}

	openH := hourOf(day.Open)
	closeH := hourOf(day.Close)
	if openH < 0 || closeH < 0 || openH >= closeH {
		return nil
	}

	var slots []string
	for h := openH; h < closeH; h++ {
		for _, m := range []int{0, 30} {
			start := time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
			if !overlapsAny(start, booked, bufferMinutes) {
				slots = append(slots, start.Format("15:04"))
			}
		}
	}
	return slots
}

func hourOf(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return -1
	}
	return h
}

func overlapsAny(slotStart time.Time, booked []BookedInterval, bufferMinutes int) bool {
	slotEnd := slotStart.Add(slotMinutes * time.Minute)
	for _, b := range booked {
		duration := b.DurationMinutes
		if duration <= 0 {
			duration = slotMinutes
		}
		blockedEnd := b.Start.Add(time.Duration(duration+bufferMinutes) * time.Minute)
		if slotStart.Before(blockedEnd) && slotEnd.After(b.Start) {
			return true
		}
	}
	return false
}
