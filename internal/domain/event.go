package domain

import (
	"strings"
	"time"
)

// Event represents a scheduling event ("find a common time" poll)
type Event struct {
	ID                   int64
	ShortCode            string
	Name                 string
	StartTime            *string // 12-часовая метка, например "9 am" (nil для событий на весь день)
	EndTime              *string
	TimeIncrementMinutes *int
	IsFullDayEvent       bool
	Timezone             string
	CreatorID            *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasTimeGrid returns true if the event renders a per-time-of-day grid
func (e *Event) HasTimeGrid() bool {
	return !e.IsFullDayEvent && e.StartTime != nil && e.EndTime != nil
}

// IncrementMinutes returns the configured grid step or the default
func (e *Event) IncrementMinutes() int {
	if e.TimeIncrementMinutes == nil || *e.TimeIncrementMinutes <= 0 {
		return DefaultTimeIncrementMinutes
	}
	return *e.TimeIncrementMinutes
}

// EventDate represents one candidate day of an event.
// Ровно одно из полей Date/Weekday заполнено: конкретная дата или день недели.
type EventDate struct {
	ID      int64
	EventID int64
	Date    *time.Time
	Weekday *string // трехбуквенный токен в нижнем регистре ("mon")
}

// DayToken returns the canonical grid column token for this date entry:
// an ISO date for specific dates, a lowercase weekday token otherwise.
// Returns false when the entry carries neither.
func (d *EventDate) DayToken() (string, bool) {
	if d.Date != nil {
		return d.Date.Format(DateFormat), true
	}
	if d.Weekday != nil && *d.Weekday != "" {
		return strings.ToLower(*d.Weekday), true
	}
	return "", false
}

// Participant represents a person responding to an event
type Participant struct {
	ID        string // uuid
	EventID   int64
	Name      string
	Color     string
	UserID    *string // nil для гостевых участников
	CreatedAt time.Time
}

// TimeSlotRecord is one raw availability mark: a participant is free at
// (event date, hour, minute). Many records share a triple, one per participant.
type TimeSlotRecord struct {
	ID            int64
	EventID       int64
	EventDateID   int64
	ParticipantID string
	Hour          int
	Minute        int
	CreatedAt     time.Time
}
