package models

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

// Request модели

// Increment шаг временной сетки в минутах. В теле запроса принимает
// как число минут, так и строку длительности из формы ("30 min", "60").
type Increment int

// UnmarshalJSON разбирает число минут или строку длительности
func (i *Increment) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		minutes, err := types.ParseIncrement(label)
		if err != nil {
			return err
		}
		*i = Increment(minutes)
		return nil
	}

	var minutes int
	if err := json.Unmarshal(data, &minutes); err != nil {
		return err
	}
	*i = Increment(minutes)
	return nil
}

// Minutes возвращает шаг в минутах
func (i Increment) Minutes() int {
	return int(i)
}

// CreateEventRequest запрос на создание события
type CreateEventRequest struct {
	Name           string     `json:"name"`
	Days           []string   `json:"days"`                // токены дней: ISO даты или дни недели
	StartTime      *string    `json:"startTime,omitempty"` // 12-часовая метка, например "9 am"
	EndTime        *string    `json:"endTime,omitempty"`
	TimeIncrement  *Increment `json:"timeIncrement,omitempty"`
	IsFullDayEvent bool       `json:"isFullDayEvent,omitempty"`
	Timezone       string     `json:"timezone,omitempty"`
	CreatorName    string     `json:"creatorName"`
	CreatorUserID  *string    `json:"creatorUserId,omitempty"`
}

// AddParticipantRequest запрос на присоединение участника к событию
type AddParticipantRequest struct {
	Name   string  `json:"name"`
	UserID *string `json:"userId,omitempty"`
}

// Response модели

// ParticipantResponse ответ с данными участника
type ParticipantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	UserID    *string   `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TimeSlotResponse одна сырая отметка доступности: участник свободен в слоте
type TimeSlotResponse struct {
	SlotID        string `json:"slotId"`
	ParticipantID string `json:"participantId"`
}

// EventResponse ответ с данными события
type EventResponse struct {
	ShortCode            string   `json:"shortCode"`
	Name                 string   `json:"name"`
	Days                 []string `json:"days"`
	StartTime            *string  `json:"startTime,omitempty"`
	EndTime              *string  `json:"endTime,omitempty"`
	TimeIncrementMinutes int      `json:"timeIncrementMinutes"`
	IsFullDayEvent       bool     `json:"isFullDayEvent"`
	Timezone             string   `json:"timezone,omitempty"`

	Participants []ParticipantResponse `json:"participants"`
	TimeSlots    []TimeSlotResponse    `json:"timeSlots"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateEventResponse ответ на создание события: само событие плюс
// участник-создатель, от имени которого пойдут первые отметки
type CreateEventResponse struct {
	Event   EventResponse       `json:"event"`
	Creator ParticipantResponse `json:"creator"`
}

// Методы конвертации

// FromDomainParticipant конвертирует domain модель участника в DTO
func FromDomainParticipant(p *domain.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:        p.ID,
		Name:      p.Name,
		Color:     p.Color,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
	}
}

// FromDomainEvent конвертирует domain модель события в DTO.
// Отметки доступности привязываются к токену дня через записи кандидатных дней;
// отметка с неизвестным днем или некорректным временем пропускается.
func FromDomainEvent(e *domain.Event, dates []*domain.EventDate, participants []*domain.Participant, records []*domain.TimeSlotRecord) *EventResponse {
	if e == nil {
		return nil
	}

	days := make([]string, 0, len(dates))
	tokenByDateID := make(map[int64]string, len(dates))
	for _, d := range dates {
		if token, ok := d.DayToken(); ok {
			days = append(days, token)
			tokenByDateID[d.ID] = token
		}
	}

	slots := make([]TimeSlotResponse, 0, len(records))
	for _, rec := range records {
		token, ok := tokenByDateID[rec.EventDateID]
		if !ok {
			continue
		}
		slotID, err := types.NewSlotIDFromClock(token, rec.Hour, rec.Minute)
		if err != nil {
			continue
		}
		slots = append(slots, TimeSlotResponse{
			SlotID:        string(slotID),
			ParticipantID: rec.ParticipantID,
		})
	}

	resp := &EventResponse{
		ShortCode:            e.ShortCode,
		Name:                 e.Name,
		Days:                 days,
		StartTime:            e.StartTime,
		EndTime:              e.EndTime,
		TimeIncrementMinutes: e.IncrementMinutes(),
		IsFullDayEvent:       e.IsFullDayEvent,
		Timezone:             e.Timezone,
		Participants:         make([]ParticipantResponse, 0, len(participants)),
		TimeSlots:            slots,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}

	for _, p := range participants {
		resp.Participants = append(resp.Participants, FromDomainParticipant(p))
	}

	return resp
}
