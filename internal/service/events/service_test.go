package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
	eventRepo "github.com/m04kA/SMC-MeetupService/internal/infra/storage/event"
	"github.com/m04kA/SMC-MeetupService/internal/service/events/models"
	"github.com/m04kA/SMC-MeetupService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeEventRepo struct {
	events    map[string]*domain.Event
	dates     map[int64][]*domain.EventDate
	nextID    int64
	takenCode string // код, на котором Create возвращает ErrShortCodeTaken
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: make(map[string]*domain.Event),
		dates:  make(map[int64][]*domain.EventDate),
	}
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.Event, dates []*domain.EventDate) (*domain.Event, error) {
	if event.ShortCode == f.takenCode {
		return nil, eventRepo.ErrShortCodeTaken
	}
	f.nextID++
	event.ID = f.nextID
	f.events[event.ShortCode] = event
	for i, d := range dates {
		d.EventID = event.ID
		d.ID = event.ID*100 + int64(i) + 1
	}
	f.dates[event.ID] = dates
	return event, nil
}

func (f *fakeEventRepo) GetByShortCode(_ context.Context, shortCode string) (*domain.Event, error) {
	event, ok := f.events[shortCode]
	if !ok {
		return nil, eventRepo.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) GetDates(_ context.Context, eventID int64) ([]*domain.EventDate, error) {
	return f.dates[eventID], nil
}

type fakeParticipantRepo struct {
	byEvent map[int64][]*domain.Participant
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{byEvent: make(map[int64][]*domain.Participant)}
}

func (f *fakeParticipantRepo) Create(_ context.Context, p *domain.Participant) (*domain.Participant, error) {
	f.byEvent[p.EventID] = append(f.byEvent[p.EventID], p)
	return p, nil
}

func (f *fakeParticipantRepo) ListByEvent(_ context.Context, eventID int64) ([]*domain.Participant, error) {
	return f.byEvent[eventID], nil
}

type fakeTimeSlotRepo struct {
	records []*domain.TimeSlotRecord
}

func (f *fakeTimeSlotRepo) ListByEvent(_ context.Context, _ int64) ([]*domain.TimeSlotRecord, error) {
	return f.records, nil
}

type sequenceCodeGen struct {
	codes []string
	next  int
}

func (g *sequenceCodeGen) Generate() (string, error) {
	code := g.codes[g.next%len(g.codes)]
	g.next++
	return code, nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(events *fakeEventRepo, participants *fakeParticipantRepo, gen ShortCodeGenerator) *Service {
	return NewService(events, participants, &fakeTimeSlotRepo{}, gen, passthroughTx{}, nopLogger{})
}

func validCreateRequest() *models.CreateEventRequest {
	return &models.CreateEventRequest{
		Name:        "team retro",
		Days:        []string{"mon", "wed", "fri"},
		StartTime:   ptr.Ptr("9 am"),
		EndTime:     ptr.Ptr("5 pm"),
		CreatorName: "Alice",
	}
}

func TestCreate(t *testing.T) {
	events := newFakeEventRepo()
	participants := newFakeParticipantRepo()
	svc := newTestService(events, participants, &sequenceCodeGen{codes: []string{"code0001"}})

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "code0001", resp.Event.ShortCode)
	assert.Equal(t, "team retro", resp.Event.Name)
	assert.Equal(t, []string{"mon", "wed", "fri"}, resp.Event.Days)
	assert.Equal(t, domain.DefaultTimeIncrementMinutes, resp.Event.TimeIncrementMinutes)

	// создатель стал первым участником с первым цветом палитры
	assert.Equal(t, "Alice", resp.Creator.Name)
	assert.Equal(t, domain.ColorForIndex(0), resp.Creator.Color)
	_, err = uuid.Parse(resp.Creator.ID)
	assert.NoError(t, err)

	require.Len(t, participants.byEvent[1], 1)
}

func TestCreate_RetriesOnShortCodeCollision(t *testing.T) {
	events := newFakeEventRepo()
	events.takenCode = "dup00001"
	svc := newTestService(events, newFakeParticipantRepo(), &sequenceCodeGen{codes: []string{"dup00001", "ok000001"}})

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "ok000001", resp.Event.ShortCode)
}

func TestCreate_ShortCodeExhausted(t *testing.T) {
	events := newFakeEventRepo()
	events.takenCode = "dup00001"
	svc := newTestService(events, newFakeParticipantRepo(), &sequenceCodeGen{codes: []string{"dup00001"}})

	_, err := svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrShortCodeExhausted)
}

func TestCreate_FullDayEvent(t *testing.T) {
	req := &models.CreateEventRequest{
		Name:           "offsite",
		Days:           []string{"2024-08-14", "2024-08-15"},
		IsFullDayEvent: true,
		CreatorName:    "Alice",
	}
	svc := newTestService(newFakeEventRepo(), newFakeParticipantRepo(), &sequenceCodeGen{codes: []string{"code0001"}})

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Event.IsFullDayEvent)
	assert.Nil(t, resp.Event.StartTime)
	assert.Equal(t, []string{"2024-08-14", "2024-08-15"}, resp.Event.Days)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newFakeEventRepo(), newFakeParticipantRepo(), &sequenceCodeGen{codes: []string{"code0001"}})

	tests := []struct {
		name   string
		mutate func(*models.CreateEventRequest)
	}{
		{"empty name", func(r *models.CreateEventRequest) { r.Name = "  " }},
		{"no days", func(r *models.CreateEventRequest) { r.Days = nil }},
		{"bad day token", func(r *models.CreateEventRequest) { r.Days = []string{"monday"} }},
		{"no creator", func(r *models.CreateEventRequest) { r.CreatorName = "" }},
		{"missing end time", func(r *models.CreateEventRequest) { r.EndTime = nil }},
		{"bad start time", func(r *models.CreateEventRequest) { r.StartTime = ptr.Ptr("noon") }},
		{"inverted range", func(r *models.CreateEventRequest) {
			r.StartTime = ptr.Ptr("5 pm")
			r.EndTime = ptr.Ptr("9 am")
		}},
		{"increment too small", func(r *models.CreateEventRequest) { r.TimeIncrement = ptr.Ptr(models.Increment(1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_CustomIncrement(t *testing.T) {
	req := validCreateRequest()
	req.TimeIncrement = ptr.Ptr(models.Increment(45))
	svc := newTestService(newFakeEventRepo(), newFakeParticipantRepo(), &sequenceCodeGen{codes: []string{"code0001"}})

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 45, resp.Event.TimeIncrementMinutes)
}

func TestCreate_DeduplicatesDays(t *testing.T) {
	req := validCreateRequest()
	req.Days = []string{"mon", "MON", "wed"}
	svc := newTestService(newFakeEventRepo(), newFakeParticipantRepo(), &sequenceCodeGen{codes: []string{"code0001"}})

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"mon", "wed"}, resp.Event.Days)
}

func TestGetByShortCode(t *testing.T) {
	events := newFakeEventRepo()
	participants := newFakeParticipantRepo()
	svc := newTestService(events, participants, &sequenceCodeGen{codes: []string{"code0001"}})

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.GetByShortCode(context.Background(), "code0001")
	require.NoError(t, err)
	assert.Equal(t, "team retro", resp.Name)
	assert.Equal(t, []string{"mon", "wed", "fri"}, resp.Days)
	require.Len(t, resp.Participants, 1)
	assert.Equal(t, "Alice", resp.Participants[0].Name)
}

func TestGetByShortCode_IncludesTimeSlots(t *testing.T) {
	events := newFakeEventRepo()
	participants := newFakeParticipantRepo()
	slots := &fakeTimeSlotRepo{}
	svc := NewService(events, participants, slots, &sequenceCodeGen{codes: []string{"code0001"}}, passthroughTx{}, nopLogger{})

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	monID := events.dates[1][0].ID
	slots.records = []*domain.TimeSlotRecord{
		{EventID: 1, EventDateID: monID, ParticipantID: "p1", Hour: 9, Minute: 0},
		{EventID: 1, EventDateID: monID, ParticipantID: "p2", Hour: 10, Minute: 30},
		// отметка с неизвестным днем пропускается
		{EventID: 1, EventDateID: 999, ParticipantID: "p1", Hour: 9, Minute: 0},
	}

	resp, err := svc.GetByShortCode(context.Background(), "code0001")
	require.NoError(t, err)

	require.Len(t, resp.TimeSlots, 2)
	assert.Equal(t, "monT09:00:00.000Z", resp.TimeSlots[0].SlotID)
	assert.Equal(t, "p1", resp.TimeSlots[0].ParticipantID)
	assert.Equal(t, "monT10:30:00.000Z", resp.TimeSlots[1].SlotID)
	assert.Equal(t, "p2", resp.TimeSlots[1].ParticipantID)
}

func TestGetByShortCode_NotFound(t *testing.T) {
	svc := newTestService(newFakeEventRepo(), newFakeParticipantRepo(), &sequenceCodeGen{codes: []string{"code0001"}})

	_, err := svc.GetByShortCode(context.Background(), "missing1")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestAddParticipant(t *testing.T) {
	events := newFakeEventRepo()
	participants := newFakeParticipantRepo()
	svc := newTestService(events, participants, &sequenceCodeGen{codes: []string{"code0001"}})

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.AddParticipant(context.Background(), "code0001", &models.AddParticipantRequest{Name: "Bob"})
	require.NoError(t, err)

	assert.Equal(t, "Bob", resp.Name)
	// второй участник получает второй цвет палитры
	assert.Equal(t, domain.ColorForIndex(1), resp.Color)
	require.Len(t, participants.byEvent[1], 2)
}

func TestAddParticipant_EventNotFound(t *testing.T) {
	svc := newTestService(newFakeEventRepo(), newFakeParticipantRepo(), &sequenceCodeGen{codes: []string{"code0001"}})

	_, err := svc.AddParticipant(context.Background(), "missing1", &models.AddParticipantRequest{Name: "Bob"})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestAddParticipant_EmptyName(t *testing.T) {
	svc := newTestService(newFakeEventRepo(), newFakeParticipantRepo(), &sequenceCodeGen{codes: []string{"code0001"}})

	_, err := svc.AddParticipant(context.Background(), "code0001", &models.AddParticipantRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
