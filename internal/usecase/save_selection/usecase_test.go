package save_selection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
	eventRepo "github.com/m04kA/SMC-MeetupService/internal/infra/storage/event"
	participantRepo "github.com/m04kA/SMC-MeetupService/internal/infra/storage/participant"
	"github.com/m04kA/SMC-MeetupService/pkg/ptr"
	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeEventRepo struct {
	event      *domain.Event
	dates      []*domain.EventDate
	eventErr   error
	createdIDs int64
}

func (f *fakeEventRepo) GetByShortCode(_ context.Context, _ string) (*domain.Event, error) {
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	return f.event, nil
}

func (f *fakeEventRepo) GetDates(_ context.Context, _ int64) ([]*domain.EventDate, error) {
	return f.dates, nil
}

func (f *fakeEventRepo) CreateDate(_ context.Context, date *domain.EventDate) (*domain.EventDate, error) {
	f.createdIDs++
	date.ID = 100 + f.createdIDs
	f.dates = append(f.dates, date)
	return date, nil
}

type fakeParticipantRepo struct {
	participant *domain.Participant
	err         error
}

func (f *fakeParticipantRepo) GetByID(_ context.Context, _ string) (*domain.Participant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.participant, nil
}

type fakeTimeSlotRepo struct {
	deletedFor []string
	created    []*domain.TimeSlotRecord
}

func (f *fakeTimeSlotRepo) DeleteByParticipant(_ context.Context, _ int64, participantID string) error {
	f.deletedFor = append(f.deletedFor, participantID)
	return nil
}

func (f *fakeTimeSlotRepo) BulkCreate(_ context.Context, records []*domain.TimeSlotRecord) error {
	f.created = append(f.created, records...)
	return nil
}

type passthroughTx struct {
	calls int
}

func (t *passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type recordingCache struct {
	prefixes []string
}

func (c *recordingCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.prefixes = append(c.prefixes, prefix)
	return nil
}

type countingMetrics struct {
	saved int
}

func (m *countingMetrics) AddSlotsSaved(n int) { m.saved += n }

func fixtures() (*fakeEventRepo, *fakeParticipantRepo, *fakeTimeSlotRepo, *passthroughTx) {
	events := &fakeEventRepo{
		event: &domain.Event{ID: 1, ShortCode: "abc12345"},
		dates: []*domain.EventDate{
			{ID: 10, EventID: 1, Weekday: ptr.Ptr("mon")},
			{ID: 11, EventID: 1, Weekday: ptr.Ptr("tue")},
		},
	}
	participants := &fakeParticipantRepo{
		participant: &domain.Participant{ID: "p1", EventID: 1, Name: "Alice"},
	}
	return events, participants, &fakeTimeSlotRepo{}, &passthroughTx{}
}

func TestExecute_FullReplace(t *testing.T) {
	events, participants, slots, tx := fixtures()
	cacheInv := &recordingCache{}
	metrics := &countingMetrics{}

	uc := NewUseCase(events, participants, slots, tx, cacheInv, metrics, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ShortCode:     "abc12345",
		ParticipantID: "p1",
		SlotIDs: []string{
			"tueT10:00:00.000Z",
			"monT09:00:00.000Z",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Saved)
	assert.Equal(t, 0, resp.Skipped)
	// ответ отсортирован хронологически
	assert.Equal(t, []types.SlotID{
		"monT09:00:00.000Z",
		"tueT10:00:00.000Z",
	}, resp.SlotIDs)

	// старые отметки удалены, новые созданы, все в одной транзакции
	assert.Equal(t, []string{"p1"}, slots.deletedFor)
	require.Len(t, slots.created, 2)
	assert.Equal(t, 1, tx.calls)

	// проверяем связку отметки с записью дня
	byDate := map[int64]int{}
	for _, rec := range slots.created {
		byDate[rec.EventDateID]++
		assert.Equal(t, "p1", rec.ParticipantID)
		assert.Equal(t, int64(1), rec.EventID)
	}
	assert.Equal(t, map[int64]int{10: 1, 11: 1}, byDate)

	// кэш агрегации события инвалидирован
	assert.Equal(t, []string{"availability:abc12345:"}, cacheInv.prefixes)
	assert.Equal(t, 2, metrics.saved)
}

func TestExecute_EmptySelectionClearsSlots(t *testing.T) {
	events, participants, slots, tx := fixtures()
	uc := NewUseCase(events, participants, slots, tx, nil, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ShortCode:     "abc12345",
		ParticipantID: "p1",
		SlotIDs:       []string{},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Saved)
	assert.Equal(t, []string{"p1"}, slots.deletedFor)
	assert.Empty(t, slots.created)
}

func TestExecute_SkipsInvalidSlotIDs(t *testing.T) {
	events, participants, slots, tx := fixtures()
	uc := NewUseCase(events, participants, slots, tx, nil, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ShortCode:     "abc12345",
		ParticipantID: "p1",
		SlotIDs: []string{
			"monT09:00:00.000Z",
			"garbage",
			"xyzT09:00:00.000Z",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Saved)
	assert.Equal(t, 2, resp.Skipped)
	require.Len(t, slots.created, 1)
}

func TestExecute_DeduplicatesSlotIDs(t *testing.T) {
	events, participants, slots, tx := fixtures()
	uc := NewUseCase(events, participants, slots, tx, nil, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ShortCode:     "abc12345",
		ParticipantID: "p1",
		SlotIDs: []string{
			"monT09:00:00.000Z",
			"monT09:00:00.000Z",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Saved)
	assert.Equal(t, 0, resp.Skipped)
}

func TestExecute_CreatesMissingDate(t *testing.T) {
	events, participants, slots, tx := fixtures()
	uc := NewUseCase(events, participants, slots, tx, nil, nil, nopLogger{})

	// wed не входит в кандидатные дни события
	resp, err := uc.Execute(context.Background(), &Request{
		ShortCode:     "abc12345",
		ParticipantID: "p1",
		SlotIDs:       []string{"wedT09:00:00.000Z"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Saved)
	require.Len(t, events.dates, 3)
	created := events.dates[2]
	require.NotNil(t, created.Weekday)
	assert.Equal(t, "wed", *created.Weekday)
	require.Len(t, slots.created, 1)
	assert.Equal(t, created.ID, slots.created[0].EventDateID)
}

func TestExecute_EventNotFound(t *testing.T) {
	events, participants, slots, tx := fixtures()
	events.eventErr = eventRepo.ErrEventNotFound
	uc := NewUseCase(events, participants, slots, tx, nil, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ShortCode:     "missing",
		ParticipantID: "p1",
	})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestExecute_ParticipantNotFound(t *testing.T) {
	events, participants, slots, tx := fixtures()
	participants.err = participantRepo.ErrParticipantNotFound
	uc := NewUseCase(events, participants, slots, tx, nil, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ShortCode:     "abc12345",
		ParticipantID: "ghost",
	})
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestExecute_ParticipantFromAnotherEvent(t *testing.T) {
	events, participants, slots, tx := fixtures()
	participants.participant = &domain.Participant{ID: "p9", EventID: 42, Name: "Mallory"}
	uc := NewUseCase(events, participants, slots, tx, nil, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ShortCode:     "abc12345",
		ParticipantID: "p9",
	})
	assert.ErrorIs(t, err, ErrParticipantNotFound)
	assert.Empty(t, slots.deletedFor)
}

func TestExecute_Validation(t *testing.T) {
	events, participants, slots, tx := fixtures()
	uc := NewUseCase(events, participants, slots, tx, nil, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ParticipantID: "p1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ShortCode: "abc12345"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
