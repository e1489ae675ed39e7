package console

import (
	"errors"
	"sync"
	"testing"
	"time"

	"eventflow/internal/feed"
	"eventflow/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// fakeStore имитирует долговременное хранилище в памяти.
type fakeStore struct {
	mu         sync.Mutex
	rows       map[uint]models.Participant
	failWrites bool
	writes     int
}

func newFakeStore(rows ...models.Participant) *fakeStore {
	s := &fakeStore{rows: make(map[uint]models.Participant)}
	for _, r := range rows {
		s.rows[r.ID] = r
	}
	return s
}

func (s *fakeStore) ListParticipants(eventID uint) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []models.Participant
	for _, r := range s.rows {
		if r.EventID == eventID {
			list = append(list, r)
		}
	}
	return list, nil
}

func (s *fakeStore) UpdateAttendance(participantID uint, status models.Status, logs []models.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.failWrites {
		return errors.New("хранилище недоступно")
	}
	row := s.rows[participantID]
	row.Status = status
	row.Logs = logs
	s.rows[participantID] = row
	return nil
}

func (s *fakeStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *fakeStore) put(p models.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[p.ID] = p
}

func (s *fakeStore) row(id uint) models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[id]
}

func participant(id uint, code string, status models.Status) models.Participant {
	return models.Participant{
		Model:     gorm.Model{ID: id},
		EventID:   7,
		StudentID: code,
		FullName:  "Участник " + code,
		Status:    status,
	}
}

func openTestConsole(t *testing.T, store *fakeStore) (*Console, *feed.Bus) {
	t.Helper()
	bus := feed.NewBus()
	ev := models.Event{Model: gorm.Model{ID: 7}, Name: "Тест", Status: models.EventActive}
	c, err := Open("test-console", ev, store, bus)
	assert.NoError(t, err)
	t.Cleanup(c.Close)
	return c, bus
}

func findByCode(list []models.Participant, code string) (models.Participant, bool) {
	for _, p := range list {
		if p.StudentID == code {
			return p, true
		}
	}
	return models.Participant{}, false
}

// Скан обновляет проекцию сразу, а в хранилище статус и журнал доезжают фоном.
func TestScanOptimisticThenDurable(t *testing.T) {
	store := newFakeStore(participant(1, "ST-100", models.StatusRegistered))
	c, _ := openTestConsole(t, store)

	res := c.Scan("EVENTFLOW:ST-100:7", models.PhaseCheckIn)
	assert.True(t, res.Applied)
	assert.Equal(t, models.StatusPresent, res.Status)

	// Проекция уже новая, независимо от фоновой записи.
	p, ok := findByCode(c.Projection(), "ST-100")
	assert.True(t, ok)
	assert.Equal(t, models.StatusPresent, p.Status)
	assert.Len(t, p.Logs, 1)
	assert.Equal(t, "Time In", p.Logs[0].Type)

	assert.Eventually(t, func() bool {
		return store.row(1).Status == models.StatusPresent
	}, time.Second, 10*time.Millisecond, "запись не дошла до хранилища")
}

// Повторный скан в той же фазе отклоняется: одна запись в журнале,
// одна запись в хранилище.
func TestScanIdempotent(t *testing.T) {
	store := newFakeStore(participant(1, "ST-100", models.StatusRegistered))
	c, _ := openTestConsole(t, store)

	first := c.Scan("EVENTFLOW:ST-100:7", models.PhaseCheckIn)
	second := c.Scan("EVENTFLOW:ST-100:7", models.PhaseCheckIn)

	assert.True(t, first.Applied)
	assert.False(t, second.Applied)

	p, _ := findByCode(c.Projection(), "ST-100")
	assert.Len(t, p.Logs, 1)

	assert.Eventually(t, func() bool { return store.writeCount() == 1 },
		time.Second, 10*time.Millisecond)
}

// Неудачная запись не откатывает проекцию оператора; истину восстановит
// следующее перечитывание по ленте.
func TestScanKeepsOptimisticStateOnWriteFailure(t *testing.T) {
	store := newFakeStore(participant(1, "ST-100", models.StatusRegistered))
	c, bus := openTestConsole(t, store)
	store.failWrites = true

	res := c.Scan("EVENTFLOW:ST-100:7", models.PhaseCheckIn)
	assert.True(t, res.Applied)

	p, _ := findByCode(c.Projection(), "ST-100")
	assert.Equal(t, models.StatusPresent, p.Status, "проекция не откатывается при отказе записи")

	assert.Eventually(t, func() bool { return store.writeCount() == 1 },
		time.Second, 10*time.Millisecond)

	// Пришло уведомление ленты (например, запись другого клиента прошла) —
	// проекция заменяется данными хранилища целиком.
	bus.Publish(feed.Change{Kind: feed.KindUpdate, EventID: 7, ParticipantID: 1})
	assert.Eventually(t, func() bool {
		p, _ := findByCode(c.Projection(), "ST-100")
		return p.Status == models.StatusRegistered
	}, time.Second, 10*time.Millisecond, "лента должна была перезаписать оптимистичное состояние")
}

// Изменение, сделанное мимо консоли, становится видно после уведомления ленты.
func TestFeedRefreshPicksUpForeignWrites(t *testing.T) {
	store := newFakeStore(participant(1, "ST-100", models.StatusRegistered))
	c, bus := openTestConsole(t, store)

	store.put(participant(2, "ST-200", models.StatusRegistered))
	bus.Publish(feed.Change{Kind: feed.KindInsert, EventID: 7, ParticipantID: 2})

	assert.Eventually(t, func() bool {
		_, ok := findByCode(c.Projection(), "ST-200")
		return ok
	}, time.Second, 10*time.Millisecond, "вставка другого клиента не появилась в проекции")
}

// После закрытия консоль не реагирует на ленту.
func TestCloseStopsWatching(t *testing.T) {
	store := newFakeStore(participant(1, "ST-100", models.StatusRegistered))
	bus := feed.NewBus()
	ev := models.Event{Model: gorm.Model{ID: 7}, Name: "Тест", Status: models.EventActive}
	c, err := Open("test-console", ev, store, bus)
	assert.NoError(t, err)

	c.Close()
	assert.NotPanics(t, c.Close)

	store.put(participant(2, "ST-200", models.StatusRegistered))
	bus.Publish(feed.Change{Kind: feed.KindInsert, EventID: 7, ParticipantID: 2})

	time.Sleep(50 * time.Millisecond)
	_, ok := findByCode(c.Projection(), "ST-200")
	assert.False(t, ok, "закрытая консоль не должна перечитывать проекцию")
}

func TestRegistryOpenGetCloseEvict(t *testing.T) {
	store := newFakeStore(participant(1, "ST-100", models.StatusRegistered))
	bus := feed.NewBus()
	reg := NewRegistry()
	ev := models.Event{Model: gorm.Model{ID: 7}, Name: "Тест", Status: models.EventActive}

	c, err := reg.Open(ev, store, bus)
	assert.NoError(t, err)
	assert.NotEmpty(t, c.ID)

	got, ok := reg.Get(c.ID)
	assert.True(t, ok)
	assert.Same(t, c, got)

	// Консоль, которую только что трогали, не вычищается.
	assert.Equal(t, 0, reg.EvictIdle(time.Hour))

	// А с нулевым порогом простоя — вычищается.
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 1, reg.EvictIdle(time.Nanosecond))
	_, ok = reg.Get(c.ID)
	assert.False(t, ok)

	assert.False(t, reg.Close(c.ID), "повторное закрытие по ID уже убранной консоли")
}
