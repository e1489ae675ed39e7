package console

import (
	"log"
	"sort"
	"sync"
	"time"

	"eventflow/internal/attendance"
	"eventflow/internal/feed"
	"eventflow/internal/models"
)

// Store — операции долговременного хранилища, нужные консоли.
// Выделено в интерфейс, чтобы логику оптимистичного обновления можно было
// проверять без базы.
type Store interface {
	ListParticipants(eventID uint) ([]models.Participant, error)
	UpdateAttendance(participantID uint, status models.Status, logs []models.LogEntry) error
}

// ScanResult — ответ консоли на один скан.
type ScanResult struct {
	Applied       bool                    `json:"applied"`
	Reason        attendance.RejectReason `json:"reason,omitempty"`
	ParticipantID uint                    `json:"participant_id,omitempty"`
	StudentID     string                  `json:"student_id,omitempty"`
	Status        models.Status           `json:"status,omitempty"`
	LogType       string                  `json:"log_type,omitempty"`
}

// Console — серверная сторона открытого экрана мероприятия у менеджера.
// Держит локальную проекцию участников, применяет сканы оптимистично
// (проекция обновляется сразу, запись в базу уходит в фоне) и слушает
// ленту изменений: любое изменение записи участника, чьё бы оно ни было,
// приводит к полному перечитыванию списка из хранилища.
type Console struct {
	ID    string
	Event models.Event

	store Store
	bus   *feed.Bus
	sub   *feed.Subscription
	done  chan struct{}

	closeOnce sync.Once

	mu       sync.Mutex
	byCode   map[string]*models.Participant // ключ — код участника
	lastUsed time.Time
}

// Open создаёт консоль: загружает проекцию и подписывается на ленту
// изменений мероприятия. Консоль обязательно закрывать через Close.
func Open(id string, event models.Event, store Store, bus *feed.Bus) (*Console, error) {
	c := &Console{
		ID:       id,
		Event:    event,
		store:    store,
		bus:      bus,
		sub:      bus.Subscribe(event.ID),
		done:     make(chan struct{}),
		lastUsed: time.Now(),
	}
	if err := c.refresh(); err != nil {
		c.sub.Close()
		return nil, err
	}
	go c.watch()
	return c, nil
}

// Scan интерпретирует отсканированный код в контексте мероприятия и
// выбранной оператором фазы. Отказ — не ошибка: проекция и журнал не
// меняются, оператор продолжает сканировать.
func (c *Console) Scan(decoded string, phase models.Phase) ScanResult {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastUsed = now

	out, reason := attendance.Interpret(decoded, &c.Event, c.lookupLocked, phase, now)
	if reason != "" {
		return ScanResult{Reason: reason}
	}

	p := c.byCode[out.StudentID]
	newLogs := append(append([]models.LogEntry{}, p.Logs...), models.LogEntry{Type: out.LogType, Time: now})

	// 1. Оптимистичное обновление: проекция меняется сразу, до записи в базу,
	// чтобы оператор видел результат при сканировании подряд.
	p.Status = out.Next
	p.Logs = newLogs

	// 2. Запись в базу в фоне, сканы её не ждут.
	go c.persist(out.ParticipantID, out.Next, newLogs)

	return ScanResult{
		Applied:       true,
		ParticipantID: out.ParticipantID,
		StudentID:     out.StudentID,
		Status:        out.Next,
		LogType:       out.LogType,
	}
}

// persist пишет статус и полный журнал одним обновлением. Неудача не
// откатывает проекцию и не ретраится: оператор продолжает работать,
// расхождение исправит следующее перечитывание по ленте.
func (c *Console) persist(participantID uint, status models.Status, logs []models.LogEntry) {
	if err := c.store.UpdateAttendance(participantID, status, logs); err != nil {
		log.Printf("Консоль %s: ошибка записи участника %d: %v", c.ID, participantID, err)
		return
	}
	c.bus.Publish(feed.Change{Kind: feed.KindUpdate, EventID: c.Event.ID, ParticipantID: participantID})
}

func (c *Console) lookupLocked(studentID string) (*models.Participant, bool) {
	p, ok := c.byCode[studentID]
	return p, ok
}

// Projection возвращает копию локальной проекции, упорядоченную по имени.
func (c *Console) Projection() []models.Participant {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastUsed = time.Now()

	list := make([]models.Participant, 0, len(c.byCode))
	for _, p := range c.byCode {
		list = append(list, *p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FullName < list[j].FullName })
	return list
}

// watch перечитывает проекцию при каждом уведомлении ленты. Стратегия
// «уведомление — полная перезагрузка»: без диффов, список человеческого
// масштаба.
func (c *Console) watch() {
	for {
		select {
		case _, ok := <-c.sub.C:
			if !ok {
				return
			}
			if err := c.refresh(); err != nil {
				log.Printf("Консоль %s: ошибка перечитывания списка участников: %v", c.ID, err)
			}
		case <-c.done:
			return
		}
	}
}

// refresh заменяет проекцию целиком данными из хранилища.
func (c *Console) refresh() error {
	list, err := c.store.ListParticipants(c.Event.ID)
	if err != nil {
		return err
	}
	byCode := make(map[string]*models.Participant, len(list))
	for i := range list {
		byCode[list[i].StudentID] = &list[i]
	}
	c.mu.Lock()
	c.byCode = byCode
	c.mu.Unlock()
	return nil
}

// Close снимает подписку на ленту и останавливает перечитывание.
// Повторный вызов безопасен.
func (c *Console) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.sub.Close()
	})
}

// IdleSince сообщает, трогали ли консоль после указанного момента.
func (c *Console) IdleSince(cutoff time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUsed.Before(cutoff)
}
