package feed

import "sync"

// Kind — тип изменения записи участника.
type Kind string

const (
	KindInsert Kind = "insert"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// Change — уведомление об изменении записи участника в хранилище.
// Публикуется для любой записи мероприятия, независимо от того, какой
// клиент её изменил.
type Change struct {
	Kind          Kind `json:"kind"`
	EventID       uint `json:"event_id"`
	ParticipantID uint `json:"participant_id"`
}

// Bus — внутрипроцессная лента изменений, сгруппированная по мероприятиям.
// Играет роль канала уведомлений хранилища: консоли менеджеров и
// WebSocket-хаб подписываются на неё, все мутации участников публикуют в неё.
type Bus struct {
	mu   sync.RWMutex
	subs map[uint]map[*Subscription]bool
}

// Subscription — подписка на изменения одного мероприятия.
// Закрывается вызовом Close, повторный Close безопасен.
type Subscription struct {
	C       chan Change
	bus     *Bus
	eventID uint
	once    sync.Once
}

// Default — общая лента процесса, аналог глобального экземпляра хаба.
var Default = NewBus()

func NewBus() *Bus {
	return &Bus{subs: make(map[uint]map[*Subscription]bool)}
}

// Subscribe регистрирует подписку на изменения участников мероприятия.
func (b *Bus) Subscribe(eventID uint) *Subscription {
	sub := &Subscription{
		C:       make(chan Change, 16),
		bus:     b,
		eventID: eventID,
	}
	b.mu.Lock()
	if b.subs[eventID] == nil {
		b.subs[eventID] = make(map[*Subscription]bool)
	}
	b.subs[eventID][sub] = true
	b.mu.Unlock()
	return sub
}

// Publish рассылает изменение всем подпискам мероприятия. Отправка
// неблокирующая: если подписчик не успевает читать, уведомление для него
// пропадает — он всё равно перечитает полный список при следующем.
func (b *Bus) Publish(ch Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs[ch.EventID] {
		select {
		case sub.C <- ch:
		default:
		}
	}
}

// Close снимает подписку и закрывает канал.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		if subs, ok := s.bus.subs[s.eventID]; ok {
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.bus.subs, s.eventID)
			}
		}
		s.bus.mu.Unlock()
		close(s.C)
	})
}
