package attendance

import (
	"strconv"
	"strings"
	"time"

	"eventflow/internal/models"
)

// NamespaceTag — префикс содержимого QR-кода. Код для чужой системы
// (или просто мусор из сканера) отбрасывается по нему.
const NamespaceTag = "EVENTFLOW"

// RejectReason — причина, по которой скан не привёл к переходу.
// Все отказы тихие: оператору не показывается ошибка, повторные и чужие
// сканы — штатная ситуация. Причина нужна только для серверного журнала.
type RejectReason string

const (
	RejectBadPayload   RejectReason = "bad_payload"   // не разобрался формат кода
	RejectForeignEvent RejectReason = "foreign_event" // код от другого мероприятия
	RejectUnknownCode  RejectReason = "unknown_code"  // участник не зарегистрирован
	RejectNoTransition RejectReason = "no_transition" // переход запрещён правилами фазы
)

// Payload — разобранное содержимое кода "EVENTFLOW:<studentID>:<eventID>".
type Payload struct {
	StudentID string
	EventID   uint
}

// ParsePayload разбирает строку из сканера. Формат фиксированный:
// три поля через двоеточие, первым — неймспейс системы.
func ParsePayload(decoded string) (Payload, bool) {
	parts := strings.Split(decoded, ":")
	if len(parts) != 3 || parts[0] != NamespaceTag || parts[1] == "" {
		return Payload{}, false
	}
	eventID, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return Payload{}, false
	}
	return Payload{StudentID: parts[1], EventID: uint(eventID)}, true
}

// Outcome — готовый к применению переход для конкретного участника.
type Outcome struct {
	ParticipantID uint
	StudentID     string
	Result
}

// Interpret проверяет скан в контексте активного мероприятия и локальной
// проекции участников и вычисляет переход. Сам ничего не изменяет:
// lookup даёт доступ только на чтение, применение перехода — задача
// вызывающей консоли.
func Interpret(decoded string, event *models.Event, lookup func(studentID string) (*models.Participant, bool), phase models.Phase, now time.Time) (Outcome, RejectReason) {
	payload, ok := ParsePayload(decoded)
	if !ok {
		return Outcome{}, RejectBadPayload
	}
	if payload.EventID != event.ID {
		return Outcome{}, RejectForeignEvent
	}
	p, ok := lookup(payload.StudentID)
	if !ok {
		// Неизвестный код не создаёт участника: регистрация — единственный
		// путь появления записи.
		return Outcome{}, RejectUnknownCode
	}
	res, ok := Transition(p.Status, phase, event.LateThreshold, now)
	if !ok {
		return Outcome{}, RejectNoTransition
	}
	return Outcome{ParticipantID: p.ID, StudentID: p.StudentID, Result: res}, ""
}
