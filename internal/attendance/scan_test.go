package attendance

import (
	"testing"
	"time"

	"eventflow/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func testEvent(id uint) *models.Event {
	return &models.Event{Model: gorm.Model{ID: id}, Name: "Тестовое мероприятие", Status: models.EventActive}
}

func lookupFrom(participants ...*models.Participant) func(string) (*models.Participant, bool) {
	byCode := make(map[string]*models.Participant)
	for _, p := range participants {
		byCode[p.StudentID] = p
	}
	return func(studentID string) (*models.Participant, bool) {
		p, ok := byCode[studentID]
		return p, ok
	}
}

func TestParsePayload(t *testing.T) {
	p, ok := ParsePayload("EVENTFLOW:ST-100:7")
	assert.True(t, ok)
	assert.Equal(t, "ST-100", p.StudentID)
	assert.Equal(t, uint(7), p.EventID)

	for _, bad := range []string{
		"",
		"EVENTFLOW",
		"EVENTFLOW:ST-100",            // нет ID мероприятия
		"EVENTFLOW:ST-100:7:extra",    // лишнее поле
		"OTHERAPP:ST-100:7",           // чужой неймспейс
		"EVENTFLOW::7",                // пустой код участника
		"EVENTFLOW:ST-100:abc",        // нечисловой ID мероприятия
		"ST-100:7",                    // без неймспейса
	} {
		_, ok := ParsePayload(bad)
		assert.False(t, ok, "строка %q не должна разбираться", bad)
	}
}

func TestInterpretAppliesTransition(t *testing.T) {
	ev := testEvent(7)
	p := &models.Participant{Model: gorm.Model{ID: 42}, EventID: 7, StudentID: "ST-100", Status: models.StatusRegistered}

	out, reason := Interpret("EVENTFLOW:ST-100:7", ev, lookupFrom(p), models.PhaseCheckIn, time.Now())
	assert.Empty(t, reason)
	assert.Equal(t, uint(42), out.ParticipantID)
	assert.Equal(t, models.StatusPresent, out.Next)
	assert.Equal(t, LogTimeIn, out.LogType)
}

// Код другого мероприятия отбрасывается, каким бы корректным он ни был.
func TestInterpretForeignEvent(t *testing.T) {
	ev := testEvent(7)
	p := &models.Participant{Model: gorm.Model{ID: 42}, EventID: 7, StudentID: "ST-100", Status: models.StatusRegistered}

	_, reason := Interpret("EVENTFLOW:ST-100:8", ev, lookupFrom(p), models.PhaseCheckIn, time.Now())
	assert.Equal(t, RejectForeignEvent, reason)
}

// Неизвестный код — отказ, участник не создаётся.
func TestInterpretUnknownCode(t *testing.T) {
	ev := testEvent(7)

	_, reason := Interpret("EVENTFLOW:ST-999:7", ev, lookupFrom(), models.PhaseCheckIn, time.Now())
	assert.Equal(t, RejectUnknownCode, reason)
}

func TestInterpretRejectedTransition(t *testing.T) {
	ev := testEvent(7)
	p := &models.Participant{Model: gorm.Model{ID: 42}, EventID: 7, StudentID: "ST-100", Status: models.StatusCheckedOut}

	_, reason := Interpret("EVENTFLOW:ST-100:7", ev, lookupFrom(p), models.PhaseCheckIn, time.Now())
	assert.Equal(t, RejectNoTransition, reason)
}

func TestInterpretBadPayload(t *testing.T) {
	ev := testEvent(7)
	_, reason := Interpret("garbage", ev, lookupFrom(), models.PhaseCheckIn, time.Now())
	assert.Equal(t, RejectBadPayload, reason)
}
