package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status — текущее состояние участника на мероприятии.
type Status string

const (
	StatusRegistered Status = "registered"  // зарегистрирован, ещё не отмечался
	StatusPresent    Status = "present"     // отмечен вовремя
	StatusLate       Status = "late"        // отмечен после порога опоздания
	StatusBreak      Status = "break"       // на перерыве
	StatusCheckedOut Status = "checked_out" // ушёл с мероприятия (терминальный статус)
)

// Phase — режим сканера, выбранный оператором. Определяет, какое правило
// перехода применяется к скану. В базе не хранится.
type Phase string

const (
	PhaseCheckIn  Phase = "check-in"
	PhaseBreak    Phase = "break"
	PhaseCheckOut Phase = "check-out"
)

// EventStatus — жизненный цикл мероприятия.
type EventStatus string

const (
	EventDraft  EventStatus = "draft"
	EventActive EventStatus = "active"
	EventClosed EventStatus = "closed"
)

// LogEntry — неизменяемая запись журнала посещаемости: что произошло и когда.
// Записи никогда не редактируются и не удаляются, только добавляются в конец.
type LogEntry struct {
	Type string    `json:"type"`
	Time time.Time `json:"time"`
}

type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Surname      string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsApproved   bool   `gorm:"default:false"` // Доступ менеджера открывает администратор
}

type Event struct {
	gorm.Model
	Name              string      `gorm:"not null"`       // Название мероприятия
	CreatedBy         uint        `gorm:"index;not null"` // Менеджер-владелец
	LateThreshold     *time.Time  // Скан после этого времени — опоздание (nil — без порога)
	IsOpenForCheckout bool        `gorm:"default:false"` // Разрешён ли самостоятельный выход участникам
	Status            EventStatus `gorm:"default:draft"` // draft / active / closed
	StartsAt          *time.Time
	EndsAt            *time.Time `gorm:"index"` // После этого времени мероприятие закрывает планировщик
}

type Participant struct {
	gorm.Model
	EventID   uint   `gorm:"index:idx_event_student,unique;not null"`
	Event     Event  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	StudentID string `gorm:"index:idx_event_student,unique;not null"` // Код на пропуске, уникален в пределах мероприятия
	FullName  string `gorm:"not null"`
	Email     string
	Phone     string
	Status    Status                        `gorm:"default:registered;not null"`
	Logs      datatypes.JSONSlice[LogEntry] // Журнал в хронологическом порядке; при добавлении перезаписывается целиком
}
