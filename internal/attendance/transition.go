package attendance

import (
	"time"

	"eventflow/internal/models"
)

// Метки записей журнала. Формат сохраняется как есть: экспорт ищет
// время входа/выхода по подстрокам "in" и "out"/"checkout".
const (
	LogTimeIn       = "Time In"
	LogTimeInAuto   = "Time In (Auto)"
	LogLateTimeIn   = "Late Time In (Auto)"
	LogBreakStart   = "Break Start"
	LogBreakReturn  = "Break Return"
	LogTimeOut      = "Time Out"
	LogSelfCheckout = "Self Checkout"
)

// Result — итог успешного перехода: новый статус и метка для журнала.
type Result struct {
	Next    models.Status
	LogType string
}

// Transition вычисляет следующий статус участника для выбранной фазы сканера.
// Чистая функция без побочных эффектов: и оптимистичное обновление проекции,
// и запись в базу считают переход одним и тем же кодом.
// Второе значение false — отказ: статус не меняется, запись в журнал не
// добавляется. Отказ — ожидаемая ситуация (повторный скан), не ошибка.
func Transition(current models.Status, phase models.Phase, lateThreshold *time.Time, now time.Time) (Result, bool) {
	switch phase {
	case models.PhaseCheckIn:
		if current != models.StatusRegistered {
			// уже отмечен
			return Result{}, false
		}
		// Порог опоздания строгий: скан ровно в момент порога — не опоздание.
		if lateThreshold != nil && now.After(*lateThreshold) {
			return Result{Next: models.StatusLate, LogType: LogLateTimeIn}, true
		}
		return Result{Next: models.StatusPresent, LogType: LogTimeIn}, true

	case models.PhaseBreak:
		switch current {
		case models.StatusBreak:
			// Возврат с перерыва всегда в present, даже если до перерыва было late.
			return Result{Next: models.StatusPresent, LogType: LogBreakReturn}, true
		case models.StatusPresent, models.StatusLate:
			return Result{Next: models.StatusBreak, LogType: LogBreakStart}, true
		}
		return Result{}, false

	case models.PhaseCheckOut:
		if current == models.StatusCheckedOut {
			return Result{}, false
		}
		// Оператор отмечает выход даже с перерыва. Самостоятельный выход
		// участника, наоборот, с перерыва запрещён — см. SelfCheckoutHandler.
		return Result{Next: models.StatusCheckedOut, LogType: LogTimeOut}, true
	}
	return Result{}, false
}
