package handlers

import (
	"log"
	"net/http"

	"eventflow/internal/console"
	"eventflow/internal/feed"
	"eventflow/internal/models"
	"eventflow/internal/response"
	"eventflow/internal/storage"

	"github.com/gin-gonic/gin"
)

// OpenConsoleHandler открывает консоль мероприятия
// @Summary		Открытие консоли мероприятия
// @Description	Создаёт серверную сторону экрана мероприятия: локальную проекцию участников с подпиской на ленту изменений. Консоль закрывается явно или планировщиком по простою.
// @Tags			console
// @Produce		json
// @Param			id	path	string	true	"ID мероприятия"
// @Security		BearerAuth
// @Success		201	{object}	response.ConsoleOpenedResponse
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_EVENT_ID)"
// @Failure		403	{object}	response.ErrorResponse	"Чужое мероприятие (NOT_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Мероприятие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events/{id}/console [post]
func OpenConsoleHandler(c *gin.Context) {
	event, ok := loadOwnEvent(c)
	if !ok {
		return
	}

	cons, err := console.Active.Open(event, console.DBStore{DB: storage.DB}, feed.Default)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки списка участников",
			Details: err.Error(),
		})
		return
	}

	log.Printf("Открыта консоль %s мероприятия %d", cons.ID, event.ID)
	c.JSON(http.StatusCreated, response.ConsoleOpenedResponse{ConsoleID: cons.ID})
}

type ScanRequest struct {
	// Сырой текст из сканера, формат EVENTFLOW:<studentID>:<eventID>
	Payload string `json:"payload" binding:"required"`
	// Фаза сканера: check-in, break или check-out
	Phase models.Phase `json:"phase" binding:"required"`
}

// ConsoleScanHandler обрабатывает один скан
// @Summary		Скан кода участника
// @Description	Интерпретирует скан в выбранной фазе. Отказ (повторный скан, чужой код, незнакомый код) — не ошибка: возвращается applied=false, состояние не меняется.
// @Tags			console
// @Accept			json
// @Produce		json
// @Param			id		path	string		true	"ID консоли"
// @Param			scan	body	ScanRequest	true	"Скан"
// @Security		BearerAuth
// @Success		200	{object}	console.ScanResult
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_PHASE)"
// @Failure		404	{object}	response.ErrorResponse	"Консоль не найдена (CONSOLE_NOT_FOUND)"
// @Router			/api/console/{id}/scan [post]
func ConsoleScanHandler(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}
	if req.Phase != models.PhaseCheckIn && req.Phase != models.PhaseBreak && req.Phase != models.PhaseCheckOut {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_PHASE",
			Message: "Фаза должна быть check-in, break или check-out",
		})
		return
	}

	cons, ok := console.Active.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "CONSOLE_NOT_FOUND",
			Message: "Консоль не найдена или уже закрыта",
		})
		return
	}

	result := cons.Scan(req.Payload, req.Phase)
	if !result.Applied {
		// Отказы штатные, но в журнал сервера попадают: полезно при разборе.
		log.Printf("Консоль %s: скан отклонён (%s)", cons.ID, result.Reason)
	}
	c.JSON(http.StatusOK, result)
}

// ConsoleStateHandler возвращает локальную проекцию консоли
// @Summary		Проекция участников консоли
// @Description	Текущее локальное состояние экрана: участники с оптимистичными обновлениями, упорядоченные по имени.
// @Tags			console
// @Produce		json
// @Param			id	path	string	true	"ID консоли"
// @Security		BearerAuth
// @Success		200	{array}		models.Participant
// @Failure		404	{object}	response.ErrorResponse	"Консоль не найдена (CONSOLE_NOT_FOUND)"
// @Router			/api/console/{id} [get]
func ConsoleStateHandler(c *gin.Context) {
	cons, ok := console.Active.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "CONSOLE_NOT_FOUND",
			Message: "Консоль не найдена или уже закрыта",
		})
		return
	}
	c.JSON(http.StatusOK, cons.Projection())
}

// CloseConsoleHandler закрывает консоль
// @Summary		Закрытие консоли
// @Description	Снимает подписку консоли на ленту изменений. Закрытие обязательно на каждом пути ухода с экрана.
// @Tags			console
// @Produce		json
// @Param			id	path	string	true	"ID консоли"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"Консоль не найдена (CONSOLE_NOT_FOUND)"
// @Router			/api/console/{id} [delete]
func CloseConsoleHandler(c *gin.Context) {
	if !console.Active.Close(c.Param("id")) {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "CONSOLE_NOT_FOUND",
			Message: "Консоль не найдена или уже закрыта",
		})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Консоль закрыта"})
}
