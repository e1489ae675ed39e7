package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"eventflow/internal/feed"
	"eventflow/internal/models"
	"eventflow/internal/response"
	"eventflow/internal/storage"

	"github.com/gin-gonic/gin"
)

var ctx = context.Background()

// Ключ кэша списка активных мероприятий (экран выбора у участников).
const activeEventsCacheKey = "events_active"

type CreateEventRequest struct {
	Name string `json:"name" binding:"required"`
	// Порог опоздания в формате RFC3339. Альтернатива — late_time.
	LateThreshold *time.Time `json:"late_threshold"`
	// Порог опоздания как время "15:04" сегодняшнего дня (как вводит оператор).
	LateTime string     `json:"late_time"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// CreateEventHandler создаёт мероприятие в статусе draft
// @Summary		Создание мероприятия
// @Description	Создаёт мероприятие. Участники, сканирующиеся после порога опоздания, автоматически отмечаются как опоздавшие.
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			event	body		CreateEventRequest	true	"Данные мероприятия"
// @Security		BearerAuth
// @Success		201	{object}	models.Event			"Созданное мероприятие"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_LATE_TIME)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events [post]
func CreateEventHandler(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	lateThreshold := req.LateThreshold
	if req.LateTime != "" {
		parsed, err := time.Parse("15:04", req.LateTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_LATE_TIME",
				Message: "Время порога опоздания должно быть в формате 15:04",
			})
			return
		}
		now := time.Now()
		t := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
		lateThreshold = &t
	}

	event := models.Event{
		Name:          req.Name,
		CreatedBy:     c.GetUint("userID"),
		LateThreshold: lateThreshold,
		Status:        models.EventDraft,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
	}

	if err := storage.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при создании мероприятия",
			Details: err.Error(),
		})
		return
	}

	invalidateActiveEventsCache()
	c.JSON(http.StatusCreated, event)
}

// ListEventsHandler возвращает мероприятия текущего менеджера
// @Summary		Список мероприятий менеджера
// @Tags			events
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		models.Event
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events [get]
func ListEventsHandler(c *gin.Context) {
	var events []models.Event
	if err := storage.DB.
		Where("created_by = ?", c.GetUint("userID")).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки мероприятий",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEventHandler возвращает мероприятие по ID
// @Summary		Мероприятие по ID
// @Tags			events
// @Produce		json
// @Param			id	path	string	true	"ID мероприятия"
// @Security		BearerAuth
// @Success		200	{object}	models.Event
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_EVENT_ID)"
// @Failure		403	{object}	response.ErrorResponse	"Чужое мероприятие (NOT_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Мероприятие не найдено (EVENT_NOT_FOUND)"
// @Router			/api/events/{id} [get]
func GetEventHandler(c *gin.Context) {
	event, ok := loadOwnEvent(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, event)
}

type CheckoutModeRequest struct {
	Open *bool `json:"open" binding:"required"`
}

// ToggleCheckoutHandler переключает разрешение самостоятельного выхода
// @Summary		Разрешить/запретить самостоятельный выход
// @Description	Флаг действует только на самостоятельный выход участников; сканер оператора от него не зависит.
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			id		path	string					true	"ID мероприятия"
// @Param			mode	body	CheckoutModeRequest		true	"Новое состояние флага"
// @Security		BearerAuth
// @Success		200	{object}	models.Event
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_EVENT_ID)"
// @Failure		403	{object}	response.ErrorResponse	"Чужое мероприятие (NOT_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Мероприятие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events/{id}/checkout-mode [put]
func ToggleCheckoutHandler(c *gin.Context) {
	var req CheckoutModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	event, ok := loadOwnEvent(c)
	if !ok {
		return
	}

	event.IsOpenForCheckout = *req.Open
	if err := storage.DB.Model(&event).Update("is_open_for_checkout", *req.Open).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка обновления мероприятия",
			Details: err.Error(),
		})
		return
	}

	invalidateActiveEventsCache()
	c.JSON(http.StatusOK, event)
}

// SetEventStatusHandler переводит мероприятие по жизненному циклу
// @Summary		Смена статуса мероприятия
// @Description	Допустимые статусы: draft, active, closed. Участники видят только активные мероприятия.
// @Tags			events
// @Produce		json
// @Param			id		path	string	true	"ID мероприятия"
// @Param			status	path	string	true	"Новый статус (draft/active/closed)"
// @Security		BearerAuth
// @Success		200	{object}	models.Event
// @Failure		400	{object}	response.ErrorResponse	"Неверный статус (INVALID_STATUS) или идентификатор (INVALID_EVENT_ID)"
// @Failure		403	{object}	response.ErrorResponse	"Чужое мероприятие (NOT_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Мероприятие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events/{id}/status/{status} [put]
func SetEventStatusHandler(c *gin.Context) {
	status := models.EventStatus(c.Param("status"))
	if status != models.EventDraft && status != models.EventActive && status != models.EventClosed {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_STATUS",
			Message: "Неверный статус мероприятия",
		})
		return
	}

	event, ok := loadOwnEvent(c)
	if !ok {
		return
	}

	event.Status = status
	if err := storage.DB.Model(&event).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка обновления мероприятия",
			Details: err.Error(),
		})
		return
	}

	invalidateActiveEventsCache()
	c.JSON(http.StatusOK, event)
}

// DeleteEventHandler удаляет мероприятие и всех его участников
// @Summary		Удаление мероприятия
// @Description	Необратимо удаляет мероприятие и все записи его участников. Требует подтверждения ?confirm=true.
// @Tags			events
// @Produce		json
// @Param			id		path	string	true	"ID мероприятия"
// @Param			confirm	query	string	true	"Подтверждение удаления, должно быть true"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse
// @Failure		400	{object}	response.ErrorResponse	"Нет подтверждения (CONFIRM_REQUIRED) или неверный идентификатор (INVALID_EVENT_ID)"
// @Failure		403	{object}	response.ErrorResponse	"Чужое мероприятие (NOT_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Мероприятие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events/{id} [delete]
func DeleteEventHandler(c *gin.Context) {
	// Разрушительная операция: без явного подтверждения не выполняется.
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "CONFIRM_REQUIRED",
			Message: "Удаление мероприятия сотрёт все записи участников. Повторите запрос с ?confirm=true",
		})
		return
	}

	event, ok := loadOwnEvent(c)
	if !ok {
		return
	}

	// Каскад стирает записи насовсем: коды участников освобождаются,
	// уникальный индекс (event_id, student_id) не держит удалённые строки.
	if err := storage.DB.Unscoped().Where("event_id = ?", event.ID).Delete(&models.Participant{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка удаления участников мероприятия",
			Details: err.Error(),
		})
		return
	}
	if err := storage.DB.Unscoped().Delete(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка удаления мероприятия",
			Details: err.Error(),
		})
		return
	}

	feed.Default.Publish(feed.Change{Kind: feed.KindDelete, EventID: event.ID})
	invalidateActiveEventsCache()
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Мероприятие и его участники удалены"})
}

// ActiveEventItem — мероприятие на экране выбора у участника.
type ActiveEventItem struct {
	ID                uint       `json:"id"`
	Name              string     `json:"name"`
	LateThreshold     *time.Time `json:"late_threshold,omitempty"`
	IsOpenForCheckout bool       `json:"is_open_for_checkout"`
}

// ListActiveEventsHandler возвращает активные мероприятия (публичный)
// @Summary		Активные мероприятия
// @Description	Список мероприятий, доступных для регистрации участников. Кэшируется в Redis на 60 секунд.
// @Tags			public
// @Produce		json
// @Success		200	{array}		ActiveEventItem
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/public/events [get]
func ListActiveEventsHandler(c *gin.Context) {
	if storage.RedisClient != nil {
		cached, err := storage.RedisClient.Get(ctx, activeEventsCacheKey).Result()
		if err == nil && cached != "" {
			var items []ActiveEventItem
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				c.JSON(http.StatusOK, items)
				return
			}
		}
	}

	var events []models.Event
	if err := storage.DB.
		Where("status = ?", models.EventActive).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки мероприятий",
			Details: err.Error(),
		})
		return
	}

	items := make([]ActiveEventItem, 0, len(events))
	for _, ev := range events {
		items = append(items, ActiveEventItem{
			ID:                ev.ID,
			Name:              ev.Name,
			LateThreshold:     ev.LateThreshold,
			IsOpenForCheckout: ev.IsOpenForCheckout,
		})
	}

	if storage.RedisClient != nil {
		if data, err := json.Marshal(items); err == nil {
			storage.RedisClient.Set(ctx, activeEventsCacheKey, data, 60*time.Second)
		}
	}

	c.JSON(http.StatusOK, items)
}

// loadEvent извлекает мероприятие по параметру :id, отвечая за ошибки сам.
func loadEvent(c *gin.Context) (models.Event, bool) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_EVENT_ID",
			Message: "Неверный идентификатор мероприятия",
		})
		return models.Event{}, false
	}

	var event models.Event
	if err := storage.DB.First(&event, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Мероприятие не найдено",
		})
		return models.Event{}, false
	}
	return event, true
}

// loadOwnEvent — как loadEvent, но дополнительно сверяет владельца:
// менеджер управляет только своими мероприятиями.
func loadOwnEvent(c *gin.Context) (models.Event, bool) {
	event, ok := loadEvent(c)
	if !ok {
		return models.Event{}, false
	}
	if event.CreatedBy != c.GetUint("userID") {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "NOT_OWNER",
			Message: "Мероприятие принадлежит другому менеджеру",
		})
		return models.Event{}, false
	}
	return event, true
}

func invalidateActiveEventsCache() {
	if storage.RedisClient != nil {
		storage.RedisClient.Del(ctx, activeEventsCacheKey)
	}
}
