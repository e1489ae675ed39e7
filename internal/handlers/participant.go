package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"eventflow/internal/attendance"
	"eventflow/internal/feed"
	"eventflow/internal/models"
	"eventflow/internal/response"
	"eventflow/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type RegisterParticipantRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	StudentID string `json:"student_id" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	// Сразу отметить вход при регистрации (участник регистрируется уже на месте).
	AutoCheckin bool `json:"auto_checkin"`
}

// ParticipantPass — данные пропуска участника.
type ParticipantPass struct {
	Participant models.Participant `json:"participant"`
	// Содержимое QR-кода пропуска: EVENTFLOW:<studentID>:<eventID>
	QRPayload string `json:"qr_payload"`
}

func passFor(p models.Participant) ParticipantPass {
	payload := attendance.NamespaceTag + ":" + p.StudentID + ":" + strconv.FormatUint(uint64(p.EventID), 10)
	return ParticipantPass{Participant: p, QRPayload: payload}
}

// RegisterParticipantHandler — самостоятельная регистрация участника
// @Summary		Регистрация участника
// @Description	Единственный путь появления записи участника: сканирование незнакомого кода участника не создаёт. Код участника уникален в пределах мероприятия.
// @Tags			participants
// @Accept			json
// @Produce		json
// @Param			id			path	string						true	"ID мероприятия"
// @Param			participant	body	RegisterParticipantRequest	true	"Данные участника"
// @Success		201	{object}	ParticipantPass			"Пропуск участника"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_EVENT_ID) или мероприятие не активно (EVENT_NOT_ACTIVE)"
// @Failure		404	{object}	response.ErrorResponse	"Мероприятие не найдено (EVENT_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Код уже зарегистрирован (STUDENT_EXISTS)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/public/events/{id}/participants [post]
func RegisterParticipantHandler(c *gin.Context) {
	var req RegisterParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	event, ok := loadEvent(c)
	if !ok {
		return
	}
	if event.Status != models.EventActive {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "EVENT_NOT_ACTIVE",
			Message: "Регистрация на это мероприятие закрыта",
		})
		return
	}

	var existing models.Participant
	if err := storage.DB.
		Where("event_id = ? AND student_id = ?", event.ID, req.StudentID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    "STUDENT_EXISTS",
			Message: "Этот код уже зарегистрирован. Войдите по коду участника",
		})
		return
	}

	participant := models.Participant{
		EventID:   event.ID,
		StudentID: req.StudentID,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Status:    models.StatusRegistered,
		Logs:      datatypes.NewJSONSlice([]models.LogEntry{}),
	}

	// Регистрация на месте: вход отмечается сразу, тем же движком переходов,
	// что и сканер оператора.
	if req.AutoCheckin {
		now := time.Now()
		if res, ok := attendance.Transition(participant.Status, models.PhaseCheckIn, event.LateThreshold, now); ok {
			logType := res.LogType
			if logType == attendance.LogTimeIn {
				logType = attendance.LogTimeInAuto
			}
			participant.Status = res.Next
			participant.Logs = datatypes.NewJSONSlice([]models.LogEntry{{Type: logType, Time: now}})
		}
	}

	if err := storage.DB.Create(&participant).Error; err != nil {
		// Страховка на случай гонки двух регистраций: уникальный индекс
		// (event_id, student_id) вернёт конфликт.
		if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
			c.JSON(http.StatusConflict, response.ErrorResponse{
				Code:    "STUDENT_EXISTS",
				Message: "Этот код уже зарегистрирован. Войдите по коду участника",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка регистрации участника",
			Details: err.Error(),
		})
		return
	}

	feed.Default.Publish(feed.Change{Kind: feed.KindInsert, EventID: event.ID, ParticipantID: participant.ID})
	c.JSON(http.StatusCreated, passFor(participant))
}

type ParticipantLoginRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// ParticipantLoginHandler — вход зарегистрированного участника по коду
// @Summary		Вход участника
// @Description	Возвращает пропуск ранее зарегистрированного участника мероприятия.
// @Tags			participants
// @Accept			json
// @Produce		json
// @Param			id		path	string					true	"ID мероприятия"
// @Param			login	body	ParticipantLoginRequest	true	"Код участника"
// @Success		200	{object}	ParticipantPass
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_EVENT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Участник не найден (PARTICIPANT_NOT_FOUND) или мероприятие не найдено (EVENT_NOT_FOUND)"
// @Router			/public/events/{id}/participants/login [post]
func ParticipantLoginHandler(c *gin.Context) {
	var req ParticipantLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	event, ok := loadEvent(c)
	if !ok {
		return
	}

	var participant models.Participant
	if err := storage.DB.
		Where("event_id = ? AND student_id = ?", event.ID, req.StudentID).
		First(&participant).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "PARTICIPANT_NOT_FOUND",
			Message: "Код участника не найден",
		})
		return
	}

	c.JSON(http.StatusOK, passFor(participant))
}

// GetParticipantHandler — текущее состояние участника
// @Summary		Состояние участника
// @Description	Отдаёт свежую запись участника. Экран участника опрашивает этот эндпоинт с фиксированным интервалом.
// @Tags			participants
// @Produce		json
// @Param			id	path	string	true	"ID участника"
// @Success		200	{object}	ParticipantPass
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_PARTICIPANT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Участник не найден (PARTICIPANT_NOT_FOUND)"
// @Router			/public/participants/{id} [get]
func GetParticipantHandler(c *gin.Context) {
	participant, ok := loadParticipant(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, passFor(participant))
}

// SelfCheckoutHandler — самостоятельный выход участника
// @Summary		Самостоятельный выход
// @Description	Запрещён с перерыва и при выключенном флаге самостоятельного выхода. В отличие от сканера оператора, отказ записи в базу здесь возвращается участнику, состояние не сохраняется.
// @Tags			participants
// @Produce		json
// @Param			id	path	string	true	"ID участника"
// @Success		200	{object}	ParticipantPass			"Обновлённый пропуск"
// @Failure		400	{object}	response.ErrorResponse	"Выход запрещён (ON_BREAK, CHECKOUT_CLOSED, ALREADY_CHECKED_OUT) или неверный идентификатор (INVALID_PARTICIPANT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Участник не найден (PARTICIPANT_NOT_FOUND)"
// @Failure		502	{object}	response.ErrorResponse	"Хранилище недоступно (STORE_UNAVAILABLE)"
// @Router			/public/participants/{id}/checkout [post]
func SelfCheckoutHandler(c *gin.Context) {
	participant, ok := loadParticipant(c)
	if !ok {
		return
	}

	var event models.Event
	if err := storage.DB.First(&event, participant.EventID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Мероприятие не найдено",
		})
		return
	}

	// Самостоятельный выход строже операторского: с перерыва нельзя,
	// и только пока менеджер держит флаг открытым.
	if participant.Status == models.StatusBreak {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "ON_BREAK",
			Message: "Вы на перерыве. Сначала вернитесь с перерыва",
		})
		return
	}
	if !event.IsOpenForCheckout {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "CHECKOUT_CLOSED",
			Message: "Самостоятельный выход сейчас закрыт",
		})
		return
	}
	if participant.Status == models.StatusCheckedOut {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "ALREADY_CHECKED_OUT",
			Message: "Выход уже отмечен",
		})
		return
	}

	now := time.Now()
	newLogs := append(append([]models.LogEntry{}, participant.Logs...), models.LogEntry{
		Type: attendance.LogSelfCheckout,
		Time: now,
	})

	// Статус и журнал пишутся одним UPDATE. Ошибка возвращается участнику:
	// оператора, который мог бы исправить неверный статус, здесь нет.
	if err := storage.DB.Model(&models.Participant{}).
		Where("id = ?", participant.ID).
		Updates(map[string]interface{}{
			"status": models.StatusCheckedOut,
			"logs":   datatypes.NewJSONSlice(newLogs),
		}).Error; err != nil {
		c.JSON(http.StatusBadGateway, response.ErrorResponse{
			Code:    "STORE_UNAVAILABLE",
			Message: "Не удалось сохранить выход. Попробуйте ещё раз",
			Details: err.Error(),
		})
		return
	}

	participant.Status = models.StatusCheckedOut
	participant.Logs = datatypes.NewJSONSlice(newLogs)

	feed.Default.Publish(feed.Change{Kind: feed.KindUpdate, EventID: participant.EventID, ParticipantID: participant.ID})
	c.JSON(http.StatusOK, passFor(participant))
}

// DeleteParticipantHandler удаляет запись участника (только менеджер)
// @Summary		Удаление участника
// @Description	Необратимо удаляет запись участника вместе с журналом. Требует подтверждения ?confirm=true.
// @Tags			participants
// @Produce		json
// @Param			id		path	string	true	"ID участника"
// @Param			confirm	query	string	true	"Подтверждение удаления, должно быть true"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse
// @Failure		400	{object}	response.ErrorResponse	"Нет подтверждения (CONFIRM_REQUIRED) или неверный идентификатор (INVALID_PARTICIPANT_ID)"
// @Failure		403	{object}	response.ErrorResponse	"Чужое мероприятие (NOT_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Участник не найден (PARTICIPANT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/participants/{id} [delete]
func DeleteParticipantHandler(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "CONFIRM_REQUIRED",
			Message: "Удаление участника необратимо. Повторите запрос с ?confirm=true",
		})
		return
	}

	participant, ok := loadParticipant(c)
	if !ok {
		return
	}

	var event models.Event
	if err := storage.DB.First(&event, participant.EventID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Мероприятие не найдено",
		})
		return
	}
	if event.CreatedBy != c.GetUint("userID") {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "NOT_OWNER",
			Message: "Мероприятие принадлежит другому менеджеру",
		})
		return
	}

	// Запись стирается насовсем (Unscoped): уникальный индекс (event_id,
	// student_id) не видит удалённую строку, и код участника можно
	// зарегистрировать заново.
	if err := storage.DB.Unscoped().Delete(&participant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка удаления участника",
			Details: err.Error(),
		})
		return
	}

	feed.Default.Publish(feed.Change{Kind: feed.KindDelete, EventID: participant.EventID, ParticipantID: participant.ID})
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Участник удалён"})
}

func loadParticipant(c *gin.Context) (models.Participant, bool) {
	participantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_PARTICIPANT_ID",
			Message: "Неверный идентификатор участника",
		})
		return models.Participant{}, false
	}

	var participant models.Participant
	if err := storage.DB.First(&participant, participantID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "PARTICIPANT_NOT_FOUND",
			Message: "Участник не найден",
		})
		return models.Participant{}, false
	}
	return participant, true
}
