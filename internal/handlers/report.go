package handlers

import (
	"fmt"
	"net/http"

	"eventflow/internal/models"
	"eventflow/internal/report"
	"eventflow/internal/response"
	"eventflow/internal/storage"

	"github.com/gin-gonic/gin"
)

// EventReportHandler выгружает итоговый отчёт посещаемости в CSV
// @Summary		Отчёт посещаемости (CSV)
// @Description	Отчёт строится по итоговым журналам из хранилища, а не по локальной проекции консоли. Время входа — первая запись журнала, время выхода — последняя.
// @Tags			events
// @Produce		text/csv
// @Param			id	path	string	true	"ID мероприятия"
// @Security		BearerAuth
// @Success		200	{string}	string					"CSV-файл"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_EVENT_ID)"
// @Failure		403	{object}	response.ErrorResponse	"Чужое мероприятие (NOT_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Мероприятие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events/{id}/report.csv [get]
func EventReportHandler(c *gin.Context) {
	event, ok := loadOwnEvent(c)
	if !ok {
		return
	}

	var participants []models.Participant
	if err := storage.DB.
		Where("event_id = ?", event.ID).
		Order("full_name ASC").
		Find(&participants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки участников",
			Details: err.Error(),
		})
		return
	}

	data, err := report.WriteCSV(report.BuildRows(participants))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "REPORT_ERROR",
			Message: "Ошибка формирования отчёта",
			Details: err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("attendance_event_%d.csv", event.ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
