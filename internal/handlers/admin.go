package handlers

import (
	"net/http"
	"strconv"

	"eventflow/internal/models"
	"eventflow/internal/response"
	"eventflow/internal/storage"

	"github.com/gin-gonic/gin"
)

// ManagerItem — менеджер в списке администратора.
type ManagerItem struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
	IsApproved bool   `json:"is_approved"`
}

// ListManagersHandler возвращает всех менеджеров
// @Summary		Список менеджеров
// @Description	Все зарегистрированные менеджеры с признаком одобрения. Доступно только администратору.
// @Tags			admin
// @Produce		json
// @Success		200	{array}		ManagerItem
// @Failure		401	{object}	response.ErrorResponse	"Нет доступа (ADMIN_DENIED)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/managers [get]
func ListManagersHandler(c *gin.Context) {
	var users []models.User
	if err := storage.DB.Order("created_at ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки менеджеров",
			Details: err.Error(),
		})
		return
	}

	items := make([]ManagerItem, 0, len(users))
	for _, u := range users {
		items = append(items, ManagerItem{
			ID:         u.ID,
			Name:       u.Name,
			Surname:    u.Surname,
			Email:      u.Email,
			IsApproved: u.IsApproved,
		})
	}
	c.JSON(http.StatusOK, items)
}

type ApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// SetManagerApprovalHandler включает/выключает доступ менеджера
// @Summary		Одобрение менеджера
// @Description	Пока менеджер не одобрен, его токен не даёт доступа к управлению мероприятиями.
// @Tags			admin
// @Accept			json
// @Produce		json
// @Param			id			path	string			true	"ID менеджера"
// @Param			approval	body	ApprovalRequest	true	"Новое состояние"
// @Success		200	{object}	ManagerItem
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_USER_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Менеджер не найден (USER_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/managers/{id}/approval [put]
func SetManagerApprovalHandler(c *gin.Context) {
	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_USER_ID",
			Message: "Неверный идентификатор менеджера",
		})
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "Менеджер не найден",
		})
		return
	}

	user.IsApproved = *req.Approved
	if err := storage.DB.Model(&user).Update("is_approved", *req.Approved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка обновления менеджера",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ManagerItem{
		ID:         user.ID,
		Name:       user.Name,
		Surname:    user.Surname,
		Email:      user.Email,
		IsApproved: user.IsApproved,
	})
}
