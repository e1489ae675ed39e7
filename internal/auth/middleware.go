package auth

import (
	"net/http"
	"os"
	"strings"

	"eventflow/internal/handlers"
	"eventflow/internal/models"
	"eventflow/internal/response"
	"eventflow/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware проверяет валидность access токена
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "NO_AUTH_HEADER",
				Message: "Требуется авторизация",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return handlers.AccessSecret, nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Неверный или просроченный токен",
			})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN_CLAIMS",
				Message: "Невозможно прочитать claims токена",
			})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_USER_ID",
				Message: "Невозможно извлечь user_id",
			})
			c.Abort()
			return
		}

		c.Set("userID", uint(userID))
		c.Next()
	}
}

// ApprovedOnly пропускает только менеджеров, одобренных администратором.
// Регистрация менеджера создаёт учётку с is_approved=false; до одобрения
// доступ к мероприятиям закрыт.
func ApprovedOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")

		var user models.User
		if err := storage.DB.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "USER_NOT_FOUND",
				Message: "Пользователь не найден",
			})
			c.Abort()
			return
		}

		if !user.IsApproved {
			c.JSON(http.StatusForbidden, response.ErrorResponse{
				Code:    "NOT_APPROVED",
				Message: "Учётная запись менеджера ещё не одобрена администратором",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly сверяет учётные данные администратора из заголовков с
// переменными окружения ADMIN_USER / ADMIN_PASS.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetHeader("X-Admin-User")
		pass := c.GetHeader("X-Admin-Pass")
		if user == "" || user != os.Getenv("ADMIN_USER") || pass != os.Getenv("ADMIN_PASS") {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "ADMIN_DENIED",
				Message: "Доступ запрещён",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
