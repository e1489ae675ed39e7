package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"eventflow/internal/handlers"
	"eventflow/internal/models"
	"eventflow/internal/storage"
	"eventflow/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func AuthMiddlewareTest() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.Request.Header.Get("X-Test-UserID")
		if userIDStr == "" {
			// Значение по умолчанию
			c.Set("userID", uint(1))
		} else {
			id, err := strconv.Atoi(userIDStr)
			if err != nil {
				c.Set("userID", uint(1))
			} else {
				c.Set("userID", uint(id))
			}
		}
		c.Next()
	}
}

func setupTestServer() *httptest.Server {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load("../.env")
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectTestingDatabase()
	storage.DB.Exec("TRUNCATE TABLE users, events, participants RESTART IDENTITY CASCADE;")

	if err := storage.DB.AutoMigrate(&models.User{}, &models.Event{}, &models.Participant{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis()

	go ws.HubInstance.Run()

	r := gin.Default()

	public := r.Group("/public")
	{
		public.GET("/events", handlers.ListActiveEventsHandler)
		public.POST("/events/:id/participants", handlers.RegisterParticipantHandler)
		public.POST("/events/:id/participants/login", handlers.ParticipantLoginHandler)
		public.GET("/participants/:id", handlers.GetParticipantHandler)
		public.POST("/participants/:id/checkout", handlers.SelfCheckoutHandler)
	}

	api := r.Group("/api", AuthMiddlewareTest())
	{
		api.POST("/events", handlers.CreateEventHandler)
		api.PUT("/events/:id/checkout-mode", handlers.ToggleCheckoutHandler)
		api.PUT("/events/:id/status/:status", handlers.SetEventStatusHandler)
		api.GET("/events/:id/report.csv", handlers.EventReportHandler)

		api.DELETE("/participants/:id", handlers.DeleteParticipantHandler)

		api.POST("/events/:id/console", handlers.OpenConsoleHandler)
		api.POST("/console/:id/scan", handlers.ConsoleScanHandler)
		api.GET("/console/:id", handlers.ConsoleStateHandler)
		api.DELETE("/console/:id", handlers.CloseConsoleHandler)
	}

	r.GET("/api/events/:id/ws", ws.EventWebSocketHandler)

	return httptest.NewServer(r)
}

func postJSON(t *testing.T, url string, body interface{}, userID uint) *http.Response {
	data, err := json.Marshal(body)
	assert.NoError(t, err)
	req, _ := http.NewRequest("POST", url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-UserID", fmt.Sprintf("%d", userID))
	}
	res, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	return res
}

func fetchParticipant(t *testing.T, url string) models.Participant {
	t.Helper()
	res, err := http.Get(url)
	assert.NoError(t, err)
	defer res.Body.Close()

	var pass struct {
		Participant models.Participant `json:"participant"`
	}
	err = json.NewDecoder(res.Body).Decode(&pass)
	assert.NoError(t, err)
	return pass.Participant
}

func scan(t *testing.T, ts *httptest.Server, consoleID, payload, phase string, userID uint) map[string]interface{} {
	res := postJSON(t, ts.URL+"/api/console/"+consoleID+"/scan", map[string]string{
		"payload": payload,
		"phase":   phase,
	}, userID)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode, "Скан должен возвращать 200 даже при отказе")

	var result map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&result)
	assert.NoError(t, err, "Ошибка разбора результата скана")
	return result
}

func TestAttendanceFlow(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	// 1. Менеджер создаётся напрямую в базе, уже одобренный.
	manager := models.User{
		Name:         "Анна",
		Surname:      "Менеджерова",
		Email:        fmt.Sprintf("manager_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "hashed123",
		IsApproved:   true,
	}
	err := storage.DB.Create(&manager).Error
	assert.NoError(t, err, "Ошибка создания менеджера")

	// 2. Создаём мероприятие через API. Порог опоздания в будущем: сканы
	// в тесте должны давать present, а не late.
	lateThreshold := time.Now().Add(time.Hour)
	res := postJSON(t, ts.URL+"/api/events", map[string]interface{}{
		"name":           "Тестовая конференция",
		"late_threshold": lateThreshold.Format(time.RFC3339),
	}, manager.ID)
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Ошибка создания мероприятия")

	var event models.Event
	err = json.NewDecoder(res.Body).Decode(&event)
	assert.NoError(t, err)
	log.Println("Мероприятие создано, ID:", event.ID)

	// Черновик недоступен для регистрации участников.
	regURL := ts.URL + "/public/events/" + strconv.Itoa(int(event.ID)) + "/participants"
	resDraft := postJSON(t, regURL, map[string]string{
		"full_name":  "Иванов Иван",
		"student_id": "ST-001",
		"email":      "ivanov@example.com",
	}, 0)
	defer resDraft.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resDraft.StatusCode, "Регистрация на черновик должна быть закрыта")

	// 3. Активируем мероприятие.
	reqActivate, _ := http.NewRequest("PUT", ts.URL+"/api/events/"+strconv.Itoa(int(event.ID))+"/status/active", nil)
	reqActivate.Header.Set("X-Test-UserID", fmt.Sprintf("%d", manager.ID))
	resActivate, err := http.DefaultClient.Do(reqActivate)
	assert.NoError(t, err)
	defer resActivate.Body.Close()
	assert.Equal(t, http.StatusOK, resActivate.StatusCode, "Ошибка активации мероприятия")

	// 4. Участник регистрируется и получает пропуск с QR.
	resReg := postJSON(t, regURL, map[string]string{
		"full_name":  "Иванов Иван",
		"student_id": "ST-001",
		"email":      "ivanov@example.com",
	}, 0)
	defer resReg.Body.Close()
	assert.Equal(t, http.StatusCreated, resReg.StatusCode, "Ошибка регистрации участника")

	var pass struct {
		Participant models.Participant `json:"participant"`
		QRPayload   string             `json:"qr_payload"`
	}
	err = json.NewDecoder(resReg.Body).Decode(&pass)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusRegistered, pass.Participant.Status)
	assert.Equal(t, "EVENTFLOW:ST-001:"+strconv.Itoa(int(event.ID)), pass.QRPayload)
	log.Println("Участник зарегистрирован, ID:", pass.Participant.ID)

	// Повторная регистрация того же кода — конфликт.
	resDup := postJSON(t, regURL, map[string]string{
		"full_name":  "Самозванец",
		"student_id": "ST-001",
		"email":      "fake@example.com",
	}, 0)
	defer resDup.Body.Close()
	assert.Equal(t, http.StatusConflict, resDup.StatusCode, "Повторный код должен давать конфликт")

	// 5. Открываем консоль мероприятия.
	resConsole := postJSON(t, ts.URL+"/api/events/"+strconv.Itoa(int(event.ID))+"/console", nil, manager.ID)
	defer resConsole.Body.Close()
	assert.Equal(t, http.StatusCreated, resConsole.StatusCode, "Ошибка открытия консоли")

	var opened struct {
		ConsoleID string `json:"console_id"`
	}
	err = json.NewDecoder(resConsole.Body).Decode(&opened)
	assert.NoError(t, err)
	log.Println("Консоль открыта, ID:", opened.ConsoleID)

	// 6. Подключаемся к WS мероприятия.
	wsURL := "ws" + ts.URL[4:] + "/api/events/" + strconv.Itoa(int(event.ID)) + "/ws"
	wsConn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err, "Ошибка подключения к WS")
	defer wsConn.Close()

	// 7. Скан входа: registered -> present, запись "Time In".
	result := scan(t, ts, opened.ConsoleID, pass.QRPayload, "check-in", manager.ID)
	assert.Equal(t, true, result["applied"])
	assert.Equal(t, "present", result["status"])
	assert.Equal(t, "Time In", result["log_type"])

	// WS: уведомление об изменении участника после записи в базу.
	wsConn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, wsMessage, err := wsConn.ReadMessage()
	assert.NoError(t, err, "Ошибка чтения WS сообщения")
	var wsMsg map[string]interface{}
	err = json.Unmarshal(wsMessage, &wsMsg)
	assert.NoError(t, err)
	assert.Equal(t, "participant_changed", wsMsg["event_type"], "Неверный тип WS сообщения")

	// Повторный скан входа — отказ без изменения состояния.
	repeat := scan(t, ts, opened.ConsoleID, pass.QRPayload, "check-in", manager.ID)
	assert.Equal(t, false, repeat["applied"])
	assert.Equal(t, "no_transition", repeat["reason"])

	// Чужой код — тихий отказ.
	foreign := scan(t, ts, opened.ConsoleID, "EVENTFLOW:ST-001:999999", "check-in", manager.ID)
	assert.Equal(t, false, foreign["applied"])
	assert.Equal(t, "foreign_event", foreign["reason"])

	// 8. Перерыв туда и обратно.
	breakStart := scan(t, ts, opened.ConsoleID, pass.QRPayload, "break", manager.ID)
	assert.Equal(t, true, breakStart["applied"])
	assert.Equal(t, "break", breakStart["status"])
	assert.Equal(t, "Break Start", breakStart["log_type"])

	// Ждём, пока фоновая запись скана доедет до хранилища.
	participantURL := ts.URL + "/public/participants/" + strconv.Itoa(int(pass.Participant.ID))
	assert.Eventually(t, func() bool {
		return fetchParticipant(t, participantURL).Status == models.StatusBreak
	}, 5*time.Second, 100*time.Millisecond, "статус break не доехал до хранилища")

	// С перерыва самостоятельный выход запрещён: ни статус, ни журнал не меняются.
	checkoutURL := ts.URL + "/public/participants/" + strconv.Itoa(int(pass.Participant.ID)) + "/checkout"
	resOnBreak := postJSON(t, checkoutURL, nil, 0)
	defer resOnBreak.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resOnBreak.StatusCode, "Выход с перерыва должен быть запрещён")
	var onBreakErr struct {
		Code string `json:"code"`
	}
	err = json.NewDecoder(resOnBreak.Body).Decode(&onBreakErr)
	assert.NoError(t, err)
	assert.Equal(t, "ON_BREAK", onBreakErr.Code)

	afterReject := fetchParticipant(t, participantURL)
	assert.Equal(t, models.StatusBreak, afterReject.Status, "статус не должен меняться при отказе")
	assert.Len(t, afterReject.Logs, 2, "отказ не должен добавлять запись в журнал") // Time In, Break Start

	breakReturn := scan(t, ts, opened.ConsoleID, pass.QRPayload, "break", manager.ID)
	assert.Equal(t, true, breakReturn["applied"])
	assert.Equal(t, "present", breakReturn["status"])
	assert.Equal(t, "Break Return", breakReturn["log_type"])

	// 9. Самостоятельный выход закрыт, пока менеджер не открыл флаг.
	assert.Eventually(t, func() bool {
		return fetchParticipant(t, participantURL).Status == models.StatusPresent
	}, 5*time.Second, 100*time.Millisecond, "возврат с перерыва не доехал до хранилища")

	resClosed := postJSON(t, checkoutURL, nil, 0)
	defer resClosed.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resClosed.StatusCode, "Выход при закрытом флаге должен быть запрещён")
	var closedErr struct {
		Code string `json:"code"`
	}
	err = json.NewDecoder(resClosed.Body).Decode(&closedErr)
	assert.NoError(t, err)
	assert.Equal(t, "CHECKOUT_CLOSED", closedErr.Code)

	reqMode, _ := http.NewRequest("PUT", ts.URL+"/api/events/"+strconv.Itoa(int(event.ID))+"/checkout-mode",
		bytes.NewReader([]byte(`{"open": true}`)))
	reqMode.Header.Set("Content-Type", "application/json")
	reqMode.Header.Set("X-Test-UserID", fmt.Sprintf("%d", manager.ID))
	resMode, err := http.DefaultClient.Do(reqMode)
	assert.NoError(t, err)
	defer resMode.Body.Close()
	assert.Equal(t, http.StatusOK, resMode.StatusCode, "Ошибка открытия самостоятельного выхода")

	// Чужой менеджер не управляет этим мероприятием.
	stranger := models.User{
		Name:         "Борис",
		Surname:      "Посторонний",
		Email:        fmt.Sprintf("stranger_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "hashed456",
		IsApproved:   true,
	}
	err = storage.DB.Create(&stranger).Error
	assert.NoError(t, err, "Ошибка создания второго менеджера")

	reqForeign, _ := http.NewRequest("PUT", ts.URL+"/api/events/"+strconv.Itoa(int(event.ID))+"/checkout-mode",
		bytes.NewReader([]byte(`{"open": false}`)))
	reqForeign.Header.Set("Content-Type", "application/json")
	reqForeign.Header.Set("X-Test-UserID", fmt.Sprintf("%d", stranger.ID))
	resForeign, err := http.DefaultClient.Do(reqForeign)
	assert.NoError(t, err)
	defer resForeign.Body.Close()
	assert.Equal(t, http.StatusForbidden, resForeign.StatusCode, "Чужой менеджер не должен менять мероприятие")

	resCheckout := postJSON(t, checkoutURL, nil, 0)
	defer resCheckout.Body.Close()
	assert.Equal(t, http.StatusOK, resCheckout.StatusCode, "Ошибка самостоятельного выхода")

	var checkedOut struct {
		Participant models.Participant `json:"participant"`
	}
	err = json.NewDecoder(resCheckout.Body).Decode(&checkedOut)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCheckedOut, checkedOut.Participant.Status)

	// 10. Консоль узнаёт о самостоятельном выходе через ленту изменений.
	stateURL := ts.URL + "/api/console/" + opened.ConsoleID
	assert.Eventually(t, func() bool {
		req, _ := http.NewRequest("GET", stateURL, nil)
		req.Header.Set("X-Test-UserID", fmt.Sprintf("%d", manager.ID))
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}
		defer res.Body.Close()
		var projection []models.Participant
		if err := json.NewDecoder(res.Body).Decode(&projection); err != nil {
			return false
		}
		return len(projection) == 1 && projection[0].Status == models.StatusCheckedOut
	}, 5*time.Second, 100*time.Millisecond, "Проекция консоли не обновилась после самостоятельного выхода")

	// 11. Итоговый отчёт: вход, выход и полный журнал.
	reqReport, _ := http.NewRequest("GET", ts.URL+"/api/events/"+strconv.Itoa(int(event.ID))+"/report.csv", nil)
	reqReport.Header.Set("X-Test-UserID", fmt.Sprintf("%d", manager.ID))
	resReport, err := http.DefaultClient.Do(reqReport)
	assert.NoError(t, err)
	defer resReport.Body.Close()
	assert.Equal(t, http.StatusOK, resReport.StatusCode, "Ошибка выгрузки отчёта")
	assert.Contains(t, resReport.Header.Get("Content-Type"), "text/csv")

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resReport.Body)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "Student ID,Name,Email,Status,Time In,Time Out,Total Logs", lines[0])
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "ST-001")
	assert.Contains(t, lines[1], "checked_out")
	// Time In, Break Start, Break Return, Self Checkout
	assert.True(t, strings.HasSuffix(lines[1], ",4"), "В журнале должно быть 4 записи: "+lines[1])

	// 12. Удаление участника освобождает его код: повторная регистрация
	// того же student_id проходит с чистым журналом.
	reqDel, _ := http.NewRequest("DELETE", ts.URL+"/api/participants/"+strconv.Itoa(int(pass.Participant.ID))+"?confirm=true", nil)
	reqDel.Header.Set("X-Test-UserID", fmt.Sprintf("%d", manager.ID))
	resDel, err := http.DefaultClient.Do(reqDel)
	assert.NoError(t, err)
	defer resDel.Body.Close()
	assert.Equal(t, http.StatusOK, resDel.StatusCode, "Ошибка удаления участника")

	resReReg := postJSON(t, regURL, map[string]string{
		"full_name":  "Иванов Иван",
		"student_id": "ST-001",
		"email":      "ivanov@example.com",
	}, 0)
	defer resReReg.Body.Close()
	assert.Equal(t, http.StatusCreated, resReReg.StatusCode, "Код удалённого участника должен регистрироваться заново")

	var rePass struct {
		Participant models.Participant `json:"participant"`
	}
	err = json.NewDecoder(resReReg.Body).Decode(&rePass)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusRegistered, rePass.Participant.Status)
	assert.Empty(t, rePass.Participant.Logs, "журнал новой записи должен быть пустым")
	assert.NotEqual(t, pass.Participant.ID, rePass.Participant.ID)

	// 13. Закрываем консоль; повторное закрытие — 404.
	reqClose, _ := http.NewRequest("DELETE", stateURL, nil)
	reqClose.Header.Set("X-Test-UserID", fmt.Sprintf("%d", manager.ID))
	resClose, err := http.DefaultClient.Do(reqClose)
	assert.NoError(t, err)
	defer resClose.Body.Close()
	assert.Equal(t, http.StatusOK, resClose.StatusCode, "Ошибка закрытия консоли")

	reqClose2, _ := http.NewRequest("DELETE", stateURL, nil)
	reqClose2.Header.Set("X-Test-UserID", fmt.Sprintf("%d", manager.ID))
	resClose2, err := http.DefaultClient.Do(reqClose2)
	assert.NoError(t, err)
	defer resClose2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resClose2.StatusCode, "Закрытая консоль должна давать 404")
}
