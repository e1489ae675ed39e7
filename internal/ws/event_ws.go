package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"eventflow/internal/feed"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSMessage — сообщение для клиентов экрана мероприятия.
type WSMessage struct {
	EventType     string    `json:"event_type"`
	Kind          feed.Kind `json:"kind,omitempty"`
	ParticipantID uint      `json:"participant_id,omitempty"`
}

// Hub хранит подключения клиентов, сгруппированные по мероприятию, и
// транслирует им уведомления ленты изменений. Пока экран мероприятия открыт
// хотя бы у одного клиента, хаб держит одну подписку на ленту; с уходом
// последнего клиента подписка снимается.
type Hub struct {
	bus *feed.Bus
	// Для каждого мероприятия — множество подключений.
	clients map[uint]map[*Client]bool
	// Подписка на ленту мероприятия, пока есть хотя бы один клиент.
	feeds map[uint]*feed.Subscription
	// Канал для регистрации нового клиента.
	register chan *Client
	// Канал для удаления клиента.
	unregister chan *Client
	// Канал для трансляции сообщений по конкретному мероприятию.
	broadcast chan BroadcastMessage
	mu        sync.RWMutex
}

// BroadcastMessage представляет сообщение для рассылки клиентам мероприятия.
type BroadcastMessage struct {
	EventID uint
	Message []byte
}

// HubInstance — глобальный экземпляр хаба.
var HubInstance = NewHub(feed.Default)

func NewHub(bus *feed.Bus) *Hub {
	return &Hub{
		bus:        bus,
		clients:    make(map[uint]map[*Client]bool),
		feeds:      make(map[uint]*feed.Subscription),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan BroadcastMessage),
	}
}

// Run запускает цикл обработки каналов хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.EventID] == nil {
				h.clients[client.EventID] = make(map[*Client]bool)
				// Первый клиент мероприятия — подписываемся на ленту.
				sub := h.bus.Subscribe(client.EventID)
				h.feeds[client.EventID] = sub
				go h.pumpFeed(client.EventID, sub)
			}
			h.clients[client.EventID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.EventID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.clients, client.EventID)
						if sub, ok := h.feeds[client.EventID]; ok {
							sub.Close()
							delete(h.feeds, client.EventID)
						}
					}
				}
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.RLock()
			if clients, ok := h.clients[message.EventID]; ok {
				for client := range clients {
					select {
					case client.Send <- message.Message:
					default:
						close(client.Send)
						delete(clients, client)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// pumpFeed пересылает уведомления ленты мероприятия в broadcast,
// пока подписка не закрыта.
func (h *Hub) pumpFeed(eventID uint, sub *feed.Subscription) {
	for change := range sub.C {
		msg, err := json.Marshal(WSMessage{
			EventType:     "participant_changed",
			Kind:          change.Kind,
			ParticipantID: change.ParticipantID,
		})
		if err != nil {
			continue
		}
		h.broadcast <- BroadcastMessage{EventID: eventID, Message: msg}
	}
}

// Client представляет одно подключение через WebSocket.
type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	EventID uint
}

// readPump читает сообщения из WebSocket-соединения.
// Входящие сообщения не обрабатываются, отслеживается только разрыв соединения.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}
		log.Printf("Получено сообщение от клиента: %s", message)
	}
}

// writePump отправляет сообщения клиенту из канала Send.
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Канал закрыт.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			// Ping для поддержания соединения.
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Настраиваем апгрейдер для WebSocket с разрешением всех источников.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventWebSocketHandler обновляет соединение до WebSocket и регистрирует
// клиента в Hub. URL-пример: /api/events/{id}/ws
func EventWebSocketHandler(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный идентификатор мероприятия"})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.Error(c.Writer, "Ошибка обновления до WebSocket", http.StatusInternalServerError)
		return
	}
	client := &Client{
		Hub:     HubInstance,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		EventID: uint(eventID),
	}
	HubInstance.register <- client

	go client.writePump()
	client.readPump()
}
