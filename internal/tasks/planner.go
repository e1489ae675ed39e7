package tasks

import (
	"context"
	"log"
	"time"

	"eventflow/internal/console"
	"eventflow/internal/models"
	"eventflow/internal/storage"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
)

// CloseExpiredEvents переводит в closed активные мероприятия, у которых
// прошло время окончания. Участники перестают видеть их в списке выбора.
func CloseExpiredEvents() {
	now := time.Now()

	var events []models.Event
	if err := storage.DB.
		Where("status = ? AND ends_at IS NOT NULL AND ends_at < ?", models.EventActive, now).
		Find(&events).Error; err != nil {
		log.Println("Ошибка поиска истёкших мероприятий:", err)
		return
	}

	if len(events) == 0 {
		return
	}

	for _, ev := range events {
		if err := storage.DB.Model(&ev).Update("status", models.EventClosed).Error; err != nil {
			log.Printf("Ошибка закрытия мероприятия %d: %v\n", ev.ID, err)
			continue
		}
		log.Printf("Мероприятие '%s' (id=%d) закрыто по времени окончания.\n", ev.Name, ev.ID)
	}

	// Список активных мероприятий изменился — сбрасываем кэш.
	if storage.RedisClient != nil {
		if err := storage.RedisClient.Del(context.Background(), "events_active").Err(); err != nil && err != redis.Nil {
			log.Println("Ошибка сброса кэша активных мероприятий:", err)
		}
	}
}

// CloseIdleConsoles закрывает консоли, по которым давно не было сканов.
// Страховка на случай, когда оператор ушёл с экрана, не закрыв консоль.
func CloseIdleConsoles() {
	closed := console.Active.EvictIdle(time.Hour)
	if closed > 0 {
		log.Printf("Закрыто консолей по простою: %d\n", closed)
	}
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Закрытие истёкших мероприятий каждые 5 минут.
	_, err := c.AddFunc("0 */5 * * * *", CloseExpiredEvents)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи CloseExpiredEvents:", err)
	}

	// Уборка простаивающих консолей раз в час.
	_, err = c.AddFunc("0 0 * * * *", CloseIdleConsoles)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи CloseIdleConsoles:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
