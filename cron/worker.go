package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"spedocity/config"
	"spedocity/models"
	"spedocity/services/notification"
	"spedocity/services/tasks"
	"spedocity/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(notifSvc))

	go monitorRedisConnection()

	go func() {
		logger := utils.GetLogger().Named("ReminderWorker")
		logger.Info("Starting async reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("Failed to start worker",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("Max retry attempts reached, giving up on reminder worker")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger().Named("ReminderHandler")

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return err
		}

		logger.Info("Triggering booking reminder",
			zap.String("userId", p.UserID),
			zap.String("bookingRef", p.BookingRef))

		title := "Upcoming pickup"
		body := fmt.Sprintf("Your booking %s is scheduled for %s. Please keep your items ready.", p.BookingRef, p.TimeSlot)
		data := map[string]string{
			"orderId":    p.OrderID,
			"bookingRef": p.BookingRef,
			"timeSlot":   p.TimeSlot,
		}

		if err := notifSvc.Push(ctx, p.UserID, title, body, data); err != nil {
			logger.Error("Failed to deliver reminder notification", zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at
// runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})

	ctx := context.Background()
	logger := utils.GetLogger().Named("ReminderWorker")

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
