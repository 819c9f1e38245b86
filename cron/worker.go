package cron

import (
	"context"
	"log"
	"time"

	"rentacar/config"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeNotificationSweep = "notification:sweep"

// Sweeper checks every signed-in chat for fresh unread notifications.
type Sweeper interface {
	SweepNotifications(ctx context.Context) error
}

// InitNotificationWorker runs the async worker and its scheduler in background.
// The scheduler enqueues a sweep task on the configured cadence; the worker
// executes it.
func InitNotificationWorker(sweeper Sweeper) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotificationSweep, handleSweepTask(sweeper))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[NotificationWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	go runScheduler(redisOpts)
}

// runScheduler registers the periodic sweep with the cadence from config.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, nil)
	spec := config.AppConfig.NotificationSweepSpec
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeNotificationSweep, nil)); err != nil {
		log.Printf("[NotificationScheduler] ❌ Failed to register sweep task: %v", err)
		return
	}
	log.Printf("[NotificationScheduler] ⏰ Sweep scheduled: %s", spec)
	if err := scheduler.Run(); err != nil {
		log.Printf("[NotificationScheduler] ❌ Scheduler stopped: %v", err)
	}
}

func handleSweepTask(sweeper Sweeper) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		if err := sweeper.SweepNotifications(ctx); err != nil {
			log.Printf("[NotificationSweep] ❌ Sweep failed: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NotificationWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
