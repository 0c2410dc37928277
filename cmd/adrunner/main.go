package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"evorgs/internal/config"
	"evorgs/internal/database"
	"evorgs/internal/domain/ads"
	"evorgs/internal/domain/adscheduling"
	"evorgs/internal/domain/auth"
	"evorgs/internal/domain/booking"
	"evorgs/internal/domain/catalog"
	"evorgs/internal/notification"
)

// adrunner is the out-of-process background worker. It wakes on cron
// ticks to drain due ad schedules (with the retry policy applied) and
// to send payment-reminder emails for upcoming unpaid bookings.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DB.DSN)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}

	var mailer notification.Mailer
	if cfg.Email.SMTPHost != "" {
		mailer = notification.NewSMTPMailer(cfg.Email)
	} else {
		mailer = notification.NewDevMailer(logger)
	}
	notifs := notification.NewService(mailer, logger)

	scheduleRepo := adscheduling.NewRepository(db)
	adRepo := ads.NewRepository(db)
	runner := adscheduling.NewRunner(scheduleRepo, adRepo, nil, logger)

	authService := auth.NewService(auth.NewRepository(db), nil, notifs, cfg.JWT.OTPPepper, logger)
	catalogService := catalog.NewService(catalog.NewRepository(db))
	bookingService := booking.NewService(booking.NewRepository(db), catalogService, authService, notifs, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cron.New()
	_, err = c.AddFunc(cfg.Runner.CronSpec, func() {
		n, err := runner.RunDue(ctx)
		if err != nil {
			logger.Error("run tick failed", zap.Error(err))
			return
		}
		if n > 0 {
			logger.Info("runs completed", zap.Int("count", n))
		}
	})
	if err != nil {
		logger.Fatal("invalid cron spec", zap.String("spec", cfg.Runner.CronSpec), zap.Error(err))
	}

	_, err = c.AddFunc(cfg.Runner.ReminderCron, func() {
		n, err := bookingService.SendPaymentReminders(ctx, 48*time.Hour)
		if err != nil {
			logger.Error("reminder tick failed", zap.Error(err))
			return
		}
		if n > 0 {
			logger.Info("payment reminders sent", zap.Int("count", n))
		}
	})
	if err != nil {
		logger.Fatal("invalid cron spec", zap.String("spec", cfg.Runner.ReminderCron), zap.Error(err))
	}

	c.Start()
	logger.Info("adrunner started",
		zap.String("run_cron", cfg.Runner.CronSpec),
		zap.String("reminder_cron", cfg.Runner.ReminderCron),
	)

	<-ctx.Done()
	logger.Info("shutting down")
	<-c.Stop().Done()
}
