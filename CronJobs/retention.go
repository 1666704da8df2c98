package CronJobs

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/AnmolGhill/Halo/Logger"
	"github.com/AnmolGhill/Halo/Models"
)

// ConversationRetention prunes stored chat history past the retention window.
type ConversationRetention struct {
	Days int
}

// NewConversationRetention creates a new retention service
func NewConversationRetention(days int) *ConversationRetention {
	return &ConversationRetention{Days: days}
}

// StartRetentionCron starts the daily pruning job.
func (cr *ConversationRetention) StartRetentionCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(24).Hours().Do(func() {
		if err := cr.PruneExpired(); err != nil {
			Logger.L.Error("conversation retention pass failed", zap.Error(err))
		}
	})

	scheduler.StartAsync()
	Logger.L.Info("conversation retention cron started", zap.Int("retention_days", cr.Days))

	return scheduler
}

func (cr *ConversationRetention) PruneExpired() error {
	cutoff := time.Now().AddDate(0, 0, -cr.Days)

	pruned, err := Models.PruneConversationsBefore(cutoff)
	if err != nil {
		return err
	}
	if pruned > 0 {
		Logger.L.Info("pruned expired conversations", zap.Int64("count", pruned))
	}
	return nil
}
