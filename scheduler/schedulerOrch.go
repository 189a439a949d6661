package scheduler

import (
	"fmt"

	"betTracker/config"
	"betTracker/models"
	"betTracker/scheduler/scheduler_jobs"
	"betTracker/services/settlement"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func SetupCron(coord *settlement.Coordinator, s *discordgo.Session, cfg *config.Config, db *gorm.DB) *cron.Cron {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc(cfg.SettlementCron, func() {
		err := scheduler_jobs.RunSettlement(coord, s, cfg.ReportChannelID, db)
		if err != nil {
			fmt.Println(err)
		}
	})

	if err != nil {
		errLog := models.ErrorLog{
			Scope:   "CRON ERR",
			Message: fmt.Sprintf("%v", err),
		}
		db.Create(&errLog)
	}

	cronService.Start()
	return cronService
}
