package scheduler_jobs

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"betTracker/services/common"
	"betTracker/services/notify"
	"betTracker/services/settlement"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

const passTimeout = 5 * time.Minute

// RunSettlement executes one settlement pass and fans the report out to the
// error log and, when configured, the Discord report channel.
func RunSettlement(coord *settlement.Coordinator, s *discordgo.Session, reportChannelID string, db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in RunSettlement", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in RunSettlement: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), passTimeout)
	defer cancel()

	report, err := coord.RunSettlementPass(ctx)
	if err != nil {
		common.LogError(db, "settlement", err.Error())
		return err
	}

	log.Printf("settlement pass %s: graded=%d skipped=%d errors=%d",
		report.PassID, report.Graded, report.Skipped, len(report.Errors))

	for _, legErr := range report.Errors {
		common.LogError(db, "settlement", legErr.String())
	}

	if s != nil && reportChannelID != "" {
		if notifyErr := notify.SendSettlementReport(s, reportChannelID, report); notifyErr != nil {
			log.Printf("Error sending settlement report: %v", notifyErr)
		}
	}

	return nil
}
