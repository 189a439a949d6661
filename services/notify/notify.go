package notify

import (
	"fmt"
	"strings"

	"betTracker/services/settlement"

	"github.com/bwmarrin/discordgo"
)

const maxErrorLines = 15

// SendSettlementReport posts a pass summary to the operations channel.
// Notification is best-effort; settlement results are already committed by
// the time this runs.
func SendSettlementReport(s *discordgo.Session, channelID string, report settlement.Report) error {
	var description strings.Builder
	description.WriteString(fmt.Sprintf("**Pass:** %s\n", report.PassID))
	description.WriteString(fmt.Sprintf("**Graded:** %d legs\n", report.Graded))
	description.WriteString(fmt.Sprintf("**Skipped:** %d legs\n", report.Skipped))

	title := "✅ Settlement Pass Complete"
	color := 0x57F287
	if len(report.Errors) > 0 {
		title = "⚠️ Settlement Pass Completed With Errors"
		color = 0xED4245

		description.WriteString(fmt.Sprintf("\n**Errors (%d):**\n", len(report.Errors)))
		for idx, legErr := range report.Errors {
			if idx == maxErrorLines {
				description.WriteString(fmt.Sprintf("…and %d more\n", len(report.Errors)-maxErrorLines))
				break
			}
			description.WriteString(fmt.Sprintf("%d. %s\n", idx+1, legErr.String()))
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description.String(),
		Color:       color,
	}

	_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	return err
}
