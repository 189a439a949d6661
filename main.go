package main

import (
	"log"

	"betTracker/config"
	"betTracker/models"
	"betTracker/scheduler"
	"betTracker/scheduler/scheduler_jobs"
	"betTracker/services"
	"betTracker/services/settlement"
	"betTracker/services/store"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB
var cfg *config.Config

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	db, err = openDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Game{},
		&models.Bet{},
		&models.PlayerStat{},
		&models.SettlementLock{},
		&models.ErrorLog{},
		&models.Migration{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

// openDatabase routes DATABASE_URL to the matching gorm driver by scheme, so
// the same binary runs against MySQL or SQL Server.
func openDatabase(connString string) (*gorm.DB, error) {
	u, err := dburl.Parse(connString)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch u.Driver {
	case "sqlserver":
		return gorm.Open(sqlserver.Open(u.DSN), gormCfg)
	default:
		return gorm.Open(mysql.Open(u.DSN+"?charset=utf8mb4&parseTime=True&loc=Local"), gormCfg)
	}
}

func main() {
	if err := services.RunOriginalStakeBackfill(db); err != nil {
		log.Fatalf("Error running original stake backfill: %v", err)
	}

	rules, err := config.LoadSportRules(cfg.SportsFile)
	if err != nil {
		log.Fatalf("Error loading sport rules: %v", err)
	}

	repos := store.New(db)
	cache := settlement.NewGameCache(cfg.GameCacheTTL)
	coord := settlement.NewCoordinator(repos, repos, repos, repos, cache, rules, cfg.Workers)

	var dg *discordgo.Session
	if cfg.DiscordToken != "" {
		dg, err = discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			log.Fatalf("Error creating Discord session: %v", err)
		}

		err = dg.Open()
		if err != nil {
			log.Fatalf("Error opening Discord session: %v", err)
		}
		defer func(dg *discordgo.Session) {
			err := dg.Close()
			if err != nil {

			}
		}(dg)
	}

	scheduler.SetupCron(coord, dg, cfg, db)

	// One pass at startup so a restart never waits for the next cron tick.
	if err := scheduler_jobs.RunSettlement(coord, dg, cfg.ReportChannelID, db); err != nil {
		log.Printf("Startup settlement pass failed: %v", err)
	}

	log.Println("Settlement engine is running. Press CTRL+C to exit.")
	select {}
}
