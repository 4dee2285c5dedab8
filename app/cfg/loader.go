package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for admin endpoints (optional)"`

	// Document store
	DBPath string `long:"db-path" env:"DB_PATH" default:"./data/blog.db" description:"Path to the sqlite database file"`

	// Blob storage
	DataDir         string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Local directory for config and newsletter files"`
	Bucket          string `long:"bucket" env:"STORAGE_BUCKET" description:"Cloud Storage bucket name"`
	UseCloudStorage bool   `long:"use-cloud-storage" env:"USE_CLOUD_STORAGE" description:"Read config and newsletter files from Cloud Storage instead of the local filesystem"`
	StorageEmulator string `long:"storage-emulator" env:"STORAGE_EMULATOR_HOST" description:"Cloud Storage emulator endpoint (optional)"`

	// Ingestion
	SeedFile          string `long:"seed-file" env:"SEED_FILE" default:"./feeds.yml" description:"YAML file with initial feed sources, loaded when the feed config store is empty"`
	PageDelay         int    `long:"page-delay" env:"PAGE_DELAY" default:"1" description:"Delay between feed page fetches in seconds"`
	WriteDelay        int    `long:"write-delay" env:"WRITE_DELAY" default:"200" description:"Delay between document writes in milliseconds"`
	MaxPages          int    `long:"max-pages" env:"MAX_PAGES" default:"10" description:"Hard cap on feed pages fetched per source"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"0" description:"Background ingestion interval in seconds (0 disables)"`

	// Integrations
	UnsubscribeSecret string `long:"unsubscribe-secret" env:"UNSUBSCRIBE_SECRET" default:"techpulse-unsubscribe" description:"Secret for deriving unsubscribe tokens"`
	SlackWebhookURL   string `long:"slack-webhook-url" env:"SLACK_WEBHOOK_URL" description:"Slack incoming webhook URL for inquiry notifications"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"TechPulse Blog/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Seoul)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		APIAccessKey:      raw.APIAccessKey,
		DBPath:            raw.DBPath,
		DataDir:           raw.DataDir,
		Bucket:            raw.Bucket,
		UseCloudStorage:   raw.UseCloudStorage,
		StorageEmulator:   raw.StorageEmulator,
		SeedFile:          raw.SeedFile,
		PageDelay:         raw.PageDelay,
		WriteDelay:        raw.WriteDelay,
		MaxPages:          raw.MaxPages,
		SchedulerInterval: raw.SchedulerInterval,
		UnsubscribeSecret: raw.UnsubscribeSecret,
		SlackWebhookURL:   raw.SlackWebhookURL,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	time.Local = loc
	return nil
}
