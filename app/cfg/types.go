package cfg

type Cfg struct {
	// HTTP server
	Port         string
	APIAccessKey string

	// Document store
	DBPath string

	// Blob storage (feeds/keywords config, newsletter manifests)
	DataDir         string
	Bucket          string
	UseCloudStorage bool
	StorageEmulator string

	// Ingestion
	SeedFile          string
	PageDelay         int // seconds between feed page fetches
	WriteDelay        int // milliseconds between document writes
	MaxPages          int
	SchedulerInterval int // seconds, 0 disables background ingestion

	// Integrations
	UnsubscribeSecret string
	SlackWebhookURL   string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
