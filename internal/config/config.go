package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ConverterPandoc = "pandoc"
	ConverterNative = "native"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Acronym table (csv, xlsx or yaml)
	AcronymTable string

	// DOCX conversion
	DocxConverter string
	PandocPath    string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Batch mode
	InputPath  string
	OutputPath string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("CONVERTWI_API_KEY"),

		AcronymTable: envOr("ACRONYM_TABLE", "abbr.csv"),

		DocxConverter: envOr("DOCX_CONVERTER", ConverterPandoc),
		PandocPath:    envOr("PANDOC_PATH", "pandoc"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		InputPath:  envOr("INPUT_PATH", "input.docx"),
		OutputPath: envOr("OUTPUT_PATH", "output.html"),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.AcronymTable == "" {
		return fmt.Errorf("ACRONYM_TABLE is required")
	}
	switch c.DocxConverter {
	case ConverterPandoc:
		if c.PandocPath == "" {
			return fmt.Errorf("PANDOC_PATH is required when DOCX_CONVERTER=%s", ConverterPandoc)
		}
	case ConverterNative:
	default:
		return fmt.Errorf("DOCX_CONVERTER must be %q or %q, got %q", ConverterPandoc, ConverterNative, c.DocxConverter)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
