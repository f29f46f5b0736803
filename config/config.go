// Package config loads all runtime configuration from the
// environment, with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Reserve ReserveConfig
	Oracle  OracleConfig
	Journal JournalConfig
	Kafka   KafkaConfig
}

// ServerConfig holds the listener addresses.
type ServerConfig struct {
	GRPCAddr string
	WSAddr   string
}

// ReserveConfig holds the settlement engine parameters.
type ReserveConfig struct {
	Network           string
	BurnFeeBps        int64
	MinOrderSizeUsd   int64
	MaxOrdersPerTrade int
}

// OracleConfig holds the initial price feed values as decimal
// strings.
type OracleConfig struct {
	UsdPerEth string
	KncPerEth string
}

// JournalConfig holds the durability layout.
type JournalConfig struct {
	WALDir           string
	OutboxDir        string
	SnapshotDir      string
	SegmentSize      int64
	SnapshotInterval time.Duration
}

// KafkaConfig holds broker wiring for the event stream.
type KafkaConfig struct {
	Enabled    bool
	Brokers    []string
	EventTopic string
	TradeTopic string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignore error if .env doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			GRPCAddr: getEnvString("MAKERBOOK_GRPC_ADDR", ":50051"),
			WSAddr:   getEnvString("MAKERBOOK_WS_ADDR", ":8080"),
		},
		Reserve: ReserveConfig{
			Network:           getEnvString("MAKERBOOK_NETWORK_ADDR", "network"),
			BurnFeeBps:        getEnvInt64("MAKERBOOK_BURN_FEE_BPS", 25),
			MinOrderSizeUsd:   getEnvInt64("MAKERBOOK_MIN_ORDER_USD", 1000),
			MaxOrdersPerTrade: getEnvInt("MAKERBOOK_MAX_ORDERS_PER_TRADE", 10),
		},
		Oracle: OracleConfig{
			UsdPerEth: getEnvString("MAKERBOOK_USD_PER_ETH", "500"),
			KncPerEth: getEnvString("MAKERBOOK_KNC_PER_ETH", "280"),
		},
		Journal: JournalConfig{
			WALDir:           getEnvString("MAKERBOOK_WAL_DIR", "./data/wal"),
			OutboxDir:        getEnvString("MAKERBOOK_OUTBOX_DIR", "./data/outbox"),
			SnapshotDir:      getEnvString("MAKERBOOK_SNAPSHOT_DIR", "./data/snapshot"),
			SegmentSize:      getEnvInt64("MAKERBOOK_WAL_SEGMENT_SIZE", 16<<20),
			SnapshotInterval: getEnvDuration("MAKERBOOK_SNAPSHOT_INTERVAL", time.Minute),
		},
		Kafka: KafkaConfig{
			Enabled:    getEnvBool("MAKERBOOK_KAFKA_ENABLED", false),
			Brokers:    getEnvList("MAKERBOOK_KAFKA_BROKERS", "localhost:9092"),
			EventTopic: getEnvString("MAKERBOOK_KAFKA_EVENT_TOPIC", "makerbook.events"),
			TradeTopic: getEnvString("MAKERBOOK_KAFKA_TRADE_TOPIC", "makerbook.trades"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine would
// reject at startup anyway; failing here gives a clearer message.
func (c *Config) Validate() error {
	if c.Reserve.Network == "" {
		return fmt.Errorf("network address must not be empty")
	}
	if c.Reserve.BurnFeeBps <= 0 || c.Reserve.BurnFeeBps > 100 {
		return fmt.Errorf("burn fee bps out of range: %d", c.Reserve.BurnFeeBps)
	}
	if c.Reserve.MinOrderSizeUsd <= 0 {
		return fmt.Errorf("invalid minimum order size: %d", c.Reserve.MinOrderSizeUsd)
	}
	if c.Reserve.MaxOrdersPerTrade <= 0 {
		return fmt.Errorf("invalid max orders per trade: %d", c.Reserve.MaxOrdersPerTrade)
	}
	if c.Journal.SegmentSize <= 0 {
		return fmt.Errorf("invalid WAL segment size: %d", c.Journal.SegmentSize)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka enabled with no brokers")
	}
	return nil
}

// String returns a safe string representation.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Server{GRPC:%s, WS:%s}, Reserve{BPS:%d, MinUSD:%d, MaxOrders:%d}, Kafka{Enabled:%v}",
		c.Server.GRPCAddr, c.Server.WSAddr,
		c.Reserve.BurnFeeBps, c.Reserve.MinOrderSizeUsd, c.Reserve.MaxOrdersPerTrade,
		c.Kafka.Enabled,
	)
}

// Helper functions for environment variable parsing

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "yes", "1":
			return true
		case "false", "no", "0":
			return false
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnvString(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
