package internal

import (
	"fmt"
	"time"
)

type Config struct {
	LogLevel  string `env:"LOG_LEVEL,default=INFO"`
	Host      string `env:"HOST,default=localhost"`
	Port      int    `env:"PORT,default=8080"`
	AdminPort int    `env:"ADMIN_PORT,default=8082"`
	DebugPort int    `env:"DEBUG_PORT,default=8081"`

	BufferSize           int `env:"BUFFER_SIZE,default=1024"`
	ConnectionBufferSize int `env:"CONNECTION_BUFFER_SIZE,default=256"`

	OfferTimeout         time.Duration `env:"OFFER_TIMEOUT,default=1s"`
	CustomerLeftDelay    time.Duration `env:"CUSTOMER_LEFT_DELAY,default=10s"`
	AutocloseDelay       time.Duration `env:"AUTOCLOSE_DELAY,default=90s"`
	BroadcastQuietPeriod time.Duration `env:"BROADCAST_QUIET_PERIOD,default=20ms"`
	BroadcastMaxLatency  time.Duration `env:"BROADCAST_MAX_LATENCY,default=200ms"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=1s"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	SnapshotInterval     time.Duration `env:"SNAPSHOT_INTERVAL,default=30s"`
	SnapshotHistoryTTL   time.Duration `env:"SNAPSHOT_HISTORY_TTL,default=24h"`
	StatsInterval        time.Duration `env:"STATS_INTERVAL,default=30s"`
	HeartbeatInterval    time.Duration `env:"HEARTBEAT_INTERVAL,default=5s"`
	StallTimeout         time.Duration `env:"STALL_TIMEOUT,default=10s"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,default=12h"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,default=./data/badger"`
	JWTSecret            string        `env:"JWT_SECRET,required=true"`
	AgentKeyHash         string        `env:"AGENT_KEY_HASH,required=true"`
	AMQPURL              string        `env:"AMQP_URL"`
	AMQPExchange         string        `env:"AMQP_EXCHANGE,default=chat-router"`
	DefaultCapacity      int           `env:"DEFAULT_CAPACITY,default=1"`
	AcceptsCustomers     bool          `env:"ACCEPTS_CUSTOMERS,default=true"`
	CensoredWords        string        `env:"CENSORED_WORDS"`
	CharReplacement      string        `env:"CHARACTER_REPLACEMENT,default=*"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
