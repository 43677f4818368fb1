package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read once from the environment.
type Config struct {
	AppEnv string
	Port   string

	DB     DBConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	SMTP   SMTPConfig
	Policy PolicyConfig

	JWTSecret     string
	RBACModelPath string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DBConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	MaxRetries int
}

func (c DBConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker  string
	GroupID string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// PolicyConfig toggles optional validation rules.
type PolicyConfig struct {
	// LeaderRole is "strict" (reject non-leaders) or "legacy" (warn only).
	LeaderRole string
	// LeaveRequireMembership rejects leave applications for teams the
	// applicant is not a member of.
	LeaveRequireMembership bool
}

const (
	LeaderRoleStrict = "strict"
	LeaderRoleLegacy = "legacy"
)

func Load() Config {
	return Config{
		AppEnv: GetString("APP_ENV", "development"),
		Port:   GetString("PORT", "3000"),
		DB: DBConfig{
			Host:       GetString("DB_HOST", "localhost"),
			User:       GetString("DB_USER", "postgres"),
			Password:   GetString("DB_PASSWORD", ""),
			Name:       GetString("DB_NAME", "teamdesk"),
			Port:       GetString("DB_PORT", "5432"),
			SSLMode:    GetString("DB_SSLMODE", "disable"),
			MaxRetries: GetInt("DB_MAX_RETRIES", 5),
		},
		Redis: RedisConfig{
			Addr: GetString("REDIS_ADDR", ""),
		},
		Kafka: KafkaConfig{
			Broker:  GetString("KAFKA_BROKER", ""),
			GroupID: GetString("KAFKA_GROUP_ID", "go-teamdesk-notifications"),
		},
		SMTP: SMTPConfig{
			Host:     GetString("SMTP_HOST", ""),
			Port:     GetInt("SMTP_PORT", 587),
			Username: GetString("SMTP_USERNAME", ""),
			Password: GetString("SMTP_PASSWORD", ""),
			From:     GetString("SMTP_FROM", "no-reply@teamdesk.local"),
		},
		Policy: PolicyConfig{
			LeaderRole:             normalizeLeaderRole(GetString("LEADER_ROLE_POLICY", LeaderRoleStrict)),
			LeaveRequireMembership: GetBool("LEAVE_REQUIRE_MEMBERSHIP", false),
		},
		JWTSecret:     GetString("JWT_SECRET", ""),
		RBACModelPath: GetString("RBAC_MODEL_PATH", ""),
		ReadTimeout:   GetDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:  GetDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:   GetDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}
}

func normalizeLeaderRole(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), LeaderRoleLegacy) {
		return LeaderRoleLegacy
	}
	return LeaderRoleStrict
}

// GetString retrieves an environment variable or returns a fallback when unset.
func GetString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("invalid value for %s: %v", key, err)
			return fallback
		}
		return parsed
	}
	return fallback
}

func GetBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			log.Printf("invalid value for %s: %v", key, err)
			return fallback
		}
		return parsed
	}
	return fallback
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("invalid value for %s: %v", key, err)
			return fallback
		}
		return parsed
	}
	return fallback
}
