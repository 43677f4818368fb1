package config_test

import (
	"testing"
	"time"

	"go-teamdesk/internal/shared/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LEADER_ROLE_POLICY", "")
	t.Setenv("LEAVE_REQUIRE_MEMBERSHIP", "")

	cfg := config.Load()

	assert.Equal(t, config.LeaderRoleStrict, cfg.Policy.LeaderRole)
	assert.False(t, cfg.Policy.LeaveRequireMembership)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LEADER_ROLE_POLICY", "Legacy")
	t.Setenv("LEAVE_REQUIRE_MEMBERSHIP", "true")
	t.Setenv("HTTP_WRITE_TIMEOUT", "3s")
	t.Setenv("DB_MAX_RETRIES", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, config.LeaderRoleLegacy, cfg.Policy.LeaderRole)
	assert.True(t, cfg.Policy.LeaveRequireMembership)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 5, cfg.DB.MaxRetries)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", c.DSN())
}

func TestSMTPConfig_Enabled(t *testing.T) {
	assert.False(t, config.SMTPConfig{}.Enabled())
	assert.True(t, config.SMTPConfig{Host: "smtp.local"}.Enabled())
}
