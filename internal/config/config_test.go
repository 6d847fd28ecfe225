package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCoupons(t *testing.T) {
	coupons := parseCoupons("WELCOME10:10,LOYALTY15:15,VIP20:20")
	assert.Equal(t, map[string]int{"WELCOME10": 10, "LOYALTY15": 15, "VIP20": 20}, coupons)
}

func TestParseCouponsNormalizesCodes(t *testing.T) {
	coupons := parseCoupons(" welcome10 : 10 ")
	assert.Equal(t, map[string]int{"WELCOME10": 10}, coupons)
}

func TestParseCouponsDropsInvalidEntries(t *testing.T) {
	coupons := parseCoupons("GOOD:25,TOOBIG:51,NEGATIVE:-5,NOPERCENT,BAD:abc,")
	assert.Equal(t, map[string]int{"GOOD": 25}, coupons)
}

func TestParseCouponsEmpty(t *testing.T) {
	assert.Empty(t, parseCoupons(""))
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		Name:     "salonpoint",
		User:     "postgres",
		Password: "secret",
		SSLMode:  "disable",
		Timezone: "Asia/Manila",
	}
	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=salonpoint")
	assert.Contains(t, dsn, "TimeZone=Asia/Manila")
}
