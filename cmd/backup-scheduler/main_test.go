package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrintBanner(t *testing.T) {
	started := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	var sb strings.Builder
	printBanner(&sb, started, 23, 0, "monthly_backup.log", false, true)

	out := sb.String()
	assert.Contains(t, out, "Star Space - Monthly Backup Scheduler")
	assert.Contains(t, out, "Started:   2024-06-01 09:30:00")
	assert.Contains(t, out, "Schedule:  last day of month at 23:00")
	assert.Contains(t, out, "Log file:  monthly_backup.log")
	assert.Contains(t, out, "Test mode: false")
	assert.Contains(t, out, "Daemon:    true")
}
