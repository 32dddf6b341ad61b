package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestDBHandlerStoresErrorsOnly(t *testing.T) {
	db := setupDB(t)
	h := newDBHandler(db, 10, time.Hour)
	logger := slog.New(h).With("request_id", "req-1")

	logger.Info("ignored")
	logger.Error("station save failed", "error", "boom", "user_id", "u1", "latency_ms", 12.6, "station_id", "PS-001")
	h.Stop()
	h.Stop()

	var rows []models.SystemLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "ERROR", row.Level)
	assert.Equal(t, "station save failed", row.Message)
	assert.Equal(t, "req-1", row.RequestID)
	assert.Equal(t, "boom", row.Error)
	require.NotNil(t, row.UserID)
	assert.Equal(t, "u1", *row.UserID)
	assert.Equal(t, 13, row.LatencyMs)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(row.Extra, &extra))
	assert.Equal(t, map[string]any{"station_id": "PS-001"}, extra)
}

func TestDBHandlerFlushesFullBatch(t *testing.T) {
	db := setupDB(t)
	h := newDBHandler(db, 2, time.Hour)
	t.Cleanup(h.Stop)
	logger := slog.New(h)

	logger.Error("one")
	logger.Error("two")

	assert.Eventually(t, func() bool {
		var n int64
		db.Model(&models.SystemLog{}).Count(&n)
		return n == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMultiHandler(t *testing.T) {
	var a, b bytes.Buffer
	warnOnly := slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := slog.New(NewMultiHandler(NewJSONHandler(&a), warnOnly)).With("component", "test")

	logger.Info("hello")
	logger.Warn("careful")

	assert.Equal(t, 2, bytes.Count(a.Bytes(), []byte("\n")))
	assert.Equal(t, 1, bytes.Count(b.Bytes(), []byte("\n")))
	assert.Contains(t, b.String(), `"component":"test"`)
	assert.False(t, NewMultiHandler(warnOnly).Enabled(context.Background(), slog.LevelInfo))
}

func TestCleanup(t *testing.T) {
	db := setupDB(t)
	now := time.Now().UTC()
	rows := []models.SystemLog{
		{ID: uuid.New(), Timestamp: now.Add(-Retention - time.Hour), Level: "ERROR", Message: "old"},
		{ID: uuid.New(), Timestamp: now, Level: "ERROR", Message: "new"},
	}
	require.NoError(t, db.Create(&rows).Error)

	deleted, err := Cleanup(db, now.Add(-Retention))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var left []models.SystemLog
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "new", left[0].Message)
}
