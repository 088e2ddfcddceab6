package db

import (
	"testing"

	"church-app-go/internal/config"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestLogLevel(t *testing.T) {
	require.Equal(t, gormlogger.Info, logLevel(config.DBConfig{LogQueries: true}))
	require.Equal(t, gormlogger.Warn, logLevel(config.DBConfig{}))
}
