package main

import (
	"log"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"bidtab/internal/config"
)

func TestConfigureLoggingGinMode(t *testing.T) {
	defer gin.SetMode(gin.TestMode)

	configureLogging(config.LogConfig{Level: "info", Format: "console"})
	assert.Equal(t, gin.ReleaseMode, gin.Mode())

	configureLogging(config.LogConfig{Level: "debug", Format: "console"})
	assert.Equal(t, gin.DebugMode, gin.Mode())
}

func TestConfigureLoggingPlainFormat(t *testing.T) {
	orig := log.Flags()
	defer log.SetFlags(orig)
	defer gin.SetMode(gin.TestMode)

	configureLogging(config.LogConfig{Level: "debug", Format: "plain"})
	assert.Equal(t, 0, log.Flags())
}
