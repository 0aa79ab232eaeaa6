package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.Logger

// Init configure le logger global : JSON en production, console en dev
func Init() {
	var cfg zap.Config

	if os.Getenv("GIN_MODE") == "release" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var err error
	global, err = cfg.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
}

func L() *zap.Logger {
	if global == nil {
		Init()
	}
	return global
}

func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}
