package logger

import (
	"go.uber.org/zap"
)

// NOOPLogger discards everything. Servers and commands start with it until a
// real logger is injected.
var NOOPLogger = zap.NewNop().Sugar()

// New builds a sugared logger for the given APP_ENV. local and empty
// environments get the human readable development encoder, everything else
// gets production JSON.
func New(appEnv string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch appEnv {
	case "", "local":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return l.Sugar().With("env", envName(appEnv)), nil
}

func envName(appEnv string) string {
	if appEnv == "" {
		return "local"
	}
	return appEnv
}
