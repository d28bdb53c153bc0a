package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	instance *zap.SugaredLogger
	once     sync.Once
)

// New returns the process-wide sugared logger, building it on first use.
func New(development bool) *zap.SugaredLogger {
	once.Do(func() {
		var l *zap.Logger
		var err error
		if development {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			l = zap.NewNop()
		}
		instance = l.Sugar()
	})
	return instance
}

// Nop returns a discard logger for tests.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
