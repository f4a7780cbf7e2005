package logger

import (
	"github.com/tryfix/log"
)

type Logger struct {
	enabled bool
	log.Logger
}

func New(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		Logger: log.Constructor.Log(
			log.WithColors(true),
			log.WithLevel("INFO"),
			log.WithFilePath(true),
		),
	}
}

func (l *Logger) Info(message interface{}, params ...interface{}) {
	if l.enabled {
		l.Logger.Info(message, params...)
	}
}

func (l *Logger) Error(message interface{}, params ...interface{}) {
	if l.enabled {
		l.Logger.Error(message, params...)
	}
}

func (l *Logger) Debug(message interface{}, params ...interface{}) {
	if l.enabled {
		l.Logger.Debug(message, params...)
	}
}

func (l *Logger) Fatal(message interface{}, params ...interface{}) {
	l.Logger.Fatal(message, params...)
}
