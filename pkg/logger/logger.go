package logger

import (
	"go.uber.org/zap"
)

// NewLogger builds the process-wide production logger.
func NewLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return l
}

// NewDevelopmentLogger is the console variant used when PLANNER_DEV is set.
func NewDevelopmentLogger() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return l
}
