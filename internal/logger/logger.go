package logger

import "go.uber.org/zap"

// New builds a sugared logger; development mode gets colourless console output
// and debug level, production gets JSON at info.
func New(development bool) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if development {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// Nop is handy for tests and for components constructed without a logger.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
