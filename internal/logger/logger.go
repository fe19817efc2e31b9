// Package logger holds the process-wide structured logger.
//
// Until InitLogger runs, Log is a no-op logger so packages and tests can log
// unconditionally:
//
//	logger.Log.Info("note created",
//	    zap.String("note_id", note.ID),
//	    zap.String("user_id", userID),
//	)
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log = zap.NewNop()

// InitLogger builds a production logger at the given level. Unknown levels
// fall back to info.
func InitLogger(level string) error {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zap.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = l
	return nil
}
