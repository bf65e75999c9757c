package logger

import (
	"os"

	"clinrec-service/internal/app/config"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger builds the bootstrap logger used during wiring, before
// the zap logger exists and after it is flushed.
func NewLogrusLogger(internalConfig *config.InternalConfig) *logrus.Logger {
	bootstrapLog := logrus.New()
	if internalConfig.App.Env == "production" {
		bootstrapLog.SetFormatter(&logrus.JSONFormatter{})
		file, err := os.OpenFile("clinrec.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			bootstrapLog.Info("Failed to log to file, using default stderr")
			return bootstrapLog
		}
		bootstrapLog.SetOutput(file)
		return bootstrapLog
	}

	bootstrapLog.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return bootstrapLog
}
