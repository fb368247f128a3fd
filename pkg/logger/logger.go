package logger

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Setup configures the global logger for interactive console use.
func Setup(debug bool) {
	formatter := &log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	}
	log.SetFormatter(formatter)

	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}
