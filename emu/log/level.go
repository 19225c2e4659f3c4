package log

import "gopkg.in/Sirupsen/logrus.v0"

type Level logrus.Level

const (
	PanicLevel = Level(logrus.PanicLevel)
	FatalLevel = Level(logrus.FatalLevel)
	ErrorLevel = Level(logrus.ErrorLevel)
	WarnLevel  = Level(logrus.WarnLevel)
	InfoLevel  = Level(logrus.InfoLevel)
	DebugLevel = Level(logrus.DebugLevel)
)

func init() {
	// Gating happens per module, let everything through logrus itself.
	logrus.SetLevel(logrus.DebugLevel)
}

// disabled silences every module, including warnings and errors.
var disabled bool

// Disable turns off all logging.
func Disable() {
	disabled = true
}
