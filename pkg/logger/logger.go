package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

type MainLogHook struct{}

func (h *MainLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Main: " + entry.Message
	return nil
}

func (h *MainLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// PrefixHook prepends a fixed component name to every message.
type PrefixHook struct {
	Prefix string
}

func (h *PrefixHook) Fire(entry *logrus.Entry) error {
	entry.Message = h.Prefix + ": " + entry.Message
	return nil
}

func (h *PrefixHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// NewLogger builds a standalone logger so that every component keeps its own hook set.
// Unknown levels fall back to info.
func NewLogger(level string, hook logrus.Hook) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if hook != nil {
		l.AddHook(hook)
	}

	return logrus.NewEntry(l)
}
