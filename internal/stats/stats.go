package stats

import "github.com/sirupsen/logrus"

type StatsLogHook struct{}

func (h *StatsLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Stats: " + entry.Message
	return nil
}

func (h *StatsLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
