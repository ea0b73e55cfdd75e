package health

import "github.com/sirupsen/logrus"

type HealthLogHook struct{}

func (h *HealthLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "HTTP: " + entry.Message
	return nil
}

func (h *HealthLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
