package category

import "github.com/sirupsen/logrus"

type CategoryLogHook struct{}

func (h *CategoryLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Category: " + entry.Message
	return nil
}

func (h *CategoryLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
