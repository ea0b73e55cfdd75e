package brand

import "github.com/sirupsen/logrus"

type BrandLogHook struct{}

func (h *BrandLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Brand: " + entry.Message
	return nil
}

func (h *BrandLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
