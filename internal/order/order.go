// Package order places orders against product stock and tracks them
// through their status lifecycle.
package order

import "github.com/sirupsen/logrus"

// OrderLogHook prefixes every order log line.
type OrderLogHook struct{}

func (h *OrderLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Order: " + entry.Message
	return nil
}

func (h *OrderLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
