// Package media stores product images on local disk and serves them by URL.
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
)

type MediaLogHook struct{}

func (h *MediaLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Media: " + entry.Message
	return nil
}

func (h *MediaLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

type Config struct {
	Dir        string
	URLPrefix  string
	MaxSize    int64
	AllowedExt []string
}

type LocalStore struct {
	cfg     Config
	allowed map[string]struct{}
	log     *logrus.Entry
}

var errForeignURL = errors.New("url does not belong to this store")

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(cfg Config, log *logrus.Entry) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir - %w", err)
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 5 << 20
	}
	if len(cfg.AllowedExt) == 0 {
		cfg.AllowedExt = []string{".jpg", ".jpeg", ".png"}
	}
	cfg.URLPrefix = strings.TrimRight(cfg.URLPrefix, "/")

	allowed := make(map[string]struct{}, len(cfg.AllowedExt))
	for _, ext := range cfg.AllowedExt {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = struct{}{}
	}

	return &LocalStore{cfg: cfg, allowed: allowed, log: log}, nil
}

// Save validates an uploaded image and writes it under a random name.
// It returns the public URL of the stored file.
func (s *LocalStore) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := s.allowed[ext]; !ok {
		return "", apperror.InvalidArgument("media.invalid_type", s.allowedList())
	}
	if fh.Size > s.cfg.MaxSize {
		return "", apperror.InvalidArgument("media.too_large", s.cfg.MaxSize>>20)
	}

	src, err := fh.Open()
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("open upload: %w", err))
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("detect upload type: %w", err))
	}
	if !mimetype.EqualsAny(mt.String(), "image/jpeg", "image/png") {
		return "", apperror.InvalidArgument("media.invalid_type", s.allowedList())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", apperror.Internal(fmt.Errorf("rewind upload: %w", err))
	}

	name := uuid.New().String() + ext
	dst, err := os.OpenFile(filepath.Join(s.cfg.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("create file: %w", err))
	}

	written, err := io.Copy(dst, io.LimitReader(src, s.cfg.MaxSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.cfg.MaxSize {
		err = apperror.InvalidArgument("media.too_large", s.cfg.MaxSize>>20)
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.cfg.Dir, name))
		if apperror.KindOf(err) == apperror.KindInvalidArgument {
			return "", err
		}
		return "", apperror.Internal(fmt.Errorf("write file: %w", err))
	}

	url := s.cfg.URLPrefix + "/" + name
	s.log.WithFields(logrus.Fields{"url": url, "bytes": written}).Debug("image saved")
	return url, nil
}

// Delete removes the file behind url. A missing file is not an error.
func (s *LocalStore) Delete(url string) error {
	name, err := s.fileName(url)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.cfg.Dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	s.log.WithField("url", url).Debug("image deleted")
	return nil
}

// DeleteAll removes every url and logs failures instead of returning them.
func (s *LocalStore) DeleteAll(urls []string) {
	for _, u := range urls {
		if err := s.Delete(u); err != nil {
			s.log.Warnf("failed to delete image %s: %v", u, err)
		}
	}
}

// Owns reports whether url names a file under this store's prefix.
func (s *LocalStore) Owns(url string) bool {
	_, err := s.fileName(url)
	return err == nil
}

func (s *LocalStore) fileName(url string) (string, error) {
	if !strings.HasPrefix(url, s.cfg.URLPrefix+"/") {
		return "", errForeignURL
	}
	name := path.Base(strings.TrimPrefix(url, s.cfg.URLPrefix+"/"))
	if name == "." || name == "/" || name == ".." {
		return "", errForeignURL
	}
	return name, nil
}

func (s *LocalStore) allowedList() string {
	exts := make([]string, 0, len(s.cfg.AllowedExt))
	for _, e := range s.cfg.AllowedExt {
		exts = append(exts, strings.TrimPrefix(e, "."))
	}
	return strings.Join(exts, ", ")
}
