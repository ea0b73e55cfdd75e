package brand

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/auth"
)

type Service interface {
	Create(ctx context.Context, actor auth.Principal, in CreateInput) (*Brand, error)
	Update(ctx context.Context, actor auth.Principal, id uint, in UpdateInput) (*Brand, error)
	Delete(ctx context.Context, actor auth.Principal, id uint) error
	Get(ctx context.Context, id uint) (*Brand, error)
	List(ctx context.Context) ([]Brand, error)
}

type brandService struct {
	storage Storage
	logger  *logrus.Entry
}

func NewService(storage Storage, log *logrus.Entry) Service {
	return &brandService{
		storage: storage,
		logger:  log,
	}
}

func (s *brandService) Create(ctx context.Context, actor auth.Principal, in CreateInput) (*Brand, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.InvalidArgument("error.invalid_request", "name")
	}

	taken, err := s.storage.NameExists(ctx, name, 0)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if taken {
		return nil, apperror.Conflict("brand.name_exists", name)
	}

	b := &Brand{
		Name:        name,
		LogoURL:     trimmed(in.LogoURL),
		Description: trimmed(in.Description),
	}
	if err := s.storage.Create(ctx, b); err != nil {
		return nil, s.translate(err, 0, name)
	}

	s.logger.WithFields(logrus.Fields{"id": b.ID, "name": b.Name, "admin": actor.UserID}).Info("brand created")
	return b, nil
}

func (s *brandService) Update(ctx context.Context, actor auth.Principal, id uint, in UpdateInput) (*Brand, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})

	if in.Name.Set {
		name := strings.TrimSpace(in.Name.Value)
		if in.Name.Null || name == "" || len(name) > 255 {
			return nil, apperror.InvalidArgument("error.invalid_request", "name")
		}
		if name != current.Name {
			taken, err := s.storage.NameExists(ctx, name, id)
			if err != nil {
				return nil, apperror.FromDB(err)
			}
			if taken {
				return nil, apperror.Conflict("brand.name_exists", name)
			}
			fields["name"] = name
		}
	}
	if in.LogoURL.Set {
		fields["logo_url"] = nullable(in.LogoURL.Null, in.LogoURL.Value)
	}
	if in.Description.Set {
		fields["description"] = nullable(in.Description.Null, in.Description.Value)
	}

	if len(fields) == 0 {
		return current, nil
	}

	if err := s.storage.Update(ctx, id, fields); err != nil {
		return nil, s.translate(err, id, in.Name.Value)
	}

	s.logger.WithFields(logrus.Fields{"id": id, "admin": actor.UserID}).Info("brand updated")
	return s.Get(ctx, id)
}

func (s *brandService) Delete(ctx context.Context, actor auth.Principal, id uint) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	products, err := s.storage.CountProducts(ctx, id)
	if err != nil {
		return apperror.FromDB(err)
	}
	if products > 0 {
		return apperror.Conflict("brand.has_products", id)
	}

	if err := s.storage.Delete(ctx, id); err != nil {
		return s.translate(err, id, "")
	}

	s.logger.WithFields(logrus.Fields{"id": id, "admin": actor.UserID}).Info("brand deleted")
	return nil
}

func (s *brandService) Get(ctx context.Context, id uint) (*Brand, error) {
	b, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id, "")
	}
	return b, nil
}

func (s *brandService) List(ctx context.Context) ([]Brand, error) {
	brands, err := s.storage.List(ctx)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return brands, nil
}

func (s *brandService) translate(err error, id uint, name string) error {
	switch {
	case errors.Is(err, errBrandNotFound):
		return apperror.NotFound("brand.not_found", id).Wrap(err)
	case errors.Is(err, errNameTaken):
		return apperror.Conflict("brand.name_exists", name).Wrap(err)
	case errors.Is(err, errBrandInUse):
		return apperror.Conflict("brand.has_products", id).Wrap(err)
	}
	s.logger.Errorf("storage failure for brand %d: %v", id, err)
	return apperror.FromDB(err)
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func nullable(null bool, v string) interface{} {
	v = strings.TrimSpace(v)
	if null || v == "" {
		return nil
	}
	return v
}
