package product

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/auth"
	"github.com/mserebryaakov/handora-service/pkg/optional"
)

const searchLimit = 20

// ImageStore keeps uploaded image files and hands back their public URLs.
// Owns reports whether a URL points at a file the store manages.
type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	DeleteAll(urls []string)
	Owns(url string) bool
}

type Service interface {
	Create(ctx context.Context, actor auth.Principal, in CreateInput, images []*multipart.FileHeader) (*Product, error)
	Update(ctx context.Context, actor auth.Principal, id uint, in UpdateInput, images []*multipart.FileHeader) (*Product, error)
	Delete(ctx context.Context, actor auth.Principal, id uint) error

	Get(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, f Filter, skip, limit int) ([]Product, error)
	Search(ctx context.Context, q string) ([]Product, error)
	Suggestions(ctx context.Context) ([]Product, error)
}

type productService struct {
	storage     Storage
	images      ImageStore
	suggestions []uint
	logger      *logrus.Entry
}

func NewService(storage Storage, images ImageStore, suggestions []uint, log *logrus.Entry) Service {
	return &productService{
		storage:     storage,
		images:      images,
		suggestions: suggestions,
		logger:      log,
	}
}

func (s *productService) Create(ctx context.Context, actor auth.Principal, in CreateInput, images []*multipart.FileHeader) (*Product, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	p := &Product{
		NameAz:        strings.TrimSpace(in.NameAz),
		NameEn:        strings.TrimSpace(in.NameEn),
		NameRu:        strings.TrimSpace(in.NameRu),
		DescriptionAz: strings.TrimSpace(in.DescriptionAz),
		DescriptionEn: strings.TrimSpace(in.DescriptionEn),
		DescriptionRu: strings.TrimSpace(in.DescriptionRu),
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		CategoryID:    in.CategoryID,
		BrandID:       in.BrandID,
		Stock:         in.Stock,
		IsNew:         true,
	}
	linked := cleanURLs(in.ImageURLs)
	for _, u := range linked {
		// Stored files only arrive as uploads; a stored URL here belongs to another product.
		if s.images.Owns(u) {
			return nil, apperror.InvalidArgument("product.image_not_attached", u)
		}
	}
	p.ImageURLs = pq.StringArray(linked)
	if in.IsNew != nil {
		p.IsNew = *in.IsNew
	}
	if in.IsSale != nil {
		p.IsSale = *in.IsSale
	}
	normalizeSale(p)

	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}

	saved, err := s.saveImages(images)
	if err != nil {
		return nil, err
	}
	p.ImageURLs = append(p.ImageURLs, saved...)

	if err := s.storage.Create(ctx, p); err != nil {
		s.images.DeleteAll(saved)
		return nil, s.translate(err, 0)
	}

	s.logger.WithFields(logrus.Fields{"id": p.ID, "images": len(saved), "admin": actor.UserID}).Info("product created")
	return s.Get(ctx, p.ID)
}

func (s *productService) Update(ctx context.Context, actor auth.Principal, id uint, in UpdateInput, images []*multipart.FileHeader) (*Product, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	fields := make(map[string]interface{})

	texts := []struct {
		column   string
		field    optional.Field[string]
		target   *string
		required bool
	}{
		{"name_az", in.NameAz, &next.NameAz, true},
		{"name_en", in.NameEn, &next.NameEn, true},
		{"name_ru", in.NameRu, &next.NameRu, true},
		{"description_az", in.DescriptionAz, &next.DescriptionAz, false},
		{"description_en", in.DescriptionEn, &next.DescriptionEn, false},
		{"description_ru", in.DescriptionRu, &next.DescriptionRu, false},
	}
	for _, t := range texts {
		if !t.field.Set {
			continue
		}
		v := ""
		if !t.field.Null {
			v = strings.TrimSpace(t.field.Value)
		}
		if t.required && v == "" {
			return nil, apperror.InvalidArgument("error.invalid_request", t.column)
		}
		*t.target = v
		fields[t.column] = v
	}

	if in.Price.Set {
		if in.Price.Null {
			return nil, apperror.InvalidArgument("product.invalid_price")
		}
		next.Price = in.Price.Value
		fields["price"] = next.Price
	}
	if in.DiscountPrice.Set {
		if in.DiscountPrice.Null {
			next.DiscountPrice = nil
			fields["discount_price"] = nil
		} else {
			d := in.DiscountPrice.Value
			next.DiscountPrice = &d
			fields["discount_price"] = d
		}
	}
	if in.CategoryID.Set {
		if !in.CategoryID.HasValue() {
			return nil, apperror.InvalidArgument("error.invalid_request", "category_id")
		}
		next.CategoryID = in.CategoryID.Value
		fields["category_id"] = next.CategoryID
	}
	if in.BrandID.Set {
		if !in.BrandID.HasValue() {
			return nil, apperror.InvalidArgument("error.invalid_request", "brand_id")
		}
		next.BrandID = in.BrandID.Value
		fields["brand_id"] = next.BrandID
	}
	if in.Stock.Set {
		if !in.Stock.HasValue() {
			return nil, apperror.InvalidArgument("product.invalid_stock")
		}
		next.Stock = in.Stock.Value
		fields["stock"] = next.Stock
	}
	if in.IsNew.HasValue() {
		next.IsNew = in.IsNew.Value
		fields["is_new"] = next.IsNew
	}
	if in.IsSale.HasValue() {
		next.IsSale = in.IsSale.Value
		fields["is_sale"] = next.IsSale
	}
	if normalizeSale(&next) {
		fields["is_sale"] = true
	}

	if err := s.validate(ctx, &next); err != nil {
		return nil, err
	}

	replacing := in.ImageURLs.Set || len(images) > 0
	var saved []string
	if replacing {
		kept := []string{}
		if in.ImageURLs.HasValue() {
			kept = cleanURLs(in.ImageURLs.Value)
		}
		if u, ok := firstForeign(kept, current.ImageURLs); ok {
			return nil, apperror.InvalidArgument("product.image_not_attached", u)
		}
		saved, err = s.saveImages(images)
		if err != nil {
			return nil, err
		}
		next.ImageURLs = pq.StringArray(append(kept, saved...))
		fields["image_urls"] = next.ImageURLs
	}

	if len(fields) == 0 {
		return current, nil
	}

	if err := s.storage.Update(ctx, id, fields); err != nil {
		s.images.DeleteAll(saved)
		return nil, s.translate(err, id)
	}

	if replacing {
		s.images.DeleteAll(s.ownedURLs(removedURLs(current.ImageURLs, next.ImageURLs)))
	}

	s.logger.WithFields(logrus.Fields{"id": id, "fields": len(fields), "admin": actor.UserID}).Info("product updated")
	return s.Get(ctx, id)
}

// Delete refuses while order items reference the product. Image files are
// removed only after the row is gone.
func (s *productService) Delete(ctx context.Context, actor auth.Principal, id uint) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	ordered, err := s.storage.CountOrderItems(ctx, id)
	if err != nil {
		return apperror.FromDB(err)
	}
	if ordered > 0 {
		return apperror.Conflict("product.in_orders", id)
	}

	if err := s.storage.Delete(ctx, id); err != nil {
		return s.translate(err, id)
	}
	s.images.DeleteAll(s.ownedURLs(current.ImageURLs))

	s.logger.WithFields(logrus.Fields{"id": id, "admin": actor.UserID}).Info("product deleted")
	return nil
}

func (s *productService) Get(ctx context.Context, id uint) (*Product, error) {
	p, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id)
	}
	return p, nil
}

func (s *productService) List(ctx context.Context, f Filter, skip, limit int) ([]Product, error) {
	products, err := s.storage.List(ctx, f, skip, limit)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return products, nil
}

func (s *productService) Search(ctx context.Context, q string) ([]Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []Product{}, nil
	}
	products, err := s.storage.Search(ctx, q, searchLimit)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return products, nil
}

// Suggestions returns the configured products in configured order, skipping
// ids that no longer exist.
func (s *productService) Suggestions(ctx context.Context) ([]Product, error) {
	products, err := s.storage.ListByIDs(ctx, s.suggestions)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	byID := make(map[uint]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ordered := make([]Product, 0, len(products))
	for _, id := range s.suggestions {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
			delete(byID, id)
		}
	}
	return ordered, nil
}

func (s *productService) validate(ctx context.Context, p *Product) error {
	if p.NameAz == "" || p.NameEn == "" || p.NameRu == "" {
		return apperror.InvalidArgument("error.invalid_request", "name")
	}
	if p.Stock < 0 {
		return apperror.InvalidArgument("product.invalid_stock")
	}
	if err := validatePricing(p.Price, p.DiscountPrice); err != nil {
		if errors.Is(err, errInvalidPrice) {
			return apperror.InvalidArgument("product.invalid_price").Wrap(err)
		}
		return apperror.InvalidArgument("product.invalid_discount").Wrap(err)
	}

	ok, err := s.storage.CategoryExists(ctx, p.CategoryID)
	if err != nil {
		return apperror.FromDB(err)
	}
	if !ok {
		return apperror.NotFound("category.not_found", p.CategoryID)
	}

	ok, err = s.storage.BrandExists(ctx, p.BrandID)
	if err != nil {
		return apperror.FromDB(err)
	}
	if !ok {
		return apperror.NotFound("brand.not_found", p.BrandID)
	}
	return nil
}

// saveImages stores every upload or none: on the first failure the files
// already written by this call are removed.
func (s *productService) saveImages(images []*multipart.FileHeader) ([]string, error) {
	saved := make([]string, 0, len(images))
	for _, fh := range images {
		url, err := s.images.Save(fh)
		if err != nil {
			s.images.DeleteAll(saved)
			return nil, err
		}
		saved = append(saved, url)
	}
	return saved, nil
}

func (s *productService) translate(err error, id uint) error {
	switch {
	case errors.Is(err, errProductNotFound):
		return apperror.NotFound("product.not_found", id).Wrap(err)
	case errors.Is(err, errProductInUse):
		return apperror.Conflict("product.in_orders", id).Wrap(err)
	case errors.Is(err, errMissingReference):
		return apperror.NotFound("error.not_found").Wrap(err)
	}
	s.logger.Errorf("storage failure for product %d: %v", id, err)
	return apperror.FromDB(err)
}

// normalizeSale forces is_sale while a positive discount is set and reports
// whether it changed the flag.
func normalizeSale(p *Product) bool {
	if p.DiscountPrice != nil && p.DiscountPrice.IsPositive() && !p.IsSale {
		p.IsSale = true
		return true
	}
	return false
}

func cleanURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// firstForeign returns the first url in kept that is not in current.
func firstForeign(kept, current []string) (string, bool) {
	have := make(map[string]struct{}, len(current))
	for _, u := range current {
		have[u] = struct{}{}
	}
	for _, u := range kept {
		if _, ok := have[u]; !ok {
			return u, true
		}
	}
	return "", false
}

func (s *productService) ownedURLs(urls []string) []string {
	var owned []string
	for _, u := range urls {
		if s.images.Owns(u) {
			owned = append(owned, u)
		}
	}
	return owned
}

func removedURLs(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, u := range after {
		keep[u] = struct{}{}
	}
	var removed []string
	for _, u := range before {
		if _, ok := keep[u]; !ok {
			removed = append(removed, u)
		}
	}
	return removed
}
