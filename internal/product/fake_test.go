package product

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"sync"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/mserebryaakov/handora-service/internal/apperror"
)

type fakeStorage struct {
	mu         sync.Mutex
	nextID     uint
	rows       map[uint]Product
	categories map[uint]bool
	brands     map[uint]bool
	orderItems map[uint]int64
	failUpdate error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		rows:       map[uint]Product{},
		categories: map[uint]bool{1: true, 2: true},
		brands:     map[uint]bool{1: true},
		orderItems: map[uint]int64{},
	}
}

func (f *fakeStorage) Create(_ context.Context, p *Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.rows[p.ID] = *p
	return nil
}

func (f *fakeStorage) GetByID(_ context.Context, id uint) (*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, errProductNotFound
	}
	p.ImageURLs = append([]string(nil), p.ImageURLs...)
	p.EffectivePrice = p.UnitPrice()
	return &p, nil
}

func (f *fakeStorage) Update(_ context.Context, id uint, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return f.failUpdate
	}
	p, ok := f.rows[id]
	if !ok {
		return errProductNotFound
	}
	for k, v := range fields {
		switch k {
		case "name_az":
			p.NameAz = v.(string)
		case "name_en":
			p.NameEn = v.(string)
		case "price":
			p.Price = v.(decimal.Decimal)
		case "discount_price":
			if v == nil {
				p.DiscountPrice = nil
			} else {
				d := v.(decimal.Decimal)
				p.DiscountPrice = &d
			}
		case "stock":
			p.Stock = v.(int)
		case "is_sale":
			p.IsSale = v.(bool)
		case "is_new":
			p.IsNew = v.(bool)
		case "image_urls":
			p.ImageURLs = v.(pq.StringArray)
		case "category_id":
			p.CategoryID = v.(uint)
		}
	}
	f.rows[id] = p
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return errProductNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeStorage) all() []Product {
	out := make([]Product, 0, len(f.rows))
	for _, p := range f.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeStorage) List(_ context.Context, flt Filter, skip, limit int) ([]Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Product{}
	for _, p := range f.all() {
		if flt.CategoryID != nil && p.CategoryID != *flt.CategoryID {
			continue
		}
		if flt.BrandID != nil && p.BrandID != *flt.BrandID {
			continue
		}
		if flt.IsSale != nil && p.IsSale != *flt.IsSale {
			continue
		}
		if flt.IsNew != nil && p.IsNew != *flt.IsNew {
			continue
		}
		if term := strings.ToLower(flt.Search); term != "" &&
			!strings.Contains(strings.ToLower(p.NameAz+"|"+p.NameEn+"|"+p.NameRu), term) {
			continue
		}
		out = append(out, p)
	}
	if skip >= len(out) {
		return []Product{}, nil
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStorage) Search(_ context.Context, q string, limit int) ([]Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	term := strings.ToLower(q)
	out := []Product{}
	for _, p := range f.all() {
		text := strings.ToLower(p.NameAz + "|" + p.NameEn + "|" + p.NameRu + "|" + p.DescriptionAz)
		if strings.Contains(text, term) && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStorage) ListByIDs(_ context.Context, ids []uint) ([]Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Product{}
	for _, id := range ids {
		if p, ok := f.rows[id]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStorage) CategoryExists(_ context.Context, id uint) (bool, error) {
	return f.categories[id], nil
}

func (f *fakeStorage) BrandExists(_ context.Context, id uint) (bool, error) {
	return f.brands[id], nil
}

func (f *fakeStorage) CountOrderItems(_ context.Context, id uint) (int64, error) {
	return f.orderItems[id], nil
}

type fakeImages struct {
	mu      sync.Mutex
	n       int
	stored  map[string]bool
	deleted []string
	failOn  string
}

func newFakeImages() *fakeImages {
	return &fakeImages{stored: map[string]bool{}}
}

func (f *fakeImages) Save(fh *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fh.Filename == f.failOn {
		return "", apperror.InvalidArgument("media.invalid_type", "jpg, jpeg, png")
	}
	f.n++
	url := fmt.Sprintf("/uploads/products/%d-%s", f.n, fh.Filename)
	f.stored[url] = true
	return url, nil
}

func (f *fakeImages) Owns(url string) bool {
	return strings.HasPrefix(url, "/uploads/products/")
}

func (f *fakeImages) DeleteAll(urls []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range urls {
		delete(f.stored, u)
		f.deleted = append(f.deleted, u)
	}
}
