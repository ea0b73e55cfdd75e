package order

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mserebryaakov/handora-service/internal/product"
	"github.com/mserebryaakov/handora-service/pkg/optional"
)

// fakeStorage serialises transactions behind one mutex, which is the
// isolation the row locks give the real storage for a shared product.
type fakeStorage struct {
	mu       sync.Mutex
	products map[uint]product.Product
	orders   map[uint]Order
	nextID   uint
	nextItem uint
}

func newFakeStorage(products ...product.Product) *fakeStorage {
	f := &fakeStorage{
		products: map[uint]product.Product{},
		orders:   map[uint]Order{},
	}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeStorage) stock(id uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].Stock
}

func (f *fakeStorage) setPrice(id uint, price string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.products[id]
	p.Price = decimal.RequireFromString(price)
	p.DiscountPrice = nil
	f.products[id] = p
}

func (f *fakeStorage) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func (f *fakeStorage) Transaction(_ context.Context, fn func(tx TxStorage) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	products := make(map[uint]product.Product, len(f.products))
	for k, v := range f.products {
		products[k] = v
	}
	orders := make(map[uint]Order, len(f.orders))
	for k, v := range f.orders {
		orders[k] = v
	}
	nextID, nextItem := f.nextID, f.nextItem

	if err := fn(&fakeTx{f: f}); err != nil {
		f.products, f.orders = products, orders
		f.nextID, f.nextItem = nextID, nextItem
		return err
	}
	return nil
}

type fakeTx struct {
	f *fakeStorage
}

func (t *fakeTx) LockProducts(ids []uint) (map[uint]product.Product, error) {
	out := map[uint]product.Product{}
	for _, id := range ids {
		if p, ok := t.f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (t *fakeTx) DecrementStock(id uint, qty int) (bool, error) {
	p, ok := t.f.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	t.f.products[id] = p
	return true, nil
}

func (t *fakeTx) InsertOrder(o *Order) error {
	t.f.nextID++
	o.ID = t.f.nextID
	for i := range o.Items {
		t.f.nextItem++
		o.Items[i].ID = t.f.nextItem
		o.Items[i].OrderID = o.ID
	}
	t.f.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (f *fakeStorage) GetOrderByID(_ context.Context, id uint) (*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, errOrderNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (f *fakeStorage) GetOrderByIDForUser(_ context.Context, userID, id uint) (*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.UserID != userID {
		return nil, errOrderWithUserIdAndOrderIdNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (f *fakeStorage) GetOrdersByUserID(_ context.Context, userID uint) ([]Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStorage) ListOrders(_ context.Context, status *Status, skip, limit int) ([]Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := []Order{}
	for _, o := range f.orders {
		if status == nil || o.Status == *status {
			all = append(all, cloneOrder(o))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if skip >= len(all) {
		return []Order{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeStorage) UpdateStatus(_ context.Context, id uint, status Status, tracking optional.Field[string]) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return errOrderNotFound
	}
	o.Status = status
	if tracking.Set {
		if tracking.Null {
			o.TrackingNumber = nil
		} else {
			v := tracking.Value
			o.TrackingNumber = &v
		}
	}
	f.orders[id] = o
	return nil
}

func cloneOrder(o Order) Order {
	o.Items = append([]OrderItem(nil), o.Items...)
	return o
}
