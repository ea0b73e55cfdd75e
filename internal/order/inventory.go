package order

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/product"
	"github.com/mserebryaakov/handora-service/pkg/i18n"
)

// ResolveAndReserve prices every line against the locked product rows and
// decrements their stock inside tx. Lines keep their request order; a product
// repeated across lines is checked against its cumulative quantity. Nothing is
// written unless every line passes.
func ResolveAndReserve(tx TxStorage, lines []LineItem) ([]ResolvedLine, decimal.Decimal, error) {
	ids := uniqueIDs(lines)
	locked, err := tx.LockProducts(ids)
	if err != nil {
		return nil, decimal.Zero, apperror.FromDB(err)
	}

	requested := make(map[uint]int, len(ids))
	resolved := make([]ResolvedLine, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		p, ok := locked[line.ProductID]
		if !ok {
			return nil, decimal.Zero, apperror.NotFound("product.not_found", line.ProductID)
		}

		// Compared against the remaining stock so the running sum cannot overflow.
		already := requested[line.ProductID]
		if line.Quantity < 1 || line.Quantity > p.Stock-already {
			return nil, decimal.Zero, insufficient(&p, saturatingAdd(already, line.Quantity))
		}
		requested[line.ProductID] = already + line.Quantity

		unit := p.UnitPrice()
		resolved = append(resolved, ResolvedLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: unit,
		})
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	for _, id := range ids {
		p := locked[id]
		ok, err := tx.DecrementStock(id, requested[id])
		if err != nil {
			return nil, decimal.Zero, apperror.FromDB(err)
		}
		if !ok {
			return nil, decimal.Zero, insufficient(&p, requested[id])
		}
	}

	return resolved, total, nil
}

func insufficient(p *product.Product, requested int) error {
	return apperror.InsufficientStock("order.insufficient_stock", p.Name(i18n.Lang()), p.ID, p.Stock, requested)
}

func saturatingAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// uniqueIDs returns the referenced product ids in ascending order so that
// concurrent transactions lock rows in the same sequence.
func uniqueIDs(lines []LineItem) []uint {
	seen := make(map[uint]struct{}, len(lines))
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
