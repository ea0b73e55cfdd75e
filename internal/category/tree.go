package category

import (
	"context"

	"github.com/mserebryaakov/handora-service/internal/apperror"
)

// Tree is recomputed on every call from one category scan and one grouped count.
func (s *categoryService) Tree(ctx context.Context) ([]TreeNode, error) {
	all, err := s.storage.ListAll(ctx)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	counts, err := s.storage.ProductCounts(ctx)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	return buildTree(all, counts), nil
}

func buildTree(all []Category, counts map[uint]int64) []TreeNode {
	index := make(map[uint]int)
	tree := make([]TreeNode, 0)

	for _, c := range all {
		if !c.IsRoot() {
			continue
		}
		index[c.ID] = len(tree)
		tree = append(tree, TreeNode{
			ID:                  c.ID,
			NameAz:              c.NameAz,
			NameEn:              c.NameEn,
			NameRu:              c.NameRu,
			Slug:                c.Slug,
			Subcategories:       []SubcategoryNode{},
			DirectProductsCount: counts[c.ID],
		})
	}

	for _, c := range all {
		if c.IsRoot() {
			continue
		}
		i, ok := index[*c.ParentID]
		if !ok {
			continue
		}
		n := counts[c.ID]
		tree[i].Subcategories = append(tree[i].Subcategories, SubcategoryNode{
			ID:            c.ID,
			NameAz:        c.NameAz,
			NameEn:        c.NameEn,
			NameRu:        c.NameRu,
			Slug:          c.Slug,
			ProductsCount: n,
		})
		tree[i].TotalProductsCount += n
	}

	return tree
}
