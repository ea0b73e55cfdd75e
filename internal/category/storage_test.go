package category

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockStorage(t *testing.T) (Storage, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewStorage(db), mock
}

func TestSlugExistsExcludesOwnRow(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE slug = \$1 AND id <> \$2`).
		WithArgs("phones", 4).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err := storage.SlugExists(context.Background(), "phones", 4)
	require.NoError(t, err)
	assert.False(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMapsForeignKeyViolation(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec(`DELETE FROM "categories" WHERE "categories"."id" = \$1`).
		WithArgs(3).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectExec(`DELETE FROM "categories" WHERE "categories"."id" = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, storage.Delete(context.Background(), 3), errCategoryInUse)
	assert.ErrorIs(t, storage.Delete(context.Background(), 4), errCategoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCounts(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT category_id, COUNT\(\*\) AS count FROM "products" GROUP BY "category_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "count"}).AddRow(2, 3).AddRow(5, 1))

	counts, err := storage.ProductCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{2: 3, 5: 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateChildLocksParent(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id IN \(\$1\) ORDER BY id FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id"}).AddRow(1, nil))
	mock.ExpectQuery(`INSERT INTO "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectCommit()

	parentID := uint(1)
	c := &Category{NameAz: "Telefon", NameEn: "Phones", NameRu: "Телефоны", Slug: "phones", ParentID: &parentID}
	require.NoError(t, storage.CreateChild(context.Background(), c))
	assert.Equal(t, uint(8), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateChildRefusesNestedParent(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id IN \(\$1\) ORDER BY id FOR UPDATE`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id"}).AddRow(2, 1))
	mock.ExpectRollback()

	parentID := uint(2)
	err := storage.CreateChild(context.Background(), &Category{Slug: "cases", ParentID: &parentID})
	assert.ErrorIs(t, err, errParentNotRoot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReparentLocksBothRows(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id IN \(\$1,\$2\) ORDER BY id FOR UPDATE`).
		WithArgs(7, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id"}).AddRow(2, nil).AddRow(7, nil))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE parent_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "categories" SET .*"parent_id"=\$\d.* WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, storage.Reparent(context.Background(), 7, 2, map[string]interface{}{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReparentRefusesRowWithChildren(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id IN \(\$1,\$2\) ORDER BY id FOR UPDATE`).
		WithArgs(7, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id"}).AddRow(2, nil).AddRow(7, nil))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE parent_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	err := storage.Reparent(context.Background(), 7, 2, map[string]interface{}{})
	assert.ErrorIs(t, err, errHasChildren)
	assert.NoError(t, mock.ExpectationsWereMet())
}
