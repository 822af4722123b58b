package pgstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"catalogadmin/internal/recordstore"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
)

type widget struct {
	recordstore.Meta
	Name string `json:"name"`
}

func newMockCollection(t *testing.T) (*Collection[widget], pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		mock.Close()
	})
	return New[widget](mock, "widgets"), mock
}

func sql(q string) string { return regexp.QuoteMeta(q) }

func TestEncodeObject(t *testing.T) {
	tests := []struct {
		name string
		in   recordstore.Filter
		want string
	}{
		{"nil matches everything", nil, "{}"},
		{"empty matches everything", recordstore.Filter{}, "{}"},
		{"single field", recordstore.Filter{"category_id": "c1"}, `{"category_id":"c1"}`},
		{"keys are sorted", recordstore.Filter{"status": true, "category_id": "c1"}, `{"category_id":"c1","status":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeObject(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWithoutID(t *testing.T) {
	in := recordstore.Fields{"_id": "x", "name": "a"}

	out := withoutID(in)
	if _, ok := out["_id"]; ok {
		t.Fatal("_id should be dropped")
	}
	if out["name"] != "a" {
		t.Fatalf("unexpected fields %v", out)
	}
	if _, ok := in["_id"]; !ok {
		t.Fatal("input must not be mutated")
	}

	plain := recordstore.Fields{"name": "b"}
	if got := withoutID(plain); len(got) != 1 || got["name"] != "b" {
		t.Fatalf("unexpected fields %v", got)
	}
}

func TestEnsureSchemaCreatesSubcategoryIndex(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectExec(sql("CREATE UNIQUE INDEX IF NOT EXISTS documents_subcategory_name_idx")).
		WillReturnResult(pgxmock.NewResult("CREATE INDEX", 0))

	if err := EnsureSchema(context.Background(), mock); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestFindByIDNoRows(t *testing.T) {
	c, mock := newMockCollection(t)
	mock.ExpectQuery(sql("SELECT body FROM documents WHERE collection = $1 AND id = $2;")).
		WithArgs("widgets", "w1").
		WillReturnError(pgx.ErrNoRows)

	if _, err := c.FindByID(context.Background(), "w1"); !errors.Is(err, recordstore.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFindByIDDecodesBody(t *testing.T) {
	c, mock := newMockCollection(t)
	mock.ExpectQuery(sql("SELECT body FROM documents WHERE collection = $1 AND id = $2;")).
		WithArgs("widgets", "w1").
		WillReturnRows(pgxmock.NewRows([]string{"body"}).AddRow([]byte(`{"_id":"w1","name":"Phones"}`)))

	got, err := c.FindByID(context.Background(), "w1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "w1" || got.Name != "Phones" {
		t.Fatalf("unexpected document %+v", got)
	}
}

func TestFindUsesContainment(t *testing.T) {
	c, mock := newMockCollection(t)
	mock.ExpectQuery(sql("WHERE collection = $1 AND body @> $2::jsonb")).
		WithArgs("widgets", []byte(`{"name":"Phones"}`)).
		WillReturnRows(pgxmock.NewRows([]string{"body"}).
			AddRow([]byte(`{"_id":"w1","name":"Phones"}`)).
			AddRow([]byte(`{"_id":"w2","name":"Phones"}`)))

	got, err := c.Find(context.Background(), recordstore.Filter{"name": "Phones"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "w1" || got[1].ID != "w2" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestUpdateByID(t *testing.T) {
	const q = "UPDATE documents SET body = body || $3::jsonb WHERE collection = $1 AND id = $2;"

	t.Run("merges the patch without _id", func(t *testing.T) {
		c, mock := newMockCollection(t)
		mock.ExpectExec(sql(q)).
			WithArgs("widgets", "w1", []byte(`{"name":"Tablets"}`)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		if err := c.UpdateByID(context.Background(), "w1", recordstore.Fields{"_id": "other", "name": "Tablets"}); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("no row maps to ErrNotFound", func(t *testing.T) {
		c, mock := newMockCollection(t)
		mock.ExpectExec(sql(q)).
			WithArgs("widgets", "missing", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		if err := c.UpdateByID(context.Background(), "missing", recordstore.Fields{"name": "x"}); !errors.Is(err, recordstore.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("unique violation maps to ErrDuplicate", func(t *testing.T) {
		c, mock := newMockCollection(t)
		mock.ExpectExec(sql(q)).
			WithArgs("widgets", "w1", pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "documents_subcategory_name_idx"})

		if err := c.UpdateByID(context.Background(), "w1", recordstore.Fields{"name": "x"}); !errors.Is(err, recordstore.ErrDuplicate) {
			t.Fatalf("err = %v, want ErrDuplicate", err)
		}
	})
}

func TestInsert(t *testing.T) {
	const q = "INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb);"

	t.Run("unique violation maps to ErrDuplicate", func(t *testing.T) {
		c, mock := newMockCollection(t)
		mock.ExpectExec(sql(q)).
			WithArgs("widgets", "w1", pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		doc := widget{Meta: recordstore.Meta{ID: "w1"}, Name: "Phones"}
		if err := c.Insert(context.Background(), &doc); !errors.Is(err, recordstore.ErrDuplicate) {
			t.Fatalf("err = %v, want ErrDuplicate", err)
		}
	})

	t.Run("other errors pass through", func(t *testing.T) {
		c, mock := newMockCollection(t)
		boom := &pgconn.PgError{Code: "57014"}
		mock.ExpectExec(sql(q)).
			WithArgs("widgets", "w1", pgxmock.AnyArg()).
			WillReturnError(boom)

		doc := widget{Meta: recordstore.Meta{ID: "w1"}}
		err := c.Insert(context.Background(), &doc)
		if !errors.Is(err, boom) || errors.Is(err, recordstore.ErrDuplicate) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("document without id is refused", func(t *testing.T) {
		c, _ := newMockCollection(t)
		if err := c.Insert(context.Background(), &widget{Name: "x"}); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestDeleteByIDMissing(t *testing.T) {
	c, mock := newMockCollection(t)
	mock.ExpectExec(sql("DELETE FROM documents WHERE collection = $1 AND id = $2;")).
		WithArgs("widgets", "missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := c.DeleteByID(context.Background(), "missing"); !errors.Is(err, recordstore.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
