package mongostore

import (
	"context"
	"errors"
	"testing"

	"catalogadmin/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type widget struct {
	recordstore.Meta `bson:",inline"`
	Name             string `json:"name" bson:"name"`
}

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestFindByID(t *testing.T) {
	mt := newMock(t)

	mt.Run("missing document maps to ErrNotFound", func(mt *mtest.T) {
		c := New[widget](mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		if _, err := c.FindByID(context.Background(), "w1"); !errors.Is(err, recordstore.ErrNotFound) {
			mt.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	mt.Run("decodes the stored document", func(mt *mtest.T) {
		c := New[widget](mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateCursorResponse(1, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "w1"},
			{Key: "name", Value: "Phones"},
		}))

		got, err := c.FindByID(context.Background(), "w1")
		if err != nil {
			mt.Fatal(err)
		}
		if got.ID != "w1" || got.Name != "Phones" {
			mt.Fatalf("unexpected document %+v", got)
		}
	})
}

func TestUpdateByID(t *testing.T) {
	mt := newMock(t)

	mt.Run("sends $set without _id", func(mt *mtest.T) {
		c := New[widget](mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := c.UpdateByID(context.Background(), "w1", recordstore.Fields{"_id": "other", "name": "Tablets"})
		if err != nil {
			mt.Fatal(err)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "update" {
			mt.Fatalf("started event = %+v", evt)
		}
		if got := evt.Command.Lookup("updates", "0", "u", "$set", "name").StringValue(); got != "Tablets" {
			mt.Fatalf("$set.name = %q", got)
		}
		if _, err := evt.Command.LookupErr("updates", "0", "u", "$set", "_id"); err == nil {
			mt.Fatal("_id must not be part of $set")
		}
		if got := evt.Command.Lookup("updates", "0", "q", "_id").StringValue(); got != "w1" {
			mt.Fatalf("filter _id = %q", got)
		}
	})

	mt.Run("no match maps to ErrNotFound", func(mt *mtest.T) {
		c := New[widget](mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		if err := c.UpdateByID(context.Background(), "missing", recordstore.Fields{"name": "x"}); !errors.Is(err, recordstore.ErrNotFound) {
			mt.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	mt.Run("duplicate key maps to ErrDuplicate", func(mt *mtest.T) {
		c := New[widget](mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		if err := c.UpdateByID(context.Background(), "w1", recordstore.Fields{"name": "x"}); !errors.Is(err, recordstore.ErrDuplicate) {
			mt.Fatalf("err = %v, want ErrDuplicate", err)
		}
	})
}

func TestInsertDuplicate(t *testing.T) {
	mt := newMock(t)

	mt.Run("duplicate key maps to ErrDuplicate", func(mt *mtest.T) {
		c := New[widget](mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		doc := widget{Meta: recordstore.Meta{ID: "w1"}, Name: "Phones"}
		if err := c.Insert(context.Background(), &doc); !errors.Is(err, recordstore.ErrDuplicate) {
			mt.Fatalf("err = %v, want ErrDuplicate", err)
		}
	})
}

func TestDeleteByIDMissing(t *testing.T) {
	mt := newMock(t)

	mt.Run("no deletion maps to ErrNotFound", func(mt *mtest.T) {
		c := New[widget](mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if err := c.DeleteByID(context.Background(), "missing"); !errors.Is(err, recordstore.ErrNotFound) {
			mt.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestEnsureUnique(t *testing.T) {
	mt := newMock(t)

	mt.Run("creates a compound unique index", func(mt *mtest.T) {
		c := New[widget](mt.DB, mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		if err := c.EnsureUnique(context.Background(), "category_id", "sub_name"); err != nil {
			mt.Fatal(err)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "createIndexes" {
			mt.Fatalf("started event = %+v", evt)
		}
		if !evt.Command.Lookup("indexes", "0", "unique").Boolean() {
			mt.Fatal("index is not unique")
		}
		keys, err := evt.Command.Lookup("indexes", "0", "key").Document().Elements()
		if err != nil {
			mt.Fatal(err)
		}
		if len(keys) != 2 || keys[0].Key() != "category_id" || keys[1].Key() != "sub_name" {
			mt.Fatalf("unexpected index keys %v", keys)
		}
	})
}
