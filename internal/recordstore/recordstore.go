package recordstore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned by drivers when a write violates a unique index.
	ErrDuplicate = errors.New("record already exists")
)

// Filter matches documents whose fields equal every value in the map.
// Keys are document field names, identical in JSON and BSON.
type Filter map[string]any

// Fields is a partial document applied by UpdateByID.
type Fields map[string]any

// Collection is the data access abstraction for one document collection.
// Implemented by pgstore, mongostore and memstore.
type Collection[T any] interface {
	Name() string
	NewID() string
	Insert(ctx context.Context, doc *T) error
	Find(ctx context.Context, filter Filter) ([]T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	FindByIDs(ctx context.Context, ids []string) ([]T, error)
	UpdateByID(ctx context.Context, id string, fields Fields) error
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Meta is embedded in every stored document.
type Meta struct {
	ID        string    `json:"_id" bson:"_id"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (m Meta) RecordID() string { return m.ID }

func (m *Meta) Stamp(id string, at time.Time) {
	m.ID = id
	m.CreatedAt = at
	m.UpdatedAt = at
}

// Identified is satisfied by any document embedding Meta.
type Identified interface {
	RecordID() string
}

// Stampable is the pointer constraint used by Create.
type Stampable[T any] interface {
	*T
	Stamp(id string, at time.Time)
}

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Record  any    `json:"record,omitempty"`
	Records any    `json:"records,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// NotFound is returned by Update and Remove when the id does not resolve.
var NotFound = Fail("Not Found")

// Create stamps doc with a fresh id and timestamps and inserts it.
func Create[T any, PT Stampable[T]](ctx context.Context, coll Collection[T], doc T, message string) (Envelope, error) {
	PT(&doc).Stamp(coll.NewID(), time.Now().UTC())

	if err := coll.Insert(ctx, &doc); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Fail(fmt.Sprintf("%s already exist", singular(coll.Name()))), fmt.Errorf("create %s: %w", coll.Name(), err)
		}
		return Fail(fmt.Sprintf("Failed to create %s", singular(coll.Name()))), fmt.Errorf("create %s: %w", coll.Name(), err)
	}

	return Envelope{Success: true, Message: message, Record: doc}, nil
}

// List returns every document matching filter. A nil filter lists the whole collection.
func List[T any](ctx context.Context, coll Collection[T], filter Filter) (Envelope, []T, error) {
	docs, err := coll.Find(ctx, filter)
	if err != nil {
		return Fail(fmt.Sprintf("Failed to fetch %s", coll.Name())), nil, fmt.Errorf("list %s: %w", coll.Name(), err)
	}
	if docs == nil {
		docs = []T{}
	}

	return Envelope{Success: true, Records: docs}, docs, nil
}

// Update applies fields to the document with the given id and bumps updatedAt.
func Update[T any](ctx context.Context, coll Collection[T], id string, fields Fields, message string) (Envelope, error) {
	set := make(Fields, len(fields)+1)
	for k, v := range fields {
		set[k] = v
	}
	set["updatedAt"] = time.Now().UTC()

	if err := coll.UpdateByID(ctx, id, set); err != nil {
		if errors.Is(err, ErrNotFound) {
			return NotFound, err
		}
		if errors.Is(err, ErrDuplicate) {
			return Fail(fmt.Sprintf("%s already exist", singular(coll.Name()))), fmt.Errorf("update %s %s: %w", coll.Name(), id, err)
		}
		return Fail(fmt.Sprintf("Failed to update %s", singular(coll.Name()))), fmt.Errorf("update %s %s: %w", coll.Name(), id, err)
	}

	return Envelope{Success: true, Message: message}, nil
}

// Remove hard-deletes the document with the given id.
func Remove[T any](ctx context.Context, coll Collection[T], id string, message string) (Envelope, error) {
	if err := coll.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return NotFound, err
		}
		return Fail(fmt.Sprintf("Failed to delete %s", singular(coll.Name()))), fmt.Errorf("delete %s %s: %w", coll.Name(), id, err)
	}

	return Envelope{Success: true, Message: message}, nil
}

func singular(name string) string {
	switch {
	case len(name) > 3 && name[len(name)-3:] == "ies":
		return name[:len(name)-3] + "y"
	case len(name) > 1 && name[len(name)-1] == 's':
		return name[:len(name)-1]
	}
	return name
}
