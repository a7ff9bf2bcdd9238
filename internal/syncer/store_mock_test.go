package syncer

import (
	"context"
	"sync"

	"github.com/taranenko/taskfeed/internal/remote"
)

var _ remote.Store = &storeMock{}

type storeMock struct {
	GetFunc    func(ctx context.Context, path string) (*remote.Document, error)
	QueryFunc  func(ctx context.Context, collection string, filters []remote.Filter, orderBy []remote.Order, limit int) ([]remote.Document, error)
	AddFunc    func(ctx context.Context, collection string, fields map[string]any) (string, error)
	SetFunc    func(ctx context.Context, path string, fields map[string]any) error
	UpdateFunc func(ctx context.Context, path string, patch map[string]any) error
	DeleteFunc func(ctx context.Context, path string) error

	calls struct {
		Get []struct {
			Path string
		}
		Query []struct {
			Collection string
			Filters    []remote.Filter
			OrderBy    []remote.Order
			Limit      int
		}
		Add []struct {
			Collection string
			Fields     map[string]any
		}
		Set []struct {
			Path   string
			Fields map[string]any
		}
		Update []struct {
			Path  string
			Patch map[string]any
		}
		Delete []struct {
			Path string
		}
	}
	lockGet    sync.RWMutex
	lockQuery  sync.RWMutex
	lockAdd    sync.RWMutex
	lockSet    sync.RWMutex
	lockUpdate sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *storeMock) Get(ctx context.Context, path string) (*remote.Document, error) {
	if mock.GetFunc == nil {
		panic("storeMock.GetFunc: method is nil but Store.Get was just called")
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, struct{ Path string }{Path: path})
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, path)
}

func (mock *storeMock) GetCalls() []struct{ Path string } {
	mock.lockGet.RLock()
	defer mock.lockGet.RUnlock()
	return mock.calls.Get
}

func (mock *storeMock) Query(ctx context.Context, collection string, filters []remote.Filter, orderBy []remote.Order, limit int) ([]remote.Document, error) {
	if mock.QueryFunc == nil {
		panic("storeMock.QueryFunc: method is nil but Store.Query was just called")
	}
	callInfo := struct {
		Collection string
		Filters    []remote.Filter
		OrderBy    []remote.Order
		Limit      int
	}{Collection: collection, Filters: filters, OrderBy: orderBy, Limit: limit}
	mock.lockQuery.Lock()
	mock.calls.Query = append(mock.calls.Query, callInfo)
	mock.lockQuery.Unlock()
	return mock.QueryFunc(ctx, collection, filters, orderBy, limit)
}

func (mock *storeMock) QueryCalls() []struct {
	Collection string
	Filters    []remote.Filter
	OrderBy    []remote.Order
	Limit      int
} {
	mock.lockQuery.RLock()
	defer mock.lockQuery.RUnlock()
	return mock.calls.Query
}

func (mock *storeMock) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if mock.AddFunc == nil {
		panic("storeMock.AddFunc: method is nil but Store.Add was just called")
	}
	callInfo := struct {
		Collection string
		Fields     map[string]any
	}{Collection: collection, Fields: fields}
	mock.lockAdd.Lock()
	mock.calls.Add = append(mock.calls.Add, callInfo)
	mock.lockAdd.Unlock()
	return mock.AddFunc(ctx, collection, fields)
}

func (mock *storeMock) AddCalls() []struct {
	Collection string
	Fields     map[string]any
} {
	mock.lockAdd.RLock()
	defer mock.lockAdd.RUnlock()
	return mock.calls.Add
}

func (mock *storeMock) Set(ctx context.Context, path string, fields map[string]any) error {
	if mock.SetFunc == nil {
		panic("storeMock.SetFunc: method is nil but Store.Set was just called")
	}
	callInfo := struct {
		Path   string
		Fields map[string]any
	}{Path: path, Fields: fields}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, path, fields)
}

func (mock *storeMock) SetCalls() []struct {
	Path   string
	Fields map[string]any
} {
	mock.lockSet.RLock()
	defer mock.lockSet.RUnlock()
	return mock.calls.Set
}

func (mock *storeMock) Update(ctx context.Context, path string, patch map[string]any) error {
	if mock.UpdateFunc == nil {
		panic("storeMock.UpdateFunc: method is nil but Store.Update was just called")
	}
	callInfo := struct {
		Path  string
		Patch map[string]any
	}{Path: path, Patch: patch}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, path, patch)
}

func (mock *storeMock) UpdateCalls() []struct {
	Path  string
	Patch map[string]any
} {
	mock.lockUpdate.RLock()
	defer mock.lockUpdate.RUnlock()
	return mock.calls.Update
}

func (mock *storeMock) Delete(ctx context.Context, path string) error {
	if mock.DeleteFunc == nil {
		panic("storeMock.DeleteFunc: method is nil but Store.Delete was just called")
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ Path string }{Path: path})
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, path)
}

func (mock *storeMock) DeleteCalls() []struct{ Path string } {
	mock.lockDelete.RLock()
	defer mock.lockDelete.RUnlock()
	return mock.calls.Delete
}
