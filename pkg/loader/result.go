package loader

import "agroalert.dev/dashboard-service/pkg/common"

type Status string

const (
	StatusOK    Status = "ok"
	StatusEmpty Status = "empty"
	StatusError Status = "error"
)

// Result is one loaded collection. Items is never nil, so an empty or failed
// load still encodes as [].
type Result[T any] struct {
	Status Status `json:"status"`
	Items  []T    `json:"items"`
	Error  string `json:"error,omitempty"`
}

// One is a single-record lookup that may legitimately find nothing.
type One[T any] struct {
	Status Status `json:"status"`
	Item   *T     `json:"item,omitempty"`
	Error  string `json:"error,omitempty"`
}

func collect[T any](items []T, err error) Result[T] {
	if err != nil {
		return Result[T]{Status: StatusError, Items: []T{}, Error: err.Error()}
	}
	if len(items) == 0 {
		return Result[T]{Status: StatusEmpty, Items: []T{}}
	}
	return Result[T]{Status: StatusOK, Items: common.NonNil(items)}
}

func single[T any](item *T, err error) One[T] {
	if err != nil {
		return One[T]{Status: StatusError, Error: err.Error()}
	}
	if item == nil {
		return One[T]{Status: StatusEmpty}
	}
	return One[T]{Status: StatusOK, Item: item}
}

func (r Result[T]) Failed() bool { return r.Status == StatusError }

func (o One[T]) Failed() bool { return o.Status == StatusError }

func (o One[T]) Found() bool { return o.Status == StatusOK && o.Item != nil }
