package iocollections

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/pkg/errcode"
)

func OpenError(path string, err error) error {
	msg := "Cannot open collections database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CollectionsOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open %s: %w",
			fn.Name(), path, err),
	}
}

func QueryError(action string, err error) error {
	msg := "Collections query failed: %s"
	vars := []any{action}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CollectionsQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: %w", fn.Name(), action, err),
	}
}

func ImportError(err error) error {
	msg := "Cannot import collection"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CollectionsImportError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot import: %w", fn.Name(), err),
	}
}

func NotFoundError(id string) error {
	msg := "Collection <em>%s</em> does not exist"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CollectionsNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: collection %s not found", fn.Name(), id),
	}
}

func DefaultError() error {
	msg := "The default collection cannot be deleted"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CollectionsDefaultError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot delete default collection", fn.Name()),
	}
}
