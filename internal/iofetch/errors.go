package iofetch

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/pkg/errcode"
)

func FetchRequestError(path string, err error) error {
	msg := "Cannot load <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchRequestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to load %s: %w",
			fn.Name(), path, err),
	}
}

func FetchStatusError(path string, code int, status string) error {
	msg := "Failed to load <em>%s</em>: %s"
	vars := []any{path, status}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchStatusError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to load %s: status %d",
			fn.Name(), path, code),
	}
}
