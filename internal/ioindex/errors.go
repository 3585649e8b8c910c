package ioindex

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/pkg/errcode"
)

func NoDocumentsError(dir string, err error) error {
	msg := "No subject documents found in <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	if err == nil {
		err = fmt.Errorf("no files match %s", documents)
	}
	return &gn.Error{
		Code: errcode.IndexNoDocumentsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no documents in %s: %w",
			fn.Name(), dir, err),
	}
}

func DocumentError(file string, err error) error {
	msg := "Cannot read subject document <em>%s</em>"
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IndexDocumentError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read %s: %w",
			fn.Name(), file, err),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot write index <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IndexWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write %s: %w",
			fn.Name(), path, err),
	}
}

func WatchError(dir string, err error) error {
	msg := "Cannot watch <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IndexWatchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot watch %s: %w",
			fn.Name(), dir, err),
	}
}
