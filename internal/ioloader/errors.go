package ioloader

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/pkg/errcode"
)

func DecodeError(path string, err error) error {
	msg := "Cannot decode JSON document <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchDecodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot decode %s: %w",
			fn.Name(), path, err),
	}
}

func ManifestError(err error) error {
	msg := "Cannot load manifest of the dataset"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoaderManifestError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot load manifest: %w", fn.Name(), err),
	}
}

func SubjectError(slug string, err error) error {
	msg := "Cannot load standards of subject <em>%s</em>"
	vars := []any{slug}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoaderSubjectError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot load subject %s: %w",
			fn.Name(), slug, err),
	}
}

func IndexError(path string, err error) error {
	msg := "Cannot load index <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoaderIndexError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot load index %s: %w",
			fn.Name(), path, err),
	}
}
