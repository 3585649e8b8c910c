package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Fetch errors
	FetchRequestError
	FetchStatusError
	FetchDecodeError

	// Loader errors
	LoaderManifestError
	LoaderSubjectError
	LoaderIndexError

	// Index builder errors
	IndexNoDocumentsError
	IndexDocumentError
	IndexWriteError
	IndexWatchError

	// Collections errors
	CollectionsOpenError
	CollectionsQueryError
	CollectionsNotFoundError
	CollectionsDefaultError
	CollectionsImportError
)
