package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedCategory = errors.New("unsupported bill category")
	ErrConfiguration       = errors.New("configuration error")
	ErrDocumentRead        = errors.New("pdf could not be read")
	ErrOCR                 = errors.New("ocr failed")
	ErrCompletionService   = errors.New("completion service failed")
	ErrPersistence         = errors.New("bill record could not be stored")
)
