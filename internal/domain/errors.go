package domain

import "errors"

var (
	ErrLLMNotConfigured    = errors.New("missing LLM api key, base URL, or model in configuration")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrNoFiles             = errors.New("at least one file is required")
	ErrRenderFailed        = errors.New("workbook rendering failed")
)
