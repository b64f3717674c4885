package domain

import "errors"

var (
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrUnknownField        = errors.New("unknown field for this document type")
	ErrSessionNotFound     = errors.New("session not found or expired")
	ErrIncompleteExport    = errors.New("record is incomplete, cannot export document")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
