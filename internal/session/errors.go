package session

import "errors"

var (
	ErrQuoteNotLoaded = errors.New("quote not loaded")
	ErrSessionClosed  = errors.New("session closed")
)
