package uyghurpad

import "errors"

var (
	ErrNotInitialized = errors.New("uyghurpad: Init has not been called")
)
