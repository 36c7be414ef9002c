package export

import (
	"errors"
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// SystemClipboard writes PNG images to the desktop clipboard.
type SystemClipboard struct {
	once    sync.Once
	initErr error
}

func (c *SystemClipboard) WriteImage(png []byte) error {
	c.once.Do(func() {
		c.initErr = clipboard.Init()
	})
	if c.initErr != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, c.initErr)
	}
	if changed := clipboard.Write(clipboard.FmtImage, png); changed == nil {
		return fmt.Errorf("%w: write rejected", ErrClipboardUnavailable)
	}
	return nil
}
