package widget

import (
	"errors"

	"github.com/atotto/clipboard"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// ErrClipboardUnsupported is returned when no clipboard utility is installed.
var ErrClipboardUnsupported = errors.New("no clipboard utility found (install xclip, xsel or wl-clipboard)")

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteText copies text to the clipboard.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboardWriteAll(text)
}

// CheckClipboard reports whether the system clipboard can be used.
func CheckClipboard() error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return nil
}
