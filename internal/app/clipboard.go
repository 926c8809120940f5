package app

import (
	"errors"

	"github.com/atotto/clipboard"

	"grider/internal/store"
)

// Clipboard is the system clipboard as seen by the host.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

var errNoClipboard = errors.New("no system clipboard available")

type systemClipboard struct{}

// SystemClipboard returns the clipboard of the desktop session.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", errNoClipboard
	}
	return clipboard.ReadAll()
}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errNoClipboard
	}
	return clipboard.WriteAll(text)
}

// copyToClipboard writes the copied cells to the system clipboard.
func (a *App) copyToClipboard() {
	text := a.store.ClipboardText()
	if text == "" {
		return
	}
	if err := a.clipboard.WriteAll(text); err != nil {
		a.logger.Warn("Clipboard write failed.", "error", err)
		a.Status = "clipboard unavailable, copy kept in sheet"
	}
}

// pasteFromClipboard pastes the system clipboard. When it cannot be read
// the cells copied inside the sheet are pasted instead.
func (a *App) pasteFromClipboard() {
	text, err := a.clipboard.ReadAll()
	if err != nil {
		a.logger.Warn("Clipboard read failed.", "error", err)
		text = a.store.ClipboardText()
	}
	if text == "" {
		return
	}
	a.store.Dispatch(store.Paste{Text: text})
}
