package main

import (
	"errors"
	"log"

	"golang.design/x/clipboard"

	"github.com/PvttJebus/OhMyGord/editor"
)

var errClipboardEmpty = errors.New("clipboard: no text")

// systemClipboard moves copied selections through the OS text clipboard.
type systemClipboard struct{}

// memoryClipboard keeps copies inside the process.
type memoryClipboard struct {
	data []byte
}

// newSystemClipboard falls back to an in-process buffer when the platform
// clipboard cannot be initialised.
func newSystemClipboard() editor.Clipboard {
	if err := clipboard.Init(); err != nil {
		log.Printf("System clipboard unavailable, using memory: %v", err)
		return &memoryClipboard{}
	}
	return systemClipboard{}
}

func (systemClipboard) Read() ([]byte, error) {
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return nil, errClipboardEmpty
	}
	return data, nil
}

func (systemClipboard) Write(data []byte) error {
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func (m *memoryClipboard) Read() ([]byte, error) {
	if len(m.data) == 0 {
		return nil, errClipboardEmpty
	}
	return m.data, nil
}

func (m *memoryClipboard) Write(data []byte) error {
	m.data = append(m.data[:0], data...)
	return nil
}
