package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ReceivedItem is one item sent to this player, with the location it came from.
type ReceivedItem struct {
	ItemID     int
	LocationID int
}

// ItemsWriter keeps the add-on's Items.lua in sync with the received items.
// Every change rewrites the whole file.
type ItemsWriter struct {
	Path string

	mu    sync.Mutex
	items []ReceivedItem
}

// NewItemsWriter creates a writer for path.
func NewItemsWriter(path string) *ItemsWriter {
	return &ItemsWriter{Path: path}
}

// Reset clears the list, as on a fresh server connection.
func (w *ItemsWriter) Reset() error {
	return w.SetAll(nil)
}

// Add appends one item.
func (w *ItemsWriter) Add(it ReceivedItem) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append(w.items, it)
	return w.write()
}

// SetAll replaces the list, as on a full resync.
func (w *ItemsWriter) SetAll(items []ReceivedItem) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append(w.items[:0], items...)
	return w.write()
}

// Len returns the number of items written.
func (w *ItemsWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// Render returns the Lua source for items.
func Render(items []ReceivedItem) string {
	var b strings.Builder
	b.WriteString("APESO_ReceivedItems = {\n")
	for _, it := range items {
		fmt.Fprintf(&b, "    { item_id = %d, location_id = %d },\n", it.ItemID, it.LocationID)
	}
	b.WriteString("}")
	return b.String()
}

// write replaces the file through a temp file so the game never reads a
// partial list.
func (w *ItemsWriter) write() error {
	if err := os.MkdirAll(filepath.Dir(w.Path), 0o755); err != nil {
		return fmt.Errorf("creating items directory: %w", err)
	}
	tmp := w.Path + ".tmp"
	if err := os.WriteFile(tmp, []byte(Render(w.items)), 0o644); err != nil {
		return fmt.Errorf("writing items file: %w", err)
	}
	if err := os.Rename(tmp, w.Path); err != nil {
		return fmt.Errorf("replacing items file: %w", err)
	}
	return nil
}
