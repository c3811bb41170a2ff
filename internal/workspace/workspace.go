// Package workspace keeps the in-memory state of a session: uploaded items, the selected index and
// the watermark options shared by every item.
package workspace

import (
	"slices"
	"sync"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
)

type Workspace struct {
	mu       sync.RWMutex
	items    []model.ImageItem
	selected *int
	opts     model.WatermarkOptions
}

// New returns an empty workspace with opts as current options. opts are not validated here.
func New(opts model.WatermarkOptions) *Workspace {
	return &Workspace{opts: opts}
}

// Add appends items in order. The first item becomes selected if nothing was.
func (w *Workspace) Add(items ...model.ImageItem) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.items = append(w.items, items...)
	if w.selected == nil && len(w.items) > 0 {
		w.selected = intPtr(0)
	}
}

// Remove deletes the item at index and re-clamps the selection.
func (w *Workspace) Remove(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if index < 0 || index >= len(w.items) {
		return model.ErrIncorrectIndex
	}
	w.items = slices.Delete(w.items, index, index+1)

	switch {
	case len(w.items) == 0:
		w.selected = nil
	case w.selected == nil:
		w.selected = intPtr(0)
	case index < *w.selected:
		w.selected = intPtr(*w.selected - 1)
	case index == *w.selected:
		w.selected = intPtr(max(0, index-1))
	}
	return nil
}

func (w *Workspace) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.items = nil
	w.selected = nil
}

func (w *Workspace) Select(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if index < 0 || index >= len(w.items) {
		return model.ErrIncorrectIndex
	}
	w.selected = intPtr(index)
	return nil
}

func (w *Workspace) Item(index int) (model.ImageItem, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if index < 0 || index >= len(w.items) {
		return model.ImageItem{}, model.ErrIncorrectIndex
	}
	return w.items[index], nil
}

// SelectedItem returns the selected item and false when there is none.
func (w *Workspace) SelectedItem() (model.ImageItem, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.selected == nil {
		return model.ImageItem{}, false
	}
	return w.items[*w.selected], true
}

func (w *Workspace) Options() model.WatermarkOptions {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.opts
}

// SetOptions replaces current options after validation. On error nothing changes.
func (w *Workspace) SetOptions(opts model.WatermarkOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.opts = opts
	return nil
}

// Snapshot returns items and options as seen at one moment.
func (w *Workspace) Snapshot() ([]model.ImageItem, model.WatermarkOptions) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return slices.Clone(w.items), w.opts
}

// List returns a copy of the items together with the selected index (nil when the list is empty).
// Item bytes are shared and must be treated as read-only.
func (w *Workspace) List() model.ItemList {
	w.mu.RLock()
	defer w.mu.RUnlock()

	res := model.ItemList{Items: slices.Clone(w.items)}
	if res.Items == nil {
		res.Items = []model.ImageItem{}
	}
	if w.selected != nil {
		res.Selected = intPtr(*w.selected)
	}
	return res
}

func intPtr(v int) *int { return &v }
