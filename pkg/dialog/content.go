package dialog

import "fmt"

// Item is one entry of a SelectionList. Data carries the caller's value.
type Item struct {
	Key         string
	Label       string
	Description string
	Data        any
}

// SelectionList is a single-choice list that emits change events.
type SelectionList struct {
	Items    []Item
	selected int
	handlers []func(Item)
}

// NewSelectionList builds a list with no selection.
func NewSelectionList(items []Item) *SelectionList {
	return &SelectionList{Items: append([]Item(nil), items...), selected: -1}
}

func (*SelectionList) contentKind() string { return "selection" }

// OnChange registers a handler fired on every selection change.
func (l *SelectionList) OnChange(fn func(Item)) {
	if fn != nil {
		l.handlers = append(l.handlers, fn)
	}
}

// Select marks the item at index as selected.
func (l *SelectionList) Select(index int) error {
	if index < 0 || index >= len(l.Items) {
		return fmt.Errorf("dialog: selection index %d out of range", index)
	}
	l.selected = index
	item := l.Items[index]
	for _, fn := range l.handlers {
		fn(item)
	}
	return nil
}

// Selected returns the current selection.
func (l *SelectionList) Selected() (Item, bool) {
	if l.selected < 0 || l.selected >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.selected], true
}

// SelectedIndex returns the selected index or -1.
func (l *SelectionList) SelectedIndex() int {
	return l.selected
}

// TextEditor is a free-text body, e.g. raw JSON.
type TextEditor struct {
	Language string
	text     string
}

// NewTextEditor seeds an editor.
func NewTextEditor(language, text string) *TextEditor {
	return &TextEditor{Language: language, text: text}
}

func (*TextEditor) contentKind() string { return "text" }

// Text returns the current text.
func (e *TextEditor) Text() string {
	return e.text
}

// SetText replaces the current text.
func (e *TextEditor) SetText(text string) {
	e.text = text
}
