package store

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	jsonpatch "github.com/evanphx/json-patch"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formarray/pkg/jsonschema"
	"github.com/goliatone/go-formarray/pkg/paths"
)

// documentKey wraps the data so root-level arrays and scalars can be patched.
const documentKey = "value"

// Listener receives a snapshot of the data after every successful action.
type Listener func(data any)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is an in-memory, mutex-guarded form data store.
type Store struct {
	mu        sync.Mutex
	data      any
	logger    *slog.Logger
	listeners map[int]Listener
	nextID    int
}

var _ Dispatcher = (*Store)(nil)

// New seeds a store with a deep copy of data.
func New(data any, options ...Option) *Store {
	s := &Store{
		data:      jsonschema.CloneValue(data),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		listeners: make(map[int]Listener),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Data returns a deep copy of the current data.
func (s *Store) Data() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return jsonschema.CloneValue(s.data)
}

// Get returns a deep copy of the value at path.
func (s *Store) Get(path paths.Path) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := paths.Get(s.data, path)
	if !ok {
		return nil, false
	}
	return jsonschema.CloneValue(value), true
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch applies the action and logs failures; it never returns an error
// to the caller.
func (s *Store) Dispatch(action Action) {
	if err := s.Apply(action); err != nil {
		s.logger.Warn("store action rejected", "action", action.String(), "error", err)
	}
}

// Apply applies the action and reports failures. Listeners are notified
// outside the lock.
func (s *Store) Apply(action Action) error {
	s.mu.Lock()
	next, err := s.apply(action)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.data = next
	snapshot := jsonschema.CloneValue(next)
	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if listener, ok := s.listeners[id]; ok {
			listeners = append(listeners, listener)
		}
	}
	s.mu.Unlock()

	s.logger.Debug("store action applied", "action", action.String())
	for _, listener := range listeners {
		listener(snapshot)
	}
	return nil
}

func (s *Store) apply(action Action) (any, error) {
	switch action.Kind {
	case ActionAddItem, ActionRemoveItems:
		current, ok := paths.Get(s.data, action.Path)
		if !ok || current == nil {
			if action.Kind == ActionRemoveItems {
				return nil, fmt.Errorf("store: %s: %w", action.Path, ErrNotArray)
			}
			ops := append(s.missingParents(action.Path), map[string]any{
				"op": "add", "path": "/" + documentKey + action.Path.Pointer(), "value": []any{},
			})
			seeded, err := s.patch(s.data, ops)
			if err != nil {
				return nil, err
			}
			return s.patchAction(seeded, action)
		}
		list, ok := current.([]any)
		if !ok {
			return nil, fmt.Errorf("store: %s: %w", action.Path, ErrNotArray)
		}
		for _, idx := range action.Indices {
			if idx < 0 || idx >= len(list) {
				return nil, fmt.Errorf("store: %s: index %d out of range [0,%d)", action.Path, idx, len(list))
			}
		}
		return s.patchAction(s.data, action)
	case ActionUpdate:
		if action.Transform == nil {
			return nil, ErrNoTransform
		}
		current, exists := paths.Get(s.data, action.Path)
		next := action.Transform(jsonschema.CloneValue(current))
		if action.Path == paths.Root {
			return jsonschema.CloneValue(next), nil
		}
		pointer := "/" + documentKey + action.Path.Pointer()
		if next == nil {
			// nil unsets the value
			if !exists {
				return s.data, nil
			}
			return s.patch(s.data, []map[string]any{{"op": "remove", "path": pointer}})
		}
		if exists {
			return s.patch(s.data, []map[string]any{{"op": "replace", "path": pointer, "value": next}})
		}
		ops := append(s.missingParents(action.Path), map[string]any{"op": "add", "path": pointer, "value": next})
		return s.patch(s.data, ops)
	default:
		return nil, fmt.Errorf("store: unknown action %q", action.Kind)
	}
}

// missingParents builds add ops creating an empty object for every absent or
// null ancestor of path.
func (s *Store) missingParents(path paths.Path) []map[string]any {
	var ops []map[string]any
	if s.data == nil && path != paths.Root {
		ops = append(ops, map[string]any{"op": "add", "path": "/" + documentKey, "value": map[string]any{}})
	}
	prefix := paths.Root
	for _, segment := range path.Parent().Segments() {
		prefix = paths.Compose(prefix, segment)
		if value, ok := paths.Get(s.data, prefix); ok && value != nil {
			continue
		}
		ops = append(ops, map[string]any{
			"op": "add", "path": "/" + documentKey + prefix.Pointer(), "value": map[string]any{},
		})
	}
	return ops
}

func (s *Store) patchAction(data any, action Action) (any, error) {
	ops, err := action.patchOps("/" + documentKey)
	if err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return data, nil
	}
	return s.patch(data, ops)
}

func (s *Store) patch(data any, ops []map[string]any) (any, error) {
	doc, err := json.Marshal(map[string]any{documentKey: data})
	if err != nil {
		return nil, fmt.Errorf("store: encode document: %w", err)
	}
	raw, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("store: encode patch: %w", err)
	}
	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return nil, fmt.Errorf("store: decode patch: %w", err)
	}
	out, err := patch.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("store: apply patch: %w", err)
	}
	decoded, err := jsonschema.DecodeJSON(out)
	if err != nil {
		return nil, fmt.Errorf("store: decode document: %w", err)
	}
	wrapped, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("store: patched document is not an object")
	}
	return wrapped[documentKey], nil
}
