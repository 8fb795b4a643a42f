package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formarray/pkg/arrays"
	"github.com/goliatone/go-formarray/pkg/i18n"
	"github.com/goliatone/go-formarray/pkg/store"
)

var (
	colorError  = []color.Attribute{color.FgRed}
	colorWarn   = []color.Attribute{color.FgYellow}
	colorHeader = []color.Attribute{color.Bold}
)

const previewWidth = 60

type command int

const (
	commandAdd command = iota
	commandRemove
	commandMove
	commandRaw
	commandDone
)

// Session edits one array of a store interactively. Every command goes
// through the same arrays.Control API a graphical host would use.
type Session struct {
	cfg       config
	store     *store.Store
	props     arrays.Props
	control   *arrays.Control
	presenter *Presenter
}

// NewSession opens a session on props.Path. props.Data is ignored; the
// session reads the array from s.
func NewSession(s *store.Store, props arrays.Props, options ...Option) (*Session, error) {
	if s == nil {
		return nil, errors.New("tui: store is required")
	}
	if props.Schema == nil || (props.Schema.Type != "" && props.Schema.Type != "array") {
		return nil, fmt.Errorf("%w: %q", ErrNoArray, props.Path.String())
	}
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.driver == nil {
		cfg.driver = NewSurveyDriver(nil)
	}

	presenter := &Presenter{ctx: context.Background(), cfg: cfg}
	controlOptions := append([]arrays.Option{
		arrays.WithLogger(cfg.logger),
		arrays.WithLocalizer(cfg.localizer),
	}, cfg.control...)
	controlOptions = append(controlOptions, arrays.WithPresenter(presenter))

	session := &Session{
		cfg:       cfg,
		store:     s,
		props:     props,
		control:   arrays.NewControl(s, controlOptions...),
		presenter: presenter,
	}
	session.refresh()
	return session, nil
}

// Control exposes the underlying control.
func (s *Session) Control() *arrays.Control {
	return s.control
}

// Value returns the current array, nil when unset.
func (s *Session) Value() []any {
	value, _ := s.store.Get(s.props.Path)
	list, _ := value.([]any)
	return list
}

// Run loops over the command menu until the user picks done. Aborting the
// menu returns ErrAborted; aborting a sub-prompt only cancels that command.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	s.presenter.ctx = ctx
	unsubscribe := s.store.Subscribe(func(any) { s.refresh() })
	defer unsubscribe()
	s.refresh()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.cfg.driver.Info(ctx, s.renderList()); err != nil {
			return err
		}

		commands, labels := s.menu()
		idx, err := s.cfg.driver.Select(ctx, SelectConfig{Message: s.control.Label(), Options: labels})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(commands) {
			continue
		}

		switch commands[idx] {
		case commandAdd:
			s.control.RequestAdd()
			err = s.presenterErr()
		case commandRemove:
			err = s.remove(ctx)
		case commandMove:
			err = s.move(ctx)
		case commandRaw:
			s.control.EditRaw()
			err = s.presenterErr()
		case commandDone:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) refresh() {
	props := s.props
	props.Data = s.Value()
	s.control.Update(props)
}

// presenterErr surfaces driver failures from dialogs; aborts are swallowed.
func (s *Session) presenterErr() error {
	err := s.presenter.Err()
	if errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}

func (s *Session) menu() ([]command, []string) {
	loc := s.cfg.localizer
	view := s.control.View()
	var commands []command
	var labels []string
	add := func(cmd command, label string) {
		commands = append(commands, cmd)
		labels = append(labels, label)
	}
	if view.CanAdd {
		add(commandAdd, loc.T(i18n.KeyAddItem))
	}
	if view.Editable && len(view.Items) > 0 {
		add(commandRemove, loc.T(i18n.KeyRemove))
	}
	if view.Editable && len(view.Items) > 1 {
		add(commandMove, loc.T(i18n.KeyMove))
	}
	if view.Editable {
		add(commandRaw, loc.T(i18n.KeyEditRaw))
	}
	add(commandDone, loc.T(i18n.KeyDone))
	return commands, labels
}

func (s *Session) renderList() string {
	view := s.control.View()
	data := s.Value()

	var b strings.Builder
	header := view.Label
	if view.Required {
		header += " *"
	}
	if view.MaxItems != nil {
		header += fmt.Sprintf(" (%d/%d)", len(view.Items), *view.MaxItems)
	}
	b.WriteString(newColor(s.cfg.color, colorHeader...).Sprint(header))

	visible := 0
	for _, item := range view.Items {
		if !item.Visible {
			continue
		}
		visible++
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %d. %s", item.Index+1, itemPreview(item, data)))
	}
	if visible == 0 {
		b.WriteString("\n  " + view.Strings.NoItems)
	}
	if view.Strings.Limit != "" {
		b.WriteString("\n" + newColor(s.cfg.color, colorWarn...).Sprint(s.cfg.theme.InfoPrefix+view.Strings.Limit))
	}
	return s.cfg.theme.InfoPrefix + b.String()
}

func (s *Session) pickItem(ctx context.Context, message string) (int, bool, error) {
	view := s.control.View()
	data := s.Value()
	options := make([]string, 0, len(view.Items)+1)
	for _, item := range view.Items {
		options = append(options, fmt.Sprintf("%d. %s", item.Index+1, itemPreview(item, data)))
	}
	options = append(options, s.cfg.localizer.T(i18n.KeyCancel))

	idx, err := s.cfg.driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if errors.Is(err, ErrAborted) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if idx < 0 || idx >= len(view.Items) {
		return 0, false, nil
	}
	return idx, true, nil
}

func (s *Session) remove(ctx context.Context) error {
	idx, ok, err := s.pickItem(ctx, s.cfg.localizer.T(i18n.KeyRemove))
	if err != nil || !ok {
		return err
	}
	s.control.RemoveItem(idx)
	return nil
}

func (s *Session) move(ctx context.Context) error {
	loc := s.cfg.localizer
	from, ok, err := s.pickItem(ctx, loc.T(i18n.KeyMove))
	if err != nil || !ok {
		return err
	}
	length := len(s.Value())
	positions := make([]string, 0, length)
	for i := 1; i <= length; i++ {
		positions = append(positions, strconv.Itoa(i))
	}
	to, err := s.cfg.driver.Select(ctx, SelectConfig{
		Message:      fmt.Sprintf("%s %d", loc.T(i18n.KeyMove), from+1),
		Options:      positions,
		DefaultIndex: from,
	})
	if errors.Is(err, ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	s.control.MoveItem(from, to)
	return nil
}

func itemPreview(item arrays.ItemView, data []any) string {
	if item.Label != "" {
		return item.Label
	}
	if item.Index >= len(data) {
		return ""
	}
	raw, err := json.Marshal(data[item.Index])
	if err != nil {
		return fmt.Sprint(data[item.Index])
	}
	preview := []rune(string(raw))
	if len(preview) > previewWidth {
		return string(preview[:previewWidth-3]) + "..."
	}
	return string(preview)
}
