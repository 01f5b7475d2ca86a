package app

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/blockpad/internal/block"
	"github.com/dshills/blockpad/internal/config"
	"github.com/dshills/blockpad/internal/document"
	"github.com/dshills/blockpad/internal/engine"
	"github.com/dshills/blockpad/internal/engine/focus"
	"github.com/dshills/blockpad/internal/parser"
	"github.com/dshills/blockpad/internal/plugin"
	"github.com/dshills/blockpad/internal/storage"
)

// Options configures a session.
type Options struct {
	// Store is the persistence backend. Required.
	Store storage.Store

	// Config holds editor settings. Defaults are used when nil.
	Config *config.Config

	// Plugins is the Lua filter host. Optional.
	Plugins *plugin.Host

	// Logger receives session logs. Defaults to NullLogger.
	Logger *Logger
}

// autoSaveMessage is the commit message used for automatic saves.
const autoSaveMessage = "auto-save"

// Session owns one open document and coordinates the editing core around
// it. All edit requests go through the session, which applies the engine's
// result to its canonical document text, keeps the focus and undo history
// in step, and schedules normalization for when editing pauses.
type Session struct {
	mu sync.Mutex

	id      string
	store   storage.Store
	plugins *plugin.Host
	logger  *Logger

	model  *document.Model
	engine *engine.Engine
	focus  *focus.Controller

	path     string
	doc      string
	dirty    bool
	pending  bool
	closed   bool
	autoSave bool
}

// NewSession creates a session with no document open.
func NewSession(opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, &InitError{Component: "storage", Err: fmt.Errorf("store is required")}
	}
	cfg := opts.Config
	if cfg == nil {
		c := config.Default()
		cfg = &c
	}
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}

	model := document.NewModel(parser.NewGoldmark())
	eng := engine.New(model,
		engine.WithUndoCapacity(cfg.UndoCapacity),
		engine.WithIndentStep(cfg.IndentStep),
	)

	return &Session{
		id:       uuid.NewString(),
		store:    opts.Store,
		plugins:  opts.Plugins,
		logger:   logger.WithComponent("session"),
		model:    model,
		engine:   eng,
		focus:    focus.NewController(),
		autoSave: cfg.AutoSave,
	}, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Path returns the path of the open file, or "" if none is open.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Doc returns the current document text.
func (s *Session) Doc() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Blocks returns the current document partitioned into blocks.
func (s *Session) Blocks() []block.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Partition(s.doc)
}

// Focus returns the current focus state.
func (s *Session) Focus() focus.State {
	return s.focus.Current()
}

// Dirty reports whether the document has unsaved changes.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Open loads a file from the store, runs the load filters, and makes it
// the session's document. Any previously open document is discarded.
func (s *Session) Open(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	text, err := s.store.Load(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if s.plugins != nil {
		text = s.plugins.RunOnLoad(text)
	}

	s.path = path
	s.doc = s.model.Normalize(text)
	s.dirty = false
	s.pending = false
	s.focus.Clear()
	s.engine.History().Clear()
	s.engine.Commit(s.doc)

	s.logger.Info("opened %s (%d bytes)", path, len(s.doc))
	return nil
}

// NewDocument starts an empty document to be saved at path.
func (s *Session) NewDocument(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.path = path
	s.doc = s.model.Normalize("")
	s.dirty = false
	s.pending = false
	s.focus.Clear()
	s.engine.History().Clear()
	s.engine.Commit(s.doc)
	return nil
}

// SetContent replaces the editable content of block i.
func (s *Session) SetContent(i int, editable string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(s.engine.SetContent(s.doc, i, editable))
}

// Split splits text block i at content offset at.
func (s *Session) Split(i, at int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(s.engine.Split(s.doc, i, at))
}

// Enter handles the Enter key inside block i at content offset at,
// continuing a list or splitting the block.
func (s *Session) Enter(i, at int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(s.engine.Enter(s.doc, i, at))
}

// MergePrevious merges block i into the preceding block.
func (s *Session) MergePrevious(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(s.engine.MergePrevious(s.doc, i))
}

// DeleteIfEmpty removes block i when it is a deletable empty block.
func (s *Session) DeleteIfEmpty(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(s.engine.DeleteIfEmpty(s.doc, i))
}

// Backspace handles a backspace at a structural boundary inside block i.
// A marker-only list line is removed first; at the start of the content
// the block is deleted when empty or merged into its predecessor.
func (s *Session) Backspace(i, at int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res, ok := s.engine.MarkerLineBackspace(s.doc, i, at); ok {
		s.apply(res)
		return
	}
	if at != 0 {
		return
	}
	res := s.engine.DeleteIfEmpty(s.doc, i)
	if res.Doc == s.doc {
		res = s.engine.MergePrevious(s.doc, i)
	}
	s.apply(res)
}

// Indent increases the indentation of the list line at offset at in block i.
func (s *Session) Indent(i, at int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(s.engine.Indent(s.doc, i, at))
}

// Outdent decreases the indentation of the list line at offset at in block i.
func (s *Session) Outdent(i, at int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(s.engine.Outdent(s.doc, i, at))
}

// Undo restores the previous snapshot.
func (s *Session) Undo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.engine.Undo(s.doc, s.focus.Current())
	if res.Doc == s.doc {
		return
	}
	s.doc = res.Doc
	s.setFocus(res.Focus)
	s.dirty = true
	s.pending = s.model.NeedsNormalize(s.doc)
}

// FocusPrevious moves focus to the block before the current one.
func (s *Session) FocusPrevious() {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.engine.EditPrevious(s.doc, s.focus.Current())
	s.setFocus(res.Focus)
}

// FocusNext moves focus to the block after the current one.
func (s *Session) FocusNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.engine.EditNext(s.doc, s.focus.Current())
	s.setFocus(res.Focus)
}

// FocusBlock moves focus to block i with the cursor at offset cursor.
func (s *Session) FocusBlock(i, cursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks := s.model.Partition(s.doc)
	if i < 0 || i >= len(blocks) {
		return
	}
	s.setFocus(focus.At(i, cursor).Clamp(len(blocks), len(blocks[i].Content())))
}

// Blur leaves editing mode and settles any pending normalization. With
// auto-save enabled a dirty document is also written to the store.
func (s *Session) Blur() {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.engine.EditNone(s.doc)
	s.setFocus(res.Focus)
	s.settle()

	if s.autoSave && s.dirty && s.path != "" {
		if _, err := s.saveLocked(autoSaveMessage); err != nil {
			s.logger.Warn("auto-save failed: %v", err)
		}
	}
}

// Settle applies any deferred normalization. The caller's view of block
// indices is preserved; only surrounding whitespace moves.
func (s *Session) Settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle()
}

// Save settles, runs the save filters, and writes the document to the
// store. It returns the store's commit identifier.
func (s *Session) Save(message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}
	return s.saveLocked(message)
}

// saveLocked writes the document to the store. Caller holds the lock.
func (s *Session) saveLocked(message string) (string, error) {
	if s.path == "" {
		return "", ErrNoFile
	}

	s.settle()
	text := s.doc
	if s.plugins != nil {
		text = s.plugins.RunOnSave(text)
	}

	id, err := s.store.Save(s.path, text, message)
	if err != nil {
		return "", fmt.Errorf("saving %s: %w", s.path, err)
	}
	s.dirty = false
	s.logger.Info("saved %s as %s", s.path, id)
	return id, nil
}

// Close releases the session's resources. The session is unusable after.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.plugins != nil {
		s.plugins.Close()
	}
}

// apply installs an engine result as the new canonical state. Results
// that leave the document unchanged still update focus.
func (s *Session) apply(res engine.Result) {
	if res.Doc != s.doc {
		s.doc = res.Doc
		s.dirty = true
		s.pending = s.model.NeedsNormalize(s.doc)
		s.engine.Commit(s.doc)
	}
	s.setFocus(res.Focus)
}

// settle normalizes the document if a previous edit left stray
// whitespace between blocks. Caller holds the lock.
func (s *Session) settle() {
	if !s.pending {
		return
	}
	s.pending = false

	normalized := s.model.Normalize(s.doc)
	if normalized == s.doc {
		return
	}
	s.doc = normalized

	// Block count is unchanged by normalization, so the focused index
	// stays valid. The cursor may need clamping to the trimmed content.
	cur := s.focus.Current()
	if cur.Editing() {
		blocks := s.model.Partition(s.doc)
		if cur.Block < len(blocks) {
			s.setFocus(cur.Clamp(len(blocks), len(blocks[cur.Block].Content())))
		}
	}
}

func (s *Session) setFocus(st focus.State) {
	if st.Editing() {
		s.focus.Set(st)
	} else {
		s.focus.Clear()
	}
}
