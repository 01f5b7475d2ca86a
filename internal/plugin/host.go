package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Host runs Lua filter scripts. Scripts register text filters through the
// blockpad module:
//
//	blockpad.on_load(function(text) return text end)
//	blockpad.on_save(function(text) return text end)
//
// Load filters run when a file is opened, save filters before it is
// written. A filter that errors or returns a non-string is skipped; plugins
// can degrade the experience but never corrupt the document or crash the
// editor.
type Host struct {
	mu     sync.Mutex
	state  *lua.LState
	closed bool
	onLoad []*lua.LFunction
	onSave []*lua.LFunction
}

// NewHost creates a host with the blockpad module registered.
func NewHost() *Host {
	h := &Host{state: lua.NewState()}

	mod := h.state.NewTable()
	h.state.SetField(mod, "on_load", h.state.NewFunction(func(L *lua.LState) int {
		h.onLoad = append(h.onLoad, L.CheckFunction(1))
		return 0
	}))
	h.state.SetField(mod, "on_save", h.state.NewFunction(func(L *lua.LState) int {
		h.onSave = append(h.onSave, L.CheckFunction(1))
		return 0
	}))
	h.state.SetGlobal("blockpad", mod)

	return h
}

// LoadDir executes every .lua file in dir in name order. Script errors are
// collected and returned joined, but do not stop the remaining scripts. A
// missing or empty directory loads nothing.
func (h *Host) LoadDir(dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading plugin dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	h.mu.Lock()
	defer h.mu.Unlock()

	var errs []error
	for _, name := range names {
		if err := h.state.DoFile(filepath.Join(dir, name)); err != nil {
			errs = append(errs, fmt.Errorf("plugin %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// DoString executes a Lua chunk directly, primarily for tests and ad hoc
// configuration.
func (h *Host) DoString(src string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.DoString(src)
}

// RunOnLoad pipes text through all registered load filters.
func (h *Host) RunOnLoad(text string) string {
	return h.run(h.onLoad, text)
}

// RunOnSave pipes text through all registered save filters.
func (h *Host) RunOnSave(text string) string {
	return h.run(h.onSave, text)
}

func (h *Host) run(filters []*lua.LFunction, text string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, fn := range filters {
		err := h.state.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LString(text))
		if err != nil {
			continue
		}
		ret := h.state.Get(-1)
		h.state.Pop(1)
		if s, ok := ret.(lua.LString); ok {
			text = string(s)
		}
	}
	return text
}

// FilterCount returns the number of registered load and save filters.
func (h *Host) FilterCount() (loads, saves int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.onLoad), len(h.onSave)
}

// Close releases the Lua state. Closing twice is harmless.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.state.Close()
}
