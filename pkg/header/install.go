package header

import (
	"sync"

	"github.com/mchmarny/sitenav/pkg/document"
	"github.com/mchmarny/sitenav/pkg/menu"
)

// Installation tracks the listeners registered by Install and the controls
// of the header once it has been rendered.
type Installation struct {
	mu       sync.Mutex
	controls *Controls
	cancels  []func()
	onToggle func(expanded bool)
}

// InstallOption configures an Installation.
type InstallOption func(*Installation)

// OnToggle registers fn to be called after every toggle with the new state.
func OnToggle(fn func(expanded bool)) InstallOption {
	return func(i *Installation) { i.onToggle = fn }
}

// Install wires the header into the page lifecycle: when the loop delivers
// ContentLoaded the header is rendered for doc, and clicks on its hamburger
// toggle the menu.
func Install(doc *document.Document, loop *document.Loop, m menu.Menu, opts ...InstallOption) *Installation {
	inst := &Installation{}
	for _, opt := range opts {
		opt(inst)
	}

	cancel := loop.Listen(document.ContentLoaded, nil, func(document.Event) {
		c := Render(doc, m)
		if c == nil {
			return
		}

		clickCancel := loop.Listen(document.Click, c.Hamburger, func(document.Event) {
			c.Toggle()
			if inst.onToggle != nil {
				inst.onToggle(c.Expanded())
			}
		})

		inst.mu.Lock()
		inst.controls = c
		inst.cancels = append(inst.cancels, clickCancel)
		inst.mu.Unlock()
	})

	inst.mu.Lock()
	inst.cancels = append(inst.cancels, cancel)
	inst.mu.Unlock()

	return inst
}

// Controls returns the rendered header controls, or nil before ContentLoaded
// has been handled.
func (i *Installation) Controls() *Controls {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.controls
}

// Cancel removes every listener registered by Install.
func (i *Installation) Cancel() {
	i.mu.Lock()
	cancels := i.cancels
	i.cancels = nil
	i.mu.Unlock()

	for _, c := range cancels {
		c()
	}
}
