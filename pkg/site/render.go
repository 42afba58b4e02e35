// Package site applies the header to the pages of a static website, either
// by rewriting a directory tree or per request when serving it.
package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/sitenav/pkg/document"
	"github.com/mchmarny/sitenav/pkg/header"
	"github.com/mchmarny/sitenav/pkg/menu"
	"github.com/mchmarny/sitenav/pkg/metric"
)

const (
	// DefaultConcurrency is the number of pages rendered in parallel.
	DefaultConcurrency = 4

	// ModeStatic labels pages rendered by RenderDir.
	ModeStatic = "static"

	// ModeServe labels pages rendered per request.
	ModeServe = "serve"
)

// DefaultInclude selects the pages that receive the header.
var DefaultInclude = []string{"**/*.html"}

// Renderer injects the site header into HTML pages.
type Renderer struct {
	// Menu is rendered into every page.
	Menu menu.Menu

	// Include and Exclude are doublestar patterns matched against the
	// slash-separated path of a page relative to the site root.
	Include []string
	Exclude []string

	// Concurrency bounds the number of pages rendered at once by RenderDir.
	Concurrency int

	// Metrics records rendered pages and menu toggles. Optional.
	Metrics *metric.Set
}

// Result summarizes a RenderDir run.
type Result struct {
	Pages  int `json:"pages"`
	Copied int `json:"copied"`
}

// Toggle selects how the hamburger toggles the menu in the rendered page.
type Toggle int

const (
	// ToggleScript adds an inline click handler; for static files.
	ToggleScript Toggle = iota
	// ToggleLink links the hamburger to the page in the other menu state;
	// for pages rendered per request.
	ToggleLink
	// ToggleNone leaves the hamburger inert.
	ToggleNone
)

type pageOptions struct {
	clicks int
	mode   string
	toggle Toggle
}

// PageOption configures a single RenderPage call.
type PageOption func(*pageOptions)

// WithClicks clicks the hamburger n times after the header is rendered.
func WithClicks(n int) PageOption {
	return func(o *pageOptions) { o.clicks = n }
}

// WithToggle sets how the rendered hamburger toggles the menu.
// Defaults to ToggleScript.
func WithToggle(t Toggle) PageOption {
	return func(o *pageOptions) { o.toggle = t }
}

// WithMode sets the mode label recorded in metrics.
func WithMode(mode string) PageOption {
	return func(o *pageOptions) { o.mode = mode }
}

func (r *Renderer) metrics() metric.Set {
	if r.Metrics == nil {
		return metric.NoopSet()
	}
	return *r.Metrics
}

// Matches reports whether the page at rel, a slash-separated path relative
// to the site root, should receive the header.
func (r *Renderer) Matches(rel string) bool {
	include := r.Include
	if len(include) == 0 {
		include = DefaultInclude
	}

	for _, p := range r.Exclude {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return false
		}
	}

	for _, p := range include {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}

	return false
}

// RenderPage reads one HTML page from in, runs its load lifecycle with the
// header installed and writes the result to out. Location is the URL path of
// the page and decides the link prefix.
func (r *Renderer) RenderPage(ctx context.Context, in io.Reader, out io.Writer, location string, opts ...PageOption) error {
	o := pageOptions{mode: ModeStatic}
	for _, opt := range opts {
		opt(&o)
	}

	doc, err := document.Parse(in, location)
	if err != nil {
		return err
	}

	m := r.metrics()
	loop := document.NewLoop()

	inst := header.Install(doc, loop, r.Menu, header.OnToggle(func(expanded bool) {
		state := "collapsed"
		if expanded {
			state = "expanded"
		}
		m.Toggles.Increment(state)
	}))
	defer inst.Cancel()

	// runs after the header listener
	loop.Listen(document.ContentLoaded, nil, func(document.Event) {
		defer loop.Close()

		c := inst.Controls()
		if c == nil {
			return
		}
		for i := 0; i < o.clicks; i++ {
			if err := loop.Click(c.Hamburger); err != nil {
				slog.Error("failed to post click", "location", location, "error", err)
				return
			}
		}
	})

	if err := loop.Post(document.Event{Type: document.ContentLoaded}); err != nil {
		return fmt.Errorf("failed to load %s: %w", location, err)
	}

	if err := loop.Run(ctx); err != nil {
		return fmt.Errorf("failed to run page %s: %w", location, err)
	}

	switch c := inst.Controls(); o.toggle {
	case ToggleScript:
		c.ScriptToggle()
	case ToggleLink:
		state := MenuExpanded
		if c.Expanded() {
			state = MenuCollapsed
		}
		c.LinkToggle("?" + url.Values{MenuQuery: {state}}.Encode())
	}

	if err := doc.Render(out); err != nil {
		return err
	}

	m.Pages.Increment(o.mode, header.PathPrefix(location))

	return nil
}

// RenderDir renders every matching page under src into the same relative
// path under dst, and copies all other files verbatim. dst is skipped when
// it lives inside src.
func (r *Renderer) RenderDir(ctx context.Context, src, dst string) (Result, error) {
	if src == "" || dst == "" {
		return Result{}, errors.New("source and destination directories are required")
	}

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve %s: %w", src, err)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve %s: %w", dst, err)
	}
	if absSrc == absDst {
		return Result{}, fmt.Errorf("destination %s must differ from source", dst)
	}

	limit := r.Concurrency
	if limit < 1 {
		limit = DefaultConcurrency
	}

	var pages, copied atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	walkErr := filepath.WalkDir(absSrc, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p == absDst {
				return filepath.SkipDir
			}
			return nil
		}

		if gCtx.Err() != nil {
			return gCtx.Err()
		}

		rel, err := filepath.Rel(absSrc, p)
		if err != nil {
			return err
		}
		slashRel := filepath.ToSlash(rel)
		target := filepath.Join(absDst, rel)

		if !r.Matches(slashRel) {
			g.Go(func() error {
				if err := copyFile(p, target); err != nil {
					return err
				}
				copied.Add(1)
				return nil
			})
			return nil
		}

		g.Go(func() error {
			if err := r.renderFile(gCtx, p, target, "/"+slashRel); err != nil {
				return err
			}
			pages.Add(1)
			return nil
		})

		return nil
	})

	err = g.Wait()
	if walkErr != nil && (err == nil || !errors.Is(walkErr, context.Canceled)) {
		err = errors.Join(err, fmt.Errorf("failed to walk %s: %w", src, walkErr))
	}

	res := Result{Pages: int(pages.Load()), Copied: int(copied.Load())}
	if err != nil {
		return res, err
	}

	slog.Info("site rendered",
		"src", src,
		"dst", dst,
		"pages", res.Pages,
		"copied", res.Copied)

	return res, nil
}

func (r *Renderer) renderFile(ctx context.Context, src, dst, location string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if err := r.RenderPage(ctx, in, out, location, WithMode(ModeStatic)); err != nil {
		out.Close()
		return fmt.Errorf("failed to render %s: %w", src, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}

	slog.Debug("page rendered", "location", location, "dst", dst)

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}

	return out.Close()
}
