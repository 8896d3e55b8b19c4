// Package views holds the server-rendered HTML components.
package views

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// printer writes HTML and keeps the first write error.
type printer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newPrinter(ctx context.Context, w io.Writer) *printer {
	return &printer{ctx: ctx, w: w}
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// text writes s escaped.
func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

// f writes a formatted fragment. String arguments are escaped.
func (p *printer) f(format string, args ...any) {
	for i, a := range args {
		if s, ok := a.(string); ok {
			args[i] = templ.EscapeString(s)
		}
	}
	p.raw(fmt.Sprintf(format, args...))
}

func (p *printer) component(c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(p.ctx, p.w)
}

func component(fn func(p *printer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		fn(p)
		return p.err
	})
}

// classes merges tailwind classes, later ones winning.
func classes(cls ...string) string {
	return twmerge.Merge(cls...)
}
