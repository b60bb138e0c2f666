// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package gnuplot makes it slightly easier to generate plots using gnuplot.
package gnuplot

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/sirupsen/logrus"
)

// Render executes the supplied Go template and data to write gnuplot commands to w.
// Sprig's functions are available to the template, along with gpquote, which quotes
// a string for use in gnuplot.
func Render(w io.Writer, tmpl string, data interface{}) error {
	t, err := template.New("").Funcs(sprig.TxtFuncMap()).Funcs(template.FuncMap{
		"gpquote": Quote,
	}).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed parsing template: %w", err)
	}
	if err := t.Execute(w, data); err != nil {
		return fmt.Errorf("failed executing template: %w", err)
	}
	return nil
}

// Quote returns s as a single-quoted gnuplot string.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ExecTemplate renders the supplied template and data to a .gnuplot file,
// which it then passes to gnuplot.
func ExecTemplate(ctx context.Context, tmpl string, data interface{}, log logrus.FieldLogger) error {
	gf, err := os.CreateTemp("", "gnuplot.")
	if err != nil {
		return err
	}
	defer os.Remove(gf.Name())

	rerr := Render(gf, tmpl, data)
	cerr := gf.Close()
	if rerr != nil {
		return rerr
	}
	if cerr != nil {
		return cerr
	}

	log.WithField("script", gf.Name()).Debug("Running gnuplot")
	if out, err := exec.CommandContext(ctx, "gnuplot", gf.Name()).CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%v: %q", err, msg)
		}
		return err
	}
	return nil
}
