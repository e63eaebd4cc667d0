// Package browser opens URLs in the user's default web browser.
package browser

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/matzehuels/wopp/pkg/errors"
)

// Opener opens a URL.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to the [Opener] interface.
type OpenerFunc func(ctx context.Context, url string) error

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, url string) error { return f(ctx, url) }

// System opens URLs with the platform launcher: open on macOS, rundll32 on
// Windows and xdg-open elsewhere.
type System struct {
	// GOOS overrides runtime.GOOS when set.
	GOOS string

	run func(ctx context.Context, name string, args ...string) error
}

// Open validates url and hands it to the launcher. The launcher is started
// and not waited for.
func (s System) Open(ctx context.Context, url string) error {
	if err := errors.ValidateURL(url); err != nil {
		return err
	}
	name, args := Command(s.goos(), url)
	run := s.run
	if run == nil {
		run = start
	}
	if err := run(ctx, name, args...); err != nil {
		return errors.Wrap(errors.ErrCodeURLLaunch, err, "could not open %s", url)
	}
	return nil
}

func (s System) goos() string {
	if s.GOOS != "" {
		return s.GOOS
	}
	return runtime.GOOS
}

// Command returns the launcher invocation for goos.
func Command(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// start launches the command detached from ctx so the browser outlives the
// process.
func start(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Open opens url with the [System] launcher.
func Open(ctx context.Context, url string) error {
	return System{}.Open(ctx, url)
}
