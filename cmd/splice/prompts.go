package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"splice/internal/lifecycle"
)

// lineReader hands out input lines to the session loop and to prompts so a
// script can answer dialogs inline.
type lineReader struct {
	scanner *bufio.Scanner
	eof     bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(r)}
}

func (r *lineReader) next() (string, bool) {
	if r.eof {
		return "", false
	}
	if !r.scanner.Scan() {
		r.eof = true
		return "", false
	}
	return strings.TrimSpace(r.scanner.Text()), true
}

// terminalPrompter answers file and confirmation dialogs from the input
// stream. End of input cancels every dialog.
type terminalPrompter struct {
	in  *lineReader
	out io.Writer
}

func (p *terminalPrompter) ask(ctx context.Context, prompt string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	fmt.Fprint(p.out, prompt)
	line, ok := p.in.next()
	if !ok {
		fmt.Fprintln(p.out)
		return "", false, nil
	}
	return line, true, nil
}

func (p *terminalPrompter) ChooseOpenPath(ctx context.Context) (string, bool, error) {
	line, ok, err := p.ask(ctx, "Project to open: ")
	return line, ok && line != "", err
}

func (p *terminalPrompter) ChooseSavePath(ctx context.Context) (string, bool, error) {
	line, ok, err := p.ask(ctx, "Save project as: ")
	return line, ok && line != "", err
}

func (p *terminalPrompter) AskSaveDiscardCancel(ctx context.Context) (lifecycle.Choice, error) {
	line, ok, err := p.ask(ctx, "The project has unsaved changes. [s]ave, [d]iscard or [c]ancel? ")
	if err != nil || !ok {
		return lifecycle.ChoiceCancel, err
	}
	switch strings.ToLower(line) {
	case "s", "save":
		return lifecycle.ChoiceSave, nil
	case "d", "discard":
		return lifecycle.ChoiceDiscard, nil
	default:
		return lifecycle.ChoiceCancel, nil
	}
}

func (p *terminalPrompter) AskYesNo(ctx context.Context, prompt string) (bool, error) {
	line, ok, err := p.ask(ctx, prompt+" [y/N] ")
	if err != nil || !ok {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// sessionUI prints errors and title changes. Loads report from their own
// goroutine, so writes are serialized.
type sessionUI struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	title  string
}

func (u *sessionUI) ShowError(err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.errOut, "error: %v\n", err)
}

func (u *sessionUI) SetTitle(title string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if title == u.title {
		return
	}
	u.title = title
	fmt.Fprintf(u.out, "[%s]\n", title)
}
