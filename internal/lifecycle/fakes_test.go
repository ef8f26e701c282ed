package lifecycle

import (
	"context"
	"errors"
	"sync"

	"splice/internal/project"
)

type fakeFiles struct {
	openPath string
	savePath string
	cancel   bool
	saveAsks int
	openAsks int
}

func (f *fakeFiles) ChooseOpenPath(context.Context) (string, bool, error) {
	f.openAsks++
	if f.cancel {
		return "", false, nil
	}
	return f.openPath, true, nil
}

func (f *fakeFiles) ChooseSavePath(context.Context) (string, bool, error) {
	f.saveAsks++
	if f.cancel {
		return "", false, nil
	}
	return f.savePath, true, nil
}

type fakeConfirm struct {
	choice  Choice
	yes     bool
	asked   int
	prompts []string
}

func (f *fakeConfirm) AskSaveDiscardCancel(context.Context) (Choice, error) {
	f.asked++
	return f.choice, nil
}

func (f *fakeConfirm) AskYesNo(_ context.Context, prompt string) (bool, error) {
	f.prompts = append(f.prompts, prompt)
	return f.yes, nil
}

type fakeRecent struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakeRecent) List(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...), nil
}

func (f *fakeRecent) Add(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append([]string{path}, f.paths...)
	return nil
}

type fakeUndo struct {
	undos, redos, clears int
	err                  error
}

func (f *fakeUndo) Undo() error {
	f.undos++
	return f.err
}

func (f *fakeUndo) Redo() error {
	f.redos++
	return f.err
}

func (f *fakeUndo) Clear() { f.clears++ }

type fakeUI struct {
	mu     sync.Mutex
	errs   []error
	titles []string
}

func (f *fakeUI) ShowError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, err)
}

func (f *fakeUI) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
}

func (f *fakeUI) errors() []error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]error(nil), f.errs...)
}

func (f *fakeUI) lastTitle() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.titles) == 0 {
		return ""
	}
	return f.titles[len(f.titles)-1]
}

// gatedSerializer blocks Deserialize until release is closed.
type gatedSerializer struct {
	project.FileSerializer
	entered chan struct{}
	release chan struct{}
}

func newGatedSerializer() *gatedSerializer {
	return &gatedSerializer{entered: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gatedSerializer) Deserialize(ctx context.Context, path string) (*project.Project, error) {
	g.entered <- struct{}{}
	<-g.release
	return g.FileSerializer.Deserialize(ctx, path)
}

type failingSerializer struct {
	project.FileSerializer
}

var errDiskFull = errors.New("disk full")

func (failingSerializer) Serialize(context.Context, *project.Project, string) error {
	return errDiskFull
}
