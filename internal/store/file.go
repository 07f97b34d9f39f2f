package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/do"
	"github.com/trackzero/bedrock/internal/log"
)

// DirWriter writes images under <Root>/<family>/image_<n>.png, picking the
// first unused index. Sequencing is serialized per directory so two pipelines
// targeting the same family cannot race between the existence check and the
// write.
type DirWriter struct {
	Root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDirWriter(i *do.Injector) (Writer, error) {
	return &DirWriter{Root: do.MustInvokeNamed[string](i, "output_dir")}, nil
}

func (w *DirWriter) Write(ctx context.Context, params Params) (string, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("store").With("family", params.Family)

	img, err := decode(params.Base64)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(w.Root, params.Family)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	lock := w.dirLock(dir)
	lock.Lock()
	defer lock.Unlock()

	path := nextPath(dir)
	log.Info("writing image", "path", path, "bytes", len(img))
	if err := os.WriteFile(path, img, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (w *DirWriter) dirLock(dir string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.locks == nil {
		w.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := w.locks[dir]
	if !ok {
		lock = &sync.Mutex{}
		w.locks[dir] = lock
	}
	return lock
}

func nextPath(dir string) string {
	for i := 1; ; i++ {
		path := filepath.Join(dir, fmt.Sprintf("image_%d.png", i))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
	}
}
