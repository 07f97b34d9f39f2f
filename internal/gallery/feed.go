package gallery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/trackzero/bedrock/internal/log"
	"golang.org/x/sync/errgroup"
)

// Generator renders an RSS feed of every image under the output tree, newest
// entries last so feed readers keep a stable order.
type Generator struct {
	Root string
}

func NewGenerator(i *do.Injector) (*Generator, error) {
	return &Generator{Root: do.MustInvokeNamed[string](i, "output_dir")}, nil
}

func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("gallery").With("root", g.Root)
	log.Info("generating rss feed")

	feed := &feeds.Feed{
		Title:       "Bedrock Image Demo",
		Description: "Images generated via Amazon Bedrock",
		Link:        &feeds.Link{Href: "https://github.com/trackzero/bedrock"},
		Updated:     time.Now(),
	}

	paths, err := g.imagePaths()
	if err != nil {
		return nil, err
	}

	items := make(chan *feeds.Item)
	done := make(chan struct{})
	go func() {
		for i := range items {
			feed.Add(i)
		}
		close(done)
	}()

	group := new(errgroup.Group)
	for _, path := range paths {
		path := path
		group.Go(func() error {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(g.Root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			items <- &feeds.Item{
				Title:   rel,
				Link:    &feeds.Link{Href: rel},
				Updated: info.ModTime(),
			}
			return nil
		})
	}
	waitErr := group.Wait()
	close(items)
	<-done
	if waitErr != nil {
		return nil, waitErr
	}

	feed.Sort(func(a, b *feeds.Item) bool {
		return a.Updated.Before(b.Updated)
	})
	rss, err := feed.ToRss()
	return []byte(rss), err
}

func (g *Generator) imagePaths() ([]string, error) {
	families, err := os.ReadDir(g.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, family := range families {
		if !family.IsDir() {
			continue
		}
		dir := filepath.Join(g.Root, family.Name())
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		entries = lo.Filter(entries, func(e os.DirEntry, _ int) bool {
			return !e.IsDir() && strings.HasSuffix(e.Name(), ".png")
		})
		for _, e := range entries {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
