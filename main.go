package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/trackzero/bedrock/internal/gallery"
	"github.com/trackzero/bedrock/internal/handler"
	"github.com/trackzero/bedrock/internal/inject"
	"github.com/trackzero/bedrock/internal/log"
	"github.com/trackzero/bedrock/internal/model"
)

// Model inference can take tens of seconds; cap it instead of blocking forever.
const invokeTimeout = 2 * time.Minute

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	feed := flag.Bool("feed", false, "regenerate the gallery feed after the run")
	flag.Parse()

	level := lo.Ternary(*verbose, slog.LevelDebug, slog.LevelInfo)
	ctx := log.NewContext(context.Background(), log.New(os.Stderr, level))

	if err := run(ctx, *feed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, regenFeed bool) error {
	injector := inject.Setup(ctx)
	defer func() {
		_ = injector.Shutdown()
	}()

	divider := strings.Repeat("-", 88)
	fmt.Println(divider)
	fmt.Println("Welcome to the Amazon Bedrock Runtime demo.")
	fmt.Println(divider)

	rl, err := readline.New("Enter your image prompt: ")
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()
	prompt, err := rl.Readline()
	if err != nil { // io.EOF
		return err
	}
	prompt = strings.TrimSpace(prompt)

	h := do.MustInvoke[*handler.Handler](injector)
	style := do.MustInvokeNamed[string](injector, "style_preset")

	inputs := []handler.Input{
		{Provider: model.StableDiffusion, Prompt: prompt, StylePreset: style},
		{Provider: model.TitanImage, Prompt: prompt},
	}

	// One model failing must not stop the next from being attempted.
	var failed bool
	for _, input := range inputs {
		if err := invokeOne(ctx, h, input); err != nil {
			fmt.Println(err)
			failed = true
		}
	}

	if regenFeed {
		if err := writeFeed(ctx, injector); err != nil {
			return err
		}
	}

	if failed {
		return errors.New("one or more model invocations failed")
	}
	return nil
}

func invokeOne(ctx context.Context, h *handler.Handler, input handler.Input) error {
	ctx, cancel := context.WithTimeout(ctx, invokeTimeout)
	defer cancel()

	fmt.Println(strings.Repeat("-", 88))
	fmt.Println("Invoking: " + input.Provider.ModelID())
	fmt.Println("Prompt: " + input.Prompt)

	out, err := h.Handle(ctx, input)
	if err != nil {
		return err
	}
	fmt.Println("The generated image has been saved to " + out.Path)
	return nil
}

func writeFeed(ctx context.Context, injector *do.Injector) error {
	g := do.MustInvoke[*gallery.Generator](injector)
	rss, err := g.Generate(ctx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(g.Root, 0755); err != nil {
		return err
	}
	path := filepath.Join(g.Root, "feed.xml")
	if err := os.WriteFile(path, rss, 0644); err != nil {
		return err
	}
	fmt.Println("The gallery feed has been saved to " + path)
	return nil
}
