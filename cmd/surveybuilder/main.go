package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	surveybuilder "github.com/goliatone/go-surveybuilder"
	"github.com/goliatone/go-surveybuilder/pkg/config"
	"github.com/goliatone/go-surveybuilder/pkg/preview"
	"github.com/goliatone/go-surveybuilder/pkg/renderers/tui"
	"github.com/goliatone/go-surveybuilder/pkg/session"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	storeDir := flag.String("store-dir", "", "directory holding saved drafts")
	key := flag.String("key", "", "storage key of the draft")
	delay := flag.Duration("delay", 0, "autosave quiet period")
	previewPath := flag.String("preview", "", "write the saved draft as HTML to this file and exit")
	verbose := flag.Bool("verbose", false, "log autosave and storage activity")
	reset := flag.Bool("reset", false, "delete the saved draft and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "store-dir":
			cfg.StoreDir = *storeDir
		case "key":
			cfg.StorageKey = *key
		case "delay":
			cfg.AutoSaveDelay = *delay
		case "preview":
			cfg.PreviewPath = *previewPath
		case "verbose":
			cfg.Verbose = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Verbose {
		logger = log.New(os.Stderr, "surveybuilder: ", log.LstdFlags)
	}

	if *reset {
		st, err := surveybuilder.OpenStore(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}
		if err := st.Clear(); err != nil {
			log.Fatalf("Failed to clear draft: %v", err)
		}
		fmt.Printf("Draft %q cleared\n", cfg.StorageKey)
		return
	}

	renderer, err := preview.New()
	if err != nil {
		log.Fatalf("Failed to build preview renderer: %v", err)
	}

	if *previewPath != "" {
		sess, err := surveybuilder.NewSession(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to open session: %v", err)
		}
		if err := sess.Start(); err != nil {
			log.Fatalf("Failed to restore draft: %v", err)
		}
		page, err := renderer.Render(sess.Snapshot())
		if err != nil {
			log.Fatalf("Failed to render preview: %v", err)
		}
		if err := os.WriteFile(*previewPath, page, 0o644); err != nil {
			log.Fatalf("Failed to write preview: %v", err)
		}
		fmt.Printf("Preview written to %s\n", *previewPath)
		return
	}

	editor := tui.New(
		tui.WithPreview(renderer, cfg.PreviewPath),
		tui.WithLogger(logger),
	)

	sess, err := surveybuilder.NewSession(cfg, logger,
		session.WithHost(editor.Host()),
		session.WithConfirmer(editor),
		session.WithNotifier(editor),
	)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := editor.Run(ctx, sess); err != nil && ctx.Err() == nil {
		log.Fatalf("Editor failed: %v", err)
	}
	logger.Printf("session ended after %s", time.Since(start).Round(time.Second))
}
