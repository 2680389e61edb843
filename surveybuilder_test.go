package surveybuilder_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	surveybuilder "github.com/goliatone/go-surveybuilder"
	"github.com/goliatone/go-surveybuilder/pkg/config"
)

func TestNewSession_PersistsAcrossSessions(t *testing.T) {
	cfg := config.Default()
	cfg.StoreDir = t.TempDir()
	cfg.AutoSaveDelay = time.Hour

	first, err := surveybuilder.NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := first.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := first.SetTitle("Pets"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if err := first.AddQuestion(); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := first.SetQuestionText(2, "Dogs?"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := surveybuilder.NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := second.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if diff := cmp.Diff(first.Snapshot(), second.Snapshot()); diff != "" {
		t.Fatalf("restored snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenStore_UsesConfiguredKey(t *testing.T) {
	cfg := config.Default()
	cfg.StoreDir = t.TempDir()
	cfg.StorageKey = "team_survey"

	st, err := surveybuilder.OpenStore(cfg, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if st.Key() != "team_survey" {
		t.Fatalf("key = %q", st.Key())
	}
}
