package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// registryMockProcessor is a simple mock for testing registry functionality.
type registryMockProcessor struct {
	name string
}

func (m *registryMockProcessor) Name() string { return m.name }
func (m *registryMockProcessor) Process(_ context.Context, items []domain.OutlineItem) ([]domain.OutlineItem, error) {
	return items, nil
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.Names()) != 0 {
		t.Errorf("expected empty registry, got %v", r.Names())
	}
}

func TestRegistry_Build(t *testing.T) {
	r := NewRegistry()
	r.Register("test", func(cfg map[string]any) (driven.PostProcessor, error) {
		name := "default"
		if n, ok := cfg["name"].(string); ok {
			name = n
		}
		return &registryMockProcessor{name: name}, nil
	})

	if !r.Has("test") {
		t.Fatal("expected 'test' to be registered")
	}

	proc, err := r.Build("test", map[string]any{"name": "custom"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if proc.Name() != "custom" {
		t.Errorf("expected name 'custom', got %q", proc.Name())
	}
}

func TestRegistry_Build_UnknownProcessor(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build("unknown", nil)
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestRegistry_BuilderError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("bad config")
	r.Register("broken", func(map[string]any) (driven.PostProcessor, error) { return nil, boom })

	_, err := r.BuildPipeline([]string{"broken"}, nil)
	if !errors.Is(err, boom) {
		t.Errorf("expected builder error, got %v", err)
	}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	names := r.Names()
	if len(names) != 2 || names[0] != "depth-clamp" || names[1] != "trim-text" {
		t.Errorf("unexpected default processors: %v", names)
	}
}

func TestRegistry_BuildPipeline(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	p, err := r.BuildPipeline(
		[]string{"trim-text", "depth-clamp"},
		map[string]map[string]any{"depth-clamp": {"max_depth": int64(0)}},
	)
	if err != nil {
		t.Fatalf("BuildPipeline failed: %v", err)
	}
	if got := p.Names(); len(got) != 2 || got[0] != "trim-text" || got[1] != "depth-clamp" {
		t.Fatalf("unexpected order: %v", got)
	}

	items, err := p.Process(context.Background(), []domain.OutlineItem{
		{ID: "A", Title: " A ", Depth: 0},
		{ID: "B", Title: "B", Depth: 1},
	})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if items[0].Title != "A" {
		t.Errorf("expected trimmed title, got %q", items[0].Title)
	}
	if items[1].Depth != 0 {
		t.Errorf("expected max_depth 0 to flatten, got depth %d", items[1].Depth)
	}

	if _, err := r.BuildPipeline([]string{"chunker"}, nil); !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected unknown processor error, got %v", err)
	}
}

func TestRegistry_Pipeline(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	var builder driven.PipelineBuilder = r
	p, err := builder.Pipeline([]string{"depth-clamp"}, nil)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	items, err := p.Process(context.Background(), []domain.OutlineItem{
		{ID: "A", Title: "A", Depth: 0},
		{ID: "B", Title: "B", Depth: 3},
	})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if items[1].Depth != 1 {
		t.Errorf("expected depth clamped to 1, got %d", items[1].Depth)
	}

	p, err = builder.Pipeline([]string{"nope"}, nil)
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
	if p != nil {
		t.Errorf("expected nil pipeline on error, got %T", p)
	}
}
