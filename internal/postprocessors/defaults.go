package postprocessors

import (
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reqif-cli/internal/postprocessors/depthclamp"
	"github.com/custodia-labs/reqif-cli/internal/postprocessors/trimtext"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(depthclamp.Name, buildDepthClamp)
	r.Register(trimtext.Name, buildTrimText)
}

// buildDepthClamp creates a depth clamp from generic config.
// Supported config keys:
//   - max_depth (int): Deepest allowed depth (default: unlimited)
func buildDepthClamp(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []depthclamp.Option
	if v, ok := cfg["max_depth"]; ok {
		opts = append(opts, depthclamp.WithMaxDepth(getInt(v)))
	}
	return depthclamp.New(opts...), nil
}

// buildTrimText creates a text trimmer from generic config.
// Supported config keys:
//   - collapse_blank_lines (bool): Collapse runs of blank lines (default: true)
//   - drop_empty (bool): Drop items with neither title nor text (default: false)
func buildTrimText(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []trimtext.Option
	if v, ok := cfg["collapse_blank_lines"].(bool); ok {
		opts = append(opts, trimtext.WithCollapseBlankLines(v))
	}
	if v, ok := cfg["drop_empty"].(bool); ok {
		opts = append(opts, trimtext.WithDropEmpty(v))
	}
	return trimtext.New(opts...), nil
}

// getInt safely extracts an int from a generic config value.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
