package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Marker delimits the export payload line on subprocess stdout.
const Marker = "__MANIFEST_EXPORTS__"

// Strategy is one way of loading a module's exports. Implementations return
// the requested exports keyed by name, or an error describing why this
// capability is unavailable.
type Strategy interface {
	// Name identifies the strategy in aggregated error messages.
	Name() string
	// Load imports the module and returns the requested exports.
	Load(modulePath string, exportNames []string) (map[string]any, error)
}

// Loader tries its strategies in order; the first success wins.
type Loader struct {
	strategies []Strategy
}

// New returns the production loader: an isolated bun import, then a node
// ESM import with injected runtime-global shims, then a synchronous
// CommonJS require as last resort.
func New() *Loader {
	return NewWithStrategies(
		&bunStrategy{},
		&nodeImportStrategy{},
		&nodeRequireStrategy{},
	)
}

// NewWithStrategies builds a loader over an explicit strategy list. Tests
// use it to substitute fakes.
func NewWithStrategies(strategies ...Strategy) *Loader {
	return &Loader{strategies: strategies}
}

// Load resolves the requested exports of the module. All strategy failures
// are aggregated into a single error so the caller sees every attempt.
func (l *Loader) Load(modulePath string, exportNames []string) (map[string]any, error) {
	var failures []error

	for _, s := range l.strategies {
		values, err := s.Load(modulePath, exportNames)
		if err == nil {
			return values, nil
		}

		failures = append(failures, fmt.Errorf("%s: %w", s.Name(), err))
	}

	return nil, fmt.Errorf("all module load strategies failed for %s: %w",
		modulePath, errors.Join(failures...))
}

// ParseExportsOutput extracts the marker-delimited JSON payload from
// subprocess stdout. Lines are scanned in reverse so the last payload wins.
func ParseExportsOutput(stdout string) (map[string]any, error) {
	lines := strings.Split(stdout, "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		idx := strings.Index(lines[i], Marker)
		if idx < 0 {
			continue
		}

		payload := strings.TrimSpace(lines[i][idx+len(Marker):])

		var values map[string]any
		if err := json.Unmarshal([]byte(payload), &values); err != nil {
			return nil, fmt.Errorf("invalid export payload after marker: %w", err)
		}

		return values, nil
	}

	return nil, errors.New("no marker line found in module output")
}
