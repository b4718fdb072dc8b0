package tables

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tsawler/pdf2xlsx/model"
)

// Detector names
const (
	StrategyLines = "lines"
	StrategyText  = "text"
	StrategyAuto  = "auto"
)

// Detector is the interface for table detection algorithms
type Detector interface {
	// Detect finds tables in a page
	Detect(page *model.Page) ([]*model.Table, error)

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Config holds detector configuration
type Config struct {
	// Minimum rows for a text-aligned table. Ruled grids are accepted at any
	// size, since their borders already prove the structure.
	MinRows int

	// Minimum columns for a text-aligned table
	MinCols int

	// Minimum confidence threshold (0-1) for text-aligned tables
	MinConfidence float64

	// Maximum deviation, in points, for a segment to count as horizontal or
	// vertical
	SnapTolerance float64

	// Tolerance for row/column alignment (points)
	AlignmentTolerance float64

	// Minimum ruling line length to consider (points)
	MinLineLength float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MinRows:            2,
		MinCols:            2,
		MinConfidence:      0.5,
		SnapTolerance:      3.0,
		AlignmentTolerance: 3.0,
		MinLineLength:      10.0,
	}
}

// Validate reports configuration values no detector can work with
func (c Config) Validate() error {
	if c.MinRows < 1 {
		return fmt.Errorf("min rows must be at least 1, got %d", c.MinRows)
	}
	if c.MinCols < 1 {
		return fmt.Errorf("min cols must be at least 1, got %d", c.MinCols)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be within [0, 1], got %v", c.MinConfidence)
	}
	if c.SnapTolerance < 0 || c.AlignmentTolerance < 0 || c.MinLineLength < 0 {
		return fmt.Errorf("tolerances must not be negative")
	}
	return nil
}

// Factory builds a fresh detector instance
type Factory func() Detector

// DetectorRegistry holds registered detector factories. Detectors carry
// configuration, so every lookup returns a new instance.
type DetectorRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		factories: make(map[string]Factory),
	}
}

// Register registers a detector factory under the name of the detector it
// builds
func (r *DetectorRegistry) Register(factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[factory().Name()] = factory
}

// Get builds the detector registered under name, or returns nil
func (r *DetectorRegistry) Get(name string) Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	if !ok {
		return nil
	}
	return factory()
}

// List returns all registered detector names, sorted
func (r *DetectorRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector factory globally
func RegisterDetector(factory Factory) {
	globalRegistry.Register(factory)
}

// GetDetector builds a detector by name
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

// New builds the named detector and applies config to it.
func New(name string, config Config) (Detector, error) {
	d := GetDetector(name)
	if d == nil {
		return nil, fmt.Errorf("unknown table detector %q (available: %v)", name, ListDetectors())
	}
	if err := d.Configure(config); err != nil {
		return nil, fmt.Errorf("configure %s detector: %w", name, err)
	}
	return d, nil
}

func init() {
	RegisterDetector(func() Detector { return NewLinesDetector() })
	RegisterDetector(func() Detector { return NewTextDetector() })
	RegisterDetector(func() Detector { return NewAutoDetector() })
}
