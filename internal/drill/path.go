package drill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/SreeTarak2/datavisuals/internal/dataset"
)

// Navigation guard errors. None of these are fatal: the state machine is
// unchanged when any of them is returned.
var (
	ErrNavigationInFlight = errors.New("drill: navigation already in flight")
	ErrNoHierarchy        = errors.New("drill: no hierarchy selected")
	ErrCannotDrillDown    = errors.New("drill: already at the deepest level")
	ErrCannotDrillUp      = errors.New("drill: already at the top level")
	ErrStaleResponse      = errors.New("drill: response discarded, state changed while request was in flight")
)

// LevelRequest is the data request issued by every navigation transition.
// Path equals the client's post-transition path and is carried for
// server-side auditing.
type LevelRequest struct {
	DatasetID      string            `json:"dataset_id"`
	HierarchyField string            `json:"hierarchy_field"`
	Level          int               `json:"level"`
	Filters        map[string]string `json:"filters"`
	Path           []string          `json:"path"`
}

// LevelResult is the response to a LevelRequest.
type LevelResult struct {
	Data         []dataset.Row `json:"data"`
	CanDrillDown bool          `json:"can_drill_down"`
}

// LevelFetcher performs the asynchronous data request behind a navigation
// transition. Implementations may hit a server or aggregate locally.
type LevelFetcher interface {
	FetchLevel(ctx context.Context, req LevelRequest) (LevelResult, error)
}

// Path is the drill-down navigation state machine for one chart. Level,
// path, and data change only together, and only on a successful fetch; a
// failed fetch clears the loading flag and nothing else.
//
// Invariants after every successful transition:
//   - len(CurrentPath()) == Level()-1 while a hierarchy is selected
//   - CanDrillUp() iff the path is non-empty
//   - CanDrillDown() iff Level() < hierarchy depth
//
// Transitions are serialized: starting one while another is in flight
// returns ErrNavigationInFlight, so responses apply in request order.
type Path struct {
	fetcher LevelFetcher
	logger  *slog.Logger

	mu           sync.Mutex
	datasetID    string
	hierarchy    *Hierarchy
	level        int
	path         []string
	data         []dataset.Row
	loading      bool
	canDrillDown bool
	seq          uint64
}

// NewPath creates an unselected navigation state machine. A nil logger
// discards log output.
func NewPath(datasetID string, fetcher LevelFetcher, logger *slog.Logger) *Path {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Path{
		datasetID: datasetID,
		fetcher:   fetcher,
		logger:    logger,
	}
}

// SelectHierarchy activates h and loads unfiltered level-1 data. Any prior
// position is discarded.
func (p *Path) SelectHierarchy(ctx context.Context, h *Hierarchy) error {
	if h == nil {
		return ErrNoHierarchy
	}
	if err := h.Validate(); err != nil {
		return err
	}
	return p.navigate(ctx, h, 1, nil)
}

// DrillDown descends one level into the subset selected by value.
func (p *Path) DrillDown(ctx context.Context, value string) error {
	p.mu.Lock()
	h := p.hierarchy
	if h == nil {
		p.mu.Unlock()
		return ErrNoHierarchy
	}
	if !p.canDrillDownLocked() {
		p.mu.Unlock()
		return ErrCannotDrillDown
	}
	newPath := append(append([]string{}, p.path...), value)
	target := p.level + 1
	p.mu.Unlock()

	return p.navigate(ctx, h, target, newPath)
}

// DrillUp ascends one level, dropping the most recent selection.
func (p *Path) DrillUp(ctx context.Context) error {
	p.mu.Lock()
	h := p.hierarchy
	if h == nil {
		p.mu.Unlock()
		return ErrNoHierarchy
	}
	if len(p.path) == 0 {
		p.mu.Unlock()
		return ErrCannotDrillUp
	}
	newPath := append([]string{}, p.path[:len(p.path)-1]...)
	target := p.level - 1
	p.mu.Unlock()

	return p.navigate(ctx, h, target, newPath)
}

// Reset returns to level 1 with an empty path, re-requesting unfiltered data.
func (p *Path) Reset(ctx context.Context) error {
	p.mu.Lock()
	h := p.hierarchy
	p.mu.Unlock()
	if h == nil {
		return ErrNoHierarchy
	}
	return p.navigate(ctx, h, 1, nil)
}

// navigate issues the data request for (h, level, path) and applies the
// result. The loading flag is cleared on every exit path; on failure no
// other field changes. A result is discarded if the machine moved on while
// the request was in flight (seq mismatch).
func (p *Path) navigate(ctx context.Context, h *Hierarchy, level int, newPath []string) error {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return ErrNavigationInFlight
	}
	p.loading = true
	snapshot := p.seq
	p.mu.Unlock()

	req := LevelRequest{
		DatasetID:      p.datasetID,
		HierarchyField: h.Field,
		Level:          level,
		Filters:        Filters(h, newPath),
		Path:           newPath,
	}

	p.logger.Debug("drill navigation",
		"hierarchy", h.Field, "level", level, "path", newPath)

	result, err := p.fetcher.FetchLevel(ctx, req)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		p.logger.Warn("drill navigation failed",
			"hierarchy", h.Field, "level", level, "error", err)
		return fmt.Errorf("failed to fetch level %d: %w", level, err)
	}

	if p.seq != snapshot {
		p.logger.Debug("stale drill response discarded",
			"hierarchy", h.Field, "level", level)
		return ErrStaleResponse
	}

	p.seq++
	p.hierarchy = h
	p.level = level
	p.path = newPath
	p.data = result.Data
	p.canDrillDown = result.CanDrillDown && level < h.Depth()
	return nil
}

// Invalidate discards the current position without issuing a request. It is
// called when the owning view is torn down; any response still in flight is
// dropped on arrival instead of being applied to the cleared state.
func (p *Path) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.hierarchy = nil
	p.level = 0
	p.path = nil
	p.data = nil
	p.canDrillDown = false
}

func (p *Path) canDrillDownLocked() bool {
	return p.hierarchy != nil && p.level < p.hierarchy.Depth() && p.canDrillDown
}

// Hierarchy returns the active hierarchy, or nil when unselected.
func (p *Path) Hierarchy() *Hierarchy {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hierarchy
}

// Level returns the current level, 0 when no hierarchy is selected.
func (p *Path) Level() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// CurrentPath returns a copy of the selected values defining the position.
func (p *Path) CurrentPath() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.path...)
}

// Data returns the rows loaded by the last successful transition.
func (p *Path) Data() []dataset.Row {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data
}

// IsLoading reports whether a navigation request is in flight.
func (p *Path) IsLoading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// CanDrillDown reports whether a deeper level exists.
func (p *Path) CanDrillDown() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canDrillDownLocked()
}

// CanDrillUp reports whether the path is non-empty.
func (p *Path) CanDrillUp() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.path) > 0
}
