package tools

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/velahq/vela/internal/core"
	"github.com/velahq/vela/pkg/log"
)

// Handler is one registered capability: parameters in, result or error
// out. Handlers may fail or panic; neither escapes the dispatcher.
type Handler func(ctx context.Context, params map[string]any) (any, error)

// User-facing failure openers. The raw error is always appended so the
// result stays machine-inspectable.
var apologyTemplates = []string{
	"Oops! I hit a snag with %s. I'm still learning, allow me a moment to improve.",
	"Well, this is embarrassing... %s didn't quite work as expected.",
	"Even AI assistants have their moments... %s seems to be playing hard to get.",
	"I promise I'm better at other things! %s needs another attempt.",
}

// Dispatcher routes named capability calls and normalizes every outcome
// into core.ToolResult.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewDispatcher builds a dispatcher. rng may be nil outside of tests.
func NewDispatcher(rng *rand.Rand) *Dispatcher {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Dispatcher{
		handlers: make(map[string]Handler),
		rng:      rng,
	}
}

// Register adds or replaces a capability under name.
func (d *Dispatcher) Register(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = h
}

// Names returns the registered capability names, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the named capability. It never returns an error: unknown
// names, handler failures and handler panics all come back as a
// structured failure result.
func (d *Dispatcher) Execute(ctx context.Context, name string, params map[string]any) core.ToolResult {
	d.mu.RLock()
	h, ok := d.handlers[name]
	d.mu.RUnlock()

	logger := log.FromCtx(ctx)

	if !ok {
		logger.Warn().Str("tool", name).Msg("unknown tool requested")
		return core.ToolResult{
			Success: false,
			Error:   fmt.Sprintf("Unknown tool: %s", name),
		}
	}

	logger.Info().Str("tool", name).Msg("executing tool")

	result, err := d.invoke(ctx, h, params)
	if err != nil {
		logger.Error().Err(err).Str("tool", name).Msg("tool execution failed")
		return core.ToolResult{
			Success: false,
			Error:   err.Error(),
			Apology: d.apology(name, err.Error()),
		}
	}

	logger.Info().Str("tool", name).Msg("tool executed successfully")
	return core.ToolResult{Success: true, Result: result}
}

func (d *Dispatcher) invoke(ctx context.Context, h Handler, params map[string]any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return h(ctx, params)
}

func (d *Dispatcher) apology(name, errMsg string) string {
	d.rngMu.Lock()
	tmpl := apologyTemplates[d.rng.Intn(len(apologyTemplates))]
	d.rngMu.Unlock()

	return fmt.Sprintf(tmpl, name) + " Technical details: " + errMsg
}
