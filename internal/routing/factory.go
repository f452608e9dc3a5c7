package routing

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/randytsao24/navnet/internal/models"
)

// Strategy names, as used in network definition files.
const (
	StrategyDirect      = "direct"
	StrategyDijkstra    = "dijkstra"
	StrategyCached      = "cached"
	StrategyFirstOption = "firstOption"
	StrategyMinimumFare = "minimumFare"
	StrategyQuickSelect = "quickSelect"
	StrategyCompeting   = "competing"
)

// Strategies lists every strategy name
func Strategies() []string {
	return []string{
		StrategyDirect,
		StrategyDijkstra,
		StrategyCached,
		StrategyFirstOption,
		StrategyMinimumFare,
		StrategyQuickSelect,
		StrategyCompeting,
	}
}

// Factory describes a route finding strategy and builds finders for a graph.
// The set of factories is closed; use the constructors in this package.
type Factory interface {
	// Create builds a finder over g. A nil logger means slog.Default().
	Create(g *models.Graph, logger *slog.Logger) (Finder, error)
	String() string
	factory()
}

type directFactory struct{}

// Direct answers with single-hop routes only
func Direct() Factory { return directFactory{} }

func (directFactory) Create(g *models.Graph, _ *slog.Logger) (Finder, error) {
	return newDirectFinder(g), nil
}
func (directFactory) String() string { return StrategyDirect }
func (directFactory) factory()       {}

type dijkstraFactory struct{}

// Dijkstra finds the cheapest multi-hop route
func Dijkstra() Factory { return dijkstraFactory{} }

func (dijkstraFactory) Create(g *models.Graph, _ *slog.Logger) (Finder, error) {
	return newDijkstraFinder(g), nil
}
func (dijkstraFactory) String() string { return StrategyDijkstra }
func (dijkstraFactory) factory()       {}

type cachedFactory struct {
	delegate Factory
	ttl      time.Duration
	capacity int
}

// CacheOption configures Cached
type CacheOption func(*cachedFactory)

// WithCapacity bounds the cache to n routes with LRU eviction
func WithCapacity(n int) CacheOption {
	return func(c *cachedFactory) { c.capacity = n }
}

// Cached memoizes routes found by delegate for ttl
func Cached(delegate Factory, ttl time.Duration, opts ...CacheOption) Factory {
	c := cachedFactory{delegate: delegate, ttl: ttl}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c cachedFactory) Create(g *models.Graph, logger *slog.Logger) (Finder, error) {
	if c.delegate == nil {
		return nil, fmt.Errorf("%s: %w", StrategyCached, ErrNoChildren)
	}
	if c.ttl < 0 {
		return nil, fmt.Errorf("%s: negative ttl %v", StrategyCached, c.ttl)
	}
	if c.capacity < 0 {
		return nil, fmt.Errorf("%s: negative capacity %d", StrategyCached, c.capacity)
	}
	logger = orDefault(logger)
	delegate, err := c.delegate.Create(g, logger)
	if err != nil {
		return nil, err
	}
	return newCachedFinder(delegate, c.ttl, c.capacity, time.Now, logger), nil
}

func (c cachedFactory) String() string {
	return fmt.Sprintf("%s(%v, %v)", StrategyCached, c.delegate, c.ttl)
}
func (cachedFactory) factory() {}

// combinatorFactory covers the strategies that only differ in how the
// children's answers are combined.
type combinatorFactory struct {
	name     string
	exec     Executor
	children []Factory
}

// FirstOption tries each strategy in order and returns the first route found
func FirstOption(children ...Factory) Factory {
	return combinatorFactory{name: StrategyFirstOption, children: append([]Factory(nil), children...)}
}

// MinimumFare runs every strategy and returns the cheapest route found
func MinimumFare(children ...Factory) Factory {
	return combinatorFactory{name: StrategyMinimumFare, children: append([]Factory(nil), children...)}
}

// QuickSelect runs every strategy concurrently and returns whichever route
// is found first
func QuickSelect(children ...Factory) Factory {
	return combinatorFactory{name: StrategyQuickSelect, children: append([]Factory(nil), children...)}
}

// Competing races the strategies on exec, returning the first route found and
// cancelling the rest. A nil exec runs each strategy on its own goroutine.
func Competing(exec Executor, children ...Factory) Factory {
	if exec == nil {
		exec = GoExecutor{}
	}
	return combinatorFactory{name: StrategyCompeting, exec: exec, children: append([]Factory(nil), children...)}
}

func (c combinatorFactory) Create(g *models.Graph, logger *slog.Logger) (Finder, error) {
	if len(c.children) == 0 {
		return nil, fmt.Errorf("%s: %w", c.name, ErrNoChildren)
	}
	logger = orDefault(logger)

	children := make([]Finder, 0, len(c.children))
	for _, child := range c.children {
		if child == nil {
			return nil, fmt.Errorf("%s: nil child strategy", c.name)
		}
		f, err := child.Create(g, logger)
		if err != nil {
			_ = closeAll(children)
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
		children = append(children, f)
	}

	switch c.name {
	case StrategyFirstOption:
		return &firstOption{children: children, logger: logger}, nil
	case StrategyMinimumFare:
		return &minimumFare{children: children, logger: logger}, nil
	case StrategyQuickSelect:
		return &quickSelect{children: children, logger: logger}, nil
	default:
		return &competing{exec: c.exec, children: children, logger: logger}, nil
	}
}

func (c combinatorFactory) String() string { return describe(c.name, c.children) }
func (combinatorFactory) factory() {}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
