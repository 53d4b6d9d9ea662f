package stateregistry

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
)

var (
	ErrDuplicateVariable = errors.New("stateregistry: variable already registered")
	ErrUnknownVariable   = errors.New("stateregistry: unknown variable")
	ErrInvalidValue      = errors.New("stateregistry: value must be finite")
	ErrInvalidAddress    = errors.New("stateregistry: invalid address")
)

// Kind tells the engine what physical quantity a variable carries.
type Kind int

const (
	KindInfiltration   Kind = iota // volumetric flow, m³/s
	KindHeaterPower                // W
	KindLuminairePower             // W
)

func (k Kind) String() string {
	switch k {
	case KindInfiltration:
		return "infiltration"
	case KindHeaterPower:
		return "heater_power"
	case KindLuminairePower:
		return "luminaire_power"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Unit returns the SI unit of the quantity.
func (k Kind) Unit() string {
	if k == KindInfiltration {
		return "m3/s"
	}
	return "W"
}

// Variable is the handle returned on registration.
type Variable struct {
	Index   int
	Address Address
	Kind    Kind
}

// Name is the canonical string form of the variable's address.
func (v Variable) Name() string {
	return v.Address.String()
}

// Registry implements a mutex-guarded store of state variables. Indexes are
// assigned densely in registration order and never reused.
type Registry struct {
	mu     sync.RWMutex
	vars   []Variable
	values []float64
	byName map[string]int
	log    *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sends the registry's debug logs to l instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{byName: make(map[string]int)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) logger() *slog.Logger {
	if r.log == nil {
		return slog.Default()
	}
	return r.log
}

// Register adds a new variable with an initial value. The address must
// survive a round trip through Parse so the variable can be looked up by
// name later.
func (r *Registry) Register(addr Address, kind Kind, initial float64) (Variable, error) {
	name := addr.String()
	if _, err := Parse(name); err != nil {
		return Variable{}, err
	}
	if math.IsNaN(initial) || math.IsInf(initial, 0) {
		return Variable{}, fmt.Errorf("%w: %s = %g", ErrInvalidValue, name, initial)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return Variable{}, fmt.Errorf("%w: %s", ErrDuplicateVariable, name)
	}

	v := Variable{Index: len(r.vars), Address: addr, Kind: kind}
	r.vars = append(r.vars, v)
	r.values = append(r.values, initial)
	r.byName[name] = v.Index

	r.logger().Debug("Registering state variable.", "name", name, "index", v.Index, "kind", kind.String(), "initial", initial)
	return v, nil
}

// Lookup finds a variable by name. The name is parsed first, so spellings
// such as `zone.heater[01]` find the canonical `zone.heater[1]` and malformed
// names are never found.
func (r *Registry) Lookup(name string) (Variable, bool) {
	addr, err := Parse(name)
	if err != nil {
		return Variable{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byName[addr.String()]
	if !ok {
		return Variable{}, false
	}
	return r.vars[idx], true
}

// Value returns the current value of the variable at index.
func (r *Registry) Value(index int) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.values) {
		return 0, fmt.Errorf("%w: index %d", ErrUnknownVariable, index)
	}
	return r.values[index], nil
}

// SetValue overwrites the value of the variable at index. This is how a
// simulation engine drives controllable quantities during a run.
func (r *Registry) SetValue(index int, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidValue, value)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.values) {
		return fmt.Errorf("%w: index %d", ErrUnknownVariable, index)
	}
	r.values[index] = value
	return nil
}

// Len returns the number of registered variables.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vars)
}

// Variables returns all variables in index order.
func (r *Registry) Variables() []Variable {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Variable, len(r.vars))
	copy(out, r.vars)
	return out
}

// Values returns a copy of all current values in index order.
func (r *Registry) Values() []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}
