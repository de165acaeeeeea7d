package orbit

import (
	"errors"
	"math"
	"slices"
	"testing"
)

// ball is the minimal test node: a radius and nothing else.
type ball struct {
	r float64
}

func (b ball) Radius() float64 { return b.r }

// heavy is a ball with a custom own weight.
type heavy struct {
	r float64
	w float64
}

func (h heavy) Radius() float64 { return h.r }
func (h heavy) Weight() float64 { return h.w }

// tagged clusters with any node sharing at least one tag. Merging unions the
// tags and grows the radius so the merged area covers both members.
type tagged struct {
	r    float64
	tags []string
	min  int
	max  int
}

func (n tagged) Radius() float64 { return n.r }

func (n tagged) ClusterPolicy() Policy { return Policy{MinSize: n.min, MaxSize: n.max} }

func (n tagged) Clusterable(other Node) Verdict {
	o, ok := other.(tagged)
	if !ok {
		return Deny
	}
	for _, t := range n.tags {
		if slices.Contains(o.tags, t) {
			return Siblings
		}
	}
	return Deny
}

func (n tagged) ClusterWith(other Node) Node {
	merged := tagged{
		r:    math.Sqrt(n.r*n.r + other.Radius()*other.Radius()),
		tags: slices.Clone(n.tags),
		min:  n.min,
		max:  n.max,
	}
	if o, ok := other.(tagged); ok {
		for _, t := range o.tags {
			if !slices.Contains(merged.tags, t) {
				merged.tags = append(merged.tags, t)
			}
		}
	}
	return merged
}

func TestSystemRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		id      ID
		node    Node
		wantErr error
	}{
		{"EmptyID", NewID(""), ball{r: 1}, ErrInvalidID},
		{"NilNode", NewID("a"), nil, ErrNilNode},
		{"ZeroRadius", NewID("a"), ball{r: 0}, ErrInvalidRadius},
		{"NegativeRadius", NewID("a"), ball{r: -2}, ErrInvalidRadius},
		{"NaNRadius", NewID("a"), ball{r: math.NaN()}, ErrInvalidRadius},
		{"InfRadius", NewID("a"), ball{r: math.Inf(1)}, ErrInvalidRadius},
		{"NegativeMinSize", NewID("a"), tagged{r: 1, min: -1}, ErrInvalidPolicy},
		{"NegativeMaxSize", NewID("a"), tagged{r: 1, max: -3}, ErrInvalidPolicy},
		{"MinAboveMax", NewID("a"), tagged{r: 1, min: 4, max: 2}, ErrInvalidPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewSystem()
			err := sys.Register(tt.id, tt.node)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
			}
			var cfgErr *InvalidConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Register() error type = %T, want *InvalidConfigurationError", err)
			}
			if sys.Len() != 0 {
				t.Errorf("Len() = %d after rejected registration, want 0", sys.Len())
			}
		})
	}
}

func TestSystemRegister_Duplicate(t *testing.T) {
	sys := NewSystem()
	if err := sys.Register(NewID("a"), ball{r: 1}); err != nil {
		t.Fatalf("Register(a): %v", err)
	}
	err := sys.Register(NewID("a"), ball{r: 2})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Register(a) again: error = %v, want %v", err, ErrDuplicateID)
	}
	if sys.Len() != 1 {
		t.Errorf("Len() = %d, want 1", sys.Len())
	}
}

func TestSystemRegister_UnboundedPolicy(t *testing.T) {
	sys := NewSystem()
	// MaxSize 0 means unlimited, so MinSize > 0 with MaxSize 0 is fine.
	if err := sys.Register(NewID("a"), tagged{r: 1, min: 3}); err != nil {
		t.Fatalf("Register() error = %v, want nil", err)
	}
}

func TestSystemRegistrations_Copies(t *testing.T) {
	sys := NewSystem()
	sys.Register(NewID("a"), ball{r: 1}, NewID("b"))
	sys.Register(NewID("b"), ball{r: 1})

	regs := sys.Registrations()
	if len(regs) != 2 {
		t.Fatalf("len(Registrations()) = %d, want 2", len(regs))
	}
	regs[0].ID = NewID("mutated")
	if got := sys.Registrations()[0].ID.String(); got != "a" {
		t.Errorf("registration ID after caller mutation = %q, want %q", got, "a")
	}
}

func TestDistribute_Empty(t *testing.T) {
	res, err := NewSystem().Distribute()
	if err != nil {
		t.Fatalf("Distribute() error = %v, want nil", err)
	}
	if len(res.Placements) != 0 {
		t.Errorf("len(Placements) = %d, want 0", len(res.Placements))
	}
	if res.Components != 0 {
		t.Errorf("Components = %d, want 0", res.Components)
	}
}
