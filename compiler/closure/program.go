package closure

import (
	"fmt"
	"io"
)

// Call makes a thunk from Closure with Captures and invokes it with Args
type Call struct {
	Closure  string
	Captures []int64
	Args     []int64
}

type Program struct {
	Closures []*Definition
	Calls    []Call
}

func (p *Program) Lookup(name string) (*Definition, bool) {
	for _, d := range p.Closures {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

func (p *Program) Validate() error {
	seen := map[string]struct{}{}
	for _, d := range p.Closures {
		if err := d.Validate(); err != nil {
			return err
		}
		if _, ok := seen[d.Name]; ok {
			return fmt.Errorf("closure %s defined twice", d.Name)
		}
		seen[d.Name] = struct{}{}
	}

	for i, call := range p.Calls {
		d, ok := p.Lookup(call.Closure)
		if !ok {
			return fmt.Errorf("call %d: no such closure: %s", i, call.Closure)
		}
		if len(call.Captures) != len(d.Captures) {
			return fmt.Errorf("call %d: %s expects %d captured values, got %d", i, d.Name, len(d.Captures), len(call.Captures))
		}
		if len(call.Args) != len(d.Params) {
			return fmt.Errorf("call %d: %s expects %d arguments, got %d", i, d.Name, len(d.Params), len(call.Args))
		}
	}

	return nil
}

// Run executes every call in order and writes the same output as the
// compiled program: the optional trace line, then the result.
func (p *Program) Run(w io.Writer) error {
	if err := p.Validate(); err != nil {
		return err
	}

	for _, call := range p.Calls {
		d, _ := p.Lookup(call.Closure)

		t, err := d.Make(w, call.Captures...)
		if err != nil {
			return err
		}

		res, err := d.Invoke(t, call.Args...)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, res); err != nil {
			return err
		}
	}

	return nil
}
