package iv

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

type step struct {
	key   string
	index int
	isKey bool
}

// Selector selects a nested value with a dotted path, i.e. Items[1].Name
type Selector struct {
	path  string
	steps []step
}

// Path returns selector path
func (s *Selector) Path() string {
	return s.path
}

// Value returns selected value
func (s *Selector) Value(root Value) (Value, bool) {
	current := root
	for _, st := range s.steps {
		next, ok := st.lookup(current)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Has returns true if path exists
func (s *Selector) Has(root Value) bool {
	_, ok := s.Value(root)
	return ok
}

// Set replaces value at path, intermediate containers have to exist, the last map key is created when missing
func (s *Selector) Set(root Value, value Value) error {
	if len(s.steps) == 0 {
		return errors.New("cannot set root with selector")
	}
	holder := root
	for _, st := range s.steps[:len(s.steps)-1] {
		next, ok := st.lookup(holder)
		if !ok {
			return errors.Newf("path %v was not found", s.path)
		}
		holder = next
	}
	last := s.steps[len(s.steps)-1]
	if last.isKey {
		m, ok := AsMap(holder)
		if !ok {
			return errors.Newf("path %v: expected Map but had %v", s.path, KindOf(holder))
		}
		m.Set(last.key, value)
		return nil
	}
	seq, ok := AsSequence(holder)
	if !ok {
		return errors.Newf("path %v: expected Sequence but had %v", s.path, KindOf(holder))
	}
	if last.index < 0 || last.index >= len(seq) {
		return errors.Newf("path %v: index %d out of range [0,%d)", s.path, last.index, len(seq))
	}
	seq[last.index] = value
	return nil
}

func (st step) lookup(v Value) (Value, bool) {
	if st.isKey {
		m, ok := AsMap(v)
		if !ok {
			return nil, false
		}
		return m.Get(st.key)
	}
	seq, ok := AsSequence(v)
	if !ok || st.index < 0 || st.index >= len(seq) {
		return nil, false
	}
	return seq[st.index], true
}

// NewSelector parses path: keys are separated by dots, indexes use brackets
func NewSelector(path string) (*Selector, error) {
	ret := &Selector{path: path}
	for _, fragment := range strings.Split(path, ".") {
		if fragment == "" {
			if path == "" {
				break
			}
			return nil, errors.Newf("invalid selector %q: empty key", path)
		}
		key, rest, _ := strings.Cut(fragment, "[")
		if key != "" {
			ret.steps = append(ret.steps, step{key: key, isKey: true})
		}
		for rest != "" {
			end := strings.Index(rest, "]")
			if end == -1 {
				return nil, errors.Newf("invalid selector %q: missing ]", path)
			}
			index, err := strconv.Atoi(rest[:end])
			if err != nil {
				return nil, errors.Wrapf(err, "invalid selector %q index", path)
			}
			ret.steps = append(ret.steps, step{index: index})
			rest = rest[end+1:]
			if rest != "" {
				if rest[0] != '[' {
					return nil, errors.Newf("invalid selector %q: unexpected %q", path, rest)
				}
				rest = rest[1:]
			}
		}
	}
	return ret, nil
}
