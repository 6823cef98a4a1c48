package arbitrary

import (
	"fmt"
	"math"
	"unicode"
)

// Parity restricts an integer domain to even or odd members.
type Parity uint8

// Parity values.
const (
	AnyParity Parity = iota
	EvenParity
	OddParity
)

func (p Parity) String() string {
	switch p {
	case EvenParity:
		return "even"
	case OddParity:
		return "odd"
	default:
		return "any"
	}
}

// IntDomain is the domain descriptor of an integer generator: the inclusive
// range [Min, Max], optionally restricted to one parity.
type IntDomain struct {
	Min    int64
	Max    int64
	Parity Parity
}

// Validate reports whether the domain has at least one member.
func (d IntDomain) Validate() error {
	if d.Min > d.Max {
		return configError("range min %d > max %d", d.Min, d.Max)
	}
	if _, _, ok := d.bounds(); !ok {
		return configError("no %s value in [%d, %d]", d.Parity, d.Min, d.Max)
	}
	return nil
}

// bounds returns the smallest and largest members of the domain.
func (d IntDomain) bounds() (first, last int64, ok bool) {
	if d.Min > d.Max {
		return 0, 0, false
	}
	first, last = d.Min, d.Max
	if d.Parity == AnyParity {
		return first, last, true
	}

	want := int64(0)
	if d.Parity == OddParity {
		want = 1
	}
	if first&1 != want {
		if first == math.MaxInt64 {
			return 0, 0, false
		}
		first++
	}
	if last&1 != want {
		if last == math.MinInt64 {
			return 0, 0, false
		}
		last--
	}
	if first > last {
		return 0, 0, false
	}
	return first, last, true
}

// Size returns the number of members. full is true when the domain covers all
// 2^64 int64 values, which does not fit in n.
func (d IntDomain) Size() (n uint64, full bool) {
	first, last, ok := d.bounds()
	if !ok {
		return 0, false
	}
	span := uint64(last) - uint64(first)
	if d.Parity != AnyParity {
		return span/2 + 1, false
	}
	if span == math.MaxUint64 {
		return 0, true
	}
	return span + 1, false
}

// At returns the i-th member in ascending order. i must be below Size.
func (d IntDomain) At(i uint64) int64 {
	first, _, _ := d.bounds()
	step := uint64(1)
	if d.Parity != AnyParity {
		step = 2
	}
	return int64(uint64(first) + i*step)
}

// Contains reports whether v is a member of the domain.
func (d IntDomain) Contains(v int64) bool {
	if v < d.Min || v > d.Max {
		return false
	}
	switch d.Parity {
	case EvenParity:
		return v&1 == 0
	case OddParity:
		return v&1 == 1
	default:
		return true
	}
}

func (d IntDomain) String() string {
	if d.Parity == AnyParity {
		return fmt.Sprintf("[%d, %d]", d.Min, d.Max)
	}
	return fmt.Sprintf("[%d, %d] %s", d.Min, d.Max, d.Parity)
}

// RuneDomain is the domain descriptor of a character generator: a named set
// of code points backed by a unicode.RangeTable. Build one with NewRuneDomain.
type RuneDomain struct {
	name  string
	table *unicode.RangeTable
	size  uint64
	ascii []rune
}

// NewRuneDomain builds a domain from a range table. The table must contain at
// least one code point.
func NewRuneDomain(name string, table *unicode.RangeTable) (RuneDomain, error) {
	if table == nil {
		return RuneDomain{}, configError("character table %q is nil", name)
	}
	d := RuneDomain{name: name, table: table}
	for _, r := range table.R16 {
		if r.Stride == 0 || r.Lo > r.Hi {
			return RuneDomain{}, configError("character table %q has malformed range %#x-%#x", name, r.Lo, r.Hi)
		}
		d.size += uint64((r.Hi-r.Lo)/r.Stride) + 1
		for c := uint32(r.Lo); c <= uint32(r.Hi) && c <= unicode.MaxASCII; c += uint32(r.Stride) {
			d.ascii = append(d.ascii, rune(c))
		}
	}
	for _, r := range table.R32 {
		if r.Stride == 0 || r.Lo > r.Hi || r.Hi > unicode.MaxRune {
			return RuneDomain{}, configError("character table %q has malformed range %#x-%#x", name, r.Lo, r.Hi)
		}
		d.size += uint64((r.Hi-r.Lo)/r.Stride) + 1
	}
	if d.size == 0 {
		return RuneDomain{}, configError("character table %q is empty", name)
	}
	return d, nil
}

// mustRuneDomain is for the package's own static tables.
func mustRuneDomain(name string, table *unicode.RangeTable) RuneDomain {
	d, err := NewRuneDomain(name, table)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the domain's name, e.g. "alpha" or "U+0041..U+005A".
func (d RuneDomain) Name() string { return d.name }

// Table returns the backing range table.
func (d RuneDomain) Table() *unicode.RangeTable { return d.table }

// Size returns the number of code points in the domain.
func (d RuneDomain) Size() uint64 { return d.size }

// ASCII returns the domain's members in U+0000..U+007F, in ascending order.
func (d RuneDomain) ASCII() []rune { return d.ascii }

// At returns the i-th code point in table order. i must be below Size.
func (d RuneDomain) At(i uint64) rune {
	if d.table == nil {
		return unicode.ReplacementChar
	}
	for _, r := range d.table.R16 {
		n := uint64((r.Hi-r.Lo)/r.Stride) + 1
		if i < n {
			return rune(uint64(r.Lo) + i*uint64(r.Stride))
		}
		i -= n
	}
	for _, r := range d.table.R32 {
		n := uint64((r.Hi-r.Lo)/r.Stride) + 1
		if i < n {
			return rune(uint64(r.Lo) + i*uint64(r.Stride))
		}
		i -= n
	}
	return unicode.ReplacementChar
}

// Contains reports whether r is a member of the domain.
func (d RuneDomain) Contains(r rune) bool {
	if d.table == nil {
		return false
	}
	return unicode.Is(d.table, r)
}

func (d RuneDomain) String() string {
	return fmt.Sprintf("%s (%d code points)", d.name, d.size)
}
