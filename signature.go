package depot

import (
	"fmt"
	"iter"
	"math/bits"
	"strconv"
	"strings"

	"github.com/TheBitDrifter/mask"
	iter_util "github.com/TheBitDrifter/util/iter"
)

// MaxComponentLimit is the width of a Signature in bits and therefore the upper
// bound for any registry capacity
const MaxComponentLimit = mask.MaxBits

// DefaultMaxComponents is the registry capacity used when none is configured
const DefaultMaxComponents = min(64, MaxComponentLimit)

// Signature is the set of component types an entity or archetype carries
//
// Bit i is set iff the component with id i is present. Signatures are
// comparable and are used as archetype map keys.
type Signature struct {
	bits mask.Mask
}

// BuildSignature returns a signature with exactly the given ids set
func BuildSignature(ids ...ComponentID) Signature {
	var s Signature
	for _, id := range ids {
		s.Set(id, true)
	}
	return s
}

// Set toggles one bit; id must be below MaxComponentLimit
func (s *Signature) Set(id ComponentID, on bool) {
	if int(id) >= MaxComponentLimit {
		panic(fmt.Sprintf("depot: component id %d exceeds signature width %d", id, MaxComponentLimit))
	}
	if on {
		s.bits.Mark(uint32(id))
		return
	}
	s.bits.Unmark(uint32(id))
}

// Test reports whether id is in the signature
func (s Signature) Test(id ComponentID) bool {
	if int(id) >= MaxComponentLimit {
		return false
	}
	return s.bits.Contains(uint32(id))
}

// Union adds every id of other to s
func (s *Signature) Union(other Signature) {
	for i := range s.bits {
		s.bits[i] |= other.bits[i]
	}
}

// Any reports whether at least one id is set
func (s Signature) Any() bool {
	return !s.bits.IsEmpty()
}

// Includes reports whether other is a subset of s
func (s Signature) Includes(other Signature) bool {
	return s.bits.ContainsAll(other.bits)
}

// Overlaps reports whether s and other share at least one id
func (s Signature) Overlaps(other Signature) bool {
	return s.bits.ContainsAny(other.bits)
}

// Disjoint reports whether s and other share no id
// The empty signature is disjoint from every signature.
func (s Signature) Disjoint(other Signature) bool {
	if !other.Any() {
		return true
	}
	return s.bits.ContainsNone(other.bits)
}

// IDs yields the set ids in ascending order
func (s Signature) IDs() iter.Seq[ComponentID] {
	return func(yield func(ComponentID) bool) {
		for i, word := range s.bits {
			for word != 0 {
				offset := bits.TrailingZeros64(word)
				word &^= 1 << offset
				if !yield(ComponentID(i*64 + offset)) {
					return
				}
			}
		}
	}
}

// Slice returns the set ids in ascending order
func (s Signature) Slice() []ComponentID {
	return iter_util.Collect(s.IDs())
}

// Len returns the number of set ids
func (s Signature) Len() int {
	n := 0
	for _, word := range s.bits {
		n += bits.OnesCount64(word)
	}
	return n
}

func (s Signature) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for id := range s.IDs() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	sb.WriteByte('}')
	return sb.String()
}
