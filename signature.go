package ecs

import "github.com/TheBitDrifter/mask"

// Signature is the set of ComponentIds currently attached to an entity,
// or the identity of an archetype housing every entity with that exact
// set (§3, §4.2).
//
// §9 leaves the bit width as an open question ("at least 256 kinds,
// ideally 1024"); this is resolved by backing Signature with
// mask.Mask256 rather than a hand-rolled multi-word fallback — it is
// already part of the dependency graph (the teacher uses it for its
// storage lock bitset) and comfortably covers the 256-kind ceiling
// maxComponentKinds enforces at the registry.
type Signature struct {
	bits mask.Mask256
}

// Contains reports whether id is a member of the signature.
func (s Signature) Contains(id ComponentId) bool {
	var probe mask.Mask256
	probe.Mark(uint32(id))
	return s.bits.ContainsAll(probe)
}

// Add returns a new signature with id added; Signature is a value type,
// operations never mutate the receiver (§4.2).
func (s Signature) Add(id ComponentId) Signature {
	out := s
	out.bits.Mark(uint32(id))
	return out
}

// Remove returns a new signature with id removed.
func (s Signature) Remove(id ComponentId) Signature {
	out := s
	out.bits.Unmark(uint32(id))
	return out
}

// IsSubsetOf reports whether every id in s is also in other.
func (s Signature) IsSubsetOf(other Signature) bool {
	return other.bits.ContainsAll(s.bits)
}

// IsDisjointFrom reports whether s and other share no ids.
func (s Signature) IsDisjointFrom(other Signature) bool {
	return s.bits.ContainsNone(other.bits)
}

// Empty reports whether the signature has no members.
func (s Signature) Empty() bool {
	return s.bits.IsEmpty()
}

// signatureOf builds a Signature from a set of components, using the
// ComponentId each one was assigned by FactoryNewComponent.
func signatureOf(components ...Component) Signature {
	var sig Signature
	for _, c := range components {
		sig = sig.Add(c.id())
	}
	return sig
}
