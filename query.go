package ecs

// Query filters archetypes down to those whose signature contains every
// component in With and none of the components in Without (§4.6). The
// teacher's query.go built a full And/Or/Not boolean tree over arbitrary
// QueryNode items; §4.6 only ever asks for "required ⊆ S" and
// "S ∩ excluded = ∅", so the tree collapses to the two plain signatures
// that condition already reduces to.
type Query struct {
	required Signature
	excluded Signature
}

// matches reports whether sig satisfies the query.
func (q Query) matches(sig Signature) bool {
	return q.required.IsSubsetOf(sig) && q.excluded.IsDisjointFrom(sig)
}

// queryBuilder is the fluent builder Factory.NewQuery hands back, mirroring
// the teacher's query builder but over the simplified With/Without surface.
type queryBuilder struct {
	q Query
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{}
}

// With requires every listed component to be present in a matching
// archetype's signature.
func (b *queryBuilder) With(components ...Component) *queryBuilder {
	for _, c := range components {
		b.q.required = b.q.required.Add(c.id())
	}
	return b
}

// Without excludes any archetype whose signature contains any of the
// listed components.
func (b *queryBuilder) Without(components ...Component) *queryBuilder {
	for _, c := range components {
		b.q.excluded = b.q.excluded.Add(c.id())
	}
	return b
}

// Compile finalizes the builder into an immutable Query value, ready to
// pass to World.Query.
func (b *queryBuilder) Compile() Query {
	return b.q
}
