package committer

import "cloud.google.com/go/spanner"

// Plan collects the mutations of one catalog write so they can be applied
// in a single read-write transaction.
type Plan struct {
	tag       string
	mutations []*spanner.Mutation
}

// NewPlan returns an empty plan. The tag ends up as the Spanner transaction
// tag, e.g. "catalog.create_entity".
func NewPlan(tag string) *Plan {
	return &Plan{
		tag:       tag,
		mutations: make([]*spanner.Mutation, 0, 4),
	}
}

// Add appends m to the plan. Nil mutations are ignored so mutation builders
// can return nil when there is nothing to write.
func (p *Plan) Add(m ...*spanner.Mutation) {
	for _, mut := range m {
		if mut != nil {
			p.mutations = append(p.mutations, mut)
		}
	}
}

func (p *Plan) Tag() string {
	return p.tag
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}
