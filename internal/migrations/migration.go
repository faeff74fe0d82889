package migrations

import (
	"fmt"
)

// Migration is a single reversible schema revision. Revisions form a
// singly-linked history: each one records the revision it applies on
// top of, with the root revision recording an empty parent.
type Migration struct {
	Revision string
	Parent   string

	Up   []string
	Down []string
}

// Chain is the linear revision history, ordered root first.
type Chain struct {
	migrations []Migration
}

// BuildChain orders the given revisions by following parent links from
// the root. The set is rejected when it does not describe exactly one
// linear history: duplicate revision names, two revisions sharing a
// parent, unknown parents, cycles, or a revision missing its Up or
// Down scripts.
func BuildChain(migrations []Migration) (Chain, error) {
	if len(migrations) == 0 {
		return Chain{}, fmt.Errorf("no migrations registered")
	}

	byRevision := make(map[string]Migration, len(migrations))
	byParent := make(map[string]Migration, len(migrations))

	var root *Migration
	for _, m := range migrations {
		m := m

		if m.Revision == "" {
			return Chain{}, fmt.Errorf("migration with empty revision name")
		}

		if len(m.Up) == 0 {
			return Chain{}, fmt.Errorf("revision %s: missing up scripts", m.Revision)
		}

		if len(m.Down) == 0 {
			return Chain{}, fmt.Errorf("revision %s: missing down scripts", m.Revision)
		}

		if _, found := byRevision[m.Revision]; found {
			return Chain{}, fmt.Errorf("duplicate revision %s", m.Revision)
		}
		byRevision[m.Revision] = m

		if m.Parent == "" {
			if root != nil {
				return Chain{}, fmt.Errorf("multiple root revisions: %s, %s", root.Revision, m.Revision)
			}
			root = &m
			continue
		}

		if existing, found := byParent[m.Parent]; found {
			return Chain{}, fmt.Errorf(
				"revisions %s and %s both apply on top of %s",
				existing.Revision, m.Revision, m.Parent,
			)
		}
		byParent[m.Parent] = m
	}

	if root == nil {
		return Chain{}, fmt.Errorf("no root revision found")
	}

	ordered := make([]Migration, 0, len(migrations))
	current := *root
	for {
		ordered = append(ordered, current)

		next, found := byParent[current.Revision]
		if !found {
			break
		}

		if len(ordered) > len(migrations) {
			return Chain{}, fmt.Errorf("revision history contains a cycle")
		}

		current = next
	}

	if len(ordered) != len(migrations) {
		for _, m := range migrations {
			if _, found := byRevision[m.Parent]; m.Parent != "" && !found {
				return Chain{}, fmt.Errorf("revision %s: unknown parent %s", m.Revision, m.Parent)
			}
		}
		return Chain{}, fmt.Errorf("revision history is not a single linear chain")
	}

	return Chain{migrations: ordered}, nil
}

// Migrations returns the chain in application order.
func (c Chain) Migrations() []Migration {
	out := make([]Migration, len(c.migrations))
	copy(out, c.migrations)
	return out
}

func (c Chain) Len() int {
	return len(c.migrations)
}
