// Package catalog holds the static question graph: an ordered, immutable
// collection of question definitions with branching rules, and the
// resolution logic that picks the next question for a turn.
package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/canopyhq/canopy/pkg/domain"
)

var validKinds = map[string]bool{
	domain.KindConversation: true,
	domain.KindSingleChoice: true,
	domain.KindFreeText:     true,
	domain.KindRanking:      true,
	domain.KindConditional:  true,
}

// Catalog is an immutable set of question nodes indexed by ID and by
// sequence position. It is built once and only ever read afterwards, so
// concurrent lookups from any number of sessions are safe.
type Catalog struct {
	nodes         []domain.QuestionNode
	byID          map[string]*domain.QuestionNode
	byPos         map[int]*domain.QuestionNode
	maxPos        int
	requiredTotal int
}

// New builds a catalog from node definitions, validating the graph.
func New(nodes []domain.QuestionNode) (*Catalog, error) {
	if err := Validate(nodes); err != nil {
		return nil, err
	}

	c := &Catalog{
		nodes: append([]domain.QuestionNode(nil), nodes...),
		byID:  make(map[string]*domain.QuestionNode, len(nodes)),
		byPos: make(map[int]*domain.QuestionNode, len(nodes)),
	}
	sort.SliceStable(c.nodes, func(i, j int) bool {
		return c.nodes[i].Position < c.nodes[j].Position
	})
	for i := range c.nodes {
		n := &c.nodes[i]
		c.byID[n.ID] = n
		c.byPos[n.Position] = n
		if n.Position > c.maxPos {
			c.maxPos = n.Position
		}
		if n.Required {
			c.requiredTotal++
		}
	}
	return c, nil
}

// Validate checks a node list for structural defects: duplicate IDs or
// positions, unknown kinds, missing prompts, dangling follow-up
// references and unreachable follow-up-only nodes.
func Validate(nodes []domain.QuestionNode) error {
	if len(nodes) == 0 {
		return fmt.Errorf("catalog is empty")
	}

	ids := make(map[string]bool, len(nodes))
	positions := make(map[int]string, len(nodes))
	var problems []string

	for _, n := range nodes {
		if n.ID == "" {
			problems = append(problems, "node with empty id")
			continue
		}
		if ids[n.ID] {
			problems = append(problems, fmt.Sprintf("duplicate id %q", n.ID))
		}
		ids[n.ID] = true

		if prev, taken := positions[n.Position]; taken {
			problems = append(problems, fmt.Sprintf("position %d shared by %q and %q", n.Position, prev, n.ID))
		}
		positions[n.Position] = n.ID

		if !validKinds[n.Kind] {
			problems = append(problems, fmt.Sprintf("%s: unknown kind %q", n.ID, n.Kind))
		}
		if strings.TrimSpace(n.Prompt) == "" {
			problems = append(problems, fmt.Sprintf("%s: empty prompt", n.ID))
		}
		switch n.Kind {
		case domain.KindSingleChoice, domain.KindConditional, domain.KindRanking:
			if len(n.Options) == 0 {
				problems = append(problems, fmt.Sprintf("%s: %s question has no options", n.ID, n.Kind))
			}
		}
	}

	// Second pass: follow-up references and reachability.
	referenced := make(map[string]bool)
	for _, n := range nodes {
		for _, opt := range n.Options {
			for _, fid := range opt.FollowUps {
				if !ids[fid] {
					problems = append(problems, fmt.Sprintf("%s: option %q names unknown follow-up %q", n.ID, opt.Value, fid))
				}
				referenced[fid] = true
			}
		}
	}
	for _, n := range nodes {
		if n.FollowUpOnly && !referenced[n.ID] {
			problems = append(problems, fmt.Sprintf("%s: follow-up-only node is never referenced", n.ID))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid catalog:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Get returns the node with the given ID.
func (c *Catalog) Get(id string) (*domain.QuestionNode, bool) {
	n, ok := c.byID[id]
	return n, ok
}

// Entry returns the first node of the sequential flow.
func (c *Catalog) Entry() *domain.QuestionNode {
	for pos := 0; pos <= c.maxPos; pos++ {
		if n, ok := c.byPos[pos]; ok && !n.FollowUpOnly {
			return n
		}
	}
	return nil
}

// Nodes returns the nodes in sequence order.
func (c *Catalog) Nodes() []domain.QuestionNode {
	return append([]domain.QuestionNode(nil), c.nodes...)
}

// Len returns the number of nodes.
func (c *Catalog) Len() int {
	return len(c.nodes)
}

// RequiredTotal returns how many nodes count toward progress.
func (c *Catalog) RequiredTotal() int {
	return c.requiredTotal
}

// Progress derives the completion percentage from answered required
// questions. Progress is always derived, never stored independently.
func (c *Catalog) Progress(bc domain.BusinessContext) int {
	if c.requiredTotal == 0 {
		return 0
	}
	answered := 0
	for i := range c.nodes {
		if c.nodes[i].Required && bc.Answered(c.nodes[i].ID) {
			answered++
		}
	}
	return int(math.Round(100 * float64(answered) / float64(c.requiredTotal)))
}
