package catalog

import "github.com/canopyhq/canopy/pkg/domain"

// NextQuestion resolves the question that follows an answered one.
//
// Resolution order:
//  1. If the selected answer matches an option (exact value equality)
//     that names follow-up questions, the first unanswered follow-up
//     wins.
//  2. Otherwise the next node in sequence order, skipping nodes that are
//     only reachable as follow-ups.
//  3. Nil signals the end of the graph; the conversation moves toward
//     synthesis and completion.
//
// An answer value that matches no option falls through to the sequential
// fallback: a malformed or free-form answer must never halt the
// interview. The function is pure, so results are reproducible for
// identical inputs.
func (c *Catalog) NextQuestion(currentID string, answer domain.Answer, bc domain.BusinessContext) *domain.QuestionNode {
	current, ok := c.byID[currentID]
	if !ok {
		return nil
	}

	for _, opt := range current.Options {
		if len(opt.FollowUps) == 0 || !answer.Matches(opt.Value) {
			continue
		}
		for _, fid := range opt.FollowUps {
			next, exists := c.byID[fid]
			if !exists {
				continue
			}
			// Re-asking an already answered follow-up would loop the
			// conversation; fall through instead.
			if !bc.Answered(fid) {
				return next
			}
		}
	}

	for pos := current.Position + 1; pos <= c.maxPos; pos++ {
		next, exists := c.byPos[pos]
		if !exists || next.FollowUpOnly {
			continue
		}
		return next
	}

	return nil
}
