package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyhq/canopy/pkg/domain"
)

func TestNextQuestion_FollowUpBeforeSequential(t *testing.T) {
	c := Default()
	bc := domain.NewBusinessContext()

	next := c.NextQuestion("challenge_followup", domain.TextAnswer("loyalty_program"), bc)
	require.NotNil(t, next)
	assert.Equal(t, "retention_rate", next.ID, "loyalty answer must route to retention_rate, not the sequential node")

	// The sequential node would have been business_priorities.
	seq := c.NextQuestion("challenge_followup", domain.TextAnswer("discounting"), bc)
	require.NotNil(t, seq)
	assert.Equal(t, "business_priorities", seq.ID)
}

func TestNextQuestion_UnmatchedAnswerFallsThrough(t *testing.T) {
	c := Default()
	bc := domain.NewBusinessContext()

	next := c.NextQuestion("growth_strategy", domain.TextAnswer("we mostly wing it"), bc)
	require.NotNil(t, next, "a free-form answer must never halt the interview")
	assert.Equal(t, "challenge_followup", next.ID)

	// Identical to the plain sequential path.
	seq := c.NextQuestion("growth_strategy", domain.TextAnswer("digital_marketing"), bc)
	require.NotNil(t, seq)
	assert.Equal(t, seq.ID, next.ID)
}

func TestNextQuestion_Deterministic(t *testing.T) {
	c := Default()
	bc := domain.NewBusinessContext().Merge("welcome", domain.TextAnswer("hi"))

	first := c.NextQuestion("challenge_followup", domain.TextAnswer("loyalty_program"), bc)
	second := c.NextQuestion("challenge_followup", domain.TextAnswer("loyalty_program"), bc)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
}

func TestNextQuestion_AnsweredFollowUpFallsThrough(t *testing.T) {
	c := Default()
	bc := domain.NewBusinessContext().Merge("retention_rate", domain.TextAnswer("80"))

	next := c.NextQuestion("challenge_followup", domain.TextAnswer("loyalty_program"), bc)
	require.NotNil(t, next)
	assert.Equal(t, "business_priorities", next.ID, "an already answered follow-up is not re-asked")
}

func TestNextQuestion_SkipsFollowUpOnlyNodes(t *testing.T) {
	c := Default()
	bc := domain.NewBusinessContext()

	next := c.NextQuestion("team_alignment", domain.TextAnswer("fully_aligned"), bc)
	require.NotNil(t, next)
	assert.Equal(t, "growth_pace", next.ID, "follow-up-only nodes are not part of the sequential flow")

	branched := c.NextQuestion("team_alignment", domain.TextAnswer("other"), bc)
	require.NotNil(t, branched)
	assert.Equal(t, "team_alignment_other", branched.ID)
}

func TestNextQuestion_ListAnswerMatchesOption(t *testing.T) {
	nodes := []domain.QuestionNode{
		{ID: "pick", Kind: domain.KindRanking, Prompt: "p", Position: 1, Required: true, Options: []domain.QuestionOption{
			{Value: "a", Label: "A"},
			{Value: "b", Label: "B", FollowUps: []string{"b_detail"}},
		}},
		{ID: "b_detail", Kind: domain.KindFreeText, Prompt: "d", Position: 2, FollowUpOnly: true},
		{ID: "last", Kind: domain.KindFreeText, Prompt: "l", Position: 3, Required: true},
	}
	c, err := New(nodes)
	require.NoError(t, err)

	next := c.NextQuestion("pick", domain.ListAnswer("a", "b"), domain.NewBusinessContext())
	require.NotNil(t, next)
	assert.Equal(t, "b_detail", next.ID)
}

func TestNextQuestion_EndOfGraph(t *testing.T) {
	c := Default()
	next := c.NextQuestion("final_confirmation", domain.TextAnswer("yes_ready"), domain.NewBusinessContext())
	assert.Nil(t, next)
}

func TestNextQuestion_UnknownCurrent(t *testing.T) {
	c := Default()
	assert.Nil(t, c.NextQuestion("no_such_question", domain.TextAnswer("x"), domain.NewBusinessContext()))
}

func TestFullTraversalTermination(t *testing.T) {
	c := Default()
	bc := domain.NewBusinessContext()

	node := c.Entry()
	require.NotNil(t, node)
	visited := 0
	for node != nil {
		visited++
		require.LessOrEqual(t, visited, c.Len(), "traversal must terminate")

		// Answer with a value that never triggers a branch.
		answer := domain.TextAnswer("sequential probe")
		bc = bc.Merge(node.ID, answer)
		node = c.NextQuestion(node.ID, answer, bc)
	}

	assert.Equal(t, 100, c.Progress(bc))
}

func TestProgress(t *testing.T) {
	c := Default()
	bc := domain.NewBusinessContext()
	assert.Equal(t, 0, c.Progress(bc))

	bc = bc.Merge("welcome", domain.TextAnswer("hi"))
	assert.Equal(t, 8, c.Progress(bc), "1 of 13 required rounds to 8")

	// Optional follow-ups do not move progress.
	bc = bc.Merge("team_alignment_other", domain.TextAnswer("complicated"))
	assert.Equal(t, 8, c.Progress(bc))
}
