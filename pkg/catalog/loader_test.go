package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyhq/canopy/pkg/domain"
)

const sampleYAML = `
questions:
  - id: intro
    kind: conversation
    prompt: "Tell me about your business."
    position: 1
    required: true
  - id: channel
    kind: single_choice
    prompt: "Main acquisition channel?"
    position: 2
    required: true
    options:
      - value: seo
        label: "Organic Search"
      - value: paid
        label: "Paid Media"
        follow_ups: [paid_budget]
  - id: paid_budget
    kind: free_text
    prompt: "Monthly paid media budget?"
    position: 3
    follow_up_only: true
`

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	next := c.NextQuestion("channel", domain.TextAnswer("paid"), domain.NewBusinessContext())
	require.NotNil(t, next)
	assert.Equal(t, "paid_budget", next.ID)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("questions:\n  - id: q\n    bogus: true\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		nodes []domain.QuestionNode
		want  string
	}{
		{
			name: "duplicate id",
			nodes: []domain.QuestionNode{
				{ID: "a", Kind: domain.KindFreeText, Prompt: "p", Position: 1},
				{ID: "a", Kind: domain.KindFreeText, Prompt: "p", Position: 2},
			},
			want: "duplicate id",
		},
		{
			name: "shared position",
			nodes: []domain.QuestionNode{
				{ID: "a", Kind: domain.KindFreeText, Prompt: "p", Position: 1},
				{ID: "b", Kind: domain.KindFreeText, Prompt: "p", Position: 1},
			},
			want: "position 1 shared",
		},
		{
			name: "unknown kind",
			nodes: []domain.QuestionNode{
				{ID: "a", Kind: "slider", Prompt: "p", Position: 1},
			},
			want: "unknown kind",
		},
		{
			name: "dangling follow-up",
			nodes: []domain.QuestionNode{
				{ID: "a", Kind: domain.KindSingleChoice, Prompt: "p", Position: 1, Options: []domain.QuestionOption{
					{Value: "x", Label: "X", FollowUps: []string{"ghost"}},
				}},
			},
			want: "unknown follow-up",
		},
		{
			name: "unreachable follow-up-only node",
			nodes: []domain.QuestionNode{
				{ID: "a", Kind: domain.KindFreeText, Prompt: "p", Position: 1},
				{ID: "b", Kind: domain.KindFreeText, Prompt: "p", Position: 2, FollowUpOnly: true},
			},
			want: "never referenced",
		},
		{
			name: "choice without options",
			nodes: []domain.QuestionNode{
				{ID: "a", Kind: domain.KindSingleChoice, Prompt: "p", Position: 1},
			},
			want: "has no options",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.nodes)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDefaultCatalogIsValid(t *testing.T) {
	assert.NotPanics(t, func() { Default() })
	assert.NoError(t, Validate(defaultNodes()))
}
