package canopy_test

import (
	"context"
	"fmt"
	"log"

	"github.com/canopyhq/canopy"
	"github.com/canopyhq/canopy/pkg/catalog"
	"github.com/canopyhq/canopy/pkg/domain"
)

// ExampleNew demonstrates a minimal discovery turn with the built-in
// catalog and the default in-memory store.
func ExampleNew() {
	eng := canopy.New()
	ctx := context.Background()

	result, err := eng.ProcessAnswer(ctx, "session-1",
		"welcome", domain.TextAnswer("We keep losing customers after the first purchase."))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.NextQuestion.ID)
	fmt.Println(result.State.Progress)
	// Output:
	// business_overview
	// 8
}

// ExampleNew_customCatalog shows how to run the engine over your own
// question graph defined in pure Go.
func ExampleNew_customCatalog() {
	cat, err := catalog.New([]domain.QuestionNode{
		{
			ID:       "pain_point",
			Kind:     domain.KindFreeText,
			Prompt:   "What slows your team down the most?",
			Position: 1,
			Required: true,
		},
		{
			ID:       "team_size",
			Kind:     domain.KindSingleChoice,
			Prompt:   "How big is the team?",
			Position: 2,
			Required: true,
			Options: []domain.QuestionOption{
				{Value: "solo", Label: "Just me"},
				{Value: "small", Label: "2-10 people"},
				{Value: "large", Label: "More than 10"},
			},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	eng := canopy.New(canopy.WithCatalog(cat))
	ctx := context.Background()

	result, err := eng.ProcessAnswer(ctx, "session-2",
		"pain_point", domain.TextAnswer("Manual deployment steps."))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.NextQuestion.ID)
	fmt.Println(result.State.Progress)
	// Output:
	// team_size
	// 50
}
