/*
Package canopy is an adaptive business-discovery conversation engine.

It walks a user through a graph of discovery questions, persists every
answer durably, generates real-time insights from rule-based analysis of
the accumulated business context, and adapts its questioning path and
tone as it learns.

# Concept

Canopy separates the question catalog (data) from the turn pipeline
(logic) and the delivery surfaces (adapters). The engine manages answer
persistence, branching, progress and insight generation, while the host
application manages I/O. This hexagonal architecture lets Canopy be
embedded in an HTTP service, a CLI, or any other surface.

# Key Features

  - Durable answers: every answer is persisted before the turn pipeline
    runs, so a crash mid-turn never loses user input.
  - Deterministic navigation: the same answers always produce the same
    question path.
  - Real-time insights: rule-based pattern, opportunity, risk, benchmark
    and trend detection with per-industry benchmark tables.
  - Advisory rendering: an optional LLM renderer rephrases messages for
    tone; any failure falls back to the verbatim question.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/canopyhq/canopy"
		"github.com/canopyhq/canopy/pkg/domain"
	)

	func main() {
		eng := canopy.New()

		result, err := eng.ProcessAnswer(context.Background(), "session-123",
			"welcome", domain.TextAnswer("We keep losing customers after the first purchase."))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(result.RenderedMessage)
	}

Production deployments typically swap in the Redis store and the Gemini
renderer; see the pkg/adapters subpackages and cmd/canopy.
*/
package canopy
