// Package middleware provides decorators for the conversation store.
package middleware

import "github.com/canopyhq/canopy/pkg/ports"

// Middleware allows wrapping a ConversationStore to add behavior.
type Middleware func(ports.ConversationStore) ports.ConversationStore
