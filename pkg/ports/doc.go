/*
Package ports defines the driven ports (interfaces) for the Canopy engine.

These interfaces decouple the conversation pipeline from external
implementations, allowing the engine to work with various storage
backends, message renderers, and lock providers.

# Key Interfaces

  - ConversationStore: Responsible for persisting answers, state snapshots and insights.
  - Renderer: Responsible for rephrasing assistant messages for tone (e.g., an LLM backend).
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
