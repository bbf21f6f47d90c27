// Package domain contains the core entities of the Canopy engine:
// question definitions, accumulated business context, conversation state,
// insights and personas. It has no dependencies outside the standard
// library so that adapters and the runtime can share these types freely.
package domain
