package canopy

// Version is the library version, overridable at build time via
// -ldflags "-X github.com/canopyhq/canopy.Version=...".
var Version = "0.1.0"
