package statewalk

// Version is the statewalk release version. It is overridden at build
// time via -ldflags "-X github.com/aretw0/statewalk.Version=...".
var Version = "0.1.0-dev"
