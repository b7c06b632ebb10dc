package cmd

// Version is overridden at build time with -ldflags "-X github.com/Seraphli/ctxbar/cmd.Version=...".
var Version = "1.5.0"
