package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Seraphli/ctxbar/internal/cache"
	"github.com/Seraphli/ctxbar/internal/config"
	"github.com/Seraphli/ctxbar/internal/logger"
	"github.com/Seraphli/ctxbar/internal/payload"
	"github.com/Seraphli/ctxbar/internal/render"
	"github.com/Seraphli/ctxbar/internal/usage"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const helpText = `ctxbar - context window statusline for Claude Code

INSTALL:
  go install github.com/Seraphli/ctxbar@latest

SETUP:
  Run "ctxbar setup", or add to ~/.claude/settings.json:

  {
    "statusLine": {
      "type": "command",
      "command": "ctxbar"
    }
  }

WHAT IT SHOWS:
  █████████████████████████████░░░░░░▒▒▒▒▒▒▒▒▒▒
  Opus 4.5 in /lasy             130k/200k (65%)

  The last cells of the bar are the auto-compaction buffer. They turn
  violet once usage reaches them.

CONFIG:
  ~/.ctxbar/config.yaml (cache_dir, debug, log_file)
  CTXBAR_CONFIG_DIR, CTXBAR_CACHE_DIR, CTXBAR_DEBUG
`

// NewRootCmd builds the ctxbar command. Run without arguments it reads the
// session payload from stdin and prints the statusline.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ctxbar",
		Short:         "Claude Code statusline showing context window usage",
		Long:          helpText,
		Version:       Version,
		RunE:          runStatusline,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetHelpTemplate("{{.Long}}")
	root.SetVersionTemplate("ctxbar v{{.Version}}\n")
	root.AddCommand(newSetupCmd())
	return root
}

func runStatusline(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("statusline panic: %v", r))
			err = fmt.Errorf("statusline: %v", r)
		}
	}()
	cfg, cfgErr := config.Load()
	logger.Init(cfg.LogFile, cfg.Debug)
	defer logger.Close()
	if cfgErr != nil {
		logger.Error(fmt.Sprintf("config: %v", cfgErr))
	}

	raw := readPayload(cmd.InOrStdin())
	cwd, _ := os.Getwd()
	lines := Statusline(raw, cwd, cache.NewFile(cfg.CacheDir))
	out := cmd.OutOrStdout()
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("write statusline: %w", err)
		}
	}
	return nil
}

// readPayload reads stdin to completion. An interactive terminal never sends
// a payload, so it is treated as empty instead of blocking.
func readPayload(in io.Reader) []byte {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return payload.Read(in)
}

// Statusline turns a raw payload into the lines to print.
func Statusline(raw []byte, cwd string, store cache.Store) []string {
	snap := payload.Parse(raw, cwd)
	resolver := &usage.Resolver{Store: store}
	res := resolver.Resolve(snap)
	percent := usage.Percent(res, snap.Capacity)
	logger.Debug(fmt.Sprintf("session=%s source=%s total=%d capacity=%d percent=%d",
		snap.SessionID, res.Source, res.Total, snap.Capacity, percent))

	view := render.View{
		Model:    snap.Model,
		Dir:      payload.DirName(snap.Cwd),
		Total:    res.Total,
		Capacity: snap.Capacity,
		Percent:  percent,
	}
	return render.Lines(view, usage.NoData(res.Total, percent))
}
