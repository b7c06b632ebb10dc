package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var setupSettingsFlag string

func newSetupCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "setup",
		Short: "Install ctxbar as the statusLine in ~/.claude/settings.json",
		Long:  "Install ctxbar as the statusLine command in ~/.claude/settings.json.\nThe previous file is kept as settings.json.backup.\n",
		Args:  cobra.NoArgs,
		RunE:  runSetup,
	}
	c.Flags().StringVar(&setupSettingsFlag, "settings", "", "settings file to edit (default ~/.claude/settings.json)")
	return c
}

func defaultSettingsPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude", "settings.json")
}

func runSetup(cmd *cobra.Command, args []string) error {
	exePath, err := os.Executable()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to get executable path: %v\n", err)
		return err
	}
	exePath, _ = filepath.Abs(exePath)
	settingsPath := setupSettingsFlag
	if settingsPath == "" {
		settingsPath = defaultSettingsPath()
	}
	backupPath, err := installStatusLine(settingsPath, exePath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to install statusline: %v\n", err)
		return err
	}
	out := cmd.OutOrStdout()
	if backupPath != "" {
		fmt.Fprintf(out, "Backed up settings to %s\n", backupPath)
	}
	fmt.Fprintf(out, "Statusline installed to %s\n", settingsPath)
	fmt.Fprintf(out, "Statusline command: %s\n", exePath)
	return nil
}

// installStatusLine points the statusLine entry of a Claude Code settings
// file at command, leaving every other key untouched. An existing file is
// copied to <path>.backup first; its path is returned.
func installStatusLine(settingsPath, command string) (string, error) {
	data := []byte("{}")
	backupPath := ""
	existing, err := os.ReadFile(settingsPath)
	switch {
	case err == nil:
		if len(existing) > 0 {
			if !gjson.ValidBytes(existing) || !gjson.ParseBytes(existing).IsObject() {
				return "", fmt.Errorf("%s is not a JSON object", settingsPath)
			}
			data = existing
		}
		backupPath = settingsPath + ".backup"
		if err := os.WriteFile(backupPath, existing, 0644); err != nil {
			return "", fmt.Errorf("write backup: %w", err)
		}
	case !os.IsNotExist(err):
		return "", fmt.Errorf("read settings: %w", err)
	}

	data, err = sjson.SetBytes(data, "statusLine", map[string]interface{}{
		"type":    "command",
		"command": command,
	})
	if err != nil {
		return "", fmt.Errorf("set statusLine: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0755); err != nil {
		return "", fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(settingsPath, pretty.Pretty(data), 0644); err != nil {
		return "", fmt.Errorf("write settings: %w", err)
	}
	return backupPath, nil
}
