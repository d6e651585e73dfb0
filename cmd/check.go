package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidload/vidload/color"
	"github.com/vidload/vidload/constant"
	"github.com/vidload/vidload/icon"
	"github.com/vidload/vidload/key"
	"github.com/vidload/vidload/media"
	"github.com/vidload/vidload/player"
	"github.com/vidload/vidload/style"
	"github.com/vidload/vidload/version"
)

// CheckDependencies verifies that the configured player is on PATH and recent enough.
func CheckDependencies() {
	binary := viper.GetString(key.PlayerBinary)
	if _, err := exec.LookPath(binary); err != nil {
		printMissingDependencyError(binary)
		os.Exit(1)
	}

	v, err := player.Version(binary)
	if err != nil {
		// custom builds may print something else; let the IPC handshake decide
		return
	}

	if ok, err := version.AtLeast(v, player.MinVersion); err == nil && !ok {
		handleErr(fmt.Errorf("%s %s is too old, %s or newer is required", binary, v, player.MinVersion))
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install mpv"
	case constant.Linux:
		installCmd = "sudo apt install mpv"
	case constant.Windows:
		installCmd = "scoop install mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The media player '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("containers", "c", false, "Start the player and report which containers it can decode")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the media player installation",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		binary := viper.GetString(key.PlayerBinary)
		v, err := player.Version(binary)
		if err != nil {
			v = "unknown"
		}
		cmd.Printf("%s %s %s\n", icon.Get(icon.Success), style.Fg(color.Purple)(binary), style.Fg(color.Yellow)(v))

		if !lo.Must(cmd.Flags().GetBool("containers")) {
			return
		}

		p, err := startPlayer()
		handleErr(err)
		defer p.Close()

		for _, f := range media.Formats {
			ok, err := p.CanPlayType(f.MIME())
			mark := style.Fg(color.Green)("yes")
			if err != nil || !ok {
				mark = style.Fg(color.Red)("no")
			}
			cmd.Printf("  %-6s %-18s %s\n", f, f.MIME(), mark)
		}
	},
}
