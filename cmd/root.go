// Package cmd implements the command-line interface for vidload.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidload/vidload/color"
	"github.com/vidload/vidload/constant"
	"github.com/vidload/vidload/icon"
	"github.com/vidload/vidload/key"
	"github.com/vidload/vidload/log"
	"github.com/vidload/vidload/mini"
	"github.com/vidload/vidload/player"
	"github.com/vidload/vidload/style"
	"github.com/vidload/vidload/tui"
	"github.com/vidload/vidload/util"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
	rootCmd.Flags().BoolP("mini", "m", false, "Use the line-prompt interface instead of the TUI")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("player", "P", "", "Media player executable to load videos into")
	lo.Must0(viper.BindPFlag(key.PlayerBinary, rootCmd.PersistentFlags().Lookup("player")))

	rootCmd.PersistentFlags().Bool("strict-mime", false, "Label sources with the MIME type of their extension")
	lo.Must0(viper.BindPFlag(key.PlayerStrictMIME, rootCmd.PersistentFlags().Lookup("strict-mime")))
}

// rootCmd defines the entry point for the vidload application.
var rootCmd = &cobra.Command{
	Use:   constant.Vidload,
	Short: "Load web videos into a local player from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Load web videos into a local player from the terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		p, err := startPlayer()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("mini")) {
			err = mini.Run(&mini.Options{Player: p})
		} else {
			err = tui.Run(&tui.Options{Player: p})
		}

		util.Ignore(p.Close)
		if err != nil && err.Error() != "interrupt" {
			handleErr(err)
		}
	},
}

// startPlayer launches the configured player in idle mode.
func startPlayer() (*player.MPV, error) {
	p := player.NewMPV(viper.GetString(key.PlayerBinary))
	if err := p.Start(); err != nil {
		return nil, fmt.Errorf("start player: %w", err)
	}
	return p, nil
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
