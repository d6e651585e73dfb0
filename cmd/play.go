package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidload/vidload/loader"
	"github.com/vidload/vidload/status"
)

// errReported marks failures whose notice has already been printed.
var errReported = errors.New("reported")

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolP("json", "j", false, "Print every notice as a JSON line")
	playCmd.Flags().DurationP("timeout", "t", 0, "Give up if the video has not loaded within this duration (0 waits forever)")
}

var playCmd = &cobra.Command{
	Use:   "play <url>",
	Short: "Load a single video and keep playing it until the player closes",
	Example: "  vidload play https://example.com/clip.webm\n" +
		"  vidload play --json --timeout 30s https://example.com/movie.mkv",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		printer := &noticePrinter{
			out:    cmd.OutOrStdout(),
			asJson: lo.Must(cmd.Flags().GetBool("json")),
		}

		err := runPlay(args[0], printer, lo.Must(cmd.Flags().GetDuration("timeout")))
		if errors.Is(err, errReported) {
			os.Exit(1)
		}
		handleErr(err)
	},
}

func runPlay(url string, display status.Display, timeout time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := startPlayer()
	if err != nil {
		return err
	}
	defer p.Close()

	outcomes := make(chan status.Notice, 1)
	board := status.NewBoard(status.Multi(display, status.DisplayFunc(func(n status.Notice) {
		if n.Stage != status.Visible || n.Text == loader.MsgLoading {
			return
		}
		select {
		case outcomes <- n:
		default:
		}
	})), status.Clock{})

	handler := loader.New(p, board, loader.Configured(nil))
	if _, err := handler.Submit(url); err != nil {
		return fmt.Errorf("%w: %w", errReported, err)
	}

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case n := <-outcomes:
		if n.IsError() {
			return errReported
		}
	case <-deadline:
		return fmt.Errorf("video did not load within %s", timeout)
	case <-p.Wait():
		return errors.New("player exited before the video loaded")
	case <-ctx.Done():
		return nil
	}

	select {
	case <-p.Wait():
	case <-ctx.Done():
	}
	return nil
}
