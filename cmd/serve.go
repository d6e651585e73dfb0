package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidload/vidload/key"
	"github.com/vidload/vidload/loader"
	"github.com/vidload/vidload/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on")
	lo.Must0(viper.BindPFlag(key.ServerAddr, serveCmd.Flags().Lookup("addr")))

	serveCmd.Flags().StringSlice("origin", []string{}, "Origins allowed to subscribe to the notice stream")
	lo.Must0(viper.BindPFlag(key.ServerOrigins, serveCmd.Flags().Lookup("origin")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept load requests over HTTP and stream status notices",
	Long: `Start the player and an HTTP remote for it.

  POST /load     {"url": "..."} loads a video
  GET  /status   the notice currently on display
  GET  /ws       websocket stream of notices
  GET  /metrics  Prometheus metrics`,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p, err := startPlayer()
		handleErr(err)
		defer p.Close()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			select {
			case <-p.Wait():
				cancel()
			case <-ctx.Done():
			}
		}()

		s := server.New(p, server.Options{
			Origins: viper.GetStringSlice(key.ServerOrigins),
			Loader:  loader.Configured(nil),
		})

		if err := s.Run(ctx, viper.GetString(key.ServerAddr)); err != nil {
			_ = p.Close()
			handleErr(err)
		}
	},
}
