package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidload/vidload/color"
	"github.com/vidload/vidload/constant"
	"github.com/vidload/vidload/key"
	"github.com/vidload/vidload/player"
	"github.com/vidload/vidload/style"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
	"red":     style.Fg(color.Red),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}      {{ bold .Version }}
  {{ faint "Git Commit" }}   {{ bold .Revision }}
  {{ faint "Build Date" }}   {{ bold .BuiltAt }}
  {{ faint "Built By" }}     {{ bold .BuiltBy }}
  {{ faint "Platform" }}     {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "Player" }}       {{ bold .Player }} {{ if .PlayerVersion }}{{ bold .PlayerVersion }}{{ else }}{{ red "not found" }}{{ end }}
`))

// versionCmd prints build metadata and the version of the configured player.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version, build and player information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		binary := viper.GetString(key.PlayerBinary)
		playerVersion, _ := player.Version(binary)

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), struct {
			App, Version, Revision, BuiltAt, BuiltBy string
			OS, Arch                                 string
			Player, PlayerVersion                    string
		}{
			App:           constant.Vidload,
			Version:       constant.Version,
			Revision:      constant.Revision,
			BuiltAt:       strings.TrimSpace(constant.BuiltAt),
			BuiltBy:       constant.BuiltBy,
			OS:            runtime.GOOS,
			Arch:          runtime.GOARCH,
			Player:        binary,
			PlayerVersion: playerVersion,
		}))
	},
}
