package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidload/vidload/color"
	"github.com/vidload/vidload/constant"
	"github.com/vidload/vidload/key"
	"github.com/vidload/vidload/style"
)

// Field is a registered setting and its default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for "config info".
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Vidload + "_" + EnvKeyReplacer.Replace(f.Key))
}

// MarshalJSON reports the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Unit        string `json:"unit,omitempty"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Unit:        f.unit(),
	})
}

func (f *Field) typeName() string {
	return reflect.TypeOf(f.Value).String()
}

func (f *Field) unit() string {
	if millisKeys[f.Key] {
		return "ms"
	}
	return ""
}

// render highlights v, showing millisecond keys as durations.
func (f *Field) render(v any) string {
	if millisKeys[f.Key] {
		return style.Fg(color.Cyan)(millisString(toInt(v)))
	}

	switch value := v.(type) {
	case bool:
		return lo.Ternary(value, style.Fg(color.Green), style.Fg(color.Red))(strconv.FormatBool(value))
	case string:
		return style.Fg(color.Yellow)(value)
	case []string:
		if len(value) == 0 {
			return style.Faint("none")
		}
		return style.Fg(color.Yellow)(strings.Join(value, ", "))
	default:
		return fmt.Sprint(value)
	}
}

func millisString(ms int) string {
	return (time.Duration(ms) * time.Millisecond).String()
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlayerBinary, "mpv", "Media player executable used as the playback surface")
	register(key.PlayerFadeDelay, 2000, "Milliseconds a success notice stays visible before it starts fading")
	register(key.PlayerFadeDuration, 1000, "Milliseconds the fade-out lasts before the notice is hidden")
	register(key.PlayerStrictMIME, false, "Label sources with the MIME type of their extension.\nWhen disabled every source is labeled video/mp4")
	register(key.ServerAddr, "127.0.0.1:7878", "Listen address of the HTTP remote (vidload serve)")
	register(key.ServerOrigins, []string{}, "Origins allowed to open the notice websocket.\nEmpty allows same-origin requests only")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIShowProgress, true, "Show the playback progress bar in the TUI")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"blue":    style.Fg(color.Blue),
	"purple":  style.Fg(color.Purple),
	"current": func(f *Field) string { return f.render(viper.Get(f.Key)) },
	"initial": func(f *Field) string { return f.render(f.Value) },
	"kind": func(f *Field) string {
		if u := f.unit(); u != "" {
			return f.typeName() + " (" + u + ")"
		}
		return f.typeName()
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ current . }}
{{ blue "Default:" }} {{ initial . }}
{{ blue "Type:" }}    {{ kind . }}`))
