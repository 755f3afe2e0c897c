package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sdui-go/interpreter/internal/config"
	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/events"
	"github.com/sdui-go/interpreter/internal/fetch"
	"github.com/sdui-go/interpreter/internal/imageload"
	"github.com/sdui-go/interpreter/internal/logger"
	"github.com/sdui-go/interpreter/internal/payload"
	"github.com/sdui-go/interpreter/internal/render"
	"github.com/sdui-go/interpreter/internal/screen"
	_ "github.com/sdui-go/interpreter/internal/strategy" // register strategies
	"github.com/sdui-go/interpreter/internal/tui"
	"github.com/sdui-go/interpreter/internal/view"
	"go.opentelemetry.io/otel"
)

func main() {
	configPath := flag.String("config", "", "Path to HCL config file")
	endpoint := flag.String("endpoint", "", "Component endpoint URL (overrides config)")
	input := flag.String("input", "", "Render a local payload file (or - for stdin) instead of fetching")
	jsonOut := flag.Bool("json", false, "Print the rendered widget tree as JSON")
	interactive := flag.Bool("tui", false, "Run the interactive terminal UI")
	noImages := flag.Bool("no-images", false, "Do not retrieve card images")
	width := flag.Int("width", 80, "Terminal width for text output")
	writeConfig := flag.String("write-config", "", "Write the default config to this path and exit")
	flag.Parse()

	if *writeConfig != "" {
		if err := os.WriteFile(*writeConfig, config.DefaultHCL(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("wrote", *writeConfig)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *endpoint != "" {
		cfg.Endpoint = *endpoint
	}
	if *noImages {
		cfg.Images.Enabled = false
	}
	level := cfg.LogLevel
	if *interactive {
		// Logs would tear the alternate screen; keep only errors.
		level = "error"
	}
	log := logger.New(level)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sinks := events.Multi{events.LogSink{Logger: log}}
	if cfg.Tracing.Enabled {
		sinks = append(sinks, events.TraceSink{Tracer: otel.Tracer("sdui")})
	}

	client := fetch.New(cfg.Endpoint, fetch.WithTimeout(cfg.Timeout), fetch.WithLogger(log))

	if *interactive {
		runTUI(ctx, cfg, client, sinks, log)
		return
	}

	var resp *descriptor.Response
	if *input != "" {
		resp, err = readInput(*input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "input: %v\n", err)
			os.Exit(1)
		}
	} else {
		var src fetch.Source
		resp, src, err = client.Load(ctx)
		log.Info("payload loaded", "source", string(src), "error", errString(err))
	}

	var session *screen.Session
	opts := []render.Option{render.WithEvents(sinks), render.WithLogger(log)}
	var loader *imageload.Loader
	if cfg.Images.Enabled {
		fetcher := imageload.NewHTTPFetcher(cfg.Images.RatePerSecond, cfg.Images.Burst, cfg.Images.MaxBytes)
		loader = imageload.New(ctx, fetcher, func(c imageload.Completion) { session.Apply(c) }, log)
		opts = append(opts, render.WithImages(loader))
	}
	renderer := render.New(opts...)
	session = screen.New(renderer, log)

	for _, w := range descriptor.Inspect(resp, renderer.Registry().Has) {
		log.Warn(w.Message, "type", w.Type, "node_id", w.NodeID, "path", w.Path)
	}
	pass := session.Show(ctx, resp)
	if loader != nil {
		loader.Wait()
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(pass.Widgets); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Println(view.New(*width).Render(pass.Widgets, view.NewState()))
}

func runTUI(ctx context.Context, cfg *config.Config, client *fetch.Client, sink events.Sink, log *slog.Logger) {
	var p *tea.Program
	opts := []render.Option{render.WithEvents(sink), render.WithLogger(log)}
	var loader *imageload.Loader
	if cfg.Images.Enabled {
		fetcher := imageload.NewHTTPFetcher(cfg.Images.RatePerSecond, cfg.Images.Burst, cfg.Images.MaxBytes)
		loader = imageload.New(ctx, fetcher, func(c imageload.Completion) { p.Send(tui.ImageMsg(c)) }, log)
		opts = append(opts, render.WithImages(loader))
	}
	session := screen.New(render.New(opts...), log)

	p = tea.NewProgram(tui.New(ctx, client, session, log), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
	if loader != nil {
		loader.Close()
	}
}

func readInput(path string) (*descriptor.Response, error) {
	if path != "-" {
		return payload.DecodeFile(path)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}
	return payload.Decode(data)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
