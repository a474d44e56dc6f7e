package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/makeasinger/songsmith/internal/generator"
	"github.com/makeasinger/songsmith/internal/model"
	"github.com/makeasinger/songsmith/internal/service"
)

// Build flags
var version = ""
var commit = ""
var date = ""

func main() {
	// Create signal based context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Launch command
	cmd := newCommand(os.Stdout)
	if err := cmd.ParseAndRun(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func newCommand(out io.Writer) *ffcli.Command {
	fs := flag.NewFlagSet("songsmith", flag.ExitOnError)

	return &ffcli.Command{
		ShortUsage: "songsmith [flags] <subcommand>",
		FlagSet:    fs,
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newVersionCommand(out),
			newGenerateCommand(out),
			newArrangeCommand(out),
		},
	}
}

func newVersionCommand(out io.Writer) *ffcli.Command {
	return &ffcli.Command{
		Name:       "version",
		ShortUsage: "songsmith version",
		ShortHelp:  "print version",
		Exec: func(ctx context.Context, args []string) error {
			v := version
			if v == "" {
				if buildInfo, ok := debug.ReadBuildInfo(); ok {
					v = buildInfo.Main.Version
				}
			}
			if v == "" {
				v = "dev"
			}
			versionFields := []string{v}
			if commit != "" {
				versionFields = append(versionFields, commit)
			}
			if date != "" {
				versionFields = append(versionFields, date)
			}
			versionFields = append(versionFields, generator.HashVersion)
			fmt.Fprintln(out, strings.Join(versionFields, " "))
			return nil
		},
	}
}

func newGenerateCommand(out io.Writer) *ffcli.Command {
	cmd := "generate"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	req := &model.GenerateRequest{}
	var seed, format, output string
	var count int
	fs.StringVar(&req.Genre, "genre", model.DefaultGenre, "genre of the songs")
	fs.StringVar(&req.Duration, "duration", model.DefaultDuration, "target duration")
	fs.StringVar(&req.Prompt, "prompt", "", "free-text prompt")
	fs.StringVar(&seed, "seed", "", "seed (derived from the inputs and the clock if empty)")
	fs.IntVar(&count, "count", model.DefaultCount, "number of songs")
	fs.StringVar(&format, "format", string(model.FormatJSON), "output format (json or csv)")
	fs.StringVar(&output, "output", "", "output file (stdout if empty)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("songsmith %s [flags]", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
			ff.WithEnvVarPrefix("songsmith"),
		},
		ShortHelp: "generate a batch of songs",
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			req.Seed = model.Seed(seed)
			req.Count = &count
			req.Format = model.Format(format)
			return runGenerate(ctx, req, output, out)
		},
	}
}

func newArrangeCommand(out io.Writer) *ffcli.Command {
	cmd := "arrange"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	var input, seed, output string
	var bpm int
	fs.StringVar(&input, "input", "", "lyrics file (stdin if empty)")
	fs.StringVar(&seed, "seed", "", "song seed")
	fs.IntVar(&bpm, "bpm", generator.DefaultBPM, "tempo")
	fs.StringVar(&output, "output", "", "output file (stdout if empty)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("songsmith %s [flags]", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
			ff.WithEnvVarPrefix("songsmith"),
		},
		ShortHelp: "derive the arrangement for a lyric sheet",
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			var lyrics []byte
			var err error
			if input == "" {
				lyrics, err = io.ReadAll(os.Stdin)
			} else {
				lyrics, err = os.ReadFile(input)
			}
			if err != nil {
				return fmt.Errorf("songsmith: couldn't read lyrics: %w", err)
			}
			req := &model.ArrangementRequest{
				Lyrics: string(lyrics),
				Seed:   model.Seed(seed),
				BPM:    bpm,
			}
			return runArrange(ctx, req, output, out)
		},
	}
}

func runGenerate(ctx context.Context, req *model.GenerateRequest, output string, out io.Writer) error {
	if req.Format != model.FormatJSON && req.Format != model.FormatCSV {
		return fmt.Errorf("songsmith: unknown format %q", req.Format)
	}

	svc := service.NewSongService(service.Options{})
	resp, err := svc.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("songsmith: couldn't generate songs: %w", err)
	}

	var data []byte
	if req.Format == model.FormatCSV {
		data, err = svc.ExportCSV(resp.Songs)
	} else {
		data, err = json.MarshalIndent(resp, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("songsmith: couldn't encode songs: %w", err)
	}
	return write(output, data, out)
}

func runArrange(ctx context.Context, req *model.ArrangementRequest, output string, out io.Writer) error {
	svc := service.NewSongService(service.Options{})
	resp, err := svc.Arrange(ctx, req)
	if err != nil {
		return fmt.Errorf("songsmith: couldn't build arrangement: %w", err)
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("songsmith: couldn't encode arrangement: %w", err)
	}
	return write(output, append(data, '\n'), out)
}

func write(output string, data []byte, out io.Writer) error {
	if output == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("songsmith: couldn't write %s: %w", output, err)
	}
	log.Printf("songsmith: wrote %s", output)
	return nil
}
