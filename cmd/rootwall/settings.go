package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/rootwall/internal/config"
)

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  rootwall config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  rootwall config print [--path PATH] [--defaults]")
		fmt.Fprintln(os.Stderr, "  rootwall config explain [--path PATH] <yaml.path>")
		return exitUsage
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/rootwall/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return exitUsage
		}

		res, err := loadSettings(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
		if len(res.Files) == 0 {
			fmt.Println("config: ok (no file, using defaults)")
			return exitOK
		}
		fmt.Println("config: ok")
		return exitOK

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/rootwall/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return exitUsage
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadSettings(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return exitFailure
			}
			for _, f := range res.Files {
				fmt.Printf("# loaded: %s\n", f)
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
		fmt.Print(string(data))
		return exitOK

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/rootwall/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return exitUsage
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>, one of:")
			for _, p := range config.Paths() {
				fmt.Fprintln(os.Stderr, "  "+p)
			}
			return exitUsage
		}
		queryPath := fs.Arg(0)

		res, err := loadSettings(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}

		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}

		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", formatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return exitOK

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return exitUsage
	}
}

func loadSettings(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
