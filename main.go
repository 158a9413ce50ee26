package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/sergev/fcalc/runtime"
)

func main() {
	cfg, err := runtime.LoadConfig(runtime.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "fcalc: %v\n", err)
		os.Exit(1)
	}

	session := runtime.NewSession()
	// A corrupt rc file is fatal: no partial environment is loaded.
	if err := session.LoadRCFile(cfg.RCFile); err != nil {
		fmt.Fprintf(os.Stderr, "fcalc: %v\n", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	if len(args) > 0 {
		out, err := session.EvalLine(strings.Join(args, " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "fcalc: %v\n", err)
			os.Exit(1)
		}
		if out != "" {
			fmt.Println(out)
		}
		return
	}

	if !isInteractive() {
		runBufferedREPL(session, bufio.NewReader(os.Stdin))
		return
	}
	runInteractiveREPL(session, cfg)
}

func runBufferedREPL(session *runtime.Session, reader *bufio.Reader) {
	for {
		line, err := reader.ReadString('\n')
		if line != "" && strings.TrimSpace(line) != "" {
			out, evalErr := session.EvalLine(line)
			if evalErr != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", evalErr)
			} else if out != "" {
				fmt.Println(out)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
			}
			return
		}
	}
}

func runInteractiveREPL(session *runtime.Session, cfg runtime.Config) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	for {
		input, err := state.Prompt(cfg.Prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}

		line := strings.TrimSpace(input)
		if line == "" {
			continue
		}
		state.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			if quit := runCommand(session, cfg, line); quit {
				return
			}
			continue
		}

		out, evalErr := session.EvalLine(line)
		if evalErr != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", evalErr)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}

// runCommand dispatches a colon command. It reports whether the REPL should
// exit.
func runCommand(session *runtime.Session, cfg runtime.Config, line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		printHelp()
	case ":env":
		lines := session.EnvLines()
		if len(lines) == 0 {
			fmt.Println("empty environment")
			return false
		}
		for _, l := range lines {
			fmt.Println(l)
		}
	case ":save":
		if err := session.SaveRCFile(cfg.RCFile); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return false
		}
		fmt.Printf("saved %s\n", cfg.RCFile)
	case ":reset":
		session.ResetVars()
		fmt.Println("variables reset")
	case ":clear":
		session.ClearHistory()
		fmt.Println("history cleared")
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %s (try :help)\n", line)
	}
	return false
}

func printHelp() {
	fmt.Print(`Enter an expression, an assignment, or a function declaration:
  1 + 2 * 3
  let x = sqrt(144)
  fn foo(a, b) a + b * 5
  foo(x, 2)

The variable ans always holds the last result.
Built-ins: sin cos tan ln sqrt sq cube cbrt, and log with a leading
base numeral: log 2 (8).

Commands:
  :env    show the current bindings
  :save   write the environment to the rc file
  :reset  drop all variables (functions survive)
  :clear  clear the expression history
  :help   this text
  :quit   exit
`)
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
