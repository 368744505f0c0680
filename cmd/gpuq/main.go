// Command gpuq is an interactive shell for inspecting and transforming
// IR modules.
//
// Modules are typed in directly or loaded from files. The shell keeps the
// last parsed module as the current one and runs the accessor pass on it
// on demand.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/gogpu/gpuir"
	"github.com/gogpu/gpuir/asm"
	"github.com/gogpu/gpuir/cubin"
	"github.com/gogpu/gpuir/ir"
)

const (
	appName     = "gpuq"
	historyFile = ".gpuq_history"
	promptMain  = "gpuq> "
	promptCont  = "  ... "
	banner      = "gpuir shell — Ctrl+C to cancel input, Ctrl+D to exit. Type :help for commands."
	helpText    = `
Shell commands:
  :help            Show this help
  :quit / :exit    Exit the shell
  :load <file>     Parse a file into the current module
  :run             Run the accessor pass on the current module
  :verify          Verify the current module
  :print           Print the current module in canonical form
  :symbols         List top-level symbols of the current module
  :save <file>     Write the current module to a file

Anything else is parsed as a module and becomes the current one.
`
)

// ---- main ------------------------------------------------------------------

func main() {
	initial := ""
	if len(os.Args) > 1 {
		if os.Args[1] == "-h" || os.Args[1] == "--help" {
			usage()
			return
		}
		initial = os.Args[1]
	}
	os.Exit(runREPL(initial))
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: gpuq [module.ir]\n\n")
	fmt.Fprintf(os.Stderr, "Starts an interactive shell, optionally with a module preloaded.\n")
}

// ---- REPL ------------------------------------------------------------------

// shell holds the interactive session state.
type shell struct {
	current *ir.Module
}

func runREPL(initialPath string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(completeCommand)

	// Load history (best-effort)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	s := &shell{}
	if initialPath != "" {
		if err := s.load(initialPath); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		} else {
			fmt.Println(describeModule(s.current))
		}
	}

	for {
		// Accumulate possibly-multiline input until the parser accepts it.
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok { // user pressed Ctrl+D or EOF
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		// Shell commands (prefixed with ':')
		if strings.HasPrefix(trimmed, ":") {
			if done := s.handleCommand(ln, trimmed); done {
				break
			}
			continue
		}

		// Parse as a module and make it current
		module, err := gpuir.Parse(code)
		if err != nil {
			fmt.Println(err)
			continue
		}
		s.current = module
		fmt.Println(describeModule(s.current))

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	// Persist history (best-effort)
	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}

// readByParseProbe reads one or more lines until the parser accepts the
// buffer as a complete module, or reports an error that more input
// cannot fix.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C aborts the current input; let the user start over.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		if _, perr := asm.Parse(src); perr == nil || !asm.IsIncomplete(perr) {
			return src, true
		}
	}
}

// ---- commands --------------------------------------------------------------

// replCommands lists every shell command, for completion.
var replCommands = []string{
	":exit", ":help", ":load", ":print", ":quit",
	":run", ":save", ":symbols", ":verify",
}

// completeCommand completes shell command names. IR input is not completed.
func completeCommand(line string) []string {
	if !strings.HasPrefix(line, ":") {
		return nil
	}
	var matches []string
	for _, c := range replCommands {
		if strings.HasPrefix(c, strings.ToLower(line)) {
			matches = append(matches, c)
		}
	}
	return matches
}

// handleCommand handles :help, :quit, :load, :run, :verify, :print,
// :symbols, and :save.
func (s *shell) handleCommand(ln *liner.State, line string) (exit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case ":help":
		fmt.Print(helpText)

	case ":quit", ":exit":
		return true

	case ":load":
		if len(fields) < 2 {
			fmt.Println("usage: :load <file>")
			return false
		}
		path := fields[1]
		if err := s.load(path); err != nil {
			fmt.Println(err)
			return false
		}
		fmt.Println(describeModule(s.current))
		ln.AppendHistory(fmt.Sprintf(":load %s", path))

	case ":run":
		if s.current == nil {
			fmt.Println("no module loaded")
			return false
		}
		diags, err := gpuir.GenerateAccessors(s.current)
		if err != nil {
			fmt.Println(err)
			return false
		}
		for _, d := range diags {
			fmt.Println(d.Error())
		}
		if len(diags) == 0 {
			fmt.Println(describeModule(s.current))
		}

	case ":verify":
		if s.current == nil {
			fmt.Println("no module loaded")
			return false
		}
		verifyErrors, err := gpuir.Verify(s.current)
		if err != nil {
			fmt.Println(err)
			return false
		}
		if len(verifyErrors) == 0 {
			fmt.Println("module verifies")
			return false
		}
		for i := range verifyErrors {
			fmt.Println(verifyErrors[i].Error())
		}

	case ":print":
		if s.current == nil {
			fmt.Println("no module loaded")
			return false
		}
		fmt.Print(gpuir.Print(s.current))

	case ":symbols":
		if s.current == nil {
			fmt.Println("no module loaded")
			return false
		}
		s.printSymbols()

	case ":save":
		if len(fields) < 2 {
			fmt.Println("usage: :save <file>")
			return false
		}
		if s.current == nil {
			fmt.Println("no module loaded")
			return false
		}
		path := fields[1]
		if err := os.WriteFile(path, []byte(gpuir.Print(s.current)), 0644); err != nil {
			fmt.Printf("cannot write %s: %v\n", path, err)
			return false
		}
		fmt.Printf("wrote %s\n", path)
		ln.AppendHistory(fmt.Sprintf(":save %s", path))

	default:
		fmt.Printf("unknown command. Type :help for help.\n")
	}
	return false
}

// load parses a file into the current module.
func (s *shell) load(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	module, err := gpuir.Parse(string(src))
	if err != nil {
		return err
	}
	s.current = module
	return nil
}

// printSymbols lists the top-level declarations of the current module.
// Promoted stubs show the accessor they are bound to.
func (s *shell) printSymbols() {
	for _, node := range s.current.Body {
		switch n := node.(type) {
		case *ir.Func:
			suffix := ""
			if n.IsDecl() {
				suffix = " (stub)"
			}
			if getter, ok := n.Attrs.GetSymbol(cubin.GetterAttr); ok {
				suffix += " -> @" + getter
			}
			fmt.Printf("  func @%s%s\n", n.Name, suffix)
		case *ir.Global:
			fmt.Printf("  global @%s : %s\n", n.Name, n.Type)
		case *ir.Module:
			fmt.Printf("  module @%s (%d declarations)\n", n.Name, len(n.Body))
		}
	}
}

// describeModule returns a one-line summary of a module.
func describeModule(m *ir.Module) string {
	name := "module"
	if m.Name != "" {
		name = "module @" + m.Name
	}
	if len(m.Body) == 1 {
		return name + ": 1 declaration"
	}
	return fmt.Sprintf("%s: %d declarations", name, len(m.Body))
}
