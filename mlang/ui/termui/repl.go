package termui

// Utilities for interactive command line interfaces.

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/mlang"
)

// Some global defaults
var welcomeMessage = "Welcome to %s [V%s]"
var stdprompt = prtxt.FgGreen.Sprintf("%s", "%s> ")
var contprompt = prtxt.FgYellow.Sprintf("%s", "%s… ")
var editmode string = "emacs"

// BaseREPL is a base type to instantiate a REPL interpreter.
// Concrete REPL implementations will usually use this as a base type.
type BaseREPL struct {
	Interpreter REPLCommandInterpreter // the interpreter this REPL runs for
	Helper      func(io.Writer)        // print out help information
	readline    *readline.Instance
	toolname    string
	version     string
	prompt      string
}

// NewBaseREPL create a new REPL base object intialized for an interpreter tool
// and a given version. Additional commands will be offered for completion.
func NewBaseREPL(toolname, version string, commands ...string) (*BaseREPL, error) {
	repl := &BaseREPL{
		toolname: toolname,
		version:  version,
		prompt:   fmt.Sprintf(stdprompt, toolname),
	}
	rl, err := newReadline(repl.prompt, toolname, commands)
	if err != nil {
		return nil, err
	}
	repl.readline = rl
	return repl, nil
}

// REPLCommandInterpreter is an interface all interpreters have to implement.
// It is the workhorse doing interpretation of interactive
// commands.
//
// The REPL will delegate interpreting command strings (i.e. those which do not represent
// internal administrative commands) to the interpreter.
//
// InterpretCommand returns true if the interpreter expects the line to be
// continued, i.e. the statement is incomplete.
type REPLCommandInterpreter interface {
	InterpretCommand(string) (more bool)
}

// Create a readline instance.
func newReadline(prompt, toolname string, commands []string) (*readline.Instance, error) {
	histfile := fmt.Sprintf("%s/%s-repl-history.tmp", os.TempDir(), toolname)
	return readline.NewEx(&readline.Config{
		Prompt:              prompt,
		HistoryFile:         histfile,
		AutoComplete:        replCompleter(commands),
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterReplInput,
	})
}

// displayCommands prints a help message with available commands
// We support some internal interactive sub-commands (not part of the interpreter).
func (repl *BaseREPL) displayCommands(out io.Writer) {
	io.WriteString(out, fmt.Sprintf(welcomeMessage, repl.toolname, repl.version))
	io.WriteString(out, "\n\nThe following commands are available:\n\n")
	io.WriteString(out, "  help               : print this message\n")
	io.WriteString(out, "  bye                : quit application\n")
	io.WriteString(out, "  mode [mode]        : display or set current editing mode\n")
	io.WriteString(out, "  setprompt [prompt] : set current prompt [to default],\n")
}

// Completer-tree for interactive sub-commands
func replCompleter(commands []string) *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("bye"),
		readline.PcItem("mode",
			readline.PcItem("vi"),
			readline.PcItem("emacs"),
		),
		readline.PcItem("setprompt"),
	}
	for _, c := range commands {
		items = append(items, readline.PcItem(c))
	}
	return readline.NewPrefixCompleter(items...)
}

// Outputs returns stdout and stderr of this REPL.
func (repl *BaseREPL) Outputs() (io.Writer, io.Writer) {
	return repl.readline.Stdout(), repl.readline.Stderr()
}

// Prompt enters a REPL and executes commands.
// Commands are either internal administrative (setprompt, help, etc.)
// or interpreted statements. Prompt returns when the user quits or the
// signal context of the application is cancelled.
func (repl *BaseREPL) Prompt(exitOnBye bool) {
	defer repl.readline.Close()
	io.WriteString(repl.readline.Stderr(),
		fmt.Sprintf(welcomeMessage, repl.toolname, repl.version))
	if !strings.HasSuffix(welcomeMessage, "\n") {
		repl.readline.Stderr().Write([]byte{'\n'})
	}
	continued := false
	for mlang.SignalContext.Err() == nil {
		line, err := repl.readline.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if continued {
			continued = repl.interpret(line)
		} else {
			words := strings.Fields(line)
			command := ""
			if len(words) > 0 {
				command = words[0]
			}
			var doExit bool
			if doExit, continued = repl.executeCommand(command, words, line); doExit {
				break
			}
		}
		if continued {
			repl.readline.SetPrompt(fmt.Sprintf(contprompt, repl.toolname))
		} else {
			repl.readline.SetPrompt(repl.prompt)
		}
	}
	if exitOnBye {
		mlang.Exit(0)
	}
}

// Central dispatcher function to execute internal REPL commands or interpreter
// statements. It receives the command (i.e. the first word of the line),
// a list of words (args) including the command, and the complete line of text.
// If it returns true, the REPL should terminate. The second result flags
// an incomplete statement.
func (repl *BaseREPL) executeCommand(cmd string, args []string, line string) (bool, bool) {
	switch {
	case cmd == "":
		// do nothing
	case cmd == "help":
		repl.displayCommands(repl.readline.Stderr())
		if repl.Helper != nil {
			repl.Helper(repl.readline.Stderr())
		}
	case cmd == "bye":
		io.WriteString(repl.readline.Stderr(), "> goodbye!\n")
		return true, false
	case cmd == "mode":
		if len(args) > 1 {
			switch args[1] {
			case "vi":
				repl.readline.SetVimMode(true)
				editmode = "vi"
				return false, false
			case "emacs":
				repl.readline.SetVimMode(false)
				editmode = "emacs"
				return false, false
			}
		}
		io.WriteString(repl.readline.Stderr(),
			fmt.Sprintf("> current input mode: %s\n", editmode))
	case cmd == "setprompt":
		if len(line) <= 10 {
			repl.prompt = fmt.Sprintf(stdprompt, repl.toolname)
		} else {
			repl.prompt = line[10:] + " "
		}
	default:
		tracer().Debugf("call interpreter on: '%s'", line)
		return false, repl.interpret(line)
	}
	return false, false // do not exit
}

// interpret calls the interpreter, sending a statement.
func (repl *BaseREPL) interpret(line string) bool {
	if repl.Interpreter == nil {
		return false
	}
	return repl.Interpreter.InterpretCommand(line)
}

// Input filter for REPL. Blocks ctrl-z.
func filterReplInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
