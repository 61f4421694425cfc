package cli

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/npillmayer/mlang"
	"github.com/npillmayer/mlang/grammar"
	"github.com/npillmayer/mlang/sframe"
	"github.com/npillmayer/mlang/typecheck"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is the version of the mlang tool.
const Version = "0.1 experimental"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mlang",
	Short: "Front end for the M matrix language",
	Long: `Welcome to mlang V0.1 (experimental)

mlang parses and type checks programs written in M, a small language for
scalars, vectors and matrices.

mlang is able to run in interactive mode or check one or more files in
batch-mode.  If run in interactive mode, it will prompt for statements in a
terminal REPL and type check them incrementally.

`,
	SilenceUsage: true,
	RunE:         runMlangCmd,
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Parse and type check source files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := checkFiles(cmd.OutOrStdout(), args, configuredMode())
		if err == nil && mlang.Configuration != nil && mlang.Configuration.Bool("interactive") {
			return startREPL(configuredMode(), args...)
		}
		return err
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verify, _ := cmd.Flags().GetBool("verify")
		return parseFile(cmd.OutOrStdout(), args[0], verify)
	},
}

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the tokens of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listTokens(cmd.OutOrStdout(), args[0])
	},
}

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "Print the operator table and builtin functions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, operatorTable().Render())
		fmt.Fprintln(out, builtinTable().Render())
	},
}

// errCheckFailed is returned by batch commands if the input contains errors.
// The diagnostics have already been printed.
var errCheckFailed = errors.New("input contains errors")

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called exactly once by main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errCheckFailed) {
			mlang.Exit(1)
		}
		mlang.Exit(2)
	}
	mlang.Exit(0)
}

func init() {
	cobra.OnInitialize(loadConfig)
	globalFlags(rootCmd.PersistentFlags())
	parseCmd.Flags().Bool("verify", false, "Cross-check the input with the Earley recognizer")
	rootCmd.AddCommand(checkCmd, parseCmd, tokensCmd, opsCmd)
}

// globalFlags defines persistent flags which will be global for the application.
// They are merged into the configuration by loadConfig.
func globalFlags(flags *pflag.FlagSet) {
	flags.BoolP("interactive", "i", false, "Force run in interactive mode")
	flags.String("logfile", "stderr", "URL of log output location")
	flags.String("config", "", "Configuration file (YAML or TOML)")
	flags.Bool("collect", false, "Collect all type errors instead of stopping at the first one")
}

func runMlangCmd(cmd *cobra.Command, args []string) error {
	tracing.Infof("mlang interpreter called")
	return startREPL(configuredMode())
}

// configuredMode returns the type checker mode selected by configuration.
func configuredMode() typecheck.Mode {
	if mlang.Configuration != nil && mlang.Configuration.Bool("collect") {
		return typecheck.Collect
	}
	return typecheck.FailFast
}

// --- Batch commands --------------------------------------------------------

// checkFiles parses and type checks a list of files. Each file is checked
// within a fresh environment. Diagnostics of all files are printed as a
// table.
func checkFiles(out io.Writer, files []string, mode typecheck.Mode) error {
	var all []fileError
	for _, fname := range files {
		tracer().P("file", fname).Infof("checking in %s mode", mode)
		errs, err := checkFile(fname, mode)
		if err != nil {
			return err
		}
		for _, e := range errs {
			all = append(all, fileError{file: fname, err: e})
		}
	}
	if len(all) == 0 {
		fmt.Fprintf(out, "%d file(s) checked, no errors\n", len(files))
		return nil
	}
	fmt.Fprintln(out, diagnosticsTable(all).Render())
	return errCheckFailed
}

// checkFile parses and type checks a single file. Errors of the front end
// are returned as diagnostics, I/O errors as error.
func checkFile(fname string, mode typecheck.Mode) (mlang.ErrorList, error) {
	src, err := ioutil.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	prog, err := grammar.ParseString(string(src))
	if err != nil {
		return asDiagnostics(err), nil
	}
	_, errs := typecheck.Check(prog, sframe.NewScopeFrameTree(), mode)
	return errs, nil
}

// asDiagnostics converts a front end error into a list of diagnostics.
func asDiagnostics(err error) mlang.ErrorList {
	var list mlang.ErrorList
	if errors.As(err, &list) {
		return list
	}
	var cerr *mlang.CompilerError
	if errors.As(err, &cerr) {
		return mlang.ErrorList{cerr}
	}
	return mlang.ErrorList{mlang.NewError("mlang", mlang.NoSpan, "%v", err)}
}

func parseFile(out io.Writer, fname string, verify bool) error {
	src, err := ioutil.ReadFile(fname)
	if err != nil {
		return err
	}
	prog, err := grammar.ParseString(string(src))
	if err != nil {
		fmt.Fprintln(out, diagnosticsTable(fileErrors(fname, asDiagnostics(err))).Render())
		return errCheckFailed
	}
	fmt.Fprintln(out, grammar.Sexpr(prog))
	if verify {
		scan, err := grammar.Tokenize(string(src))
		if err != nil {
			return err
		}
		accept, err := grammar.Recognize(scan)
		if err != nil {
			return err
		}
		if !accept {
			return fmt.Errorf("%s: recognizer rejects input accepted by parser", fname)
		}
		fmt.Fprintln(out, "verified: recognizer accepts input")
	}
	return nil
}

func listTokens(out io.Writer, fname string) error {
	src, err := ioutil.ReadFile(fname)
	if err != nil {
		return err
	}
	tokens, err := grammar.ScanAll(string(src))
	fmt.Fprintln(out, tokenTable(tokens).Render())
	if err != nil {
		fmt.Fprintln(out, diagnosticsTable(fileErrors(fname, asDiagnostics(err))).Render())
		return errCheckFailed
	}
	return nil
}

func fileErrors(fname string, errs mlang.ErrorList) []fileError {
	fe := make([]fileError, len(errs))
	for i, e := range errs {
		fe[i] = fileError{file: fname, err: e}
	}
	return fe
}
