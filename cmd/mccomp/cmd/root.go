package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/minicc/internal/compiler"
	"github.com/cwbudde/minicc/internal/diagnostics"
	"github.com/cwbudde/minicc/internal/irgen"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var outputFile string

var rootCmd = &cobra.Command{
	Use:   "mccomp <source-file>",
	Short: "Mini-C to LLVM IR compiler",
	Long: `mccomp compiles a single Mini-C source file to textual LLVM IR.

Mini-C is a small, strictly typed C subset: int, float and bool scalars,
fixed-size arrays, functions and externs, structured control flow. mccomp
runs the source through lexing, parsing, semantic analysis and IR
emission, writing the result to output.ll.`,
	Args:    cobra.ExactArgs(1),
	Version: Version,
	RunE:    runCompile,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "narrate each pipeline stage to stderr")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "output.ll", "output file for the emitted IR")
}

// runCompile reads the source file, runs it through the pipeline, and
// writes the emitted IR or reports the first diagnostic — exit 1 for a
// user-facing compile error, exit 2 for an internal invariant violation (an
// emitter panic, which should never happen once semantic analysis has
// accepted the program).
func runCompile(cmd *cobra.Command, args []string) error {
	filename := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(2)
		}
	}()

	mod, errs := compileWithMode(content, filename, verbose)
	if len(errs) > 0 {
		fmt.Fprint(os.Stderr, diagnostics.FormatErrors(errs, true))
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}

	if err := os.WriteFile(outputFile, []byte(mod.String()), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %s\n", outputFile)
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outputFile)
	}
	return nil
}

func compileWithMode(content []byte, filename string, verbose bool) (*irgen.Module, []*diagnostics.CompilerError) {
	if verbose {
		return compiler.CompileVerbose(content, filename, os.Stderr)
	}
	return compiler.Compile(content, filename)
}
