// Command serialcheck wires a program (or an already-built Network
// System) through translation, Petri reachability, and decision output,
// mirroring original_source/src/main.rs's wiring order: a .ser file is
// parsed and translated via expr/ns, a .json file is loaded directly as
// an NS, and either path is driven through petri/reachability/decision
// to a serializability verdict. This binary itself is out of core scope
// per spec.md §1 (CLI argument parsing and file discovery are named
// external collaborators); it exists to demonstrate the pipeline
// end-to-end, not to add pipeline logic.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/serialcheck/decision"
	"github.com/katalvlaran/serialcheck/expr"
	"github.com/katalvlaran/serialcheck/internal/config"
	"github.com/katalvlaran/serialcheck/internal/obslog"
	"github.com/katalvlaran/serialcheck/ns"
	"github.com/katalvlaran/serialcheck/petri"
	"github.com/katalvlaran/serialcheck/presburger"
	"github.com/katalvlaran/serialcheck/reachability"
)

// exit codes, per spec.md §6 ("Exit codes (of the surrounding tool, not
// the core)").
const (
	exitDecisionProduced   = 0
	exitInputError         = 2
	exitCheckerUnavailable = 3
	exitTimeout            = 124
)

// errCheckerUnavailable marks a CheckerFunc failure caused by the
// external binary itself being missing, distinct from a disjunct it
// ran but could not parse — main maps only this one to exit code 3.
var errCheckerUnavailable = errors.New("serialcheck: external reachability checker is not installed or not runnable")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("serialcheck", flag.ContinueOnError)
	programPath := fs.String("program", "", "path to a .ser program source file")
	nsPath := fs.String("ns", "", "path to a Network System JSON file (alternative to -program)")
	configPath := fs.String("config", "", "path to a TOML config file (optional)")
	decisionPath := fs.String("decision", "", "where to write the decision JSON (default: <out>/decision.json)")
	if err := fs.Parse(args); err != nil {
		return exitInputError
	}
	if (*programPath == "") == (*nsPath == "") {
		fmt.Fprintln(os.Stderr, "serialcheck: exactly one of -program or -ns must be given")
		return exitInputError
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "serialcheck: loading config: %s\n", err)
		return exitInputError
	}
	logger := obslog.New(os.Stderr, obslog.ParseLevel(cfg.LogLevel), cfg.LogPretty)

	runID := uuid.New().String()
	outDir := filepath.Join(cfg.OutputRoot, runID)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "serialcheck: creating output directory: %s\n", err)
		return exitInputError
	}

	n, err := loadNS(*programPath, *nsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "serialcheck: %s\n", err)
		return exitInputError
	}

	d, err := analyze(n, outDir, cfg, logger)
	if err != nil {
		if errors.Is(err, errCheckerUnavailable) {
			fmt.Fprintf(os.Stderr, "serialcheck: %s\n", err)
			fmt.Fprintf(os.Stderr, "generated files are under %s for manual inspection\n", outDir)
			return exitCheckerUnavailable
		}
		fmt.Fprintf(os.Stderr, "serialcheck: %s\n", err)
		return exitInputError
	}

	path := *decisionPath
	if path == "" {
		path = filepath.Join(outDir, "decision.json")
	}
	if err := d.Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "serialcheck: saving decision: %s\n", err)
		return exitInputError
	}
	fmt.Println(path)

	if d.Timeout != nil {
		return exitTimeout
	}
	return exitDecisionProduced
}

// loadNS resolves exactly one of a .ser program path or an NS JSON path
// into the concrete instantiation of NS this binary drives: programs
// parse to a single sentinel request type (ns.ExprRequest) via
// expr.Parse/ns.FromExpr, matching main.rs's ".ser extension" branch.
func loadNS(programPath, nsPath string) (*ns.ExprNS, error) {
	if programPath != "" {
		source, err := os.ReadFile(programPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", programPath, err)
		}
		table := expr.NewTable()
		term, err := expr.Parse(string(source), table)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", programPath, err)
		}
		n, _, err := ns.FromExpr(table, term)
		if err != nil {
			return nil, fmt.Errorf("translating %s to a Network System: %w", programPath, err)
		}
		return n, nil
	}

	data, err := os.ReadFile(nsPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", nsPath, err)
	}
	var n ns.ExprNS
	if err := n.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("parsing %s as a Network System: %w", nsPath, err)
	}
	return &n, nil
}

// analyze drives n through NS->Petri translation, the serialization
// target, reachability.Check, and decision.FromPetriDecision.
func analyze(n *ns.ExprNS, outDir string, cfg config.Config, logger zerolog.Logger) (decision.NSDecision[string, string, ns.ExprRequest, int64], error) {
	pn := petri.FromNS[string, string, ns.ExprRequest, int64](n)

	serialized, err := ns.SerializedAutomaton[string, string, ns.ExprRequest, int64](n)
	if err != nil {
		return decision.NSDecision[string, string, ns.ExprRequest, int64]{}, fmt.Errorf("building serialization target: %w", err)
	}
	target := presburger.MapLabels(serialized.EnsurePresburger(), func(rp ns.ResponsePair[ns.ExprRequest, int64]) petri.State[string, string, ns.ExprRequest, int64] {
		return petri.Response[string, string, ns.ExprRequest, int64](rp.Req, rp.Resp)
	})

	pd, err := reachability.Check[petri.State[string, string, ns.ExprRequest, int64]](
		pn,
		nil,
		target,
		outDir,
		smptChecker(cfg.CheckerPrefix),
		cfg.Timeout(),
		cfg.StrictProofParsing,
		logger,
	)
	if err != nil {
		return decision.NSDecision[string, string, ns.ExprRequest, int64]{}, fmt.Errorf("deciding reachability: %w", err)
	}

	d, err := decision.FromPetriDecision[string, string, ns.ExprRequest, int64](pd, pn.GetPlaces(), n.GetGlobalStates(), logger)
	if err != nil {
		return decision.NSDecision[string, string, ns.ExprRequest, int64]{}, fmt.Errorf("lifting decision: %w", err)
	}
	return d, nil
}

// smptChecker shells out to the SMPT reachability checker the way
// original_source/src/smpt.rs's run_smpt does: a wrapper script at
// <prefix>/smpt_wrapper.sh if present, else the globally installed
// "python3 -m smpt" module, parsing TRUE/FALSE out of stdout. The
// witness firing sequence SMPT prints for a reachable marking is in a
// tool-specific text format this module does not reproduce (spec.md §1
// treats the checker itself as a black box); Trace is left empty and
// convertPetriTrace's caller degrades gracefully, same as a checker that
// answered without a trace at all.
func smptChecker(prefix string) reachability.CheckerFunc {
	return func(ctx context.Context, netFile, xmlFile string, timeout time.Duration) (reachability.CheckerResult, error) {
		bin, args := smptCommand(prefix, netFile, xmlFile)

		cmd := exec.CommandContext(ctx, bin, args...)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		start := time.Now()
		err := cmd.Run()
		elapsedMS := int(time.Since(start).Milliseconds())

		if ctx.Err() == context.DeadlineExceeded {
			return reachability.CheckerResult{}, context.DeadlineExceeded
		}
		if err != nil {
			var execErr *exec.Error
			if errors.As(err, &execErr) {
				return reachability.CheckerResult{}, fmt.Errorf("%w: %s", errCheckerUnavailable, execErr)
			}
			return reachability.CheckerResult{}, fmt.Errorf("running %s: %w (stderr: %s)", bin, err, stderr.String())
		}

		out := stdout.String()
		method := extractMethod(out)
		switch {
		case strings.Contains(out, "TRUE"):
			return reachability.CheckerResult{Reachable: true, ExecutionTimeMS: &elapsedMS, MethodUsed: method}, nil
		case strings.Contains(out, "FALSE"):
			return reachability.CheckerResult{Reachable: false, Certificate: out, ExecutionTimeMS: &elapsedMS, MethodUsed: method}, nil
		default:
			return reachability.CheckerResult{}, fmt.Errorf("could not parse checker output: %s (stderr: %s)", out, stderr.String())
		}
	}
}

func smptCommand(prefix, netFile, xmlFile string) (string, []string) {
	commonArgs := []string{"-n", netFile, "--reachability-xml", xmlFile, "--show-time", "--methods", "BMC,INDUCTION,PDR"}
	if prefix != "" {
		wrapper := filepath.Join(prefix, "smpt_wrapper.sh")
		if _, err := os.Stat(wrapper); err == nil {
			return wrapper, commonArgs
		}
	}
	return "python3", append([]string{"-m", "smpt"}, commonArgs...)
}

// extractMethod mirrors smpt.rs's extract_method_used: the first of
// "Method: <name>" or a bare BMC/INDUCTION/PDR token found in the
// checker's stdout.
func extractMethod(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if idx := strings.Index(line, "Method:"); idx >= 0 {
			return strings.TrimSpace(line[idx+len("Method:"):])
		}
		for _, name := range []string{"BMC", "INDUCTION", "PDR"} {
			if strings.Contains(line, name) {
				return name
			}
		}
	}
	return ""
}
