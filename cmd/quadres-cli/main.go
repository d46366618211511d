// Package main provides the quadres-cli command line interface for solving
// quadratic congruences.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	quadres "github.com/BackendStack21/quadres-go"
	"github.com/BackendStack21/quadres-go/factor"
	"github.com/BackendStack21/quadres-go/solver"
	"github.com/BackendStack21/quadres-go/utils"
)

const (
	version = "1.0.0"
	appName = "quadres-cli"
)

// OutputFormat represents the output format for results
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// CLIConfig holds CLI configuration
type CLIConfig struct {
	OutputFormat OutputFormat
	OutputFile   string
	Verbose      bool
	Timing       bool
}

// SolveExport represents an exported solution set
type SolveExport struct {
	N     int64    `json:"n"`
	M     uint64   `json:"m"`
	Roots []uint64 `json:"roots"`
	Count int      `json:"count"`
}

// FactorExport represents an exported factorization
type FactorExport struct {
	M       uint64               `json:"m"`
	Factors []quadres.PrimePower `json:"factors"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, version)
		fmt.Printf("quadres library version %s\n", quadres.Version)
	case "solve":
		handleSolve(os.Args[2:])
	case "prime":
		handlePrime(os.Args[2:])
	case "primepower":
		handlePrimePower(os.Args[2:])
	case "factor":
		handleFactor(os.Args[2:])
	case "benchmark":
		handleBenchmark(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - Quadratic congruence solver

USAGE:
    %s <COMMAND> [OPTIONS]

COMMANDS:
    solve       Solve x² ≡ n (mod m) for an arbitrary positive modulus
    prime       Solve x² ≡ n (mod p) for a prime p
    primepower  Solve x² ≡ n (mod p^k) for a prime p
    factor      Show the prime-power factorization of a modulus
    benchmark   Run performance benchmarks
    version     Show version information
    help        Show this help message

OPTIONS:
    --output <file>       Output file (default: stdout)
    --format <json|text>  Output format (default: text)
    --timing              Show timing information
    --verbose             Verbose output

EXAMPLES:
    %s solve --n 1240 --m 289032
    %s prime --n 16 --p 101 --format json
    %s primepower --n 1 --p 2 --k 3
    %s factor --m 289032
    %s benchmark --iterations 1000
`, appName, appName, appName, appName, appName, appName, appName)
}

func handleSolve(args []string) {
	config := parseConfig(args)
	n := requireInt(args, "--n", "-n")
	m := requireInt(args, "--m", "-m")

	start := time.Now()
	roots, err := solver.Sqrtmod(n, m)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error solving congruence: %v\n", err)
		os.Exit(1)
	}
	if config.Timing {
		fmt.Fprintf(os.Stderr, "Solve took: %v\n", elapsed)
	}

	writeRoots(config, n, uint64(m), roots)
}

func handlePrime(args []string) {
	config := parseConfig(args)
	n := requireInt(args, "--n", "-n")
	p := requireInt(args, "--p", "-p")

	if config.Verbose && !factor.IsPrime(uint64(p)) {
		fmt.Fprintf(os.Stderr, "Warning: %d is not prime; results are unspecified\n", p)
	}

	start := time.Now()
	roots, err := solver.SqrtmodPrime(n, p)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error solving congruence: %v\n", err)
		os.Exit(1)
	}
	if config.Timing {
		fmt.Fprintf(os.Stderr, "Solve took: %v\n", elapsed)
	}

	writeRoots(config, n, uint64(p), roots)
}

func handlePrimePower(args []string) {
	config := parseConfig(args)
	n := requireInt(args, "--n", "-n")
	p := requireInt(args, "--p", "-p")
	k := requireInt(args, "--k", "-k")

	if config.Verbose && !factor.IsPrime(uint64(p)) {
		fmt.Fprintf(os.Stderr, "Warning: %d is not prime; results are unspecified\n", p)
	}

	start := time.Now()
	roots, err := solver.SqrtmodPrimePower(n, p, int(k))
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error solving congruence: %v\n", err)
		os.Exit(1)
	}
	if config.Timing {
		fmt.Fprintf(os.Stderr, "Solve took: %v\n", elapsed)
	}

	q := uint64(1)
	for i := int64(0); i < k; i++ {
		q *= uint64(p)
	}
	writeRoots(config, n, q, roots)
}

func handleFactor(args []string) {
	config := parseConfig(args)
	m := requireInt(args, "--m", "-m")
	if m < 1 {
		fmt.Fprintf(os.Stderr, "Error: modulus must be positive\n")
		os.Exit(1)
	}

	start := time.Now()
	factors := factor.Factor(uint64(m))
	elapsed := time.Since(start)

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Factorization took: %v\n", elapsed)
	}

	if config.OutputFormat == FormatJSON {
		export := FactorExport{M: uint64(m), Factors: factors}
		output, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling output: %v\n", err)
			os.Exit(1)
		}
		writeOutput(append(output, '\n'), config.OutputFile)
		return
	}

	var buf []byte
	buf = append(buf, fmt.Sprintf("%d =", m)...)
	for i, f := range factors {
		if i > 0 {
			buf = append(buf, " *"...)
		}
		if f.Exp == 1 {
			buf = append(buf, fmt.Sprintf(" %d", f.Prime)...)
		} else {
			buf = append(buf, fmt.Sprintf(" %d^%d", f.Prime, f.Exp)...)
		}
	}
	buf = append(buf, '\n')
	writeOutput(buf, config.OutputFile)
}

func handleBenchmark(args []string) {
	config := parseConfig(args)
	iterations := 1000
	if s := getArg(args, "--iterations", "-i"); s != "" {
		_, _ = fmt.Sscanf(s, "%d", &iterations)
	}
	if iterations < 1 {
		iterations = 1
	}

	fmt.Printf("quadres Benchmark Results\n")
	fmt.Printf("=========================\n")
	fmt.Printf("Iterations: %d\n\n", iterations)

	stream := utils.NewStream([]byte("quadres-benchmark"))

	var total time.Duration
	solved := 0
	for i := 0; i < iterations; i++ {
		m := int64(2 + stream.Uint64n(1<<32))
		r := stream.Uint64n(uint64(m))
		n := int64(utils.MulMod(r, r, uint64(m)))

		start := time.Now()
		roots, err := solver.Sqrtmod(n, m)
		total += time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Solve error: %v\n", err)
			os.Exit(1)
		}
		if len(roots) > 0 {
			solved++
		}
	}
	fmt.Printf("  Sqrtmod:  %v (avg over random 32-bit moduli)\n", total/time.Duration(iterations))
	fmt.Printf("  Solvable: %d/%d\n", solved, iterations)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Benchmark complete\n")
	}
}

// ============================================================================
// Utility Functions
// ============================================================================

func parseConfig(args []string) CLIConfig {
	config := CLIConfig{
		OutputFormat: FormatText,
	}

	format := getArg(args, "--format", "-f")
	switch format {
	case "json":
		config.OutputFormat = FormatJSON
	case "text", "":
		// Default
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid format '%s'. Must be one of: json, text\n", format)
		os.Exit(1)
	}

	config.OutputFile = getArg(args, "--output", "-o")
	config.Verbose = hasFlag(args, "--verbose", "-V")
	config.Timing = hasFlag(args, "--timing", "-t")

	return config
}

func getArg(args []string, long, short string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == long || args[i] == short {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, long, short string) bool {
	for _, arg := range args {
		if arg == long || arg == short {
			return true
		}
	}
	return false
}

func requireInt(args []string, long, short string) int64 {
	s := getArg(args, long, short)
	if s == "" {
		fmt.Fprintf(os.Stderr, "Error: %s is required\n", long)
		os.Exit(1)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid integer for %s: %v\n", long, err)
		os.Exit(1)
	}
	return v
}

func writeRoots(config CLIConfig, n int64, m uint64, roots []uint64) {
	// Roots come back unsorted; sort for stable presentation only.
	sorted := append([]uint64(nil), roots...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if config.OutputFormat == FormatJSON {
		export := SolveExport{N: n, M: m, Roots: sorted, Count: len(sorted)}
		output, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling output: %v\n", err)
			os.Exit(1)
		}
		writeOutput(append(output, '\n'), config.OutputFile)
		return
	}

	var buf []byte
	if len(sorted) == 0 {
		buf = append(buf, fmt.Sprintf("x² ≡ %d (mod %d) has no solution\n", n, m)...)
	} else {
		buf = append(buf, fmt.Sprintf("x² ≡ %d (mod %d):", n, m)...)
		for _, r := range sorted {
			buf = append(buf, fmt.Sprintf(" %d", r)...)
		}
		buf = append(buf, '\n')
	}
	writeOutput(buf, config.OutputFile)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "%d solution(s)\n", len(sorted))
	}
}

func writeOutput(data []byte, file string) {
	if file != "" {
		if err := os.WriteFile(file, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Print(string(data))
}
