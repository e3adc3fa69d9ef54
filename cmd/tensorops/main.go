// Package main provides the tensorops CLI.
//
// Usage:
//
//	tensorops version
//	tensorops inspect <file.safetensors>
//	tensorops conformance [-backend=all|cpu-f16|cpu-f32|cpu-f64|autodiff] [-env] [-v=1]
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/janpfeifer/must"
	"github.com/x448/float16"
	"k8s.io/klog/v2"

	"github.com/born-ml/tensorops/internal/autodiff"
	"github.com/born-ml/tensorops/internal/backend/cpu"
	"github.com/born-ml/tensorops/internal/conformance"
	"github.com/born-ml/tensorops/internal/serialization"
	"github.com/born-ml/tensorops/internal/tensor"
)

const version = "v0.1.0-dev"

var (
	flagBackend = flag.String("backend", "all",
		"Backend to check: all or one of "+strings.Join(backendNames(), ", ")+".")
	flagEnv = flag.Bool("env", false,
		"Configure the CPU backends from the TENSOROPS_WORKERS, TENSOROPS_SEED and TENSOROPS_ASYNC_READS environment variables.")
)

// runner executes the conformance suite against one backend configuration.
type runner struct {
	name string
	run  func(opts ...cpu.Option) conformance.Report
}

var runners = []runner{
	{"cpu-f16", func(opts ...cpu.Option) conformance.Report {
		return conformance.Run(tensor.Backend[float16.Float16, int64](cpu.New[float16.Float16, int64](opts...)))
	}},
	{"cpu-f32", func(opts ...cpu.Option) conformance.Report {
		return conformance.Run(tensor.Backend[float32, int64](cpu.New[float32, int64](opts...)))
	}},
	{"cpu-f64", func(opts ...cpu.Option) conformance.Report {
		return conformance.Run(tensor.Backend[float64, int32](cpu.New[float64, int32](opts...)))
	}},
	{"autodiff", func(opts ...cpu.Option) conformance.Report {
		b := autodiff.New[float32, int64](cpu.New[float32, int64](opts...))
		b.Tape().StartRecording()
		report := conformance.Run(tensor.Backend[float32, int64](b))
		klog.V(1).Infof("autodiff tape recorded %d operations", b.Tape().Len())
		return report
	}},
}

func backendNames() []string {
	names := make([]string, len(runners))
	for i, r := range runners {
		names[i] = r.name
	}
	return names
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	switch args[0] {
	case "version":
		fmt.Printf("tensorops %s\n", version)
	case "conformance":
		// Flags may also follow the subcommand.
		must.M(flag.CommandLine.Parse(args[1:]))
		if !runConformance() {
			os.Exit(1)
		}
	case "inspect":
		if len(args) != 2 {
			klog.Errorf("Usage: tensorops inspect <file.safetensors>")
			os.Exit(2)
		}
		f, err := serialization.Load(args[1])
		if err != nil {
			klog.Errorf("Failed to load %s: %+v", args[1], err)
			os.Exit(1)
		}
		fmt.Println(renderFile(args[1], f))
	default:
		klog.Errorf("Unknown command %q. See 'tensorops -help'.", args[0])
		os.Exit(2)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "tensorops %s - backend tensor-operation contract\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version       Show version")
	fmt.Fprintln(out, "  conformance   Run the conformance suite against the built-in backends")
	fmt.Fprintln(out, "  inspect       List the tensors stored in a SafeTensors file")
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}

func runConformance() bool {
	var opts []cpu.Option
	if *flagEnv {
		opts = append(opts, cpu.WithConfig(must.M1(cpu.ConfigFromEnv())))
	}

	selected := runners
	if *flagBackend != "all" {
		idx := slices.IndexFunc(runners, func(r runner) bool { return r.name == *flagBackend })
		if idx < 0 {
			klog.Errorf("Unknown backend %q, want all or one of %s", *flagBackend, strings.Join(backendNames(), ", "))
			os.Exit(2)
		}
		selected = runners[idx : idx+1]
	}

	reports := make([]conformance.Report, 0, len(selected))
	for _, r := range selected {
		klog.V(1).Infof("running conformance suite on %s", r.name)
		reports = append(reports, r.run(opts...))
	}
	fmt.Println(renderReports(reports))

	passed := true
	for _, report := range reports {
		passed = passed && report.Passed()
	}
	return passed
}
