package main

import (
	"fmt"
	"os"

	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/iltext"
	"github.com/splanck/viper-sub015/internal/source"
	"github.com/splanck/viper-sub015/internal/verify"
)

// loadModule reads path and parses it, printing every parse diagnostic and
// returning an error if parsing failed outright.
func loadModule(path string) (*il.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	mgr := source.NewManager()
	mgr.AddFile(path)

	result := iltext.ParseText(data, path, mgr)
	for _, d := range result.Diags {
		printDiag(d)
	}
	if !result.IsOk() {
		return nil, fmt.Errorf("%s failed to parse", path)
	}
	return result.Value, nil
}

// loadAndVerify loads path and runs the verifier, printing diagnostics
// (advisories included) and returning an error if any hard error fired.
func loadAndVerify(path string) (*il.Module, error) {
	m, err := loadModule(path)
	if err != nil {
		return nil, err
	}
	diags := verify.Verify(m)
	for _, d := range diags {
		printDiag(d)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s failed verification", path)
	}
	return m, nil
}

func printDiag(d *source.Diagnostic) {
	if d.Severity == source.SeverityError {
		fmt.Fprintf(os.Stderr, "%s %s\n", red(d.Phase+" "+d.Code+":"), d.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", yellow(d.Phase+" "+d.Code+":"), d.Message)
}
