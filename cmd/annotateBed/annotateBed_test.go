package main

import (
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/exp/slices"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestAnnotateBed(t *testing.T) {
	annotateBed("testdata/regions.bed", "testdata/exons.tsv", "testdata/per_base.bed", "testdata/out")
	if !slices.Equal(fileio.Read("testdata/out.tsv"), fileio.Read("testdata/expected.tsv")) {
		t.Error("problem with annotateBed")
	} else {
		err := os.Remove("testdata/out.tsv")
		exception.PanicOnErr(err)
	}
}

// TestAnnotateBedMissingFlags checks that leaving out any required flag
// prints the usage message and exits with code 1. Each case re-runs the test
// binary so the os.Exit inside log.Fatal can be observed from outside.
func TestAnnotateBedMissingFlags(t *testing.T) {
	if omit := os.Getenv("ANNOTATEBED_OMIT_FLAG"); omit != "" {
		args := []string{"annotateBed"}
		all := [][2]string{
			{"-i", "testdata/regions.bed"},
			{"-g", "testdata/exons.tsv"},
			{"-b", "testdata/per_base.bed"},
			{"-o", "testdata/out"},
		}
		for _, a := range all {
			if a[0] == omit {
				continue
			}
			args = append(args, a[0], a[1])
		}
		os.Args = args
		main()
		return
	}

	for _, omit := range []string{"-i", "-g", "-b", "-o"} {
		cmd := exec.Command(os.Args[0], "-test.run=TestAnnotateBedMissingFlags")
		cmd.Env = append(os.Environ(), "ANNOTATEBED_OMIT_FLAG="+omit)
		out, err := cmd.CombinedOutput()
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			t.Errorf("expected a non-zero exit when %s is omitted, got %v", omit, err)
			continue
		}
		if exitErr.ExitCode() != 1 {
			t.Errorf("expected exit code 1 when %s is omitted, got %d", omit, exitErr.ExitCode())
		}
		if !strings.Contains(string(out), "Usage:") {
			t.Errorf("expected a usage message when %s is omitted, got:\n%s", omit, out)
		}
		if !strings.Contains(string(out), "ERROR: Must have inputs for -i, -g, -b, and -o.") {
			t.Errorf("expected the missing input error when %s is omitted, got:\n%s", omit, out)
		}
	}
}
