package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCommands(t *testing.T) {
	cases := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"gibbs", []string{"gibbs", "--r1=-294.32,4265.1,5986.7", "--r2=-1365.5,3637.6,6346.8", "--r3=-2940.3,2473.7,6555.8"}, 0},
		{"elements", []string{"elements", "--r=-6045,-3490,2500", "--v=-3.457,6.618,2.533"}, 0},
		{"sidereal", []string{"sidereal", "--date", "2004-03-03", "--time", "04:30:00", "--lon", "139.8"}, 0},
		{"batch", []string{"batch", "--file", filepath.Join("testdata", "observations.txt"), "--workers", "2"}, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			runGoldenTest(t, filepath.Join("testdata", c.name+".golden"), func() ([]byte, int) {
				var stdout, stderr bytes.Buffer
				code := run(context.Background(), c.args, &stdout, &stderr)
				if code != c.wantCode {
					t.Errorf("exit code %d, want %d; stderr:\n%s", code, c.wantCode, stderr.String())
				}
				return stdout.Bytes(), code
			})
		})
	}
}

// runGoldenTest compares the output of runFunc with the golden file at
// expectedPath. A missing golden file is created and the test fails.
func runGoldenTest(t *testing.T, expectedPath string, runFunc func() ([]byte, int)) {
	t.Helper()

	got, _ := runFunc()

	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		if err := os.WriteFile(expectedPath, got, 0o644); err != nil {
			t.Fatalf("failed to write baseline: %v", err)
		}
		t.Fatalf("baseline %s did not exist, created one", expectedPath)
	}

	want, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("failed to read baseline: %v", err)
	}
	if !bytes.Equal(want, got) {
		t.Fatalf("output differs from %s\n--- got ---\n%s--- want ---\n%s", expectedPath, got, want)
	}
}

func TestGibbsNotCoplanarShowsHint(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"gibbs", "--r1", "7000,0,0", "--r2", "0,7000,0", "--r3", "0,0,7000"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected stdout: %q", stdout.String())
	}

	errOut := stderr.String()
	if !strings.Contains(errOut, "error: gibbs: the 3 vectors aren't coplanar") {
		t.Errorf("stderr missing error message:\n%s", errOut)
	}
	if n := strings.Count(errOut, "Try values for vectors that lie in the same plane."); n != 1 {
		t.Errorf("hint shown %d times, want once:\n%s", n, errOut)
	}
}

func TestGibbsFailuresShowHint(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"collinear", []string{"gibbs", "--r1", "7000,0,0", "--r2", "0,7000,0", "--r3", "0,8000,0"}, "r2 and r3 are collinear"},
		{"batch", []string{"batch", "--file", filepath.Join("testdata", "observations.txt")}, "1 of 2 triples failed"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), c.args, &stdout, &stderr); code != 1 {
				t.Fatalf("exit code %d, want 1", code)
			}
			errOut := stderr.String()
			if !strings.Contains(errOut, c.want) {
				t.Errorf("stderr missing %q:\n%s", c.want, errOut)
			}
			if !strings.HasSuffix(errOut, "Try values for vectors that lie in the same plane.\n") {
				t.Errorf("stderr does not end with the hint:\n%s", errOut)
			}
		})
	}
}

func TestHintForOtherErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"sidereal", "--date", "1899-12-31"}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if strings.Contains(stderr.String(), "Try values") {
		t.Errorf("sidereal error shows the Gibbs hint:\n%s", stderr.String())
	}
}

func TestGibbsShowNDS(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"gibbs", "--nds", "--r1=-294.32,4265.1,5986.7", "--r2=-1365.5,3637.6,6346.8", "--r3=-2940.3,2473.7,6555.8"}
	if code := run(context.Background(), args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d; stderr:\n%s", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"N = [", "(km^3)", "D = [", "S = [", "v2 = [-6.217 -4.012 1.599] (km/s)", "true anomaly: 49.93 deg"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSiderealErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"year out of range", []string{"sidereal", "--date", "1899-12-31"}, "year 1899 outside 1900-2100"},
		{"bad date", []string{"sidereal", "--date", "2004/03/03"}, "is not YYYY-MM-DD"},
		{"bad time", []string{"sidereal", "--date", "2004-03-03", "--time", "25:00"}, "hour 25 outside 0-23"},
		{"missing date", []string{"sidereal"}, `required flag(s) "date" not set`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), c.args, &stdout, &stderr); code != 1 {
				t.Fatalf("exit code %d, want 1", code)
			}
			if !strings.Contains(stderr.String(), c.want) {
				t.Errorf("stderr %q does not contain %q", stderr.String(), c.want)
			}
		})
	}
}

func TestElementsDomainError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"elements", "--r", "7000,0,0", "--v", "0,7.546049108166282,0"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "orbit: domain error") {
		t.Errorf("stderr missing domain error:\n%s", stderr.String())
	}
}

func TestMetricsAndTraceFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"--metrics", "--trace", "sidereal", "--date", "2004-03-03", "--time", "04:30", "--lon", "400"}
	if code := run(context.Background(), args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d; stderr:\n%s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), "Local sidereal time: 268.79 deg") {
		t.Errorf("unexpected stdout:\n%s", stdout.String())
	}
	errOut := stderr.String()
	if !strings.Contains(errOut, `orbitcalc_computations_total{operation="sidereal",outcome="ok"} 1`) {
		t.Errorf("metrics dump missing:\n%s", errOut)
	}
	if !strings.Contains(errOut, `"Name": "orbitcalc.sidereal"`) {
		t.Errorf("span missing:\n%s", errOut)
	}
}

func TestJSONLogging(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"--log-level", "info", "--log-format", "json", "elements", "--r=-6045,-3490,2500", "--v=-3.457,6.618,2.533"}
	if code := run(context.Background(), args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d; stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), `"msg":"computation done"`) || !strings.Contains(stderr.String(), `"operation":"elements"`) {
		t.Errorf("json log missing:\n%s", stderr.String())
	}
}
