package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/graph"
	"github.com/matzehuels/motifscan/pkg/observability"
)

const bowtieTSV = `# two triangles sharing C
A	B	E
B	C	E
C	A	E
C	D	E
D	E	E
E	C	E
`

// setup isolates the test from the user's cache and config and writes the
// bowtie network into a temp dir.
func setup(t *testing.T) (dir, network string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Cleanup(observability.Reset)

	network = filepath.Join(dir, "bowtie.tsv")
	if err := os.WriteFile(network, []byte(bowtieTSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, network
}

// run executes the CLI with args and returns what commands wrote to their
// output stream.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	want := []string{"find", "motif", "render", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestFindJSON(t *testing.T) {
	_, network := setup(t)

	out, err := run(t, "find", network, "0-1:E,1-2:E,2-0:E", "--name", "tri", "--links", "--format", "json")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	var occ graph.Occurrences
	if err := json.Unmarshal([]byte(out), &occ); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if occ.Count() != 2 || occ.Motif != "tri" || len(occ.Links) != 6 {
		t.Errorf("got %d instances of %q with %d links", occ.Count(), occ.Motif, len(occ.Links))
	}

	// The second run is served from the cache and must agree.
	again, err := run(t, "find", network, "0-1:E,1-2:E,2-0:E", "--name", "tri", "--links", "--format", "json")
	if err != nil {
		t.Fatalf("cached find: %v", err)
	}
	var cached graph.Occurrences
	if err := json.Unmarshal([]byte(again), &cached); err != nil {
		t.Fatal(err)
	}
	if cached.Count() != occ.Count() {
		t.Errorf("cached run found %d instances, want %d", cached.Count(), occ.Count())
	}
	entries, _ := os.ReadDir(os.Getenv("XDG_CACHE_HOME") + "/motifscan")
	if len(entries) == 0 {
		t.Error("find should populate the file cache")
	}
}

func TestFindTableAndFiles(t *testing.T) {
	dir, network := setup(t)
	out := captureStdout(t)
	instances := filepath.Join(dir, "tri.tsv")
	links := filepath.Join(dir, "links.tsv")

	_, err := run(t, "find", network, "0-1:E,1-2:E,2-0:E", "--no-cache", "-o", instances, "--links-output", links)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !strings.Contains(out.String(), "Found") || !strings.Contains(out.String(), instances) {
		t.Errorf("summary missing:\n%s", out.String())
	}

	data, err := os.ReadFile(instances)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# 2 instances") {
		t.Errorf("instances file:\n%s", data)
	}
	data, err = os.ReadFile(links)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 6 {
		t.Errorf("links file has %d lines, want 6", n)
	}
}

func TestFindLimit(t *testing.T) {
	_, network := setup(t)
	out := captureStdout(t)

	if _, err := run(t, "find", network, "0-1:E,1-2:E", "--limit", "2", "--no-cache"); err != nil {
		t.Fatalf("find: %v", err)
	}
	if !strings.Contains(out.String(), "incomplete") {
		t.Errorf("a limited search should warn about an incomplete result:\n%s", out.String())
	}
}

func TestFindErrors(t *testing.T) {
	dir, network := setup(t)
	motifFile := filepath.Join(dir, "tri.motif")
	if err := os.WriteFile(motifFile, []byte("0-1:E,1-2:E,2-0:E\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want errors.Code
	}{
		{"NoMotif", []string{"find", network}, errors.ErrCodeInvalidInput},
		{"BothMotifs", []string{"find", network, "0-1:E", "--motif", motifFile}, errors.ErrCodeInvalidInput},
		{"NegativeLimit", []string{"find", network, "0-1:E", "--limit", "-1"}, errors.ErrCodeInvalidInput},
		{"BadFormat", []string{"find", network, "0-1:E", "--format", "xml"}, errors.ErrCodeInvalidFormat},
		{"BadPattern", []string{"find", network, "0-0:E", "--no-cache"}, errors.ErrCodeInvalidMotif},
		{"MissingNetwork", []string{"find", filepath.Join(dir, "absent.tsv"), "0-1:E", "--no-cache"}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("find = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestMotifJSON(t *testing.T) {
	setup(t)

	out, err := run(t, "motif", "0-1:E,1-2:E,2-3:E,3-0:E", "--name", "square", "--json", "--automorphisms", "2")
	if err != nil {
		t.Fatalf("motif: %v", err)
	}
	var got struct {
		graph.Symmetry
		Automorphisms [][]int `json:"automorphisms"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.GroupOrder != 8 || strings.Join(got.Constraints, " ") != "0<1 0<2 0<3 1<3" {
		t.Errorf("square: order %d, constraints %v", got.GroupOrder, got.Constraints)
	}
	if len(got.Automorphisms) != 2 {
		t.Errorf("got %d automorphisms, want 2", len(got.Automorphisms))
	}
}

func TestMotifText(t *testing.T) {
	dir, _ := setup(t)
	path := filepath.Join(dir, "ffl.toml")
	content := "name = \"ffl\"\nedges = [\n  { a = 0, b = 1, type = \"reg\" },\n  { a = 1, b = 2, type = \"reg\" },\n  { a = 0, b = 2, type = \"reg\" },\n]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	out := captureStdout(t)

	if _, err := run(t, "motif", "--file", path, "--no-cache"); err != nil {
		t.Fatalf("motif: %v", err)
	}
	for _, want := range []string{"ffl", "group order", "6", "0<1 0<2 1<2"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	if _, err := run(t, "motif"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("motif without input = %v, want INVALID_INPUT", err)
	}
}

func TestRenderDOT(t *testing.T) {
	_, network := setup(t)

	out, err := run(t, "render", network, "0-1:E,1-2:E,2-0:E", "--format", "dot", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "graph G {") || strings.Count(out, "penwidth=3") != 6 {
		t.Errorf("unexpected DOT:\n%s", out)
	}

	plain, err := run(t, "render", network, "--format", "dot", "--no-cache")
	if err != nil {
		t.Fatalf("render network: %v", err)
	}
	if strings.Contains(plain, "penwidth=3") || strings.Contains(plain, "penwidth=2") {
		t.Errorf("a plain network should not be highlighted:\n%s", plain)
	}
}

func TestRenderFormat(t *testing.T) {
	tests := []struct {
		opts renderOpts
		want string
		ok   bool
	}{
		{renderOpts{}, "svg", true},
		{renderOpts{output: "out.PNG"}, "png", true},
		{renderOpts{output: "out.gv"}, "dot", true},
		{renderOpts{output: "out.svg", format: "dot"}, "dot", true},
		{renderOpts{output: "out.pdf"}, "", false},
	}
	for _, tt := range tests {
		got, err := tt.opts.resolveFormat()
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("resolveFormat(%+v) = %q, %v; want %q", tt.opts, got, err, tt.want)
		}
	}

	_, network := setup(t)
	if _, err := run(t, "render", network, "--only-motif", "--no-cache"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("--only-motif without a motif = %v, want INVALID_INPUT", err)
	}
}

func TestCacheCommands(t *testing.T) {
	dir, network := setup(t)
	store := filepath.Join(dir, "store")
	cfg := writeConfig(t, "[cache]\nbackend = \"file\"\ndir = \""+store+"\"\n")

	out, err := run(t, "--config", cfg, "cache", "path")
	if err != nil || strings.TrimSpace(out) != store {
		t.Fatalf("cache path = %q, %v; want %q", out, err, store)
	}

	if _, err := run(t, "--config", cfg, "find", network, "0-1:E", "--format", "json"); err != nil {
		t.Fatalf("find: %v", err)
	}
	printed := captureStdout(t)
	if _, err := run(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(printed.String(), "Cleared 1 cached entries") {
		t.Errorf("cache clear output:\n%s", printed.String())
	}

	if _, err := run(t, "--config", filepath.Join(dir, "missing.toml"), "cache", "path"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing --config = %v, want FILE_NOT_FOUND", err)
	}
}

func TestCompletion(t *testing.T) {
	t.Cleanup(observability.Reset)
	out, err := run(t, "completion", "bash")
	if err != nil || !strings.Contains(out, "motifscan") {
		t.Errorf("completion bash: err=%v, output mentions motifscan=%v", err, strings.Contains(out, "motifscan"))
	}
}
