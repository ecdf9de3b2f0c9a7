package docs

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/costbasis/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fenced code blocks with one of these info strings are executed by TestCodeBlocks.
const (
	bashSetup    = "bash setup"    // starts a new scenario in an empty folder
	bashRun      = "bash run"      // its output is checked by the next console check
	bashCheck    = "bash check"    // must succeed
	consoleCheck = "console check" // expected output of the previous bash run
)

// readmeTopics returns the topics listed in readme.md as "* topic: description" items.
func readmeTopics(t *testing.T) []string {
	t.Helper()
	content, err := os.ReadFile(index + ".md")
	require.NoError(t, err)

	var topics []string
	root := goldmark.DefaultParser().Parse(text.NewReader(content))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if item, ok := n.(*ast.ListItem); ok && entering {
			seg := item.FirstChild().Lines().At(0)
			line := seg.Value(content)
			if name, _, ok := strings.Cut(string(line), ":"); ok {
				topics = append(topics, strings.TrimSpace(name))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return topics
}

func TestTopics(t *testing.T) {
	listed := readmeTopics(t)
	require.NotEmpty(t, listed)

	for _, topic := range listed {
		_, err := GetTopic(topic)
		assert.NoError(t, err, "topic %q is listed in readme.md", topic)
	}

	all, err := GetAllTopics()
	require.NoError(t, err)
	for _, topic := range all {
		assert.True(t, slices.Contains(listed, topic), "topic %q is not listed in readme.md", topic)
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetAllTopics()
	require.NoError(t, err)
	assert.NotContains(t, all, index)

	doc, err := GetTopics("*")
	require.NoError(t, err)
	for _, topic := range all {
		content, err := GetTopic(topic)
		require.NoError(t, err)
		assert.Contains(t, doc, content)
	}

	_, err = GetTopics("report", "nope")
	assert.Error(t, err)
}

func TestCodeBlocks(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and runs the cb command")
	}
	files, err := filepath.Glob("*.md")
	require.NoError(t, err)
	files = append(files, "../README.md")

	cb := buildCb(t)
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			blocks := parseBlocks(t, file)
			if len(blocks) == 0 {
				return
			}
			r := blockRunner{
				env: append(os.Environ(),
					fmt.Sprintf("PATH=%s%c%s", filepath.Dir(cb), os.PathListSeparator, os.Getenv("PATH")),
					// freeze today, so that short and long term lots are stable.
					date.EnvTestingNow+"=2025-10-17 12:00:00",
				),
				dir: t.TempDir(),
			}
			for _, block := range blocks {
				r.run(t, block)
			}
		})
	}
}

// block is an executable fenced code block.
type block struct {
	kind    string
	content string
	file    string
	line    int
}

// buildCb builds the cb executable in a temporary folder.
func buildCb(t *testing.T) string {
	t.Helper()
	output := filepath.Join(t.TempDir(), "cb")
	if out, err := exec.Command("go", "build", "-o", output, "../cb/").CombinedOutput(); err != nil {
		t.Fatalf("failed to build cb command: %v\n%s", err, out)
	}
	return output
}

// parseBlocks returns the executable blocks of a markdown file, in order.
func parseBlocks(t *testing.T, file string) []block {
	t.Helper()
	content, err := os.ReadFile(file)
	require.NoError(t, err)

	var blocks []block
	root := goldmark.DefaultParser().Parse(text.NewReader(content))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(fcb.Info.Segment.Value(content))
		switch kind {
		case bashSetup, bashRun, bashCheck, consoleCheck:
		default:
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(content))
		}
		blocks = append(blocks, block{
			kind:    kind,
			content: b.String(),
			file:    file,
			line:    bytes.Count(content[:fcb.Info.Segment.Start], []byte{'\n'}) + 1,
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// blockRunner runs the blocks of a file in sequence.
type blockRunner struct {
	env    []string
	dir    string // working directory of the current scenario
	output string // output of the last bash run
}

func (r *blockRunner) run(t *testing.T, b block) {
	t.Helper()
	if b.kind == consoleCheck {
		want := strings.TrimSpace(b.content)
		// tabs are hard to write in markdown, they are compared as 8 spaces.
		got := strings.ReplaceAll(strings.TrimSpace(r.output), "\t", "        ")
		if want != got {
			t.Errorf("%s:%d: output mismatch:\ngot:\n\n%s\n\nwant:\n\n%s\n\ngot :%q\nwant:%q\n", b.file, b.line, got, want, got, want)
		}
		return
	}
	if b.kind == bashSetup {
		r.dir = t.TempDir()
	}

	cmd := exec.Command("bash", "-c", "set -e; "+b.content)
	cmd.Dir = r.dir
	cmd.Env = r.env
	output, err := cmd.CombinedOutput()
	if b.kind == bashRun {
		r.output = string(output)
	}
	if err == nil {
		return
	}
	if b.kind == bashCheck {
		t.Errorf("%s:%d: %s failed: %v with output:\n%s\n", b.file, b.line, b.kind, err, output)
		return
	}
	t.Fatalf("%s:%d: %s failed: %v with output:\n%s\n", b.file, b.line, b.kind, err, output)
}
