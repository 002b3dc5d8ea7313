package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/consilium-ai/consilium/pkg/llm"
)

const (
	maxReadFiles       = 6
	maxFileChars       = 15000
	truncationNoticeFn = "\n...[truncated]"
)

var readFileLineRe = regexp.MustCompile(`(?m)^READ_FILE:\s*(.+)$`)

// Think runs the two-pass file-request loop. Pass 1 asks the
// model for a final answer or READ_FILE lines against a cached repository
// snapshot; if any are requested, Pass 2 re-asks with the files' contents
// appended and no further requests allowed.
func (a *Agent) Think(ctx context.Context, task string) string {
	snapshot := a.repoSnapshot(ctx)

	pass1 := a.call(ctx, []llm.Message{
		{Role: "system", Content: a.System},
		{Role: "user", Content: fmt.Sprintf("Repository snapshot:\n%s\n\nTask:\n%s", snapshot, task)},
	})

	paths := extractReadFilePaths(pass1)
	if len(paths) == 0 {
		return pass1
	}

	files := a.readFiles(ctx, paths)

	pass2 := a.call(ctx, []llm.Message{
		{Role: "system", Content: a.System},
		{Role: "user", Content: fmt.Sprintf(
			"Repository snapshot:\n%s\n\nTask:\n%s\n\nYour first pass:\n%s\n\nRequested files:\n%s\n\nProvide the FINAL answer; do not request more files.",
			snapshot, task, pass1, files,
		)},
	})

	return pass2
}

// repoSnapshot builds (once, lazily) a cached stringified list_dir(".")
// snapshot shared by every Think call this agent makes.
func (a *Agent) repoSnapshot(ctx context.Context) string {
	a.snapshotOnce.Do(func() {
		if a.tools == nil {
			a.snapshot = ""
			return
		}
		entries, err := a.tools.ListDir(ctx, ".")
		if err != nil {
			a.snapshotErr = err
			a.snapshot = fmt.Sprintf("(snapshot unavailable: %v)", err)
			return
		}
		var b strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&b, "%s\t%s\n", e.Type, e.Name)
		}
		a.snapshot = b.String()
	})
	return a.snapshot
}

// extractReadFilePaths parses READ_FILE: <path> lines, deduping while
// preserving order and capping at maxReadFiles.
func extractReadFilePaths(text string) []string {
	matches := readFileLineRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var paths []string
	for _, m := range matches {
		p := strings.TrimSpace(m[1])
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
		if len(paths) == maxReadFiles {
			break
		}
	}
	return paths
}

// readFiles reads each path (capped at maxFileChars with a truncation
// marker) and renders them as a single block for the Pass 2 prompt.
func (a *Agent) readFiles(ctx context.Context, paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		content, err := a.tools.ReadFile(ctx, p)
		if err != nil {
			fmt.Fprintf(&b, "--- %s ---\n(error reading file: %v)\n\n", p, err)
			continue
		}
		if len(content) > maxFileChars {
			content = content[:maxFileChars] + truncationNoticeFn
		}
		fmt.Fprintf(&b, "--- %s ---\n%s\n\n", p, content)
	}
	return b.String()
}

// call issues one LLM completion, recording its duration and incrementing
// the retry counter on non-zero retries.
func (a *Agent) call(ctx context.Context, messages []llm.Message) string {
	start := time.Now()
	text, stats := a.llmClient.Complete(ctx, messages, a.maxTokens)
	a.timing.record(time.Since(start))
	if stats.RetryCount > 0 {
		a.retryCount += stats.RetryCount
	}
	return text
}
