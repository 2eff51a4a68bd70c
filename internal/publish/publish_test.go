// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records git invocations and fails the configured subcommands.
type mockExecutor struct {
	fail  map[string]bool // subcommand -> fail
	calls []string
}

func (m *mockExecutor) Run(_ context.Context, _, name string, args ...string) (string, error) {
	m.calls = append(m.calls, name+" "+strings.Join(args, " "))
	if m.fail[args[0]] {
		return "fatal: " + args[0] + " went wrong\n", errors.New("exit status 128")
	}
	if args[0] == "rev-parse" {
		return "abc1234\n", nil
	}
	return "", nil
}

func newTestPublisher(ex *mockExecutor, push bool) *Publisher {
	p := New("/repo", push, nil)
	p.git.exec = ex
	return p
}

func TestPublishRunsGitSequence(t *testing.T) {
	ex := &mockExecutor{}
	p := newTestPublisher(ex, true)

	err := p.Publish(context.Background(), "/repo/leetcode_solutions/2024-01-15_two_sum.md")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"git add -- /repo/leetcode_solutions/2024-01-15_two_sum.md",
		"git commit -m Add LeetCode solution for 2024-01-15_two_sum.md",
		"git rev-parse --short HEAD",
		"git push",
	}, ex.calls)
}

func TestPublishWithoutPush(t *testing.T) {
	ex := &mockExecutor{}
	p := newTestPublisher(ex, false)

	require.NoError(t, p.Publish(context.Background(), "/repo/a.md"))
	for _, c := range ex.calls {
		assert.NotEqual(t, "git push", c)
	}
}

func TestPublishFailures(t *testing.T) {
	tests := []struct {
		name      string
		fail      string
		wantStep  Step
		wantCalls int
	}{
		{name: "add fails", fail: "add", wantStep: StepStage, wantCalls: 1},
		{name: "commit fails", fail: "commit", wantStep: StepCommit, wantCalls: 2},
		{name: "push fails after commit", fail: "push", wantStep: StepPush, wantCalls: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := &mockExecutor{fail: map[string]bool{tt.fail: true}}
			p := newTestPublisher(ex, true)

			err := p.Publish(context.Background(), "/repo/leetcode_solutions/x.md")
			require.Error(t, err)

			var pe *PublishError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.wantStep, pe.Step)
			assert.Contains(t, err.Error(), "publishing x.md")
			assert.Contains(t, err.Error(), "went wrong")
			assert.Len(t, ex.calls, tt.wantCalls)
		})
	}
}

func TestCommitMessage(t *testing.T) {
	assert.Equal(t, "Add LeetCode solution for 2024-01-15_two_sum.md",
		CommitMessage("/srv/repo/leetcode_solutions/2024-01-15_two_sum.md"))
}

// --- real git ---

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not on PATH")
	}
}

func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return strings.TrimSpace(string(out))
}

// setupRepos creates a bare remote and a clone-like working tree with one
// pushed commit and an upstream branch.
func setupRepos(t *testing.T) (work, remote string) {
	t.Helper()
	root := t.TempDir()
	remote = filepath.Join(root, "remote.git")
	work = filepath.Join(root, "work")

	gitCmd(t, root, "init", "--bare", remote)
	require.NoError(t, os.MkdirAll(work, 0o755))
	gitCmd(t, work, "init")
	gitCmd(t, work, "config", "user.name", "Daily Problem")
	gitCmd(t, work, "config", "user.email", "daily@example.com")
	gitCmd(t, work, "config", "commit.gpgsign", "false")
	gitCmd(t, work, "remote", "add", "origin", remote)
	require.NoError(t, os.WriteFile(filepath.Join(work, "README.md"), []byte("# solutions\n"), 0o644))
	gitCmd(t, work, "add", "README.md")
	gitCmd(t, work, "commit", "-m", "init")
	gitCmd(t, work, "push", "-u", "origin", "HEAD")
	return work, remote
}

func TestPublishRealRepository(t *testing.T) {
	requireGit(t)
	work, remote := setupRepos(t)

	dir := filepath.Join(work, "leetcode_solutions")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "2024-01-15_two_sum.md")
	require.NoError(t, os.WriteFile(path, []byte("# Two Sum\n"), 0o644))

	require.NoError(t, New(work, true, nil).Publish(context.Background(), path))

	subject := gitCmd(t, remote, "log", "-1", "--format=%s")
	assert.Equal(t, "Add LeetCode solution for 2024-01-15_two_sum.md", subject)
	assert.Empty(t, gitCmd(t, work, "status", "--porcelain"))
}

func TestPublishRealRepositoryPushFailureKeepsCommit(t *testing.T) {
	requireGit(t)
	work, remote := setupRepos(t)
	require.NoError(t, os.RemoveAll(remote))

	path := filepath.Join(work, "2024-01-16_lru_cache.md")
	require.NoError(t, os.WriteFile(path, []byte("# LRU Cache\n"), 0o644))

	err := New(work, true, nil).Publish(context.Background(), path)
	var pe *PublishError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StepPush, pe.Step)

	// Local and remote diverge: the commit is not rolled back.
	subject := gitCmd(t, work, "log", "-1", "--format=%s")
	assert.Equal(t, "Add LeetCode solution for 2024-01-16_lru_cache.md", subject)
}

func TestPublishRealRepositoryMissingFile(t *testing.T) {
	requireGit(t)
	work, _ := setupRepos(t)

	err := New(work, false, nil).Publish(context.Background(), filepath.Join(work, "nope.md"))
	var pe *PublishError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StepStage, pe.Step)
}
