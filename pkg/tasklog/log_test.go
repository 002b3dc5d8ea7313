package tasklog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consilium-ai/consilium/pkg/config"
)

func TestLog_AppendThenTailRoundTrips(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "task_run.jsonl")
	log := NewLog(logPath)

	rec := TaskRunRecord{
		TaskID:              "t-1",
		Timestamp:           time.Now(),
		TaskSummary:         SummarizeTask("fix the auth module"),
		Domains:             []config.AgentRole{config.AgentRoleSecurity},
		RiskLevel:           config.RiskLevelHigh,
		ConsiliumConfidence: 0.6,
		PreFilter:           PreFilterRecord{Passed: false, ReasonTokens: []string{"high_risk"}},
		Director:            DirectorRunRecord{Called: true},
	}

	require.NoError(t, log.Append(rec))

	out, err := log.Tail(10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "t-1", out[0].TaskID)
	assert.Equal(t, config.RiskLevelHigh, out[0].RiskLevel)
}

func TestLog_TailRespectsLimit(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "task_run.jsonl")
	log := NewLog(logPath)

	for i := 0; i < 5; i++ {
		require.NoError(t, log.Append(TaskRunRecord{TaskID: string(rune('a' + i)), Timestamp: time.Now()}))
	}

	out, err := log.Tail(2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "d", out[0].TaskID)
	assert.Equal(t, "e", out[1].TaskID)
}

func TestLog_TailOnMissingFileReturnsEmpty(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "missing.jsonl"))
	out, err := log.Tail(10)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSummarizeTask_TruncatesAt100Chars(t *testing.T) {
	long := make([]byte, 250)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, SummarizeTask(string(long)), 100)
}

func TestSummarizeTask_ShortTaskUnchanged(t *testing.T) {
	assert.Equal(t, "short task", SummarizeTask("short task"))
}
