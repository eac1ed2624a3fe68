package process

import (
	"testing"
	"time"

	"github.com/josephlewis42/minish/core/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobs(t *testing.T) {
	jobs := NewJobs()
	release := make(chan struct{})

	first := jobs.start(100, shell.Argv{"first"}, func() Result {
		<-release
		return Result{Status: 1}
	})
	second := jobs.start(200, shell.Argv{"second"}, func() Result {
		return Result{Status: 2}
	})

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	require.Eventually(t, func() bool { return jobs.Running() == 1 }, 5*time.Second, 10*time.Millisecond)
	reaped := jobs.Reap()
	require.Len(t, reaped, 1)
	assert.Equal(t, 200, reaped[0].Pid)
	assert.Equal(t, 2, reaped[0].Result.Status)

	// Nothing new finished.
	assert.Empty(t, jobs.Reap())

	close(release)
	require.Eventually(t, func() bool { return jobs.Running() == 0 }, 5*time.Second, 10*time.Millisecond)
	reaped = jobs.Reap()
	require.Len(t, reaped, 1)
	assert.Equal(t, shell.Argv{"first"}, reaped[0].Argv)

	// Numbering restarts once the table is empty.
	third := jobs.start(300, shell.Argv{"third"}, func() Result { return Result{} })
	assert.Equal(t, 1, third.ID)
}
