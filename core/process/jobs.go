package process

import (
	"sync"

	"github.com/edwingeng/deque"
	"github.com/josephlewis42/minish/core/shell"
)

// Job is a command started in the background.
type Job struct {
	ID   int
	Pid  int
	Argv shell.Argv

	// Result is filled in once the job has been reaped.
	Result Result
}

// Jobs tracks background commands. Each job is waited on by its own
// goroutine so the child never lingers as a zombie, finished jobs are queued
// until the shell collects them with Reap.
type Jobs struct {
	mu       sync.Mutex
	nextID   int
	running  map[int]*Job
	finished deque.Deque // *Job
}

// NewJobs creates an empty job table.
func NewJobs() *Jobs {
	return &Jobs{
		running:  make(map[int]*Job),
		finished: deque.NewDeque(),
	}
}

// start registers a job and waits for it in the background using wait.
func (j *Jobs) start(pid int, argv shell.Argv, wait func() Result) *Job {
	j.mu.Lock()
	j.nextID++
	job := &Job{ID: j.nextID, Pid: pid, Argv: argv}
	j.running[job.ID] = job
	j.mu.Unlock()

	go func() {
		result := wait()

		j.mu.Lock()
		defer j.mu.Unlock()
		job.Result = result
		delete(j.running, job.ID)
		j.finished.PushBack(job)
	}()

	return job
}

// Running returns the number of jobs that haven't finished.
func (j *Jobs) Running() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.running)
}

// Reap returns the jobs that finished since the last call, oldest first.
func (j *Jobs) Reap() []*Job {
	j.mu.Lock()
	defer j.mu.Unlock()

	var out []*Job
	for !j.finished.Empty() {
		out = append(out, j.finished.PopFront().(*Job))
	}
	if len(j.running) == 0 {
		// Job numbers restart once nothing is left, like interactive shells.
		j.nextID = 0
	}
	return out
}
