package scheduler

import (
	"cmp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/navijation/njheap/util"
	"github.com/navijation/njheap/util/heap"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultCapacityHint = 16

var ErrNoPendingTasks = errors.New("no pending tasks")

type Task struct {
	ID          uuid.UUID
	Name        string
	Priority    int
	SubmittedAt time.Time

	sequence uint64
}

// Scheduler hands out tasks lowest priority value first. Tasks of equal
// priority run in the order they were submitted. It is safe for concurrent
// use.
type Scheduler struct {
	// immutable config
	log *logrus.Entry
	now func() time.Time

	// state tracking
	queue        heap.Heap[Task]
	nextSequence uint64

	// concurrency control
	lock sync.Mutex
}

type NewArgs struct {
	CapacityHint util.Optional[int]
	Logger       *logrus.Entry
}

func New(args NewArgs) (*Scheduler, error) {
	queue, err := heap.NewHeap(args.CapacityHint.Or(defaultCapacityHint), compareTasks)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create task queue")
	}

	logger := args.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Scheduler{
		log:   logger.WithField("component", "scheduler"),
		now:   time.Now,
		queue: queue,
	}, nil
}

func compareTasks(a, b Task) int {
	if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
		return c
	}
	return cmp.Compare(a.sequence, b.sequence)
}

func (me *Scheduler) Submit(name string, priority int) Task {
	me.lock.Lock()
	defer me.lock.Unlock()

	task := Task{
		ID:          uuid.Must(uuid.NewRandom()),
		Name:        name,
		Priority:    priority,
		SubmittedAt: me.now(),
		sequence:    me.nextSequence,
	}
	me.nextSequence++
	me.queue.Insert(task)

	me.log.WithFields(logrus.Fields{
		"task_id":  task.ID.String(),
		"name":     name,
		"priority": priority,
		"pending":  me.queue.Size(),
	}).Debug("task submitted")

	return task
}

// Next removes and returns the most urgent task.
func (me *Scheduler) Next() (Task, error) {
	me.lock.Lock()
	defer me.lock.Unlock()

	task, err := me.queue.ExtractMin()
	if errors.Is(err, heap.ErrEmptyHeap) {
		return task, errors.WithStack(ErrNoPendingTasks)
	}
	if err != nil {
		return task, err
	}

	me.log.WithFields(logrus.Fields{
		"task_id": task.ID.String(),
		"name":    task.Name,
		"waited":  me.now().Sub(task.SubmittedAt),
	}).Debug("task dispatched")

	return task, nil
}

func (me *Scheduler) Peek() (Task, error) {
	me.lock.Lock()
	defer me.lock.Unlock()

	task, err := me.queue.Peek()
	if errors.Is(err, heap.ErrEmptyHeap) {
		return task, errors.WithStack(ErrNoPendingTasks)
	}
	return task, err
}

func (me *Scheduler) Pending() int {
	me.lock.Lock()
	defer me.lock.Unlock()

	return me.queue.Size()
}

// Reset drops every pending task.
func (me *Scheduler) Reset() {
	me.lock.Lock()
	defer me.lock.Unlock()

	dropped := me.queue.Size()
	me.queue.Clear()
	me.log.WithField("dropped", dropped).Info("scheduler reset")
}
