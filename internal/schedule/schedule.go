// Package schedule is the deferred callback queue of the single UI thread.
// Scheduler is not safe for concurrent use: only the UI loop calls Advance and
// timer callbacks run synchronously inside Advance.
// Timers with equal deadline fire in the order they were (re)scheduled.
package schedule

import (
	"container/heap"
	"fmt"
	"time"
)

type Func func()

type Timer struct {
	Name     string
	fn       Func
	when     time.Time
	interval time.Duration
	seq      uint64
	index    int // position in heap, -1 when not queued
}

func (t *Timer) Active() bool { return t != nil && t.index >= 0 }

// When returns next deadline, meaningful only while Active.
func (t *Timer) When() time.Time { return t.when }

func (t *Timer) String() string {
	return fmt.Sprintf("timer(%s active=%t)", t.Name, t.Active())
}

type Scheduler struct {
	now time.Time
	seq uint64
	q   timerHeap
}

func New(now time.Time) *Scheduler {
	return &Scheduler{now: now, q: make(timerHeap, 0, 16)}
}

// Now is the time of last Advance, or deadline of timer being fired.
func (self *Scheduler) Now() time.Time { return self.now }

func (self *Scheduler) Len() int { return len(self.q) }

func (self *Scheduler) Next() (time.Time, bool) {
	if len(self.q) == 0 {
		return time.Time{}, false
	}
	return self.q[0].when, true
}

// After schedules one-shot fn.
func (self *Scheduler) After(name string, d time.Duration, fn Func) *Timer {
	t := &Timer{Name: name, fn: fn, index: -1}
	self.Reset(t, d)
	return t
}

// Every schedules fn repeating each interval, first fire after one interval.
func (self *Scheduler) Every(name string, interval time.Duration, fn Func) *Timer {
	if interval <= 0 {
		panic(fmt.Sprintf("code error schedule.Every name=%s interval=%v", name, interval))
	}
	t := &Timer{Name: name, fn: fn, interval: interval, index: -1}
	self.Reset(t, interval)
	return t
}

// Cancel is safe on nil and inactive timers.
func (self *Scheduler) Cancel(t *Timer) {
	if t == nil || t.index < 0 {
		return
	}
	heap.Remove(&self.q, t.index)
	t.index = -1
}

// Reset cancels pending fire of t and schedules it d from now.
func (self *Scheduler) Reset(t *Timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	self.Cancel(t)
	t.when = self.now.Add(d)
	self.push(t)
}

// Advance moves clock to now and runs due callbacks, returns number of fires.
// Callbacks scheduled by callbacks are run in the same call if already due.
func (self *Scheduler) Advance(now time.Time) int {
	n := 0
	for len(self.q) != 0 {
		t := self.q[0]
		if t.when.After(now) {
			break
		}
		heap.Pop(&self.q)
		t.index = -1
		if t.when.After(self.now) {
			self.now = t.when
		}
		if t.interval > 0 {
			t.when = t.when.Add(t.interval)
			self.push(t)
		}
		n++
		if t.fn != nil {
			t.fn()
		}
	}
	if now.After(self.now) {
		self.now = now
	}
	return n
}

func (self *Scheduler) push(t *Timer) {
	self.seq++
	t.seq = self.seq
	heap.Push(&self.q, t)
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].when.Equal(h[j].when) {
		return h[i].seq < h[j].seq
	}
	return h[i].when.Before(h[j].when)
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x interface{}) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	t.index = -1
	return t
}
