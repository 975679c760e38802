// Package idle is the inactivity countdown returning the kiosk to its attract screen.
package idle

import (
	"time"

	"github.com/linled/coffee-kiosk/internal/schedule"
)

const DefaultTimeout = 15 * time.Second

type Supervisor struct {
	sched   *schedule.Scheduler
	timeout time.Duration
	timer   *schedule.Timer
	onIdle  func()
	running bool
	expired uint32
}

func New(sched *schedule.Scheduler, timeout time.Duration, onIdle func()) *Supervisor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	self := &Supervisor{sched: sched, timeout: timeout, onIdle: onIdle}
	return self
}

func (self *Supervisor) Timeout() time.Duration { return self.timeout }
func (self *Supervisor) Running() bool          { return self.running }

// Expired counts fires since creation.
func (self *Supervisor) Expired() uint32 { return self.expired }

// Start (re)arms the countdown. Pending fire is cancelled.
func (self *Supervisor) Start() {
	self.running = true
	if self.timer == nil {
		self.timer = self.sched.After("idle", self.timeout, self.fire)
		return
	}
	self.sched.Reset(self.timer, self.timeout)
}

// Restart is activity: rearms only when running.
func (self *Supervisor) Restart() {
	if self.running {
		self.Start()
	}
}

func (self *Supervisor) Stop() {
	self.running = false
	self.sched.Cancel(self.timer)
}

// Remaining until expiry, zero when stopped.
func (self *Supervisor) Remaining() time.Duration {
	if !self.running || !self.timer.Active() {
		return 0
	}
	return self.timer.When().Sub(self.sched.Now())
}

func (self *Supervisor) fire() {
	self.running = false
	self.expired++
	if self.onIdle != nil {
		self.onIdle()
	}
}
