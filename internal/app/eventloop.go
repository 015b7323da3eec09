package app

// The task loop serializes every state mutation: bus handlers, watcher
// callbacks, and UI input all enqueue work here instead of touching the
// session directly.

// Run processes queued tasks until Quit is called. It returns
// ErrAlreadyRunning when the loop is already live.
func (a *Application) Run() error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	for {
		select {
		case fn := <-a.tasks:
			fn()
		case <-a.quit:
			return nil
		}
	}
}

// Quit stops the task loop after the current task.
func (a *Application) Quit() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}

// Do enqueues fn on the task loop.
func (a *Application) Do(fn func()) {
	select {
	case a.tasks <- fn:
	case <-a.quit:
	}
}

// Tick runs one queued task and reports whether one was pending.
// Drivers that own their own loop (and tests) pump the queue with it.
func (a *Application) Tick() bool {
	select {
	case fn := <-a.tasks:
		fn()
		return true
	default:
		return false
	}
}

// scheduleRefresh enqueues one deferred outline and spotlight refresh.
// Bursts of view updates coalesce into a single task, so the outline is
// eventually consistent within one loop turn, never recomputed inline
// with the edit.
func (a *Application) scheduleRefresh() {
	if !a.outlinePending.CompareAndSwap(false, true) {
		return
	}
	a.Do(func() {
		a.outlinePending.Store(false)
		a.session.RefreshOutline()
		a.refreshSpotlight()
		a.requestRender()
	})
}
