package resampler

// markBusy claims the busy flag from a test, simulating an in-flight
// call. Returns the release function.
func (r *Resampler) markBusy() func() {
	r.busy.Store(true)
	return func() { r.busy.Store(false) }
}
