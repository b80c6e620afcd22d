package ring

import "sync/atomic"

// Slot states. A slot cycles Empty -> Writing -> Ready -> Reading -> Empty.
const (
	slotEmpty uint32 = iota
	slotWriting
	slotReady
	slotReading
)

// slot is the synchronization state of one storage position. Only the
// goroutine that won the claim may touch the slot's bytes or commit it.
type slot struct {
	state atomic.Uint32
}

func (s *slot) claimWrite() bool { return s.state.CompareAndSwap(slotEmpty, slotWriting) }
func (s *slot) commitWrite()     { s.state.Store(slotReady) }
func (s *slot) abortWrite()      { s.state.Store(slotEmpty) }

func (s *slot) claimRead() bool { return s.state.CompareAndSwap(slotReady, slotReading) }
func (s *slot) commitRead()     { s.state.Store(slotEmpty) }
func (s *slot) abortRead()      { s.state.Store(slotReady) }
