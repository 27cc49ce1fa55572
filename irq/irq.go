// Package irq defines the external interrupt line raised by the core.
// The processor has a single interrupt output (set by BREAK with
// interrupt-on-break enabled, or by a CP0 STATUS write); a host embedding the core
// implements Sender to observe it without the core depending on any
// concrete host type.
package irq

// Sender defines the interface for an interrupt source external to the
// core. Raised is checked by the host between ticks; the core itself never
// polls it (the processor has no interrupt-driven control flow of its own,
// per spec — only BREAK and CP0 STATUS writes affect the line).
type Sender interface {
	// Raised reports whether the interrupt line is currently held high.
	Raised() bool
}
