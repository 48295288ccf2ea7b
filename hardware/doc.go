// Package hardware is the base package for the Dragon/CoCo/MC-10
// emulation. It and its sub-packages contain everything required for a
// headless emulation of the machine's timed bus fabric: CPU, SAM, PIA,
// VDG, cartridge bus and the event scheduler that ties them together.
//
// The machine package's Machine type is the root of the emulation and
// holds references to every sub-system. From there the emulation is
// stepped one instruction at a time by Machine.RunUntil, which a caller
// (a headless runner or the GDB stub) drives according to its own run
// state.
package hardware
