// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package machine

// Arch names one member of the Dragon/CoCo/MC-10 family. Each has its own
// RAM mask, PIA decode gating, and ROM complement.
type Arch string

const (
	ArchDragon32 Arch = "dragon32"
	ArchDragon64 Arch = "dragon64"
	ArchCoCo     Arch = "coco"
	ArchCoCo3    Arch = "coco3"
	ArchMC10     Arch = "mc10"
)

// CPUModel selects the instruction set the machine's CPU part runs.
type CPUModel string

const (
	CPU6809 CPUModel = "6809"
	CPU6309 CPUModel = "6309"
)

// policy captures the per-architecture quirks the composer must apply:
// unexpanded machines alias RAM into a smaller window and relax PIA0
// address decode, and a Dragon 64 carries an ACIA that the BASIC ROM
// dummy-reads during boot even though no serial hardware answers it.
type policy struct {
	// ramMask limits the RAM address space actually backed by silicon;
	// addresses above it alias (wrap) onto the same physical cells. A
	// fully expanded 64K machine uses 0xffff (no aliasing).
	ramMask uint16

	// relaxedPIADecode mirrors the CoCo's simpler PIA0 address decode,
	// which (unlike the Dragon) does not gate on bit 2 of the selected
	// register, making $FF00-$FF03 repeat throughout $FF00-$FF1F without
	// the Dragon's denser sub-decode.
	relaxedPIADecode bool

	// haveACIA models the dummy ACIA status/data registers a Dragon 64
	// exposes at $FF24/$FF25 (inside the PIA1 window): BASIC probes them
	// during boot and is content with whatever floats back.
	haveACIA bool

	// native6309 selects HD6309 semantics for the CPU part.
	native6309 bool

	// ramSizeK is the default RAM complement for this architecture absent
	// an explicit -ram override.
	ramSizeK int
}

var policies = map[Arch]policy{
	ArchDragon32: {ramMask: 0x3fff, relaxedPIADecode: false, ramSizeK: 32},
	ArchDragon64: {ramMask: 0xffff, relaxedPIADecode: false, haveACIA: true, ramSizeK: 64},
	ArchCoCo:     {ramMask: 0xffff, relaxedPIADecode: true, ramSizeK: 64},
	ArchCoCo3:    {ramMask: 0xffff, relaxedPIADecode: true, ramSizeK: 128},
	ArchMC10:     {ramMask: 0x0fff, relaxedPIADecode: true, ramSizeK: 4},
}

// policyFor returns the named architecture's policy, or the Dragon 64's
// (the most permissive) for an unrecognised name, so a typo in -machine-arch
// degrades to "no extra restrictions" rather than a panic.
func policyFor(a Arch) policy {
	if p, ok := policies[a]; ok {
		return p
	}
	return policies[ArchDragon64]
}
