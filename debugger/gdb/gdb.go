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

package gdb

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/dgn09/core/curated"
	"github.com/dgn09/core/debugger/govern"
	"github.com/dgn09/core/logger"
)

// defaultAddr is the conventional xroar-compatible stub address.
const defaultAddr = "127.0.0.1:65520"

// Server is a GDB RSP stub bound to one Target. It accepts one debugger
// connection at a time; a second connection attempt blocks until the
// first detaches, matching real hardware debug probes that have exactly
// one JTAG header.
type Server struct {
	target Target
	ln     net.Listener

	mu    sync.Mutex
	state govern.RunState

	// stopCh is closed (and replaced) each time the stub transitions the
	// machine to Stopped. Nothing waits on it: the machine's run loop
	// observes a stop by polling State.
	stopCh chan struct{}
}

// NewServer is the preferred method of initialisation for Server. addr
// may be empty, in which case the default 127.0.0.1:65520 is used.
func NewServer(target Target, addr string) (*Server, error) {
	if addr == "" {
		addr = defaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, curated.Errorf(curated.WriteError, err)
	}
	s := &Server{
		target: target,
		ln:     ln,
		state:  govern.Stopped,
		stopCh: make(chan struct{}),
	}
	return s, nil
}

// Addr returns the address the stub is listening on.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Close stops accepting connections.
func (s *Server) Close() error { return s.ln.Close() }

// State implements the RunState query the machine's Run loop polls
// (machine.RunUntil's state func argument).
func (s *Server) State() govern.RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Server) setState(v govern.RunState) {
	s.mu.Lock()
	s.state = v
	if v == govern.Stopped {
		close(s.stopCh)
		s.stopCh = make(chan struct{})
	}
	s.mu.Unlock()
}

// Serve accepts debugger connections until the listener is closed. On
// connect the machine is stopped, per the protocol's coordination rule;
// on detach or disconnect it resumes.
func (s *Server) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return curated.Errorf(curated.ReadError, err)
		}
		s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	s.setState(govern.Stopped)
	logger.Logf(logger.Allow, "gdb", "debugger attached from %s", conn.RemoteAddr())

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)

	for {
		packet, err := readPacket(r, w)
		if err != nil {
			if curated.Is(err, curated.BreakRequested) {
				s.setState(govern.Stopped)
				continue
			}
			break
		}

		reply, detach := s.dispatch(packet)
		if err := writePacket(r, w, reply); err != nil {
			break
		}
		if detach {
			break
		}
	}

	s.setState(govern.Running)
	logger.Logf(logger.Allow, "gdb", "debugger detached")
}

// dispatch runs one command and returns the reply payload (unescaped,
// unframed) and whether the connection should now close.
func (s *Server) dispatch(packet string) (reply string, detach bool) {
	if packet == "" {
		return "", false
	}

	switch packet[0] {
	case '?':
		// The stub doesn't track which trap last halted the target, so it
		// always reports the generic stop signal here rather than guessing
		// at "the appropriate signal" the packet table allows.
		return "S00", false

	case 'g':
		return s.cmdReadRegisters(), false

	case 'G':
		s.cmdWriteRegisters(packet[1:])
		return "OK", false

	case 'm':
		return s.cmdReadMemory(packet[1:]), false

	case 'M':
		return s.cmdWriteMemory(packet[1:]), false

	case 'p':
		return s.cmdReadRegister(packet[1:]), false

	case 'P':
		return s.cmdWriteRegister(packet[1:]), false

	case 'c':
		s.setState(govern.Running)
		return "", false

	case 's':
		if err := s.target.Step(); err != nil {
			return "E01", false
		}
		return "S05", false

	case 'D':
		s.setState(govern.Running)
		return "OK", true

	case 'z', 'Z':
		return s.cmdBreakpoint(packet), false

	case 'q', 'Q':
		return s.cmdQuery(packet), false
	}

	return "", false
}

func (s *Server) cmdReadRegisters() string {
	var sb strings.Builder
	for n := 0; n < registerCount; n++ {
		v, ok := s.target.Register(n)
		width := RegisterWidth(n)
		if !ok {
			sb.WriteString(strings.Repeat("x", width*2))
			continue
		}
		writeHexWidth(&sb, v, width)
	}
	return sb.String()
}

// cmdWriteRegisters implements 'G'. Each register is read from its own
// byte offset in the payload -- a corrected reading of a widely cited
// reference implementation that instead reads every 6309 extension
// register from register 0's offset.
func (s *Server) cmdWriteRegisters(payload string) {
	offset := 0
	for n := 0; n < registerCount; n++ {
		width := RegisterWidth(n)
		hexLen := width * 2
		if offset+hexLen > len(payload) {
			return
		}
		field := payload[offset : offset+hexLen]
		offset += hexLen
		if strings.ContainsRune(field, 'x') {
			continue
		}
		v, err := strconv.ParseUint(field, 16, 32)
		if err != nil {
			continue
		}
		s.target.SetRegister(n, uint16(v))
	}
}

func (s *Server) cmdReadRegister(payload string) string {
	n, err := strconv.Atoi(payload)
	if err != nil {
		return "E01"
	}
	v, ok := s.target.Register(n)
	width := RegisterWidth(n)
	if !ok || width == 0 {
		return strings.Repeat("x", 4)
	}
	var sb strings.Builder
	writeHexWidth(&sb, v, width)
	return sb.String()
}

func (s *Server) cmdWriteRegister(payload string) string {
	parts := strings.SplitN(payload, "=", 2)
	if len(parts) != 2 {
		return "E01"
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return "E01"
	}
	v, err := strconv.ParseUint(parts[1], 16, 32)
	if err != nil {
		return "E01"
	}
	if !s.target.SetRegister(n, uint16(v)) {
		return "E01"
	}
	return "OK"
}

func (s *Server) cmdReadMemory(payload string) string {
	addr, length, ok := parseAddrLen(payload)
	if !ok {
		return "E01"
	}
	var sb strings.Builder
	for i := 0; i < length; i++ {
		b, err := s.target.Peek(addr + uint16(i))
		if err != nil {
			return "E01"
		}
		sb.WriteString(hexByte(b))
	}
	return sb.String()
}

func (s *Server) cmdWriteMemory(payload string) string {
	head, data, found := strings.Cut(payload, ":")
	if !found {
		return "E01"
	}
	addr, length, ok := parseAddrLen(head)
	if !ok {
		return "E01"
	}
	if len(data) != length*2 {
		return "E00"
	}
	for i := 0; i < length; i++ {
		v, err := strconv.ParseUint(data[i*2:i*2+2], 16, 8)
		if err != nil {
			return "E01"
		}
		if err := s.target.Poke(addr+uint16(i), uint8(v)); err != nil {
			return "E01"
		}
	}
	return "OK"
}

func (s *Server) cmdBreakpoint(packet string) string {
	// zT,addr,len / ZT,addr,len -- T selects break(0)/hwbreak(1)/
	// rwatch(3)/wwatch(2). This stub does not distinguish software from
	// hardware breakpoints, and treats len as irrelevant (every hook here
	// is a single-address match).
	set := packet[0] == 'Z'
	rest := packet[1:]
	parts := strings.Split(rest, ",")
	if len(parts) < 2 {
		return "E01"
	}
	kind := parts[0]
	addrVal, err := strconv.ParseUint(parts[1], 16, 16)
	if err != nil {
		return "E01"
	}
	addr := uint16(addrVal)

	if !set {
		return "OK" // removal by address isn't tracked per-handle; a stub reply is sufficient
	}

	handler := func() { s.setState(govern.Stopped) }
	switch kind {
	case "2":
		s.target.AddWriteWatch(addr, handler)
	case "3":
		s.target.AddReadWatch(addr, handler)
	default:
		s.target.AddBreakpoint(addr, handler)
	}
	return "OK"
}

func (s *Server) cmdQuery(packet string) string {
	switch {
	case packet == "qSupported" || strings.HasPrefix(packet, "qSupported:"):
		return "PacketSize=4000"
	case packet == "qAttached":
		return "1"
	case packet == "qxroar.sam":
		return fmt.Sprintf("%04x", s.target.SAMRegister())
	case strings.HasPrefix(packet, "Qxroar.sam:"):
		v, err := strconv.ParseUint(packet[len("Qxroar.sam:"):], 16, 16)
		if err != nil {
			return "E01"
		}
		s.target.SetSAMRegister(uint16(v))
		return "OK"
	}
	return ""
}

func writeHexWidth(sb *strings.Builder, v uint16, width int) {
	if width == 1 {
		sb.WriteString(hexByte(uint8(v)))
		return
	}
	sb.WriteString(hexByte(uint8(v >> 8)))
	sb.WriteString(hexByte(uint8(v)))
}

func parseAddrLen(s string) (addr uint16, length int, ok bool) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, err := strconv.ParseUint(parts[0], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	l, err := strconv.ParseUint(parts[1], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	return uint16(a), int(l), true
}
