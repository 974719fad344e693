// Package bus implements the address-decoded memory bus that sits between
// the interpreter and the rest of the machine. The Bus is the sole owner of
// mutable memory: the interpreter reaches RAM, PPU registers, and every
// other memory-mapped device exclusively through Read/Write/Read16/Write16.
package bus

// https://www.nesdev.org/wiki/CPU_memory_map

const (
	ramSize      = 0x0800 // 2 KiB of CPU-internal RAM
	ramMirrorEnd = 0x1FFF
	ppuRegStart  = 0x2000
	ppuRegEnd    = 0x3FFF
	deviceStart  = 0x4000
)

// PPURegisters is the narrow seam a real picture-processing unit plugs into.
// The Bus never imports a ppu package; it only calls back through this
// interface, so the core stays free of device behavior.
type PPURegisters interface {
	ReadRegister(lane byte) byte
	WriteRegister(lane byte, value byte)
}

// Device backs the 0x4000-0xFFFF region: APU/controller ports, expansion,
// and cartridge PRG-ROM all implement this the same way.
type Device interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

// Logger receives diagnostics for stray bus accesses. Reads to undecoded
// regions still return 0 and writes are still dropped; the Logger is purely
// observational and the Bus never panics the host on a stray access.
type Logger interface {
	Logf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Logf(string, ...any) {}

type deviceRange struct {
	lo, hi uint16
	dev    Device
}

// Bus translates 16-bit CPU addresses to RAM, PPU register lanes, or an
// attached Device. See https://www.nesdev.org/wiki/CPU_memory_map for the
// address ranges this mirrors.
type Bus struct {
	ram     [ramSize]byte
	ppu     PPURegisters
	devices []deviceRange
	logger  Logger
}

// New returns a Bus with 2 KiB of zeroed RAM and no devices attached.
// Reads outside RAM and the PPU register lanes return 0 until a Device is
// attached with AttachDevice.
func New() *Bus {
	return &Bus{logger: nopLogger{}}
}

// SetLogger installs l to receive diagnostics for stray accesses. A nil
// Logger restores the default no-op sink.
func (b *Bus) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	b.logger = l
}

// AttachPPU wires a real PPU's register lanes into the 0x2000-0x3FFF
// window (see https://www.nesdev.org/wiki/PPU_registers). Before
// AttachPPU is called, reads in that window return 0 and writes are
// no-ops.
func (b *Bus) AttachPPU(p PPURegisters) {
	b.ppu = p
}

// AttachDevice registers d to handle the inclusive address range [lo, hi],
// which must lie at or above 0x4000. Multiple devices may be attached to
// disjoint ranges; the first matching range wins.
func (b *Bus) AttachDevice(lo, hi uint16, d Device) {
	b.devices = append(b.devices, deviceRange{lo: lo, hi: hi, dev: d})
}

func (b *Bus) deviceFor(addr uint16) Device {
	for _, r := range b.devices {
		if addr >= r.lo && addr <= r.hi {
			return r.dev
		}
	}
	return nil
}

// Read returns the byte at addr, applying RAM and PPU-register mirroring.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr <= ramMirrorEnd:
		return b.ram[addr&(ramSize-1)]
	case addr <= ppuRegEnd:
		if b.ppu == nil {
			return 0
		}
		return b.ppu.ReadRegister(byte(addr & 0x0007))
	default:
		if d := b.deviceFor(addr); d != nil {
			return d.Read(addr)
		}
		b.logger.Logf("bus: read from undecoded address %#04x", addr)
		return 0
	}
}

// Write stores value at addr, applying RAM and PPU-register mirroring.
// Writes to an undecoded region are dropped and reported to the Logger.
func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case addr <= ramMirrorEnd:
		b.ram[addr&(ramSize-1)] = value
	case addr <= ppuRegEnd:
		if b.ppu != nil {
			b.ppu.WriteRegister(byte(addr&0x0007), value)
		}
	default:
		if d := b.deviceFor(addr); d != nil {
			d.Write(addr, value)
			return
		}
		b.logger.Logf("bus: write to undecoded address %#04x (dropped)", addr)
	}
}

// Read16 composes the little-endian word at addr from two byte reads:
// low byte at addr, high byte at addr+1. The read may cross a page or
// mirror boundary; no alignment is required.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return hi<<8 | lo
}

// Write16 stores value as a little-endian word: low byte at addr, high
// byte at addr+1.
func (b *Bus) Write16(addr uint16, value uint16) {
	b.Write(addr, byte(value))
	b.Write(addr+1, byte(value>>8))
}

// FlatDevice backs an address range with a plain byte slice. It exists for
// the core's own test harness and for standalone tooling (cmd/sixtytwo)
// that has no real cartridge mapper: it lets a program be loaded at any
// address in 0x4000-0xFFFF the way spec'd test programs expect.
type FlatDevice struct {
	base uint16
	mem  []byte
}

// NewFlatDevice allocates a FlatDevice covering [base, base+size).
func NewFlatDevice(base uint16, size int) *FlatDevice {
	return &FlatDevice{base: base, mem: make([]byte, size)}
}

func (d *FlatDevice) Read(addr uint16) byte {
	if off := int(addr - d.base); off >= 0 && off < len(d.mem) {
		return d.mem[off]
	}
	return 0
}

func (d *FlatDevice) Write(addr uint16, value byte) {
	if off := int(addr - d.base); off >= 0 && off < len(d.mem) {
		d.mem[off] = value
	}
}

// NewWithFlatCartridge returns a Bus whose 0x4000-0xFFFF window is backed
// by a flat byte array, handy for tests and standalone programs that have
// no real cartridge mapper. Production callers should instead use New and
// AttachDevice with a real mapper.
func NewWithFlatCartridge() *Bus {
	b := New()
	b.AttachDevice(deviceStart, 0xFFFF, NewFlatDevice(deviceStart, 0x10000-deviceStart))
	return b
}
