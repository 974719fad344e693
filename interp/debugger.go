package interp

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"sixtytwo/mask"
)

// model is the bubbletea state for the single-step TUI debugger, adapted
// from the page-table/status-line layout of the original cpu package
// debugger to the bus-backed Interp and its StatusFlags encoding.
type model struct {
	interp  *Interp
	program []byte

	offset uint16
	prevPC uint16
	error  error
	halted bool
}

// Init loads the program at offset and points PC at it. It does not call
// Reset, since the debugger wants to inspect the exact bytes it loaded
// rather than whatever the reset vector happens to contain.
func (m model) Init() tea.Cmd {
	m.interp.Load(m.program, m.offset, m.offset)
	m.interp.PC = m.offset
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			if m.halted {
				return m, nil
			}
			m.prevPC = m.interp.PC
			halted, err := m.interp.Step()
			if err != nil {
				m.error = err
				return m, tea.Quit
			}
			m.halted = halted
		}
	}
	return m, nil
}

// renderPage renders one 16-byte row of bus memory, bracketing the byte
// PC currently points at.
func (m model) renderPage(start uint16) string {
	if start%16 != 0 {
		panic("start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	for idx := uint16(0); idx < 16; idx++ {
		addr := start + idx
		b := m.interp.Bus.Read(addr)
		if addr == m.interp.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	return fmt.Sprintf(`
PC: %04x (%04x)
 A: %02x
 X: %02x
 Y: %02x
SP: %02x
 P: %s
`,
		m.interp.PC, m.prevPC,
		m.interp.A, m.interp.X, m.interp.Y, m.interp.SP,
		m.interp.P,
	)
}

func (m model) pageTable() string {
	header := "page | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pages := []string{header}
	offsets := []int{
		0, 16, 32, 48, 64,
		int(m.offset),
		int(m.offset) + 16,
		int(m.offset) + 32,
		int(m.offset) + 48,
		int(m.offset) + 64,
	}
	for _, off := range offsets {
		pages = append(pages, m.renderPage(uint16(off)))
	}
	return strings.Join(pages, "\n")
}

// currentOpcode dumps the Descriptor for the byte under PC, labeled with
// its nibble coordinates in the 16x16 opcode grid (hi nibble = row, lo
// nibble = column), the conventional way 6502 opcode tables are laid out.
func (m model) currentOpcode() string {
	b := m.interp.Bus.Read(m.interp.PC)
	row := mask.First(b, mask.I4)
	col := mask.Last(b, mask.I4)
	desc := opcodeTable[b]
	if desc == nil {
		return fmt.Sprintf("opcode %#02x (row %x, col %x): unrecognized", b, row, col)
	}
	return fmt.Sprintf("opcode %#02x (row %x, col %x):\n%s", b, row, col, spew.Sdump(*desc))
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		m.currentOpcode(),
	)
}

// Debug loads program at offset into i's bus and starts an interactive
// single-step TUI. It blocks until the user quits.
func Debug(i *Interp, program []byte, offset uint16) {
	p, err := tea.NewProgram(model{
		interp:  i,
		program: program,
		offset:  offset,
	}).Run()
	if err != nil {
		panic(err)
	}
	final := p.(model)
	if final.error != nil {
		fmt.Println("Error:", final.error)
	}
}
