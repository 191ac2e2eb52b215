// elf_loader.go - ELF32 homebrew loader

/*
Grounded on the spec's external-collaborator boundary description of the
homebrew loading path (parse ELF32, copy PT_LOAD segments through the
memory map, return the entry point for the HLE BIOS to patch vectors and
jump to). Uses the standard library's debug/elf, following the teacher's
practice of reaching for stdlib parsers (binary formats) while using
third-party libraries for the domain concerns the examples cover.
*/

package dreamcast

import (
	"bytes"
	"debug/elf"
	"fmt"
)

// LoadELF parses a little-or-big-endian ELF32 homebrew executable and
// copies its loadable segments into the memory map at their specified
// virtual addresses, returning the entry point.
func LoadELF(m *MemoryMap, data []byte) (entry uint32, err error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("parse elf: %w", err)
	}
	defer f.Close()

	if f.Class != elf.ELFCLASS32 {
		return 0, fmt.Errorf("unsupported ELF class %v, want ELFCLASS32", f.Class)
	}

	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		seg := make([]byte, prog.Filesz)
		if _, err := prog.ReadAt(seg, 0); err != nil {
			return 0, fmt.Errorf("read segment at vaddr 0x%08X: %w", prog.Vaddr, err)
		}
		writeMemBlock(m, uint32(prog.Vaddr), seg)
		for i := prog.Filesz; i < prog.Memsz; i++ {
			Write8(m, uint32(prog.Vaddr+i), 0)
		}
	}

	return uint32(f.Entry), nil
}
