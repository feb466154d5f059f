package bypass

import (
	"encoding/binary"
	"fmt"
	"os"
)

const (
	// elfMagic is the magic number at the start of every ELF binary.
	elfMagic = 0x464C457F

	// elfClass32 and elfClass64 identify 32-bit and 64-bit ELF binaries.
	elfClass32 = 1
	elfClass64 = 2

	// elfDataLSB identifies little-endian ELF binaries.
	elfDataLSB = 1

	// Machine types of the supported architectures.
	EM_386     = 3
	EM_ARM     = 40
	EM_X86_64  = 62
	EM_AARCH64 = 183
)

// ELFInfo holds information about an ELF binary.
type ELFInfo struct {
	Path    string // Path to the ELF binary
	Class   uint8  // Class of the binary (32-bit or 64-bit)
	Machine uint16 // Machine type of the binary
}

// elfIdent represents the identification bytes of an ELF binary.
type elfIdent struct {
	Magic   uint32  // Magic number
	Class   uint8   // File class
	Data    uint8   // Data encoding
	Version uint8   // File version
	_       [9]byte // Padding
}

// elfFileHeader represents the fields of the ELF header following the identification.
type elfFileHeader struct {
	Type    uint16 // Object file type
	Machine uint16 // Machine type
	Version uint32 // Object file version
}

// parseELF parses the header of an ELF binary.
func parseELF(path string) (*ELFInfo, error) {
	// Open file
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	defer file.Close()

	// Read identification
	var ident elfIdent

	err = binary.Read(file, binary.LittleEndian, &ident)
	if err != nil {
		return nil, fmt.Errorf("read ELF identification: %w", err)
	}

	if ident.Magic != elfMagic {
		return nil, fmt.Errorf("not an ELF binary")
	}

	if ident.Data != elfDataLSB {
		return nil, fmt.Errorf("unsupported byte order")
	}

	// Read file header
	var header elfFileHeader

	err = binary.Read(file, binary.LittleEndian, &header)
	if err != nil {
		return nil, fmt.Errorf("read ELF header: %w", err)
	}

	return &ELFInfo{Path: path, Class: ident.Class, Machine: header.Machine}, nil
}

// Matches reports whether the binary was built for the given device architecture.
func (info *ELFInfo) Matches(arch Architecture) bool {
	switch arch {
	case ArchARM64:
		return (info.Class == elfClass64) && (info.Machine == EM_AARCH64)
	case ArchARM:
		return (info.Class == elfClass32) && (info.Machine == EM_ARM)
	case ArchX86:
		return (info.Class == elfClass32) && (info.Machine == EM_386)
	case ArchX86_64:
		return (info.Class == elfClass64) && (info.Machine == EM_X86_64)
	}

	return false
}
