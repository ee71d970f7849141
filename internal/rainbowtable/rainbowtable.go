// Package rainbowtable implements the rainbow-table file format (spec §6):
// a "rainbowtable" magic, a version/algorithm/password-length header, a
// pair of 128-bit big-endian fields (charset size and link count), the
// fixed ASCII offset, and a back-to-back run of start||end chain records.
package rainbowtable

import (
	"bufio"
	"encoding/hex"
	"io"
	"strconv"

	"github.com/kenneth/rainbowforge/internal/chain"
	"github.com/kenneth/rainbowforge/internal/charset"
	"github.com/kenneth/rainbowforge/internal/hashalgo"
	"github.com/kenneth/rainbowforge/internal/protocol"
	"github.com/kenneth/rainbowforge/internal/rferrors"
)

// Header is the metadata that precedes a rainbow table's chain records.
type Header struct {
	Version     uint8
	Algorithm   hashalgo.Algorithm
	PasswordLen uint8
	CharsetSize uint64 // always charset.Size; stored 128-bit wide on disk
	NumLinks    uint64
	AsciiOffset uint8 // always charset.Offset
}

// ChainEntry is one (start, end) pair recorded in a rainbow table.
type ChainEntry struct {
	Start string
	End   string
}

// Table is a fully materialized rainbow table, as loaded by the cracker
// and the cache's InsertChain/GetAllChains callers.
type Table struct {
	Header Header
	Chains []ChainEntry
}

// putU128 writes n as a CharsetSizeFieldWidth/NumLinksFieldWidth-byte
// big-endian integer, zero-padded in the high bytes.
func putU128(buf []byte, n uint64) {
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte(n)
		n >>= 8
	}
}

func getU128(buf []byte) uint64 {
	var n uint64
	for _, b := range buf {
		n = n<<8 | uint64(b)
	}
	return n
}

// WriteHeader writes the rainbow-table header to w.
func WriteHeader(w io.Writer, h Header) error {
	algo := h.Algorithm.String()
	buf := make([]byte, 0, len(protocol.RainbowTableMagic)+3+len(algo)+protocol.CharsetSizeFieldWidth+protocol.NumLinksFieldWidth+1)
	buf = append(buf, protocol.RainbowTableMagic...)
	buf = append(buf, protocol.Version)
	buf = append(buf, byte(len(algo)))
	buf = append(buf, algo...)
	buf = append(buf, h.PasswordLen)

	field := make([]byte, protocol.CharsetSizeFieldWidth)
	putU128(field, h.CharsetSize)
	buf = append(buf, field...)

	field = make([]byte, protocol.NumLinksFieldWidth)
	putU128(field, h.NumLinks)
	buf = append(buf, field...)

	buf = append(buf, h.AsciiOffset)

	if _, err := w.Write(buf); err != nil {
		return rferrors.Wrap(rferrors.WriteError, "writing rainbow-table header", err)
	}
	return nil
}

// ReadHeader reads the rainbow-table header from r, validating the magic.
func ReadHeader(r io.Reader) (Header, error) {
	magic := make([]byte, len(protocol.RainbowTableMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return Header{}, rferrors.Wrap(rferrors.FileRead, "reading rainbow-table magic", err)
	}
	if string(magic) != protocol.RainbowTableMagic {
		return Header{}, rferrors.New(rferrors.InvalidMagicWord, "not a rainbow-table file")
	}

	var prefix [2]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return Header{}, rferrors.Wrap(rferrors.FileRead, "reading rainbow-table header", err)
	}
	version := prefix[0]
	algoLen := int(prefix[1])

	algoBuf := make([]byte, algoLen+1) // + password_len byte
	if _, err := io.ReadFull(r, algoBuf); err != nil {
		return Header{}, rferrors.Wrap(rferrors.FileRead, "reading rainbow-table algorithm", err)
	}
	algo, err := hashalgo.Parse(string(algoBuf[:algoLen]))
	if err != nil {
		return Header{}, rferrors.Wrap(rferrors.UnknownAlgorithm, "parsing rainbow-table algorithm", err)
	}
	passwordLen := algoBuf[algoLen]

	fields := make([]byte, protocol.CharsetSizeFieldWidth+protocol.NumLinksFieldWidth+1)
	if _, err := io.ReadFull(r, fields); err != nil {
		return Header{}, rferrors.Wrap(rferrors.FileRead, "reading rainbow-table fields", err)
	}
	charsetSize := getU128(fields[:protocol.CharsetSizeFieldWidth])
	numLinks := getU128(fields[protocol.CharsetSizeFieldWidth : protocol.CharsetSizeFieldWidth+protocol.NumLinksFieldWidth])
	asciiOffset := fields[len(fields)-1]

	return Header{
		Version:     version,
		Algorithm:   algo,
		PasswordLen: passwordLen,
		CharsetSize: charsetSize,
		NumLinks:    numLinks,
		AsciiOffset: asciiOffset,
	}, nil
}

// WriteEntry appends one start||end chain record to w.
func WriteEntry(w io.Writer, e ChainEntry) error {
	if _, err := io.WriteString(w, e.Start); err != nil {
		return rferrors.Wrap(rferrors.WriteError, "writing chain start", err)
	}
	if _, err := io.WriteString(w, e.End); err != nil {
		return rferrors.Wrap(rferrors.WriteError, "writing chain end", err)
	}
	return nil
}

// ReadChains reads every complete chain record from r given passwordLen.
// A trailing partial record (fewer than recordSize bytes left in the
// stream) ends the read cleanly instead of failing the whole upload,
// matching the original server's behavior of treating a short final
// record read as end-of-stream rather than corruption.
func ReadChains(r io.Reader, passwordLen int) ([]ChainEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, rferrors.Wrap(rferrors.FileRead, "reading rainbow-table chain records", err)
	}
	recordSize := 2 * passwordLen
	if recordSize == 0 {
		return nil, rferrors.New(rferrors.InvalidFormat, "rainbow-table password length is zero")
	}
	complete := (len(data) / recordSize) * recordSize
	chains := make([]ChainEntry, 0, complete/recordSize)
	for off := 0; off < complete; off += recordSize {
		chains = append(chains, ChainEntry{
			Start: string(data[off : off+passwordLen]),
			End:   string(data[off+passwordLen : off+recordSize]),
		})
	}
	return chains, nil
}

// Load reads a complete rainbow table (header + all chain records) from r.
func Load(r io.Reader) (Table, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return Table{}, err
	}
	chains, err := ReadChains(r, int(header.PasswordLen))
	if err != nil {
		return Table{}, err
	}
	return Table{Header: header, Chains: chains}, nil
}

// NewHeader builds a header for a table of the given algorithm, password
// length, and link count, filling in the fixed charset size and ASCII
// offset.
func NewHeader(algo hashalgo.Algorithm, passwordLen uint8, numLinks uint64) Header {
	return Header{
		Version:     protocol.Version,
		Algorithm:   algo,
		PasswordLen: passwordLen,
		CharsetSize: charset.Size,
		NumLinks:    numLinks,
		AsciiOffset: charset.Offset,
	}
}

// Verify re-derives a chain's endpoint from its start and compares it
// against the recorded end. It is used by tests; Dump prints chains
// without verifying them.
func Verify(e ChainEntry, numLinks uint64, algo hashalgo.Algorithm) (bool, error) {
	got, err := chain.Build(e.Start, uint32(numLinks), algo)
	if err != nil {
		return false, err
	}
	return got == e.End, nil
}

// Dump writes a human-readable rendering of a rainbow-table file to w:
// the header fields followed by one "start -> end" line per chain.
func Dump(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	table, err := Load(br)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	lines := []string{
		"VERSION: " + strconv.Itoa(int(table.Header.Version)),
		"ALGORITHM: " + table.Header.Algorithm.String(),
		"PASSWORD LENGTH: " + strconv.Itoa(int(table.Header.PasswordLen)),
		"CHARSET SIZE: " + strconv.FormatUint(table.Header.CharsetSize, 10),
		"NUM LINKS: " + strconv.FormatUint(table.Header.NumLinks, 10),
		"ASCII OFFSET: " + strconv.Itoa(int(table.Header.AsciiOffset)),
	}
	for _, l := range lines {
		if _, err := io.WriteString(bw, l+"\n"); err != nil {
			return rferrors.Wrap(rferrors.WriteError, "writing dump", err)
		}
	}

	for _, c := range table.Chains {
		line := hex.EncodeToString([]byte(c.Start)) + " -> " + hex.EncodeToString([]byte(c.End))
		if _, err := io.WriteString(bw, line+"\n"); err != nil {
			return rferrors.Wrap(rferrors.WriteError, "writing dump", err)
		}
	}
	return nil
}
