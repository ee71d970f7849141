// Package protocol centralizes the magic words, version bytes, and field
// widths shared by the hash-file format, the rainbow-table file format,
// and the TCP wire protocol (spec §6), so the file readers/writers, the
// server, and the client never repeat a magic number.
package protocol

const (
	// Version is the only protocol/file version this implementation speaks.
	Version uint8 = 1

	// RainbowTableMagic opens every rainbow-table file.
	RainbowTableMagic = "rainbowtable"

	// UploadMagic and CrackMagic are the two TCP request kinds; CrackMagic
	// is 5 bytes long and differs from UploadMagic's first 5 bytes
	// ("crack" vs "uploa" + "d"), which is why the dispatcher reads 5 bytes
	// first and only reads a 6th when the first 5 don't already spell
	// "crack".
	UploadMagic = "upload"
	CrackMagic  = "crack"

	// AsciiOffset is the fixed ASCII offset recorded in rainbow-table
	// file headers (always 32, the space character).
	AsciiOffset uint8 = 32

	// CharsetSizeFieldWidth and NumLinksFieldWidth are the big-endian,
	// zero-padded field widths used for charset_size and num_links in the
	// rainbow-table file header.
	CharsetSizeFieldWidth = 16
	NumLinksFieldWidth    = 16
)
