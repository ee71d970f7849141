// Package hashfile implements the hash-file format (spec §6): a version
// byte, an algorithm name, a declared password length, and a sequence of
// fixed-width digests (or, for scrypt, "$scrypt"-delimited PHC strings).
package hashfile

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"io"
	"strconv"
	"strings"

	"github.com/kenneth/rainbowforge/internal/hashalgo"
	"github.com/kenneth/rainbowforge/internal/protocol"
	"github.com/kenneth/rainbowforge/internal/rferrors"
)

// Header is the metadata that precedes the digest stream.
type Header struct {
	Version     uint8
	Algorithm   hashalgo.Algorithm
	PasswordLen uint8
}

// WriteHeader writes the hash-file header to w.
func WriteHeader(w io.Writer, h Header) error {
	algo := h.Algorithm.String()
	buf := make([]byte, 0, 3+len(algo))
	buf = append(buf, protocol.Version)
	buf = append(buf, byte(len(algo)))
	buf = append(buf, algo...)
	buf = append(buf, h.PasswordLen)
	_, err := w.Write(buf)
	if err != nil {
		return rferrors.Wrap(rferrors.WriteError, "writing hash-file header", err)
	}
	return nil
}

// ReadHeader reads the hash-file header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var prefix [2]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return Header{}, rferrors.Wrap(rferrors.FileRead, "reading hash-file header", err)
	}
	version := prefix[0]
	algoLen := int(prefix[1])

	algoBuf := make([]byte, algoLen+1) // + password_len byte
	if _, err := io.ReadFull(r, algoBuf); err != nil {
		return Header{}, rferrors.Wrap(rferrors.FileRead, "reading hash-file algorithm", err)
	}
	algo, err := hashalgo.Parse(string(algoBuf[:algoLen]))
	if err != nil {
		return Header{}, rferrors.Wrap(rferrors.UnknownAlgorithm, "parsing hash-file algorithm", err)
	}

	return Header{
		Version:     version,
		Algorithm:   algo,
		PasswordLen: algoBuf[algoLen],
	}, nil
}

// ReadDigests reads every digest from r given algo, decoding the
// fixed-width framing for MD5/SHA-256/SHA3-512 or the "$scrypt"-delimited
// framing for scrypt. Digests are returned as raw bytes (scrypt entries
// as the raw PHC-string bytes).
func ReadDigests(r io.Reader, algo hashalgo.Algorithm) ([][]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, rferrors.Wrap(rferrors.FileRead, "reading hash-file digests", err)
	}

	if algo == hashalgo.Scrypt {
		return splitScrypt(data), nil
	}

	size := hashalgo.DigestSize(algo)
	if size <= 0 || len(data)%size != 0 {
		return nil, rferrors.New(rferrors.InvalidFormat, "hash-file digest stream is not a multiple of the digest size")
	}
	digests := make([][]byte, 0, len(data)/size)
	for off := 0; off < len(data); off += size {
		d := make([]byte, size)
		copy(d, data[off:off+size])
		digests = append(digests, d)
	}
	return digests, nil
}

// splitScrypt splits a concatenated run of PHC strings on the "$scrypt"
// delimiter, re-attaching it to every non-empty piece.
func splitScrypt(data []byte) [][]byte {
	parts := strings.Split(string(data), "$scrypt")
	out := make([][]byte, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, []byte("$scrypt"+p))
	}
	return out
}

// HexDigests renders a digest list as lowercase hex strings, as used by
// the wire protocol and the cracked-password cache keys.
func HexDigests(digests [][]byte) []string {
	out := make([]string, len(digests))
	for i, d := range digests {
		out[i] = hex.EncodeToString(d)
	}
	return out
}

// Dump writes a human-readable rendering of a hash file to w: the header
// fields followed by one hex digest (or PHC string) per line.
func Dump(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	header, err := ReadHeader(br)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	if _, err := io.WriteString(bw, "VERSION: "+strconv.Itoa(int(header.Version))+"\n"); err != nil {
		return rferrors.Wrap(rferrors.WriteError, "writing dump", err)
	}
	if _, err := io.WriteString(bw, "ALGORITHM: "+header.Algorithm.String()+"\n"); err != nil {
		return rferrors.Wrap(rferrors.WriteError, "writing dump", err)
	}
	if _, err := io.WriteString(bw, "PASSWORD LENGTH: "+strconv.Itoa(int(header.PasswordLen))+"\n"); err != nil {
		return rferrors.Wrap(rferrors.WriteError, "writing dump", err)
	}

	digests, err := ReadDigests(br, header.Algorithm)
	if err != nil {
		return err
	}
	for _, d := range digests {
		if header.Algorithm == hashalgo.Scrypt {
			if _, err := bw.Write(append(bytes.TrimRight(d, "\x00"), '\n')); err != nil {
				return rferrors.Wrap(rferrors.WriteError, "writing dump", err)
			}
			continue
		}
		if _, err := io.WriteString(bw, hex.EncodeToString(d)+"\n"); err != nil {
			return rferrors.Wrap(rferrors.WriteError, "writing dump", err)
		}
	}
	return nil
}

