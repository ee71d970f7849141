// Package rfclient implements the thin TCP client used by the "client
// upload" and "client crack" CLI subcommands: it marshals a request frame
// per the wire protocol, sends it, and returns the server's plaintext
// response unmodified.
package rfclient

import (
	"encoding/binary"
	"io"
	"net"
	"os"

	"github.com/kenneth/rainbowforge/internal/protocol"
	"github.com/kenneth/rainbowforge/internal/rferrors"
)

// Upload sends the rainbow-table file at tablePath to server under name
// and returns the server's plaintext response line.
func Upload(server, tablePath, name string) (string, error) {
	payload, err := os.ReadFile(tablePath)
	if err != nil {
		return "", rferrors.Wrap(rferrors.FileOpen, "reading rainbow-table file", err)
	}

	conn, err := net.Dial("tcp", server)
	if err != nil {
		return "", rferrors.Wrap(rferrors.BindingError, "connecting to server", err)
	}
	defer conn.Close()

	buf := make([]byte, 0, len(protocol.UploadMagic)+2+len(name)+8)
	buf = append(buf, protocol.UploadMagic...)
	buf = append(buf, protocol.Version)
	buf = append(buf, byte(len(name)))
	buf = append(buf, name...)

	sizeField := make([]byte, 8)
	binary.BigEndian.PutUint64(sizeField, uint64(len(payload)))
	buf = append(buf, sizeField...)

	if _, err := conn.Write(buf); err != nil {
		return "", rferrors.Wrap(rferrors.WriteError, "writing upload header", err)
	}
	if _, err := conn.Write(payload); err != nil {
		return "", rferrors.Wrap(rferrors.WriteError, "writing upload payload", err)
	}

	return readResponse(conn)
}

// Crack sends the hash file at hashesPath to server and returns the
// server's plaintext response body.
func Crack(server, hashesPath string) (string, error) {
	payload, err := os.ReadFile(hashesPath)
	if err != nil {
		return "", rferrors.Wrap(rferrors.FileOpen, "reading hash file", err)
	}

	conn, err := net.Dial("tcp", server)
	if err != nil {
		return "", rferrors.Wrap(rferrors.BindingError, "connecting to server", err)
	}
	defer conn.Close()

	buf := make([]byte, 0, len(protocol.CrackMagic)+1+8)
	buf = append(buf, protocol.CrackMagic...)
	buf = append(buf, protocol.Version)

	sizeField := make([]byte, 8)
	binary.BigEndian.PutUint64(sizeField, uint64(len(payload)))
	buf = append(buf, sizeField...)

	if _, err := conn.Write(buf); err != nil {
		return "", rferrors.Wrap(rferrors.WriteError, "writing crack header", err)
	}
	if _, err := conn.Write(payload); err != nil {
		return "", rferrors.Wrap(rferrors.WriteError, "writing crack payload", err)
	}

	return readResponse(conn)
}

func readResponse(conn net.Conn) (string, error) {
	body, err := io.ReadAll(conn)
	if err != nil {
		return "", rferrors.Wrap(rferrors.IoError, "reading server response", err)
	}
	return string(body), nil
}
