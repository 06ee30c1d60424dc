package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"hash"
	"hash/crc64"
	"io"
	"prioq/pkg/datastruct/collection"
)

// maxPayload bounds the allocation a corrupt length prefix can cause.
const maxPayload = 1 << 30

type Decoder struct {
	reader *bufio.Reader
	crc    hash.Hash64
}

func NewDecoder(reader io.Reader) *Decoder {
	return &Decoder{reader: bufio.NewReader(reader), crc: crc64.New(crcTable)}
}

func corrupt(format string, args ...interface{}) error {
	return fmt.Errorf("%w: dump %s", collection.ErrCorruptData, fmt.Sprintf(format, args...))
}

func (dec *Decoder) read(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(dec.reader, buf); err != nil {
		return nil, err
	}
	dec.crc.Write(buf)
	return buf, nil
}

func (dec *Decoder) readLength() (uint64, error) {
	first, err := dec.read(1)
	if err != nil {
		return 0, corrupt("read length error %v", err)
	}
	switch first[0] >> 6 {
	case 0:
		return uint64(first[0]), nil
	case 1:
		second, err := dec.read(1)
		if err != nil {
			return 0, corrupt("read uint14 error %v", err)
		}
		return uint64(first[0]&0x3f)<<8 | uint64(second[0]), nil
	case 2:
		switch first[0] {
		case 0x80:
			buf, err := dec.read(4)
			if err != nil {
				return 0, corrupt("read uint32 error %v", err)
			}
			return uint64(binary.BigEndian.Uint32(buf)), nil
		case 0x81:
			buf, err := dec.read(8)
			if err != nil {
				return 0, corrupt("read uint64 error %v", err)
			}
			return binary.BigEndian.Uint64(buf), nil
		}
	}
	return 0, corrupt("unknown length prefix 0x%02x", first[0])
}

func (dec *Decoder) readString() ([]byte, error) {
	length, err := dec.readLength()
	if err != nil {
		return nil, err
	}
	if length > maxPayload {
		return nil, corrupt("payload length %d too large", length)
	}
	// grows with the bytes actually present, not with the declared length
	buf, err := io.ReadAll(io.LimitReader(dec.reader, int64(length)))
	if err != nil {
		return nil, corrupt("read payload error %v", err)
	}
	if uint64(len(buf)) != length {
		return nil, corrupt("payload truncated: %d of %d bytes", len(buf), length)
	}
	dec.crc.Write(buf)
	return buf, nil
}

func (dec *Decoder) ReadHeader() error {
	magic, err := dec.read(len(MagicNum))
	if err != nil || !bytes.Equal(magic, MagicNum) {
		return corrupt("bad magic number")
	}
	version, err := dec.read(len(Version))
	if err != nil || !bytes.Equal(version, Version) {
		return corrupt("unsupported version %q", version)
	}
	return nil
}

func (dec *Decoder) ReadPayload() ([]byte, error) {
	op, err := dec.read(1)
	if err != nil {
		return nil, corrupt("read opcode error %v", err)
	}
	if op[0] != PayloadJSON {
		return nil, corrupt("unknown opcode 0x%02x", op[0])
	}
	return dec.readString()
}

// ReadEOF checks the EOF marker and the trailing checksum.
func (dec *Decoder) ReadEOF() error {
	marker, err := dec.read(1)
	if err != nil || marker[0] != EOF {
		return corrupt("missing EOF marker")
	}
	expected := dec.crc.Sum64()
	sum := make([]byte, 8)
	if _, err := io.ReadFull(dec.reader, sum); err != nil {
		return corrupt("read checksum error %v", err)
	}
	if got := binary.BigEndian.Uint64(sum); got != expected {
		return corrupt("checksum mismatch: stored %016x, computed %016x", got, expected)
	}
	return nil
}
