package codec

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/crc64"
	"io"
)

var (
	MagicNum = []byte("PRIOQ")
	Version  = []byte("0001")
)

const (
	PayloadJSON = byte(0x00)
	EOF         = byte(0xff)

	maxUint6  = 1<<6 - 1
	maxUint14 = 1<<14 - 1
	maxUint32 = 1<<32 - 1
)

var crcTable = crc64.MakeTable(crc64.ISO)

// Encoder writes the dump container: header, one length prefixed payload,
// an EOF marker and a CRC-64 of everything before the checksum.
type Encoder struct {
	writer io.Writer
	crc    hash.Hash64
}

func NewEncoder(writer io.Writer) *Encoder {
	return &Encoder{writer: writer, crc: crc64.New(crcTable)}
}

func (enc *Encoder) Write(data []byte) error {
	_, err := enc.writer.Write(data)
	if err != nil {
		return fmt.Errorf("dump write failed %v", err)
	}
	// hash.Hash never returns an error
	enc.crc.Write(data)
	return nil
}

func (enc *Encoder) writeLength(length uint64) error {
	var buf []byte
	if length <= maxUint6 {
		// 00 + uint6
		buf = []byte{byte(length)}
	} else if length <= maxUint14 {
		// 01 + uint14
		buf = make([]byte, 2)
		buf[0] = 0x40 | byte(length>>8)
		buf[1] = byte(length)
	} else if length <= maxUint32 {
		buf = make([]byte, 5)
		buf[0] = 0x80
		binary.BigEndian.PutUint32(buf[1:], uint32(length))
	} else {
		buf = make([]byte, 9)
		buf[0] = 0x81
		binary.BigEndian.PutUint64(buf[1:], length)
	}
	return enc.Write(buf)
}

func (enc *Encoder) writeString(value []byte) error {
	err := enc.writeLength(uint64(len(value)))
	if err != nil {
		return err
	}
	return enc.Write(value)
}

func (enc *Encoder) WriteHeader() error {
	err := enc.Write(MagicNum)
	if err != nil {
		return err
	}
	return enc.Write(Version)
}

func (enc *Encoder) WritePayload(payload []byte) error {
	err := enc.Write([]byte{PayloadJSON})
	if err != nil {
		return err
	}
	return enc.writeString(payload)
}

// WriteEOF terminates the container with the EOF marker and the checksum.
func (enc *Encoder) WriteEOF() error {
	err := enc.Write([]byte{EOF})
	if err != nil {
		return err
	}
	sum := make([]byte, 8)
	binary.BigEndian.PutUint64(sum, enc.crc.Sum64())
	_, err = enc.writer.Write(sum)
	if err != nil {
		return fmt.Errorf("dump write checksum failed %v", err)
	}
	return nil
}
