package resource

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// record is one entry of the archive wire format (§6 "Archive file
// format"): a little-endian u32 path hash, a little-endian u64 byte count,
// then that many opaque bytes. No magic, no version, no checksum.
type record struct {
	hash uint32
	data []byte
}

const recordHeaderSize = 4 + 8

func writeRecord(w io.Writer, r record) error {
	var header [recordHeaderSize]byte
	binary.LittleEndian.PutUint32(header[0:4], r.hash)
	binary.LittleEndian.PutUint64(header[4:12], uint64(len(r.data)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(r.data)
	return err
}

// readRecord reads one record from r. It returns io.EOF (unwrapped) when
// the stream is cleanly exhausted between records.
func readRecord(r io.Reader) (record, error) {
	var header [recordHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return record{}, fmt.Errorf("resource: truncated archive header: %w", err)
		}
		return record{}, err
	}

	hash := binary.LittleEndian.Uint32(header[0:4])
	size := binary.LittleEndian.Uint64(header[4:12])

	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return record{}, fmt.Errorf("resource: truncated archive record (hash %08x): %w", hash, err)
	}

	return record{hash: hash, data: data}, nil
}

// readAllRecords sequentially reads every record from path until EOF
// (§4.4 "Load"). Missing files read as zero records, not an error --
// declare creates the archive lazily.
func readAllRecords(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []record
	for {
		rec, err := readRecord(f)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// appendRecord opens path for append (creating it and any parent directory
// if absent) and writes one record, used by Declare in development mode.
func appendRecord(path string, rec record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeRecord(f, rec)
}
