/*
 * files.go, part of cycy.
 *
 * Copyright 2024 The cycy authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package tabio

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/biosys/cycy"
	"github.com/klauspost/compress/zstd"
)

//zstd.Decoder's Close doesn't return an error, so it is not an io.ReadCloser.
type zstdql struct {
	*zstd.Decoder
}

func (s zstdql) Close() error {
	s.Decoder.Close()
	return nil
}

//closer closes the decompressor first and the file after.
type closer struct {
	io.Reader
	dec io.Closer
	f   *os.File
}

func (c *closer) Close() error {
	var err error
	if c.dec != nil {
		err = c.dec.Close()
	}
	if err2 := c.f.Close(); err == nil {
		err = err2
	}
	return err
}

func mustExist(name string) error {
	if _, err := os.Stat(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cycy.NewError(cycy.MissingInput, name, "file not found", true, err)
		}
		return cycy.NewError(cycy.KindIO, name, "can't stat file", true, err)
	}
	return nil
}

//Open opens name for reading. Files ending in .gz are gunzipped and files
//ending in .zst or .zstd are zstd-decompressed on the fly. A missing file
//gives a critical *cycy.Error of kind MissingInput.
func Open(name string) (io.ReadCloser, error) {
	if err := mustExist(name); err != nil {
		return nil, cycy.ErrDecorate(err, "Open")
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, cycy.NewError(cycy.KindIO, name, "can't open file", true, err, "Open")
	}
	buf := bufio.NewReader(f)
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	case ".zst", ".zstd":
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(a)
			if err != nil {
				return nil, err
			}
			return zstdql{d}, nil
		}
	default:
		return &closer{Reader: buf, f: f}, nil
	}
	dec, err := AnyNewReader(buf)
	if err != nil {
		f.Close()
		return nil, cycy.NewError(cycy.Malformed, name, "can't decompress", true, err, "Open")
	}
	return &closer{Reader: dec, dec: dec, f: f}, nil
}

//WriteFile creates the directory of name if needed and writes the file
//with write. The data goes to a temporary file in the same directory which
//is renamed to name only if write succeeds, so a failure leaves no file
//(or the previous version of it) behind.
func WriteFile(name string, write func(w io.Writer) error) error {
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return cycy.NewError(cycy.KindIO, dir, "can't create output directory", true, err, "WriteFile")
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".*")
	if err != nil {
		return cycy.NewError(cycy.KindIO, name, "can't create temporary file", true, err, "WriteFile")
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		return fail(cycy.ErrDecorate(err, "WriteFile"))
	}
	if err := bw.Flush(); err != nil {
		return fail(cycy.NewError(cycy.KindIO, name, "can't write", true, err, "WriteFile"))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return cycy.NewError(cycy.KindIO, name, "can't write", true, err, "WriteFile")
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return cycy.NewError(cycy.KindIO, name, "can't set permissions", true, err, "WriteFile")
	}
	if err := os.Rename(tmpName, name); err != nil {
		os.Remove(tmpName)
		return cycy.NewError(cycy.KindIO, name, "can't move file into place", true, err, "WriteFile")
	}
	return nil
}
