// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package objstore

import (
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// zlibReader/zlibWriter are sync.Pool'd exactly as the teacher's
// streamio package pools its zstd codecs, to avoid reallocating the
// deflate window on every object read or write.

type zlibReader struct {
	io.ReadCloser
}

var zlibReaderPool = sync.Pool{
	New: func() any { return &zlibReader{} },
}

func getZlibReader(r io.Reader) (*zlibReader, error) {
	z := zlibReaderPool.Get().(*zlibReader)
	rc, err := zlib.NewReader(r)
	if err != nil {
		zlibReaderPool.Put(z)
		return nil, err
	}
	z.ReadCloser = rc
	return z, nil
}

func putZlibReader(z *zlibReader) {
	z.ReadCloser.Close()
	z.ReadCloser = nil
	zlibReaderPool.Put(z)
}

type zlibWriter struct {
	*zlib.Writer
}

var zlibWriterPool = sync.Pool{
	New: func() any { return &zlibWriter{Writer: zlib.NewWriter(io.Discard)} },
}

func getZlibWriter(w io.Writer) *zlibWriter {
	z := zlibWriterPool.Get().(*zlibWriter)
	z.Writer.Reset(w)
	return z
}

func putZlibWriter(z *zlibWriter) {
	zlibWriterPool.Put(z)
}
