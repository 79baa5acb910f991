// Package bdio reads and writes BDIO block streams, the binary container used
// by TDF measurement files.
//
// A stream is a sequence of blocks. Every block starts with a 24-byte
// section.BlockHeader followed by its payload, optionally compressed:
//
//	+--------------------+----------------------------+
//	| BlockHeader (24 B) | payload (Size bytes)       |
//	+--------------------+----------------------------+
//	| BlockHeader (24 B) | payload (Size bytes)       |
//	+--------------------+----------------------------+
//	| ...                                             |
//
// Writers put a directory block first so readers can locate a block without
// decoding the ones before it. Streams without a directory are still readable;
// Reader.Directory rebuilds one by walking the headers.
//
// Reading the first xy-curve of a file:
//
//	r, err := bdio.Open("sample.tdf")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	dir, err := r.Directory()
//	...
//	for _, e := range dir {
//	    if e.IsXYCurve() {
//	        if err := r.SeekBlock(e.Pos); err != nil {
//	            return err
//	        }
//	        block, err := r.NextBlock()
//	        ...
//	    }
//	}
//
// Writing a stream:
//
//	w, _ := bdio.NewWriter(bdio.WithCompression(format.CompressionZstd))
//	_ = w.AddXYCurve("iv", "V", "A", x, y)
//	err := w.WriteFile("sample.tdf")
package bdio
