package zipread

import "testing"

func FuzzParse(f *testing.F) {
	b := new(zipBuilder)
	b.add(stored("dir/", nil))
	b.add(stored("dir/a.txt", []byte("hello")))
	b.add(stored("dir/b.txt", []byte("world")))
	full := b.finish("comment")
	f.Add(full)
	f.Add(b.localOnly())
	f.Add(full[:len(full)/2])
	f.Add(makeEOCD(3, 1000, 0, ""))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, input []byte) {
		a, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		for _, e := range a.Entries() {
			if e.Offset() < 0 || e.Offset()+e.CompressedSize() > int64(len(input)) {
				t.Fatalf("%q: payload [%d, +%d) outside %d-byte input",
					e.Name(), e.Offset(), e.CompressedSize(), len(input))
			}
			// decoding may fail but must not panic
			_, _ = e.Data()
		}
	})
}
