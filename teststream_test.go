package codec

// testMemStream is a minimal ByteStream for this package's own tests. It
// can't reuse package streamio's MemoryStream: streamio imports this
// package, so that would be a cycle.
type testMemStream struct {
	buf []byte
	pos int
}

func newTestStream() *testMemStream { return &testMemStream{} }

func newTestStreamFrom(b []byte) *testMemStream {
	buf := make([]byte, len(b))
	copy(buf, b)
	return &testMemStream{buf: buf}
}

func (m *testMemStream) Write(p []byte) (int, error) {
	end := m.pos + len(p)
	if end > len(m.buf) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *testMemStream) Read(n int) ([]byte, error) {
	b := m.buf[m.pos : m.pos+n]
	m.pos += n
	return b, nil
}

func (m *testMemStream) Available() int { return len(m.buf) - m.pos }
func (m *testMemStream) Tell() int64    { return int64(m.pos) }

func (m *testMemStream) Seek(pos int64) error {
	m.pos = int(pos)
	return nil
}

func testStreamBytes(s *StreamAdapter) []byte {
	return s.stream.(*testMemStream).buf
}
