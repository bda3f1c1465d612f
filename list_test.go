package codec

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubList is a minimal ListFieldValue for core-package tests.
type stubList struct {
	stubField
	newElem func() FieldValue
	elems   []FieldValue
}

func newStubList(newElem func() FieldValue) *stubList {
	return &stubList{
		stubField: stubField{category: CategoryList, unset: true, root: reflect.TypeOf(ListRoot{})},
		newElem:   newElem,
	}
}

func (l *stubList) InnerType() FieldValue { return l.newElem() }
func (l *stubList) Len() int              { return len(l.elems) }
func (l *stubList) GetRawItem(i int) FieldValue {
	return l.elems[i]
}
func (l *stubList) Append() FieldValue {
	f := l.newElem()
	l.elems = append(l.elems, f)
	l.unset = false
	return f
}
func (l *stubList) Clear() {
	l.elems = nil
	l.unset = true
}
func (l *stubList) Data() any { return l.elems }

func TestListEncodeUint8Pair(t *testing.T) {
	l := newStubList(func() FieldValue { return newStubUint(0xFF, 0) })
	e1 := l.Append()
	require.NoError(t, e1.SetData(uint64(0)))
	e2 := l.Append()
	require.NoError(t, e2.SetData(uint64(255)))

	s := NewStreamAdapter(newTestStream())
	require.NoError(t, listEncoder{}.Encode(s, l, Default))

	want := []byte{0x00, 0x02, 0x00, 0xFF}
	assert.Equal(t, want, testStreamBytes(s))
}

func TestListRoundTrip(t *testing.T) {
	src := newStubList(func() FieldValue { return newStubUint(0xFF, 0) })
	a := src.Append()
	require.NoError(t, a.SetData(uint64(0)))
	b := src.Append()
	require.NoError(t, b.SetData(uint64(255)))

	s := NewStreamAdapter(newTestStream())
	require.NoError(t, listEncoder{}.Encode(s, src, Default))

	dst := newStubList(func() FieldValue { return newStubUint(0xFF, 0) })
	s2 := NewStreamAdapter(newTestStreamFrom(testStreamBytes(s)))
	op := listEncoder{}.newDecodeOp(dst)
	for {
		child, done, err := op.step(s2, Default)
		require.NoError(t, err)
		if done {
			break
		}
		if child != nil {
			for {
				_, cdone, cerr := child.step(s2, Default)
				require.NoError(t, cerr)
				if cdone {
					break
				}
			}
		}
	}
	require.Equal(t, 2, dst.Len())
	assert.Equal(t, uint64(0), dst.GetRawItem(0).Data())
	assert.Equal(t, uint64(255), dst.GetRawItem(1).Data())
}

func TestListEncodeTooManyElementsFails(t *testing.T) {
	l := newStubList(func() FieldValue { return newStubUint(0xFF, 0) })
	l.elems = make([]FieldValue, listMaxElements+1)
	for i := range l.elems {
		l.elems[i] = newStubUint(0xFF, 0)
	}
	l.unset = false

	s := NewStreamAdapter(newTestStream())
	err := listEncoder{}.Encode(s, l, Default)
	require.Error(t, err)
}

func TestListDecodeTruncatedElementNeedsMore(t *testing.T) {
	// declares 2 elements but supplies only 1 byte of payload: decoding the
	// second element's u8 must suspend with ErrNeedMore, not fail outright.
	raw := newTestStream()
	s := NewStreamAdapter(raw)
	require.NoError(t, s.PackUint(16, 2))
	require.NoError(t, s.PackUint(8, 9)) // first element only

	dst := newStubList(func() FieldValue { return newStubUint(0xFF, 0) })
	s2 := NewStreamAdapter(newTestStreamFrom(raw.buf))
	op := listEncoder{}.newDecodeOp(dst)

	var lastErr error
	for i := 0; i < 20; i++ {
		child, done, err := op.step(s2, Default)
		if err != nil {
			lastErr = err
			break
		}
		if done {
			break
		}
		if child != nil {
			for {
				_, cdone, cerr := child.step(s2, Default)
				if cerr != nil {
					lastErr = cerr
					break
				}
				if cdone {
					break
				}
			}
			if lastErr != nil {
				break
			}
		}
	}
	require.ErrorIs(t, lastErr, ErrNeedMore)
}
