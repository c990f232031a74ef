package wire

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectPIDs(r io.Reader) ([]PID, uint64, error) {
	var pids []PID
	n, err := DecodePIDShard(r, func(pid PID) error {
		pids = append(pids, pid)
		return nil
	})
	return pids, n, err
}

func collectHalos(r io.Reader) ([]Halo, uint64, error) {
	var halos []Halo
	n, err := DecodeHaloShard(r, func(h Halo) error {
		halos = append(halos, h)
		return nil
	})
	return halos, n, err
}

func TestHaloValidate(t *testing.T) {
	assert.NoError(t, Halo{Start: 0, End: 0}.Validate())
	assert.NoError(t, Halo{Start: 2, End: 4}.Validate())
	assert.Error(t, Halo{Start: 4, End: 2}.Validate())
}

func TestHaloWidth(t *testing.T) {
	assert.Equal(t, uint64(3), Halo{Start: 2, End: 5}.Width())
}

func TestEncodePIDs(t *testing.T) {
	buf := &bytes.Buffer{}
	e := NewEncoder(buf)
	require.NoError(t, e.WriteCount(3))
	for _, pid := range []PID{3, 4, 5} {
		require.NoError(t, e.WritePID(pid))
	}
	require.NoError(t, e.Flush())
	assert.Equal(t, "3\n3\n4\n5\n", buf.String())
}

func TestEncodeHalos(t *testing.T) {
	buf := &bytes.Buffer{}
	e := NewEncoder(buf)
	require.NoError(t, e.WriteCount(2))
	require.NoError(t, e.WriteHalo(Halo{Start: 0, End: 2}))
	require.NoError(t, e.WriteHalo(Halo{Start: 2, End: 4}))
	require.NoError(t, e.Flush())
	assert.Equal(t, "2\n0\n2\n2\n4\n", buf.String())
}

func TestEncodeMaxUint(t *testing.T) {
	buf := &bytes.Buffer{}
	e := NewEncoder(buf)
	require.NoError(t, e.WritePID(PID(1<<64-1)))
	require.NoError(t, e.Flush())
	assert.Equal(t, "18446744073709551615\n", buf.String())
}

func TestEncodeInvalidHalo(t *testing.T) {
	assert.Error(t, NewEncoder(io.Discard).WriteHalo(Halo{Start: 5, End: 1}))
}

func TestDecodePIDShard(t *testing.T) {
	pids, n, err := collectPIDs(strings.NewReader("3\n7\n8\n9\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)
	assert.Equal(t, []PID{7, 8, 9}, pids)
}

func TestDecodeEmptyShard(t *testing.T) {
	pids, n, err := collectPIDs(strings.NewReader("0\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)
	assert.Empty(t, pids)
}

func TestDecodeHaloShard(t *testing.T) {
	halos, n, err := collectHalos(strings.NewReader("2\n0\n2\n2\n4\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
	assert.Equal(t, []Halo{{Start: 0, End: 2}, {Start: 2, End: 4}}, halos)
}

func TestDecodeRoundTrip(t *testing.T) {
	halos := []Halo{{Start: 10, End: 13}, {Start: 13, End: 13}, {Start: 13, End: 20}}
	buf := &bytes.Buffer{}
	e := NewEncoder(buf)
	require.NoError(t, e.WriteCount(uint64(len(halos))))
	for _, h := range halos {
		require.NoError(t, e.WriteHalo(h))
	}
	require.NoError(t, e.Flush())

	decoded, _, err := collectHalos(buf)
	require.NoError(t, err)
	assert.Equal(t, halos, decoded)
}

func TestDecodeMissingRecords(t *testing.T) {
	_, _, err := collectPIDs(strings.NewReader("3\n7\n8\n"))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, _, err = collectHalos(strings.NewReader("1\n7\n"))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecodeHugeCountLine(t *testing.T) {
	_, _, err := collectPIDs(strings.NewReader("18446744073709551615\n0\n"))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, _, err = collectHalos(strings.NewReader("9223372036854775807\n0\n1\n"))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecodeCallbackErrorStops(t *testing.T) {
	errStop := io.ErrClosedPipe
	calls := 0
	_, err := DecodePIDShard(strings.NewReader("3\n7\n8\n9\n"), func(pid PID) error {
		calls++
		return errStop
	})
	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 1, calls)
}

func TestDecodeTrailingData(t *testing.T) {
	_, _, err := collectPIDs(strings.NewReader("1\n7\n8\n"))
	assert.ErrorIs(t, err, ErrTrailingData)
}

func TestDecodeNotANumber(t *testing.T) {
	_, _, err := collectPIDs(strings.NewReader("2\n7\nx\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestDecodeEmptyFile(t *testing.T) {
	_, _, err := collectPIDs(strings.NewReader(""))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecodeReversedHalo(t *testing.T) {
	_, _, err := collectHalos(strings.NewReader("1\n7\n3\n"))
	assert.Error(t, err)
}
