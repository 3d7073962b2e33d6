package gopayload

import (
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeHexFixture(t *testing.T) {
	result, err := DecodeHex("0103E80A00000000")
	require.NoError(t, err)
	require.Equal(t, "hex", result.Input)
	require.Equal(t, "0103e80a00000000", result.RawHex)
	require.Equal(t, 8, result.ByteCount)

	r := result.Reading
	require.True(t, r.Occupied)
	require.Equal(t, "Occupied", r.Status())
	require.InDelta(t, 2.8, float64(r.BatteryVolts), 1e-9)
	require.Equal(t, 72, r.TemperatureCelsius)
	require.EqualValues(t, 10, r.TimeMinutes)
	require.EqualValues(t, 0, r.EventCount)
}

func TestBytesAndHexAgree(t *testing.T) {
	payloads := []string{
		"0103e80a00000000",
		"00ff000102030400",
		"ffffffffffffffff",
		"0000000000000000",
		"7e5a8134cd0912fe",
	}
	for _, p := range payloads {
		raw, err := hex.DecodeString(p)
		require.NoError(t, err)

		fromBytes, err := DecodeBytes(raw)
		require.NoError(t, err)
		fromHex, err := DecodeHex(strings.ToUpper(p))
		require.NoError(t, err)
		fromPrefixed, err := DecodeHex("0x" + p)
		require.NoError(t, err)

		require.Equal(t, fromHex.Reading, fromBytes.Reading)
		require.Equal(t, fromHex.Reading, fromPrefixed.Reading)
		require.Equal(t, "bytes", fromBytes.Input)
	}
}

func TestNormalizePrefix(t *testing.T) {
	require.Equal(t, Normalize(FromHex("abc")), Normalize(FromHex("0xabc")))
	require.Equal(t, "0a0b", Normalize(FromBytes([]byte{0x0A, 0x0B})))
}

func TestDecodeInvalidLength(t *testing.T) {
	for _, n := range []int{0, 14, 15, 17, 100} {
		_, err := DecodeHex(strings.Repeat("0", n))
		require.ErrorIs(t, err, ErrInvalidLength)
		var le *LengthError
		require.True(t, errors.As(err, &le))
		require.Equal(t, 16, le.Expected)
		require.Equal(t, n, le.Actual)
	}
	_, err := DecodeBytes([]byte{0x01, 0x03, 0xE8, 0x0A, 0x00, 0x00, 0x00})
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestDecodeInvalidHex(t *testing.T) {
	result, err := DecodeHex("0x0103E80A0000000G")
	require.ErrorIs(t, err, ErrInvalidHex)
	require.Equal(t, Result{}, result)
}

func TestDecodeWithLayout(t *testing.T) {
	result, err := DecodeWithOptions(FromHex("0A00000000E80301"), DecodeOptions{Layout: "status=7,battery=6,temperature=5,time=0,events=2"})
	require.NoError(t, err)
	require.True(t, result.Reading.Occupied)
	require.Equal(t, 72, result.Reading.TemperatureCelsius)
	require.EqualValues(t, 10, result.Reading.TimeMinutes)

	_, err = DecodeWithOptions(FromHex("0103E80A00000000"), DecodeOptions{Layout: "time=7"})
	require.ErrorIs(t, err, ErrInvalidLayout)
}

func TestDecodeConcurrent(t *testing.T) {
	want, err := DecodeHex("01a3e80a01020304")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := DecodeHex("01a3e80a01020304")
			if err != nil {
				errs <- err
				return
			}
			if got.Reading != want.Reading {
				errs <- errors.New("reading mismatch")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestResultString(t *testing.T) {
	result, err := DecodeHex("0103E80A00000000")
	require.NoError(t, err)
	out := result.String()
	require.Contains(t, out, `"raw_hex": "0103e80a00000000"`)
	require.Contains(t, out, `"Status": "Occupied"`)
}

func TestResultStringKeepsVoltsPrecision(t *testing.T) {
	result, err := DecodeHex("FFFFFFFFFFFFFFFF")
	require.NoError(t, err)
	require.Contains(t, result.String(), `"Battery (V)": 4.0`)
}

func TestDecoderReuse(t *testing.T) {
	_, err := NewDecoder(DecodeOptions{Layout: "events=6"})
	require.ErrorIs(t, err, ErrInvalidLayout)

	d, err := NewDecoder(DecodeOptions{Layout: "status=7,battery=6,temperature=5,time=0,events=2"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		result, err := d.Decode(FromHex("0A00000000E80301"))
		require.NoError(t, err)
		require.True(t, result.Reading.Occupied)
		require.EqualValues(t, 10, result.Reading.TimeMinutes)
	}
	_, err = d.Decode(FromHex("0A00"))
	require.ErrorIs(t, err, ErrInvalidLength)
}
