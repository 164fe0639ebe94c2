package swap

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/iov-one/swap/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexadecimal address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := Address(b)

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", addr))
		So(Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("test hexadecimal condition printing", t, func() {
		cond := NewCondition("offer", "custody", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", cond))
		So(cond.String(), ShouldEqual, fmt.Sprintf("offer/custody/%X", []byte("ABCD123456LHB")))
	})
}

func TestConditionAddress(t *testing.T) {
	Convey("condition addresses are deterministic", t, func() {
		a := NewCondition("offer", "custody", []byte{1, 2, 3}).Address()
		b := NewCondition("offer", "custody", []byte{1, 2, 3}).Address()
		c := NewCondition("offer", "custody", []byte{1, 2, 4}).Address()

		So(a.Equals(b), ShouldBeTrue)
		So(a.Equals(c), ShouldBeFalse)
		So(len(a), ShouldEqual, AddressLength)
		So(a.Validate(), ShouldBeNil)
	})

	Convey("condition parsing", t, func() {
		ext, typ, data, err := NewCondition("sigs", "ed25519", []byte("pub")).Parse()
		So(err, ShouldBeNil)
		So(ext, ShouldEqual, "sigs")
		So(typ, ShouldEqual, "ed25519")
		So(data, ShouldResemble, []byte("pub"))

		_, _, _, err = Condition("no-slash").Parse()
		So(errors.ErrInput.Is(err), ShouldBeTrue)
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr Address
	}{
		"default decoding": {
			json:     `"8d0d55645f1241a7a16d84fc9561a51abf0e5c0a"`,
			wantAddr: mustHex("8d0d55645f1241a7a16d84fc9561a51abf0e5c0a"),
		},
		"hex decoding": {
			json:     `"hex:8d0d55645f1241a7a16d84fc9561a51abf0e5c0a"`,
			wantAddr: mustHex("8d0d55645f1241a7a16d84fc9561a51abf0e5c0a"),
		},
		"hex of invalid length": {
			json:    `"hex:6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"invalid bech32": {
			json:    `"bech32:swap1notvalid"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestAddressBech32RoundTrip(t *testing.T) {
	addr := NewCondition("sigs", "ed25519", []byte("some public key")).Address()

	enc, err := addr.Bech32()
	require.NoError(t, err)
	assert.Contains(t, enc, "bech32:"+Bech32Prefix+"1")

	got, err := ParseAddress(enc)
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	var fromJSON Address
	require.NoError(t, json.Unmarshal(raw, &fromJSON))
	assert.Equal(t, addr, fromJSON)
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("expected %q but got condition: %q", tc.wantCondition, got)
			}
		})
	}
}

func TestConditionMarshalJSON(t *testing.T) {
	cases := map[string]struct {
		source   Condition
		wantJson string
	}{
		"cond encoding": {
			source:   NewCondition("foo", "bar", []byte("conditiondata")),
			wantJson: `"foo/bar/636F6E646974696F6E64617461"`,
		},
		"nil encoding": {
			source:   nil,
			wantJson: `""`,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := json.Marshal(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.wantJson, string(got))
		})
	}
}

func mustHex(s string) Address {
	addr, err := ParseAddress("hex:" + s)
	if err != nil {
		panic(err)
	}
	return addr
}
