package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrPacket_Parse(t *testing.T) {
	testcases := []struct {
		name    string
		payload []byte
		want    ErrPacket
		wantErr bool
	}{
		{
			name: "with sql state",
			payload: append([]byte{
				0xFF,       // ERR header
				0x15, 0x04, // code = 1045
				'#', '2', '8', '0', '0', '0',
			}, []byte("Access denied")...),
			want: ErrPacket{
				Code:    1045,
				State:   "28000",
				Message: "Access denied",
			},
		},
		{
			name: "without state marker",
			// 个别代理实现不带 # 分隔符，整段都是 message
			payload: append([]byte{
				0xFF,
				0xD0, 0x07, // code = 2000
			}, []byte("gone away")...),
			want: ErrPacket{
				Code:    2000,
				Message: "gone away",
			},
		},
		{
			name:    "wrong header",
			payload: []byte{0x00, 0x00, 0x00},
			wantErr: true,
		},
	}
	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var p ErrPacket
			err := p.Parse(tc.payload)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, p)
		})
	}
}

func TestErrPacket_Error(t *testing.T) {
	p := ErrPacket{Code: 1045, State: "28000", Message: "Access denied"}
	assert.Equal(t, "Error 1045 (28000): Access denied", p.Error())
}
