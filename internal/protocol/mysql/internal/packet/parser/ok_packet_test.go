package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/flags"
)

func TestOKPacket_Parse(t *testing.T) {
	testcases := []struct {
		name         string
		capabilities flags.CapabilityFlags
		payload      []byte
		want         OKPacket
		wantErr      bool
	}{
		{
			name:         "protocol 41",
			capabilities: flags.CapabilityFlags(flags.ClientProtocol41),
			payload: []byte{
				0x00,       // OK header
				0x05,       // affected rows = 5
				0x2A,       // last insert id = 42
				0x02, 0x00, // status = autocommit
				0x03, 0x00, // warnings = 3
			},
			want: OKPacket{
				AffectedRows: 5,
				LastInsertID: 42,
				StatusFlags:  flags.ServerStatusAutoCommit,
				Warnings:     3,
			},
		},
		{
			name:         "with info message",
			capabilities: flags.CapabilityFlags(flags.ClientProtocol41),
			payload: append([]byte{
				0x00,
				0x00,
				0x00,
				0x02, 0x00,
				0x00, 0x00,
			}, []byte("Records: 0")...),
			want: OKPacket{
				StatusFlags: flags.ServerStatusAutoCommit,
				Info:        "Records: 0",
			},
		},
		{
			name:         "transactions only",
			capabilities: flags.CapabilityFlags(flags.ClientTransactions),
			payload: []byte{
				0x00,
				0x01,
				0x00,
				0x01, 0x00, // status = in transaction
			},
			want: OKPacket{
				AffectedRows: 1,
				StatusFlags:  flags.SeverStatusInTrans,
			},
		},
		{
			name:         "lenenc affected rows",
			capabilities: flags.CapabilityFlags(flags.ClientProtocol41),
			payload: []byte{
				0x00,
				0xFC, 0xE8, 0x03, // affected rows = 1000
				0x00,
				0x00, 0x00,
				0x00, 0x00,
			},
			want: OKPacket{
				AffectedRows: 1000,
			},
		},
		{
			name:    "wrong header",
			payload: []byte{0x01, 0x00, 0x00},
			wantErr: true,
		},
	}
	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := OKPacket{Capabilities: tc.capabilities}
			err := p.Parse(tc.payload)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.want.Capabilities = tc.capabilities
			assert.Equal(t, tc.want, p)
		})
	}
}
