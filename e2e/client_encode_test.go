//go:build e2e

package e2e

import (
	"fmt"
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/stretchr/testify/require"
)

// asString 把一个字段值折叠成字符串。
// DECIMAL、YEAR 这类字段带不带 BINARY/UNSIGNED 标志位取决于服务端版本，
// 跨版本比较只看字面值
func asString(v any) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(v)
}

// 整数家族走文本协议，有符号的回 int64，无符号的回 uint64
func (s *ClientTestSuite) TestIntTypes() {
	testCases := []struct {
		name    string
		sql     string
		wantRes [][]any
	}{
		{
			name: "边界值",
			sql:  "SELECT type_tinyint, type_int, type_bigint, type_uint FROM test_scalar WHERE id = 1",
			wantRes: [][]any{
				{int64(-128), int64(-2147483648), int64(-9223372036854775808), uint64(4294967295)},
			},
		},
		{
			name: "NULL值",
			sql:  "SELECT type_tinyint, type_int, type_bigint, type_uint FROM test_scalar WHERE id = 2",
			wantRes: [][]any{
				{nil, nil, nil, nil},
			},
		},
	}

	c := s.newConn()
	for _, tc := range testCases {
		s.T().Run(tc.name, func(t *testing.T) {
			rows := s.queryRows(c, tc.sql)
			assert.Equal(t, rows, tc.wantRes)
		})
	}
}

func (s *ClientTestSuite) TestFloatTypes() {
	c := s.newConn()
	rows := s.queryRows(c, "SELECT type_float, type_double FROM test_scalar WHERE id = 1")
	require.Len(s.T(), rows, 1)
	assert.Equal(s.T(), rows[0], []any{float64(3.5), float64(2.25)})

	rows = s.queryRows(c, "SELECT type_decimal FROM test_scalar WHERE id = 1")
	require.Len(s.T(), rows, 1)
	assert.Equal(s.T(), asString(rows[0][0]), "12345.67")
}

func (s *ClientTestSuite) TestStringTypes() {
	c := s.newConn()
	rows := s.queryRows(c, "SELECT type_varchar, type_blob FROM test_scalar WHERE id = 1")
	require.Len(s.T(), rows, 1)
	assert.Equal(s.T(), rows[0][0], "hello")
	assert.Equal(s.T(), rows[0][1], []byte{0x00, 0x01, 0x02})

	rows = s.queryRows(c, "SELECT type_varchar, type_blob FROM test_scalar WHERE id = 2")
	require.Len(s.T(), rows, 1)
	assert.Equal(s.T(), rows[0], []any{nil, nil})
}

// 文本协议里时间家族都是字符串字面值
func (s *ClientTestSuite) TestDateTypes() {
	c := s.newConn()
	rows := s.queryRows(c,
		"SELECT type_datetime, type_time, type_date, type_year FROM test_scalar WHERE id = 1")
	require.Len(s.T(), rows, 1)
	assert.Equal(s.T(), rows[0][0], "2024-06-01 12:34:56.500000")
	assert.Equal(s.T(), rows[0][1], "838:59:59.000000")
	assert.Equal(s.T(), rows[0][2], "2024-06-01")
	assert.Equal(s.T(), asString(rows[0][3]), "2024")
}

// 同一条查询两边各跑一遍，逐个字段比字面值。
// 官方驱动是这里的参照系
func (s *ClientTestSuite) TestAgainstOfficialDriver() {
	const query = "SELECT * FROM driver_e2e.test_scalar ORDER BY id"

	oracleRows, err := s.db.Query(query)
	require.NoError(s.T(), err)
	defer func() { _ = oracleRows.Close() }()
	cols, err := oracleRows.Columns()
	require.NoError(s.T(), err)

	var want [][]string
	for oracleRows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		require.NoError(s.T(), oracleRows.Scan(ptrs...))
		row := make([]string, 0, len(cols))
		for _, v := range vals {
			row = append(row, asString(v))
		}
		want = append(want, row)
	}
	require.NoError(s.T(), oracleRows.Err())

	c := s.newConn()
	var got [][]string
	for _, raw := range s.queryRows(c, query) {
		row := make([]string, 0, len(raw))
		for _, v := range raw {
			row = append(row, asString(v))
		}
		got = append(got, row)
	}
	assert.Equal(s.T(), got, want)
}
