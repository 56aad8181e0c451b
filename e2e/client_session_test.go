//go:build e2e

package e2e

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties/assert"
	"github.com/stretchr/testify/require"

	"github.com/meoying/dbdriver/internal/protocol/mysql"
)

func (s *ClientTestSuite) TestHandshakeMetadata() {
	c := s.newConn()
	require.Greater(s.T(), c.ThreadId(), int32(0))
	require.True(s.T(), c.ServerVersion().AtLeast(5, 0, 0))
}

// 事务状态跟着 OK 包走
func (s *ClientTestSuite) TestTransactionStatus() {
	c := s.newConn()
	require.False(s.T(), c.InTransaction())

	require.NoError(s.T(), c.Query("BEGIN"))
	_, err := c.GetResult()
	require.NoError(s.T(), err)
	require.True(s.T(), c.InTransaction())

	require.NoError(s.T(), c.Query("ROLLBACK"))
	_, err = c.GetResult()
	require.NoError(s.T(), err)
	require.False(s.T(), c.InTransaction())
}

func (s *ClientTestSuite) TestMultiStatements() {
	c := s.newConn(func(cfg *mysql.Config) {
		cfg.MultiStatements = true
	})
	require.NoError(s.T(), c.Query("SELECT 1; SELECT 2"))

	rows := s.readRows(c, 0)
	assert.Equal(s.T(), rows, [][]any{{int64(1)}})
	require.True(s.T(), c.MoreResults())

	require.NoError(s.T(), c.DrainResults())
	require.False(s.T(), c.MoreResults())
	require.True(s.T(), c.Ping())
}

// 压缩协议下大报文来回都要完好
func (s *ClientTestSuite) TestCompressedProtocol() {
	c := s.newConn(func(cfg *mysql.Config) {
		cfg.Compress = true
	})
	rows := s.queryRows(c, "SELECT REPEAT('x', 4096)")
	require.Len(s.T(), rows, 1)
	assert.Equal(s.T(), rows[0][0], strings.Repeat("x", 4096))

	// 低于压缩阈值的小报文走的是未压缩分支
	rows = s.queryRows(c, "SELECT 1")
	assert.Equal(s.T(), rows, [][]any{{int64(1)}})
}

func (s *ClientTestSuite) TestSetDatabase() {
	c := s.newConn()
	require.NoError(s.T(), c.SetDatabase("driver_e2e"))
	rows := s.queryRows(c, "SELECT DATABASE()")
	assert.Equal(s.T(), rows, [][]any{{"driver_e2e"}})
}

func (s *ClientTestSuite) TestChangeUser() {
	c := s.newConn()
	require.NoError(s.T(), c.Query("SET @marker = 1"))
	_, err := c.GetResult()
	require.NoError(s.T(), err)

	// COM_CHANGE_USER 重置整个会话，用户变量应该被清掉
	require.NoError(s.T(), c.ChangeUser("root", "root", "driver_e2e"))
	rows := s.queryRows(c, "SELECT @marker")
	assert.Equal(s.T(), rows, [][]any{{nil}})
}

func (s *ClientTestSuite) TestLocalInfile() {
	if _, err := s.db.Exec("SET GLOBAL local_infile = 1"); err != nil {
		s.T().Skip("没有权限开启 local_infile：", err)
	}
	s.mustExec(`DROP TABLE IF EXISTS driver_e2e.test_infile`)
	s.mustExec(`CREATE TABLE driver_e2e.test_infile (v INT)`)

	var lines []string
	for i := 0; i < 10000; i++ {
		lines = append(lines, fmt.Sprint(i))
	}
	path := filepath.Join(s.T().TempDir(), "infile.csv")
	require.NoError(s.T(), os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600))

	c := s.newConn()
	require.NoError(s.T(), c.Query(
		fmt.Sprintf("LOAD DATA LOCAL INFILE '%s' INTO TABLE test_infile", path)))
	res, err := c.GetResult()
	if err != nil {
		s.T().Skip("服务端拒绝 LOCAL INFILE：", err)
	}
	assert.Equal(s.T(), res.AffectedRows, uint64(10000))

	rows := s.queryRows(c, "SELECT COUNT(*) FROM test_infile")
	assert.Equal(s.T(), rows, [][]any{{int64(10000)}})
}
