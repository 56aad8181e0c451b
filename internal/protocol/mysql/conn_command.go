package mysql

import (
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/flags"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet/builder"
)

// writeCommand 发出一个命令报文，写失败视为致命错误
func (c *Conn) writeCommand(data []byte) error {
	if err := c.startCommand(); err != nil {
		return err
	}
	if err := c.transport.WritePacket(data); err != nil {
		c.fatal(err)
		return err
	}
	return nil
}

// Query 发出 COM_QUERY。
// 结果的解码是惰性的：这里只标记“有结果待读”，
// 真正的读取从 GetResult 开始
func (c *Conn) Query(sql string) error {
	if err := c.writeCommand(builder.NewStringCommand(packet.ComQuery, sql)); err != nil {
		return err
	}
	c.status |= flags.ServerStatusAnotherQuery
	return nil
}

// SetDatabase 切换当前默认数据库
func (c *Conn) SetDatabase(name string) error {
	if err := c.writeCommand(builder.NewStringCommand(packet.ComInitDB, name)); err != nil {
		return err
	}
	_, err := c.readOK()
	return err
}
