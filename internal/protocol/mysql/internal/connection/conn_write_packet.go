package connection

import (
	"fmt"
	"time"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// WritePacket 写入一个逻辑报文
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_packets.html
// 注意：
// 1. 你需要在 data 里面预留出来四个字节的头部字段
// 2. 超过单一报文上限的数据会自动拆成多个物理报文，
// 恰好是上限整数倍时以一个零长度报文收尾
func (mc *Conn) WritePacket(data []byte) error {
	pktLen := len(data) - 4
	for {
		size := pktLen
		if size > packet.MaxPacketSize {
			size = packet.MaxPacketSize
		}
		data[0] = byte(size)
		data[1] = byte(size >> 8)
		data[2] = byte(size >> 16)
		data[3] = mc.sequence

		if err := mc.write(data[:4+size]); err != nil {
			return err
		}
		mc.sequence++

		if size < packet.MaxPacketSize {
			return nil
		}
		// 把下一段的头部位置腾出来，复用已发送部分的尾部
		data = data[size:]
		pktLen -= size
	}
}

// WriteEmptyPacket 写入一个零长度报文
// 插件鉴权里用它表示“这一轮不回应”，
// LOAD DATA LOCAL INFILE 用它表示文件传输结束
func (mc *Conn) WriteEmptyPacket() error {
	header := []byte{0, 0, 0, mc.sequence}
	if err := mc.write(header); err != nil {
		return err
	}
	mc.sequence++
	return nil
}

func (mc *Conn) write(data []byte) error {
	// 设置回写的超时时间
	if mc.writeTimeout > 0 {
		if err := mc.conn.SetWriteDeadline(time.Now().Add(mc.writeTimeout)); err != nil {
			return fmt.Errorf("%w，设置写超时失败 %w", errs.ErrInvalidConn, err)
		}
	}

	n, err := mc.stream.Write(data)
	if err != nil {
		return wrapIOErr("写入数据", err)
	}
	// 写入数据的长度不够也按异常连接处理
	if n != len(data) {
		return fmt.Errorf("%w: 未写入足够数据，预期写入：%d，实际写入：%d", errs.ErrInvalidConn, len(data), n)
	}
	return nil
}
