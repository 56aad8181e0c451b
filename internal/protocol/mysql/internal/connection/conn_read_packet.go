package connection

import (
	"fmt"
	"io"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// ReadPacket 读取一个完整的逻辑报文，已经去除了头部字段，只剩下 payload。
// 单个物理报文装不下的逻辑报文（长度达到 2^24-1）会在这里重组
func (mc *Conn) ReadPacket() ([]byte, error) {
	var prevData []byte
	for {
		// 读取头部的四个字节，其中三个字节是长度，一个字节是 sequence
		header := make([]byte, 4)
		if _, err := io.ReadFull(mc.stream, header); err != nil {
			return nil, wrapIOErr("读取报文头部", err)
		}

		// packet length [24 bit]
		pktLen := int(uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16)

		// check packet sync [8 bit]
		// 客户端这一侧预期响应的序号紧跟着自己发出去的最后一个报文
		if header[3] != mc.sequence {
			return nil, fmt.Errorf("%w，预期 %d，实际 %d", errs.ErrPktSync, mc.sequence, header[3])
		}
		mc.sequence++

		// 长度为 0 的报文用来终结一段恰好是 (2^24-1) 整数倍的逻辑报文
		if pktLen == 0 {
			if prevData == nil {
				return nil, fmt.Errorf("%w，当前报文长度为 0，但未读到前面报文", errs.ErrInvalidConn)
			}
			return prevData, nil
		}

		if len(prevData)+pktLen > mc.maxAllowedPacket {
			return nil, fmt.Errorf("%w，超出 maxAllowedPacket %d", errs.ErrPktTooLarge, mc.maxAllowedPacket)
		}

		// read packet body [pktLen bytes]
		body := make([]byte, pktLen)
		if _, err := io.ReadFull(mc.stream, body); err != nil {
			return nil, wrapIOErr("读取报文体", err)
		}

		// 不满最大长度说明逻辑报文到此为止
		if pktLen < packet.MaxPacketSize {
			// zero allocations for non-split packets
			if prevData == nil {
				return body, nil
			}
			return append(prevData, body...), nil
		}
		prevData = append(prevData, body...)
	}
}
