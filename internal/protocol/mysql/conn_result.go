package mysql

import (
	"fmt"
	"io"
	"os"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/flags"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet/parser"
)

// Result 一个结果集的头部信息
// FieldCount 为 0 说明这条命令没有结果集，行数和自增 id 才有意义
type Result struct {
	FieldCount   int
	AffectedRows uint64
	LastInsertID uint64
}

// readPacket 结果阶段读包失败意味着和服务端失去同步，按致命错误处理
func (c *Conn) readPacket() ([]byte, error) {
	payload, err := c.transport.ReadPacket()
	if err != nil {
		c.fatal(err)
		return nil, err
	}
	return payload, nil
}

// parseErr 服务端的错误响应不影响连接本身的可用性
func (c *Conn) parseErr(payload []byte) error {
	var ep parser.ErrPacket
	if err := ep.Parse(payload); err != nil {
		c.fatal(err)
		return err
	}
	return &ep
}

// applyOK 解析 OK 包并把服务器状态同步到连接上
func (c *Conn) applyOK(payload []byte) (*parser.OKPacket, error) {
	ok := parser.OKPacket{Capabilities: c.capabilities}
	if err := ok.Parse(payload); err != nil {
		c.fatal(err)
		return nil, err
	}
	c.status = ok.StatusFlags
	c.warnings += uint32(ok.Warnings)
	return &ok, nil
}

// readOK 读一个包并预期它是 OK 或者错误响应
func (c *Conn) readOK() (*parser.OKPacket, error) {
	payload, err := c.readPacket()
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 && payload[0] == packet.ErrHeader {
		return nil, c.parseErr(payload)
	}
	return c.applyOK(payload)
}

// GetResult 读结果集头部。
// 第一个 int<lenenc> 是字段数：0 是 OK 包，0xFB 是 LOCAL INFILE 请求，
// 其余是后面跟着的列定义个数
func (c *Conn) GetResult() (Result, error) {
	payload, err := c.readPacket()
	if err != nil {
		return Result{}, err
	}
	if len(payload) == 0 {
		err = fmt.Errorf("%w，结果集头部是空包", errs.ErrPktMalformed)
		c.fatal(err)
		return Result{}, err
	}

	switch payload[0] {
	case packet.ErrHeader:
		return Result{}, c.parseErr(payload)
	case packet.OKHeader:
		ok, err := c.applyOK(payload)
		if err != nil {
			return Result{}, err
		}
		return Result{
			AffectedRows: ok.AffectedRows,
			LastInsertID: ok.LastInsertID,
		}, nil
	case packet.NullValue:
		// 服务端要求上传本地文件，传完之后接着读真正的结果头部
		var req parser.LocalInfileRequest
		if err = req.Parse(payload); err != nil {
			c.fatal(err)
			return Result{}, err
		}
		if err = c.sendLocalFile(req.Filename); err != nil {
			return Result{}, err
		}
		return c.GetResult()
	default:
		r := packet.NewReader(payload)
		fieldCount, _, err := r.ReadLenencInt()
		if err != nil {
			c.fatal(err)
			return Result{}, err
		}
		return Result{FieldCount: int(fieldCount)}, nil
	}
}

// sendLocalFile 把文件按固定大小分块发出，零长度报文收尾。
// 读文件失败也必须把收尾包发出去，否则协议就失去同步了，
// 文件错误在协议收尾之后再上抛
func (c *Conn) sendLocalFile(name string) error {
	var fileErr error
	f, err := os.Open(name)
	if err != nil {
		fileErr = fmt.Errorf("%w，打开 %q 失败 %w", errs.ErrLocalFile, name, err)
	} else {
		defer func() { _ = f.Close() }()
		buf := make([]byte, 4+packet.LocalInfileChunkSize)
		for {
			n, err := f.Read(buf[4:])
			if n > 0 {
				if err1 := c.transport.WritePacket(buf[:4+n]); err1 != nil {
					c.fatal(err1)
					return err1
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				fileErr = fmt.Errorf("%w，读取 %q 失败 %w", errs.ErrLocalFile, name, err)
				break
			}
		}
	}

	if err = c.transport.WriteEmptyPacket(); err != nil {
		c.fatal(err)
		return err
	}
	if fileErr != nil {
		// 服务端会用错误包回应中断的上传，读出来丢掉，连接还能继续用
		if _, err = c.readPacket(); err != nil {
			return err
		}
		return fileErr
	}
	return nil
}

// ReadColumns 读出 count 个列定义，然后消费掉结束符包
func (c *Conn) ReadColumns(count int) ([]packet.ColumnDef, error) {
	columns := make([]packet.ColumnDef, 0, count)
	for i := 0; i < count; i++ {
		payload, err := c.readPacket()
		if err != nil {
			return nil, err
		}
		col := parser.ColumnDefinition41{Capabilities: c.capabilities}
		if err = col.Parse(payload); err != nil {
			c.fatal(err)
			return nil, err
		}
		columns = append(columns, col.Column)
	}
	if err := c.checkEOF(); err != nil {
		return nil, err
	}
	return columns, nil
}

// checkEOF 读一个包并要求它是结束符包
func (c *Conn) checkEOF() error {
	payload, err := c.readPacket()
	if err != nil {
		return err
	}
	return c.consumeEOF(payload)
}

// consumeEOF 结束符包的第一个字节必须是 0xFE，
// 否则说明我们和服务端对报文边界的理解已经不一致了
func (c *Conn) consumeEOF(payload []byte) error {
	if len(payload) == 0 || payload[0] != packet.EOFHeader {
		err := fmt.Errorf("%w，预期结束符包，首字节 %d", errs.ErrPktSync, packet.NewReader(payload).Header())
		c.fatal(err)
		return err
	}
	eof := parser.EOFPacket{Capabilities: c.capabilities}
	if err := eof.Parse(payload); err != nil {
		c.fatal(err)
		return err
	}
	c.warnings += uint32(eof.Warnings)
	c.status = eof.StatusFlags
	return nil
}

// FetchRow 读下一个数据行。
// 返回 false 表示结果集读完了，结束符里的状态已经被消费。
// statementID 大于 0 走二进制协议，行首是一个 0x00 和 NULL 位图
func (c *Conn) FetchRow(statementID uint32, columnCount int) (bool, error) {
	payload, err := c.readPacket()
	if err != nil {
		return false, err
	}
	if parser.IsEOFPacket(payload) {
		c.row = nil
		c.nullBitmap = nil
		return false, c.consumeEOF(payload)
	}

	r := packet.NewReader(payload)
	if statementID > 0 {
		// int<1>	packet header	0x00
		if err = r.Skip(1); err != nil {
			c.fatal(err)
			return false, err
		}
		bitmap, err := r.ReadBytes(packet.BitmapLength(columnCount))
		if err != nil {
			c.fatal(err)
			return false, err
		}
		c.nullBitmap = packet.NullBitmap(bitmap)
	} else {
		c.nullBitmap = nil
	}
	c.row = r
	c.rowColumn = 0
	return true, nil
}

// ReadColumnValue 读当前行的下一个字段值
func (c *Conn) ReadColumnValue(col packet.ColumnDef) (any, error) {
	if c.row == nil {
		return nil, fmt.Errorf("%w，当前没有数据行", errs.ErrInvalidConn)
	}
	d, err := c.decoders.Lookup(col.Type, col.Flags)
	if err != nil {
		return nil, err
	}
	index := c.rowColumn
	c.rowColumn++

	if c.nullBitmap != nil {
		// 二进制协议：NULL 由位图决定，长度由类型决定
		return d.ReadValue(c.row, -1, c.nullBitmap.IsNull(index))
	}
	// 文本协议：每个值都带 int<lenenc> 长度前缀，0xFB 代表 NULL
	length, isNull, err := c.row.ReadLenencInt()
	if err != nil {
		c.fatal(err)
		return nil, err
	}
	if isNull {
		return d.ReadValue(c.row, 0, true)
	}
	return d.ReadValue(c.row, int(length), false)
}

// SkipColumnValue 跳过当前行的下一个字段值
func (c *Conn) SkipColumnValue(col packet.ColumnDef) error {
	if c.row == nil {
		return fmt.Errorf("%w，当前没有数据行", errs.ErrInvalidConn)
	}
	index := c.rowColumn
	c.rowColumn++

	if c.nullBitmap != nil {
		if c.nullBitmap.IsNull(index) {
			return nil
		}
		d, err := c.decoders.Lookup(col.Type, col.Flags)
		if err != nil {
			return err
		}
		return d.SkipValue(c.row)
	}
	length, isNull, err := c.row.ReadLenencInt()
	if err != nil {
		c.fatal(err)
		return err
	}
	if isNull {
		return nil
	}
	return c.row.Skip(int(length))
}

// DrainResults 把剩余的结果集读完丢弃，直到服务端说没有更多结果。
// 多语句、存储过程都可能带回多个结果集
func (c *Conn) DrainResults() error {
	for c.MoreResults() {
		c.status &^= flags.ServerStatusAnotherQuery
		res, err := c.GetResult()
		if err != nil {
			return err
		}
		if res.FieldCount == 0 {
			continue
		}
		cols, err := c.ReadColumns(res.FieldCount)
		if err != nil {
			return err
		}
		for {
			more, err := c.FetchRow(0, res.FieldCount)
			if err != nil {
				return err
			}
			if !more {
				break
			}
			for _, col := range cols {
				if err = c.SkipColumnValue(col); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
