package parser

import (
	"fmt"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// LocalInfileRequest 服务端要求客户端上传本地文件
// 结果集头部的第一个 int<lenenc> 是 0xFB（也就是 NULL 标记）时走到这里
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_query_response_local_infile_request.html
type LocalInfileRequest struct {
	// string<EOF>	filename
	Filename string
}

func (p *LocalInfileRequest) Parse(payload []byte) error {
	r := packet.NewReader(payload)
	header, err := r.ReadByte()
	if err != nil {
		return err
	}
	if header != packet.NullValue {
		return fmt.Errorf("%w，预期 LOCAL INFILE 请求，首字节 %d", errs.ErrPktMalformed, header)
	}
	p.Filename = string(r.ReadRestOfPacketString())
	return nil
}
