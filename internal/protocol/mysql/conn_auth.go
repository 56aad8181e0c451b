package mysql

import (
	"fmt"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/auth"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet/builder"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet/parser"
)

// exchange 组装一次鉴权交换的上下文
func (c *Conn) exchange(secure bool) *auth.Exchange {
	return &auth.Exchange{
		Seed:     c.seed,
		Password: c.cfg.Password,
		Secure:   secure,
	}
}

// authLoop 首个响应发出去之后，由服务端驱动剩下的交换：
// OK 结束，错误上抛，AuthSwitchRequest 换插件重来，
// AuthMoreData 交给插件算下一个响应
func (c *Conn) authLoop(plugin auth.Plugin, ex *auth.Exchange) error {
	for {
		payload, err := c.transport.ReadPacket()
		if err != nil {
			return err
		}
		if len(payload) == 0 {
			return fmt.Errorf("%w，鉴权阶段收到空包", errs.ErrPktMalformed)
		}
		switch payload[0] {
		case packet.OKHeader:
			_, err = c.applyOK(payload)
			return err
		case packet.ErrHeader:
			return c.parseErr(payload)
		case packet.EOFHeader:
			// 服务端要求换插件，新 seed 也一起带过来了
			var req parser.AuthSwitchRequest
			if err = req.Parse(payload); err != nil {
				return err
			}
			if plugin, err = c.registry.Lookup(req.PluginName); err != nil {
				return err
			}
			c.authPlugin = req.PluginName
			c.seed = req.PluginData
			ex.Seed = req.PluginData
			resp, err := plugin.InitialResponse(ex)
			if err != nil {
				return err
			}
			if err = c.writeAuthData(resp); err != nil {
				return err
			}
		case packet.MoreDataHeader:
			var more parser.AuthMoreData
			if err = more.Parse(payload); err != nil {
				return err
			}
			resp, err := plugin.NextResponse(ex, more.Data)
			if err != nil {
				return err
			}
			if resp == nil {
				// 这一轮不回应，等服务端的下一个包
				continue
			}
			if len(resp) == 0 {
				if err = c.transport.WriteEmptyPacket(); err != nil {
					return err
				}
				continue
			}
			if err = c.writeAuthData(resp); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w，鉴权阶段非法的首字节 %d", errs.ErrPktMalformed, payload[0])
		}
	}
}

// writeAuthData 把插件响应作为独立报文发出
func (c *Conn) writeAuthData(data []byte) error {
	p := make([]byte, 4, 4+len(data))
	return c.transport.WritePacket(append(p, data...))
}

// ChangeUser 在同一个连接上切换用户，复用初始握手的 seed
// 重新跑一轮插件交换
func (c *Conn) ChangeUser(user, password, database string) error {
	if err := c.startCommand(); err != nil {
		return err
	}
	c.cfg.User = user
	c.cfg.Password = password
	c.cfg.Database = database

	plugin, err := c.registry.Lookup(c.authPlugin)
	if err != nil {
		return err
	}
	ex := c.exchange(c.secure)
	resp, err := plugin.InitialResponse(ex)
	if err != nil {
		return err
	}

	p := builder.ChangeUserPacket{
		ClientFlags:    c.capabilities,
		User:           user,
		AuthResponse:   resp,
		Database:       database,
		CharacterSet:   uint16(c.cfg.characterSet()),
		AuthPluginName: c.authPlugin,
		Attrs:          c.connectAttrs(),
	}
	if err = c.transport.WritePacket(p.Build()); err != nil {
		c.fatal(err)
		return err
	}
	if err = c.authLoop(plugin, ex); err != nil {
		c.fatal(err)
		return err
	}
	return nil
}

// Reset 丢弃会话状态（临时表、用户变量、预编译语句），
// 本质上是一次对当前用户自己的 CHANGE_USER
func (c *Conn) Reset() error {
	return c.ChangeUser(c.cfg.User, c.cfg.Password, c.cfg.Database)
}
