package auth

import (
	"fmt"

	"github.com/ecodeclub/ekit/syncx"

	"github.com/meoying/dbdriver/internal/errs"
)

// Exchange 一次鉴权交换的上下文
// Seed 来自握手包的两段拼接，被插件消费一次之后就可以丢弃
type Exchange struct {
	Seed     []byte
	Password string
	// Secure 走了 TLS，可以明文传输密码
	Secure bool
}

// Plugin 按名字解析出来的鉴权插件
// 插件自己驱动挑战/响应的交换，直到服务端回 OK 或者错误
type Plugin interface {
	Name() string

	// InitialResponse 计算随握手响应（或 COM_CHANGE_USER）一起发出的首个响应
	InitialResponse(ex *Exchange) ([]byte, error)

	// NextResponse 处理服务端 AuthMoreData 里的后续挑战。
	// 返回 nil 表示这一轮什么都不发，等服务端的下一个包；
	// 返回长度为 0 的切片表示发送一个空包
	NextResponse(ex *Exchange, serverData []byte) ([]byte, error)
}

// Registry 按名字注册的插件集合，遇到不认识的名字直接失败
type Registry struct {
	plugins syncx.Map[string, Plugin]
}

// NewRegistry 带上所有内置插件
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(&NativePassword{})
	r.Register(&CachingSHA2Password{})
	r.Register(&SHA256Password{})
	r.Register(&ClearPassword{})
	r.Register(&OldPassword{})
	return r
}

func (r *Registry) Register(p Plugin) {
	r.plugins.Store(p.Name(), p)
}

func (r *Registry) Lookup(name string) (Plugin, error) {
	p, ok := r.plugins.Load(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedAuthMethod, name)
	}
	return p, nil
}
