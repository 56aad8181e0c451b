package packet

// NullBitmap 二进制协议结果集里每一行前面的 NULL 位图
// 行协议预留了 2 个比特的偏移，所以字节数是 (字段数+7+2)/8
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_binary_resultset.html#sect_protocol_binary_resultset_row
type NullBitmap []byte

// NewNullBitmap 按字段数分配一个空位图
func NewNullBitmap(fieldCount int) NullBitmap {
	return make(NullBitmap, (fieldCount+7+2)/8)
}

// BitmapLength 位图在行内占用的字节数
func BitmapLength(fieldCount int) int {
	return (fieldCount + 7 + 2) / 8
}

// IsNull 第 index 个字段（从 0 开始）是不是 NULL
func (b NullBitmap) IsNull(index int) bool {
	pos := index + 2
	return b[pos/8]&(1<<(uint(pos)%8)) > 0
}

// SetNull 把第 index 个字段标记为 NULL
func (b NullBitmap) SetNull(index int) {
	pos := index + 2
	b[pos/8] |= 1 << (uint(pos) % 8)
}
