package packet

// ColumnDef 字段描述，对应 Column Definition 41 包
// 每次结果集头部或者预处理语句的元数据交换都会新建一批，填充完之后不再修改
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_query_response_text_resultset_column_definition.html
type ColumnDef struct {
	Catalog  string
	Schema   string
	Table    string
	OrgTable string
	Name     string
	OrgName  string

	// CharacterSet 编码，对照 CharSet 常量
	CharacterSet uint16
	// ColumnLength 字段声明长度
	ColumnLength uint32
	Type         MySQLType
	// Flags 可能是一个字节也可能是两个字节，取决于是否协商了 ClientLongFlag
	Flags FieldFlag
	// Decimals 小数位数
	Decimals byte
}

// Precision DECIMAL 类型的精度是从声明长度推导出来的：
// 长度里包含了符号位和小数点各一个字符，无符号时少一个符号位
func (c ColumnDef) Precision() uint32 {
	if c.Type != MySQLTypeDecimal && c.Type != MySQLTypeNewDecimal {
		return 0
	}
	precision := c.ColumnLength - 2
	if c.Flags.Has(FieldFlagUnsigned) {
		precision++
	}
	return precision
}

// FieldFlag 字段属性
// https://dev.mysql.com/doc/dev/mysql-server/latest/group__group__cs__column__definition__flags.html
type FieldFlag uint16

func (f FieldFlag) Has(flag FieldFlag) bool {
	return f&flag > 0
}

const (
	FieldFlagNotNull       FieldFlag = 1
	FieldFlagPrimaryKey    FieldFlag = 2
	FieldFlagUniqueKey     FieldFlag = 4
	FieldFlagMultipleKey   FieldFlag = 8
	FieldFlagBlob          FieldFlag = 16
	FieldFlagUnsigned      FieldFlag = 32
	FieldFlagZeroFill      FieldFlag = 64
	FieldFlagBinary        FieldFlag = 128
	FieldFlagEnum          FieldFlag = 256
	FieldFlagAutoIncrement FieldFlag = 512
	FieldFlagTimestamp     FieldFlag = 1024
	FieldFlagSet           FieldFlag = 2048
)
