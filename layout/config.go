package layout

// Config 汇总排版引擎使用的数值参数（单位：mm 或百分比）。
// 由外部配置加载器填充，引擎本身不持有任何硬编码的尺寸。
type Config struct {
	UsableHeight        float64 `json:"usableHeight"`        // 每页可用高度
	TitleRowHeight      float64 `json:"titleRowHeight"`      // 标题行高度
	DefaultRowHeight    float64 `json:"defaultRowHeight"`    // 普通行高度，亦是估算时的单行高度
	SeparatorHeight     float64 `json:"separatorHeight"`     // 条目间分隔行高度
	MinBreakHeight      float64 `json:"minBreakHeight"`      // 页底剩余空间低于该值时计为紧凑分页
	MinFieldWidth       float64 `json:"minFieldWidth"`       // 字段最小宽度百分比，仅作配置保留，字段宽度取自描述
	LongTextThreshold   int     `json:"longTextThreshold"`   // 长文本字符阈值，亦是估算时的每行字符数
	BasicInfoBaseHeight float64 `json:"basicInfoBaseHeight"` // 基础信息区基准高度
	TextColumnPercent   float64 `json:"textColumnPercent"`   // 基础信息区文本栏占页宽的比例
	PhotoWidth          float64 `json:"photoWidth"`
	PhotoHeight         float64 `json:"photoHeight"`
}

// DefaultConfig 返回 A4 纵向、上下边距各 20mm 时的参数。
func DefaultConfig() Config {
	return Config{
		UsableHeight:        297 - 20 - 20,
		TitleRowHeight:      10,
		DefaultRowHeight:    8,
		SeparatorHeight:     5,
		MinBreakHeight:      15,
		MinFieldWidth:       20,
		LongTextThreshold:   50,
		BasicInfoBaseHeight: 60,
		TextColumnPercent:   75,
		PhotoWidth:          35,
		PhotoHeight:         45,
	}
}

// withDefaults 用默认值补齐未设置（<=0）的参数。
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.UsableHeight <= 0 {
		c.UsableHeight = def.UsableHeight
	}
	if c.TitleRowHeight <= 0 {
		c.TitleRowHeight = def.TitleRowHeight
	}
	if c.DefaultRowHeight <= 0 {
		c.DefaultRowHeight = def.DefaultRowHeight
	}
	if c.SeparatorHeight <= 0 {
		c.SeparatorHeight = def.SeparatorHeight
	}
	if c.MinBreakHeight <= 0 {
		c.MinBreakHeight = def.MinBreakHeight
	}
	if c.MinFieldWidth <= 0 {
		c.MinFieldWidth = def.MinFieldWidth
	}
	if c.LongTextThreshold <= 0 {
		c.LongTextThreshold = def.LongTextThreshold
	}
	if c.BasicInfoBaseHeight <= 0 {
		c.BasicInfoBaseHeight = def.BasicInfoBaseHeight
	}
	if c.TextColumnPercent <= 0 || c.TextColumnPercent > 100 {
		c.TextColumnPercent = def.TextColumnPercent
	}
	if c.PhotoWidth <= 0 {
		c.PhotoWidth = def.PhotoWidth
	}
	if c.PhotoHeight <= 0 {
		c.PhotoHeight = def.PhotoHeight
	}
	return c
}
