package archive

import (
	"time"

	"github.com/charmbracelet/log"
)

// progress 记录操作开始时间，完成时输出耗时。
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done 以 info 级别输出 msg 与耗时，例如 "员工档案 001 生成成功 (1.234s)"。
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
