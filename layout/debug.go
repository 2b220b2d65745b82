package layout

import (
	"encoding/json"
	"io"
	"os"
)

// Snapshot 是调试输出的内容：分页后的模型与统计信息。
type Snapshot struct {
	Model  *Model `json:"model"`
	Report Report `json:"report"`
}

// EncodeDebugJSON 将布局快照以缩进 JSON 写入 w。
func EncodeDebugJSON(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(snap)
}

// WriteDebugJSON 将布局快照输出为 JSON 文件，便于调试或可视化。
func WriteDebugJSON(snap Snapshot, path string) error {
	if snap.Model == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeDebugJSON(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
